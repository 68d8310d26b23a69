package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTabbedContent() TabbedContent {
	return TabbedContent{
		Tabs: []ContentTab{
			{
				ID:    "specs",
				Title: "Specifications",
				Columns: []ContentColumn{
					{
						Sections: []ContentSection{
							{
								Heading: "Dimensions",
								Rows: []ContentRow{
									{Label: "Depth", Value: "300mm"},
									{Label: "Finish", Value: ""},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestTabbedContentValidate(t *testing.T) {
	tc := validTabbedContent()
	assert.NoError(t, tc.Validate())

	empty := TabbedContent{}
	assert.NoError(t, empty.Validate())
}

func TestTabbedContentValidateErrors(t *testing.T) {
	t.Run("missing tab id", func(t *testing.T) {
		tc := validTabbedContent()
		tc.Tabs[0].ID = ""
		require.Error(t, tc.Validate())
	})

	t.Run("missing tab title", func(t *testing.T) {
		tc := validTabbedContent()
		tc.Tabs[0].Title = ""
		require.Error(t, tc.Validate())
	})

	t.Run("missing section heading", func(t *testing.T) {
		tc := validTabbedContent()
		tc.Tabs[0].Columns[0].Sections[0].Heading = ""
		require.Error(t, tc.Validate())
	})

	t.Run("missing row label", func(t *testing.T) {
		tc := validTabbedContent()
		tc.Tabs[0].Columns[0].Sections[0].Rows[0].Label = ""
		require.Error(t, tc.Validate())
	})

	t.Run("row value may be empty", func(t *testing.T) {
		tc := validTabbedContent()
		tc.Tabs[0].Columns[0].Sections[0].Rows[1].Value = ""
		assert.NoError(t, tc.Validate())
	})
}
