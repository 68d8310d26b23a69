package models

import "fmt"

// TabbedContent is the structured product detail content edited in the admin
// panel. It is validated before every write: malformed structures are
// rejected instead of being stored as opaque JSON.
type TabbedContent struct {
	Tabs []ContentTab `bson:"tabs" json:"tabs"`
}

type ContentTab struct {
	ID      string          `bson:"id" json:"id"`
	Title   string          `bson:"title" json:"title"`
	Columns []ContentColumn `bson:"columns" json:"columns"`
}

type ContentColumn struct {
	Sections []ContentSection `bson:"sections" json:"sections"`
}

type ContentSection struct {
	Heading string       `bson:"heading" json:"heading"`
	Rows    []ContentRow `bson:"rows" json:"rows"`
}

type ContentRow struct {
	Label string `bson:"label" json:"label"`
	Value string `bson:"value" json:"value"`
}

// Validate checks the tabs -> columns -> sections -> rows structure. Row
// values may be empty; everything else that names a thing must be non-empty.
func (tc *TabbedContent) Validate() error {
	for ti, tab := range tc.Tabs {
		if tab.ID == "" {
			return fmt.Errorf("tab %d: id is required", ti)
		}
		if tab.Title == "" {
			return fmt.Errorf("tab %d: title is required", ti)
		}
		for ci, col := range tab.Columns {
			for si, sec := range col.Sections {
				if sec.Heading == "" {
					return fmt.Errorf("tab %d column %d section %d: heading is required", ti, ci, si)
				}
				for ri, row := range sec.Rows {
					if row.Label == "" {
						return fmt.Errorf("tab %d column %d section %d row %d: label is required", ti, ci, si, ri)
					}
				}
			}
		}
	}
	return nil
}
