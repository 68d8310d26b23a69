package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferralSourceValid(t *testing.T) {
	for _, s := range ReferralSources {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	assert.False(t, ReferralSource("").Valid())
	assert.False(t, ReferralSource("Google").Valid()) // case sensitive
	assert.False(t, ReferralSource("word-of-mouth").Valid())
}
