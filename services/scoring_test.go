package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPointsFor(t *testing.T) {
	tests := []struct {
		name        string
		recommended bool
		source      Source
		want        int
	}{
		{"recommended from today", true, SourceToday, 20},
		{"recommended from catalog", true, SourceCatalog, 20},
		{"catalog", false, SourceCatalog, 5},
		{"today", false, SourceToday, 10},
		{"untagged", false, "", 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PointsFor(tt.recommended, tt.source))
		})
	}
}

func TestSourceValid(t *testing.T) {
	assert.True(t, SourceToday.Valid())
	assert.True(t, SourceCatalog.Valid())
	assert.False(t, Source("feed").Valid())
}
