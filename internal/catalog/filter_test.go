package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentdeck/internal/domain"
)

func TestMatches(t *testing.T) {
	rocket := domain.Item{Kind: domain.KindEmoji, Name: "Rocket", Group: "Travel & Places"}
	files := domain.Item{Kind: domain.KindApp, Name: "Files", Tags: []string{"Productivity", "storage"}}

	tests := []struct {
		name  string
		item  domain.Item
		query string
		want  bool
	}{
		{"empty query matches all", rocket, "", true},
		{"name substring", rocket, "rock", true},
		{"name case-insensitive", rocket, "ROCKET", true},
		{"group substring", rocket, "travel", true},
		{"tag substring", files, "product", true},
		{"tag case-insensitive", files, "STORAGE", true},
		{"no match", rocket, "camera", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.item, tt.query))
		})
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	items := []domain.Item{
		{Kind: domain.KindIcon, Name: "Camera Add"},
		{Kind: domain.KindIcon, Name: "Alert"},
		{Kind: domain.KindIcon, Name: "Camera Off"},
	}

	got := Filter(items, "camera")
	require.Len(t, got, 2)
	assert.Equal(t, "Camera Add", got[0].Name)
	assert.Equal(t, "Camera Off", got[1].Name)

	assert.Equal(t, items, Filter(items, ""))
}
