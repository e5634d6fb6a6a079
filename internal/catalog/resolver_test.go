package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentdeck/internal/domain"
)

func TestAssetURLIcon(t *testing.T) {
	r := &Resolver{IconBase: "https://cdn.test/icons", EmojiBase: "https://cdn.test/emoji"}

	url, err := r.AssetURL(domain.Item{
		Kind:  domain.KindIcon,
		Name:  "Alert",
		Style: domain.IconStyleFilled,
		Files: map[string]string{domain.IconStyleFilled: "ic_fluent_alert_24_filled.svg"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/icons/Alert/SVG/ic_fluent_alert_24_filled.svg", url)

	// Missing asset for the requested style
	_, err = r.AssetURL(domain.Item{Kind: domain.KindIcon, Name: "Alert", Style: domain.IconStyleColor})
	assert.Error(t, err)
}

func TestAssetURLEmoji(t *testing.T) {
	r := &Resolver{IconBase: "https://cdn.test/icons", EmojiBase: "https://cdn.test/emoji"}

	url, err := r.AssetURL(domain.Item{Kind: domain.KindEmoji, Name: "Rocket", Style: domain.EmojiStyle3D})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/emoji/Rocket/3D/rocket_3d.png", url)

	url, err = r.AssetURL(domain.Item{Kind: domain.KindEmoji, Name: "Star Struck", Style: domain.EmojiStyleFlat})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.test/emoji/Star%20Struck/Flat/star_struck_flat.svg", url)
}

func TestAssetURLAppRejected(t *testing.T) {
	r := NewResolver()
	_, err := r.AssetURL(domain.Item{Kind: domain.KindApp, Name: "Files"})
	assert.Error(t, err)
}

func TestArchiveName(t *testing.T) {
	tests := []struct {
		item domain.Item
		want string
	}{
		{domain.Item{Kind: domain.KindEmoji, Name: "Rocket", Style: domain.EmojiStyle3D}, "rocket_3d.png"},
		{domain.Item{Kind: domain.KindEmoji, Name: "Rocket", Style: domain.EmojiStyleFlat}, "rocket_flat.svg"},
		{domain.Item{Kind: domain.KindIcon, Name: "Camera Add", Style: domain.IconStyleFilled}, "camera_add_filled.svg"},
		{domain.Item{Kind: domain.KindIcon, Name: "Alert"}, "alert.svg"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ArchiveName(tt.item))
	}
}
