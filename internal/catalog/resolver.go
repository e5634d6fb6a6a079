package catalog

import (
	"net/url"
	"strings"

	"github.com/cockroachdb/errors"

	"fluentdeck/internal/domain"
)

// Asset CDN roots for the two media kinds. Apps link to store pages and are
// not fetchable assets.
const (
	DefaultIconBase  = "https://raw.githubusercontent.com/microsoft/fluentui-system-icons/main/assets"
	DefaultEmojiBase = "https://raw.githubusercontent.com/microsoft/fluentemoji/main/assets"
)

// Resolver maps a media item to the URL its asset can be fetched from
type Resolver struct {
	IconBase  string
	EmojiBase string
}

// NewResolver creates a resolver with the default CDN roots
func NewResolver() *Resolver {
	return &Resolver{
		IconBase:  DefaultIconBase,
		EmojiBase: DefaultEmojiBase,
	}
}

// AssetURL resolves the fetchable URL for an item. Apps are not exportable.
func (r *Resolver) AssetURL(item domain.Item) (string, error) {
	switch item.Kind {
	case domain.KindIcon:
		file, ok := item.Files[item.Style]
		if !ok {
			return "", errors.Newf("icon %q has no %s asset", item.Name, item.Style)
		}
		return r.IconBase + "/" + url.PathEscape(item.Name) + "/SVG/" + url.PathEscape(file), nil

	case domain.KindEmoji:
		return r.EmojiBase + "/" + url.PathEscape(item.Name) + "/" +
			url.PathEscape(item.Style) + "/" + emojiAssetName(item), nil

	case domain.KindApp:
		return "", errors.Newf("app %q has no exportable asset", item.Name)
	}
	return "", errors.Newf("unknown item kind %q", item.Kind)
}

// ArchiveName returns the file name an item gets inside an export archive
func ArchiveName(item domain.Item) string {
	base := slug(item.Name)
	if item.Style != "" {
		base += "_" + slug(item.Style)
	}
	if item.Kind == domain.KindEmoji && item.Style == domain.EmojiStyle3D {
		return base + ".png"
	}
	return base + ".svg"
}

// emojiAssetName builds the per-style asset filename the Fluent emoji repo uses
func emojiAssetName(item domain.Item) string {
	name := slug(item.Name) + "_" + slug(item.Style)
	if item.Style == domain.EmojiStyle3D {
		return name + ".png"
	}
	return name + ".svg"
}

// slug lowercases and underscores a display name for use in asset paths
func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}
