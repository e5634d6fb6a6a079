package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentdeck/internal/domain"
	"fluentdeck/internal/store"
)

const iconsDoc = `[
	{"name": "Alert", "files": {"Filled": "ic_fluent_alert_24_filled.svg", "Regular": "ic_fluent_alert_24_regular.svg"}},
	{"name": "Camera", "files": {"Filled": "ic_fluent_camera_24_filled.svg"}}
]`

const emojiDoc = `[
	{"name": "Rocket", "glyph": "🚀", "unicode": "1F680", "group": "Travel & Places", "styles": ["3D", "Color", "Flat"]},
	{"name": "Sparkles", "glyph": "✨", "unicode": "2728", "group": "Activities"}
]`

const appsDoc = `[
	{"name": "Files", "link": "https://example.com/files", "tags": ["productivity"], "price": "Free"}
]`

func writeDataset(t *testing.T, dir, name, doc string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))
	return path
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	dir := t.TempDir()
	return New(Sources{
		Apps:  writeDataset(t, dir, "apps.json", appsDoc),
		Icons: writeDataset(t, dir, "icons.json", iconsDoc),
		Emoji: writeDataset(t, dir, "emoji.json", emojiDoc),
	}, nil, nil, nil)
}

func TestIconsExpandPerStyle(t *testing.T) {
	cat := newTestCatalog(t)

	items, err := cat.Provider(domain.KindIcon).Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3, "one item per available style variant")

	assert.Equal(t, "icon/Alert/Filled", items[0].Identity())
	assert.Equal(t, "icon/Alert/Regular", items[1].Identity())
	assert.Equal(t, "icon/Camera/Filled", items[2].Identity())
	assert.Equal(t, "ic_fluent_alert_24_filled.svg", items[0].Files[domain.IconStyleFilled])
}

func TestEmojiExpandPerStyle(t *testing.T) {
	cat := newTestCatalog(t)

	items, err := cat.Provider(domain.KindEmoji).Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "emoji/Rocket/3D", items[0].Identity())
	assert.Equal(t, "🚀", items[0].Glyph)

	// Records with no styles listed default to 3D
	assert.Equal(t, "emoji/Sparkles/3D", items[3].Identity())
}

func TestAppsMapOneToOne(t *testing.T) {
	cat := newTestCatalog(t)

	items, err := cat.Provider(domain.KindApp).Items(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "app/Files", items[0].Identity())
	assert.Equal(t, "Free", items[0].Price)
	assert.Equal(t, []string{"productivity"}, items[0].Tags)
}

func TestHTTPSourceUsesCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte(appsDoc))
	}))
	defer srv.Close()

	st, err := store.New(t.TempDir(), 10*time.Millisecond, nil)
	require.NoError(t, err)
	defer func() { _ = st.Close() }()

	cat := New(Sources{Apps: srv.URL}, store.NewCache(st, time.Hour), nil, nil)
	p := cat.Provider(domain.KindApp)

	_, err = p.Items(context.Background())
	require.NoError(t, err)
	st.Flush()

	_, err = p.Items(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, hits, "second load must be served from the cache")
}

func TestMissingDatasetFileErrors(t *testing.T) {
	cat := New(Sources{Icons: filepath.Join(t.TempDir(), "nope.json")}, nil, nil, nil)
	_, err := cat.Provider(domain.KindIcon).Items(context.Background())
	assert.Error(t, err)
}

func TestUnknownKindHasNoProvider(t *testing.T) {
	cat := newTestCatalog(t)
	assert.Nil(t, cat.Provider(domain.Kind("widget")))
}
