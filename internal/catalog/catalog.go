// Package catalog loads the three gallery datasets (apps, icons, emoji)
// from static JSON documents and answers asset-URL lookups for export.
package catalog

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
	"fluentdeck/internal/store"
)

// Provider exposes a flat item list for one gallery kind
type Provider interface {
	Kind() domain.Kind
	Items(ctx context.Context) ([]domain.Item, error)
}

// iconRecord is one entry of the icons dataset
type iconRecord struct {
	Name  string            `json:"name"`
	Files map[string]string `json:"files"` // style key -> asset filename
}

// emojiRecord is one entry of the emoji dataset
type emojiRecord struct {
	Name    string   `json:"name"`
	Glyph   string   `json:"glyph"`
	Unicode string   `json:"unicode"`
	Group   string   `json:"group"`
	Styles  []string `json:"styles"`
}

// appRecord is one entry of the apps dataset
type appRecord struct {
	Name  string   `json:"name"`
	Link  string   `json:"link"`
	Tags  []string `json:"tags"`
	Price string   `json:"price"`
}

// datasetProvider fetches a JSON dataset from a file path or URL, going
// through the validity-windowed cache first
type datasetProvider struct {
	kind    domain.Kind
	source  string
	cache   *store.Cache
	client  *http.Client
	bus     eventbus.EventBus
	logger  *zap.SugaredLogger
	convert func(data []byte) ([]domain.Item, error)
}

// Kind returns the gallery kind this provider serves
func (p *datasetProvider) Kind() domain.Kind {
	return p.kind
}

// Items returns the dataset as a flat item list. The raw document is cached;
// a fresh cache entry skips the fetch entirely.
func (p *datasetProvider) Items(ctx context.Context) ([]domain.Item, error) {
	cacheKey := "dataset-" + string(p.kind)

	var data []byte
	if p.cache != nil && p.cache.Get(cacheKey, &data) {
		items, err := p.convert(data)
		if err == nil {
			return items, nil
		}
		p.logger.Warnw("cached dataset unusable, refetching", "kind", p.kind, "error", err)
	}

	data, err := p.fetch(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "load %s dataset", p.kind)
	}

	items, err := p.convert(data)
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s dataset", p.kind)
	}

	if p.cache != nil {
		p.cache.Put(cacheKey, data)
	}
	if p.bus != nil {
		p.bus.Publish(eventbus.CatalogLoadedEvent{Kind: p.kind, Count: len(items)})
	}
	return items, nil
}

// fetch reads the dataset document from its source
func (p *datasetProvider) fetch(ctx context.Context) ([]byte, error) {
	if !strings.HasPrefix(p.source, "http://") && !strings.HasPrefix(p.source, "https://") {
		return os.ReadFile(p.source)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("unexpected status %d from %s", resp.StatusCode, p.source)
	}
	return io.ReadAll(resp.Body)
}

// convertIcons expands each icon record into one item per style variant
func convertIcons(data []byte) ([]domain.Item, error) {
	var records []iconRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, rec := range records {
		for _, style := range []string{domain.IconStyleFilled, domain.IconStyleRegular, domain.IconStyleColor} {
			if _, ok := rec.Files[style]; !ok {
				continue
			}
			items = append(items, domain.Item{
				Kind:  domain.KindIcon,
				Name:  rec.Name,
				Style: style,
				Files: rec.Files,
			})
		}
	}
	return items, nil
}

// convertEmoji expands each emoji record into one item per available style
func convertEmoji(data []byte) ([]domain.Item, error) {
	var records []emojiRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	var items []domain.Item
	for _, rec := range records {
		styles := rec.Styles
		if len(styles) == 0 {
			styles = []string{domain.EmojiStyle3D}
		}
		for _, style := range styles {
			items = append(items, domain.Item{
				Kind:    domain.KindEmoji,
				Name:    rec.Name,
				Style:   style,
				Glyph:   rec.Glyph,
				Unicode: rec.Unicode,
				Group:   rec.Group,
			})
		}
	}
	return items, nil
}

// convertApps maps app records one to one; apps have no style variants
func convertApps(data []byte) ([]domain.Item, error) {
	var records []appRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}

	items := make([]domain.Item, 0, len(records))
	for _, rec := range records {
		items = append(items, domain.Item{
			Kind:  domain.KindApp,
			Name:  rec.Name,
			Link:  rec.Link,
			Tags:  rec.Tags,
			Price: rec.Price,
		})
	}
	return items, nil
}

// Sources names the three dataset documents (file paths or URLs)
type Sources struct {
	Apps  string
	Icons string
	Emoji string
}

// Catalog bundles the three gallery providers
type Catalog struct {
	apps  Provider
	icons Provider
	emoji Provider
}

// New creates a catalog over the given dataset sources
func New(src Sources, cache *store.Cache, bus eventbus.EventBus, logger *zap.SugaredLogger) *Catalog {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	client := &http.Client{Timeout: 30 * time.Second}

	provider := func(kind domain.Kind, source string, convert func([]byte) ([]domain.Item, error)) Provider {
		return &datasetProvider{
			kind:    kind,
			source:  source,
			cache:   cache,
			client:  client,
			bus:     bus,
			logger:  logger,
			convert: convert,
		}
	}

	return &Catalog{
		apps:  provider(domain.KindApp, src.Apps, convertApps),
		icons: provider(domain.KindIcon, src.Icons, convertIcons),
		emoji: provider(domain.KindEmoji, src.Emoji, convertEmoji),
	}
}

// Provider returns the provider for a kind
func (c *Catalog) Provider(kind domain.Kind) Provider {
	switch kind {
	case domain.KindApp:
		return c.apps
	case domain.KindIcon:
		return c.icons
	case domain.KindEmoji:
		return c.emoji
	}
	return nil
}
