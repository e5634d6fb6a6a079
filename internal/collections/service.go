// Package collections manages the persisted, user-named item collections.
// A collection never mixes apps with emoji/icons, and the Favorites
// collection always exists and cannot be deleted or renamed.
package collections

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
	"fluentdeck/internal/notify"
	"fluentdeck/internal/store"
)

// FavoritesName is the distinguished collection that always exists
const FavoritesName = "Favorites"

// StorageKey is where the collections map is persisted
const StorageKey = "fluentdeck-collections"

// Manager is the interface for collection management
type Manager interface {
	Create(name string) bool
	Delete(name string)
	Rename(oldName, newName string) bool
	AddItem(name string, item domain.Item) bool
	RemoveItem(name string, item domain.Item)
	Contains(name string, item domain.Item) bool
	CollectionsFor(item domain.Item) []string
	TypeOf(name string) domain.CollectionType
	Names() []string
	Items(name string) []domain.Item
	Import(name string, raw []byte) bool
}

// manager is the concrete implementation
type manager struct {
	mu          sync.RWMutex
	collections map[string][]domain.Item

	st       *store.Store
	bus      eventbus.EventBus
	notifier notify.Notifier
	logger   *zap.SugaredLogger
}

// NewManager loads the persisted collections map, runs the one-time legacy
// favorites migration, and subscribes to external store changes
func NewManager(st *store.Store, bus eventbus.EventBus, notifier notify.Notifier, logger *zap.SugaredLogger) Manager {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}

	m := &manager{
		collections: make(map[string][]domain.Item),
		st:          st,
		bus:         bus,
		notifier:    notifier,
		logger:      logger,
	}

	m.st.Load(StorageKey, &m.collections)
	if m.collections == nil {
		m.collections = make(map[string][]domain.Item)
	}
	m.ensureFavorites()

	if m.migrateLegacyFavorites() {
		// The legacy keys are already gone from disk, so the merged map must
		// land immediately; waiting out the debounce risks losing them.
		m.persist()
		m.st.Flush()
	}

	// Another process editing the store replaces our copy wholesale;
	// last write wins, no merging.
	m.st.Subscribe(StorageKey, m.reload)

	return m
}

// Create inserts an empty collection. Duplicate names are rejected.
func (m *manager) Create(name string) bool {
	m.mu.Lock()
	if _, exists := m.collections[name]; exists {
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Collection %q already exists", name), notify.Error)
		return false
	}
	m.collections[name] = []domain.Item{}
	m.persistLocked()
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionCreatedEvent{Name: name})
	}
	m.notifier.Notify(fmt.Sprintf("Created collection %q", name), notify.Success)
	return true
}

// Delete removes a collection. Deleting Favorites is silently ignored.
func (m *manager) Delete(name string) {
	if name == FavoritesName {
		return
	}

	m.mu.Lock()
	if _, exists := m.collections[name]; !exists {
		m.mu.Unlock()
		return
	}
	delete(m.collections, name)
	m.persistLocked()
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionDeletedEvent{Name: name})
	}
	m.notifier.Notify(fmt.Sprintf("Deleted collection %q", name), notify.Success)
}

// Rename moves a collection to a new name. Favorites, blank names and
// duplicate targets are rejected.
func (m *manager) Rename(oldName, newName string) bool {
	if oldName == FavoritesName {
		m.notifier.Notify("Favorites cannot be renamed", notify.Error)
		return false
	}
	if strings.TrimSpace(newName) == "" {
		m.notifier.Notify("Collection name cannot be empty", notify.Error)
		return false
	}

	m.mu.Lock()
	items, exists := m.collections[oldName]
	if !exists {
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Collection %q does not exist", oldName), notify.Error)
		return false
	}
	if _, taken := m.collections[newName]; taken {
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Collection %q already exists", newName), notify.Error)
		return false
	}
	m.collections[newName] = items
	delete(m.collections, oldName)
	m.persistLocked()
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionRenamedEvent{OldName: oldName, NewName: newName})
	}
	m.notifier.Notify(fmt.Sprintf("Renamed %q to %q", oldName, newName), notify.Success)
	return true
}

// AddItem appends an item to a collection. Mixing apps with emoji/icons is
// rejected and the collection left unchanged; re-adding an identity already
// present is an idempotent no-op.
func (m *manager) AddItem(name string, item domain.Item) bool {
	m.mu.Lock()
	items, exists := m.collections[name]
	if !exists {
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Collection %q does not exist", name), notify.Error)
		return false
	}

	if len(items) > 0 && items[0].Kind.Class() != item.Kind.Class() {
		m.mu.Unlock()
		m.notifier.Notify("Cannot mix apps with emoji/icons in one collection", notify.Error)
		return false
	}

	id := item.Identity()
	for _, existing := range items {
		if existing.Identity() == id {
			m.mu.Unlock()
			return true
		}
	}

	m.collections[name] = append(items, item)
	m.persistLocked()
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionItemEvent{Collection: name, Identity: id, Added: true})
	}
	return true
}

// RemoveItem deletes any entry whose identity matches; absent items are a no-op
func (m *manager) RemoveItem(name string, item domain.Item) {
	id := item.Identity()

	m.mu.Lock()
	items, exists := m.collections[name]
	if !exists {
		m.mu.Unlock()
		return
	}

	removed := false
	kept := items[:0]
	for _, existing := range items {
		if existing.Identity() == id {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	if !removed {
		m.mu.Unlock()
		return
	}
	m.collections[name] = kept
	m.persistLocked()
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionItemEvent{Collection: name, Identity: id, Added: false})
	}
}

// Contains checks whether the collection holds the item's identity
func (m *manager) Contains(name string, item domain.Item) bool {
	id := item.Identity()

	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, existing := range m.collections[name] {
		if existing.Identity() == id {
			return true
		}
	}
	return false
}

// CollectionsFor returns the names of all collections containing the item
func (m *manager) CollectionsFor(item domain.Item) []string {
	id := item.Identity()

	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name, items := range m.collections {
		for _, existing := range items {
			if existing.Identity() == id {
				names = append(names, name)
				break
			}
		}
	}
	sortNames(names)
	return names
}

// TypeOf derives a collection's effective kind from its first item
func (m *manager) TypeOf(name string) domain.CollectionType {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.collections[name]
	if len(items) == 0 {
		return domain.CollectionEmpty
	}
	if items[0].Kind.Class() == domain.ClassApp {
		return domain.CollectionApp
	}
	return domain.CollectionMedia
}

// Names returns all collection names, Favorites first, rest alphabetical
func (m *manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.collections))
	for name := range m.collections {
		names = append(names, name)
	}
	sortNames(names)
	return names
}

// Items returns a copy of the collection's items in stored order
func (m *manager) Items(name string) []domain.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items := m.collections[name]
	out := make([]domain.Item, len(items))
	copy(out, items)
	return out
}

// persist saves the collections map through the debounced store
func (m *manager) persist() {
	m.mu.RLock()
	m.persistLocked()
	m.mu.RUnlock()
}

// persistLocked saves while the caller holds the lock
func (m *manager) persistLocked() {
	m.st.Save(StorageKey, m.collections)
}

// ensureFavorites seeds the protected collection when missing
func (m *manager) ensureFavorites() {
	if _, ok := m.collections[FavoritesName]; !ok {
		m.collections[FavoritesName] = []domain.Item{}
	}
}

// reload replaces the in-memory map wholesale after an external change
func (m *manager) reload() {
	fresh := make(map[string][]domain.Item)
	if !m.st.Load(StorageKey, &fresh) {
		return
	}

	m.mu.Lock()
	m.collections = fresh
	m.ensureFavorites()
	m.mu.Unlock()

	m.logger.Infow("collections reloaded after external change")
	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionsReloadedEvent{})
	}
}

// sortNames orders names alphabetically with Favorites pinned first
func sortNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		if names[i] == FavoritesName {
			return true
		}
		if names[j] == FavoritesName {
			return false
		}
		return names[i] < names[j]
	})
}
