package collections

import (
	"encoding/json"
	"fmt"

	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
	"fluentdeck/internal/notify"
)

// Import creates a collection from user-supplied raw JSON. The payload must
// be a list and contain at least one well-formed item (a name plus a kind
// tag); malformed entries are silently filtered out. Imported lists are
// stored as-is, without re-checking the class homogeneity rule, so a
// hand-crafted file can round-trip exactly what it exported.
func (m *manager) Import(name string, raw []byte) bool {
	m.mu.Lock()
	if _, exists := m.collections[name]; exists {
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Collection %q already exists", name), notify.Error)
		return false
	}
	m.mu.Unlock()

	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		m.notifier.Notify("Import data is not a list", notify.Error)
		return false
	}

	var items []domain.Item
	for _, entry := range entries {
		var item domain.Item
		if err := json.Unmarshal(entry, &item); err != nil {
			continue
		}
		if !item.WellFormed() {
			continue
		}
		items = append(items, item)
	}

	if len(items) == 0 {
		m.notifier.Notify("No valid items found in import data", notify.Error)
		return false
	}

	m.mu.Lock()
	// Re-check under the lock; an external reload may have raced us
	if _, exists := m.collections[name]; exists {
		m.mu.Unlock()
		m.notifier.Notify(fmt.Sprintf("Collection %q already exists", name), notify.Error)
		return false
	}
	m.collections[name] = items
	m.persistLocked()
	m.mu.Unlock()

	if m.bus != nil {
		m.bus.Publish(eventbus.CollectionImportedEvent{Name: name, Count: len(items)})
	}
	m.notifier.Notify(fmt.Sprintf("Imported %d items into %q", len(items), name), notify.Success)
	return true
}
