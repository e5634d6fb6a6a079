package collections

import "fluentdeck/internal/domain"

// Legacy storage keys from before collections existed: two separate
// favorites lists, one per media kind. Consumed once, then deleted.
const (
	legacyEmojiFavoritesKey = "fluentdeck-favorites"
	legacyIconFavoritesKey  = "fluentdeck-icon-favorites"
)

// migrateLegacyFavorites merges the old per-kind favorites lists into the
// Favorites collection, tagging each entry with its kind, and removes the
// legacy keys. Runs at most once: once the keys are gone it is a no-op,
// which also makes a re-run idempotent. Reports whether anything changed.
func (m *manager) migrateLegacyFavorites() bool {
	migrated := false
	migrated = m.migrateLegacyList(legacyEmojiFavoritesKey, domain.KindEmoji) || migrated
	migrated = m.migrateLegacyList(legacyIconFavoritesKey, domain.KindIcon) || migrated
	return migrated
}

// migrateLegacyList folds one legacy list into Favorites
func (m *manager) migrateLegacyList(key string, kind domain.Kind) bool {
	if !m.st.Has(key) {
		return false
	}

	var legacy []domain.Item
	if m.st.Load(key, &legacy) {
		favorites := m.collections[FavoritesName]
		seen := make(map[string]struct{}, len(favorites))
		for _, item := range favorites {
			seen[item.Identity()] = struct{}{}
		}

		for _, item := range legacy {
			// Legacy entries predate the kind tag
			item.Kind = kind
			if !item.WellFormed() {
				continue
			}
			if _, dup := seen[item.Identity()]; dup {
				continue
			}
			favorites = append(favorites, item)
			seen[item.Identity()] = struct{}{}
		}
		m.collections[FavoritesName] = favorites
	}

	m.st.Delete(key)
	m.logger.Infow("migrated legacy favorites", "key", key, "kind", kind)
	return true
}
