package catalog

import (
	"strings"

	"fluentdeck/internal/domain"
)

// Matches checks if an item matches the search query. Name, group and tags
// are compared case-insensitively; an empty query matches everything.
func Matches(item domain.Item, query string) bool {
	if query == "" {
		return true
	}

	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(item.Name), q) {
		return true
	}
	if item.Group != "" && strings.Contains(strings.ToLower(item.Group), q) {
		return true
	}
	for _, tag := range item.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Filter returns the items matching the query, preserving order
func Filter(items []domain.Item, query string) []domain.Item {
	if query == "" {
		return items
	}

	var matched []domain.Item
	for _, item := range items {
		if Matches(item, query) {
			matched = append(matched, item)
		}
	}
	return matched
}
