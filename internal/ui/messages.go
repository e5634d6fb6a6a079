package ui

import (
	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
	"fluentdeck/internal/export"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// catalogMsg carries a loaded gallery dataset
type catalogMsg struct {
	kind  domain.Kind
	items []domain.Item
	err   error
}

// searchAppliedMsg fires when the search debounce window elapses
type searchAppliedMsg struct {
	seq int
}

// toastExpiredMsg clears the transient status message
type toastExpiredMsg struct {
	seq int
}

// exportDoneMsg contains the result of a batch export
type exportDoneMsg struct {
	result *export.Result
	err    error
}

// helpClosedMsg contains the result of the help pager
type helpClosedMsg struct {
	err error
}
