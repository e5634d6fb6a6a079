package selection

import "fluentdeck/internal/domain"

// State holds selection state. Items preserves insertion order for display;
// index mirrors it for O(1) membership checks. Every add or remove touches
// both, so they can never diverge.
type State struct {
	Active  bool
	Items   []domain.Item
	Context string // gallery that activated selection mode, "" when inactive

	index map[string]struct{}
}

// newState creates an empty, inactive selection state
func newState() *State {
	return &State{
		index: make(map[string]struct{}),
	}
}
