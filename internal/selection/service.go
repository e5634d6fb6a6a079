// Package selection is the multi-select state machine shared by all three
// galleries. It is page-session scoped and never persisted.
package selection

import (
	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
)

// Service handles selection logic. States are {Inactive, Active}; Toggle is
// a valid implicit entry path next to the explicit Start, and emptying the
// selection through toggles deactivates it again.
type Service struct {
	state *State
	bus   eventbus.EventBus
}

// NewService creates a new selection service
func NewService(bus eventbus.EventBus) *Service {
	return &Service{
		state: newState(),
		bus:   bus,
	}
}

// Start enters selection mode seeded with a single item, recording the
// gallery context it was entered from. Re-entry simply reseeds.
func (s *Service) Start(item domain.Item, context string) {
	s.reset()
	s.state.Active = true
	s.state.Context = context
	s.add(item)

	s.bus.Publish(eventbus.SelectionStartedEvent{
		Context: context,
		Item:    item,
	})
}

// Stop leaves selection mode and discards the selected items
func (s *Service) Stop() {
	if !s.state.Active && len(s.state.Items) == 0 {
		return
	}
	s.reset()
	s.bus.Publish(eventbus.SelectionClearedEvent{})
}

// Toggle flips an item in or out of the selection. Adding while inactive
// activates selection mode; removing the last item deactivates it and
// clears the context.
func (s *Service) Toggle(item domain.Item) {
	id := item.Identity()

	if _, ok := s.state.index[id]; ok {
		s.remove(id)
		if len(s.state.Items) == 0 {
			s.state.Active = false
			s.state.Context = ""
			s.bus.Publish(eventbus.SelectionClearedEvent{})
			return
		}
		s.bus.Publish(eventbus.SelectionChangedEvent{
			Removed: []string{id},
			Total:   len(s.state.Items),
		})
		return
	}

	s.add(item)
	s.state.Active = true
	s.bus.Publish(eventbus.SelectionChangedEvent{
		Added: []string{id},
		Total: len(s.state.Items),
	})
}

// SelectAll replaces the selection wholesale with the given items and
// activates. The context is only adopted when none is set yet, so repeated
// select-all on the same gallery does not disturb it. Empty input is a no-op.
func (s *Service) SelectAll(items []domain.Item, context string) {
	if len(items) == 0 {
		return
	}

	s.state.Items = s.state.Items[:0]
	s.state.index = make(map[string]struct{}, len(items))
	for _, item := range items {
		s.add(item)
	}
	s.state.Active = true
	if s.state.Context == "" {
		s.state.Context = context
	}

	s.bus.Publish(eventbus.AllSelectedEvent{
		Context: s.state.Context,
		Total:   len(s.state.Items),
	})
}

// IsSelected checks membership by identity. O(1); called once per rendered
// card, so it must stay cheap.
func (s *Service) IsSelected(item domain.Item) bool {
	_, ok := s.state.index[item.Identity()]
	return ok
}

// HandleLocationChange enforces the context invariant: navigating to a
// gallery other than the one that activated selection clears it. A selection
// entered implicitly through Toggle never recorded a context, so any
// navigation away counts as leaving its gallery.
func (s *Service) HandleLocationChange(context string) {
	if s.state.Active && s.state.Context != context {
		s.Stop()
	}
}

// Active reports whether selection mode is on
func (s *Service) Active() bool {
	return s.state.Active
}

// Context returns the gallery that activated selection mode
func (s *Service) Context() string {
	return s.state.Context
}

// Count returns the number of selected items
func (s *Service) Count() int {
	return len(s.state.Items)
}

// Items returns the selected items in insertion order
func (s *Service) Items() []domain.Item {
	items := make([]domain.Item, len(s.state.Items))
	copy(items, s.state.Items)
	return items
}

// add appends an item, skipping identities already present
func (s *Service) add(item domain.Item) {
	id := item.Identity()
	if _, ok := s.state.index[id]; ok {
		return
	}
	s.state.Items = append(s.state.Items, item)
	s.state.index[id] = struct{}{}
}

// remove deletes the entry whose identity matches
func (s *Service) remove(id string) {
	delete(s.state.index, id)
	for i, item := range s.state.Items {
		if item.Identity() == id {
			s.state.Items = append(s.state.Items[:i], s.state.Items[i+1:]...)
			return
		}
	}
}

// reset returns the state to empty and inactive
func (s *Service) reset() {
	s.state.Active = false
	s.state.Context = ""
	s.state.Items = s.state.Items[:0]
	s.state.index = make(map[string]struct{})
}
