package selection

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
)

func newTestService() *Service {
	return NewService(eventbus.New(nil))
}

func icon(name string) domain.Item {
	return domain.Item{Kind: domain.KindIcon, Name: name, Style: domain.IconStyleFilled}
}

func TestStartThenToggleOffDeactivates(t *testing.T) {
	s := newTestService()
	item := icon("Alert")

	s.Start(item, "Icons")
	require.True(t, s.Active())
	require.Equal(t, 1, s.Count())
	require.Equal(t, "Icons", s.Context())
	require.True(t, s.IsSelected(item))

	// Toggling off the last item leaves selection mode entirely
	s.Toggle(item)
	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "", s.Context())
	assert.False(t, s.IsSelected(item))
}

func TestToggleIsImplicitEntry(t *testing.T) {
	s := newTestService()
	item := icon("Camera")

	require.False(t, s.Active())
	s.Toggle(item)
	assert.True(t, s.Active(), "first toggle-add should activate selection mode")
	assert.True(t, s.IsSelected(item))
}

func TestIndexNeverDivergesFromItems(t *testing.T) {
	s := newTestService()

	items := make([]domain.Item, 10)
	for i := range items {
		items[i] = icon(fmt.Sprintf("Icon%d", i))
	}

	// Drive an arbitrary toggle sequence and check consistency at each step
	sequence := []int{0, 3, 7, 3, 0, 1, 2, 1, 9, 7}
	for _, idx := range sequence {
		s.Toggle(items[idx])

		selected := s.Items()
		assert.Equal(t, len(selected), s.Count())
		for _, item := range items {
			inList := false
			for _, sel := range selected {
				if sel.Identity() == item.Identity() {
					inList = true
					break
				}
			}
			assert.Equal(t, inList, s.IsSelected(item),
				"IsSelected(%s) must agree with the materialized list", item.Name)
		}
	}
}

func TestSelectAll(t *testing.T) {
	s := newTestService()
	items := []domain.Item{icon("A"), icon("B"), icon("C")}

	s.SelectAll(items, "Icons")
	require.True(t, s.Active())
	require.Equal(t, 3, s.Count())
	require.Equal(t, "Icons", s.Context())
	for _, item := range items {
		assert.True(t, s.IsSelected(item))
	}

	// A second select-all must not disturb the already-set context
	more := append(items, icon("D"))
	s.SelectAll(more, "Emoji")
	assert.Equal(t, 4, s.Count())
	assert.Equal(t, "Icons", s.Context())
}

func TestSelectAllEmptyIsNoop(t *testing.T) {
	s := newTestService()
	s.SelectAll(nil, "Icons")
	assert.False(t, s.Active())
	assert.Equal(t, "", s.Context())
}

func TestSelectAllReplacesWholesale(t *testing.T) {
	s := newTestService()
	old := icon("Old")
	s.Start(old, "Icons")

	s.SelectAll([]domain.Item{icon("New1"), icon("New2")}, "Icons")
	assert.False(t, s.IsSelected(old))
	assert.Equal(t, 2, s.Count())
}

func TestStartReseedsExistingSelection(t *testing.T) {
	s := newTestService()
	s.SelectAll([]domain.Item{icon("A"), icon("B")}, "Icons")

	seed := icon("C")
	s.Start(seed, "Emoji")
	assert.Equal(t, 1, s.Count())
	assert.Equal(t, "Emoji", s.Context())
	assert.True(t, s.IsSelected(seed))
}

func TestLocationChangeClearsMismatchedContext(t *testing.T) {
	s := newTestService()
	s.Start(icon("Alert"), "Icons")

	// Same context: nothing happens
	s.HandleLocationChange("Icons")
	require.True(t, s.Active())

	// Different context: selection auto-clears
	s.HandleLocationChange("Emoji")
	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Count())
	assert.Equal(t, "", s.Context())
}

func TestLocationChangeClearsImplicitSelection(t *testing.T) {
	s := newTestService()

	// Toggle-entry never records a context, so navigating anywhere clears it
	s.Toggle(icon("Alert"))
	require.True(t, s.Active())
	require.Equal(t, "", s.Context())

	s.HandleLocationChange("Emoji")
	assert.False(t, s.Active())
	assert.Equal(t, 0, s.Count())
}

func TestLocationChangeWhileInactiveIsNoop(t *testing.T) {
	s := newTestService()
	s.HandleLocationChange("Emoji")
	assert.False(t, s.Active())
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	s := newTestService()
	s.Toggle(icon("B"))
	s.Toggle(icon("A"))
	s.Toggle(icon("C"))

	items := s.Items()
	require.Len(t, items, 3)
	assert.Equal(t, "B", items[0].Name)
	assert.Equal(t, "A", items[1].Name)
	assert.Equal(t, "C", items[2].Name)
}

func TestToggleSameIdentityAcrossGalleries(t *testing.T) {
	s := newTestService()

	a := domain.Item{Kind: domain.KindEmoji, Name: "Rocket", Style: domain.EmojiStyle3D, Glyph: "🚀"}
	b := domain.Item{Kind: domain.KindEmoji, Name: "Rocket", Style: domain.EmojiStyle3D}

	s.Toggle(a)
	require.True(t, s.IsSelected(b), "identity ignores incidental metadata")

	s.Toggle(b)
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.Active())
}
