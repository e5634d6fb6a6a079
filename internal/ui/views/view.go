package views

import (
	"fmt"
	"strings"

	"fluentdeck/internal/domain"
)

// CollectionRow is what the collections tab shows per collection
type CollectionRow struct {
	Name  string
	Count int
	Type  domain.CollectionType
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	Tabs      []string
	ActiveTab int

	Items       []domain.Item
	Cursor      int
	Offset      int
	ShowGlyphs  bool
	IsSelected  func(domain.Item) bool
	InFavorites func(domain.Item) bool

	Collections      []CollectionRow
	CollectionCursor int

	SearchQuery  string
	PromptLabel  string // non-empty while a text prompt is active
	PromptView   string // rendered text input
	Toast        string
	ToastSev     domain.Severity
	SelectionOn  bool
	SelectionNum int
	Exporting    bool
	Loading      bool
}

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	return &Renderer{styles: NewStyles()}
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderHeader(state))
	content.WriteString("\n")

	if state.PromptLabel != "" {
		content.WriteString(r.styles.Search.Render(state.PromptLabel+" ") + state.PromptView)
		content.WriteString("\n")
	} else if state.SearchQuery != "" {
		content.WriteString(r.styles.Search.Render("search: "+state.SearchQuery) +
			r.styles.Dim.Render("  (esc clears)"))
		content.WriteString("\n")
	}

	if state.ActiveTab == len(state.Tabs)-1 {
		content.WriteString(r.renderCollections(state))
	} else {
		content.WriteString(r.renderGallery(state))
	}

	content.WriteString("\n")
	content.WriteString(r.renderStatusBar(state))

	return r.styles.Main.Render(content.String())
}

// renderHeader draws the title and gallery tabs
func (r *Renderer) renderHeader(state ViewState) string {
	parts := make([]string, 0, len(state.Tabs)+1)
	parts = append(parts, r.styles.Title.Render("fluentdeck"))
	for i, tab := range state.Tabs {
		if i == state.ActiveTab {
			parts = append(parts, r.styles.TabActive.Render(tab))
		} else {
			parts = append(parts, r.styles.TabInactive.Render(tab))
		}
	}
	return strings.Join(parts, "  ")
}

// renderGallery draws the visible slice of the active gallery
func (r *Renderer) renderGallery(state ViewState) string {
	if state.Loading {
		return r.styles.Dim.Render("loading…")
	}
	if len(state.Items) == 0 {
		return r.styles.Dim.Render("no items match")
	}

	visible := r.visibleRows(state)
	content := &strings.Builder{}

	end := state.Offset + visible
	if end > len(state.Items) {
		end = len(state.Items)
	}

	for i := state.Offset; i < end; i++ {
		item := state.Items[i]
		line := r.renderItemRow(state, item, i == state.Cursor)
		content.WriteString(line)
		content.WriteString("\n")
	}

	if len(state.Items) > visible {
		content.WriteString(r.styles.Scroll.Render(
			fmt.Sprintf("%d–%d of %d", state.Offset+1, end, len(state.Items))))
		content.WriteString("\n")
	}

	return content.String()
}

// renderItemRow draws one gallery card line
func (r *Renderer) renderItemRow(state ViewState, item domain.Item, cursor bool) string {
	mark := "  "
	if state.IsSelected != nil && state.IsSelected(item) {
		mark = r.styles.SelectionMark.Render("✓ ")
	}

	fav := ""
	if state.InFavorites != nil && state.InFavorites(item) {
		fav = " " + r.styles.FavoriteMark.Render("♥")
	}

	glyph := ""
	if state.ShowGlyphs && item.Glyph != "" {
		glyph = r.styles.Glyph.Render(item.Glyph) + " "
	}

	name := item.Name
	if item.Style != "" {
		name += r.styles.Dim.Render(" · " + item.Style)
	}
	if item.Kind == domain.KindApp && item.Price != "" {
		name += r.styles.Dim.Render(" · " + item.Price)
	}

	line := mark + glyph + name + fav
	if cursor {
		return r.styles.Cursor.Render(line)
	}
	return line
}

// renderCollections draws the collections tab
func (r *Renderer) renderCollections(state ViewState) string {
	if len(state.Collections) == 0 {
		return r.styles.Dim.Render("no collections")
	}

	content := &strings.Builder{}
	for i, row := range state.Collections {
		line := fmt.Sprintf("%s  %s", row.Name,
			r.styles.Dim.Render(fmt.Sprintf("(%d, %s)", row.Count, row.Type)))
		if i == state.CollectionCursor {
			line = r.styles.Cursor.Render(line)
		}
		content.WriteString(line)
		content.WriteString("\n")
	}
	return content.String()
}

// renderStatusBar draws the toast / selection status line plus key hints
func (r *Renderer) renderStatusBar(state ViewState) string {
	var status string
	switch {
	case state.Toast != "":
		style := r.styles.ToastInfo
		switch state.ToastSev {
		case domain.SeverityError:
			style = r.styles.ToastError
		case domain.SeveritySuccess:
			style = r.styles.ToastSuccess
		}
		status = style.Render(state.Toast)
	case state.Exporting:
		status = r.styles.Status.Render("exporting…")
	case state.SelectionOn:
		status = r.styles.Selected.Render(fmt.Sprintf("%d selected", state.SelectionNum)) +
			r.styles.Dim.Render("  space toggle · ctrl+a all · e export · esc done")
	default:
		status = r.styles.Help.Render("/ search · space select · f favorite · tab switch · ? help · q quit")
	}
	return status
}

// visibleRows computes how many item rows fit the terminal
func (r *Renderer) visibleRows(state ViewState) int {
	// Header, search line, status bar, padding
	rows := state.Height - 7
	if rows < 5 {
		rows = 5
	}
	return rows
}

// VisibleRows exposes the row count for viewport math in the model
func (r *Renderer) VisibleRows(state ViewState) int {
	return r.visibleRows(state)
}
