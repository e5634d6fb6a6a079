package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fluentdeck/internal/catalog"
	"fluentdeck/internal/collections"
	"fluentdeck/internal/config"
	"fluentdeck/internal/domain"
	"fluentdeck/internal/eventbus"
	"fluentdeck/internal/export"
	"fluentdeck/internal/selection"
	"fluentdeck/internal/store"
	"fluentdeck/internal/ui/views"
)

// Tab identifies one of the top-level views. The tab name doubles as the
// selection activation context, so switching tabs is a location change.
type Tab int

// Tabs
const (
	TabApps Tab = iota
	TabIcons
	TabEmoji
	TabCollections
)

var tabNames = []string{"Apps", "Icons", "Emoji", "Collections"}

// String returns the tab's display name
func (t Tab) String() string { return tabNames[t] }

// Kind maps a gallery tab to its item kind; the collections tab has none
func (t Tab) Kind() domain.Kind {
	switch t {
	case TabApps:
		return domain.KindApp
	case TabIcons:
		return domain.KindIcon
	case TabEmoji:
		return domain.KindEmoji
	}
	return ""
}

// promptMode says what the shared text input is currently collecting
type promptMode int

const (
	promptNone promptMode = iota
	promptSearch
	promptNewCollection
	promptRenameCollection
)

// Persisted UI-state keys
const (
	searchTermKey = "ui-search-term"
	activeTabKey  = "ui-active-tab"
)

const (
	searchDebounce = 250 * time.Millisecond
	toastDuration  = 3 * time.Second
)

// Model represents the UI state
type Model struct {
	bus       eventbus.EventBus
	cfg       *config.Config
	st        *store.Store
	sel       *selection.Service
	cols      collections.Manager
	exporter  *export.Service
	cat       *catalog.Catalog
	eventChan <-chan eventbus.DomainEvent

	renderer *views.Renderer
	helpOps  *HelpOps

	width  int
	height int

	tab       Tab
	galleries map[domain.Kind][]domain.Item
	loading   map[domain.Kind]bool
	cursor    int
	offset    int
	colCursor int

	input      textinput.Model
	prompt     promptMode
	renameFrom string
	query      string
	searchSeq  int

	toast    string
	toastSev domain.Severity
	toastSeq int

	exporting bool
}

// NewModel creates a new UI model
func NewModel(
	bus eventbus.EventBus,
	cfg *config.Config,
	st *store.Store,
	sel *selection.Service,
	cols collections.Manager,
	exporter *export.Service,
	cat *catalog.Catalog,
	eventChan <-chan eventbus.DomainEvent,
) *Model {
	input := textinput.New()
	input.Placeholder = "type to search"
	input.CharLimit = 64

	m := &Model{
		bus:       bus,
		cfg:       cfg,
		st:        st,
		sel:       sel,
		cols:      cols,
		exporter:  exporter,
		cat:       cat,
		eventChan: eventChan,
		renderer:  views.NewRenderer(),
		helpOps:   NewHelpOps(nil),
		galleries: make(map[domain.Kind][]domain.Item),
		loading: map[domain.Kind]bool{
			domain.KindApp:   true,
			domain.KindIcon:  true,
			domain.KindEmoji: true,
		},
	}

	// Restore persisted UI state
	var term string
	if st.Load(searchTermKey, &term) {
		m.query = term
	}
	var tab int
	if st.Load(activeTabKey, &tab) && tab >= 0 && tab < len(tabNames) {
		m.tab = Tab(tab)
	}

	m.input = input
	return m
}

// SetProgram hands the model its running Bubble Tea program, needed for
// terminal handover to the help pager
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps.program = p
}

// Init starts dataset loading and event forwarding
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCatalog(domain.KindApp),
		m.loadCatalog(domain.KindIcon),
		m.loadCatalog(domain.KindEmoji),
		m.waitForEvent(),
		textinput.Blink,
	)
}

// loadCatalog fetches one gallery dataset in the background
func (m *Model) loadCatalog(kind domain.Kind) tea.Cmd {
	provider := m.cat.Provider(kind)
	return func() tea.Msg {
		items, err := provider.Items(context.Background())
		return catalogMsg{kind: kind, items: items, err: err}
	}
}

// waitForEvent forwards the next domain event into the update loop
func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		event, ok := <-m.eventChan
		if !ok {
			return nil
		}
		return EventMsg{Event: event}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case EventMsg:
		cmd := m.handleEvent(msg.Event)
		return m, tea.Batch(cmd, m.waitForEvent())

	case catalogMsg:
		m.loading[msg.kind] = false
		if msg.err != nil {
			return m, m.setToast(fmt.Sprintf("Failed to load %s gallery: %v", msg.kind, msg.err), domain.SeverityError)
		}
		m.galleries[msg.kind] = msg.items
		return m, nil

	case searchAppliedMsg:
		if msg.seq == m.searchSeq && m.prompt == promptSearch {
			m.applySearch(m.input.Value())
		}
		return m, nil

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			return m, m.setToast(fmt.Sprintf("Export failed: %v", msg.err), domain.SeverityError)
		}
		m.sel.Stop()
		return m, m.setToast(
			fmt.Sprintf("Exported %d assets to %s (%d skipped)",
				msg.result.Archived, msg.result.Path, msg.result.Skipped),
			domain.SeveritySuccess)

	case helpClosedMsg:
		if msg.err != nil {
			return m, m.setToast(fmt.Sprintf("Help pager failed: %v", msg.err), domain.SeverityError)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleEvent reacts to domain events published by the services
func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.NotificationEvent:
		return m.setToast(e.Message, e.Severity)
	case eventbus.ExportProgressEvent:
		m.toast = fmt.Sprintf("Exporting %d/%d…", e.Done+e.Failed, e.Total)
		m.toastSev = domain.SeverityInfo
	}
	return nil
}

// handleKey dispatches key presses
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "/":
		m.prompt = promptSearch
		m.input.SetValue(m.query)
		m.input.Focus()
		return m, nil

	case "tab":
		m.switchTab((m.tab + 1) % Tab(len(tabNames)))
		return m, nil

	case "shift+tab":
		m.switchTab((m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames)))
		return m, nil

	case "up", "k":
		m.moveCursor(-1)
		return m, nil

	case "down", "j":
		m.moveCursor(1)
		return m, nil

	case "pgup":
		m.moveCursor(-m.pageSize())
		return m, nil

	case "pgdown":
		m.moveCursor(m.pageSize())
		return m, nil

	case " ":
		if item, ok := m.cursorItem(); ok {
			m.sel.Toggle(item)
		}
		return m, nil

	case "v":
		if item, ok := m.cursorItem(); ok {
			m.sel.Start(item, m.tab.String())
		}
		return m, nil

	case "ctrl+a":
		// The prompt branch above already keeps this away from text input
		if items := m.visibleItems(); len(items) > 0 {
			m.sel.SelectAll(items, m.tab.String())
		}
		return m, nil

	case "esc":
		if m.sel.Active() {
			m.sel.Stop()
		} else if m.query != "" {
			m.applySearch("")
		}
		return m, nil

	case "f":
		return m, m.toggleFavorite()

	case "e":
		return m.startExport()

	case "n":
		if m.tab == TabCollections {
			m.prompt = promptNewCollection
			m.input.SetValue("")
			m.input.Focus()
		}
		return m, nil

	case "r":
		if m.tab == TabCollections {
			if name, ok := m.cursorCollection(); ok && name != collections.FavoritesName {
				m.prompt = promptRenameCollection
				m.renameFrom = name
				m.input.SetValue(name)
				m.input.Focus()
			}
		}
		return m, nil

	case "x":
		if m.tab == TabCollections {
			if name, ok := m.cursorCollection(); ok {
				m.cols.Delete(name)
				m.clampCollectionCursor()
			}
		}
		return m, nil

	case "?":
		return m, m.showHelp()
	}

	return m, nil
}

// handlePromptKey feeds keys to the shared text input
func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.prompt == promptSearch {
			m.applySearch("")
		}
		m.closePrompt()
		return m, nil

	case "enter":
		value := m.input.Value()
		mode := m.prompt
		m.closePrompt()

		switch mode {
		case promptSearch:
			m.applySearch(value)
		case promptNewCollection:
			m.cols.Create(value)
		case promptRenameCollection:
			m.cols.Rename(m.renameFrom, value)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if m.prompt == promptSearch {
		// Debounced live search: only the last keystroke in the window applies
		m.searchSeq++
		seq := m.searchSeq
		return m, tea.Batch(cmd, tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchAppliedMsg{seq: seq}
		}))
	}
	return m, cmd
}

// closePrompt resets the text input state
func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.renameFrom = ""
	m.input.Blur()
	m.input.SetValue("")
}

// applySearch sets the active query and persists it as UI state
func (m *Model) applySearch(query string) {
	if m.query == query {
		return
	}
	m.query = query
	m.cursor = 0
	m.offset = 0
	m.st.Save(searchTermKey, query)
}

// switchTab changes the active gallery and lets the selection engine react
// to the location change
func (m *Model) switchTab(next Tab) {
	if next == m.tab {
		return
	}
	m.tab = next
	m.cursor = 0
	m.offset = 0
	m.sel.HandleLocationChange(next.String())
	m.st.Save(activeTabKey, int(next))
}

// toggleFavorite adds or removes the cursor item from Favorites
func (m *Model) toggleFavorite() tea.Cmd {
	item, ok := m.cursorItem()
	if !ok {
		return nil
	}
	if m.cols.Contains(collections.FavoritesName, item) {
		m.cols.RemoveItem(collections.FavoritesName, item)
		return m.setToast(fmt.Sprintf("Removed %s from Favorites", item.Name), domain.SeverityInfo)
	}
	if m.cols.AddItem(collections.FavoritesName, item) {
		return m.setToast(fmt.Sprintf("Added %s to Favorites", item.Name), domain.SeveritySuccess)
	}
	return nil
}

// startExport kicks off a batch export of the current selection
func (m *Model) startExport() (tea.Model, tea.Cmd) {
	if m.exporting || m.sel.Count() == 0 {
		return m, nil
	}

	items := m.sel.Items()
	dest := filepath.Join(m.cfg.ExportDir,
		fmt.Sprintf("fluentdeck-export-%s.zip", time.Now().Format("20060102-150405")))

	m.exporting = true
	return m, func() tea.Msg {
		res, err := m.exporter.Export(context.Background(), items, dest)
		return exportDoneMsg{result: res, err: err}
	}
}

// showHelp opens the key binding reference in the ov pager
func (m *Model) showHelp() tea.Cmd {
	content := NewHelpRenderer().RenderHelpContent()
	return func() tea.Msg {
		return helpClosedMsg{err: m.helpOps.ShowHelpInPager(content)}
	}
}

// setToast shows a transient status message
func (m *Model) setToast(message string, severity domain.Severity) tea.Cmd {
	m.toast = message
	m.toastSev = severity
	m.toastSeq++
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// visibleItems returns the active gallery filtered by the search query
func (m *Model) visibleItems() []domain.Item {
	kind := m.tab.Kind()
	if kind == "" {
		return nil
	}
	return catalog.Filter(m.galleries[kind], m.query)
}

// cursorItem returns the item under the cursor, if any
func (m *Model) cursorItem() (domain.Item, bool) {
	items := m.visibleItems()
	if m.cursor < 0 || m.cursor >= len(items) {
		return domain.Item{}, false
	}
	return items[m.cursor], true
}

// cursorCollection returns the collection name under the cursor
func (m *Model) cursorCollection() (string, bool) {
	names := m.cols.Names()
	if m.colCursor < 0 || m.colCursor >= len(names) {
		return "", false
	}
	return names[m.colCursor], true
}

// moveCursor moves the active list cursor and keeps it in the viewport
func (m *Model) moveCursor(delta int) {
	if m.tab == TabCollections {
		m.colCursor += delta
		m.clampCollectionCursor()
		return
	}

	m.cursor += delta
	max := len(m.visibleItems()) - 1
	if m.cursor > max {
		m.cursor = max
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureCursorVisible()
}

// clampCollectionCursor keeps the collections cursor in range
func (m *Model) clampCollectionCursor() {
	max := len(m.cols.Names()) - 1
	if m.colCursor > max {
		m.colCursor = max
	}
	if m.colCursor < 0 {
		m.colCursor = 0
	}
}

// pageSize is the viewport height in rows
func (m *Model) pageSize() int {
	return m.renderer.VisibleRows(views.ViewState{Height: m.height})
}

// ensureCursorVisible scrolls the viewport to keep the cursor on screen
func (m *Model) ensureCursorVisible() {
	rows := m.pageSize()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the UI
func (m *Model) View() string {
	state := views.ViewState{
		Width:      m.width,
		Height:     m.height,
		Tabs:       tabNames,
		ActiveTab:  int(m.tab),
		Cursor:     m.cursor,
		Offset:     m.offset,
		ShowGlyphs: m.cfg.UISettings.ShowGlyphs,
		IsSelected: m.sel.IsSelected,
		InFavorites: func(item domain.Item) bool {
			return m.cols.Contains(collections.FavoritesName, item)
		},
		CollectionCursor: m.colCursor,
		SearchQuery:      m.query,
		Toast:            m.toast,
		ToastSev:         m.toastSev,
		SelectionOn:      m.sel.Active(),
		SelectionNum:     m.sel.Count(),
		Exporting:        m.exporting,
	}

	if m.prompt != promptNone {
		switch m.prompt {
		case promptSearch:
			state.PromptLabel = "search:"
		case promptNewCollection:
			state.PromptLabel = "new collection:"
		case promptRenameCollection:
			state.PromptLabel = "rename to:"
		}
		state.PromptView = m.input.View()
	}

	if m.tab == TabCollections {
		for _, name := range m.cols.Names() {
			state.Collections = append(state.Collections, views.CollectionRow{
				Name:  name,
				Count: len(m.cols.Items(name)),
				Type:  m.cols.TypeOf(name),
			})
		}
	} else {
		state.Items = m.visibleItems()
		state.Loading = m.loading[m.tab.Kind()]
	}

	return m.renderer.Render(state)
}
