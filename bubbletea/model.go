// Package bubbletea provides a terminal UI picker for clipboard history using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/clipview"
	cvlipgloss "github.com/fwojciec/clipview/lipgloss"
)

// Timing defaults.
const (
	DefaultSearchDelay   = 150 * time.Millisecond
	DefaultBannerTimeout = 3 * time.Second
	doubleClickWindow    = 400 * time.Millisecond
)

// Layout: search box and separator on top, help or banner line at the bottom.
const (
	headerLines  = 2
	footerLines  = 1
	minPreview   = 4
	minListLines = 3
)

// ClipboardChangedMsg tells the model the history changed and must be fetched
// again.
type ClipboardChangedMsg struct{}

type itemsLoadedMsg struct {
	items []clipview.Item
	err   error
}

type searchTickMsg struct {
	seq   int
	query string
}

type pasteResultMsg struct {
	item clipview.Item
	err  error
}

type deleteResultMsg struct {
	id  int64
	err error
}

type bannerTimeoutMsg struct {
	seq int
}

// Model is the Bubble Tea model for picking an item from the clipboard history.
type Model struct {
	// Data
	service clipview.Service
	ctx     context.Context
	list    clipview.ListState

	// UI Components
	search  textinput.Model
	preview viewport.Model

	// State
	ready     bool
	offset    int  // first visible row
	inFlight  bool // paste or delete awaiting its result
	searchSeq int
	banner    string
	bannerSeq int
	lastClick time.Time
	lastRow   int
	pasted    *clipview.Item

	// Rendering
	width, height int
	listHeight    int
	theme         clipview.Theme
	renderer      *lipgloss.Renderer
	detector      clipview.LanguageDetector
	tokenizer     clipview.Tokenizer
	showPreview   bool

	// Timing
	now           func() time.Time
	searchDelay   time.Duration
	bannerTimeout time.Duration

	// Keybindings
	keymap KeyMap
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithTheme sets the theme.
func WithTheme(theme clipview.Theme) ModelOption {
	return func(m *Model) {
		m.theme = theme
	}
}

// WithRenderer sets the lipgloss renderer used for styles.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithLanguageDetector sets the language detector for the preview pane.
func WithLanguageDetector(d clipview.LanguageDetector) ModelOption {
	return func(m *Model) {
		m.detector = d
	}
}

// WithTokenizer sets the tokenizer for syntax highlighting in the preview pane.
func WithTokenizer(t clipview.Tokenizer) ModelOption {
	return func(m *Model) {
		m.tokenizer = t
	}
}

// WithPreview enables or disables the preview pane.
func WithPreview(enabled bool) ModelOption {
	return func(m *Model) {
		m.showPreview = enabled
	}
}

// WithClock sets the time source for relative timestamps and double clicks.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithSearchDelay sets the search debounce interval.
func WithSearchDelay(d time.Duration) ModelOption {
	return func(m *Model) {
		m.searchDelay = d
	}
}

// WithBannerTimeout sets how long the error banner stays visible.
func WithBannerTimeout(d time.Duration) ModelOption {
	return func(m *Model) {
		m.bannerTimeout = d
	}
}

// WithContext sets the context passed to service calls.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithKeyMap sets custom key bindings.
func WithKeyMap(km KeyMap) ModelOption {
	return func(m *Model) {
		m.keymap = km
	}
}

// NewModel creates a Model backed by service. The search box starts focused.
func NewModel(service clipview.Service, opts ...ModelOption) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Search clipboard history"
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.Focus()

	m := Model{
		service:       service,
		ctx:           context.Background(),
		list:          clipview.NewListState(),
		search:        ti,
		lastRow:       clipview.NoSelection,
		showPreview:   true,
		now:           time.Now,
		searchDelay:   DefaultSearchDelay,
		bannerTimeout: DefaultBannerTimeout,
		keymap:        DefaultKeyMap(),
	}

	for _, opt := range opts {
		opt(&m)
	}

	if m.theme == nil {
		m.theme = cvlipgloss.DefaultTheme()
	}
	m.search.PromptStyle = m.style(m.theme.Styles().Prompt)
	return m
}

// Pasted returns the item pasted before the picker closed.
func (m Model) Pasted() (clipview.Item, bool) {
	if m.pasted == nil {
		return clipview.Item{}, false
	}
	return *m.pasted, true
}

// List returns the current list state.
func (m Model) List() clipview.ListState {
	return m.list
}

// Banner returns the error banner text, empty when none is shown.
func (m Model) Banner() string {
	return m.banner
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.fetchItems()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.FocusMsg:
		// Reopened: start from a clean search at the top of a fresh snapshot.
		m.searchSeq++
		m.search.SetValue("")
		m.list = m.list.SetQuery("").Select(0)
		m.offset = 0
		cmd := m.search.Focus()
		m.updatePreview()
		return m, tea.Batch(cmd, m.fetchItems())

	case ClipboardChangedMsg:
		return m, m.fetchItems()

	case itemsLoadedMsg:
		if msg.err != nil {
			return m.showBanner("Could not load clipboard history: " + msg.err.Error())
		}
		m.list = m.list.Load(msg.items)
		m.scrollToSelection()
		m.updatePreview()
		return m, nil

	case searchTickMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.applyQuery(msg.query)
		return m, nil

	case pasteResultMsg:
		m.inFlight = false
		if msg.err != nil {
			return m.showBanner("Paste failed: " + msg.err.Error())
		}
		item := msg.item
		m.pasted = &item
		return m, tea.Quit

	case deleteResultMsg:
		m.inFlight = false
		if msg.err != nil {
			return m.showBanner("Delete failed: " + msg.err.Error())
		}
		m.list = m.list.Delete(msg.id)
		m.scrollToSelection()
		m.updatePreview()
		return m, nil

	case bannerTimeoutMsg:
		if msg.seq == m.bannerSeq {
			m.banner = ""
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Printable keys belong to a focused search box.
	typing := m.search.Focused() && isTextInput(msg)

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Escape):
		if m.search.Value() != "" {
			m.searchSeq++
			m.search.SetValue("")
			m.applyQuery("")
			return m, nil
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.QuickPaste):
		if idx, ok := quickPasteIndex(msg); ok {
			if it, ok := m.list.At(idx); ok {
				return m.requestPaste(it)
			}
		}
		return m, nil

	case key.Matches(msg, m.keymap.Paste):
		if it, ok := m.list.Selected(); ok {
			return m.requestPaste(it)
		}
		return m, nil

	case key.Matches(msg, m.keymap.Delete):
		if it, ok := m.list.Selected(); ok {
			return m.requestDelete(it)
		}
		return m, nil

	case !typing && key.Matches(msg, m.keymap.Down):
		m.moveSelection(1)
		return m, nil

	case !typing && key.Matches(msg, m.keymap.Up):
		m.moveSelection(-1)
		return m, nil

	case !typing && key.Matches(msg, m.keymap.FocusSearch):
		cmd := m.search.Focus()
		m.search.CursorEnd()
		return m, cmd
	}

	if !m.search.Focused() {
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, m.scheduleSearch())
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.moveSelection(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.moveSelection(1)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}

	row := msg.Y - headerLines
	if row < 0 || row >= m.listHeight {
		return m, nil
	}
	idx := m.offset + row
	if _, ok := m.list.At(idx); !ok {
		return m, nil
	}

	now := m.now()
	double := idx == m.lastRow && now.Sub(m.lastClick) <= doubleClickWindow
	m.lastRow, m.lastClick = idx, now

	m.list = m.list.Select(idx)
	m.search.Blur()
	m.updatePreview()

	if double {
		m.lastRow = clipview.NoSelection
		it, _ := m.list.Selected()
		return m.requestPaste(it)
	}
	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	available := msg.Height - headerLines - footerLines
	if available < 1 {
		available = 1 // Minimum height for tiny terminals
	}

	previewHeight := 0
	if m.showPreview && available >= minListLines+minPreview+1 {
		previewHeight = available * 40 / 100
		if previewHeight < minPreview {
			previewHeight = minPreview
		}
	}
	m.listHeight = available
	if previewHeight > 0 {
		// One line separates the list from the preview.
		m.listHeight = available - previewHeight - 1
	}

	m.search.Width = max(1, msg.Width-lipgloss.Width(m.search.Prompt)-countWidth)
	if !m.ready {
		m.preview = viewport.New(msg.Width, previewHeight)
		m.ready = true
	} else {
		m.preview.Width = msg.Width
		m.preview.Height = previewHeight
	}
	m.scrollToSelection()
	m.updatePreview()
	return m, nil
}

func (m *Model) moveSelection(delta int) {
	m.list = m.list.MoveSelection(delta)
	m.scrollToSelection()
	m.updatePreview()
}

func (m *Model) applyQuery(query string) {
	m.list = m.list.SetQuery(query)
	m.offset = 0
	m.scrollToSelection()
	m.updatePreview()
}

// scrollToSelection keeps the selected row inside the visible window.
func (m *Model) scrollToSelection() {
	n := m.list.Len()
	height := m.listHeight
	if height < 1 {
		height = 1
	}
	if sel := m.list.SelectedIndex(); sel != clipview.NoSelection {
		if sel < m.offset {
			m.offset = sel
		}
		if sel >= m.offset+height {
			m.offset = sel - height + 1
		}
	}
	if maxOffset := n - height; m.offset > maxOffset {
		m.offset = maxOffset
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// scheduleSearch bumps the search sequence so pending ticks go stale.
func (m *Model) scheduleSearch() tea.Cmd {
	m.searchSeq++
	seq, query := m.searchSeq, m.search.Value()
	return tea.Tick(m.searchDelay, func(time.Time) tea.Msg {
		return searchTickMsg{seq: seq, query: query}
	})
}

func (m Model) requestPaste(it clipview.Item) (tea.Model, tea.Cmd) {
	if m.inFlight {
		return m, nil
	}
	m.inFlight = true
	svc, ctx := m.service, m.ctx
	return m, func() tea.Msg {
		return pasteResultMsg{item: it, err: svc.Paste(ctx, it.ID)}
	}
}

func (m Model) requestDelete(it clipview.Item) (tea.Model, tea.Cmd) {
	if m.inFlight {
		return m, nil
	}
	m.inFlight = true
	svc, ctx := m.service, m.ctx
	return m, func() tea.Msg {
		return deleteResultMsg{id: it.ID, err: svc.Delete(ctx, it.ID)}
	}
}

func (m Model) fetchItems() tea.Cmd {
	svc, ctx := m.service, m.ctx
	return func() tea.Msg {
		items, err := svc.Items(ctx)
		return itemsLoadedMsg{items: items, err: err}
	}
}

func (m Model) showBanner(text string) (tea.Model, tea.Cmd) {
	m.bannerSeq++
	m.banner = text
	seq := m.bannerSeq
	return m, tea.Tick(m.bannerTimeout, func(time.Time) tea.Msg {
		return bannerTimeoutMsg{seq: seq}
	})
}
