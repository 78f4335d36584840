// Package tui provides the interactive supply history view.
package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/abastecimentos/internal/config"
	"github.com/javiermolinar/abastecimentos/internal/export"
	"github.com/javiermolinar/abastecimentos/internal/format"
	"github.com/javiermolinar/abastecimentos/internal/logger"
	"github.com/javiermolinar/abastecimentos/internal/supply"
	"github.com/javiermolinar/abastecimentos/internal/tui/input"
	"github.com/javiermolinar/abastecimentos/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeList    Mode = iota // browsing records
	ModeFilters             // editing the filter panel
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalDetail
)

// Filter panel fields, in tab order.
const (
	fieldStart = iota
	fieldEnd
	fieldProduct
	fieldUser
	fieldCount
)

// searchDebounce is the idle time before a product lookup is issued.
const searchDebounce = 300 * time.Millisecond

// defaultMobileWidth is used when no breakpoint is configured.
const defaultMobileWidth = 100

// Model is the history view model.
type Model struct {
	// Dependencies
	src            supply.Source
	config         *config.Config
	sink           export.Sink
	clipboardWrite func(string) error
	debug          *DebugLogger
	now            func() time.Time
	loc            *time.Location
	debounce       time.Duration

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	mode        Mode
	modalType   ModalType
	modalReturn Mode // mode restored when the modal closes
	modal       Modal

	// Filters
	filter      supply.Filter
	inputs      [fieldCount]textinput.Model
	focus       int
	showFilters bool // narrow layouts only
	applying    bool

	// Fetch lifecycle
	fetch      FetchState
	reqID      uint64 // id of the latest issued history request
	lastParams supply.Params
	items      []supply.Record
	hasNext    bool
	cursor     int

	// Autocomplete
	suggestions input.Suggestions
	suggestSeq  uint64 // generation of the latest product query edit

	selected *supply.Record

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string
	statusTime time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithSink sets where exports are delivered.
func WithSink(sink export.Sink) ModelOption {
	return func(m *Model) {
		m.sink = sink
	}
}

// WithClipboard replaces the clipboard writer.
func WithClipboard(write func(string) error) ModelOption {
	return func(m *Model) {
		m.clipboardWrite = write
	}
}

// WithDebugLogger enables debug logging.
func WithDebugLogger(d *DebugLogger) ModelOption {
	return func(m *Model) {
		m.debug = d
	}
}

// WithClock replaces the clock used for export file names.
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// WithLocation sets the timezone used to show timestamps.
func WithLocation(loc *time.Location) ModelOption {
	return func(m *Model) {
		if loc != nil {
			m.loc = loc
		}
	}
}

// WithDebounce replaces the autocomplete idle delay.
func WithDebounce(d time.Duration) ModelOption {
	return func(m *Model) {
		m.debounce = d
	}
}

// New creates a history view model. The first fetch is already marked as
// in flight and is issued by Init.
func New(src supply.Source, cfg *config.Config, opts ...ModelOption) Model {
	if cfg == nil {
		cfg = config.Default()
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load(theme.Default)
	}
	styles := NewStyles(t)

	loc, err := format.Location(cfg.UI.Timezone)
	if err != nil {
		loc = time.Local
	}

	m := Model{
		src:            src,
		config:         cfg,
		sink:           export.NewFileSink(cfg.Export.Dir, cfg.Export.OpenPrint),
		clipboardWrite: clipboard.WriteAll,
		now:            time.Now,
		loc:            loc,
		debounce:       searchDebounce,
		theme:          t,
		styles:         styles,
		mode:           ModeList,
		modal:          NewModal(),
		filter:         supply.NewFilter(cfg.History.PageSize, cfg.Sort()),
	}
	m.modal.SetBackground(styles.ModalBgColor)
	m.modal.SetBackdrop(styles.BackdropStyle)

	labels := [fieldCount]string{"AAAA-MM-DD", "AAAA-MM-DD", "Buscar produto", "ID do usuário"}
	limits := [fieldCount]int{10, 10, 120, 40}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = labels[i]
		ti.CharLimit = limits[i]
		ti.Width = 22
		ti.Prompt = ""
		ti.TextStyle = styles.InputTextStyle
		ti.PlaceholderStyle = styles.PlaceholderStyle
		ti.Cursor.Style = styles.InputCursorStyle
		m.inputs[i] = ti
	}

	for _, opt := range opts {
		opt(&m)
	}

	m.beginFetch()
	return m
}

// Init issues the first history request.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadCmd(),
		textinput.Blink,
	)
}

// Run starts the history view.
func Run(src supply.Source, cfg *config.Config, opts ...ModelOption) error {
	return RunWithDebug(src, cfg, false, opts...)
}

// RunWithDebug starts the history view with optional debug logging to
// DebugLogPath.
func RunWithDebug(src supply.Source, cfg *config.Config, debug bool, opts ...ModelOption) error {
	if debug {
		l, err := logger.NewFile(DebugLogPath)
		if err != nil {
			return err
		}
		defer func() { _ = l.Sync() }()
		opts = append(opts, WithDebugLogger(NewDebugLogger(logger.Named(l, "tui"))))
	}

	model := New(src, cfg, opts...)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// mobileWidth is the breakpoint below which records render as cards.
func (m Model) mobileWidth() int {
	if m.config.UI.MobileWidth > 0 {
		return m.config.UI.MobileWidth
	}
	return defaultMobileWidth
}

// isNarrow reports whether the card layout is active.
func (m Model) isNarrow() bool {
	return m.width > 0 && m.width < m.mobileWidth()
}

// filtersVisible reports whether the filter panel is shown.
func (m Model) filtersVisible() bool {
	return !m.isNarrow() || m.showFilters
}
