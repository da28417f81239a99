package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/suggest/internal/config"
	"github.com/oakwood-commons/suggest/internal/ui/table"
	"github.com/oakwood-commons/suggest/pkg/logger"
	"github.com/oakwood-commons/suggest/pkg/suggest"
)

// Options configures the demo form.
type Options struct {
	AppName string
	Fields  []FieldSpec
	Config  config.File
	// ThemeName overrides the configured default theme.
	ThemeName string
	NoColor   bool
	Debug     bool
	// Debounce overrides the configured delay when non-nil.
	Debounce *time.Duration
	Logger   logr.Logger
	Width    int
	Height   int
}

// Result is what the form reports when it exits.
type Result struct {
	Submitted bool          `json:"submitted" yaml:"submitted" toml:"submitted"`
	Fields    []FieldResult `json:"fields" yaml:"fields" toml:"fields"`
}

// FieldResult is the final state of one field.
type FieldResult struct {
	ID       string         `json:"id" yaml:"id" toml:"id"`
	Value    string         `json:"value" yaml:"value" toml:"value"`
	Selected map[string]any `json:"selected,omitempty" yaml:"selected,omitempty" toml:"selected,omitempty"`
}

// RootModel is the demo form: a column of inputs with a live region, the
// selection history and a help footer. It routes keys and mouse events to
// the focused input and draws that input's panel over everything else.
type RootModel struct {
	fields []*Field
	focus  int

	width  int
	height int

	appName string
	theme   Theme
	styles  formStyles
	noColor bool

	keys      formKeys
	inputKeys suggest.KeyMap
	help      help.Model
	live      *LiveRegion
	history   *table.Model[HistoryEntry]
	debug     DebugModel
	log       logr.Logger

	started   bool
	picks     int
	submitted bool
	quitting  bool
}

// NewRootModel builds the form from opts.
func NewRootModel(opts Options) (*RootModel, error) {
	cfg := opts.Config
	theme, _ := ThemeNamed(cfg, opts.ThemeName)
	behavior := cfg.UI.Behavior

	debounce, err := behavior.DebounceDuration()
	if err != nil {
		return nil, err
	}
	if opts.Debounce != nil {
		debounce = *opts.Debounce
	}

	m := &RootModel{
		width:     opts.Width,
		height:    opts.Height,
		appName:   strings.TrimSpace(opts.AppName),
		theme:     theme,
		styles:    newFormStyles(theme, opts.NoColor),
		noColor:   opts.NoColor,
		inputKeys: cfg.UI.Keys.Apply(suggest.DefaultKeyMap()),
		help:      help.New(),
		live:      &LiveRegion{},
		history:   newHistory(config.IntOr(behavior.History, 10)),
		debug:     NewDebugModel(config.IntOr(cfg.App.Debug.MaxEvents, DefaultMaxDebugEvents)),
		log:       opts.Logger,
	}
	if m.width <= 0 {
		m.width = 80
	}
	if m.height <= 0 {
		m.height = 24
	}
	m.keys = defaultFormKeys(m.inputKeys.Tab)
	m.debug.Visible = opts.Debug
	m.live.style = m.styles.Status
	m.debug.style = m.styles.Debug
	m.applyColors()

	announcer := suggest.MultiAnnouncer(
		m.live,
		suggest.LogAnnouncer(m.log),
		suggest.AnnouncerFunc(func(msg string, mode suggest.Politeness) {
			m.debug.Record("announce[%s] %s", mode, msg)
		}),
	)
	inputOpts := []suggest.Option{
		suggest.WithAnnouncer(announcer),
		suggest.WithLogger(m.log),
		suggest.WithKeyMap(m.inputKeys),
		suggest.WithStyles(theme.InputStyles(opts.NoColor)),
		suggest.WithDebounce(debounce),
		suggest.WithMaxHeight(config.IntOr(behavior.MaxHeight, suggest.DefaultMaxHeight)),
		suggest.WithStep(config.IntOr(behavior.Step, suggest.DefaultStep)),
		suggest.WithWidth(config.IntOr(behavior.Width, suggest.DefaultWidth)),
	}
	props := suggest.Props{
		Plain:     config.BoolOr(behavior.Plain, false),
		DropAlign: cfg.UI.Drop,
		Messages:  cfg.UI.Messages,
	}
	for _, spec := range opts.Fields {
		if spec.Match == "" {
			spec.Match = behavior.Match
		}
		if spec.Placeholder == "" {
			spec.Placeholder = behavior.Placeholder
		}
		m.fields = append(m.fields, newField(spec, props, inputOpts...))
	}
	m.layout()
	return m, nil
}

func (m *RootModel) applyColors() {
	if m.noColor {
		m.history.SetNoColor(true)
		return
	}
	m.history.SetColors(m.theme.BorderFocus, m.theme.ActiveFG, m.theme.ActiveBG)
	st := help.New().Styles
	st.ShortKey = st.ShortKey.Foreground(m.theme.HelpKey)
	st.FullKey = st.FullKey.Foreground(m.theme.HelpKey)
	st.ShortDesc = st.ShortDesc.Foreground(m.theme.HelpValue)
	st.FullDesc = st.FullDesc.Foreground(m.theme.HelpValue)
	m.help.Styles = st
}

// Init focuses the first field. Later calls do nothing, so a program can
// take over a model that startup keys already drove.
func (m *RootModel) Init() tea.Cmd {
	if m.started || len(m.fields) == 0 {
		return nil
	}
	m.started = true
	return m.setFocus(0)
}

// Update routes messages.
func (m *RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		return m, m.handleClick(msg)

	case tea.MouseWheelMsg:
		return m, m.forward(msg)

	case suggest.SelectedMsg:
		m.picks++
		m.history.Append(HistoryEntry{Seq: m.picks, Field: msg.ID, Suggestion: msg.Suggestion})
		m.debug.Record("select %s=%s", msg.ID, msg.Suggestion.DisplayLabel())
		if f := m.focused(); f != nil {
			m.log.V(1).Info("suggestion recorded", logger.InputKey, msg.ID, logger.StateKey, f.input.State().String(), "seq", m.picks)
		}
		return m, nil

	case suggest.SubmitMsg:
		m.debug.Record("submit %s=%q", msg.ID, msg.Value)
		if m.focus < len(m.fields)-1 {
			return m, m.setFocus(m.focus + 1)
		}
		m.submitted = true
		m.quitting = true
		return m, tea.Quit
	}

	// Ticks carry the id of the input they belong to; the others ignore them.
	var cmds []tea.Cmd
	for _, f := range m.fields {
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m *RootModel) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit) || msg.Key().Code == 0x03:
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return nil
	case key.Matches(msg, m.keys.PrevField):
		if len(m.fields) < 2 {
			return m.forward(msg)
		}
		return m.setFocus((m.focus - 1 + len(m.fields)) % len(m.fields))
	case key.Matches(msg, m.keys.NextField):
		// The input closes its panel on Tab before focus moves on.
		cmd := m.forward(msg)
		if len(m.fields) < 2 {
			return cmd
		}
		return tea.Batch(cmd, m.setFocus((m.focus+1)%len(m.fields)))
	}
	return m.forward(msg)
}

func (m *RootModel) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	mouse := msg.Mouse()
	if f.input.DropVisible() && f.input.DropRect().Contains(mouse.X, mouse.Y) {
		return m.forward(msg)
	}
	cmd := m.forward(msg)
	for i, other := range m.fields {
		if i != m.focus && other.input.Bounds().Contains(mouse.X, mouse.Y) {
			return tea.Batch(cmd, m.setFocus(i))
		}
	}
	return cmd
}

func (m *RootModel) forward(msg tea.Msg) tea.Cmd {
	f := m.focused()
	if f == nil {
		return nil
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

func (m *RootModel) focused() *Field {
	if m.focus < 0 || m.focus >= len(m.fields) {
		return nil
	}
	return m.fields[m.focus]
}

func (m *RootModel) setFocus(i int) tea.Cmd {
	if cur := m.focused(); cur != nil && cur.input.Focused() {
		cur.input.Blur()
	}
	m.focus = i
	m.debug.Record("focus %s", m.fields[i].ID())
	cmd := m.fields[i].input.Focus()
	m.log.V(1).Info("field focused", logger.InputKey, m.fields[i].ID(), logger.StateKey, m.fields[i].input.State().String())
	return cmd
}

// layout sizes the parts that depend on the window.
func (m *RootModel) layout() {
	m.live.SetWidth(m.width)
	m.debug.Width = m.width
	m.help.SetWidth(m.width)
	m.history.SetSize(m.width, min(m.history.Len(), 5)+1)
}

// Render draws the form and the focused input's panel.
func (m *RootModel) Render() string {
	if m.quitting {
		return ""
	}
	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	if m.appName != "" {
		add(m.styles.Title.Render(m.appName))
		add("")
	}
	// Announcements sit above the fields so the panel never covers them.
	add(m.live.View())
	add("")
	for i, f := range m.fields {
		if f.spec.Label != "" {
			add(m.styles.Label.Render(f.spec.Label))
		}
		view := f.input.View()
		f.input.SetBounds(suggest.Rect{X: 0, Y: len(lines), W: lipgloss.Width(view), H: lipgloss.Height(view)})
		add(view)
		if i < len(m.fields)-1 {
			add("")
		}
	}

	if m.history.Len() > 0 {
		m.history.SetSize(m.width, min(m.history.Len(), 5)+1)
		add("")
		add(m.history.View())
	}
	if dbg := m.debug.View(m.debugInfo()); dbg != "" {
		add(dbg)
	}
	add("")
	add(m.help.View(helpKeys{input: m.inputKeys, form: m.keys}))

	base := strings.Join(lines, "\n")
	if f := m.focused(); f != nil {
		base = f.input.Compose(base, m.width, m.height)
	}
	return base
}

// View implements tea.Model.
func (m *RootModel) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

func (m *RootModel) debugInfo() DebugInfo {
	info := DebugInfo{WinWidth: m.width, WinHeight: m.height, Focus: m.focus}
	if f := m.focused(); f != nil {
		in := f.input
		info.State = in.State().String()
		info.Active = in.ActiveIndex()
		info.Selected = in.SelectedIndex()
		info.DropVisible = in.DropVisible()
		info.ResetPending = in.ResetPending()
		info.Suggestions = len(in.Props().Suggestions)
		info.Value = in.Value()
	}
	return info
}

// Fields returns the inputs in display order.
func (m *RootModel) Fields() []*Field {
	return m.fields
}

// Focused returns the index of the focused field.
func (m *RootModel) Focused() int {
	return m.focus
}

// Live returns the live region.
func (m *RootModel) Live() *LiveRegion {
	return m.live
}

// History returns the recorded picks, oldest first.
func (m *RootModel) History() []HistoryEntry {
	return m.history.AllRows()
}

// DebugMessages returns the debug log.
func (m *RootModel) DebugMessages() []string {
	return m.debug.Messages()
}

// Result reports the final state of the form.
func (m *RootModel) Result() Result {
	res := Result{Submitted: m.submitted}
	for _, f := range m.fields {
		fr := FieldResult{ID: f.ID(), Value: f.input.Value()}
		if s := f.Selected(); s != nil {
			fr.Selected = s.Map()
		}
		res.Fields = append(res.Fields, fr)
	}
	return res
}

// Close stops every input so no deferred update outlives the program.
func (m *RootModel) Close() {
	for _, f := range m.fields {
		f.input.Close()
	}
}
