package suggest

import (
	"reflect"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"
)

// State is the coarse state of the input.
type State int

const (
	// Idle means the panel is hidden.
	Idle State = iota
	// ShowingSuggestions means the panel is visible with nothing highlighted.
	ShowingSuggestions
	// NavigatingSuggestions means the panel is visible and a row is highlighted.
	NavigatingSuggestions
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case ShowingSuggestions:
		return "showing"
	case NavigatingSuggestions:
		return "navigating"
	}
	return "state(" + strconv.Itoa(int(s)) + ")"
}

// DefaultWidth is the field width used when none is configured.
const DefaultWidth = 40

// Model is a text input with a floating suggestion panel.
type Model struct {
	props    Props
	messages Messages
	input    textinput.Model

	active   int
	selected int
	showDrop bool

	reset  resetTask
	window scrollWindow

	keys      KeyMap
	styles    Styles
	announcer Announcer
	log       logr.Logger

	width     int
	maxHeight int
	step      int

	// committed is the last pick of an uncontrolled input. It stands in for
	// the text while the text still reads as its label.
	committed *Suggestion

	bounds   Rect // field position as reported by the host
	dropRect Rect // last composed panel position
	closed   bool
}

// New creates an input. Collaborators not given as options get defaults: no
// announcements, a discarding logger, DefaultKeyMap and DefaultStyles.
func New(props Props, opts ...Option) *Model {
	id := nextID()
	m := &Model{
		active:    -1,
		selected:  -1,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		announcer: nopAnnouncer{},
		log:       logr.Discard(),
		width:     DefaultWidth,
		maxHeight: DefaultMaxHeight,
		step:      DefaultStep,
		reset:     resetTask{id: id, delay: DefaultDebounce},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.props = props
	m.messages = props.Messages.WithDefaults()

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = props.Placeholder
	st := ti.Styles()
	st.Focused.Placeholder = m.styles.Placeholder
	st.Blurred.Placeholder = m.styles.Placeholder
	ti.SetStyles(st)
	m.input = ti
	m.window = newScrollWindow(m.step, m.maxHeight)
	m.SetWidth(m.width)

	initial := props.Value
	if initial == nil {
		initial = props.DefaultValue
	}
	m.input.SetValue(renderValue(initial))
	m.input.CursorEnd()
	m.selected = selectedIndex(props.Suggestions, m.currentValue())
	m.window.reset(len(props.Suggestions))
	return m
}

// Init implements the Bubble Tea component contract.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Props returns the current props.
func (m *Model) Props() Props {
	return m.props
}

// SetProps reconciles the input against new props. The active index stays
// inside the new suggestion list, the selected index is recomputed, and the
// panel closes when nothing is left to suggest.
func (m *Model) SetProps(next Props) {
	prev := m.props
	m.props = next
	m.messages = next.Messages.WithDefaults()

	if prev.Placeholder != next.Placeholder {
		m.input.Placeholder = next.Placeholder
	}
	if next.Value != nil && !reflect.DeepEqual(prev.Value, next.Value) {
		// A host echoing the typed text back must not move the cursor.
		if text := renderValue(next.Value); text != m.input.Value() {
			m.input.SetValue(text)
			m.input.CursorEnd()
		}
	}

	n := len(next.Suggestions)
	if m.active > n-1 {
		m.active = n - 1
	}
	if n == 0 {
		m.closeDrop()
	}
	m.selected = selectedIndex(next.Suggestions, m.currentValue())
	if !sameSuggestions(prev.Suggestions, next.Suggestions) {
		m.window.reset(n)
		if m.active >= 0 {
			m.window.show(m.active, n)
		} else if m.selected >= 0 {
			m.window.show(m.selected, n)
		}
	}
}

// SetSuggestions is shorthand for replacing only the suggestion list.
func (m *Model) SetSuggestions(s []Suggestion) {
	next := m.props
	next.Suggestions = s
	m.SetProps(next)
}

// SetWidth sets the total field width, frame included.
func (m *Model) SetWidth(w int) {
	if w <= 0 {
		w = DefaultWidth
	}
	m.width = w
	inner := w - m.frameStyle().GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	m.input.SetWidth(inner)
}

// SetBounds tells the input where its field was drawn, in screen cells.
// Mouse hit-testing and panel placement use it.
func (m *Model) SetBounds(r Rect) {
	m.bounds = r
}

// Bounds returns the last reported field position.
func (m *Model) Bounds() Rect {
	if m.bounds.Empty() {
		return Rect{W: m.width, H: lipgloss.Height(m.View())}
	}
	return m.bounds
}

// Focus gives the field keyboard focus and schedules the panel to open.
func (m *Model) Focus() tea.Cmd {
	if m.closed {
		return nil
	}
	cmd := m.input.Focus()
	if len(m.props.Suggestions) > 0 {
		m.announceSuggestionsExist()
	}
	reset := m.reset.Schedule()
	m.emit(m.props.OnFocus, &Event{Type: EventFocus})
	return tea.Batch(cmd, reset)
}

// Blur removes focus, cancels a pending panel update and closes the panel.
func (m *Model) Blur() {
	m.reset.Cancel()
	m.input.Blur()
	m.closeDrop()
	m.emit(m.props.OnBlur, &Event{Type: EventBlur})
}

// Close tears the input down. Pending ticks are ignored afterwards.
func (m *Model) Close() {
	m.reset.Close()
	m.input.Blur()
	m.closeDrop()
	m.closed = true
}

// Focused reports whether the field has focus.
func (m *Model) Focused() bool {
	return m.input.Focused()
}

// Value returns the text in the field.
func (m *Model) Value() string {
	return m.input.Value()
}

// SetValue replaces the text in the field without firing OnInput.
func (m *Model) SetValue(s string) {
	m.input.SetValue(s)
	m.input.CursorEnd()
	m.selected = selectedIndex(m.props.Suggestions, m.currentValue())
}

// ActiveIndex is the keyboard-highlighted suggestion, or -1.
func (m *Model) ActiveIndex() int {
	return m.active
}

// SelectedIndex is the suggestion matching the current value, or -1.
func (m *Model) SelectedIndex() int {
	return m.selected
}

// DropVisible reports whether the panel is shown.
func (m *Model) DropVisible() bool {
	return m.showDrop && len(m.props.Suggestions) > 0
}

// DropRect is where the panel was last composed; empty when hidden.
func (m *Model) DropRect() Rect {
	if !m.DropVisible() {
		return Rect{}
	}
	return m.dropRect
}

// ResetPending reports whether a deferred panel update is scheduled.
func (m *Model) ResetPending() bool {
	return m.reset.Pending()
}

// State derives the coarse state from the panel and the active index.
func (m *Model) State() State {
	switch {
	case !m.DropVisible():
		return Idle
	case m.active < 0:
		return ShowingSuggestions
	default:
		return NavigatingSuggestions
	}
}

// KeyMap returns the bindings in use, for help views.
func (m *Model) KeyMap() KeyMap {
	return m.keys
}

// Update handles key presses while focused, mouse events over the panel and
// the deferred reset.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if m.closed {
		return m, nil
	}
	switch msg := msg.(type) {
	case resetMsg:
		if m.reset.Fire(msg) {
			m.resetSuggestions()
		}
		return m, nil
	case tea.KeyPressMsg:
		if !m.input.Focused() {
			return m, nil
		}
		return m, m.handleKey(msg)
	case tea.MouseClickMsg:
		return m, m.handleClick(msg.Mouse())
	case tea.MouseWheelMsg:
		m.handleWheel(msg.Mouse())
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	ev := &Event{Type: EventKeyDown, Key: msg}
	var cmds []tea.Cmd
	consumed := false
	submit := false

	switch {
	case key.Matches(msg, m.keys.Next):
		consumed = m.onNextSuggestion(ev)
	case key.Matches(msg, m.keys.Prev):
		consumed = m.onPreviousSuggestion(ev)
	case key.Matches(msg, m.keys.Select):
		cmds = append(cmds, m.onSuggestionSelect(ev))
		consumed = true
		submit = true
	case key.Matches(msg, m.keys.Close):
		m.onDropClose()
		consumed = true
	case key.Matches(msg, m.keys.Tab):
		m.onDropClose()
	}

	if !consumed {
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
		if m.input.Value() != before {
			cmds = append(cmds, m.onInput(msg))
		}
	}

	m.emit(m.props.OnKeyDown, ev)
	if submit && !ev.DefaultPrevented() {
		id, value := m.props.ID, m.input.Value()
		cmds = append(cmds, func() tea.Msg { return SubmitMsg{ID: id, Value: value} })
	}
	return tea.Batch(cmds...)
}

// resetSuggestions runs when the deferred reset fires.
func (m *Model) resetSuggestions() {
	n := len(m.props.Suggestions)
	if n == 0 {
		return
	}
	m.active = -1
	m.showDrop = true
	m.selected = selectedIndex(m.props.Suggestions, m.currentValue())
	m.window.reset(n)
	if m.selected >= 0 {
		m.window.show(m.selected, n)
	}
	m.log.V(1).Info("suggestions shown", "id", m.props.ID, "count", n, "selected", m.selected)
	m.announceSuggestionsCount()
}

func (m *Model) onShowSuggestions() {
	n := len(m.props.Suggestions)
	m.reset.Cancel()
	m.selected = selectedIndex(m.props.Suggestions, m.currentValue())
	m.showDrop = true
	m.active = -1
	m.window.reset(n)
	if m.selected >= 0 {
		m.window.show(m.selected, n)
	}
	m.log.V(1).Info("suggestions opened", "id", m.props.ID, "count", n)
	m.announceSuggestionIsOpen()
}

func (m *Model) onNextSuggestion(ev *Event) bool {
	n := len(m.props.Suggestions)
	if n == 0 {
		return false
	}
	if !m.showDrop {
		m.onShowSuggestions()
		return true
	}
	ev.PreventDefault()
	m.setActive(min(m.active+1, n-1))
	m.announceSuggestion(m.active)
	return true
}

func (m *Model) onPreviousSuggestion(ev *Event) bool {
	n := len(m.props.Suggestions)
	if n == 0 || !m.showDrop {
		return false
	}
	ev.PreventDefault()
	m.setActive(max(m.active-1, 0))
	m.announceSuggestion(m.active)
	return true
}

func (m *Model) onSuggestionSelect(ev *Event) tea.Cmd {
	active := m.active
	visible := m.DropVisible()
	m.closeDrop()
	if !visible || active < 0 || active >= len(m.props.Suggestions) {
		return nil
	}
	ev.PreventDefault()
	return m.pick(m.props.Suggestions[active])
}

func (m *Model) onClickSuggestion(index int) tea.Cmd {
	if index < 0 || index >= len(m.props.Suggestions) {
		return nil
	}
	s := m.props.Suggestions[index]
	m.closeDrop()
	return m.pick(s)
}

func (m *Model) onDropClose() {
	m.closeDrop()
}

// pick commits s. Uncontrolled inputs take its label as their text before
// OnSelect runs, so the hook can still override it through Target.
func (m *Model) pick(s Suggestion) tea.Cmd {
	if m.props.Value == nil {
		m.input.SetValue(s.DisplayLabel())
		m.input.CursorEnd()
		picked := s
		m.committed = &picked
	}
	m.log.V(1).Info("suggestion selected", "id", m.props.ID, "value", s.DisplayLabel())
	if m.props.OnSelect != nil {
		m.props.OnSelect(SelectEvent{Target: &m.input, ID: m.props.ID, Suggestion: s})
	}
	m.selected = selectedIndex(m.props.Suggestions, m.currentValue())
	id := m.props.ID
	return func() tea.Msg { return SelectedMsg{ID: id, Suggestion: s} }
}

func (m *Model) onInput(msg tea.KeyPressMsg) tea.Cmd {
	if m.committed != nil && m.committed.DisplayLabel() != m.input.Value() {
		m.committed = nil
	}
	cmd := m.reset.Schedule()
	m.emit(m.props.OnInput, &Event{Type: EventInput, Key: msg})
	return cmd
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft || !m.DropVisible() || m.dropRect.Empty() {
		return nil
	}
	if m.dropRect.Contains(mouse.X, mouse.Y) {
		if idx, ok := m.rowAt(mouse.Y); ok {
			return m.onClickSuggestion(idx)
		}
		return nil
	}
	if !m.Bounds().Contains(mouse.X, mouse.Y) {
		m.onDropClose()
	}
	return nil
}

func (m *Model) handleWheel(mouse tea.Mouse) {
	if !m.DropVisible() || !m.dropRect.Contains(mouse.X, mouse.Y) {
		return
	}
	n := len(m.props.Suggestions)
	switch mouse.Button {
	case tea.MouseWheelUp:
		m.window.scroll(-1, n)
	case tea.MouseWheelDown:
		m.window.scroll(1, n)
	}
}

// rowAt maps a screen row inside the panel to a suggestion index.
func (m *Model) rowAt(y int) (int, bool) {
	top := m.dropRect.Y + m.styles.Panel.GetBorderTopSize() + m.styles.Panel.GetPaddingTop()
	from, to := m.window.visible(len(m.props.Suggestions))
	row := y - top
	if row < 0 || row >= to-from {
		return -1, false
	}
	return from + row, true
}

func (m *Model) setActive(i int) {
	m.active = i
	m.window.show(i, len(m.props.Suggestions))
}

func (m *Model) closeDrop() {
	if m.showDrop {
		m.log.V(1).Info("suggestions closed", "id", m.props.ID)
	}
	m.showDrop = false
	m.active = -1
	m.dropRect = Rect{}
}

// currentValue is what the selected index is matched against: the
// controlled value if there is one, then the last pick while the text still
// shows its label, otherwise the text in the field.
func (m *Model) currentValue() any {
	if m.props.Value != nil {
		return m.props.Value
	}
	if c := m.committed; c != nil && c.DisplayLabel() == m.input.Value() {
		return *c
	}
	return m.input.Value()
}

func (m *Model) emit(hook func(*Event), ev *Event) {
	if hook == nil {
		return
	}
	ev.ID = m.props.ID
	ev.Value = m.input.Value()
	hook(ev)
}

func (m *Model) frameStyle() lipgloss.Style {
	switch {
	case m.props.Plain:
		return m.styles.Plain
	case m.input.Focused():
		return m.styles.InputFocused
	default:
		return m.styles.Input
	}
}

// View renders the field. The panel is drawn separately by DropView or
// Compose because it floats over whatever the host renders below.
func (m *Model) View() string {
	return m.frameStyle().Render(m.input.View())
}

// DropView renders the panel, or "" when it is hidden.
func (m *Model) DropView() string {
	if !m.DropVisible() {
		return ""
	}
	n := len(m.props.Suggestions)
	from, to := m.window.visible(n)

	inner := m.Bounds().W - m.styles.Panel.GetHorizontalFrameSize() - m.styles.Item.GetHorizontalFrameSize()
	for i := from; i < to; i++ {
		inner = max(inner, runewidth.StringWidth(m.props.Suggestions[i].DisplayLabel())+2)
	}
	if limit := m.width * 2; inner > limit {
		inner = limit
	}

	lines := make([]string, 0, to-from+1)
	for i := from; i < to; i++ {
		marker := "  "
		style := m.styles.Item
		if i == m.active || i == m.selected {
			style = m.styles.Active
		}
		if i == m.active {
			marker = "› "
		}
		label := runewidth.Truncate(m.props.Suggestions[i].DisplayLabel(), inner-2, "…")
		lines = append(lines, style.Render(pad(marker+label, inner)))
	}
	if rest := n - to; rest > 0 {
		lines = append(lines, m.styles.More.Render(pad("↓ "+strconv.Itoa(rest)+" more", inner)))
	}
	return m.styles.Panel.Render(strings.Join(lines, "\n"))
}

// Compose draws the field's panel over base, a full frame of the given
// screen size, and remembers where it went for mouse handling.
func (m *Model) Compose(base string, screenW, screenH int) string {
	panel := m.DropView()
	if panel == "" {
		m.dropRect = Rect{}
		return base
	}
	anchor := m.Bounds()
	if m.props.DropTarget != nil {
		anchor = *m.props.DropTarget
	}
	r := m.props.DropAlign.Place(anchor, lipgloss.Width(panel), lipgloss.Height(panel), screenW, screenH)
	m.dropRect = r
	return Overlay(base, panel, r.X, r.Y)
}

func pad(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func sameSuggestions(a, b []Suggestion) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
