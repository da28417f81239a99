package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
)

// ApplyStartupKeys feeds simulated key presses to the form, running the
// resulting commands before each next key so deferred updates land in order.
// A token is literal text, Vim-style keys such as "<Down>" or "<CR>", or a
// mix of both. A leading backslash makes the whole token literal.
func ApplyStartupKeys(m *RootModel, keys []string) {
	if m == nil {
		return
	}
	for _, raw := range keys {
		token := strings.TrimSpace(raw)
		if token == "" {
			continue
		}
		if strings.HasPrefix(token, `\`) {
			typeText(m, strings.TrimPrefix(token, `\`))
			continue
		}
		for _, segment := range parseTokenSegments(token) {
			if !segment.isVimKey {
				typeText(m, segment.text)
				continue
			}
			if msgs, ok := keyMsgsFromToken(segment.text); ok {
				for _, msg := range msgs {
					Drive(m, msg)
				}
			} else {
				typeText(m, segment.text)
			}
		}
	}
}

func typeText(m *RootModel, text string) {
	for _, r := range text {
		Drive(m, tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

// cmdTimeout bounds how long Drive waits on one command. Cursor blinks and
// other long timers are dropped.
const cmdTimeout = 50 * time.Millisecond

// maxDriveSteps stops runaway command chains.
const maxDriveSteps = 1000

// Drive delivers msg to the model and then runs the returned commands
// synchronously, feeding their messages back in, until none are left.
// It reports false once the model asked to quit.
func Drive(m *RootModel, msg tea.Msg) bool {
	queue := []tea.Msg{msg}
	for steps := 0; len(queue) > 0 && steps < maxDriveSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		if _, ok := next.(tea.QuitMsg); ok {
			return false
		}
		_, cmd := m.Update(next)
		queue = append(queue, runCmd(cmd)...)
	}
	return !m.quitting
}

// runCmd executes cmd, expanding batches. Commands that do not finish within
// cmdTimeout are abandoned.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(cmdTimeout):
		return nil
	}
	switch v := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range v {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// tokenSegment is either a <...> key or a run of literal text.
type tokenSegment struct {
	text     string
	isVimKey bool
}

// parseTokenSegments splits "<Down>ab<CR>" into "<Down>", "ab", "<CR>".
// An unclosed "<" is literal text.
func parseTokenSegments(token string) []tokenSegment {
	var segments []tokenSegment
	remaining := token
	for remaining != "" {
		open := strings.Index(remaining, "<")
		if open == -1 {
			segments = append(segments, tokenSegment{text: remaining})
			break
		}
		if open > 0 {
			segments = append(segments, tokenSegment{text: remaining[:open]})
		}
		closing := strings.Index(remaining[open:], ">")
		if closing == -1 {
			segments = append(segments, tokenSegment{text: remaining[open:]})
			break
		}
		segments = append(segments, tokenSegment{text: remaining[open : open+closing+1], isVimKey: true})
		remaining = remaining[open+closing+1:]
	}
	return segments
}

// namedKeys maps the inner text of a <...> token, lower-cased, to a key.
var namedKeys = map[string]tea.KeyPressMsg{
	"esc":       {Code: tea.KeyEscape},
	"escape":    {Code: tea.KeyEscape},
	"c-[":       {Code: tea.KeyEscape},
	"cr":        {Code: tea.KeyEnter},
	"enter":     {Code: tea.KeyEnter},
	"return":    {Code: tea.KeyEnter},
	"tab":       {Code: tea.KeyTab},
	"s-tab":     {Code: tea.KeyTab, Mod: tea.ModShift},
	"space":     {Code: ' ', Text: " "},
	"bs":        {Code: tea.KeyBackspace},
	"backspace": {Code: tea.KeyBackspace},
	"del":       {Code: tea.KeyDelete},
	"left":      {Code: tea.KeyLeft},
	"right":     {Code: tea.KeyRight},
	"up":        {Code: tea.KeyUp},
	"down":      {Code: tea.KeyDown},
	"home":      {Code: tea.KeyHome},
	"end":       {Code: tea.KeyEnd},
	"f1":        {Code: tea.KeyF1},
}

// keyMsgsFromToken parses a Vim-like token such as "<Down>", "<CR>",
// "<S-Tab>" or "<C-n>". Anything not wrapped in <...> is not a key.
func keyMsgsFromToken(token string) ([]tea.KeyPressMsg, bool) {
	if !strings.HasPrefix(token, "<") || !strings.HasSuffix(token, ">") || len(token) < 3 {
		return nil, false
	}
	inner := strings.ToLower(token[1 : len(token)-1])
	if msg, ok := namedKeys[inner]; ok {
		return []tea.KeyPressMsg{msg}, true
	}
	// <C-x> for a single letter.
	if rest, ok := strings.CutPrefix(inner, "c-"); ok && len(rest) == 1 && rest[0] >= 'a' && rest[0] <= 'z' {
		return []tea.KeyPressMsg{{Code: rune(rest[0]), Mod: tea.ModCtrl}}, true
	}
	return nil, false
}
