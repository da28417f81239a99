package ui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTokenSegments(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  []tokenSegment
	}{
		{"plain text", "abc", []tokenSegment{{text: "abc"}}},
		{"single key", "<Down>", []tokenSegment{{text: "<Down>", isVimKey: true}}},
		{"mixed", "<Down>ab<CR>", []tokenSegment{
			{text: "<Down>", isVimKey: true},
			{text: "ab"},
			{text: "<CR>", isVimKey: true},
		}},
		{"text first", "al<Tab>", []tokenSegment{{text: "al"}, {text: "<Tab>", isVimKey: true}}},
		{"unclosed", "a<b", []tokenSegment{{text: "a"}, {text: "<b"}}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTokenSegments(tt.token))
		})
	}
}

func TestKeyMsgsFromToken(t *testing.T) {
	tests := []struct {
		token string
		want  tea.KeyPressMsg
		ok    bool
	}{
		{"<Down>", tea.KeyPressMsg{Code: tea.KeyDown}, true},
		{"<down>", tea.KeyPressMsg{Code: tea.KeyDown}, true},
		{"<CR>", tea.KeyPressMsg{Code: tea.KeyEnter}, true},
		{"<Esc>", tea.KeyPressMsg{Code: tea.KeyEscape}, true},
		{"<S-Tab>", tea.KeyPressMsg{Code: tea.KeyTab, Mod: tea.ModShift}, true},
		{"<Space>", tea.KeyPressMsg{Code: ' ', Text: " "}, true},
		{"<C-n>", tea.KeyPressMsg{Code: 'n', Mod: tea.ModCtrl}, true},
		{"<C-nn>", tea.KeyPressMsg{}, false},
		{"<Nope>", tea.KeyPressMsg{}, false},
		{"Down", tea.KeyPressMsg{}, false},
		{"<>", tea.KeyPressMsg{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			msgs, ok := keyMsgsFromToken(tt.token)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				require.Len(t, msgs, 1)
				assert.Equal(t, tt.want, msgs[0])
			}
		})
	}
}

func TestApplyStartupKeysLiteralEscape(t *testing.T) {
	m := newTestRoot(t)
	ApplyStartupKeys(m, []string{`\<Down>`})
	assert.Equal(t, "<Down>", m.Fields()[0].Input().Value())
}

func TestApplyStartupKeysUnknownKeyIsText(t *testing.T) {
	m := newTestRoot(t)
	ApplyStartupKeys(m, []string{"<Nope>"})
	assert.Equal(t, "<Nope>", m.Fields()[0].Input().Value())
}

func TestApplyStartupKeysSkipsBlank(t *testing.T) {
	m := newTestRoot(t)
	ApplyStartupKeys(m, []string{"", "  "})
	assert.Empty(t, m.Fields()[0].Input().Value())
	ApplyStartupKeys(nil, []string{"x"})
}

func TestCtrlNavigationKeys(t *testing.T) {
	m := newTestRoot(t)
	ApplyStartupKeys(m, []string{"<C-n><C-n><C-p>"})
	assert.Equal(t, 0, m.Fields()[0].Input().ActiveIndex())
}

func TestRunCmdExpandsBatches(t *testing.T) {
	type ping struct{ n int }
	cmd := tea.Batch(
		func() tea.Msg { return ping{1} },
		nil,
		func() tea.Msg { return ping{2} },
	)
	assert.ElementsMatch(t, []tea.Msg{ping{1}, ping{2}}, runCmd(cmd))
	assert.Nil(t, runCmd(nil))
}

func TestRunCmdDropsSlowCommands(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	slow := func() tea.Msg {
		<-block
		return nil
	}
	assert.Nil(t, runCmd(slow))
}
