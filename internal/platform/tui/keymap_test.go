package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/one-drop/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a moves left", runeKey("a"), core.ActionLeft, false},
		{"h moves left", runeKey("h"), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d moves right", runeKey("d"), core.ActionRight, false},
		{"up jumps", tea.KeyMsg{Type: tea.KeyUp}, core.ActionJump, false},
		{"w jumps", runeKey("w"), core.ActionJump, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"space restarts", tea.KeyMsg{Type: tea.KeySpace}, core.ActionRestart, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"enter confirms", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEscape}, core.ActionBack, false},
		{"unbound key", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action {
				t.Errorf("action = %v, want %v", action, tt.action)
			}
			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("a"), &frame) {
		t.Fatal("a should not quit")
	}
	if km.MapKeyToFrame(runeKey("z"), &frame) {
		t.Fatal("z should not quit")
	}
	if !frame.Has(core.ActionLeft) {
		t.Error("frame should contain Left")
	}
	if frame.Has(core.ActionNone) {
		t.Error("unbound keys should not be recorded")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should quit")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("q"), MenuActionQuit},
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey("j"), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEscape}, MenuActionBack},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionHistory},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}
