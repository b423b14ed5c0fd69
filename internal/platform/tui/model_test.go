package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/one-drop/internal/core"
	"github.com/vovakirdan/one-drop/internal/registry"
	"github.com/vovakirdan/one-drop/internal/storage"
)

// stubGame ends after a fixed number of steps.
type stubGame struct {
	steps    int
	endAfter int
	resets   int
	state    core.GameState
}

func (g *stubGame) ID() string    { return "stub_fall" }
func (g *stubGame) Title() string { return "Stub Fall" }

func (g *stubGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{Zone: "Atmosphere", Message: "You are in: Atmosphere"}
}

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.state, Restarted: true}
	}
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.state.GameOver || g.state.Paused {
		return core.StepResult{State: g.state}
	}
	g.steps++
	g.state.Elapsed = float64(g.steps) / 60
	if g.steps >= g.endAfter {
		g.state.GameOver = true
		g.state.Outcome = core.OutcomeSuccess
		g.state.Message = "Success! A new plant grows."
	}
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(s *core.Screen) {
	s.Clear()
	s.DrawText(0, 0, g.state.Message)
}

func (g *stubGame) State() core.GameState { return g.state }

func init() {
	registry.Register("stub_fall", func() registry.Game { return &stubGame{endAfter: 3} })
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg{})
	return next.(Model)
}

func press(t *testing.T, m Model, msg tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestModelSavesRunOnce(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 3}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()

	for range 10 {
		m = tick(t, m)
	}

	runs, err := store.RecentRuns("stub_fall", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want 1", len(runs))
	}
	if runs[0].Outcome != storage.OutcomeSuccess {
		t.Errorf("Outcome = %q, want success", runs[0].Outcome)
	}
	if runs[0].Seconds != 3.0/60 {
		t.Errorf("Seconds = %v, want %v", runs[0].Seconds, 3.0/60)
	}
	if runs[0].Cause != "Success! A new plant grows." {
		t.Errorf("Cause = %q", runs[0].Cause)
	}
}

func TestModelRestartAllowsAnotherSave(t *testing.T) {
	store := openStore(t)
	game := &stubGame{endAfter: 2}
	m := NewModel(game, store, testConfig(), nil)
	m.Init()

	for range 4 {
		m = tick(t, m)
	}
	m, _ = press(t, m, runeKey("r"))
	for range 4 {
		m = tick(t, m)
	}

	runs, err := store.RecentRuns("stub_fall", 10)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("saved %d runs, want 2", len(runs))
	}
}

func TestModelWithoutStore(t *testing.T) {
	m := NewModel(&stubGame{endAfter: 1}, nil, testConfig(), nil)
	m.Init()
	m = tick(t, m)
	m = tick(t, m)
	if !m.gameState.GameOver {
		t.Error("game should be over")
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{endAfter: 100}, nil, testConfig(), nil)
	m, cmd := press(t, m, runeKey("q"))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelBackOnlyWhenOverOrPaused(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, testConfig(), nil, WithMenu())
	m.Init()
	m = tick(t, m)

	m, _ = press(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Fatal("back should be ignored while running")
	}

	m, _ = press(t, m, runeKey("p"))
	m = tick(t, m)
	if !m.gameState.Paused {
		t.Fatal("game should be paused")
	}

	m, cmd := press(t, m, runeKey("b"))
	if !m.BackToMenu() {
		t.Error("back should work while paused")
	}
	if cmd == nil {
		t.Error("standalone model should quit its program on back")
	}
}

func TestModelBackWithoutMenu(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := NewModel(game, nil, testConfig(), nil)
	m.Init()
	m = tick(t, m)

	m, _ = press(t, m, runeKey("b"))
	if m.BackToMenu() {
		t.Error("back needs a menu to return to")
	}
}

func TestModelSessionBackKeepsProgram(t *testing.T) {
	game := &stubGame{endAfter: 1}
	m := NewModel(game, nil, testConfig(), nil, WithSession("alice", plainPalette()))
	m.Init()
	m = tick(t, m)

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	if !m.BackToMenu() {
		t.Error("esc should return to the menu after game over")
	}
	if cmd != nil {
		t.Error("embedded model must not quit the session program")
	}
	if m.player != "alice" || !m.remote {
		t.Error("session options not applied")
	}
}

func TestModelResize(t *testing.T) {
	m := NewModel(&stubGame{endAfter: 100}, nil, testConfig(), nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	m = next.(Model)
	if m.screen.Width() != 20 || m.screen.Height() != 5 {
		t.Errorf("screen = %dx%d, want 20x5", m.screen.Width(), m.screen.Height())
	}
}

func TestModelView(t *testing.T) {
	game := &stubGame{endAfter: 100}
	m := NewModel(game, nil, testConfig(), nil, WithSession("", plainPalette()))
	m.Init()
	m = tick(t, m)

	if !strings.Contains(m.View(), "You are in: Atmosphere") {
		t.Errorf("View() missing zone message:\n%s", m.View())
	}
}

func TestRunSummary(t *testing.T) {
	tests := []struct {
		name  string
		state core.GameState
		want  string
	}{
		{
			name:  "success",
			state: core.GameState{Elapsed: 12.34, GameOver: true, Outcome: core.OutcomeSuccess},
			want:  "One Drop: sparked life in 12.3s",
		},
		{
			name: "lost",
			state: core.GameState{
				Elapsed:  4,
				GameOver: true,
				Outcome:  core.OutcomeCrushed,
				Message:  "Crushed by industrial gears!",
			},
			want: "One Drop: crushed after 4.0s (Crushed by industrial gears!)",
		},
		{
			name:  "falling",
			state: core.GameState{Elapsed: 2.5, Zone: "Atmosphere"},
			want:  "One Drop: 2.5s in, falling through Atmosphere",
		},
		{
			name:  "fresh",
			state: core.GameState{},
			want:  "One Drop: 0.0s in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RunSummary("One Drop", tt.state); got != tt.want {
				t.Errorf("RunSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}
