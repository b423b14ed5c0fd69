package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/one-drop/internal/core"
	"github.com/vovakirdan/one-drop/internal/registry"
	"github.com/vovakirdan/one-drop/internal/storage"
)

// screenshotDir is the screenshot location relative to the XDG data home.
const screenshotDir = "onedrop/screenshots"

// Model is the Bubble Tea model for playing a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	palette    *Palette
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	player     string // SSH user; empty for local play
	remote     bool   // Running over SSH: no local clipboard
	quitting   bool
	backToMenu bool
	menuAware  bool // Back key returns to a menu
	embedded   bool // Hosted by a SessionModel; never quits the program on Back
	runSaved   bool // Whether the run has been saved for current game over
}

// Option configures a Model.
type Option func(*Model)

// WithMenu makes the Back key leave the game when it is over or paused.
func WithMenu() Option {
	return func(m *Model) {
		m.menuAware = true
	}
}

// WithSession prepares the model for a remote SSH session owned by player.
// The palette must come from the session's own renderer.
func WithSession(player string, palette *Palette) Option {
	return func(m *Model) {
		m.player = player
		m.remote = true
		m.menuAware = true
		m.embedded = true
		if palette != nil {
			m.palette = palette
		}
	}
}

// NewModel creates a new Bubble Tea model for the given game.
// A nil store disables the run history and a nil logger discards logs.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, opts ...Option) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.palette == nil {
		m.palette = defaultPalette()
	}
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Info("run started", "layout", m.game.ID(), "seed", m.config.Seed, "player", m.player)

	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// Rendering scales to the screen; the run itself is unaffected.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+s":
		m.saveScreenshot()
		return m, nil
	case "ctrl+y":
		m.copySummary()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back to menu when game over or paused
	if m.menuAware && m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		if !m.embedded {
			return m, tea.Quit
		}
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Restarted {
		m.runSaved = false
		m.logger.Info("run restarted", "layout", m.game.ID())
	}

	// Save the run on game over (once)
	if m.gameState.GameOver && !m.runSaved {
		m.saveRun()
		m.runSaved = true
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveRun appends the finished run to the history.
func (m *Model) saveRun() {
	st := m.gameState
	m.logger.Info("run ended",
		"layout", m.game.ID(),
		"outcome", st.Outcome,
		"seconds", fmt.Sprintf("%.1f", st.Elapsed),
		"player", m.player,
	)
	if m.store == nil {
		return
	}

	_, err := m.store.SaveRun(storage.RunRecord{
		LayoutID: m.game.ID(),
		Outcome:  string(st.Outcome),
		Seconds:  st.Elapsed,
		Cause:    st.Message,
		Player:   m.player,
	})
	if err != nil {
		// Best-effort save, game continues regardless
		m.logger.Warn("could not save run", "error", err)
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)

	path, err := xdg.DataFile(filepath.Join(screenshotDir, filename))
	if err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// copySummary puts a one-line run summary on the system clipboard.
func (m *Model) copySummary() {
	if m.remote {
		return
	}
	summary := RunSummary(m.game.Title(), m.gameState)
	if err := clipboard.WriteAll(summary); err != nil {
		m.logger.Warn("could not copy to clipboard", "error", err)
		return
	}
	m.logger.Debug("summary copied", "text", summary)
}

// RunSummary describes a run in one line.
func RunSummary(title string, st core.GameState) string {
	switch {
	case st.Won():
		return fmt.Sprintf("%s: sparked life in %.1fs", title, st.Elapsed)
	case st.GameOver:
		return fmt.Sprintf("%s: %s after %.1fs (%s)", title, st.Outcome, st.Elapsed, st.Message)
	case st.Zone != "":
		return fmt.Sprintf("%s: %.1fs in, falling through %s", title, st.Elapsed, st.Zone)
	default:
		return fmt.Sprintf("%s: %.1fs in", title, st.Elapsed)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program with the given model.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger, opts ...Option) (bool, error) {
	model := NewModel(game, store, cfg, logger, opts...)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := finalModel.(Model)
	return ok && m.BackToMenu(), nil
}
