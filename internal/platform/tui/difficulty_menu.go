package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/one-drop/internal/config"
	"github.com/vovakirdan/one-drop/internal/core"
)

// difficultyOption is one row of the difficulty picker.
type difficultyOption struct {
	preset config.DifficultyPreset
	label  string
	hint   string
}

var difficultyOptions = []difficultyOption{
	{config.DifficultyEasy, "Easy", "gentler hazards, stronger helpers"},
	{config.DifficultyNormal, "Normal", "the drop as nature intended"},
	{config.DifficultyHard, "Hard", "harsher hazards, weaker helpers"},
}

// DifficultyModel lets users choose a difficulty preset before a run.
type DifficultyModel struct {
	title     string
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selection config.DifficultyPreset
	choosing  bool
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a picker for the named layout with current preselected.
func NewDifficultyModel(title string, current config.DifficultyPreset, width, height int) DifficultyModel {
	m := DifficultyModel{
		title:     title,
		cursor:    1, // Normal
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		choosing:  true,
	}
	for i, opt := range difficultyOptions {
		if opt.preset == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m DifficultyModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m DifficultyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(difficultyOptions)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selection = difficultyOptions[m.cursor].preset
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the difficulty picker.
func (m DifficultyModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(strings.ToUpper(m.title), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select difficulty:", m.width))
	b.WriteString("\n\n")

	for i, opt := range difficultyOptions {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		b.WriteString(centerText(fmt.Sprintf("%s%-7s %s", cursor, opt.label, opt.hint), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width))

	return b.String()
}

// Selected returns the chosen preset, or "" if still choosing.
func (m DifficultyModel) Selected() config.DifficultyPreset {
	if m.choosing {
		return ""
	}
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector runs the difficulty picker.
// It returns "" when the user backed out or quit.
func RunDifficultySelector(title string, current config.DifficultyPreset, cfg core.RuntimeConfig) (config.DifficultyPreset, error) {
	model := NewDifficultyModel(title, current, cfg.ScreenW, cfg.ScreenH)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok || m.IsQuitting() || m.WantsBack() {
		return "", nil
	}

	return m.Selected(), nil
}
