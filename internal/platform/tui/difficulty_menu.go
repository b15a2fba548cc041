package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockfall/internal/config"
	"github.com/vovakirdan/blockfall/internal/core"
)

var presetDescriptions = map[config.DifficultyPreset]string{
	config.DifficultyEasy:   "slower start, speeds up with level",
	config.DifficultyNormal: "standard speed curve",
	config.DifficultyHard:   "fast start, speeds up with level",
	config.DifficultyFixed:  "speed never changes",
}

// DifficultyModel lets the player pick a difficulty preset before a game.
type DifficultyModel struct {
	presets   []config.DifficultyPreset
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  config.DifficultyPreset
	quitting  bool
	back      bool
}

// NewDifficultyModel creates a selector with the cursor on initial, or on
// normal when initial is not a known preset.
func NewDifficultyModel(width, height int, initial config.DifficultyPreset) DifficultyModel {
	presets := config.Presets()
	cursor := 0
	for i, p := range presets {
		if p == initial || (initial == "" && p == config.DifficultyNormal) {
			cursor = i
		}
	}
	return DifficultyModel{
		presets:   presets,
		cursor:    cursor,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
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
	}
	return m, nil
}

func (m DifficultyModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.selected = m.presets[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

// View renders the preset list.
func (m DifficultyModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("D I F F I C U L T Y"), m.width))
	b.WriteString("\n\n")

	for i, p := range m.presets {
		line := fmt.Sprintf("  %-8s %s", p, presetDescriptions[p])
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("enter select  esc back  q quit"), m.width))
	return b.String()
}

// Selected returns the chosen preset, or "" if none was chosen.
func (m DifficultyModel) Selected() config.DifficultyPreset {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m DifficultyModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m DifficultyModel) WantsBack() bool {
	return m.back
}

// RunDifficultySelector shows the preset selector. It returns "" when the
// player backs out, and quit is true when they asked to leave entirely.
func RunDifficultySelector(cfg core.RuntimeConfig, initial config.DifficultyPreset) (preset config.DifficultyPreset, quit bool, err error) {
	p := tea.NewProgram(NewDifficultyModel(cfg.ScreenW, cfg.ScreenH, initial), tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return "", false, fmt.Errorf("tui: cannot run difficulty selector: %w", err)
	}

	m, ok := finalModel.(DifficultyModel)
	if !ok {
		return "", true, nil
	}
	return m.Selected(), m.IsQuitting(), nil
}
