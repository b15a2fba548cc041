package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockfall/internal/core"
	"github.com/vovakirdan/blockfall/internal/registry"
	"github.com/vovakirdan/blockfall/internal/storage"
)

// HighScorer reports the best stored score for a mode.
type HighScorer interface {
	HighScore(gameID string) (int, error)
}

// ScoreSaver persists finished runs. *storage.Store implements it.
type ScoreSaver interface {
	HighScorer
	SaveScore(rec storage.ScoreRecord) (int64, error)
}

// ScoreReader backs the scoreboard. *storage.Store implements it.
type ScoreReader interface {
	HighScorer
	TopScores(gameID string, limit int) ([]storage.ScoreRecord, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
}

// saverFor and readerFor keep a nil *storage.Store from becoming a
// non-nil interface.
func saverFor(store *storage.Store) ScoreSaver {
	if store == nil {
		return nil
	}
	return store
}

func readerFor(store *storage.Store) ScoreReader {
	if store == nil {
		return nil
	}
	return store
}

// logger is used by models created with NewModel. The alt screen owns the
// terminal, so the default discards everything.
var logger = log.New(io.Discard)

// SetLogger sets the logger for models created afterwards.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = log.New(io.Discard)
	}
	logger = l
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      ScoreSaver
	config     core.RuntimeConfig
	player     string
	logger     *log.Logger
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	scoreSaved bool // score already handled for the current game over
}

// NewModel creates a new Bubble Tea model for the given game. store may be nil.
func NewModel(game registry.Game, store ScoreSaver, cfg core.RuntimeConfig, player string) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if player == "" {
		player = storage.DefaultPlayer
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		player:     player,
		logger:     logger,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
	}
}

// WithLogger returns a copy of the model that logs to l.
func (m Model) WithLogger(l *log.Logger) Model {
	if l != nil {
		m.logger = l
	}
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.refreshBest()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}

	if action == core.ActionBack {
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			return m, tea.Quit
		}
		return m, nil
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. Games that implement
// registry.Resizer keep their state; others restart unless they are over.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizer); ok {
		r.Resize(msg.Width, msg.Height)
		m.gameState = m.game.State()
		return m, nil
	}
	if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m, nil
}

// handleTick advances the simulation by one tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	newRun := m.inputFrame.Has(core.ActionNewGame) ||
		(m.gameState.GameOver && m.inputFrame.Has(core.ActionRestart))

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if newRun {
		m.scoreSaved = false
		m.refreshBest()
	}

	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		m.recordScore()
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordScore logs the finished run and saves it when it scored.
func (m Model) recordScore() {
	st := m.gameState
	m.logger.Info("game over",
		"mode", m.game.ID(),
		"player", m.player,
		"score", st.Score,
		"lines", st.Lines,
		"level", st.Level,
	)

	if st.Score <= 0 || m.store == nil {
		return
	}

	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot read high score", "mode", m.game.ID(), "error", err)
	}

	_, err = m.store.SaveScore(storage.ScoreRecord{
		GameID: m.game.ID(),
		Player: m.player,
		Score:  st.Score,
		Lines:  st.Lines,
		Level:  st.Level,
	})
	if err != nil {
		m.logger.Error("cannot save score", "mode", m.game.ID(), "error", err)
		return
	}
	if st.Score > best {
		m.logger.Info("new high score", "mode", m.game.ID(), "player", m.player, "score", st.Score)
	}
}

// refreshBest hands the stored best score to games that display it.
func (m Model) refreshBest() {
	r, ok := m.game.(registry.BestScoreReceiver)
	if !ok || m.store == nil {
		return
	}
	best, err := m.store.HighScore(m.game.ID())
	if err != nil {
		m.logger.Warn("cannot read high score", "mode", m.game.ID(), "error", err)
		return
	}
	r.SetBestScore(best)
}

// saveScreenshot writes the current frame as plain text under
// ~/.blockfall/screenshots.
func (m Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".blockfall", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
		return
	}
	m.logger.Debug("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the user asked to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu reports whether the user asked to return to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts a Bubble Tea program for one game and blocks until it ends.
// It reports whether the player asked to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, player string) (backToMenu bool, err error) {
	model := NewModel(game, saverFor(store), cfg, player)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: cannot run game: %w", err)
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
