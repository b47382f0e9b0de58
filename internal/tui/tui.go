// Package tui shows a single game in observer mode: the game advances on
// its own, one step per tick, and the viewer can only pause, step or quit.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/lox/briscola/internal/deck"
	"github.com/lox/briscola/internal/game"
)

// stage is the part of a trick shown next
type stage int

const (
	stageLead stage = iota
	stageFollow
	stageResolve
)

func (s stage) String() string {
	switch s {
	case stageLead:
		return "lead"
	case stageFollow:
		return "follow"
	case stageResolve:
		return "resolve"
	default:
		return "unknown"
	}
}

// tickMsg advances the game by one stage. Ticks carry the generation they
// were scheduled in so stale ticks are dropped after a pause.
type tickMsg struct {
	gen int
}

// Model is the Bubble Tea model for the observer view
type Model struct {
	game      *game.Game
	pace      time.Duration
	formatter *game.EventFormatter
	logger    *log.Logger

	logViewport viewport.Model
	gameLog     []string

	snapshot game.Snapshot
	stage    stage
	pending  *game.TrickRecord
	tickGen  int
	paused   bool
	done     bool
	quitting bool
	result   *game.Result
	err      error

	width  int
	height int
}

// Option configures a Model
type Option func(*Model)

// WithPace sets the delay between stages
func WithPace(d time.Duration) Option {
	return func(m *Model) { m.pace = d }
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(m *Model) { m.logger = logger }
}

// WithFormatting sets the formatter options used for log lines
func WithFormatting(opts game.FormattingOptions) Option {
	return func(m *Model) { m.formatter = game.NewEventFormatter(opts) }
}

// NewModel creates an observer for a freshly dealt game
func NewModel(g *game.Game, opts ...Option) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	m := &Model{
		game:        g,
		pace:        time.Second,
		formatter:   game.NewEventFormatter(game.FormattingOptions{}),
		logger:      log.New(io.Discard),
		logViewport: vp,
		snapshot:    g.Snapshot(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.WithPrefix("tui")

	for _, line := range strings.Split(m.formatter.FormatGameStart(game.NewGameStartEvent(m.snapshot)), "\n") {
		m.addLogEntry(line)
	}
	return m
}

// Init starts the tick loop
func (m *Model) Init() tea.Cmd {
	return m.tick()
}

func (m *Model) tick() tea.Cmd {
	gen := m.tickGen
	if m.pace <= 0 {
		return func() tea.Msg { return tickMsg{gen: gen} }
	}
	return tea.Tick(m.pace, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tickMsg:
		if msg.gen != m.tickGen || m.paused || m.done {
			return m, nil
		}
		m.step()
		if !m.done {
			cmds = append(cmds, m.tick())
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit
		case "p":
			m.paused = !m.paused
			m.tickGen++
			if !m.paused && !m.done {
				cmds = append(cmds, m.tick())
			}
		case " ", "n":
			if m.paused {
				m.step()
			}
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// step shows the next stage of the current trick. The engine resolves a
// trick in one call, so the record is held back and revealed in parts.
func (m *Model) step() {
	if m.done {
		return
	}

	switch m.stage {
	case stageLead:
		record, err := m.game.PlayTrick()
		if err != nil {
			m.err = err
			m.done = true
			m.addLogEntry(ErrorStyle.Render(m.formatter.Format(game.NewGameAbortEvent(m.game.ID(), err))))
			return
		}
		m.pending = record
		m.addLogEntry(fmt.Sprintf("Trick %d: %s leads %s",
			record.Number, m.name(record.Leader), m.renderCard(record.Lead)))
		m.stage = stageFollow

	case stageFollow:
		follower := m.pending.Leader.Other()
		m.addLogEntry(fmt.Sprintf("Trick %d: %s follows %s",
			m.pending.Number, m.name(follower), m.renderCard(m.pending.Follow)))
		m.stage = stageResolve

	case stageResolve:
		m.snapshot = m.game.Snapshot()
		m.addLogEntry(SuccessStyle.Render(fmt.Sprintf("  %s takes %d",
			m.name(m.pending.Winner), m.pending.Points)))
		m.pending = nil
		m.stage = stageLead

		if m.game.IsOver() {
			m.done = true
			if result, ok := m.game.Result(); ok {
				m.result = result
				m.addLogEntry("")
				for _, line := range strings.Split(m.formatter.FormatGameEnd(game.NewGameEndEvent(*result)), "\n") {
					m.addLogEntry(line)
				}
			}
		}
	}
	m.logger.Debug("Advanced", "stage", m.stage, "done", m.done)
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(fmt.Sprintf("Briscola: %s vs %s", m.name(game.Seat0), m.name(game.Seat1)))
	footer := InfoStyle.Render(m.helpLine())

	sidebar := m.renderSidebar()
	sidebarWidth := max(lipgloss.Width(sidebar), 24)
	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-2, 1)
	logWidth := max(m.width-sidebarWidth-4, 1)

	m.logViewport.Width = logWidth
	m.logViewport.Height = bodyHeight

	logPane := paneStyle.Width(logWidth).Height(bodyHeight).Render(m.logViewport.View())
	sidePane := paneStyle.Width(sidebarWidth).Height(bodyHeight).Render(sidebar)

	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidePane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder
	snap := m.snapshot

	b.WriteString(TrumpStyle.Render(fmt.Sprintf("Trump: %s", snap.Trump)))
	b.WriteString(" ")
	b.WriteString(m.renderCard(snap.TrumpCard))
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render(fmt.Sprintf("Deck: %d  Trick: %d/%d", snap.DeckRemaining, snap.Trick, game.TricksPerGame)))
	b.WriteString("\n\n")

	for _, seat := range []game.Seat{game.Seat0, game.Seat1} {
		s := snap.Seats[seat]
		b.WriteString(PlayerInfoStyle.Render(s.Name))
		if seat == snap.Leader && !m.done {
			b.WriteString(WarningStyle.Render(" *"))
		}
		b.WriteString("\n")
		b.WriteString(ScoreStyle.Render(fmt.Sprintf("  %d points", s.Score)))
		b.WriteString("\n  ")
		b.WriteString(m.renderCards(s.Hand))
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) helpLine() string {
	switch {
	case m.done:
		return "game over | q: quit"
	case m.paused:
		return "paused | space: step  p: resume  q: quit"
	default:
		return "p: pause  q: quit"
	}
}

func (m *Model) renderCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("(empty)")
	}
	formatted := make([]string, 0, len(cards))
	for _, c := range cards {
		formatted = append(formatted, m.renderCard(c))
	}
	return strings.Join(formatted, " ")
}

func (m *Model) renderCard(c deck.Card) string {
	return CardStyle(c).Render(c.String())
}

func (m *Model) name(seat game.Seat) string {
	return m.snapshot.Seats[seat].Name
}

// addLogEntry adds an entry to the game log and scrolls to it
func (m *Model) addLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Log returns the lines shown so far
func (m *Model) Log() []string {
	out := make([]string, len(m.gameLog))
	copy(out, m.gameLog)
	return out
}

// Done reports whether the game has finished or aborted
func (m *Model) Done() bool { return m.done }

// Result returns the final result once the game is over
func (m *Model) Result() (*game.Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, fmt.Errorf("game %s is still in progress", m.game.ID())
	}
	return m.result, nil
}

// Run starts a Bubble Tea program for the model and blocks until it exits.
// Quitting before the end returns a nil result and no error.
func Run(m *Model, opts ...tea.ProgramOption) (*game.Result, error) {
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return nil, fmt.Errorf("tui failed: %w", err)
	}
	if !m.Done() {
		return nil, nil
	}
	return m.Result()
}
