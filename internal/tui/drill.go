// Package tui holds the Bubble Tea models for the interactive trainer.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/stats"
	"github.com/pitbosslabs/pitboss/internal/training"
)

type drillState int

const (
	drillAnswering drillState = iota
	drillFeedback
	drillDone
)

// DrillModel is the Bubble Tea model for the counting drill: cards are
// revealed a few at a time and the user keys in the running count.
type DrillModel struct {
	drill   *training.CountingDrill
	tracker *stats.Tracker
	logger  *log.Logger
	cards   CardRenderer

	countInput textinput.Model

	state         drillState
	shown         []deck.Card
	correctCount  int
	lastResult    training.CountingResult
	showTrueCount bool
	err           error

	width  int
	height int
}

// NewDrillModel starts a counting drill session. The tracker may be nil
// when no persistence is wanted.
func NewDrillModel(drill *training.CountingDrill, tracker *stats.Tracker, renderer CardRenderer, showTrueCount bool, logger *log.Logger) (*DrillModel, error) {
	ti := textinput.New()
	ti.Placeholder = "running count"
	ti.Prompt = "> "
	ti.CharLimit = 5
	ti.Width = 20
	ti.Focus()

	m := &DrillModel{
		drill:         drill,
		tracker:       tracker,
		logger:        logger.WithPrefix("drill"),
		cards:         renderer,
		countInput:    ti,
		showTrueCount: showTrueCount,
	}
	if tracker != nil {
		tracker.StartSession(stats.SessionCounting)
	}
	if err := m.deal(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DrillModel) deal() error {
	cards, correct, err := m.drill.DealRound()
	if err != nil {
		return fmt.Errorf("deal drill round: %w", err)
	}
	m.shown = cards
	m.correctCount = correct
	m.state = drillAnswering
	m.countInput.SetValue("")
	m.countInput.Focus()
	return nil
}

// Init implements tea.Model.
func (m *DrillModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *DrillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m.finish()
		case "enter":
			switch m.state {
			case drillAnswering:
				return m.submitAnswer()
			case drillFeedback:
				if err := m.deal(); err != nil {
					m.err = err
					return m.finish()
				}
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.state == drillAnswering {
		m.countInput, cmd = m.countInput.Update(msg)
	}
	return m, cmd
}

func (m *DrillModel) submitAnswer() (tea.Model, tea.Cmd) {
	user, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
	if err != nil {
		m.countInput.SetValue("")
		return m, nil
	}

	m.lastResult = m.drill.CheckAnswer(m.shown, m.correctCount, user)
	if m.tracker != nil {
		m.tracker.RecordCountingResult(m.lastResult)
	}
	m.logger.Debug("drill answer",
		"user", user, "correct", m.correctCount, "ok", m.lastResult.Correct)

	m.state = drillFeedback
	m.countInput.Blur()
	return m, nil
}

func (m *DrillModel) finish() (tea.Model, tea.Cmd) {
	m.state = drillDone
	if m.tracker != nil {
		if _, err := m.tracker.EndSession(); err != nil {
			m.logger.Error("failed to save session", "error", err)
		}
	}
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

// Err returns the error that ended the drill, if any.
func (m *DrillModel) Err() error {
	return m.err
}

// View implements tea.Model.
func (m *DrillModel) View() string {
	if m.state == drillDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Card Counting Drill"))
	b.WriteString("\n\n")

	b.WriteString("Cards: ")
	b.WriteString(m.cards.RenderAll(m.shown))
	b.WriteString("\n\n")

	switch m.state {
	case drillAnswering:
		b.WriteString("What is the running count?\n")
		b.WriteString(m.countInput.View())
		b.WriteString("\n")
	case drillFeedback:
		if m.lastResult.Correct {
			b.WriteString(SuccessStyle.Render(fmt.Sprintf("✓ Correct, running count is %+d", m.correctCount)))
		} else {
			b.WriteString(ErrorStyle.Render(fmt.Sprintf("✗ Running count is %+d, you said %+d",
				m.correctCount, m.lastResult.UserCount)))
		}
		b.WriteString("\n")
		if m.showTrueCount {
			tc := m.drill.Counter.TrueCountInt(m.drill.Shoe.DecksRemaining())
			b.WriteString(CountStyle.Render(fmt.Sprintf("True count: %+d", tc)))
			b.WriteString("\n")
		}
		b.WriteString(InfoStyle.Render("Enter for next round"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStats())
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("Esc to finish"))

	return PaneStyle.Render(b.String())
}

func (m *DrillModel) renderStats() string {
	rounds := len(m.drill.Results)
	if rounds == 0 {
		return InfoStyle.Render("No rounds answered yet")
	}
	parts := []string{
		fmt.Sprintf("Rounds: %d", rounds),
		fmt.Sprintf("Accuracy: %.0f%%", m.drill.Accuracy()*100),
		fmt.Sprintf("Streak: %d (best %d)", m.drill.CurrentStreak(), m.drill.BestStreak()),
		fmt.Sprintf("Avg: %.1fs", m.drill.AverageResponseTime().Seconds()),
	}
	return InfoStyle.Render(strings.Join(parts, "  "))
}

var _ tea.Model = (*DrillModel)(nil)

// helper shared by the models for centered footers
func footer(width int, text string) string {
	if width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
