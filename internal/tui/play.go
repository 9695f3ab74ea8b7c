package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/stats"
	"github.com/pitbosslabs/pitboss/internal/training"
)

type playState int

const (
	playActing playState = iota
	playQuiz
	playRoundOver
	playDone
)

// PlayModel is the Bubble Tea model for full-play training: real rounds
// against the house with every decision graded and the count quizzed at
// random.
type PlayModel struct {
	drill   *training.FullPlayDrill
	tracker *stats.Tracker
	logger  *log.Logger
	cards   CardRenderer

	quizInput textinput.Model

	state         playState
	upcard        deck.Card
	pendingAction game.Action
	summary       *game.RoundSummary
	feedback      []string

	baseBet           float64
	showTrueCount     bool
	showCorrectAction bool
	err               error

	width  int
	height int
}

// NewPlayModel starts a full-play session and deals the first round.
func NewPlayModel(drill *training.FullPlayDrill, tracker *stats.Tracker, renderer CardRenderer, baseBet float64, showTrueCount, showCorrectAction bool, logger *log.Logger) (*PlayModel, error) {
	ti := textinput.New()
	ti.Placeholder = "running count"
	ti.Prompt = "> "
	ti.CharLimit = 5
	ti.Width = 20

	m := &PlayModel{
		drill:             drill,
		tracker:           tracker,
		logger:            logger.WithPrefix("play"),
		cards:             renderer,
		quizInput:         ti,
		baseBet:           baseBet,
		showTrueCount:     showTrueCount,
		showCorrectAction: showCorrectAction,
	}
	if tracker != nil {
		tracker.StartSession(stats.SessionFullPlay)
	}
	if err := m.startRound(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *PlayModel) startRound() error {
	m.feedback = nil
	m.summary = nil

	_, upcard, err := m.drill.StartHand(m.baseBet)
	if err != nil {
		return fmt.Errorf("start round: %w", err)
	}
	m.upcard = upcard

	if summary := m.drill.Engine.CheckEarlyBlackjack(); summary != nil {
		m.endRound(summary)
		return nil
	}
	m.state = playActing
	return nil
}

func (m *PlayModel) endRound(summary *game.RoundSummary) {
	m.summary = summary
	m.state = playRoundOver
}

// Init implements tea.Model.
func (m *PlayModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case playActing:
			return m.handleActionKey(msg)
		case playQuiz:
			return m.handleQuizKey(msg)
		case playRoundOver:
			switch msg.String() {
			case "ctrl+c", "esc", "q":
				return m.finish()
			case "enter":
				if err := m.startRound(); err != nil {
					m.err = err
					return m.finish()
				}
				return m, nil
			}
		}
		if msg.String() == "ctrl+c" || msg.String() == "esc" {
			return m.finish()
		}
	}
	return m, nil
}

var actionKeys = map[string]game.Action{
	"h": game.ActionHit,
	"s": game.ActionStand,
	"d": game.ActionDouble,
	"p": game.ActionSplit,
	"r": game.ActionSurrender,
}

func (m *PlayModel) handleActionKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" || key == "esc" {
		return m.finish()
	}

	action, ok := actionKeys[key]
	if !ok {
		return m, nil
	}
	idx := m.drill.Engine.Player.ActiveHandIndex()
	if idx < 0 || !actionAvailable(m.drill.Engine.GetAvailableActions(idx), action) {
		return m, nil
	}

	if m.drill.ShouldQuizCount() {
		m.pendingAction = action
		m.state = playQuiz
		m.quizInput.SetValue("")
		m.quizInput.Focus()
		return m, textinput.Blink
	}
	return m.commit(action, false, 0)
}

func (m *PlayModel) handleQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m.finish()
	case "enter":
		user, err := strconv.Atoi(strings.TrimSpace(m.quizInput.Value()))
		if err != nil {
			m.quizInput.SetValue("")
			return m, nil
		}
		m.quizInput.Blur()
		return m.commit(m.pendingAction, true, user)
	}

	var cmd tea.Cmd
	m.quizInput, cmd = m.quizInput.Update(msg)
	return m, cmd
}

// commit grades the decision against the pre-action hand, then lets the
// engine mutate it.
func (m *PlayModel) commit(action game.Action, quizzed bool, userCount int) (tea.Model, tea.Cmd) {
	idx := m.drill.Engine.Player.ActiveHandIndex()
	hand := m.drill.Engine.Player.Hands[idx]

	result := m.drill.RecordResult(hand, m.upcard, action, quizzed, userCount)
	if m.tracker != nil {
		m.tracker.RecordPlayResult(result)
	}
	m.addFeedback(result)

	if _, err := m.drill.Engine.ExecuteAction(action, idx); err != nil {
		m.err = fmt.Errorf("execute %s: %w", action, err)
		return m.finish()
	}

	if m.drill.Engine.Player.ActiveHandIndex() < 0 {
		if err := m.drill.Engine.PlayDealer(); err != nil {
			m.err = fmt.Errorf("dealer play: %w", err)
			return m.finish()
		}
		m.endRound(m.drill.Engine.ResolveRound())
		return m, nil
	}
	m.state = playActing
	return m, nil
}

func (m *PlayModel) addFeedback(result training.PlayResult) {
	if result.Correct {
		m.feedback = append(m.feedback, SuccessStyle.Render(fmt.Sprintf("✓ %s", result.UserAction)))
	} else {
		line := ErrorStyle.Render(fmt.Sprintf("✗ %s", result.UserAction))
		if m.showCorrectAction {
			line += InfoStyle.Render(fmt.Sprintf("  (book play: %s)", result.CorrectAction))
		}
		m.feedback = append(m.feedback, line)
	}
	if result.Quizzed {
		if result.CountCorrect {
			m.feedback = append(m.feedback, SuccessStyle.Render("✓ count on the money"))
		} else {
			m.feedback = append(m.feedback, ErrorStyle.Render(
				fmt.Sprintf("✗ running count is %+d, you said %+d", result.CorrectCount, result.UserCount)))
		}
	}
}

func (m *PlayModel) finish() (tea.Model, tea.Cmd) {
	m.state = playDone
	if m.tracker != nil {
		if _, err := m.tracker.EndSession(); err != nil {
			m.logger.Error("failed to save session", "error", err)
		}
	}
	return m, tea.Sequence(tea.ClearScreen, tea.Quit)
}

// Err returns the error that ended the session, if any.
func (m *PlayModel) Err() error {
	return m.err
}

// View implements tea.Model.
func (m *PlayModel) View() string {
	if m.state == playDone {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Full Play Training"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Dealer: %s [?]\n", m.cards.Render(m.upcard)))

	for i, hand := range m.drill.Engine.Player.Hands {
		marker := "  "
		if m.state != playRoundOver && i == m.drill.Engine.Player.ActiveHandIndex() {
			marker = "▶ "
		}
		b.WriteString(fmt.Sprintf("%s%s = %d  bet $%.0f\n",
			marker, m.cards.RenderAll(hand.Cards), hand.Value(), hand.Bet))
	}
	b.WriteString("\n")

	switch m.state {
	case playActing:
		b.WriteString(m.renderActions())
		b.WriteString("\n")
	case playQuiz:
		b.WriteString(WarningStyle.Render("Count check! What is the running count?"))
		b.WriteString("\n")
		b.WriteString(m.quizInput.View())
		b.WriteString("\n")
	case playRoundOver:
		b.WriteString(m.renderSummary())
		b.WriteString("\n")
		b.WriteString(InfoStyle.Render("Enter for next hand, q to finish"))
		b.WriteString("\n")
	}

	for _, line := range m.feedback {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())

	return PaneStyle.Render(b.String())
}

func (m *PlayModel) renderActions() string {
	idx := m.drill.Engine.Player.ActiveHandIndex()
	if idx < 0 {
		return ""
	}
	var labels []string
	for _, a := range m.drill.Engine.GetAvailableActions(idx) {
		switch a {
		case game.ActionHit:
			labels = append(labels, "[h]it")
		case game.ActionStand:
			labels = append(labels, "[s]tand")
		case game.ActionDouble:
			labels = append(labels, "[d]ouble")
		case game.ActionSplit:
			labels = append(labels, "s[p]lit")
		case game.ActionSurrender:
			labels = append(labels, "su[r]render")
		}
	}
	return ActionsStyle.Render(strings.Join(labels, " "))
}

func (m *PlayModel) renderSummary() string {
	var b strings.Builder
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Dealer: %s = %d",
		m.cards.RenderAll(m.summary.DealerHand.Cards), m.summary.DealerHand.Value())))
	b.WriteString("\n")
	for _, hr := range m.summary.HandResults {
		style := InfoStyle
		switch {
		case hr.Payout > 0:
			style = SuccessStyle
		case hr.Payout < 0:
			style = ErrorStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s %+.2f", strings.ToUpper(hr.Outcome.String()), hr.Payout)))
		b.WriteString("\n")
	}
	b.WriteString(HandInfoStyle.Render(fmt.Sprintf("Net: %+.2f", m.summary.TotalPayout)))
	return b.String()
}

func (m *PlayModel) renderStatus() string {
	parts := []string{
		fmt.Sprintf("Bankroll: $%.0f", m.drill.Engine.Player.Bankroll),
		fmt.Sprintf("Hands: %d", m.drill.HandsPlayed()),
	}
	if m.drill.HandsPlayed() > 0 {
		parts = append(parts, fmt.Sprintf("Accuracy: %.0f%%", m.drill.StrategyAccuracy()*100))
	}
	status := InfoStyle.Render(strings.Join(parts, "  "))
	if m.showTrueCount {
		status += "  " + CountStyle.Render(fmt.Sprintf("RC %+d / TC %+d",
			m.drill.Counter.RunningCount(), m.drill.TrueCount()))
	}
	return footer(m.width, status)
}

func actionAvailable(actions []game.Action, action game.Action) bool {
	for _, a := range actions {
		if a == action {
			return true
		}
	}
	return false
}

var _ tea.Model = (*PlayModel)(nil)
