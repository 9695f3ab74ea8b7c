// Package stats aggregates training session statistics and persists
// them as JSON.
package stats

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pitbosslabs/pitboss/internal/fileutil"
	"github.com/pitbosslabs/pitboss/internal/training"
)

// Session types.
const (
	SessionCounting = "counting"
	SessionFullPlay = "full_play"
)

// SessionRecord holds the statistics of one training session.
type SessionRecord struct {
	SessionID   string    `json:"session_id"`
	SessionType string    `json:"session_type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time,omitzero"`

	CardsCounted int `json:"cards_counted"`
	CountChecks  int `json:"count_checks"`
	CountCorrect int `json:"count_correct"`

	HandsPlayed     int `json:"hands_played"`
	StrategyCorrect int `json:"strategy_correct"`

	IndexOpportunities int `json:"index_opportunities"`
	IndexFollowed      int `json:"index_followed"`

	TotalEVLoss   float64 `json:"total_ev_loss"`
	BestStreak    int     `json:"best_streak"`
	CurrentStreak int     `json:"-"`

	TotalResponseTime time.Duration `json:"total_response_time"`
	ResponseCount     int           `json:"response_count"`
}

// CountAccuracy returns the fraction of count checks answered right.
func (s *SessionRecord) CountAccuracy() float64 {
	if s.CountChecks == 0 {
		return 0
	}
	return float64(s.CountCorrect) / float64(s.CountChecks)
}

// StrategyAccuracy returns the fraction of hands played correctly.
func (s *SessionRecord) StrategyAccuracy() float64 {
	if s.HandsPlayed == 0 {
		return 0
	}
	return float64(s.StrategyCorrect) / float64(s.HandsPlayed)
}

// IndexAccuracy returns the fraction of index opportunities taken.
func (s *SessionRecord) IndexAccuracy() float64 {
	if s.IndexOpportunities == 0 {
		return 0
	}
	return float64(s.IndexFollowed) / float64(s.IndexOpportunities)
}

// AverageResponseTime returns the mean time per response.
func (s *SessionRecord) AverageResponseTime() time.Duration {
	if s.ResponseCount == 0 {
		return 0
	}
	return s.TotalResponseTime / time.Duration(s.ResponseCount)
}

// Duration returns the session length, zero while still running.
func (s *SessionRecord) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

func (s *SessionRecord) recordOutcome(correct bool) {
	if correct {
		s.CurrentStreak++
		if s.CurrentStreak > s.BestStreak {
			s.BestStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}
}

// Tracker records results into the current session and keeps the
// history, persisting it to StatsFile when set.
type Tracker struct {
	Current   *SessionRecord
	History   []*SessionRecord
	StatsFile string

	evaluator *training.Evaluator
	now       func() time.Time
}

// NewTracker creates a tracker. statsFile may be empty to disable
// persistence; an existing file is loaded so history accumulates
// across runs.
func NewTracker(statsFile string) (*Tracker, error) {
	t := &Tracker{
		StatsFile: statsFile,
		evaluator: training.NewEvaluator(),
		now:       time.Now,
	}
	if err := t.load(); err != nil {
		return nil, err
	}
	return t, nil
}

// StartSession opens a new session of the given type.
func (t *Tracker) StartSession(sessionType string) *SessionRecord {
	start := t.now()
	t.Current = &SessionRecord{
		SessionID:   start.Format("20060102_150405"),
		SessionType: sessionType,
		StartTime:   start,
	}
	return t.Current
}

// EndSession closes the current session, appends it to the history and
// persists. Returns nil when no session is open.
func (t *Tracker) EndSession() (*SessionRecord, error) {
	if t.Current == nil {
		return nil, nil
	}
	t.Current.EndTime = t.now()
	t.History = append(t.History, t.Current)

	completed := t.Current
	t.Current = nil

	if err := t.save(); err != nil {
		return completed, err
	}
	return completed, nil
}

// RecordCountingResult folds a counting drill round into the current
// session.
func (t *Tracker) RecordCountingResult(result training.CountingResult) {
	if t.Current == nil {
		return
	}
	s := t.Current

	s.CardsCounted += len(result.CardsShown)
	s.CountChecks++
	if result.Correct {
		s.CountCorrect++
	}
	s.recordOutcome(result.Correct)

	s.TotalResponseTime += result.ResponseTime
	s.ResponseCount++

	s.TotalEVLoss += t.evaluator.EvaluateCounting(result).EVLoss
}

// RecordPlayResult folds a full-play hand into the current session.
func (t *Tracker) RecordPlayResult(result training.PlayResult) {
	if t.Current == nil {
		return
	}
	s := t.Current

	s.HandsPlayed++
	if result.Correct {
		s.StrategyCorrect++
	}
	s.recordOutcome(result.Correct)

	if result.Quizzed {
		s.CountChecks++
		if result.CountCorrect {
			s.CountCorrect++
		}
	}
	if result.IndexApplicable {
		s.IndexOpportunities++
		if result.IndexFollowed {
			s.IndexFollowed++
		}
	}

	for _, e := range t.evaluator.EvaluatePlay(result) {
		s.TotalEVLoss += e.EVLoss
	}
}

// Summary renders the current session for the terminal.
func (t *Tracker) Summary() string {
	if t.Current == nil {
		return "No active session"
	}
	s := t.Current

	var b strings.Builder
	b.WriteString("Session Summary\n")
	if s.SessionType == SessionCounting {
		fmt.Fprintf(&b, "  Cards counted:  %d\n", s.CardsCounted)
		fmt.Fprintf(&b, "  Count checks:   %d\n", s.CountChecks)
		fmt.Fprintf(&b, "  Accuracy:       %.1f%%\n", s.CountAccuracy()*100)
	} else {
		fmt.Fprintf(&b, "  Hands played:      %d\n", s.HandsPlayed)
		fmt.Fprintf(&b, "  Strategy accuracy: %.1f%%\n", s.StrategyAccuracy()*100)
		if s.CountChecks > 0 {
			fmt.Fprintf(&b, "  Count accuracy:    %.1f%%\n", s.CountAccuracy()*100)
		}
	}
	fmt.Fprintf(&b, "  Best streak:    %d\n", s.BestStreak)
	fmt.Fprintf(&b, "  Est. EV loss:   %.2f units", s.TotalEVLoss)
	return b.String()
}

// HistorySummary renders aggregates over the most recent sessions.
func (t *Tracker) HistorySummary(lastN int) string {
	if len(t.History) == 0 {
		return "No session history"
	}
	sessions := t.History
	if lastN > 0 && len(sessions) > lastN {
		sessions = sessions[len(sessions)-lastN:]
	}

	var hands, checks, countCorrect, strategyCorrect, bestStreak int
	var evLoss float64
	for _, s := range sessions {
		hands += s.HandsPlayed
		checks += s.CountChecks
		countCorrect += s.CountCorrect
		strategyCorrect += s.StrategyCorrect
		evLoss += s.TotalEVLoss
		if s.BestStreak > bestStreak {
			bestStreak = s.BestStreak
		}
	}

	var strategyAcc, countAcc float64
	if hands > 0 {
		strategyAcc = float64(strategyCorrect) / float64(hands)
	}
	if checks > 0 {
		countAcc = float64(countCorrect) / float64(checks)
	}

	var b strings.Builder
	b.WriteString("Historical Summary\n")
	fmt.Fprintf(&b, "  Sessions:          %d\n", len(sessions))
	fmt.Fprintf(&b, "  Total hands:       %d\n", hands)
	fmt.Fprintf(&b, "  Strategy accuracy: %.1f%%\n", strategyAcc*100)
	fmt.Fprintf(&b, "  Count accuracy:    %.1f%%\n", countAcc*100)
	fmt.Fprintf(&b, "  Best streak:       %d\n", bestStreak)
	fmt.Fprintf(&b, "  Total EV loss:     %.2f units", evLoss)
	return b.String()
}

type statsFileFormat struct {
	Sessions []*SessionRecord `json:"sessions"`
}

func (t *Tracker) save() error {
	if t.StatsFile == "" {
		return nil
	}
	if dir := filepath.Dir(t.StatsFile); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create stats directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(statsFileFormat{Sessions: t.History}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	return fileutil.WriteFileAtomic(t.StatsFile, data, 0o644)
}

func (t *Tracker) load() error {
	if t.StatsFile == "" {
		return nil
	}
	data, err := os.ReadFile(t.StatsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read stats file: %w", err)
	}

	var f statsFileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("failed to parse stats file: %w", err)
	}
	t.History = f.Sessions
	return nil
}
