package stats

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/strategy"
	"github.com/pitbosslabs/pitboss/internal/training"
)

func countingResult(correct bool, responseTime time.Duration) training.CountingResult {
	user := 2
	if !correct {
		user = 5
	}
	return training.CountingResult{
		CardsShown: []deck.Card{
			deck.NewCard(deck.Five, deck.Spades),
			deck.NewCard(deck.Six, deck.Hearts),
		},
		CorrectCount: 2,
		UserCount:    user,
		Correct:      correct,
		ResponseTime: responseTime,
	}
}

func TestTrackerCountingSession(t *testing.T) {
	tracker, err := NewTracker("")
	require.NoError(t, err)

	tracker.StartSession(SessionCounting)
	tracker.RecordCountingResult(countingResult(true, time.Second))
	tracker.RecordCountingResult(countingResult(true, 3*time.Second))
	tracker.RecordCountingResult(countingResult(false, 2*time.Second))

	s := tracker.Current
	assert.Equal(t, 6, s.CardsCounted)
	assert.Equal(t, 3, s.CountChecks)
	assert.Equal(t, 2, s.CountCorrect)
	assert.InDelta(t, 2.0/3.0, s.CountAccuracy(), 1e-9)
	assert.Equal(t, 2, s.BestStreak)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 2*time.Second, s.AverageResponseTime())
	// The miss was off by three: 0.03 units.
	assert.InDelta(t, 0.03, s.TotalEVLoss, 1e-9)
}

func TestTrackerPlaySession(t *testing.T) {
	tracker, err := NewTracker("")
	require.NoError(t, err)

	tracker.StartSession(SessionFullPlay)
	tracker.RecordPlayResult(training.PlayResult{
		HandValue:     20,
		CorrectAction: strategy.Stand,
		UserAction:    game.ActionStand,
		Correct:       true,
	})
	tracker.RecordPlayResult(training.PlayResult{
		HandValue:       16,
		CorrectAction:   strategy.Stand,
		UserAction:      game.ActionHit,
		Correct:         false,
		Quizzed:         true,
		UserCount:       1,
		CorrectCount:    2,
		CountCorrect:    false,
		IndexApplicable: true,
		IndexFollowed:   false,
	})

	s := tracker.Current
	assert.Equal(t, 2, s.HandsPlayed)
	assert.Equal(t, 1, s.StrategyCorrect)
	assert.Equal(t, 1, s.CountChecks)
	assert.Equal(t, 0, s.CountCorrect)
	assert.Equal(t, 1, s.IndexOpportunities)
	assert.Equal(t, 0, s.IndexFollowed)
	assert.Equal(t, 1, s.BestStreak)
	// Strategy miss 0.05, count off by one 0.01, index ignored 0.02.
	assert.InDelta(t, 0.08, s.TotalEVLoss, 1e-9)
}

func TestTrackerIgnoresResultsWithoutSession(t *testing.T) {
	tracker, err := NewTracker("")
	require.NoError(t, err)

	tracker.RecordCountingResult(countingResult(true, time.Second))
	assert.Nil(t, tracker.Current)

	completed, err := tracker.EndSession()
	require.NoError(t, err)
	assert.Nil(t, completed)
}

func TestTrackerPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stats", "pitboss.json")

	tracker, err := NewTracker(path)
	require.NoError(t, err)

	tracker.StartSession(SessionCounting)
	tracker.RecordCountingResult(countingResult(true, time.Second))
	completed, err := tracker.EndSession()
	require.NoError(t, err)
	require.NotNil(t, completed)
	assert.False(t, completed.EndTime.IsZero())

	// A fresh tracker over the same file sees the saved session and
	// appends to it.
	reloaded, err := NewTracker(path)
	require.NoError(t, err)
	require.Len(t, reloaded.History, 1)
	assert.Equal(t, completed.SessionID, reloaded.History[0].SessionID)
	assert.Equal(t, 2, reloaded.History[0].CardsCounted)

	reloaded.StartSession(SessionFullPlay)
	_, err = reloaded.EndSession()
	require.NoError(t, err)

	again, err := NewTracker(path)
	require.NoError(t, err)
	assert.Len(t, again.History, 2)
}

func TestTrackerSummaries(t *testing.T) {
	tracker, err := NewTracker("")
	require.NoError(t, err)

	assert.Equal(t, "No active session", tracker.Summary())
	assert.Equal(t, "No session history", tracker.HistorySummary(10))

	tracker.StartSession(SessionCounting)
	tracker.RecordCountingResult(countingResult(true, time.Second))
	assert.Contains(t, tracker.Summary(), "Cards counted:  2")

	_, err = tracker.EndSession()
	require.NoError(t, err)
	summary := tracker.HistorySummary(10)
	assert.Contains(t, summary, "Sessions:          1")
	assert.Contains(t, summary, "Count accuracy:    100.0%")
}
