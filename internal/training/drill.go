// Package training runs the practice drills: rapid-fire counting
// rounds and full blackjack play with strategy and count verification.
package training

import (
	"fmt"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/pitbosslabs/pitboss/internal/counting"
	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/game"
)

// CountingResult is one counting drill round: the cards shown and how
// the answer compared to the true running count.
type CountingResult struct {
	CardsShown   []deck.Card
	CorrectCount int
	UserCount    int
	Correct      bool
	ResponseTime time.Duration
}

func (r CountingResult) String() string {
	status := "✗"
	if r.Correct {
		status = "✓"
	}
	cards := make([]string, len(r.CardsShown))
	for i, c := range r.CardsShown {
		cards[i] = c.String()
	}
	return fmt.Sprintf("%s Cards: %s | Expected: %+d, Got: %+d",
		status, strings.Join(cards, " "), r.CorrectCount, r.UserCount)
}

// CountingDrill deals short bursts of cards and checks running count
// answers, timing each response with the injected clock.
type CountingDrill struct {
	Shoe          *game.Shoe
	Counter       *counting.Counter
	CardsPerRound int
	Results       []CountingResult

	clock     quartz.Clock
	dealtAt   time.Time
	roundOpen bool
}

// NewCountingDrill builds a drill over a shoe. Pass quartz.NewReal()
// outside tests.
func NewCountingDrill(shoe *game.Shoe, cardsPerRound int, clock quartz.Clock) *CountingDrill {
	return &CountingDrill{
		Shoe:          shoe,
		Counter:       counting.NewCounter(),
		CardsPerRound: cardsPerRound,
		clock:         clock,
	}
}

// Reset reshuffles and clears the count and history for a new session.
func (d *CountingDrill) Reset() {
	d.Shoe.Shuffle()
	d.Counter.Reset()
	d.Results = d.Results[:0]
	d.roundOpen = false
}

// DealRound deals one burst of cards, reshuffling mid-drill when
// penetration is reached (which also resets the count). Returns the
// cards and the running count after them; the response timer starts
// now.
func (d *CountingDrill) DealRound() ([]deck.Card, int, error) {
	cards := make([]deck.Card, 0, d.CardsPerRound)
	for i := 0; i < d.CardsPerRound; i++ {
		if d.Shoe.NeedsShuffle() {
			d.Shoe.Shuffle()
			d.Counter.Reset()
		}
		card, err := d.Shoe.Deal()
		if err != nil {
			return nil, 0, err
		}
		d.Counter.CountCard(card)
		cards = append(cards, card)
	}

	d.dealtAt = d.clock.Now()
	d.roundOpen = true
	return cards, d.Counter.RunningCount(), nil
}

// CheckAnswer scores the user's count for the round dealt last and
// records the result.
func (d *CountingDrill) CheckAnswer(cards []deck.Card, correctCount, userCount int) CountingResult {
	var elapsed time.Duration
	if d.roundOpen {
		elapsed = d.clock.Now().Sub(d.dealtAt)
		d.roundOpen = false
	}

	result := CountingResult{
		CardsShown:   cards,
		CorrectCount: correctCount,
		UserCount:    userCount,
		Correct:      userCount == correctCount,
		ResponseTime: elapsed,
	}
	d.Results = append(d.Results, result)
	return result
}

// Accuracy returns the fraction of rounds answered correctly.
func (d *CountingDrill) Accuracy() float64 {
	if len(d.Results) == 0 {
		return 0
	}
	correct := 0
	for _, r := range d.Results {
		if r.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(d.Results))
}

// AverageResponseTime returns the mean time to answer.
func (d *CountingDrill) AverageResponseTime() time.Duration {
	if len(d.Results) == 0 {
		return 0
	}
	var total time.Duration
	for _, r := range d.Results {
		total += r.ResponseTime
	}
	return total / time.Duration(len(d.Results))
}

// CurrentStreak returns the run of correct answers ending at the most
// recent round.
func (d *CountingDrill) CurrentStreak() int {
	streak := 0
	for i := len(d.Results) - 1; i >= 0; i-- {
		if !d.Results[i].Correct {
			break
		}
		streak++
	}
	return streak
}

// BestStreak returns the longest run of correct answers this session.
func (d *CountingDrill) BestStreak() int {
	best, current := 0, 0
	for _, r := range d.Results {
		if r.Correct {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 0
		}
	}
	return best
}
