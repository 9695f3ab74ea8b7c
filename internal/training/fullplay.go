package training

import (
	"fmt"
	"math/rand/v2"

	"github.com/pitbosslabs/pitboss/internal/counting"
	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/strategy"
)

// PlayResult is one full-play hand decision: what the user did, what
// was correct, and the count quiz outcome if one was asked.
type PlayResult struct {
	PlayerCards   []deck.Card
	HandValue     int
	DealerUpcard  deck.Card
	UserAction    game.Action
	CorrectAction strategy.Decision
	Correct       bool

	// Quizzed is true when a running count quiz was asked this hand.
	Quizzed      bool
	UserCount    int
	CorrectCount int
	CountCorrect bool

	// IndexApplicable marks hands where an index deviation was live.
	IndexApplicable bool
	IndexFollowed   bool
}

func (r PlayResult) String() string {
	status := "✗"
	if r.Correct {
		status = "✓"
	}
	s := fmt.Sprintf("%s %v = %d vs %s", status, r.PlayerCards, r.HandValue, r.DealerUpcard)
	if r.Quizzed {
		cs := "✗"
		if r.CountCorrect {
			cs = "✓"
		}
		s += fmt.Sprintf(" | Count: %s (RC=%+d)", cs, r.CorrectCount)
	}
	return s
}

// FullPlayDrill plays complete blackjack rounds with the count tracked
// invisibly through the engine's exposure callback. Every decision is
// checked against basic strategy plus index deviations.
type FullPlayDrill struct {
	Engine   *game.Engine
	Counter  *counting.Counter
	Strategy *strategy.BasicStrategy
	Results  []PlayResult

	QuizFrequency float64

	rng *rand.Rand
}

// NewFullPlayDrill wires a drill: the counter is attached to the engine
// as the exposure callback, so it sees exactly the cards a player at
// the table would.
func NewFullPlayDrill(shoe *game.Shoe, player *game.Player, dealer *game.Dealer, payout, quizFrequency float64, rng *rand.Rand) *FullPlayDrill {
	d := &FullPlayDrill{
		Counter:       counting.NewCounter(),
		Strategy:      strategy.NewBasicStrategy(dealer.Rule),
		QuizFrequency: quizFrequency,
		rng:           rng,
	}
	d.Engine = game.NewEngine(shoe, player, dealer, payout, func(c deck.Card) {
		d.Counter.CountCard(c)
	})
	return d
}

// StartHand begins a round, resetting the count first when the shoe is
// due a shuffle (the engine shuffles as part of the deal).
func (d *FullPlayDrill) StartHand(bet float64) (*game.Hand, deck.Card, error) {
	if d.Engine.NeedsShuffle() {
		d.Counter.Reset()
	}
	return d.Engine.StartRound(bet)
}

// TrueCount returns the current true count against the live shoe.
func (d *FullPlayDrill) TrueCount() int {
	return d.Counter.TrueCountInt(d.Engine.Shoe.DecksRemaining())
}

// CorrectDecision returns the right play for a hand: the index
// deviation when the count warrants one, basic strategy otherwise.
func (d *FullPlayDrill) CorrectDecision(hand *game.Hand, upcard deck.Card) strategy.Decision {
	canDouble := hand.CanDouble() && d.Engine.Player.Bankroll >= hand.Bet
	canSplit := hand.CanSplit() && d.Engine.Player.CanSplit() && d.Engine.Player.Bankroll >= hand.Bet
	canSurrender := hand.CanSurrender()

	basic := d.Strategy.Decide(hand, upcard, canDouble, canSplit, canSurrender)

	if deviation, ok := d.findDeviation(hand, upcard); ok {
		return adjustDeviation(deviation, canDouble, canSplit, canSurrender, basic)
	}
	return basic
}

func (d *FullPlayDrill) findDeviation(hand *game.Hand, upcard deck.Card) (strategy.Decision, bool) {
	value, soft := hand.SoftValue()
	kind := strategy.HardHand
	switch {
	case hand.IsTenPair():
		kind = strategy.PairHand
	case hand.IsPair():
		// Only the ten pair has index plays; other pairs stay on the
		// pair chart.
		return 0, false
	case soft:
		kind = strategy.SoftHand
	}
	return strategy.Deviation(value, strategy.UpcardValue(upcard), d.TrueCount(), kind)
}

// adjustDeviation downgrades a deviation the table rules cannot honor
// back toward its playable form, falling back to basic strategy when
// the deviating action is impossible.
func adjustDeviation(dev strategy.Decision, canDouble, canSplit, canSurrender bool, basic strategy.Decision) strategy.Decision {
	switch {
	case dev == strategy.Double && !canDouble:
		return strategy.Hit
	case dev == strategy.Split && !canSplit:
		return basic
	case dev == strategy.SurrenderHit && !canSurrender:
		return strategy.Hit
	}
	return dev
}

// CheckAction reports whether a chosen action satisfies the correct
// decision. Composite decisions accept their fallback: double-or-stand
// takes either, surrender-else-hit takes either.
func (d *FullPlayDrill) CheckAction(hand *game.Hand, upcard deck.Card, action game.Action) bool {
	return actionSatisfies(action, d.CorrectDecision(hand, upcard))
}

func actionSatisfies(action game.Action, correct strategy.Decision) bool {
	switch correct {
	case strategy.DoubleStand:
		return action == game.ActionDouble || action == game.ActionStand
	case strategy.SurrenderHit:
		return action == game.ActionSurrender || action == game.ActionHit
	case strategy.SurrenderStand:
		return action == game.ActionSurrender || action == game.ActionStand
	case strategy.Hit:
		return action == game.ActionHit
	case strategy.Stand:
		return action == game.ActionStand
	case strategy.Double:
		return action == game.ActionDouble
	case strategy.Split:
		return action == game.ActionSplit
	}
	return false
}

// ShouldQuizCount rolls whether to ask for the running count this hand.
func (d *FullPlayDrill) ShouldQuizCount() bool {
	return d.rng.Float64() < d.QuizFrequency
}

// CheckCount scores a count quiz answer against the live running count.
func (d *FullPlayDrill) CheckCount(userCount int) (correct bool, actual int) {
	actual = d.Counter.RunningCount()
	return userCount == actual, actual
}

// RecordResult captures one decision for the session history. Pass
// quizzed=false when no count quiz was asked.
func (d *FullPlayDrill) RecordResult(hand *game.Hand, upcard deck.Card, action game.Action, quizzed bool, userCount int) PlayResult {
	correct := d.CorrectDecision(hand, upcard)
	_, indexApplicable := d.findDeviation(hand, upcard)

	result := PlayResult{
		PlayerCards:     append([]deck.Card(nil), hand.Cards...),
		HandValue:       hand.Value(),
		DealerUpcard:    upcard,
		UserAction:      action,
		CorrectAction:   correct,
		Correct:         actionSatisfies(action, correct),
		IndexApplicable: indexApplicable,
	}
	if indexApplicable {
		result.IndexFollowed = result.Correct
	}
	if quizzed {
		result.Quizzed = true
		result.UserCount = userCount
		result.CorrectCount = d.Counter.RunningCount()
		result.CountCorrect = userCount == result.CorrectCount
	}
	d.Results = append(d.Results, result)
	return result
}

// StrategyAccuracy returns the fraction of decisions played correctly.
func (d *FullPlayDrill) StrategyAccuracy() float64 {
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

// CountAccuracy returns the fraction of count quizzes answered
// correctly.
func (d *FullPlayDrill) CountAccuracy() float64 {
	quizzed, correct := 0, 0
	for _, r := range d.Results {
		if r.Quizzed {
			quizzed++
			if r.CountCorrect {
				correct++
			}
		}
	}
	if quizzed == 0 {
		return 0
	}
	return float64(correct) / float64(quizzed)
}

// HandsPlayed returns the number of recorded decisions.
func (d *FullPlayDrill) HandsPlayed() int {
	return len(d.Results)
}
