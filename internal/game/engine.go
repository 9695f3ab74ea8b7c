package game

import (
	"fmt"
	"strings"

	"github.com/pitbosslabs/pitboss/internal/deck"
)

// Action is a player action the engine can execute.
type Action int

const (
	ActionHit Action = iota
	ActionStand
	ActionDouble
	ActionSplit
	ActionSurrender
)

// String returns the string representation of an action
func (a Action) String() string {
	switch a {
	case ActionHit:
		return "hit"
	case ActionStand:
		return "stand"
	case ActionDouble:
		return "double"
	case ActionSplit:
		return "split"
	case ActionSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// Outcome is the result of a single hand after resolution.
type Outcome int

const (
	OutcomeWin Outcome = iota
	OutcomeLose
	OutcomePush
	OutcomeBlackjack
	OutcomeSurrender
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeLose:
		return "lose"
	case OutcomePush:
		return "push"
	case OutcomeBlackjack:
		return "blackjack"
	case OutcomeSurrender:
		return "surrender"
	default:
		return "unknown"
	}
}

// HandResult is the per-hand outcome with the net payout (negative for a
// loss; the informational -bet/2 for a surrender whose refund already
// happened at surrender time).
type HandResult struct {
	Hand    *Hand
	Outcome Outcome
	Payout  float64
}

func (r HandResult) String() string {
	return fmt.Sprintf("%s: %s -> %+.2f", strings.ToUpper(r.Outcome.String()), r.Hand, r.Payout)
}

// RoundSummary collects every hand result of a round plus the dealer's
// final hand and the net total payout.
type RoundSummary struct {
	HandResults []HandResult
	DealerHand  *Hand
	TotalPayout float64
}

func (s *RoundSummary) String() string {
	lines := []string{fmt.Sprintf("Dealer: %s", s.DealerHand)}
	for _, hr := range s.HandResults {
		lines = append(lines, "  "+hr.String())
	}
	lines = append(lines, fmt.Sprintf("Net: %+.2f", s.TotalPayout))
	return strings.Join(lines, "\n")
}

// ExposureFunc is invoked synchronously for every card that becomes
// visible, in table order. It receives burn cards, both initial player
// cards, the dealer upcard, every hit, and the hole card only at its
// reveal. The callback must not panic; the engine does not recover.
type ExposureFunc func(deck.Card)

// DefaultBlackjackPayout is the 3:2 ratio.
const DefaultBlackjackPayout = 1.5

// Engine orchestrates one round of blackjack end to end. It owns the
// shoe, player and dealer exclusively for the lifetime of a round and is
// the only component with cross-cutting round state. It emits raw facts
// (exposed cards, legal actions, outcomes) and never reads counting or
// strategy state.
type Engine struct {
	Shoe   *Shoe
	Player *Player
	Dealer *Dealer

	// BlackjackPayout is the natural payout ratio (1.5 = 3:2).
	BlackjackPayout float64
	// OnCardExposed, if set, observes every face-up card.
	OnCardExposed ExposureFunc

	roundInProgress bool
}

// NewEngine composes an engine from its parts.
func NewEngine(shoe *Shoe, player *Player, dealer *Dealer, blackjackPayout float64, exposed ExposureFunc) *Engine {
	return &Engine{
		Shoe:            shoe,
		Player:          player,
		Dealer:          dealer,
		BlackjackPayout: blackjackPayout,
		OnCardExposed:   exposed,
	}
}

func (e *Engine) expose(c deck.Card) {
	if e.OnCardExposed != nil {
		e.OnCardExposed(c)
	}
}

// dealTo deals one card to a hand, notifying the exposure callback when
// the card is face up.
func (e *Engine) dealTo(h *Hand, faceUp bool) (deck.Card, error) {
	card, err := e.Shoe.Deal()
	if err != nil {
		return deck.Card{}, err
	}
	h.AddCard(card)
	if faceUp {
		e.expose(card)
	}
	return card, nil
}

// StartRound shuffles if penetration was reached (burning one exposed
// card), then deals in fixed casino order: player, upcard, player, hole
// card face down. Returns the player hand and the dealer upcard.
func (e *Engine) StartRound(bet float64) (*Hand, deck.Card, error) {
	if e.Shoe.NeedsShuffle() {
		e.Shoe.Shuffle()
		for _, burned := range e.Shoe.Burn(1) {
			e.expose(burned)
		}
	}

	playerHand, err := e.Player.NewHand(bet)
	if err != nil {
		return nil, deck.Card{}, err
	}
	e.Dealer.NewRound()

	if _, err := e.dealTo(playerHand, true); err != nil {
		return nil, deck.Card{}, err
	}
	upcard, err := e.Shoe.Deal()
	if err != nil {
		return nil, deck.Card{}, err
	}
	e.Dealer.ReceiveCard(upcard)
	e.expose(upcard)

	if _, err := e.dealTo(playerHand, true); err != nil {
		return nil, deck.Card{}, err
	}
	hole, err := e.Shoe.Deal()
	if err != nil {
		return nil, deck.Card{}, err
	}
	e.Dealer.ReceiveCard(hole) // face down: not exposed until reveal

	e.roundInProgress = true
	return playerHand, upcard, nil
}

// CheckEarlyBlackjack performs the peek: only when the player has
// blackjack or the dealer shows an Ace or ten-value. Dealer
// blackjack-or-not is determined exactly once per round here, but the
// hole card reaches the exposure callback only on an actual reveal.
// Returns nil when normal play continues.
func (e *Engine) CheckEarlyBlackjack() *RoundSummary {
	playerHand := e.Player.Hands[0]
	upcard, ok := e.Dealer.Upcard()
	if !ok {
		return nil
	}

	playerBJ := playerHand.IsBlackjack()
	peek := upcard.IsAce() || upcard.IsTenValue()
	if !playerBJ && !peek {
		return nil
	}

	if e.Dealer.HasBlackjack() {
		if hole, ok := e.Dealer.RevealHoleCard(); ok {
			e.expose(hole)
		}
		e.Dealer.Hand.Status = StatusBlackjack
		if playerBJ {
			// Both naturals: push, full refund.
			playerHand.Status = StatusBlackjack
			e.Player.ReceivePayout(playerHand.Bet)
			return e.summarize([]HandResult{{Hand: playerHand, Outcome: OutcomePush, Payout: 0}})
		}
		return e.summarize([]HandResult{{Hand: playerHand, Outcome: OutcomeLose, Payout: -playerHand.Bet}})
	}

	if playerBJ {
		playerHand.Status = StatusBlackjack
		payout := playerHand.Bet * e.BlackjackPayout
		e.Player.ReceivePayout(playerHand.Bet + payout)
		if hole, ok := e.Dealer.RevealHoleCard(); ok {
			e.expose(hole)
		}
		return e.summarize([]HandResult{{Hand: playerHand, Outcome: OutcomeBlackjack, Payout: payout}})
	}

	return nil
}

// GetAvailableActions derives the exhaustive legal action set for a hand
// from hand eligibility plus player-level constraints (bankroll for
// double/split, remaining split budget). Querying repeatedly without
// intervening mutation returns the identical set.
func (e *Engine) GetAvailableActions(handIndex int) []Action {
	if handIndex < 0 || handIndex >= len(e.Player.Hands) {
		return nil
	}
	hand := e.Player.Hands[handIndex]

	var actions []Action
	if hand.CanHit() {
		actions = append(actions, ActionHit)
	}
	if hand.CanStand() {
		actions = append(actions, ActionStand)
	}
	if hand.CanDouble() && e.Player.Bankroll >= hand.Bet {
		actions = append(actions, ActionDouble)
	}
	if hand.CanSplit() && e.Player.CanSplit() && e.Player.Bankroll >= hand.Bet {
		actions = append(actions, ActionSplit)
	}
	if hand.CanSurrender() {
		actions = append(actions, ActionSurrender)
	}
	return actions
}

// ExecuteAction applies a player action to a hand, returning the cards
// dealt by the action (one for hit/double, two for split, none
// otherwise). Legality is re-verified here regardless of any prior
// GetAvailableActions query; on failure nothing is mutated.
func (e *Engine) ExecuteAction(action Action, handIndex int) ([]deck.Card, error) {
	if handIndex < 0 || handIndex >= len(e.Player.Hands) {
		return nil, fmt.Errorf("no hand at index %d: %w", handIndex, ErrIllegalAction)
	}
	hand := e.Player.Hands[handIndex]

	switch action {
	case ActionHit:
		if !hand.CanHit() {
			return nil, fmt.Errorf("hit: %w", ErrIllegalAction)
		}
		card, err := e.dealTo(hand, true)
		if err != nil {
			return nil, err
		}
		return []deck.Card{card}, nil

	case ActionStand:
		if !hand.CanStand() {
			return nil, fmt.Errorf("stand: %w", ErrIllegalAction)
		}
		hand.Stand()
		return nil, nil

	case ActionDouble:
		if err := e.Player.DoubleDown(handIndex); err != nil {
			return nil, err
		}
		card, err := e.dealTo(hand, true)
		if err != nil {
			return nil, err
		}
		// One card and done; bust detection already ran in AddCard.
		if !hand.IsBusted() {
			hand.Status = StatusStood
		}
		return []deck.Card{card}, nil

	case ActionSplit:
		h1, h2, err := e.Player.SplitHand(handIndex)
		if err != nil {
			return nil, err
		}
		c1, err := e.dealTo(h1, true)
		if err != nil {
			return nil, err
		}
		c2, err := e.dealTo(h2, true)
		if err != nil {
			return nil, err
		}
		return []deck.Card{c1, c2}, nil

	case ActionSurrender:
		if _, err := e.Player.SurrenderHand(handIndex); err != nil {
			return nil, err
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown action %d: %w", action, ErrIllegalAction)
	}
}

// PlayDealer reveals the hole card (exposing it unless an early check
// already did) and runs the dealer's fixed policy, exposing every card
// drawn.
func (e *Engine) PlayDealer() error {
	if !e.Dealer.HoleCardRevealed {
		if hole, ok := e.Dealer.RevealHoleCard(); ok {
			e.expose(hole)
		}
	}

	return e.Dealer.Play(func() (deck.Card, error) {
		card, err := e.Shoe.Deal()
		if err != nil {
			return deck.Card{}, err
		}
		e.expose(card)
		return card, nil
	})
}

// ResolveRound compares every player hand to the dealer's final hand and
// credits payouts. Surrendered hands were refunded at surrender time and
// contribute an informational -bet/2. Busted hands forfeit immediately
// and are never compared to the dealer total, even when the dealer also
// busts. A push credits exactly the hand's current bet (which already
// reflects doubling).
func (e *Engine) ResolveRound() *RoundSummary {
	e.roundInProgress = false
	dealerValue := e.Dealer.FinalValue()
	dealerBusted := e.Dealer.IsBusted()

	results := make([]HandResult, 0, len(e.Player.Hands))
	for _, hand := range e.Player.Hands {
		switch {
		case hand.Status == StatusSurrendered:
			results = append(results, HandResult{Hand: hand, Outcome: OutcomeSurrender, Payout: -hand.Bet / 2})

		case hand.IsBusted():
			results = append(results, HandResult{Hand: hand, Outcome: OutcomeLose, Payout: -hand.Bet})

		case dealerBusted || hand.Value() > dealerValue:
			e.Player.ReceivePayout(hand.Bet * 2)
			results = append(results, HandResult{Hand: hand, Outcome: OutcomeWin, Payout: hand.Bet})

		case hand.Value() < dealerValue:
			results = append(results, HandResult{Hand: hand, Outcome: OutcomeLose, Payout: -hand.Bet})

		default:
			e.Player.ReceivePayout(hand.Bet)
			results = append(results, HandResult{Hand: hand, Outcome: OutcomePush, Payout: 0})
		}
	}

	return e.summarize(results)
}

// NeedsShuffle reports whether the shoe must be shuffled before the next
// round. The engine checks it in StartRound; callers use it to reset
// their counts in step with the reshuffle.
func (e *Engine) NeedsShuffle() bool {
	return e.Shoe.NeedsShuffle()
}

// RoundInProgress reports whether a round has been dealt but not yet
// resolved.
func (e *Engine) RoundInProgress() bool {
	return e.roundInProgress
}

func (e *Engine) summarize(results []HandResult) *RoundSummary {
	e.roundInProgress = false
	total := 0.0
	for _, r := range results {
		total += r.Payout
	}
	return &RoundSummary{HandResults: results, DealerHand: e.Dealer.Hand, TotalPayout: total}
}
