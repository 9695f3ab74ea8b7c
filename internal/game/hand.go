package game

import (
	"fmt"
	"strings"

	"github.com/pitbosslabs/pitboss/internal/deck"
)

// HandStatus represents the state of a hand during play
type HandStatus int

const (
	StatusActive HandStatus = iota
	StatusStood
	StatusBusted
	StatusBlackjack
	StatusSurrendered
	StatusDoubled
)

// String returns the string representation of a hand status
func (s HandStatus) String() string {
	switch s {
	case StatusActive:
		return "active"
	case StatusStood:
		return "stood"
	case StatusBusted:
		return "busted"
	case StatusBlackjack:
		return "blackjack"
	case StatusSurrendered:
		return "surrendered"
	case StatusDoubled:
		return "doubled"
	default:
		return "unknown"
	}
}

// Hand is an ordered sequence of cards plus betting state. All value and
// eligibility queries are recomputed from the cards on every call; nothing
// is cached, so predicates are always consistent after a mutation.
type Hand struct {
	Cards  []deck.Card
	Status HandStatus
	Bet    float64

	// SplitHand marks hands created by a split. A split hand totalling 21
	// on two cards is not a natural blackjack.
	SplitHand bool
	// Doubled marks hands the player doubled down on.
	Doubled bool
}

// NewHand creates an empty active hand with the given bet.
func NewHand(bet float64) *Hand {
	return &Hand{Status: StatusActive, Bet: bet}
}

// AddCard appends a card to the hand. Busting is detected automatically;
// no other status change happens here.
func (h *Hand) AddCard(c deck.Card) {
	h.Cards = append(h.Cards, c)
	if h.Value() > 21 {
		h.Status = StatusBusted
	}
}

// Value returns the best hand value: card points summed with Aces at 11,
// then Aces demoted to 1 one at a time while the total exceeds 21. The
// result may still exceed 21 when every Ace has been demoted.
func (h *Hand) Value() int {
	total, aces := 0, 0
	for _, c := range h.Cards {
		total += c.PointValue()
		if c.IsAce() {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// SoftValue returns the hand value together with the soft flag: true when
// at least one Ace is still counted as 11 and the total does not exceed
// 21. Strategy decisions key off this distinction.
func (h *Hand) SoftValue() (int, bool) {
	total, aces := 0, 0
	for _, c := range h.Cards {
		total += c.PointValue()
		if c.IsAce() {
			aces++
		}
	}
	demoted := 0
	for total > 21 && aces > 0 {
		total -= 10
		aces--
		demoted++
	}
	originalAces := 0
	for _, c := range h.Cards {
		if c.IsAce() {
			originalAces++
		}
	}
	soft := originalAces > demoted && total <= 21
	return total, soft
}

// IsSoft returns true if an Ace is currently counted as 11.
func (h *Hand) IsSoft() bool {
	_, soft := h.SoftValue()
	return soft
}

// IsBusted returns true if the hand value exceeds 21.
func (h *Hand) IsBusted() bool {
	return h.Value() > 21
}

// IsBlackjack reports a natural blackjack: exactly two cards totalling 21
// on a hand that was not created by a split. Split Aces drawing a
// ten-value card make 21 but are paid as a regular win.
func (h *Hand) IsBlackjack() bool {
	return len(h.Cards) == 2 && h.Value() == 21 && !h.SplitHand
}

// IsPair reports a splittable pair: exactly two cards of identical rank.
// 10-J is not a pair; only equal ranks split.
func (h *Hand) IsPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// IsTenPair reports two ten-value cards of any rank (10, J, Q, K).
// Not splittable under IsPair unless ranks match, but the ten-pair index
// deviations key off this.
func (h *Hand) IsTenPair() bool {
	return len(h.Cards) == 2 && h.Cards[0].IsTenValue() && h.Cards[1].IsTenValue()
}

// CanHit returns true if the hand may take another card.
func (h *Hand) CanHit() bool {
	return h.Status == StatusActive && !h.IsBusted()
}

// CanStand returns true if the hand may stand.
func (h *Hand) CanStand() bool {
	return h.Status == StatusActive
}

// CanDouble returns true if doubling is allowed: first two cards only.
func (h *Hand) CanDouble() bool {
	return len(h.Cards) == 2 && h.Status == StatusActive
}

// CanSplit returns true if the hand itself is splittable. Player-level
// constraints (split budget, bankroll) are checked by the engine.
func (h *Hand) CanSplit() bool {
	return h.IsPair() && h.Status == StatusActive
}

// CanSurrender returns true if late surrender is allowed: first two cards,
// before any other action.
func (h *Hand) CanSurrender() bool {
	return len(h.Cards) == 2 && h.Status == StatusActive
}

// Stand marks the hand as stood.
func (h *Hand) Stand() {
	h.Status = StatusStood
}

// MarkDoubled flags the hand as doubled. The bet itself is adjusted by
// the player, which owns the money.
func (h *Hand) MarkDoubled() {
	h.Doubled = true
	h.Status = StatusDoubled
}

// MarkSurrendered marks the hand as surrendered.
func (h *Hand) MarkSurrendered() {
	h.Status = StatusSurrendered
}

// Split divides a pair into two new one-card hands, each inheriting the
// original bet and flagged as split hands.
func (h *Hand) Split() (*Hand, *Hand, error) {
	if !h.CanSplit() {
		return nil, nil, fmt.Errorf("split: not a pair or already acted: %w", ErrIllegalAction)
	}
	h1 := &Hand{Cards: []deck.Card{h.Cards[0]}, Status: StatusActive, Bet: h.Bet, SplitHand: true}
	h2 := &Hand{Cards: []deck.Card{h.Cards[1]}, Status: StatusActive, Bet: h.Bet, SplitHand: true}
	return h1, h2, nil
}

// String renders the hand like "[A♠ K♥] = 21" with a soft marker.
func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, c := range h.Cards {
		parts[i] = c.String()
	}
	value, soft := h.SoftValue()
	suffix := ""
	if soft {
		suffix = " (soft)"
	}
	return fmt.Sprintf("[%s] = %d%s", strings.Join(parts, " "), value, suffix)
}
