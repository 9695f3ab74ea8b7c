package game

import (
	"fmt"
	"strings"

	"github.com/pitbosslabs/pitboss/internal/deck"
)

// DealerRule is the soft 17 rule the house plays under.
type DealerRule int

const (
	// H17: dealer hits soft 17. Common in single-deck games and worse
	// for the player.
	H17 DealerRule = iota
	// S17: dealer stands on all 17s.
	S17
)

// String returns the string representation of the rule
func (r DealerRule) String() string {
	if r == S17 {
		return "s17"
	}
	return "h17"
}

// ParseDealerRule parses "h17"/"s17" (case-insensitive).
func ParseDealerRule(s string) (DealerRule, error) {
	switch strings.ToLower(s) {
	case "h17":
		return H17, nil
	case "s17":
		return S17, nil
	default:
		return H17, fmt.Errorf("unknown dealer rule %q (want h17 or s17)", s)
	}
}

// Dealer wraps a hand with the fixed house policy. The dealer never
// touches the shoe; the engine supplies cards through a dealing
// capability so it keeps control of exposure notification.
//
// The hole card (second card dealt) must never reach the exposure
// callback until RevealHoleCard is called. That timing is the contract
// the counting collaborator depends on.
type Dealer struct {
	Hand             *Hand
	Rule             DealerRule
	HoleCardRevealed bool
}

// NewDealer creates a dealer playing under the given rule.
func NewDealer(rule DealerRule) *Dealer {
	return &Dealer{Hand: NewHand(0), Rule: rule}
}

// NewRound resets the dealer with a fresh hand for a new round.
func (d *Dealer) NewRound() *Hand {
	d.Hand = NewHand(0)
	d.HoleCardRevealed = false
	return d.Hand
}

// ReceiveCard adds a card to the dealer's hand.
func (d *Dealer) ReceiveCard(c deck.Card) {
	d.Hand.AddCard(c)
}

// Upcard returns the dealer's visible first card.
func (d *Dealer) Upcard() (deck.Card, bool) {
	if len(d.Hand.Cards) == 0 {
		return deck.Card{}, false
	}
	return d.Hand.Cards[0], true
}

// UpcardValue returns the point value of the upcard (Ace = 11), or 0 if
// no card has been dealt.
func (d *Dealer) UpcardValue() int {
	up, ok := d.Upcard()
	if !ok {
		return 0
	}
	return up.PointValue()
}

// HoleCard returns the dealer's second card. Callers outside the engine
// must not look at it before HoleCardRevealed is true.
func (d *Dealer) HoleCard() (deck.Card, bool) {
	if len(d.Hand.Cards) < 2 {
		return deck.Card{}, false
	}
	return d.Hand.Cards[1], true
}

// RevealHoleCard flips the hole card face up and returns it. The engine
// calls this at the early-blackjack check or the start of dealer play;
// this is the moment the counting collaborator registers the card.
func (d *Dealer) RevealHoleCard() (deck.Card, bool) {
	d.HoleCardRevealed = true
	return d.HoleCard()
}

// HasBlackjack reports a dealer natural. The engine peeks this without
// exposing the hole card, matching real dealer procedure.
func (d *Dealer) HasBlackjack() bool {
	return d.Hand.IsBlackjack()
}

// ShouldHit applies the fixed house policy: hit below 17; on soft 17 hit
// only under H17; stand otherwise. Pure function of hand state and rule.
func (d *Dealer) ShouldHit() bool {
	value, soft := d.Hand.SoftValue()
	if value < 17 {
		return true
	}
	if value == 17 && soft {
		return d.Rule == H17
	}
	return false
}

// Play executes the dealer's turn: reveal the hole card if needed, then
// draw through the supplied dealing capability while ShouldHit holds.
// Terminal status is stood or busted.
func (d *Dealer) Play(deal func() (deck.Card, error)) error {
	if !d.HoleCardRevealed {
		d.RevealHoleCard()
	}

	for d.ShouldHit() && !d.Hand.IsBusted() {
		card, err := deal()
		if err != nil {
			return fmt.Errorf("dealer draw: %w", err)
		}
		d.ReceiveCard(card)
	}

	if d.Hand.IsBusted() {
		d.Hand.Status = StatusBusted
	} else {
		d.Hand.Status = StatusStood
	}
	return nil
}

// FinalValue returns the dealer's final hand value.
func (d *Dealer) FinalValue() int {
	return d.Hand.Value()
}

// IsBusted returns true if the dealer busted.
func (d *Dealer) IsBusted() bool {
	return d.Hand.IsBusted()
}

// Showing renders what the table sees: "K♠ [?]" before the reveal, all
// cards after.
func (d *Dealer) Showing() string {
	if len(d.Hand.Cards) == 0 {
		return "(no cards)"
	}
	if len(d.Hand.Cards) == 1 || d.HoleCardRevealed {
		parts := make([]string, len(d.Hand.Cards))
		for i, c := range d.Hand.Cards {
			parts[i] = c.String()
		}
		return strings.Join(parts, " ")
	}
	return fmt.Sprintf("%s [?]", d.Hand.Cards[0])
}
