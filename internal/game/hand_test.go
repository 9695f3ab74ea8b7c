package game

import (
	"errors"
	"testing"

	"github.com/pitbosslabs/pitboss/internal/deck"
)

func card(r deck.Rank, s deck.Suit) deck.Card {
	return deck.NewCard(r, s)
}

func handOf(cards ...deck.Card) *Hand {
	h := NewHand(10)
	for _, c := range cards {
		h.AddCard(c)
	}
	return h
}

func TestHandValue(t *testing.T) {
	tests := []struct {
		name  string
		cards []deck.Card
		value int
		soft  bool
	}{
		{"hard total", []deck.Card{card(deck.Ten, deck.Spades), card(deck.Seven, deck.Hearts)}, 17, false},
		{"soft seventeen", []deck.Card{card(deck.Ace, deck.Spades), card(deck.Six, deck.Diamonds)}, 17, true},
		{"ace demoted", []deck.Card{card(deck.Ace, deck.Spades), card(deck.Six, deck.Diamonds), card(deck.Nine, deck.Clubs)}, 16, false},
		{"two aces", []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts)}, 12, true},
		{"two aces plus nine", []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts), card(deck.Nine, deck.Clubs)}, 21, true},
		{"all aces demoted", []deck.Card{card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts), card(deck.Nine, deck.Clubs), card(deck.Ten, deck.Diamonds)}, 21, false},
		{"bust", []deck.Card{card(deck.Ten, deck.Spades), card(deck.Nine, deck.Hearts), card(deck.Five, deck.Clubs)}, 24, false},
		{"natural", []deck.Card{card(deck.Ace, deck.Spades), card(deck.King, deck.Hearts)}, 21, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handOf(tt.cards...)
			if got := h.Value(); got != tt.value {
				t.Errorf("expected value %d, got %d", tt.value, got)
			}
			value, soft := h.SoftValue()
			if value != tt.value {
				t.Errorf("SoftValue: expected %d, got %d", tt.value, value)
			}
			if soft != tt.soft {
				t.Errorf("expected soft=%v, got %v", tt.soft, soft)
			}
		})
	}
}

func TestHandValueBounds(t *testing.T) {
	// Value() is never below the all-aces-low sum nor above the
	// all-aces-high sum.
	h := handOf(card(deck.Ace, deck.Spades), card(deck.Ace, deck.Hearts), card(deck.Seven, deck.Clubs))
	low := 1 + 1 + 7
	high := 11 + 11 + 7
	if v := h.Value(); v < low || v > high {
		t.Errorf("value %d outside [%d, %d]", v, low, high)
	}
	if v := h.Value(); v != 19 {
		t.Errorf("A A 7 should be 19, got %d", v)
	}
}

func TestBlackjackVsSplitTwentyOne(t *testing.T) {
	natural := handOf(card(deck.Ace, deck.Spades), card(deck.King, deck.Hearts))
	if !natural.IsBlackjack() {
		t.Error("A♠ K♥ should be a natural blackjack")
	}

	split := handOf(card(deck.Ace, deck.Spades), card(deck.King, deck.Hearts))
	split.SplitHand = true
	if split.IsBlackjack() {
		t.Error("A♠ K♥ on a split hand is 21, not blackjack")
	}
	if split.Value() != 21 {
		t.Errorf("split 21 should still value 21, got %d", split.Value())
	}
}

func TestIsPair(t *testing.T) {
	if !handOf(card(deck.Eight, deck.Clubs), card(deck.Eight, deck.Diamonds)).IsPair() {
		t.Error("8♣ 8♦ should be a pair")
	}
	// Ten and Jack are both ten-value but different ranks: not splittable.
	tj := handOf(card(deck.Ten, deck.Spades), card(deck.Jack, deck.Hearts))
	if tj.IsPair() {
		t.Error("10-J is not a pair")
	}
	if !tj.IsTenPair() {
		t.Error("10-J is a ten pair")
	}
	three := handOf(card(deck.Eight, deck.Clubs), card(deck.Eight, deck.Diamonds), card(deck.Eight, deck.Spades))
	if three.IsPair() {
		t.Error("three cards are never a pair")
	}
}

func TestEligibilityByStatus(t *testing.T) {
	h := handOf(card(deck.Ten, deck.Spades), card(deck.Six, deck.Hearts))
	if !h.CanHit() || !h.CanStand() || !h.CanDouble() || !h.CanSurrender() {
		t.Error("fresh two-card hand should allow hit/stand/double/surrender")
	}

	h.AddCard(card(deck.Two, deck.Clubs))
	if h.CanDouble() || h.CanSurrender() {
		t.Error("double/surrender are first-two-cards only")
	}
	if !h.CanHit() {
		t.Error("18 should still be hittable")
	}

	h.Stand()
	if h.CanHit() || h.CanStand() || h.CanDouble() || h.CanSplit() || h.CanSurrender() {
		t.Error("stood hand allows no further actions")
	}
}

func TestBustDetectionOnAddCard(t *testing.T) {
	h := handOf(card(deck.Ten, deck.Spades), card(deck.Nine, deck.Hearts))
	if h.Status != StatusActive {
		t.Fatalf("expected active, got %s", h.Status)
	}
	h.AddCard(card(deck.Five, deck.Clubs))
	if h.Status != StatusBusted {
		t.Errorf("expected busted, got %s", h.Status)
	}
	if h.CanHit() {
		t.Error("busted hand cannot hit")
	}
}

func TestSplit(t *testing.T) {
	h := handOf(card(deck.Eight, deck.Clubs), card(deck.Eight, deck.Diamonds))
	h.Bet = 25

	h1, h2, err := h.Split()
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if len(h1.Cards) != 1 || len(h2.Cards) != 1 {
		t.Fatal("split hands should hold one card each")
	}
	if h1.Cards[0] != card(deck.Eight, deck.Clubs) || h2.Cards[0] != card(deck.Eight, deck.Diamonds) {
		t.Error("split hands should keep the original cards in order")
	}
	if h1.Bet != 25 || h2.Bet != 25 {
		t.Error("split hands inherit the original bet")
	}
	if !h1.SplitHand || !h2.SplitHand {
		t.Error("split hands must be flagged as split")
	}
}

func TestSplitNonPairFails(t *testing.T) {
	h := handOf(card(deck.Eight, deck.Clubs), card(deck.Nine, deck.Diamonds))
	if _, _, err := h.Split(); !errors.Is(err, ErrIllegalAction) {
		t.Errorf("expected ErrIllegalAction, got %v", err)
	}
}

func TestHandString(t *testing.T) {
	h := handOf(card(deck.Ace, deck.Spades), card(deck.Six, deck.Diamonds))
	if got := h.String(); got != "[A♠ 6♦] = 17 (soft)" {
		t.Errorf("unexpected hand string %q", got)
	}
}
