package game

import (
	"errors"
	"testing"

	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/randutil"
)

func TestShoeInvariant(t *testing.T) {
	shoe := NewShoe(DefaultPenetration, randutil.New(1))

	check := func() {
		if got := shoe.CardsRemaining() + shoe.CardsDealt(); got != deck.Size {
			t.Fatalf("remaining+dealt = %d, want %d", got, deck.Size)
		}
	}

	check()
	for i := 0; i < 20; i++ {
		if _, err := shoe.Deal(); err != nil {
			t.Fatalf("deal %d failed: %v", i, err)
		}
		check()
	}
	shoe.Burn(3)
	check()

	shoe.Shuffle()
	if shoe.CardsDealt() != 0 {
		t.Errorf("dealt count should reset to 0 after shuffle, got %d", shoe.CardsDealt())
	}
	if shoe.CardsRemaining() != deck.Size {
		t.Errorf("expected full deck after shuffle, got %d", shoe.CardsRemaining())
	}
}

func TestShoeDealsUniqueCards(t *testing.T) {
	shoe := NewShoe(DefaultPenetration, randutil.New(7))
	seen := make(map[deck.Card]bool, deck.Size)
	for i := 0; i < deck.Size; i++ {
		c, err := shoe.Deal()
		if err != nil {
			t.Fatalf("deal %d failed: %v", i, err)
		}
		if seen[c] {
			t.Fatalf("card %s dealt twice", c)
		}
		seen[c] = true
	}
}

func TestShoeExhaustion(t *testing.T) {
	shoe := NewShoe(DefaultPenetration, randutil.New(2))
	for i := 0; i < deck.Size; i++ {
		if _, err := shoe.Deal(); err != nil {
			t.Fatalf("unexpected error at card %d: %v", i, err)
		}
	}
	if _, err := shoe.Deal(); !errors.Is(err, ErrShoeEmpty) {
		t.Errorf("expected ErrShoeEmpty, got %v", err)
	}
}

func TestShoePenetration(t *testing.T) {
	shoe := NewShoe(0.65, randutil.New(3))
	if shoe.NeedsShuffle() {
		t.Error("fresh shoe should not need a shuffle")
	}

	// 0.65 * 52 = 33.8, so the 34th card crosses penetration.
	for i := 0; i < 33; i++ {
		shoe.Deal()
	}
	if shoe.NeedsShuffle() {
		t.Error("33 dealt cards is below 65% penetration")
	}
	shoe.Deal()
	if !shoe.NeedsShuffle() {
		t.Error("34 dealt cards should cross 65% penetration")
	}
}

func TestShoeBurnReturnsCards(t *testing.T) {
	shoe := NewShoe(DefaultPenetration, randutil.New(4))
	burned := shoe.Burn(2)
	if len(burned) != 2 {
		t.Fatalf("expected 2 burned cards, got %d", len(burned))
	}
	if shoe.CardsDealt() != 2 {
		t.Errorf("burn must advance the dealt count, got %d", shoe.CardsDealt())
	}
}

func TestShoeDecksRemaining(t *testing.T) {
	shoe := NewShoe(DefaultPenetration, randutil.New(5))
	for i := 0; i < 26; i++ {
		shoe.Deal()
	}
	if got := shoe.DecksRemaining(); got != 0.5 {
		t.Errorf("expected 0.5 decks remaining, got %v", got)
	}
}

func TestShoeFromCardsDealsInOrder(t *testing.T) {
	stacked := []deck.Card{
		deck.NewCard(deck.Ace, deck.Spades),
		deck.NewCard(deck.King, deck.Diamonds),
		deck.NewCard(deck.Five, deck.Hearts),
	}
	shoe := NewShoeFromCards(DefaultPenetration, randutil.New(6), stacked)
	for i, want := range stacked {
		got, err := shoe.Deal()
		if err != nil {
			t.Fatalf("deal %d failed: %v", i, err)
		}
		if got != want {
			t.Errorf("card %d: expected %s, got %s", i, want, got)
		}
	}
}
