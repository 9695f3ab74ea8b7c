package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/pitbosslabs/pitboss/internal/deck"
)

// DefaultPenetration is the fraction of the deck dealt before a reshuffle
// is required. 65% is typical for hand-held single-deck games.
const DefaultPenetration = 0.65

// Shoe holds a single 52-card population with penetration tracking.
// Invariant: CardsRemaining() + CardsDealt() == deck.Size at every
// observation point until Shuffle resets both. NeedsShuffle is checked
// only between rounds, never mid-round, so one round always plays out of
// a consistent shoe.
type Shoe struct {
	penetration float64
	rng         *rand.Rand
	cards       []deck.Card
	dealt       int
}

// NewShoe creates a shuffled single-deck shoe. The RNG is injected so
// sessions can be replayed from a seed.
func NewShoe(penetration float64, rng *rand.Rand) *Shoe {
	s := &Shoe{penetration: penetration, rng: rng}
	s.Shuffle()
	return s
}

// NewShoeFromCards creates a shoe dealing the given cards in order.
// Deterministic shoes are for tests and replays; Shuffle still works and
// restores a full random deck.
func NewShoeFromCards(penetration float64, rng *rand.Rand, cards []deck.Card) *Shoe {
	s := &Shoe{penetration: penetration, rng: rng}
	s.cards = make([]deck.Card, len(cards))
	copy(s.cards, cards)
	return s
}

// Shuffle discards the current population, recreates the canonical
// 52-card set, applies a uniform permutation and resets the dealt count.
func (s *Shoe) Shuffle() {
	s.cards = deck.New()
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
	s.dealt = 0
}

// Deal removes and returns the top card. Callers must check NeedsShuffle
// before starting a round; an empty shoe mid-round is a caller bug.
func (s *Shoe) Deal() (deck.Card, error) {
	if len(s.cards) == 0 {
		return deck.Card{}, fmt.Errorf("deal: %w", ErrShoeEmpty)
	}
	card := s.cards[0]
	s.cards = s.cards[1:]
	s.dealt++
	return card, nil
}

// Burn deals and discards n cards, returning them so an observer can
// still register them as seen. Burn cards are visible and must be
// counted. Stops early if the shoe runs out.
func (s *Shoe) Burn(n int) []deck.Card {
	burned := make([]deck.Card, 0, n)
	for i := 0; i < n; i++ {
		card, err := s.Deal()
		if err != nil {
			break
		}
		burned = append(burned, card)
	}
	return burned
}

// CardsRemaining returns the number of cards left in the shoe.
func (s *Shoe) CardsRemaining() int {
	return len(s.cards)
}

// CardsDealt returns the number of cards dealt since the last shuffle.
func (s *Shoe) CardsDealt() int {
	return s.dealt
}

// DecksRemaining returns the fraction of decks remaining, used for true
// count conversion (26 cards left = 0.5 decks).
func (s *Shoe) DecksRemaining() float64 {
	return float64(len(s.cards)) / float64(deck.Size)
}

// PenetrationReached returns the fraction of the deck dealt so far.
func (s *Shoe) PenetrationReached() float64 {
	return float64(s.dealt) / float64(deck.Size)
}

// NeedsShuffle returns true once penetration has been reached.
func (s *Shoe) NeedsShuffle() bool {
	return s.PenetrationReached() >= s.penetration
}
