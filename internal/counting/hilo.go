// Package counting implements the Hi-Lo card counting system: per-card
// tags, a running count accumulated over every exposed card, and the
// true count conversion against decks remaining.
package counting

import "github.com/pitbosslabs/pitboss/internal/deck"

// TagFor returns the Hi-Lo tag of a card: +1 for 2-6, 0 for 7-9, -1 for
// ten-values and aces. The tags sum to zero over a full deck.
func TagFor(c deck.Card) int {
	switch {
	case c.Rank >= deck.Two && c.Rank <= deck.Six:
		return 1
	case c.Rank >= deck.Seven && c.Rank <= deck.Nine:
		return 0
	default:
		return -1
	}
}
