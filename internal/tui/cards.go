package tui

import (
	"strings"

	"github.com/pitbosslabs/pitboss/internal/deck"
)

var asciiSuits = map[deck.Suit]string{
	deck.Spades:   "S",
	deck.Hearts:   "H",
	deck.Diamonds: "D",
	deck.Clubs:    "C",
}

// CardRenderer renders cards per the display configuration.
type CardRenderer struct {
	Unicode bool
	Color   bool
}

// Render formats one card, e.g. "A♠" or "AS".
func (r CardRenderer) Render(c deck.Card) string {
	text := c.String()
	if !r.Unicode {
		text = c.Rank.String() + asciiSuits[c.Suit]
	}
	if !r.Color {
		return text
	}
	if c.IsRed() {
		return RedCardStyle.Render(text)
	}
	return BlackCardStyle.Render(text)
}

// RenderAll formats a hand of cards, e.g. "[A♠ 10♥]".
func (r CardRenderer) RenderAll(cards []deck.Card) string {
	parts := make([]string, len(cards))
	for i, c := range cards {
		parts[i] = r.Render(c)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
