package counting

import "github.com/pitbosslabs/pitboss/internal/deck"

// Counter accumulates a Hi-Lo running count over exposed cards. It is
// shoe-agnostic: callers feed it every card they see (typically by
// wiring CountCard as the engine's exposure callback) and reset it when
// the shoe is shuffled.
type Counter struct {
	runningCount int
	cardsSeen    int
}

// NewCounter returns a counter at a zero count with no cards seen.
func NewCounter() *Counter {
	return &Counter{}
}

// CountCard folds one exposed card into the running count and returns
// the new running count.
func (c *Counter) CountCard(card deck.Card) int {
	c.runningCount += TagFor(card)
	c.cardsSeen++
	return c.runningCount
}

// RunningCount returns the current running count.
func (c *Counter) RunningCount() int {
	return c.runningCount
}

// CardsSeen returns how many cards have been counted since the last
// reset.
func (c *Counter) CardsSeen() int {
	return c.cardsSeen
}

// DecksSeen returns the counted cards expressed in decks.
func (c *Counter) DecksSeen() float64 {
	return float64(c.cardsSeen) / deck.Size
}

// TrueCount divides the running count by the decks remaining. A
// non-positive decksRemaining yields 0 rather than a division blowup;
// it only occurs when a shoe is dealt to the felt.
func (c *Counter) TrueCount(decksRemaining float64) float64 {
	if decksRemaining <= 0 {
		return 0
	}
	return float64(c.runningCount) / decksRemaining
}

// TrueCountInt truncates the true count toward zero, the form index
// play thresholds are quoted in.
func (c *Counter) TrueCountInt(decksRemaining float64) int {
	return int(c.TrueCount(decksRemaining))
}

// Reset clears the count; call it whenever the shoe is shuffled.
func (c *Counter) Reset() {
	c.runningCount = 0
	c.cardsSeen = 0
}
