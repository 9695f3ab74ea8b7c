package deck

// Size is the number of cards in a single deck.
const Size = 52

// New returns the canonical 52-card deck in deterministic order
// (suits outermost, ranks ascending). Shuffling is the shoe's job.
func New() []Card {
	cards := make([]Card, 0, Size)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return cards
}
