package game

import "fmt"

// DefaultMaxSplits allows up to four hands per round.
const DefaultMaxSplits = 3

// Player owns the bankroll and the hands in play (one initially, up to
// four after splits).
//
// Money invariant: the bankroll is debited exactly once per bet event
// (new hand, split, double) and credited exactly once per resolution or
// refund event (payout, surrender refund). Every debit happens here;
// ReceivePayout is the sole money-in primitive.
type Player struct {
	Bankroll  float64
	Hands     []*Hand
	MaxSplits int

	splitCount int
}

// NewPlayer creates a player with the given bankroll and split budget.
func NewPlayer(bankroll float64, maxSplits int) *Player {
	return &Player{Bankroll: bankroll, MaxSplits: maxSplits}
}

// NewHand clears the previous round's hands and opens a single fresh hand
// with the given bet, debiting the bankroll.
func (p *Player) NewHand(bet float64) (*Hand, error) {
	if bet > p.Bankroll {
		return nil, fmt.Errorf("bet %.2f exceeds bankroll %.2f: %w", bet, p.Bankroll, ErrInsufficientFunds)
	}

	p.Hands = p.Hands[:0]
	p.splitCount = 0

	hand := NewHand(bet)
	p.Hands = append(p.Hands, hand)
	p.Bankroll -= bet
	return hand, nil
}

// SplitHand splits hand i into two one-card hands, debiting the bankroll
// for the duplicate bet. The second hand is inserted immediately after
// the first, preserving table order.
func (p *Player) SplitHand(i int) (*Hand, *Hand, error) {
	hand, err := p.hand(i)
	if err != nil {
		return nil, nil, err
	}
	if p.splitCount >= p.MaxSplits {
		return nil, nil, fmt.Errorf("already split %d times: %w", p.splitCount, ErrSplitLimit)
	}
	if !hand.CanSplit() {
		return nil, nil, fmt.Errorf("split: hand is not a splittable pair: %w", ErrIllegalAction)
	}
	if hand.Bet > p.Bankroll {
		return nil, nil, fmt.Errorf("split bet %.2f exceeds bankroll %.2f: %w", hand.Bet, p.Bankroll, ErrInsufficientFunds)
	}

	h1, h2, err := hand.Split()
	if err != nil {
		return nil, nil, err
	}

	p.Bankroll -= hand.Bet
	p.Hands[i] = h1
	p.Hands = append(p.Hands, nil)
	copy(p.Hands[i+2:], p.Hands[i+1:])
	p.Hands[i+1] = h2
	p.splitCount++

	return h1, h2, nil
}

// DoubleDown doubles the bet on hand i, debiting the bankroll by the
// original bet. The hand is marked doubled; the engine deals the single
// extra card.
func (p *Player) DoubleDown(i int) error {
	hand, err := p.hand(i)
	if err != nil {
		return err
	}
	if !hand.CanDouble() {
		return fmt.Errorf("double: not first two cards or already acted: %w", ErrIllegalAction)
	}
	if hand.Bet > p.Bankroll {
		return fmt.Errorf("double bet %.2f exceeds bankroll %.2f: %w", hand.Bet, p.Bankroll, ErrInsufficientFunds)
	}

	p.Bankroll -= hand.Bet
	hand.Bet *= 2
	hand.MarkDoubled()
	return nil
}

// SurrenderHand surrenders hand i, crediting half the bet back. Returns
// the refund amount.
func (p *Player) SurrenderHand(i int) (float64, error) {
	hand, err := p.hand(i)
	if err != nil {
		return 0, err
	}
	if !hand.CanSurrender() {
		return 0, fmt.Errorf("surrender: only allowed on first two cards: %w", ErrIllegalAction)
	}

	refund := hand.Bet / 2
	p.Bankroll += refund
	hand.MarkSurrendered()
	return refund, nil
}

// ReceivePayout credits the bankroll. Called by round resolution; the
// amount includes the returned stake where applicable.
func (p *Player) ReceivePayout(amount float64) {
	p.Bankroll += amount
}

// ActiveHandIndex returns the index of the first active hand, or -1 when
// every hand has finished playing.
func (p *Player) ActiveHandIndex() int {
	for i, h := range p.Hands {
		if h.Status == StatusActive {
			return i
		}
	}
	return -1
}

// AllHandsComplete reports whether every hand has left the active state.
func (p *Player) AllHandsComplete() bool {
	return p.ActiveHandIndex() == -1
}

// TotalBet returns the total amount staked across all hands this round.
func (p *Player) TotalBet() float64 {
	total := 0.0
	for _, h := range p.Hands {
		total += h.Bet
	}
	return total
}

// CanSplit reports whether the split budget allows another split.
func (p *Player) CanSplit() bool {
	return p.splitCount < p.MaxSplits
}

// SplitCount returns the number of splits taken this round.
func (p *Player) SplitCount() int {
	return p.splitCount
}

// Reset clears the hands for a new round; the bankroll is preserved.
func (p *Player) Reset() {
	p.Hands = p.Hands[:0]
	p.splitCount = 0
}

func (p *Player) hand(i int) (*Hand, error) {
	if i < 0 || i >= len(p.Hands) {
		return nil, fmt.Errorf("no hand at index %d: %w", i, ErrIllegalAction)
	}
	return p.Hands[i], nil
}
