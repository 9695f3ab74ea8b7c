package game

import "errors"

// Sentinel errors for the failure conditions the engine can report.
// Callers branch with errors.Is; everything except ErrShoeEmpty is
// recoverable by choosing a different action or stake.
var (
	// ErrIllegalAction is returned when a requested action is not in the
	// hand's currently legal set. The attempt is rejected before any
	// mutation takes place.
	ErrIllegalAction = errors.New("illegal action")

	// ErrInsufficientFunds is returned when a bet, double or split would
	// require more than the available bankroll.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrSplitLimit is returned when a split is requested after the
	// maximum number of splits has been reached.
	ErrSplitLimit = errors.New("split limit reached")

	// ErrShoeEmpty is returned when a deal is requested from an empty
	// shoe. This means the caller failed to check NeedsShuffle between
	// rounds and should be treated as fatal to the round.
	ErrShoeEmpty = errors.New("shoe is empty")
)
