// Package strategy provides the single-deck basic strategy tables and
// the count-based deviations layered on top of them (the Illustrious 18
// and Fab 4 index plays).
package strategy

// Decision is a basic strategy prescription. The composite values carry
// their own fallback: Double means hit when doubling is unavailable,
// DoubleStand means stand, SurrenderHit means hit, SurrenderStand means
// stand.
type Decision int

const (
	Hit Decision = iota
	Stand
	Double
	DoubleStand
	Split
	SurrenderHit
	SurrenderStand
)

// Code returns the chart notation for a decision.
func (d Decision) Code() string {
	switch d {
	case Hit:
		return "H"
	case Stand:
		return "S"
	case Double:
		return "D"
	case DoubleStand:
		return "Ds"
	case Split:
		return "P"
	case SurrenderHit:
		return "Rh"
	case SurrenderStand:
		return "Rs"
	default:
		return "?"
	}
}

// String returns the human-readable form of a decision.
func (d Decision) String() string {
	switch d {
	case Hit:
		return "hit"
	case Stand:
		return "stand"
	case Double:
		return "double"
	case DoubleStand:
		return "double (else stand)"
	case Split:
		return "split"
	case SurrenderHit:
		return "surrender (else hit)"
	case SurrenderStand:
		return "surrender (else stand)"
	default:
		return "unknown"
	}
}

// parseCode is the inverse of Code, used when building charts from
// their row notation.
func parseCode(code string) Decision {
	switch code {
	case "H":
		return Hit
	case "S":
		return Stand
	case "D":
		return Double
	case "Ds":
		return DoubleStand
	case "P":
		return Split
	case "Rh":
		return SurrenderHit
	case "Rs":
		return SurrenderStand
	default:
		panic("strategy: bad chart code " + code)
	}
}
