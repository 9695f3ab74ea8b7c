package strategy

import (
	"strings"

	"github.com/pitbosslabs/pitboss/internal/deck"
	"github.com/pitbosslabs/pitboss/internal/game"
)

// The charts below are single-deck basic strategy with double after
// split, late surrender, and a peeking dealer. Each row lists the play
// against upcards 2 through 10 and then Ace.

// chart maps (player total, upcard value) to a decision. Upcard values
// run 2-10 with Ace as 11.
type chart map[[2]int]Decision

// addRow parses a space-separated row of chart codes for one player
// total.
func (c chart) addRow(total int, row string) {
	codes := strings.Fields(row)
	if len(codes) != 10 {
		panic("strategy: chart row needs 10 columns")
	}
	for i, code := range codes {
		c[[2]int{total, i + 2}] = parseCode(code)
	}
}

func buildChart(rows map[int]string) chart {
	c := make(chart, len(rows)*10)
	for total, row := range rows {
		c.addRow(total, row)
	}
	return c
}

// Hard totals 5-21. Totals below 5 always hit.
var hardChart = buildChart(map[int]string{
	//   2  3  4  5  6  7  8  9  10 A
	5:  "H  H  H  H  H  H  H  H  H  H",
	6:  "H  H  H  H  H  H  H  H  H  H",
	7:  "H  H  H  H  H  H  H  H  H  H",
	8:  "H  H  H  H  H  H  H  H  H  H",
	9:  "D  D  D  D  D  H  H  H  H  H",
	10: "D  D  D  D  D  D  D  D  H  H",
	11: "D  D  D  D  D  D  D  D  D  D",
	12: "H  H  S  S  S  H  H  H  H  H",
	13: "S  S  S  S  S  H  H  H  H  H",
	14: "S  S  S  S  S  H  H  H  H  H",
	15: "S  S  S  S  S  H  H  H  Rh Rh",
	16: "S  S  S  S  S  H  H  Rh Rh Rh",
	17: "S  S  S  S  S  S  S  S  S  S",
	18: "S  S  S  S  S  S  S  S  S  S",
	19: "S  S  S  S  S  S  S  S  S  S",
	20: "S  S  S  S  S  S  S  S  S  S",
	21: "S  S  S  S  S  S  S  S  S  S",
})

// Soft totals 13 (A,2) through 21.
var softChart = buildChart(map[int]string{
	//   2  3  4  5  6  7  8  9  10 A
	13: "H  H  D  D  D  H  H  H  H  H",
	14: "H  H  D  D  D  H  H  H  H  H",
	15: "H  H  D  D  D  H  H  H  H  H",
	16: "H  H  D  D  D  H  H  H  H  H",
	17: "D  D  D  D  D  H  H  H  H  H",
	18: "S  Ds Ds Ds Ds S  S  H  H  S",
	19: "S  S  S  S  Ds S  S  S  S  S",
	20: "S  S  S  S  S  S  S  S  S  S",
	21: "S  S  S  S  S  S  S  S  S  S",
})

// Pairs keyed by the paired card's value (Ace as 11). Fives never
// split; their row is the hard 10 row. Tens never split.
var pairChart = buildChart(map[int]string{
	//   2  3  4  5  6  7  8  9  10 A
	2:  "P  P  P  P  P  P  H  H  H  H",
	3:  "P  P  P  P  P  P  P  H  H  H",
	4:  "H  H  P  P  P  H  H  H  H  H",
	5:  "D  D  D  D  D  D  D  D  H  H",
	6:  "P  P  P  P  P  P  H  H  H  H",
	7:  "P  P  P  P  P  P  P  H  Rh H",
	8:  "P  P  P  P  P  P  P  P  P  P",
	9:  "P  P  P  P  P  S  P  P  S  S",
	10: "S  S  S  S  S  S  S  S  S  S",
	11: "P  P  P  P  P  P  P  P  P  P",
})

// UpcardValue converts a dealer upcard to its chart column value: 2-10,
// with Ace as 11.
func UpcardValue(upcard deck.Card) int {
	if upcard.IsAce() {
		return 11
	}
	return upcard.PointValue()
}

// BasicStrategy looks up the correct basic strategy play for a hand
// against a dealer upcard.
type BasicStrategy struct {
	Rule game.DealerRule
}

// NewBasicStrategy returns a lookup for the given dealer rule.
func NewBasicStrategy(rule game.DealerRule) *BasicStrategy {
	return &BasicStrategy{Rule: rule}
}

// Decide returns the correct play. Pairs consult the pair chart first
// when splitting is allowed; a non-split answer falls through to the
// soft/hard charts. Composite decisions are downgraded to their
// fallback when the action is unavailable (Double to Hit, DoubleStand
// to Stand, SurrenderHit to Hit, SurrenderStand to Stand).
func (bs *BasicStrategy) Decide(hand *game.Hand, upcard deck.Card, canDouble, canSplit, canSurrender bool) Decision {
	up := UpcardValue(upcard)

	if hand.IsPair() && canSplit {
		pv := hand.Cards[0].PointValue()
		if hand.Cards[0].IsAce() {
			pv = 11
		}
		if d, ok := pairChart[[2]int{pv, up}]; ok && d == Split {
			return Split
		}
	}

	value, soft := hand.SoftValue()

	var d Decision
	switch {
	case soft:
		d, _ = lookup(softChart, value, up, Stand)
	case value < 5:
		d = Hit
	case value > 21:
		d = Stand
	default:
		d, _ = lookup(hardChart, value, up, Hit)
	}

	return adjust(d, canDouble, canSurrender)
}

func lookup(c chart, total, up int, fallback Decision) (Decision, bool) {
	if d, ok := c[[2]int{total, up}]; ok {
		return d, true
	}
	return fallback, false
}

func adjust(d Decision, canDouble, canSurrender bool) Decision {
	switch {
	case d == Double && !canDouble:
		return Hit
	case d == DoubleStand && !canDouble:
		return Stand
	case d == SurrenderHit && !canSurrender:
		return Hit
	case d == SurrenderStand && !canSurrender:
		return Stand
	}
	return d
}
