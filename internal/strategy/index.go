package strategy

// Index plays are the count-based deviations from basic strategy: the
// Illustrious 18 playing deviations plus the Fab 4 surrender
// deviations, the highest-value plays for single-deck Hi-Lo.

// HandKind distinguishes the three chart families for deviation lookup.
type HandKind int

const (
	HardHand HandKind = iota
	SoftHand
	PairHand
)

// IndexPlay is one deviation: at the threshold true count the play
// replaces the basic strategy decision.
type IndexPlay struct {
	Name      string
	Total     int      // player total (pair plays use the combined total)
	Upcard    int      // dealer upcard value, Ace as 11
	Kind      HandKind // which chart family the play belongs to
	Basic     Decision
	Deviation Decision
	Index     int  // true count threshold
	AtOrAbove bool // deviate when TC >= Index; otherwise when TC <= Index
	EVGain    float64
}

// Applies reports whether the true count meets the play's threshold.
func (p IndexPlay) Applies(trueCount int) bool {
	if p.AtOrAbove {
		return trueCount >= p.Index
	}
	return trueCount <= p.Index
}

// Illustrious18 holds the playing deviations ordered by expected value.
// Insurance is handled separately (see TakeInsurance); the remaining
// plays key on hand total and upcard.
var Illustrious18 = []IndexPlay{
	{Name: "16 vs 10 stand", Total: 16, Upcard: 10, Kind: HardHand, Basic: Hit, Deviation: Stand, Index: 0, AtOrAbove: true, EVGain: 0.95},
	{Name: "15 vs 10 stand", Total: 15, Upcard: 10, Kind: HardHand, Basic: Hit, Deviation: Stand, Index: 4, AtOrAbove: true, EVGain: 0.90},
	{Name: "10,10 vs 5 split", Total: 20, Upcard: 5, Kind: PairHand, Basic: Stand, Deviation: Split, Index: 5, AtOrAbove: true, EVGain: 0.85},
	{Name: "10,10 vs 6 split", Total: 20, Upcard: 6, Kind: PairHand, Basic: Stand, Deviation: Split, Index: 4, AtOrAbove: true, EVGain: 0.80},
	{Name: "10 vs 10 double", Total: 10, Upcard: 10, Kind: HardHand, Basic: Hit, Deviation: Double, Index: 4, AtOrAbove: true, EVGain: 0.75},
	{Name: "12 vs 3 stand", Total: 12, Upcard: 3, Kind: HardHand, Basic: Hit, Deviation: Stand, Index: 2, AtOrAbove: true, EVGain: 0.70},
	{Name: "12 vs 2 stand", Total: 12, Upcard: 2, Kind: HardHand, Basic: Hit, Deviation: Stand, Index: 3, AtOrAbove: true, EVGain: 0.65},
	{Name: "11 vs A double", Total: 11, Upcard: 11, Kind: HardHand, Basic: Hit, Deviation: Double, Index: 1, AtOrAbove: true, EVGain: 0.60},
	{Name: "9 vs 2 double", Total: 9, Upcard: 2, Kind: HardHand, Basic: Hit, Deviation: Double, Index: 1, AtOrAbove: true, EVGain: 0.55},
	{Name: "10 vs A double", Total: 10, Upcard: 11, Kind: HardHand, Basic: Hit, Deviation: Double, Index: 4, AtOrAbove: true, EVGain: 0.50},
	{Name: "9 vs 7 double", Total: 9, Upcard: 7, Kind: HardHand, Basic: Hit, Deviation: Double, Index: 3, AtOrAbove: true, EVGain: 0.45},
	{Name: "16 vs 9 stand", Total: 16, Upcard: 9, Kind: HardHand, Basic: Hit, Deviation: Stand, Index: 5, AtOrAbove: true, EVGain: 0.40},
	{Name: "13 vs 2 hit", Total: 13, Upcard: 2, Kind: HardHand, Basic: Stand, Deviation: Hit, Index: -1, AtOrAbove: false, EVGain: 0.35},
	{Name: "12 vs 4 hit", Total: 12, Upcard: 4, Kind: HardHand, Basic: Stand, Deviation: Hit, Index: 0, AtOrAbove: false, EVGain: 0.30},
	{Name: "12 vs 5 hit", Total: 12, Upcard: 5, Kind: HardHand, Basic: Stand, Deviation: Hit, Index: -2, AtOrAbove: false, EVGain: 0.25},
	{Name: "12 vs 6 hit", Total: 12, Upcard: 6, Kind: HardHand, Basic: Stand, Deviation: Hit, Index: -1, AtOrAbove: false, EVGain: 0.20},
	{Name: "13 vs 3 hit", Total: 13, Upcard: 3, Kind: HardHand, Basic: Stand, Deviation: Hit, Index: -2, AtOrAbove: false, EVGain: 0.15},
}

// Fab4 holds the surrender deviations.
var Fab4 = []IndexPlay{
	{Name: "14 vs 10 surrender", Total: 14, Upcard: 10, Kind: HardHand, Basic: Hit, Deviation: SurrenderHit, Index: 3, AtOrAbove: true, EVGain: 0.30},
	{Name: "15 vs 9 surrender", Total: 15, Upcard: 9, Kind: HardHand, Basic: Hit, Deviation: SurrenderHit, Index: 2, AtOrAbove: true, EVGain: 0.25},
	{Name: "15 vs A surrender", Total: 15, Upcard: 11, Kind: HardHand, Basic: Hit, Deviation: SurrenderHit, Index: 1, AtOrAbove: true, EVGain: 0.20},
	{Name: "14 vs A surrender", Total: 14, Upcard: 11, Kind: HardHand, Basic: Hit, Deviation: SurrenderHit, Index: 3, AtOrAbove: true, EVGain: 0.15},
}

// AllIndexPlays is the full deviation set in EV order.
var AllIndexPlays = append(append([]IndexPlay{}, Illustrious18...), Fab4...)

// InsuranceIndex is the true count at which insurance becomes a
// positive-expectation bet.
const InsuranceIndex = 3

// TakeInsurance reports whether the count justifies insurance against a
// dealer ace.
func TakeInsurance(trueCount int) bool {
	return trueCount >= InsuranceIndex
}

// FindPlay returns the index play matching a situation, or false when
// basic strategy has no deviation for it. Soft hands have no deviations
// in this set; pair plays match only the ten-pair splits.
func FindPlay(total, upcardValue int, kind HandKind) (IndexPlay, bool) {
	if kind == SoftHand {
		return IndexPlay{}, false
	}
	for _, p := range AllIndexPlays {
		if p.Total == total && p.Upcard == upcardValue && p.Kind == kind {
			return p, true
		}
	}
	return IndexPlay{}, false
}

// Deviation returns the deviating decision when the true count warrants
// it, or false when basic strategy stands.
func Deviation(total, upcardValue, trueCount int, kind HandKind) (Decision, bool) {
	play, ok := FindPlay(total, upcardValue, kind)
	if !ok || !play.Applies(trueCount) {
		return 0, false
	}
	return play.Deviation, true
}
