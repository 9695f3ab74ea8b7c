package training

import (
	"fmt"
	"strings"

	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/strategy"
)

// ErrorType classifies a training mistake.
type ErrorType int

const (
	ErrorNone ErrorType = iota
	ErrorCounting
	ErrorStrategy
	ErrorIndex
)

func (e ErrorType) String() string {
	switch e {
	case ErrorNone:
		return "none"
	case ErrorCounting:
		return "counting"
	case ErrorStrategy:
		return "strategy"
	case ErrorIndex:
		return "index"
	default:
		return "unknown"
	}
}

// EvaluatedError is one classified mistake with an EV loss estimate in
// betting units and a 1-3 severity (0 for no error).
type EvaluatedError struct {
	Type          ErrorType
	Description   string
	CorrectAction string
	UserAction    string
	EVLoss        float64
	Severity      int
}

func (e EvaluatedError) String() string {
	return fmt.Sprintf("[%s] %s (EV: %+.2f)", strings.ToUpper(e.Type.String()), e.Description, -e.EVLoss)
}

// Approximate per-mistake EV losses in betting units, from single-deck
// analysis. The actual cost varies with the count.
const (
	evLossHitVsStand      = 0.05
	evLossStandVsHit      = 0.06
	evLossHitVsDouble     = 0.10
	evLossStandVsDouble   = 0.08
	evLossSplitVsHit      = 0.07
	evLossHitVsSplit      = 0.05
	evLossSurrenderVsHit  = 0.03
	evLossHitVsSurrender  = 0.04
	evLossStandStiff      = 0.15 // standing on a stiff against a strong dealer
	evLossHitHardStand    = 0.20 // hitting a made hand of 17+
	evLossIndexIgnored    = 0.02 // small but cumulative
	evLossDefaultStrategy = 0.05
)

// Evaluator classifies mistakes and estimates the EV cost.
type Evaluator struct{}

// NewEvaluator returns a stateless evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// EvaluateCounting classifies a counting drill answer. Severity grows
// with the drift: off by one is minor, two or three moderate, more a
// major counting loss.
func (ev *Evaluator) EvaluateCounting(result CountingResult) EvaluatedError {
	if result.Correct {
		return EvaluatedError{
			Type:          ErrorNone,
			Description:   "Correct count",
			CorrectAction: fmt.Sprintf("RC = %+d", result.CorrectCount),
			UserAction:    fmt.Sprintf("RC = %+d", result.UserCount),
		}
	}
	return countingError(result.UserCount, result.CorrectCount)
}

func countingError(user, correct int) EvaluatedError {
	diff := correct - user
	if diff < 0 {
		diff = -diff
	}

	var severity int
	var loss float64
	switch {
	case diff == 1:
		severity, loss = 1, 0.01
	case diff <= 3:
		severity, loss = 2, 0.03
	default:
		severity, loss = 3, 0.05
	}

	return EvaluatedError{
		Type:          ErrorCounting,
		Description:   fmt.Sprintf("Count off by %d", diff),
		CorrectAction: fmt.Sprintf("RC = %+d", correct),
		UserAction:    fmt.Sprintf("RC = %+d", user),
		EVLoss:        loss,
		Severity:      severity,
	}
}

// EvaluatePlay classifies all mistakes in a full-play result: a wrong
// decision, a missed count quiz, and an ignored index play can each
// contribute. A clean hand yields a single no-error entry.
func (ev *Evaluator) EvaluatePlay(result PlayResult) []EvaluatedError {
	var errors []EvaluatedError

	if !result.Correct {
		errors = append(errors, ev.strategyError(result))
	}
	if result.Quizzed && !result.CountCorrect {
		errors = append(errors, countingError(result.UserCount, result.CorrectCount))
	}
	if result.IndexApplicable && !result.IndexFollowed {
		errors = append(errors, EvaluatedError{
			Type:          ErrorIndex,
			Description:   "Index play not followed",
			CorrectAction: "Deviate from basic strategy",
			UserAction:    "Followed basic strategy",
			EVLoss:        evLossIndexIgnored,
			Severity:      1,
		})
	}

	if len(errors) == 0 {
		errors = append(errors, EvaluatedError{
			Type:          ErrorNone,
			Description:   "Perfect play",
			CorrectAction: result.CorrectAction.String(),
			UserAction:    result.UserAction.String(),
		})
	}
	return errors
}

func (ev *Evaluator) strategyError(result PlayResult) EvaluatedError {
	correct := result.CorrectAction
	user := result.UserAction
	value := result.HandValue

	var loss float64
	severity := 1
	switch {
	case correct == strategy.Hit && user == game.ActionStand && value >= 12 && value <= 16:
		loss, severity = evLossStandStiff, 3
	case correct == strategy.Stand && user == game.ActionHit && value >= 17:
		loss, severity = evLossHitHardStand, 3
	case correct == strategy.Double && user == game.ActionHit:
		loss, severity = evLossHitVsDouble, 2
	case correct == strategy.Double && user == game.ActionStand:
		loss, severity = evLossStandVsDouble, 2
	case correct == strategy.Split && user == game.ActionHit:
		loss, severity = evLossHitVsSplit, 2
	case correct == strategy.Hit && user == game.ActionStand:
		loss = evLossStandVsHit
	case correct == strategy.Stand && user == game.ActionHit:
		loss = evLossHitVsStand
	case correct == strategy.Hit && user == game.ActionSplit:
		loss = evLossSplitVsHit
	case correct == strategy.SurrenderHit && user == game.ActionHit:
		loss = evLossHitVsSurrender
	case correct == strategy.Hit && user == game.ActionSurrender:
		loss = evLossSurrenderVsHit
	default:
		loss = evLossDefaultStrategy
	}

	return EvaluatedError{
		Type:          ErrorStrategy,
		Description:   fmt.Sprintf("Should %s, did %s", correct, user),
		CorrectAction: correct.String(),
		UserAction:    user.String(),
		EVLoss:        loss,
		Severity:      severity,
	}
}
