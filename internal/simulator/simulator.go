// Package simulator plays unattended blackjack rounds on basic
// strategy to estimate the expected value of a rule set.
package simulator

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/randutil"
	"github.com/pitbosslabs/pitboss/internal/strategy"
)

// Config holds simulation parameters.
type Config struct {
	Rounds          int // rounds per session
	Sessions        int // concurrent independent sessions
	Seed            int64
	DealerRule      game.DealerRule
	Penetration     float64
	BlackjackPayout float64
	BaseBet         float64
	Logger          *log.Logger
}

// Simulator fans sessions out across goroutines, each with its own
// shoe, player and dealer so no state is shared between sessions.
type Simulator struct {
	config Config
}

// New creates a simulator with the given configuration.
func New(config Config) *Simulator {
	if config.Sessions < 1 {
		config.Sessions = 1
	}
	return &Simulator{config: config}
}

// Run executes every session and merges the results. Session RNGs are
// derived from the base seed, so a given seed always reproduces the
// same aggregate.
func (s *Simulator) Run(ctx context.Context) (*Statistics, error) {
	sessionStats := make([]*Statistics, s.config.Sessions)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < s.config.Sessions; i++ {
		g.Go(func() error {
			stats, err := s.runSession(ctx, s.config.Seed+int64(i))
			if err != nil {
				return fmt.Errorf("session %d: %w", i, err)
			}
			sessionStats[i] = stats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := &Statistics{}
	for _, stats := range sessionStats {
		merged.Merge(stats)
	}
	if err := merged.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return merged, nil
}

// runSession plays one independent session of rounds.
func (s *Simulator) runSession(ctx context.Context, seed int64) (*Statistics, error) {
	rng := randutil.New(seed)
	shoe := game.NewShoe(s.config.Penetration, rng)
	// Deep bankroll so splits and doubles are never bankroll-limited.
	player := game.NewPlayer(s.config.BaseBet*1e6, game.DefaultMaxSplits)
	dealer := game.NewDealer(s.config.DealerRule)
	engine := game.NewEngine(shoe, player, dealer, s.config.BlackjackPayout, nil)
	basic := strategy.NewBasicStrategy(s.config.DealerRule)

	stats := &Statistics{}
	for round := 0; round < s.config.Rounds; round++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		summary, err := playRound(engine, basic, s.config.BaseBet)
		if err != nil {
			return nil, fmt.Errorf("round %d (seed %d): %w", round, seed, err)
		}
		stats.Add(summarizeRound(summary, s.config.BaseBet, seed))
	}

	if s.config.Logger != nil {
		s.config.Logger.Debug("session complete",
			"seed", seed, "rounds", stats.Rounds, "mean", stats.Mean())
	}
	return stats, nil
}

// playRound plays one full round on basic strategy.
func playRound(engine *game.Engine, basic *strategy.BasicStrategy, bet float64) (*game.RoundSummary, error) {
	_, upcard, err := engine.StartRound(bet)
	if err != nil {
		return nil, err
	}

	if summary := engine.CheckEarlyBlackjack(); summary != nil {
		return summary, nil
	}

	for {
		idx := engine.Player.ActiveHandIndex()
		if idx < 0 {
			break
		}
		hand := engine.Player.Hands[idx]

		canDouble := hand.CanDouble() && engine.Player.Bankroll >= hand.Bet
		canSplit := hand.CanSplit() && engine.Player.CanSplit() && engine.Player.Bankroll >= hand.Bet
		canSurrender := hand.CanSurrender()

		var action game.Action
		switch basic.Decide(hand, upcard, canDouble, canSplit, canSurrender) {
		case strategy.Hit:
			action = game.ActionHit
		case strategy.Stand:
			action = game.ActionStand
		case strategy.Double, strategy.DoubleStand:
			action = game.ActionDouble
		case strategy.Split:
			action = game.ActionSplit
		case strategy.SurrenderHit, strategy.SurrenderStand:
			action = game.ActionSurrender
		}

		if _, err := engine.ExecuteAction(action, idx); err != nil {
			return nil, err
		}
	}

	if err := engine.PlayDealer(); err != nil {
		return nil, err
	}
	return engine.ResolveRound(), nil
}

func summarizeRound(summary *game.RoundSummary, bet float64, seed int64) RoundResult {
	result := RoundResult{
		NetUnits: summary.TotalPayout / bet,
		Seed:     seed,
		Hands:    len(summary.HandResults),
	}
	for _, hr := range summary.HandResults {
		switch hr.Outcome {
		case game.OutcomeBlackjack:
			result.Blackjacks++
		case game.OutcomeSurrender:
			result.Surrenders++
		}
	}
	return result
}

// RunSimulation is a convenience wrapper with the standard table rules.
func RunSimulation(ctx context.Context, rounds, sessions int, seed int64, rule game.DealerRule, logger *log.Logger) (*Statistics, error) {
	sim := New(Config{
		Rounds:          rounds,
		Sessions:        sessions,
		Seed:            seed,
		DealerRule:      rule,
		Penetration:     game.DefaultPenetration,
		BlackjackPayout: game.DefaultBlackjackPayout,
		BaseBet:         1,
		Logger:          logger,
	})
	return sim.Run(ctx)
}
