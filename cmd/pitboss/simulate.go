package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/pitbosslabs/pitboss/internal/config"
	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/simulator"
	"github.com/pitbosslabs/pitboss/internal/tui"
)

// SimulateCmd estimates house edge by playing basic strategy unattended.
type SimulateCmd struct {
	Config   string `default:"pitboss.hcl" help:"Configuration file"`
	Rounds   int    `default:"100000" help:"Rounds per session"`
	Sessions int    `default:"4" help:"Concurrent sessions"`
	Seed     int64  `default:"1" help:"Base RNG seed"`
	Rule     string `default:"" help:"Dealer rule override: h17 or s17"`
	Debug    bool   `help:"Enable debug logging"`
}

func (c *SimulateCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	rule := cfg.DealerRule()
	if c.Rule != "" {
		if rule, err = game.ParseDealerRule(c.Rule); err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting simulation",
		"rounds", c.Rounds, "sessions", c.Sessions, "seed", c.Seed, "rule", rule)

	start := time.Now()
	stats, err := simulator.New(simulator.Config{
		Rounds:          c.Rounds,
		Sessions:        c.Sessions,
		Seed:            c.Seed,
		DealerRule:      rule,
		Penetration:     cfg.Game.Penetration,
		BlackjackPayout: cfg.Game.BlackjackPayout,
		BaseBet:         1,
		Logger:          logger,
	}).Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation: %w", err)
	}

	fmt.Println(tui.HeaderStyle.Render("Simulation Results"))
	fmt.Println(stats.Summary())
	fmt.Printf("House edge: %+.3f units per 100 rounds (%.0f rounds in %s)\n",
		stats.Mean()*100, float64(stats.Rounds), time.Since(start).Round(time.Millisecond))
	return nil
}
