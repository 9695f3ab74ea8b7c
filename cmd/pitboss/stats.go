package main

import (
	"fmt"

	"github.com/pitbosslabs/pitboss/internal/config"
	"github.com/pitbosslabs/pitboss/internal/stats"
	"github.com/pitbosslabs/pitboss/internal/tui"
)

// StatsCmd prints the persisted training history.
type StatsCmd struct {
	Config string `default:"pitboss.hcl" help:"Configuration file"`
	Last   int    `default:"10" help:"Number of recent sessions to aggregate"`
}

func (c *StatsCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	tracker, err := stats.NewTracker(cfg.StatsFile)
	if err != nil {
		return fmt.Errorf("open stats: %w", err)
	}

	fmt.Println(tui.HeaderStyle.Render("Training History"))
	fmt.Println(tracker.HistorySummary(c.Last))
	return nil
}
