package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coder/quartz"

	"github.com/pitbosslabs/pitboss/internal/config"
	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/randutil"
	"github.com/pitbosslabs/pitboss/internal/stats"
	"github.com/pitbosslabs/pitboss/internal/training"
	"github.com/pitbosslabs/pitboss/internal/tui"
)

// DrillCmd runs the counting drill TUI.
type DrillCmd struct {
	Config string `default:"pitboss.hcl" help:"Configuration file"`
	Cards  int    `default:"0" help:"Cards per round (0 uses config)"`
	Seed   int64  `default:"0" help:"RNG seed (0 for random)"`
	Debug  bool   `help:"Enable debug logging"`
}

func (c *DrillCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cardsPerRound := cfg.Training.CardsPerDrill
	if c.Cards > 0 {
		cardsPerRound = c.Cards
	}

	rng := randutil.New(c.Seed)
	if c.Seed == 0 {
		rng = randutil.NewFromTime()
	}
	shoe := game.NewShoe(cfg.Game.Penetration, rng)
	drill := training.NewCountingDrill(shoe, cardsPerRound, quartz.NewReal())

	tracker, err := stats.NewTracker(cfg.StatsFile)
	if err != nil {
		return fmt.Errorf("open stats: %w", err)
	}

	model, err := tui.NewDrillModel(drill, tracker, cardRenderer(cfg), cfg.Training.ShowTrueCount, logger)
	if err != nil {
		return err
	}

	start := time.Now()
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("drill: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	logger.Debug("drill session finished", "duration", time.Since(start))
	printSessionResults(drill.Results)
	return nil
}

func printSessionResults[T fmt.Stringer](results []T) {
	if len(results) == 0 {
		return
	}
	fmt.Println("Session results:")
	for _, r := range results {
		fmt.Printf("  %s\n", r)
	}
}

func cardRenderer(cfg *config.Config) tui.CardRenderer {
	return tui.CardRenderer{
		Unicode: cfg.Display.UnicodeCards,
		Color:   cfg.Display.ColorOutput,
	}
}
