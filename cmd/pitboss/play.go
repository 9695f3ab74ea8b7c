package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pitbosslabs/pitboss/internal/config"
	"github.com/pitbosslabs/pitboss/internal/game"
	"github.com/pitbosslabs/pitboss/internal/randutil"
	"github.com/pitbosslabs/pitboss/internal/stats"
	"github.com/pitbosslabs/pitboss/internal/training"
	"github.com/pitbosslabs/pitboss/internal/tui"
)

// PlayCmd runs the full-play training TUI.
type PlayCmd struct {
	Config   string  `default:"pitboss.hcl" help:"Configuration file"`
	Bet      float64 `default:"0" help:"Bet per hand (0 uses config)"`
	Bankroll float64 `default:"0" help:"Starting bankroll (0 uses config)"`
	Seed     int64   `default:"0" help:"RNG seed (0 for random)"`
	Debug    bool    `help:"Enable debug logging"`
}

func (c *PlayCmd) Run() error {
	logger := setupLogger(c.Debug)

	cfg, err := config.Load(c.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	bet := cfg.Training.BaseBet
	if c.Bet > 0 {
		bet = c.Bet
	}
	bankroll := cfg.Training.StartingBankroll
	if c.Bankroll > 0 {
		bankroll = c.Bankroll
	}
	if bet > bankroll {
		return fmt.Errorf("bet %.2f exceeds bankroll %.2f", bet, bankroll)
	}

	rng := randutil.New(c.Seed)
	if c.Seed == 0 {
		rng = randutil.NewFromTime()
	}
	shoe := game.NewShoe(cfg.Game.Penetration, rng)
	player := game.NewPlayer(bankroll, cfg.Game.MaxSplits)
	dealer := game.NewDealer(cfg.DealerRule())
	drill := training.NewFullPlayDrill(shoe, player, dealer,
		cfg.Game.BlackjackPayout, cfg.Training.CountQuizFrequency, rng)

	tracker, err := stats.NewTracker(cfg.StatsFile)
	if err != nil {
		return fmt.Errorf("open stats: %w", err)
	}

	model, err := tui.NewPlayModel(drill, tracker, cardRenderer(cfg), bet,
		cfg.Training.ShowTrueCount, cfg.Training.ShowCorrectAction, logger)
	if err != nil {
		return err
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	printSessionResults(drill.Results)
	fmt.Printf("Final bankroll: $%.2f\n", player.Bankroll)
	return nil
}
