// Package config loads application configuration from an HCL file,
// falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pitbosslabs/pitboss/internal/game"
)

// Config is the complete application configuration.
type Config struct {
	Game      *GameConfig     `hcl:"game,block"`
	Training  *TrainingConfig `hcl:"training,block"`
	Display   *DisplayConfig  `hcl:"display,block"`
	StatsFile string          `hcl:"stats_file,optional"`
}

// GameConfig holds the table rules.
type GameConfig struct {
	DealerRule      string  `hcl:"dealer_rule,optional"`
	Penetration     float64 `hcl:"penetration,optional"`
	BlackjackPayout float64 `hcl:"blackjack_payout,optional"`
	AllowDAS        bool    `hcl:"allow_das,optional"`
	AllowSurrender  bool    `hcl:"allow_surrender,optional"`
	MaxSplits       int     `hcl:"max_splits,optional"`
	ResplitAces     bool    `hcl:"resplit_aces,optional"`
}

// TrainingConfig holds the drill and full-play settings.
type TrainingConfig struct {
	CardsPerDrill      int     `hcl:"cards_per_drill,optional"`
	CountQuizFrequency float64 `hcl:"count_quiz_frequency,optional"`
	ShowTrueCount      bool    `hcl:"show_true_count,optional"`
	ShowCorrectAction  bool    `hcl:"show_correct_action,optional"`
	StartingBankroll   float64 `hcl:"starting_bankroll,optional"`
	BaseBet            float64 `hcl:"base_bet,optional"`
}

// DisplayConfig holds terminal presentation settings.
type DisplayConfig struct {
	UnicodeCards bool `hcl:"unicode_cards,optional"`
	ColorOutput  bool `hcl:"color_output,optional"`
	CompactMode  bool `hcl:"compact_mode,optional"`
}

// Default returns the standard single-deck H17 configuration.
func Default() *Config {
	return &Config{
		Game: &GameConfig{
			DealerRule:      "h17",
			Penetration:     game.DefaultPenetration,
			BlackjackPayout: game.DefaultBlackjackPayout,
			AllowDAS:        true,
			AllowSurrender:  true,
			MaxSplits:       game.DefaultMaxSplits,
			ResplitAces:     true,
		},
		Training: &TrainingConfig{
			CardsPerDrill:      3,
			CountQuizFrequency: 0.3,
			ShowTrueCount:      false,
			ShowCorrectAction:  true,
			StartingBankroll:   1000,
			BaseBet:            10,
		},
		Display: &DisplayConfig{
			UnicodeCards: true,
			ColorOutput:  true,
			CompactMode:  false,
		},
		StatsFile: "pitboss_stats.json",
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults; blocks omitted from the file keep their default values.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	defaults := Default()
	if cfg.Game == nil {
		cfg.Game = defaults.Game
	} else {
		applyGameDefaults(cfg.Game, defaults.Game)
	}
	if cfg.Training == nil {
		cfg.Training = defaults.Training
	} else {
		applyTrainingDefaults(cfg.Training, defaults.Training)
	}
	if cfg.Display == nil {
		cfg.Display = defaults.Display
	}
	if cfg.StatsFile == "" {
		cfg.StatsFile = defaults.StatsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyGameDefaults(g, d *GameConfig) {
	if g.DealerRule == "" {
		g.DealerRule = d.DealerRule
	}
	if g.Penetration == 0 {
		g.Penetration = d.Penetration
	}
	if g.BlackjackPayout == 0 {
		g.BlackjackPayout = d.BlackjackPayout
	}
	if g.MaxSplits == 0 {
		g.MaxSplits = d.MaxSplits
	}
}

func applyTrainingDefaults(tr, d *TrainingConfig) {
	if tr.CardsPerDrill == 0 {
		tr.CardsPerDrill = d.CardsPerDrill
	}
	if tr.CountQuizFrequency == 0 {
		tr.CountQuizFrequency = d.CountQuizFrequency
	}
	if tr.StartingBankroll == 0 {
		tr.StartingBankroll = d.StartingBankroll
	}
	if tr.BaseBet == 0 {
		tr.BaseBet = d.BaseBet
	}
}

// Validate checks the configuration, failing fast on the first bad
// value.
func (c *Config) Validate() error {
	if _, err := game.ParseDealerRule(c.Game.DealerRule); err != nil {
		return err
	}
	if c.Game.Penetration <= 0 || c.Game.Penetration > 1 {
		return fmt.Errorf("penetration must be in (0, 1], got %v", c.Game.Penetration)
	}
	if c.Game.BlackjackPayout < 1 {
		return fmt.Errorf("blackjack payout must be at least even money, got %v", c.Game.BlackjackPayout)
	}
	if c.Game.MaxSplits < 1 || c.Game.MaxSplits > 3 {
		return fmt.Errorf("max splits must be between 1 and 3, got %d", c.Game.MaxSplits)
	}
	if c.Training.CardsPerDrill < 1 {
		return fmt.Errorf("cards per drill must be positive, got %d", c.Training.CardsPerDrill)
	}
	if c.Training.CountQuizFrequency < 0 || c.Training.CountQuizFrequency > 1 {
		return fmt.Errorf("count quiz frequency must be in [0, 1], got %v", c.Training.CountQuizFrequency)
	}
	if c.Training.StartingBankroll <= 0 {
		return fmt.Errorf("starting bankroll must be positive, got %v", c.Training.StartingBankroll)
	}
	if c.Training.BaseBet <= 0 || c.Training.BaseBet > c.Training.StartingBankroll {
		return fmt.Errorf("base bet must be positive and within the bankroll, got %v", c.Training.BaseBet)
	}
	return nil
}

// DealerRule returns the parsed dealer rule. Call Validate first.
func (c *Config) DealerRule() game.DealerRule {
	rule, _ := game.ParseDealerRule(c.Game.DealerRule)
	return rule
}
