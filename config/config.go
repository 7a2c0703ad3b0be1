package config

import (
	"os"
	"strconv"
	"strings"

	"sticks/game"
	"sticks/meta"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Config collects every knob of the binary.
type Config struct {
	// Sticks is the initial pile. Zero means ask on the console.
	Sticks int `yaml:"sticks"`

	// Rounds is the number of self-play rounds for a trained AI.
	Rounds int `yaml:"rounds"`

	// Seed fixes the random generators; zero seeds from the clock.
	Seed uint64 `yaml:"seed"`

	// Rules names the win condition: standard or misere.
	Rules string `yaml:"rules"`

	// Export is where the trained policy is written; empty disables export.
	Export string `yaml:"export"`

	LogLevel string `yaml:"log_level"`

	// Addr is the listen address of the move service.
	Addr string `yaml:"addr"`

	// EvalGames is the number of evaluation games per experiment session.
	EvalGames int `yaml:"eval_games"`

	// ExperimentRounds lists the training lengths compared by experiments.
	ExperimentRounds []int `yaml:"experiment_rounds"`
}

func Default() Config {
	return Config{
		Rounds:           meta.TRAINING_ROUNDS,
		Rules:            game.StandardRulesName,
		Export:           meta.EXPORT_FILE,
		LogLevel:         zerolog.LevelInfoValue,
		Addr:             meta.SERVER_ADDR,
		EvalGames:        meta.EVAL_GAMES,
		ExperimentRounds: []int{0, 10, 100, 1000, 10000},
	}
}

// Load reads a YAML file over the defaults. An empty path or a missing file
// yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config %s", path)
	}
	return cfg, nil
}

// ApplyEnv loads a .env file if present, then overrides fields from
// STICKS_* environment variables.
func (c *Config) ApplyEnv() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to load .env")
	}

	ints := map[string]*int{
		"STICKS_PILE":       &c.Sticks,
		"STICKS_ROUNDS":     &c.Rounds,
		"STICKS_EVAL_GAMES": &c.EvalGames,
	}
	for key, field := range ints {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(err, "invalid %s", key)
			}
			*field = n
		}
	}

	if v := strings.TrimSpace(os.Getenv("STICKS_SEED")); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "invalid STICKS_SEED")
		}
		c.Seed = seed
	}

	strs := map[string]*string{
		"STICKS_RULES":     &c.Rules,
		"STICKS_EXPORT":    &c.Export,
		"STICKS_LOG_LEVEL": &c.LogLevel,
		"STICKS_ADDR":      &c.Addr,
	}
	for key, field := range strs {
		if v, ok := os.LookupEnv(key); ok {
			*field = strings.TrimSpace(v)
		}
	}
	return nil
}

// Validate ensures the configuration is safe to use.
func (c Config) Validate() error {
	if c.Sticks < 0 {
		return errors.New("sticks cannot be negative")
	}
	if c.Rounds < 0 {
		return errors.New("rounds cannot be negative")
	}
	if c.EvalGames < 0 {
		return errors.New("eval games cannot be negative")
	}
	for i, r := range c.ExperimentRounds {
		if r < 0 {
			return errors.Errorf("experiment rounds[%d] cannot be negative", i)
		}
	}
	if _, err := game.RulesByName(c.Rules); err != nil {
		return err
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrapf(err, "invalid log level %q", c.LogLevel)
	}
	return nil
}

// GameRules resolves the configured rule set.
func (c Config) GameRules() game.Rules {
	rules, err := game.RulesByName(c.Rules)
	if err != nil {
		return game.NewStandardRules()
	}
	return rules
}
