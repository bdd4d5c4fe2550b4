package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/match-sim/sim"
	"github.com/inference-sim/match-sim/sim/tournament"
	"github.com/inference-sim/match-sim/sim/trace"
)

// Defaults for a run with no flags, environment or config file.
const (
	defaultSport    = "soccer"
	defaultFormat   = tournament.FormatKnockout
	defaultTeamSize = 4
	defaultSeed     = 42
	defaultStore    = "json"
)

// defaultTeamNames fills an eight-team bracket.
var defaultTeamNames = []string{"Robins", "Pelicans", "Sparrows", "Magpies", "Crows", "Falcons", "Geese", "Terns"}

// TournamentConfig is the YAML form of a run. Omitted fields leave the flag
// values in place. Every field must be listed here to satisfy KnownFields(true)
// strict parsing.
type TournamentConfig struct {
	Sport            string      `yaml:"sport"`
	Format           string      `yaml:"format"`
	Teams            []string    `yaml:"teams"`
	TeamSize         int         `yaml:"team_size"`
	Seed             *int64      `yaml:"seed"`
	Start            string      `yaml:"start"`
	DaysBetweenGames int         `yaml:"days_between_games"`
	Points           *sim.Points `yaml:"points"`
	Parallelism      int         `yaml:"parallelism"`
	MaxReplays       *int        `yaml:"max_replays"`
	Trace            string      `yaml:"trace"`
	Players          []string    `yaml:"players"` // name pool; replaces the built-in list
	Faker            bool        `yaml:"faker"`
}

// LoadTournamentConfig reads and strictly parses a tournament YAML file.
func LoadTournamentConfig(path string) (*TournamentConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tournament config: %w", err)
	}
	return parseTournamentConfig(data)
}

func parseTournamentConfig(data []byte) (*TournamentConfig, error) {
	var cfg TournamentConfig
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("parsing tournament config: %w", err)
	}
	return &cfg, nil
}

// Validate checks every field that was set. Sports are resolved against reg.
func (c *TournamentConfig) Validate(reg *sim.Registry) error {
	if c.Format != "" && !tournament.ValidFormats[strings.ToLower(c.Format)] {
		return fmt.Errorf("unknown format %q; valid formats: [league, knockout]", c.Format)
	}
	if c.Sport != "" {
		if _, err := reg.GetProvider(c.Sport); err != nil {
			return err
		}
	}
	if c.TeamSize < 0 {
		return fmt.Errorf("team_size must be non-negative, got %d", c.TeamSize)
	}
	if c.DaysBetweenGames < 0 {
		return fmt.Errorf("days_between_games must be non-negative, got %d", c.DaysBetweenGames)
	}
	if c.Parallelism < 0 {
		return fmt.Errorf("parallelism must be non-negative, got %d", c.Parallelism)
	}
	if c.MaxReplays != nil && *c.MaxReplays < 0 {
		return fmt.Errorf("max_replays must be non-negative, got %d", *c.MaxReplays)
	}
	if c.Points != nil && (c.Points.Win < 0 || c.Points.Draw < 0) {
		return fmt.Errorf("points must be non-negative, got win=%d draw=%d", c.Points.Win, c.Points.Draw)
	}
	if !trace.IsValidTraceLevel(c.Trace) {
		return fmt.Errorf("unknown trace level %q", c.Trace)
	}
	seen := make(map[string]bool, len(c.Teams))
	for _, name := range c.Teams {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("team names must not be blank")
		}
		if seen[name] {
			return fmt.Errorf("team %q listed twice", name)
		}
		seen[name] = true
	}
	return nil
}
