package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/strategy"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

type Season struct {
	Label     string `yaml:"label"`
	StartDate Date   `yaml:"start_date"`

	// MaxMatchesPerDay caps same-day matches when positive.
	MaxMatchesPerDay int `yaml:"max_matches_per_day"`

	// BackToBackDays is the fairness threshold; nil means 1.
	BackToBackDays *int `yaml:"back_to_back_days"`

	// Strategy names the fixture strategy, see strategy.Get.
	Strategy string `yaml:"strategy"`
}

// BackToBack returns the configured back-to-back threshold in days.
func (s Season) BackToBack() int {
	if s.BackToBackDays == nil {
		return 1
	}
	return *s.BackToBackDays
}

type Competitor struct {
	Name      string `yaml:"name"`
	City      string `yaml:"city"`
	Captain   string `yaml:"captain"`
	HomeVenue string `yaml:"home_venue"`
}

type Roster struct {
	// Database is a SQLite path. When set the roster is read from it and
	// Competitors only seed it through `roster import`.
	Database    string       `yaml:"database"`
	Competitors []Competitor `yaml:"competitors"`
}

type Logging struct {
	Level string `yaml:"level"`
}

type Config struct {
	Season  Season  `yaml:"season"`
	Roster  Roster  `yaml:"roster"`
	Logging Logging `yaml:"logging"`
}

// Competitors converts the configured roster entries, in order.
func (c *Config) Competitors() []roster.Competitor {
	out := make([]roster.Competitor, 0, len(c.Roster.Competitors))
	for _, rc := range c.Roster.Competitors {
		out = append(out, roster.Competitor{
			Name:      strings.TrimSpace(rc.Name),
			City:      rc.City,
			Captain:   rc.Captain,
			HomeVenue: rc.HomeVenue,
		})
	}
	return out
}

// LoadFromBytes parses YAML bytes into a Config and validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// ApplyEnv overrides settings from FIXTURES_* environment variables.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FIXTURES_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("FIXTURES_ROSTER_DB"); v != "" {
		c.Roster.Database = v
	}
}

func (c *Config) setDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Season.Strategy == "" {
		c.Season.Strategy = strategy.RoundRobinName
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Season.Label) == "" {
		return fmt.Errorf("season label is required")
	}
	if c.Season.StartDate.Time.IsZero() {
		return fmt.Errorf("season start_date is required")
	}
	if c.Season.MaxMatchesPerDay < 0 {
		return fmt.Errorf("max_matches_per_day must not be negative (got %d)", c.Season.MaxMatchesPerDay)
	}
	if c.Season.BackToBack() < 0 {
		return fmt.Errorf("back_to_back_days must not be negative (got %d)", c.Season.BackToBack())
	}
	if _, err := strategy.Get(c.Season.Strategy); err != nil {
		return err
	}

	// Check for missing and duplicate competitor names
	seen := make(map[string]bool)
	for i, rc := range c.Roster.Competitors {
		name := strings.TrimSpace(rc.Name)
		if name == "" {
			return fmt.Errorf("competitor %d has no name", i+1)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("competitor %q appears more than once", name)
		}
		seen[key] = true
	}

	return nil
}
