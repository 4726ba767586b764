package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/derekprior/fixtures/internal/config"
	"github.com/derekprior/fixtures/internal/database"
	"github.com/derekprior/fixtures/internal/excel"
	"github.com/derekprior/fixtures/internal/logging"
	"github.com/derekprior/fixtures/internal/persist"
	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
)

const defaultConfigFile = "config.yaml"

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

func main() {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Round-robin fixture calendar generator",
	}

	var configFile string
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	rootCmd.AddCommand(initCmd, newRosterCmd(&configFile), newScheduleCmd(&configFile))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# Fixture Calendar Configuration
# ==============================
# This file defines the parameters for generating a single round-robin
# fixture calendar: every competitor plays every other competitor once.

season:
  # Label identifies the season in reports and exports.
  label: "2026"

  # The first fixture is played on start_date; each following fixture is
  # played two days after the previous one.
  start_date: "2026-03-22"

  # When greater than zero, no date may hold more than this many matches.
  # Overflow matches are pushed to the following days.
  max_matches_per_day: 0

  # The fairness report flags competitors with two matches this many days
  # apart or closer.
  back_to_back_days: 1

  # Strategy determines how fixtures are paired. "round_robin" uses the
  # circle method: the first competitor stays put while the rest rotate.
  strategy: round_robin

# The roster, in order. The first competitor is anchored during fixture
# generation. Venues are derived from home_venue; competitors sharing a
# home_venue share a venue.
roster:
  # Optional SQLite database. When set, the roster is read from it and the
  # list below only seeds it through 'fixtures roster import'.
  database: ""

  competitors:
    - name: Mumbai Indians
      city: Mumbai
      captain: Hardik Pandya
      home_venue: Wankhede Stadium
    - name: Chennai Super Kings
      city: Chennai
      captain: MS Dhoni
      home_venue: M.A. Chidambaram Stadium
    - name: Royal Challengers Bangalore
      city: Bangalore
      captain: Faf du Plessis
      home_venue: M. Chinnaswamy Stadium
    - name: Kolkata Knight Riders
      city: Kolkata
      captain: Shreyas Iyer
      home_venue: Eden Gardens
    - name: Delhi Capitals
      city: Delhi
      captain: Rishabh Pant
      home_venue: Arun Jaitley Stadium
    - name: Punjab Kings
      city: Mohali
      captain: Shikhar Dhawan
      home_venue: IS Bindra Stadium
    - name: Rajasthan Royals
      city: Jaipur
      captain: Sanju Samson
      home_venue: Sawai Mansingh Stadium
    - name: Sunrisers Hyderabad
      city: Hyderabad
      captain: Pat Cummins
      home_venue: Rajiv Gandhi Stadium
    - name: Gujarat Titans
      city: Ahmedabad
      captain: Shubman Gill
      home_venue: Narendra Modi Stadium
    - name: Lucknow Super Giants
      city: Lucknow
      captain: KL Rahul
      home_venue: BRSABV Ekana Stadium

# Log level: debug, info, warn or error. FIXTURES_LOG_LEVEL overrides it.
logging:
  level: info
`

// env is what every command needs once the config is loaded.
type env struct {
	cfg    *config.Config
	logger zerolog.Logger
	db     *sql.DB
}

func loadEnv(configFlag string) (*env, error) {
	configPath, err := resolveConfigPath(configFlag)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg.ApplyEnv()

	logger, err := logging.New(cfg.Logging.Level, os.Stderr)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("config", configPath).Msg("configuration loaded")

	e := &env{cfg: cfg, logger: logger}
	if cfg.Roster.Database != "" {
		db, err := database.Open(cfg.Roster.Database, logger)
		if err != nil {
			return nil, fmt.Errorf("opening roster database: %w", err)
		}
		e.db = db
	}
	return e, nil
}

func (e *env) Close() {
	if e.db != nil {
		e.db.Close()
	}
}

// store returns the roster database, which roster edits require.
func (e *env) store() (roster.Store, error) {
	if e.db == nil {
		return nil, fmt.Errorf("no roster database configured; set roster.database in the config or FIXTURES_ROSTER_DB")
	}
	return roster.NewSQLStore(e.db, e.logger), nil
}

func (e *env) roster(ctx context.Context) (*roster.Roster, error) {
	if e.db != nil {
		return roster.NewSQLStore(e.db, e.logger).Load(ctx)
	}
	return roster.New(e.cfg.Competitors()...)
}

func isWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xlsx")
}

func loadSchedule(path string, r *roster.Roster) (*schedule.Schedule, error) {
	if isWorkbook(path) {
		return excel.Load(path, r)
	}
	return persist.LoadCSV(path, r)
}

func saveSchedule(s *schedule.Schedule, r *roster.Roster, path string) (string, error) {
	if isWorkbook(path) {
		return path, excel.Save(s, r, path)
	}
	return persist.SaveCSV(s, path)
}
