package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/derekprior/fixtures/internal/analyzer"
	"github.com/derekprior/fixtures/internal/excel"
	"github.com/derekprior/fixtures/internal/persist"
	"github.com/derekprior/fixtures/internal/roster"
	"github.com/derekprior/fixtures/internal/schedule"
	"github.com/derekprior/fixtures/internal/strategy"
)

type generateOptions struct {
	output    string
	season    string
	start     string
	maxPerDay int
	xlsx      string
	text      string
}

func newScheduleCmd(configFile *string) *cobra.Command {
	scheduleCmd := &cobra.Command{
		Use:   "schedule",
		Short: "Generate, inspect and validate fixture calendars",
	}

	var opts generateOptions
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate a round-robin calendar from the roster",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("max-per-day") {
				opts.maxPerDay = -1
			}
			return runGenerate(cmd.Context(), *configFile, opts)
		},
	}
	generateCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output file (.csv or .xlsx, default: <season>.csv)")
	generateCmd.Flags().StringVar(&opts.season, "season", "", "Season label (default: season.label from config)")
	generateCmd.Flags().StringVar(&opts.start, "start", "", "Start date YYYY-MM-DD (default: season.start_date from config)")
	generateCmd.Flags().IntVar(&opts.maxPerDay, "max-per-day", 0, "Maximum matches per day; 0 disables the cap")
	generateCmd.Flags().StringVar(&opts.xlsx, "xlsx", "", "Also export an Excel workbook to this path")
	generateCmd.Flags().StringVar(&opts.text, "text", "", "Also export a plain-text listing to this path")

	var filter showFilter
	showCmd := &cobra.Command{
		Use:          "show <schedule>",
		Short:        "Print a saved calendar, optionally filtered",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd.Context(), *configFile, args[0], filter)
		},
	}
	showCmd.Flags().StringVar(&filter.competitor, "competitor", "", "Only matches involving this competitor")
	showCmd.Flags().StringVar(&filter.venue, "venue", "", "Only matches at this venue")
	showCmd.Flags().StringVar(&filter.date, "date", "", "Only matches on this date (YYYY-MM-DD)")

	fairnessCmd := &cobra.Command{
		Use:          "fairness <schedule>",
		Short:        "Report home/away balance and back-to-back matches",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFairness(cmd.Context(), *configFile, args[0])
		},
	}

	validateCmd := &cobra.Command{
		Use:          "validate <schedule>",
		Short:        "Check match counts and date collisions",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.Context(), *configFile, args[0])
		},
	}

	filesCmd := &cobra.Command{
		Use:          "files [dir]",
		Short:        "List saved calendar files",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return runFiles(dir)
		},
	}

	scheduleCmd.AddCommand(generateCmd, showCmd, fairnessCmd, validateCmd, filesCmd)
	return scheduleCmd
}

func runGenerate(ctx context.Context, configFile string, opts generateOptions) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.roster(ctx)
	if err != nil {
		return err
	}

	season := opts.season
	if season == "" {
		season = e.cfg.Season.Label
	}
	start := e.cfg.Season.StartDate.Time
	if opts.start != "" {
		if start, err = schedule.ParseDate(opts.start); err != nil {
			return err
		}
	}
	maxPerDay := opts.maxPerDay
	if maxPerDay < 0 {
		maxPerDay = e.cfg.Season.MaxMatchesPerDay
	}

	fmt.Printf("Scheduling %d competitors across %d venues from %s...\n",
		r.Len(), len(r.Venues()), start.Format(schedule.DateFormat))

	strat, err := strategy.Get(e.cfg.Season.Strategy)
	if err != nil {
		return err
	}
	gen := schedule.Generator{Strategy: strat}

	var s *schedule.Schedule
	if maxPerDay > 0 {
		s, err = gen.GenerateConstrained(r, season, start, maxPerDay)
	} else {
		s, err = gen.Generate(r, season, start)
	}
	if err != nil {
		return err
	}
	e.logger.Debug().Str("season", season).Str("strategy", e.cfg.Season.Strategy).Int("matches", len(s.Matches)).Int("max_per_day", maxPerDay).Msg("schedule generated")

	fmt.Printf("✓ %d matches scheduled\n", len(s.Matches))
	fmt.Println(s.Stats())
	printFairness(analyzer.Fairness(s, r, e.cfg.Season.BackToBack()))

	output := opts.output
	if output == "" {
		output = season
	}
	path, err := saveSchedule(s, r, output)
	if err != nil {
		return err
	}
	fmt.Printf("\n✓ Schedule saved to %s\n", path)

	// Extra exports only read the schedule.
	g := new(errgroup.Group)
	if opts.xlsx != "" {
		xlsxPath := opts.xlsx
		g.Go(func() error {
			if err := excel.Save(s, r, xlsxPath); err != nil {
				return fmt.Errorf("exporting workbook: %w", err)
			}
			fmt.Printf("✓ Workbook saved to %s\n", xlsxPath)
			return nil
		})
	}
	if opts.text != "" {
		textPath := opts.text
		g.Go(func() error {
			if err := persist.ExportText(s, textPath); err != nil {
				return err
			}
			fmt.Printf("✓ Text listing saved to %s\n", textPath)
			return nil
		})
	}
	return g.Wait()
}

// showFilter narrows the matches printed by show. Empty fields match all.
type showFilter struct {
	competitor string
	venue      string
	date       string
}

func runShow(ctx context.Context, configFile, path string, filter showFilter) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.roster(ctx)
	if err != nil {
		return err
	}
	s, err := loadSchedule(path, r)
	if err != nil {
		return err
	}

	matches, err := filterMatches(s, r, filter)
	if err != nil {
		return err
	}

	fmt.Println(s.Stats())
	if len(matches) == 0 {
		fmt.Println("\nNo matches found")
		return nil
	}
	fmt.Println()
	for _, m := range matches {
		fmt.Println(m)
	}
	return nil
}

// filterMatches applies every set filter and returns the result in date order.
func filterMatches(s *schedule.Schedule, r *roster.Roster, filter showFilter) ([]schedule.Match, error) {
	view := &schedule.Schedule{Season: s.Season, Matches: s.Matches}
	if filter.competitor != "" {
		matches, err := schedule.MatchesFor(view, r, filter.competitor)
		if err != nil {
			return nil, err
		}
		view.Matches = matches
	}
	if filter.venue != "" {
		view.Matches = view.AtVenue(strings.TrimSpace(filter.venue))
	}
	if filter.date != "" {
		matches, err := schedule.MatchesOn(view, filter.date)
		if err != nil {
			return nil, err
		}
		view.Matches = matches
	}
	return view.SortedByDate(), nil
}

func runFairness(ctx context.Context, configFile, path string) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.roster(ctx)
	if err != nil {
		return err
	}
	s, err := loadSchedule(path, r)
	if err != nil {
		return err
	}

	fmt.Println(s.Stats())
	printFairness(analyzer.Fairness(s, r, e.cfg.Season.BackToBack()))
	return nil
}

func printFairness(report analyzer.FairnessReport) {
	fmt.Println("\nPer Competitor Metrics:")
	fmt.Printf("  %-30s %7s %4s %4s  %s\n", "Competitor", "Matches", "Home", "Away", "Back-to-back")
	flagged := 0
	for _, c := range report.Competitors {
		b2b := "No"
		if c.BackToBack {
			b2b = "Yes"
			flagged++
		}
		fmt.Printf("  %-30s %7d %4d %4d  %s\n", c.Competitor, c.Matches, c.Home, c.Away, b2b)
	}
	fmt.Printf("\nHome matches: mean %.2f, std dev %.2f\n", report.HomeMean, report.HomeStdDev)

	if flagged > 0 {
		fmt.Printf("⚠ %d competitors have back-to-back matches\n", flagged)
	} else {
		fmt.Println("✓ No back-to-back matches")
	}
}

func runValidate(ctx context.Context, configFile, path string) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.roster(ctx)
	if err != nil {
		return err
	}
	s, err := loadSchedule(path, r)
	if err != nil {
		return err
	}

	report := analyzer.Validate(s, r)
	for _, v := range report.Violations {
		fmt.Printf("✗ %s\n", v.Message)
	}
	fmt.Printf("\nValidation complete: %d violations\n", len(report.Violations))

	// Regenerate competitor sheets from master schedule
	if isWorkbook(path) {
		if err := excel.UpdateCompetitorSheets(path, r); err != nil {
			return fmt.Errorf("updating competitor sheets: %w", err)
		}
		fmt.Printf("✓ Competitor sheets updated in %s\n", path)
	}

	if !report.Passed() {
		return fmt.Errorf("%d violations found", len(report.Violations))
	}
	fmt.Println("✓ Schedule is valid")
	return nil
}

func runFiles(dir string) error {
	files, err := persist.ListScheduleFiles(dir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Printf("No schedule files in %s\n", dir)
		return nil
	}
	for _, f := range files {
		fmt.Println(f)
	}
	return nil
}
