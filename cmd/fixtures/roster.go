package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/derekprior/fixtures/internal/roster"
)

func newRosterCmd(configFile *string) *cobra.Command {
	rosterCmd := &cobra.Command{
		Use:   "roster",
		Short: "List and edit the competitor roster",
	}

	var city string
	listCmd := &cobra.Command{
		Use:          "list",
		Short:        "List competitors in roster order",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRosterList(cmd.Context(), *configFile, city)
		},
	}
	listCmd.Flags().StringVar(&city, "city", "", "Only competitors based in this city")

	var c roster.Competitor
	addCmd := &cobra.Command{
		Use:          "add",
		Short:        "Add a competitor to the roster database",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRosterAdd(cmd.Context(), *configFile, c)
		},
	}
	addCmd.Flags().StringVar(&c.Name, "name", "", "Competitor name")
	addCmd.Flags().StringVar(&c.City, "city", "", "Home city")
	addCmd.Flags().StringVar(&c.Captain, "captain", "", "Captain")
	addCmd.Flags().StringVar(&c.HomeVenue, "venue", "", "Home venue")
	addCmd.MarkFlagRequired("name")

	removeCmd := &cobra.Command{
		Use:          "remove <name>",
		Short:        "Remove a competitor from the roster database",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRosterRemove(cmd.Context(), *configFile, args[0])
		},
	}

	importCmd := &cobra.Command{
		Use:          "import",
		Short:        "Replace the roster database with the competitors in the config",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRosterImport(cmd.Context(), *configFile)
		},
	}

	rosterCmd.AddCommand(listCmd, addCmd, removeCmd, importCmd)
	return rosterCmd
}

func runRosterList(ctx context.Context, configFile, city string) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	r, err := e.roster(ctx)
	if err != nil {
		return err
	}

	competitors := listedCompetitors(r, city)
	if city != "" {
		fmt.Printf("%d competitors in %s:\n", len(competitors), city)
	} else {
		fmt.Printf("%d competitors:\n", len(competitors))
	}
	for i, c := range competitors {
		fmt.Printf("  %2d. %s\n", i+1, c)
	}
	if city != "" {
		return nil
	}

	venues := r.Venues()
	fmt.Printf("\n%d venues:\n", len(venues))
	for _, v := range venues {
		fmt.Printf("  %-30s %s\n", v.Name, v.City)
	}
	return nil
}

// listedCompetitors returns the roster, or only the competitors in city.
func listedCompetitors(r *roster.Roster, city string) []roster.Competitor {
	if city == "" {
		return r.Competitors()
	}
	return r.InCity(strings.TrimSpace(city))
}

func runRosterAdd(ctx context.Context, configFile string, c roster.Competitor) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.store()
	if err != nil {
		return err
	}
	if err := store.Add(ctx, c); err != nil {
		return err
	}

	fmt.Printf("✓ Added %s\n", c.Name)
	return nil
}

func runRosterRemove(ctx context.Context, configFile, name string) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.store()
	if err != nil {
		return err
	}
	if err := store.Remove(ctx, name); err != nil {
		return err
	}

	fmt.Printf("✓ Removed %s\n", name)
	return nil
}

func runRosterImport(ctx context.Context, configFile string) error {
	e, err := loadEnv(configFile)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.store()
	if err != nil {
		return err
	}
	competitors := e.cfg.Competitors()
	if err := store.Replace(ctx, competitors); err != nil {
		return err
	}

	fmt.Printf("✓ Imported %d competitors into %s\n", len(competitors), e.cfg.Roster.Database)
	return nil
}
