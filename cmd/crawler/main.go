// Command crawler runs crawls, resets and single jobs outside the API process.
//
// Usage:
//
//	crawler crawl --only standings,fixtures --league PL
//	crawler crawl --no-db
//	crawler reset --yes --crawl
//	crawler jobs run live_matches
//	crawler migrate
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/football-hub/internal/app"
	"github.com/riskibarqy/football-hub/internal/config"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "crawler",
		Short:         "football-hub crawl and maintenance CLI",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(crawlCmd(), resetCmd(), jobsCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func crawlCmd() *cobra.Command {
	var (
		only    []string
		leagues []string
		noDB    bool
	)
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Run a one-shot crawl and reconcile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), app.Options{Memory: noDB, Competitions: leagues}, func(ctx context.Context, a *app.App) error {
				started := time.Now()
				err := a.Crawler.RunAll(ctx, only)
				a.Logger.Info("crawl finished", "duration", time.Since(started).Round(time.Millisecond).String(), "error", err)
				if noDB {
					if summaryErr := printSummary(ctx, a); summaryErr != nil {
						return summaryErr
					}
				}
				return err
			})
		},
	}
	cmd.Flags().StringSliceVar(&only, "only", nil, "Steps to run (clubs,standings,fixtures,players,news)")
	cmd.Flags().StringSliceVar(&leagues, "league", nil, "Competitions to crawl (PL,UCL)")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "Use the in-memory store and print counts")
	return cmd
}

func resetCmd() *cobra.Command {
	var (
		yes   bool
		crawl bool
	)
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Truncate every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			return withApp(cmd.Context(), app.Options{}, func(ctx context.Context, a *app.App) error {
				if err := a.Store.Reset(ctx); err != nil {
					return err
				}
				a.Logger.Info("store reset")
				if !crawl {
					return nil
				}
				return a.Crawler.RunAll(ctx, nil)
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm the reset")
	cmd.Flags().BoolVar(&crawl, "crawl", false, "Run the initial crawl after the reset")
	return cmd
}

func jobsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect and run scheduler jobs",
	}

	run := &cobra.Command{
		Use:   "run <name>",
		Short: "Run one job synchronously",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), app.Options{}, func(ctx context.Context, a *app.App) error {
				affected, err := a.RunJob(ctx, args[0])
				if err != nil {
					return err
				}
				a.Logger.Info("job finished", "job", args[0], "affected", affected)
				return nil
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List jobs and their default schedules",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			schedules := usecase.DefaultJobSchedules()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "JOB\tSCHEDULE")
			for _, row := range [][2]string{
				{usecase.JobLiveMatches, pick(cfg.JobLiveSchedule, schedules.Live)},
				{usecase.JobMatchEndDetector, pick(cfg.JobEndDetectorSchedule, schedules.EndDetector)},
				{usecase.JobStandings, pick(cfg.JobStandingsSchedule, schedules.Standings)},
				{usecase.JobNews, pick(cfg.JobNewsSchedule, schedules.News)},
				{usecase.JobPlayers, pick(cfg.JobPlayersSchedule, schedules.Players)},
				{usecase.JobFixtures, pick(cfg.JobFixturesSchedule, schedules.Fixtures)},
				{usecase.JobClubs, pick(cfg.JobClubsSchedule, schedules.Clubs)},
			} {
				fmt.Fprintf(w, "%s\t%s\n", row[0], row[1])
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(run, list)
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if err := app.MigrateUp(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

// withApp loads config, builds the app and cancels on SIGINT/SIGTERM.
func withApp(parent context.Context, opts app.Options, fn func(ctx context.Context, a *app.App) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger := logging.NewConsole(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()
	logging.SetDefault(logger)

	a, err := app.New(ctx, cfg, logger, opts)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Warn("close store", "error", err)
		}
	}()

	return fn(ctx, a)
}

func printSummary(ctx context.Context, a *app.App) error {
	rows, err := a.Summary(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "COMPETITION\tSEASON\tCLUBS\tSTANDINGS\tMATCHES\tPLAYERS\tNEWS")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
			row.Competition, row.Season, row.Clubs, row.Standings, row.Matches, row.Players, row.News)
	}
	return w.Flush()
}

func pick(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
