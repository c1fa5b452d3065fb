// Command redzone-report runs the season aggregations once and prints
// plain-text tables to stdout. It shares the cache file with the server,
// so a report after a warmed server makes no upstream requests.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/redzonehq/redzone/internal/adapters/provider"
	app "github.com/redzonehq/redzone/internal/app"
	"github.com/redzonehq/redzone/internal/domain/model"
	"github.com/redzonehq/redzone/pkg/logger"
	"github.com/spf13/cobra"
)

type reportOptions struct {
	season   int
	week     int
	position string
	category string
	limit    int
	cache    string
}

func newRootCommand() *cobra.Command {
	opts := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "redzone-report",
		Short: "Print defense weakness, matchup, and leaderboard tables",
		Long: `Print defense weakness, matchup favorability, and touchdown
leaderboard tables for one season and week.

Season data is fetched from nflverse on first use and cached in a local
sqlite file, so repeated reports are offline. Point --cache at the
server's cache file to reuse its snapshots.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.season, "season", 2024, "NFL season to report on")
	cmd.Flags().IntVar(&opts.week, "week", 1, "schedule week for the matchup table")
	cmd.Flags().StringVar(&opts.position, "position", "WR", "position for defense and leader tables: QB | RB | WR | TE")
	cmd.Flags().StringVar(&opts.category, "category", "", "touchdown category for the leader table (defaults to the position's primary category)")
	cmd.Flags().IntVar(&opts.limit, "limit", 15, "max rows in the leaderboard table")
	cmd.Flags().StringVar(&opts.cache, "cache", "redzone.db", "sqlite cache path (\":memory:\" disables persistence)")
	return cmd
}

func runReport(cmd *cobra.Command, opts *reportOptions) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	pos := model.Position(strings.ToUpper(opts.position))
	if !pos.Valid() {
		return fmt.Errorf("invalid position %q: expected one of %v", opts.position, model.Positions())
	}
	cat := model.Category(strings.ToLower(opts.category))
	if opts.category == "" {
		cat = model.CategoriesFor(pos)[0]
	}
	if !cat.ValidFor(pos) {
		return fmt.Errorf("invalid category %q for position %q: expected one of %v", cat, pos, model.CategoriesFor(pos))
	}
	if opts.week < 1 {
		return fmt.Errorf("invalid week %d: expected a positive week number", opts.week)
	}

	svc := app.New(
		app.WithCachePath(opts.cache),
		app.WithDefaultSeason(opts.season),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	defense, err := svc.DefenseWeakness(ctx, opts.season, pos)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Touchdowns allowed to %s, season %d\n\n", pos, opts.season)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tDEFENSE\tTDS ALLOWED")
	for _, row := range defense {
		fmt.Fprintf(tw, "%d\t%s\t%d\n", row.Rank, row.Team, row.TDsAllowed)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	matchups, err := svc.Matchups(ctx, opts.season, opts.week)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nFavorable matchups, week %d\n\n", opts.week)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PLAYER\tPOS\tTEAM\tOPP DEFENSE\tDEF RANK\tSCORE")
	for _, row := range matchups {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%.2f\n",
			row.PlayerName, row.Position, row.Team, row.Opponent, row.DefenseRank, row.Favorability)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	leaders, err := svc.Leaders(ctx, opts.season, pos, cat, opts.limit)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%s touchdown leaders (%s), season %d\n\n", pos, cat, opts.season)
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tPLAYER\tTEAM\tTDS\tTOTAL")
	for _, row := range leaders {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", row.Rank, row.PlayerName, row.Team, row.CategoryTDs, row.TotalTDs)
	}
	return tw.Flush()
}

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	// The report writes tables to stdout; keep log noise down.
	_ = logger.SetLevelString("warn")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	if err := cmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, provider.ErrDataUnavailable) {
			fmt.Fprintln(os.Stderr, "redzone-report: upstream data unavailable:", err)
		} else {
			fmt.Fprintln(os.Stderr, "redzone-report:", err)
		}
		os.Exit(1)
	}
}
