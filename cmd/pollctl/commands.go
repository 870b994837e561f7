// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/quickly-poll/cliparse"
	"github.com/danielhkuo/quickly-poll/hoststore"
	"github.com/danielhkuo/quickly-poll/poll"
)

// flags shared by every subcommand
type globals struct {
	storeKind string
	dsn       string
	overflow  string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:          "pollctl",
		Short:        "Vote on and inspect a two-option poll",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if g.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return cliparse.LoadEnvFile(".env")
		},
	}

	rootCmd.PersistentFlags().StringVarP(&g.storeKind, "store", "s", "", "Store kind (memory, bbolt, sqlite, postgres, redis); env STORE_KIND")
	rootCmd.PersistentFlags().StringVarP(&g.dsn, "dsn", "d", "", "Store DSN; env DATABASE_URL")
	rootCmd.PersistentFlags().StringVar(&g.overflow, "overflow", "", "Overflow policy (fail or saturate); env OVERFLOW_POLICY")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Log every contract call")

	rootCmd.AddCommand(
		newVoteCmd(g),
		newResultsCmd(g),
	)
	return rootCmd
}

func newVoteCmd(g *globals) *cobra.Command {
	var count int

	voteCmd := &cobra.Command{
		Use:   "vote <a|b>",
		Short: "Cast votes for option A or B",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			option, err := poll.ParseOption(args[0])
			if err != nil {
				return err
			}
			if count < 1 {
				return fmt.Errorf("--count must be at least 1, got %d", count)
			}

			return withContract(cmd.Context(), g, func(c *poll.Contract) error {
				// each vote is its own invocation, as if cast by separate callers
				for i := 0; i < count; i++ {
					if err := c.Vote(cmd.Context(), option); err != nil {
						return fmt.Errorf("vote %d of %d: %w", i+1, count, err)
					}
				}
				res, err := c.GetResults(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", option, humanize.Comma(int64(res.Count(option))))
				return nil
			})
		},
	}

	voteCmd.Flags().IntVarP(&count, "count", "n", 1, "Number of votes to cast")
	return voteCmd
}

func newResultsCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "Print both tallies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContract(cmd.Context(), g, func(c *poll.Contract) error {
				res, err := c.GetResults(cmd.Context())
				if err != nil {
					return err
				}
				renderResults(cmd.OutOrStdout(), res)
				return nil
			})
		},
	}
}

func withContract(ctx context.Context, g *globals, fn func(*poll.Contract) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	kind, dsn := g.storeKind, g.dsn
	if err := cliparse.ResolveStore(&kind, &dsn); err != nil {
		return err
	}

	policyName := g.overflow
	if policyName == "" {
		policyName = os.Getenv("OVERFLOW_POLICY")
	}
	policy := poll.OverflowFail
	if policyName != "" {
		var err error
		if policy, err = poll.ParseOverflowPolicy(policyName); err != nil {
			return err
		}
	}

	host, err := hoststore.Open(ctx, kind, dsn)
	if err != nil {
		return err
	}
	defer host.Close()

	return fn(poll.NewContract(host, policy))
}

func renderResults(w io.Writer, res poll.Results) {
	pctA, pctB := res.Percentages()

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Option", "Votes", "Share"})
	table.SetBorders(tablewriter.Border{Left: true, Top: false, Right: true, Bottom: false})
	table.SetCenterSeparator("|")
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	shares := map[poll.Option]int{poll.OptionA: pctA, poll.OptionB: pctB}
	for _, o := range poll.Options {
		table.Append([]string{o.String(), humanize.Comma(int64(res.Count(o))), fmt.Sprintf("%d%%", shares[o])})
	}
	table.SetFooter([]string{"Total", humanize.Comma(int64(res.Total())), ""})

	table.Render()
}
