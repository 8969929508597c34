package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"time"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/spf13/cobra"
)

func newDashboardCmd(opts *globalOptions, open func() dashboard.Store) *cobra.Command {
	var (
		query  string
		status string
		sort   string
		dir    string
		page   int
		watch  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show KPIs, charts and one page of matching projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			values := url.Values{}
			values.Set("q", query)
			values.Set("status", status)
			values.Set("sort", sort)
			values.Set("dir", dir)
			values.Set("page", strconv.Itoa(page))
			state, err := dashboard.ParseState(values)
			if err != nil {
				return err
			}

			board := dashboard.NewBoard(opts.pageSize)
			board.SetState(state)
			board.SetPage(state.Page)
			store := open()
			if watch <= 0 {
				return refresh(cmd.Context(), cmd.OutOrStdout(), opts.output, board, store)
			}
			return watchBoard(cmd.Context(), cmd.OutOrStdout(), opts.output, board, store, watch)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&query, "query", "q", "", "case-insensitive search text")
	flags.StringVar(&status, "status", string(dashboard.StatusAll), "ALL, ACTIVE, PAUSED or DONE")
	flags.StringVar(&sort, "sort", string(dashboard.SortCreatedAt), "createdAt, name, owner, budget, spent or status")
	flags.StringVar(&dir, "dir", string(dashboard.Desc), "asc or desc")
	flags.IntVar(&page, "page", 1, "1-based page number")
	flags.DurationVar(&watch, "watch", 0, "reload and redraw at this interval until interrupted")

	_ = cmd.RegisterFlagCompletionFunc("sort", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		keys := dashboard.SortKeys()
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = string(k)
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// refresh loads a fresh snapshot into board and renders its view.
func refresh(ctx context.Context, w io.Writer, format string, board *dashboard.Board, store dashboard.Source) error {
	board.SetSnapshot(dashboard.Load(ctx, store))
	view := board.View()
	if err := renderView(w, format, view); err != nil {
		return err
	}
	if view.Error != "" {
		return errors.New(view.Error)
	}
	return nil
}

// watchBoard redraws until ctx ends. Source failures are rendered and
// retried on the next tick.
func watchBoard(ctx context.Context, w io.Writer, format string, board *dashboard.Board, store dashboard.Source, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		board.SetSnapshot(dashboard.Load(ctx, store))
		if err := renderView(w, format, board.View()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
	}
}
