package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/activity"
	"github.com/spf13/cobra"
)

// ActivityLister is implemented by stores that expose the mutation log.
type ActivityLister interface {
	Activity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

func newActivityCmd(opts *globalOptions, open func() dashboard.Store) *cobra.Command {
	var (
		projectID string
		kind      string
		limit     int
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show recent project creates and deletes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			lister, ok := open().(ActivityLister)
			if !ok {
				return errors.New("store does not expose an activity log")
			}

			list := activity.ListOptions{ProjectID: projectID, Limit: limit, Offset: offset}
			if kind != "" {
				typ := activity.Type(kind)
				if !typ.Valid() {
					return fmt.Errorf("unknown activity type %q", kind)
				}
				list.Type = &typ
			}

			entries, err := lister.Activity(cmd.Context(), list)
			if err != nil {
				return err
			}
			if opts.output == OutputJSON {
				if entries == nil {
					entries = []activity.Entry{}
				}
				return writeJSON(cmd.OutOrStdout(), entries)
			}

			rows := make([]table.Row, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, table.Row{e.CreatedAt.Local().Format(time.DateTime), e.Type, e.ProjectID, e.Summary})
			}
			renderTable(cmd.OutOrStdout(), "Activity", table.Row{"When", "Type", "Project", "Summary"}, rows)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&projectID, "project", "", "only entries for this project id")
	flags.StringVar(&kind, "type", "", "project_created or project_deleted")
	flags.IntVar(&limit, "limit", 20, "maximum entries to show")
	flags.IntVar(&offset, "offset", 0, "entries to skip")

	return cmd
}
