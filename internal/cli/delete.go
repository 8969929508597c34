package cli

import (
	"fmt"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/spf13/cobra"
)

func newDeleteCmd(opts *globalOptions, service func() *dashboard.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if err := service().Delete(cmd.Context(), id); err != nil {
				return err
			}
			if opts.output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"id": id, "deleted": true})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", id)
			return err
		},
	}
}
