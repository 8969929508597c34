package cli

import (
	"fmt"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/spf13/cobra"
)

func newCreateCmd(opts *globalOptions, service func() *dashboard.Service) *cobra.Command {
	var (
		req    project.CreateRequest
		status string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Status = project.Status(status)
			proj, err := service().Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			if opts.output == OutputJSON {
				return writeJSON(cmd.OutOrStdout(), proj)
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Created project %s (%s)\n", proj.ID, proj.Name)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&req.Name, "name", "", "project name")
	flags.StringVar(&req.Owner, "owner", "", "responsible owner")
	flags.StringVar(&status, "status", "", "ACTIVE, PAUSED or DONE (default ACTIVE)")
	flags.Float64Var(&req.Budget, "budget", 0, "budget")
	flags.Float64Var(&req.Spent, "spent", 0, "amount spent")
	flags.StringVar(&req.CreatedAt, "created-at", "", "creation date as YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("owner")

	return cmd
}
