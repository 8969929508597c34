// Package cli provides the portfolio command-line client. It fetches the
// record collection from a portfolio server and derives dashboards locally.
package cli

import (
	"fmt"
	"time"

	"github.com/rpggio/portfolio/internal/dashboard"
	"github.com/rpggio/portfolio/internal/domain/project"
	"github.com/rpggio/portfolio/internal/recordstore"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// Output formats.
const (
	OutputText = "text"
	OutputJSON = "json"
)

// StoreFactory opens the record store at serverURL.
type StoreFactory func(serverURL, token string, timeout time.Duration) dashboard.Store

func remoteStore(serverURL, token string, timeout time.Duration) dashboard.Store {
	return recordstore.New(serverURL, recordstore.Options{Token: token, Timeout: timeout})
}

type globalOptions struct {
	server   string
	token    string
	output   string
	pageSize int
	timeout  time.Duration
	clamp    bool
}

// NewRootCmd creates the root command talking to a portfolio server over HTTP.
func NewRootCmd() *cobra.Command {
	return newRootCmd(remoteStore)
}

func newRootCmd(stores StoreFactory) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:           "portfolio",
		Short:         "Browse and edit a project portfolio",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			switch opts.output {
			case OutputText, OutputJSON:
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", opts.output)
			}
			if opts.pageSize <= 0 {
				return fmt.Errorf("page size must be positive")
			}
			return nil
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.server, "server", "http://localhost:8080", "portfolio server URL")
	flags.StringVar(&opts.token, "token", "", "bearer token for the server")
	flags.StringVarP(&opts.output, "output", "o", OutputText, "output format (text|json)")
	flags.IntVar(&opts.pageSize, "page-size", 5, "rows per dashboard page")
	flags.DurationVar(&opts.timeout, "timeout", recordstore.DefaultTimeout, "request timeout")
	flags.BoolVar(&opts.clamp, "clamp-spent", false, "lower spent to budget instead of accepting over-budget projects")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{OutputText, OutputJSON}, cobra.ShellCompDirectiveNoFileComp
	})

	open := func() dashboard.Store {
		return stores(opts.server, opts.token, opts.timeout)
	}
	service := func() *dashboard.Service {
		return dashboard.NewService(open(), project.Validator{ClampSpent: opts.clamp}, opts.pageSize, nil)
	}

	rootCmd.AddCommand(newDashboardCmd(opts, open))
	rootCmd.AddCommand(newCreateCmd(opts, service))
	rootCmd.AddCommand(newDeleteCmd(opts, service))
	rootCmd.AddCommand(newActivityCmd(opts, open))

	return rootCmd
}
