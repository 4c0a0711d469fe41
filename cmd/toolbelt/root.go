package main

import (
	"github.com/spf13/cobra"

	"github.com/walteh/toolbelt/cmd/toolbelt/commands"
	"github.com/walteh/toolbelt/cmd/toolbelt/opts"
)

// NewRootCmd builds the command tree. Each call owns its own options, so the
// tree can be executed more than once in tests.
func NewRootCmd() *cobra.Command {
	o := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "toolbelt",
		Short: "Small batch utilities for backing up folders and sweeping temporary files",
		Long: `toolbelt bundles a folder archiver, a temporary file sweeper and a few
helper commands. Defaults can be set in $XDG_CONFIG_HOME/toolbelt/config.yaml
(or .json/.hcl via --config); flags always win.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[opts.SkipLoad] == "true" {
				return nil
			}
			return o.Load(cmd.Context(), cmd.OutOrStdout())
		},
	}

	addRootFlags(cmd, o)

	cmd.AddCommand(
		commands.NewBackupCmd(o),
		commands.NewCleanupCmd(o),
		commands.NewSysinfoCmd(o),
		commands.NewHelloCmd(o),
		commands.NewTemplateCmd(o),
		commands.NewVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigPath, "config", "c", "", "config file path (.yaml, .yml, .json or .hcl)")
	cmd.PersistentFlags().BoolVarP(&o.Verbose, "verbose", "v", false, "enable debug logging")
}
