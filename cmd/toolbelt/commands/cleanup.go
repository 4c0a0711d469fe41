package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/toolbelt/cmd/toolbelt/opts"
	"github.com/walteh/toolbelt/pkg/operation"
)

// NewCleanupCmd creates the cleanup command
func NewCleanupCmd(o *opts.RootOpts) *cobra.Command {
	var (
		extensions []string
		patterns   []string
	)

	cmd := &cobra.Command{
		Use:     "cleanup DIR...",
		Aliases: []string{"clean", "sweep"},
		Short:   "Delete temporary files under one or more directories",
		Long: `Cleanup walks each DIR and deletes temporary files: the given extensions
(default .log .tmp .cache), OS junk files (.DS_Store, Thumbs.db, desktop.ini),
editor backups (.name~), Python bytecode and anything under __pycache__.
Hidden directories are never entered. Use --dry-run to only list matches.

The command exits non-zero when any file could not be deleted or a DIR
could not be read.`,
		Example: `  toolbelt cleanup ~/projects --dry-run
  toolbelt cleanup ./build ./tmp --extensions .log,.bak
  toolbelt cleanup . --pattern "**/*.orig"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := operation.NewCleanupOperation(o.Options(), operation.CleanupArgs{
				Roots:      args,
				Extensions: extensions,
				Patterns:   patterns,
				DryRun:     opts.BoolFlag(cmd, "dry-run", o.Config.Cleanup.DryRun),
			})
			if err != nil {
				return err
			}
			return o.Run(cmd.Context(), op)
		},
	}

	cmd.Flags().StringSliceVar(&extensions, "extensions", nil, "comma-separated extensions to delete (replaces the defaults)")
	cmd.Flags().StringArrayVar(&patterns, "pattern", nil, "extra glob (relative to DIR) to delete; repeatable")
	cmd.Flags().Bool("dry-run", false, "report what would be deleted without deleting")

	return cmd
}
