package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/toolbelt/cmd/toolbelt/opts"
	"github.com/walteh/toolbelt/pkg/operation"
	"github.com/walteh/toolbelt/pkg/sysinfo"
)

// NewSysinfoCmd creates the sysinfo command
func NewSysinfoCmd(o *opts.RootOpts) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "sysinfo",
		Short: "Report OS, CPU, memory and disk information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := sysinfo.ParseFormat(format)
			if err != nil {
				return err
			}
			op, err := operation.NewSysinfoOperation(o.Options(), operation.SysinfoArgs{
				Format: f,
				Output: output,
				Stdout: cmd.OutOrStdout(),
			})
			if err != nil {
				return err
			}
			return op.Execute(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(sysinfo.FormatText), "output format: text, json or markdown")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the report to a file instead of stdout")

	return cmd
}
