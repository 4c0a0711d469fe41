package commands

import (
	"github.com/spf13/cobra"

	"github.com/walteh/toolbelt/cmd/toolbelt/opts"
	"github.com/walteh/toolbelt/pkg/operation"
)

// NewHelloCmd creates the hello command
func NewHelloCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "hello",
		Short: "Print a banner showing the tool runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return operation.NewHelloOperation(operation.HelloArgs{Out: cmd.OutOrStdout()}).Execute(cmd.Context())
		},
	}
}

// NewTemplateCmd creates the template command, the starting point for new
// commands: read --input, transform it, write --output.
func NewTemplateCmd(o *opts.RootOpts) *cobra.Command {
	var args operation.TemplateArgs

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Starter command: upper-cases --input into --output",
		Long: `Template is a skeleton for new commands. Copy cmd/toolbelt/commands/samples.go
and pkg/operation/samples.go, rename, and replace operation.Transform with
your own logic.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			op, err := operation.NewTemplateOperation(o.Options(), args)
			if err != nil {
				return err
			}
			return o.Run(cmd.Context(), op)
		},
	}

	cmd.Flags().StringVar(&args.Input, "input", "", "input file (required)")
	cmd.Flags().StringVar(&args.Output, "output", operation.DefaultTemplateOutput, "output file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
