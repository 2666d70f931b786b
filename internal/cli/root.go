package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir string
	outputJSON bool
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contactcard",
		Short: "Generate business card pages with an embedded vCard QR code",
		Long: `contactcard reads contact records from input/*.json, encodes each one as a
vCard QR code and renders templates/card.html into a self-contained page
under output/. Running it without a subcommand is the same as "generate".`,
		Args:          cobra.NoArgs,
		RunE:          runGenerate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory (default: current directory)")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	bindGenerateFlags(cmd)

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newInspectCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}
