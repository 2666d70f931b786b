package cli

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"contactcard/internal/config"
	"contactcard/internal/logx"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit project configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration and resolved paths",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open contactcard.yaml in $EDITOR, creating it if needed",
		Args:  cobra.NoArgs,
		RunE:  runConfigEdit,
	})
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	pp, cfg, err := loadProject()
	if err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "# project:  %s\n", pp.Root)
	fmt.Fprintf(out, "# input:    %s\n", pp.InputDir)
	fmt.Fprintf(out, "# output:   %s\n", pp.OutputDir)
	fmt.Fprintf(out, "# template: %s\n", pp.TemplateFile)
	fmt.Fprint(out, string(data))
	if len(data) == 0 || data[len(data)-1] != '\n' {
		fmt.Fprintln(out)
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, _, err := loadProject()
	if err != nil {
		return err
	}
	if err := pp.EnsureRoot(); err != nil {
		return err
	}

	data, err := config.Default().Marshal()
	if err != nil {
		return err
	}
	if _, err := writeIfMissing(pp.ConfigFile, data, logx.Discard()); err != nil {
		return err
	}

	editor := strings.Fields(os.Getenv("EDITOR"))
	if len(editor) == 0 {
		editor = []string{"vi"}
	}

	execCmd := exec.CommandContext(ctx, editor[0], append(editor[1:], pp.ConfigFile)...)
	execCmd.Stdout = cmd.OutOrStdout()
	execCmd.Stderr = cmd.ErrOrStderr()
	execCmd.Stdin = cmd.InOrStdin()
	execCmd.Dir = pp.Root

	if err := execCmd.Run(); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}
