package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"contactcard/internal/config"
	"contactcard/internal/paths"
	"contactcard/internal/qr"
	"contactcard/internal/render"
	"contactcard/internal/tui"
	"contactcard/internal/vcard"
	"contactcard/pkg/card"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration and input records without writing pages",
		Args:  cobra.NoArgs,
		RunE:  runValidate,
	}
}

type recordCheck struct {
	File   string `json:"file"`
	Name   string `json:"name,omitempty"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

func runValidate(cmd *cobra.Command, _ []string) error {
	pp, cfg, err := loadProject()
	if err != nil {
		return err
	}

	findings := cfg.Validate(render.ValidFilenameTokens())
	findings = append(findings, checkTemplate(pp.TemplateFile)...)

	inputs, err := card.Discover(pp.InputDir)
	if err != nil {
		writeFindings(cmd, findings)
		return err
	}

	encoder := qr.NewEncoder()
	if level, err := qr.ParseLevel(cfg.QR.Level); err == nil {
		encoder.Level = level
	}

	checks := make([]recordCheck, 0, len(inputs))
	invalid := 0
	for i, input := range inputs {
		check := checkRecord(input, i+1, cfg, encoder)
		if check.Error != "" {
			invalid++
		}
		checks = append(checks, check)
	}

	if outputJSON {
		payload := struct {
			Project string                    `json:"project"`
			Config  []config.ValidationResult `json:"config"`
			Records []recordCheck             `json:"records"`
			Invalid int                       `json:"invalid"`
		}{
			Project: pp.Root,
			Config:  findings,
			Records: checks,
			Invalid: invalid,
		}
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encode validate json: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
	} else {
		writeFindings(cmd, findings)
		writeRecordChecks(cmd, checks)
	}

	configErrors := config.HasErrors(findings)
	if configErrors || invalid > 0 {
		return fmt.Errorf("validation failed: %d invalid record(s), config errors: %t", invalid, configErrors)
	}
	return nil
}

// checkTemplate reports a template path that is not a regular file or does
// not parse.
func checkTemplate(path string) []config.ValidationResult {
	ok, err := paths.FileExists(path)
	if err != nil {
		return []config.ValidationResult{{Level: "error", Message: fmt.Sprintf("check template %s: %v", path, err)}}
	}
	if !ok {
		return []config.ValidationResult{{Level: "error", Message: fmt.Sprintf("template %s is not a regular file", path)}}
	}
	if _, err := render.LoadTemplate(path); err != nil {
		return []config.ValidationResult{{Level: "error", Message: err.Error()}}
	}
	return nil
}

func checkRecord(input string, index int, cfg config.Config, encoder qr.Encoder) recordCheck {
	check := recordCheck{File: filepath.Base(input)}

	rec, err := card.Load(input)
	if err != nil {
		var fe *card.FormatError
		if errors.As(err, &fe) {
			check.Error = fe.Detail
		} else {
			check.Error = err.Error()
		}
		return check
	}
	check.Name = rec.DisplayName()
	check.Output = render.BaseName(rec, input, index, render.NameOptions{
		Template: cfg.Generate.FilenameTemplate,
		Fallback: cfg.Generate.FallbackName,
	}) + ".html"

	if _, err := encoder.Encode(vcard.Build(rec)); err != nil {
		check.Error = err.Error()
	}
	return check
}

func writeFindings(cmd *cobra.Command, findings []config.ValidationResult) {
	for _, f := range findings {
		fmt.Fprintf(cmd.ErrOrStderr(), "config %s: %s\n", f.Level, f.Message)
	}
}

func writeRecordChecks(cmd *cobra.Command, checks []recordCheck) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSTATUS\tNAME\tOUTPUT\tERROR")
	for _, c := range checks {
		status := "valid"
		if c.Error != "" {
			status = "error"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			c.File,
			status,
			tui.NonEmptyOrDash(c.Name),
			tui.NonEmptyOrDash(c.Output),
			tui.NonEmptyOrDash(tui.TruncateWithEllipsis(c.Error, 60)),
		)
	}
	w.Flush()
}
