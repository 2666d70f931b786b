package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	humanize "github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"contactcard/internal/logx"
	"contactcard/internal/paths"
	"contactcard/internal/render"
	"contactcard/internal/tui"
	"contactcard/pkg/card"
)

const separator = "--------------------------------------------------"

var (
	generateKeepGoing  bool
	generateNoProgress bool
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a business card page for every input record",
		Args:  cobra.NoArgs,
		RunE:  runGenerate,
	}
	bindGenerateFlags(cmd)
	return cmd
}

func bindGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&generateKeepGoing, "keep-going", false, "Continue with the next record when one fails")
	cmd.Flags().BoolVar(&generateNoProgress, "no-progress", false, "Disable interactive progress output")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pp, cfg, err := loadProject()
	if err != nil {
		return err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("contactcard generate: project=%s input=%s output=%s", pp.Root, pp.InputDir, pp.OutputDir)

	inputs, err := card.Discover(pp.InputDir)
	if err != nil {
		logger.Printf("discover inputs: %v", err)
		return err
	}

	svc, err := render.NewService(pp, cfg, logger)
	if err != nil {
		logger.Printf("prepare service: %v", err)
		return err
	}

	opts := render.Options{
		ContinueOnError: generateKeepGoing || cfg.Generate.ContinueOnError,
	}

	switch tui.DetectMode(cmd.OutOrStdout(), generateNoProgress, outputJSON) {
	case tui.ModeJSON:
		results, genErr := svc.Generate(ctx, inputs, opts)
		if err := writeGenerateJSON(cmd, pp.Root, results); err != nil {
			return err
		}
		return genErr
	case tui.ModeTUI:
		return runGenerateTUI(ctx, cmd, pp, svc, inputs, opts)
	default:
		return runGeneratePlain(ctx, cmd, pp, svc, inputs, opts)
	}
}

func runGeneratePlain(ctx context.Context, cmd *cobra.Command, pp paths.ProjectPaths, svc *render.Service, inputs []string, opts render.Options) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "🎴 Business Card Generator")
	fmt.Fprintln(out, separator)
	fmt.Fprintf(out, "📦 Found %d JSON file(s) in: %s\n", len(inputs), pp.InputDir)

	opts.Reporter = &plainReporter{out: out, errOut: cmd.ErrOrStderr()}
	results, err := svc.Generate(ctx, inputs, opts)

	fmt.Fprintln(out, separator)
	if err != nil {
		writeGenerateSummary(out, nil, results)
		return err
	}
	fmt.Fprintln(out, "✅ Done! Open the generated HTML file(s) in a web browser.")
	return nil
}

func runGenerateTUI(ctx context.Context, cmd *cobra.Command, pp paths.ProjectPaths, svc *render.Service, inputs []string, opts render.Options) error {
	out := cmd.OutOrStdout()
	model := tui.NewBatchModel("Business cards: "+pp.InputDir, inputs)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		results []render.Result
		genErr  error
	)
	err := tui.Run(out, model, cancel, func(reporter render.ProgressReporter) {
		opts.Reporter = reporter
		results, genErr = svc.Generate(ctx, inputs, opts)
	})
	if err != nil {
		return err
	}

	writeGenerateSummary(out, cmd.ErrOrStderr(), results)
	return genErr
}

// plainReporter prints one line per pipeline step.
type plainReporter struct {
	out    io.Writer
	errOut io.Writer
}

func (p *plainReporter) Start(job render.Job) {
	fmt.Fprintln(p.out, separator)
	fmt.Fprintf(p.out, "📖 Loading business card data from: %s\n", job.InputPath)
}

func (p *plainReporter) Step(_ render.Job, step render.Step, detail string) {
	switch step {
	case render.StepLoad:
		fmt.Fprintf(p.out, "   ✓ Loaded card for: %s\n", detail)
		fmt.Fprintln(p.out, "📝 Generating vCard format...")
	case render.StepVCard:
		fmt.Fprintf(p.out, "   ✓ vCard generated (%s)\n", detail)
		fmt.Fprintln(p.out, "📊 Generating QR code...")
	case render.StepQR:
		fmt.Fprintln(p.out, "   ✓ QR code created (embedded as data URI)")
		fmt.Fprintln(p.out, "🎨 Rendering HTML template...")
	case render.StepRender:
		fmt.Fprintln(p.out, "   ✓ Template rendered")
	}
}

func (p *plainReporter) Complete(res render.Result) {
	if res.Err != nil {
		fmt.Fprintf(p.errOut, "❌ Failed: %s: %v\n", res.InputPath, res.Err)
		return
	}
	fmt.Fprintf(p.out, "✅ Success! Website generated at: %s (%s)\n", res.OutputPath, humanize.Bytes(uint64(res.Bytes)))
}

func writeGenerateSummary(out io.Writer, errWriter io.Writer, results []render.Result) {
	var generated, failed int
	for _, res := range results {
		if res.Err != nil {
			failed++
			if errWriter != nil {
				fmt.Fprintf(errWriter, "generate %03d %s failed: %v\n", res.Index, filepath.Base(res.InputPath), res.Err)
			}
			continue
		}
		generated++
	}
	fmt.Fprintf(out, "completed: %d generated, %d failed\n", generated, failed)
}

func writeGenerateJSON(cmd *cobra.Command, project string, results []render.Result) error {
	payload := struct {
		Project string               `json:"project"`
		Results []generateJSONResult `json:"results"`
		Summary generateJSONSummary  `json:"summary"`
	}{
		Project: project,
		Results: make([]generateJSONResult, 0, len(results)),
	}

	for _, res := range results {
		payload.Results = append(payload.Results, generateJSONResult{
			Index:      res.Index,
			Input:      res.InputPath,
			Name:       res.Name,
			OutputPath: res.OutputPath,
			Bytes:      res.Bytes,
			Error:      errorString(res.Err),
		})
		if res.Err != nil {
			payload.Summary.Failed++
		} else {
			payload.Summary.Generated++
		}
	}

	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode generate json: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

type generateJSONResult struct {
	Index      int    `json:"index"`
	Input      string `json:"input"`
	Name       string `json:"name,omitempty"`
	OutputPath string `json:"output_path,omitempty"`
	Bytes      int    `json:"bytes,omitempty"`
	Error      string `json:"error,omitempty"`
}

type generateJSONSummary struct {
	Generated int `json:"generated"`
	Failed    int `json:"failed"`
}

func errorString(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(err.Error())
}
