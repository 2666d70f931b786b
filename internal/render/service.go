package render

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"contactcard/internal/config"
	"contactcard/internal/paths"
	"contactcard/internal/qr"
	"contactcard/internal/vcard"
	"contactcard/pkg/card"
)

// Step names a stage of the per-record pipeline.
type Step string

const (
	StepLoad   Step = "load"
	StepVCard  Step = "vcard"
	StepQR     Step = "qr"
	StepRender Step = "render"
)

// Logger keeps the subset of log.Logger used by the service.
type Logger interface {
	Printf(format string, v ...any)
}

// Service turns contact records into business card pages for one project.
type Service struct {
	Paths   paths.ProjectPaths
	Config  config.Config
	Encoder qr.Encoder

	template *Template
	logger   Logger
}

// Options controls batch execution behaviour.
type Options struct {
	// ContinueOnError records a failed input and moves on instead of
	// aborting the run.
	ContinueOnError bool
	Reporter        ProgressReporter
}

// Job identifies one input record within a batch.
type Job struct {
	Index     int
	InputPath string
}

// Result captures the outcome of generating one page.
type Result struct {
	Index      int
	InputPath  string
	Name       string
	OutputPath string
	Bytes      int
	Err        error
}

// ProgressReporter receives notifications as records move through the pipeline.
type ProgressReporter interface {
	Start(job Job)
	Step(job Job, step Step, detail string)
	Complete(result Result)
}

// NewService loads the page template and QR settings for a project. A
// missing or malformed template or an invalid config fails here, before any
// page is written.
func NewService(pp paths.ProjectPaths, cfg config.Config, logger Logger) (*Service, error) {
	level, err := qr.ParseLevel(cfg.QR.Level)
	if err != nil {
		return nil, err
	}

	tmpl, err := LoadTemplate(pp.TemplateFile)
	if err != nil {
		return nil, err
	}

	if err := config.ValidationError(cfg.Validate(ValidFilenameTokens())); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = nopLogger{}
	}

	return &Service{
		Paths:  pp,
		Config: cfg,
		Encoder: qr.Encoder{
			Level:   level,
			BoxSize: cfg.QR.BoxSize,
			Border:  cfg.QR.BorderValue(),
		},
		template: tmpl,
		logger:   logger,
	}, nil
}

// Generate processes inputs one at a time, in order. Without
// ContinueOnError the first failure stops the run and is returned; with it,
// every input is attempted and an error summarising the failures is returned.
// Results are returned for every attempted input.
func (s *Service) Generate(ctx context.Context, inputs []string, opts Options) ([]Result, error) {
	if s == nil {
		return nil, errors.New("render service is nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no JSON files found in %s: %w", s.Paths.InputDir, card.ErrInputNotFound)
	}
	if err := s.Paths.EnsureOutputDir(); err != nil {
		return nil, err
	}

	reporter := opts.Reporter
	if reporter == nil {
		reporter = nopReporter{}
	}

	results := make([]Result, 0, len(inputs))
	failed := 0
	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		job := Job{Index: i + 1, InputPath: input}
		reporter.Start(job)
		res := s.generateOne(job, reporter)
		reporter.Complete(res)
		results = append(results, res)

		if res.Err != nil {
			failed++
			s.logger.Printf("record %s failed: %v", input, res.Err)
			if !opts.ContinueOnError {
				return results, res.Err
			}
			continue
		}
		s.logger.Printf("record %s -> %s (%d bytes)", input, res.OutputPath, res.Bytes)
	}

	if failed > 0 {
		return results, fmt.Errorf("%d of %d record(s) failed", failed, len(inputs))
	}
	return results, nil
}

func (s *Service) generateOne(job Job, reporter ProgressReporter) Result {
	res := Result{Index: job.Index, InputPath: job.InputPath}

	rec, err := card.Load(job.InputPath)
	if err != nil {
		res.Err = err
		return res
	}
	res.Name = rec.DisplayName()
	reporter.Step(job, StepLoad, res.Name)

	base := BaseName(rec, job.InputPath, job.Index, NameOptions{
		Template: s.Config.Generate.FilenameTemplate,
		Fallback: s.Config.Generate.FallbackName,
	})
	outputPath, err := ChooseOutputPath(s.Paths.OutputDir, base)
	if err != nil {
		res.Err = err
		return res
	}
	res.OutputPath = outputPath

	vc := vcard.Build(rec)
	reporter.Step(job, StepVCard, fmt.Sprintf("%d bytes", len(vc)))

	uri, err := s.Encoder.DataURI(vc)
	if err != nil {
		res.Err = fmt.Errorf("encode QR code for %s: %w", filepath.Base(job.InputPath), err)
		return res
	}
	reporter.Step(job, StepQR, "embedded as data URI")

	n, err := s.template.WriteFile(outputPath, NewView(rec, uri))
	if err != nil {
		res.Err = err
		return res
	}
	res.Bytes = n
	reporter.Step(job, StepRender, outputPath)
	return res
}

type nopReporter struct{}

func (nopReporter) Start(Job)              {}
func (nopReporter) Step(Job, Step, string) {}
func (nopReporter) Complete(Result)        {}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
