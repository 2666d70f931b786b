package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"contactcard/internal/config"
	"contactcard/internal/logx"
	"contactcard/internal/paths"
	"contactcard/internal/render"
)

const exampleRecordJSON = `{
  "name": "Ada Lovelace",
  "title": "Analyst",
  "company": "Analytical Engines",
  "phone": "+44 20 7946 0000",
  "email": "ada@example.com",
  "website": "https://example.com",
  "linkedin": "https://www.linkedin.com/in/ada",
  "github": "https://github.com/ada",
  "twitter": "https://twitter.com/ada"
}
`

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a contactcard project",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInit,
	}
}

func resolveInitDir(projectFlag string, args []string) (string, error) {
	if projectFlag != "" {
		return projectFlag, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}

	if len(args) > 0 {
		if args[0] == "." {
			return cwd, nil
		}
		return filepath.Join(cwd, args[0]), nil
	}

	return nextAvailableDir(cwd)
}

func nextAvailableDir(base string) (string, error) {
	for i := 1; ; i++ {
		candidate := filepath.Join(base, fmt.Sprintf("contactcard-%d", i))
		exists, err := paths.DirExists(candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir, err := resolveInitDir(projectDir, args)
	if err != nil {
		return err
	}

	pp, err := paths.Resolve(dir)
	if err != nil {
		return err
	}
	if err := pp.EnsureRoot(); err != nil {
		return err
	}

	logger, closer, err := logx.New(pp)
	if err != nil {
		return err
	}
	defer closer.Close()
	logger.Printf("contactcard init: project=%s", pp.Root)

	cfgData, err := config.Default().Marshal()
	if err != nil {
		return err
	}

	scaffold := []struct {
		path string
		data []byte
	}{
		{filepath.Join(pp.InputDir, "example.json"), []byte(exampleRecordJSON)},
		{pp.TemplateFile, []byte(render.DefaultTemplate)},
		{pp.ConfigFile, cfgData},
	}

	created := make([]string, 0, len(scaffold))
	for _, item := range scaffold {
		ok, err := writeIfMissing(item.path, item.data, logger)
		if err != nil {
			return err
		}
		if ok {
			rel, err := filepath.Rel(pp.Root, item.path)
			if err != nil {
				rel = item.path
			}
			created = append(created, rel)
		}
	}

	out := cmd.OutOrStdout()
	if len(created) == 0 {
		fmt.Fprintf(out, "Project already initialized at %s\n", pp.Root)
		return nil
	}

	fmt.Fprintf(out, "Initialized project at %s\n", pp.Root)
	for _, entry := range created {
		fmt.Fprintf(out, "  created %s\n", filepath.ToSlash(entry))
	}
	return nil
}

// writeIfMissing creates path with data unless something already exists
// there. It reports whether the file was written.
func writeIfMissing(path string, data []byte, logger Logger) (bool, error) {
	if _, err := os.Lstat(path); err == nil {
		logger.Printf("exists: %s", path)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("check %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	logger.Printf("created: %s", path)
	return true, nil
}

// Logger keeps the subset of log.Logger used locally, enabling easy testing.
type Logger interface {
	Printf(format string, v ...any)
}
