package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"contactcard/internal/config"
)

// ConfigFileName is the optional per-project configuration file.
const ConfigFileName = "contactcard.yaml"

// ProjectPaths captures canonical locations for a contactcard project.
type ProjectPaths struct {
	Root         string
	ConfigFile   string
	InputDir     string
	OutputDir    string
	TemplateFile string
	LogsDir      string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	return ProjectPaths{
		Root:         root,
		ConfigFile:   filepath.Join(root, ConfigFileName),
		InputDir:     filepath.Join(root, "input"),
		OutputDir:    filepath.Join(root, "output"),
		TemplateFile: filepath.Join(root, "templates", "card.html"),
		LogsDir:      filepath.Join(root, "logs"),
	}
}

// ApplyConfig overrides the default locations with those from cfg.
func ApplyConfig(pp ProjectPaths, cfg config.Config) ProjectPaths {
	if dir := strings.TrimSpace(cfg.Paths.InputDir); dir != "" {
		pp.InputDir = resolveProjectPath(pp.Root, dir)
	}
	if dir := strings.TrimSpace(cfg.Paths.OutputDir); dir != "" {
		pp.OutputDir = resolveProjectPath(pp.Root, dir)
	}
	if tmpl := strings.TrimSpace(cfg.Paths.Template); tmpl != "" {
		pp.TemplateFile = resolveProjectPath(pp.Root, tmpl)
	}
	return pp
}

func resolveProjectPath(root, value string) string {
	if filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(root, value)
}

// EnsureRoot makes sure the project root exists on disk.
func (p ProjectPaths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create project root: %w", err)
	}
	return nil
}

// EnsureOutputDir creates the output directory and any missing parents.
func (p ProjectPaths) EnsureOutputDir() error {
	if err := os.MkdirAll(p.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", p.OutputDir, err)
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
