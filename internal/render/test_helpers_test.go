package render

import (
	"os"
	"path/filepath"
	"testing"

	"contactcard/internal/config"
	"contactcard/internal/paths"
)

// newTestProject lays out a project with the default template and the given
// input records (file name -> JSON).
func newTestProject(t *testing.T, inputs map[string]string) (paths.ProjectPaths, config.Config) {
	t.Helper()

	pp, err := paths.Resolve(t.TempDir())
	if err != nil {
		t.Fatalf("resolve paths: %v", err)
	}
	cfg := config.Default()
	cfg.ApplyDefaults()
	pp = paths.ApplyConfig(pp, cfg)

	if err := os.MkdirAll(filepath.Dir(pp.TemplateFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(pp.TemplateFile, []byte(DefaultTemplate), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := os.MkdirAll(pp.InputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, data := range inputs {
		if err := os.WriteFile(filepath.Join(pp.InputDir, name), []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return pp, cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
