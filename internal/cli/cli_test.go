package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"contactcard/internal/config"
	"contactcard/internal/render"
	"contactcard/pkg/card"
)

const adaJSON = `{"name":"Ada Lovelace","title":"Analyst","company":"Analytical Engines","email":"ada@example.com"}`

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func newCLIProject(t *testing.T, inputs map[string]string) string {
	t.Helper()
	root := t.TempDir()

	inputDir := filepath.Join(root, "input")
	if err := os.MkdirAll(inputDir, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, body := range inputs {
		if err := os.WriteFile(filepath.Join(inputDir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	tmpl := filepath.Join(root, "templates", "card.html")
	if err := os.MkdirAll(filepath.Dir(tmpl), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(tmpl, []byte(render.DefaultTemplate), 0o644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestGeneratePlain(t *testing.T) {
	root := newCLIProject(t, map[string]string{"ada.json": adaJSON})

	out, err := runCLI(t, "--project", root)
	if err != nil {
		t.Fatalf("generate: %v\n%s", err, out)
	}
	for _, want := range []string{"Found 1 JSON file(s)", "Loaded card for: Ada Lovelace", "Done!"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}

	page, err := os.ReadFile(filepath.Join(root, "output", "ada_lovelace.html"))
	if err != nil {
		t.Fatalf("read page: %v", err)
	}
	for _, want := range []string{"ada@example.com", "data:image/png;base64,"} {
		if !strings.Contains(string(page), want) {
			t.Fatalf("page missing %q", want)
		}
	}

	entries, err := os.ReadDir(filepath.Join(root, "logs"))
	if err != nil || len(entries) == 0 {
		t.Fatalf("expected a log file, err=%v entries=%d", err, len(entries))
	}
}

func TestGenerateSubcommandWithKeepGoing(t *testing.T) {
	root := newCLIProject(t, map[string]string{
		"a.json": adaJSON,
		"b.json": `{"name": `,
		"c.json": `{"name":"Jane Doe"}`,
	})

	out, err := runCLI(t, "generate", "--project", root, "--keep-going")
	if err == nil {
		t.Fatalf("expected failure summary error")
	}
	if !strings.Contains(out, "completed: 2 generated, 1 failed") {
		t.Fatalf("missing summary:\n%s", out)
	}
	for _, name := range []string{"ada_lovelace.html", "jane_doe.html"} {
		if _, err := os.Stat(filepath.Join(root, "output", name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}

func TestGenerateMissingInput(t *testing.T) {
	root := t.TempDir()

	_, err := runCLI(t, "--project", root)
	if !errors.Is(err, card.ErrInputNotFound) {
		t.Fatalf("expected ErrInputNotFound, got %v", err)
	}
}

func TestGenerateMissingTemplate(t *testing.T) {
	root := newCLIProject(t, map[string]string{"ada.json": adaJSON})
	if err := os.Remove(filepath.Join(root, "templates", "card.html")); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "--project", root)
	if !errors.Is(err, render.ErrTemplate) {
		t.Fatalf("expected ErrTemplate, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "output", "ada_lovelace.html")); statErr == nil {
		t.Fatalf("no page should be written without a template")
	}
}

func TestGenerateJSON(t *testing.T) {
	root := newCLIProject(t, map[string]string{"ada.json": adaJSON})

	out, err := runCLI(t, "--project", root, "--json")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	var payload struct {
		Results []generateJSONResult `json:"results"`
		Summary generateJSONSummary  `json:"summary"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode json: %v\n%s", err, out)
	}
	if payload.Summary.Generated != 1 || payload.Summary.Failed != 0 {
		t.Fatalf("unexpected summary %+v", payload.Summary)
	}
	if got := filepath.Base(payload.Results[0].OutputPath); got != "ada_lovelace.html" {
		t.Fatalf("output path = %s", got)
	}
	if payload.Results[0].Name != "Ada Lovelace" {
		t.Fatalf("name = %q", payload.Results[0].Name)
	}
}

func TestValidate(t *testing.T) {
	root := newCLIProject(t, map[string]string{
		"a.json": adaJSON,
		"b.json": `{"name": 42}`,
	})

	out, err := runCLI(t, "validate", "--project", root)
	if err == nil {
		t.Fatalf("expected validation failure")
	}
	if !strings.Contains(out, "ada_lovelace.html") {
		t.Fatalf("expected planned output name:\n%s", out)
	}
	if !strings.Contains(out, "error") {
		t.Fatalf("expected error row:\n%s", out)
	}
	if _, statErr := os.Stat(filepath.Join(root, "output")); statErr == nil {
		t.Fatalf("validate must not create output")
	}
}

func TestValidateClean(t *testing.T) {
	root := newCLIProject(t, map[string]string{"a.json": adaJSON})

	if out, err := runCLI(t, "validate", "--project", root); err != nil {
		t.Fatalf("validate: %v\n%s", err, out)
	}
}

func TestInspect(t *testing.T) {
	root := newCLIProject(t, map[string]string{"ada.json": adaJSON})
	pngPath := filepath.Join(t.TempDir(), "ada.png")

	out, err := runCLI(t, "inspect", filepath.Join(root, "input", "ada.json"), "--project", root, "--png", pngPath)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if !strings.Contains(out, "email:") || !strings.Contains(out, "ada@example.com") {
		t.Fatalf("expected parsed fields:\n%s", out)
	}
	if strings.Index(out, "company:") > strings.Index(out, "BEGIN:VCARD") {
		t.Fatalf("fields should precede the vcard:\n%s", out)
	}
	if !strings.Contains(out, "FN:Ada Lovelace\nN:Ada Lovelace;;;\n") {
		t.Fatalf("unexpected vcard:\n%s", out)
	}

	data, err := os.ReadFile(pngPath)
	if err != nil {
		t.Fatalf("read png: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Fatalf("expected PNG signature")
	}
}

func TestConfigShow(t *testing.T) {
	root := t.TempDir()
	cfg := "qr:\n  level: high\n"
	if err := os.WriteFile(filepath.Join(root, "contactcard.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "config", "show", "--project", root)
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, "level: high") {
		t.Fatalf("expected configured level:\n%s", out)
	}
	if !strings.Contains(out, "box_size: 10") {
		t.Fatalf("expected defaulted box size:\n%s", out)
	}
}

func TestValidateMalformedTemplate(t *testing.T) {
	root := newCLIProject(t, map[string]string{"a.json": adaJSON})
	tmpl := filepath.Join(root, "templates", "card.html")
	if err := os.WriteFile(tmpl, []byte("<h1>{{if .Name}</h1>"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "validate", "--project", root)
	if err == nil {
		t.Fatalf("expected validation failure for malformed template:\n%s", out)
	}
	if !strings.Contains(out, "config error: template") {
		t.Fatalf("expected template finding:\n%s", out)
	}
}

func TestValidateTemplateIsDirectory(t *testing.T) {
	root := newCLIProject(t, map[string]string{"a.json": adaJSON})
	tmpl := filepath.Join(root, "templates", "card.html")
	if err := os.Remove(tmpl); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(tmpl, 0o755); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "validate", "--project", root)
	if err == nil {
		t.Fatalf("expected validation failure:\n%s", out)
	}
	if !strings.Contains(out, "is not a regular file") {
		t.Fatalf("expected not-a-file finding:\n%s", out)
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	root := newCLIProject(t, map[string]string{"a.json": adaJSON})
	cfg := "qr:\n  box_size: -5\n  border: -3\n"
	if err := os.WriteFile(filepath.Join(root, "contactcard.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := runCLI(t, "--project", root)
	if !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(root, "output")); statErr == nil {
		t.Fatal("no output should be written for an invalid config")
	}

	if _, err := runCLI(t, "validate", "--project", root); err == nil {
		t.Fatal("validate should reject the same config")
	}
}
