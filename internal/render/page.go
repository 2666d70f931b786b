package render

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"

	"contactcard/pkg/card"
)

// DefaultTemplate is the stock business card layout written by `init`.
//
//go:embed assets/card.html
var DefaultTemplate string

// ErrTemplate matches every *TemplateError.
var ErrTemplate = errors.New("template error")

// TemplateError reports a page template that is missing, unreadable,
// malformed or fails to execute.
type TemplateError struct {
	Path string
	Err  error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template %s: %v", e.Path, e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Is lets errors.Is match TemplateError against ErrTemplate.
func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// View is the data handed to the page template. Optional fields are empty
// strings when absent; the template decides whether to hide them.
type View struct {
	Name     string
	Title    string
	Company  string
	Email    string
	Phone    string
	Website  string
	LinkedIn string
	GitHub   string
	Twitter  string
	// QRCode is the embedded PNG data URI, typed so html/template keeps it
	// intact inside src attributes.
	QRCode template.URL
}

// NewView builds the template data for rec and its QR data URI.
func NewView(rec card.Record, qrDataURI string) View {
	return View{
		Name:     rec.DisplayName(),
		Title:    rec.Title,
		Company:  rec.Company,
		Email:    rec.Email,
		Phone:    rec.Phone,
		Website:  rec.Website,
		LinkedIn: rec.LinkedIn,
		GitHub:   rec.GitHub,
		Twitter:  rec.Twitter,
		QRCode:   template.URL(qrDataURI),
	}
}

// Template is a parsed page template.
type Template struct {
	path string
	tmpl *template.Template
}

// LoadTemplate reads and parses the page template at path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: err}
	}
	return ParseTemplate(path, string(data))
}

// ParseTemplate parses template text; name is used in error messages.
func ParseTemplate(name, text string) (*Template, error) {
	tmpl, err := template.New(filepath.Base(name)).Parse(text)
	if err != nil {
		return nil, &TemplateError{Path: name, Err: err}
	}
	return &Template{path: name, tmpl: tmpl}, nil
}

// Execute renders the page for v into w.
func (t *Template) Execute(w io.Writer, v View) error {
	if err := t.tmpl.Execute(w, v); err != nil {
		return &TemplateError{Path: t.path, Err: err}
	}
	return nil
}

// WriteFile renders the page and writes it to path, replacing any existing
// file. It returns the number of bytes written.
func (t *Template) WriteFile(path string, v View) (int, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return 0, err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return 0, fmt.Errorf("write page: %w", err)
	}
	return buf.Len(), nil
}
