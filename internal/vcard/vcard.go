// Package vcard serializes contact records as vCard 3.0 text.
package vcard

import (
	"strings"

	"contactcard/pkg/card"
)

const (
	beginLine   = "BEGIN:VCARD"
	versionLine = "VERSION:3.0"
	endLine     = "END:VCARD"
)

var escaper = strings.NewReplacer(`\`, `\\`, `;`, `\;`, `,`, `\,`)

// Build returns the vCard block for rec. Lines are joined with "\n".
func Build(rec card.Record) string {
	name := Escape(rec.DisplayName())
	lines := []string{
		beginLine,
		versionLine,
		"FN:" + name,
		"N:" + name + ";;;",
	}

	optional := []struct {
		prefix string
		value  string
	}{
		{"TITLE:", rec.Title},
		{"ORG:", rec.Company},
		{"TEL;TYPE=WORK:", rec.Phone},
		{"EMAIL;TYPE=INTERNET:", rec.Email},
		{"URL:", rec.Website},
		{"URL;X-LABEL=LinkedIn:", rec.LinkedIn},
		{"URL;X-LABEL=GitHub:", rec.GitHub},
		{"URL;X-LABEL=Twitter:", rec.Twitter},
	}
	for _, field := range optional {
		if field.value == "" {
			continue
		}
		lines = append(lines, field.prefix+Escape(field.value))
	}

	lines = append(lines, endLine)
	return strings.Join(lines, "\n")
}

// Escape backslash-escapes the characters vCard reserves in property values.
// The replacer scans left to right, so backslashes it inserts are never
// escaped a second time.
func Escape(value string) string {
	return escaper.Replace(value)
}

// Unescape reverses Escape. A backslash before any other character is kept.
func Unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	var b strings.Builder
	b.Grow(len(value))
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == '\\' && i+1 < len(value) {
			switch next := value[i+1]; next {
			case '\\', ';', ',':
				b.WriteByte(next)
				i++
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}
