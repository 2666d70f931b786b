package vcard

import (
	"strings"
	"testing"

	"contactcard/pkg/card"
)

func TestBuildNameOnly(t *testing.T) {
	got := Build(card.Record{Name: "Jane Doe"})
	want := "BEGIN:VCARD\nVERSION:3.0\nFN:Jane Doe\nN:Jane Doe;;;\nEND:VCARD"
	if got != want {
		t.Fatalf("unexpected vcard:\n got %q\nwant %q", got, want)
	}
}

func TestBuildMissingNameUsesPlaceholder(t *testing.T) {
	got := Build(card.Record{Email: "anon@example.com"})
	lines := strings.Split(got, "\n")
	if lines[2] != "FN:Unknown" {
		t.Fatalf("expected FN placeholder, got %q", lines[2])
	}
	if lines[3] != "N:Unknown;;;" {
		t.Fatalf("expected N placeholder, got %q", lines[3])
	}
}

func TestBuildAllFields(t *testing.T) {
	rec := card.Record{
		Name:     "Ada Lovelace",
		Title:    "Analyst; Programmer",
		Company:  "Engines, Ltd.",
		Phone:    "+44 20 0000",
		Email:    "ada@example.com",
		Website:  "https://ada.example.com",
		LinkedIn: "https://linkedin.com/in/ada",
		GitHub:   "https://github.com/ada",
		Twitter:  "https://twitter.com/ada",
	}
	want := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"FN:Ada Lovelace",
		"N:Ada Lovelace;;;",
		`TITLE:Analyst\; Programmer`,
		`ORG:Engines\, Ltd.`,
		"TEL;TYPE=WORK:+44 20 0000",
		"EMAIL;TYPE=INTERNET:ada@example.com",
		"URL:https://ada.example.com",
		"URL;X-LABEL=LinkedIn:https://linkedin.com/in/ada",
		"URL;X-LABEL=GitHub:https://github.com/ada",
		"URL;X-LABEL=Twitter:https://twitter.com/ada",
		"END:VCARD",
	}
	got := strings.Split(Build(rec), "\n")
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d:\n%s", len(got), len(want), strings.Join(got, "\n"))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q want %q", i, got[i], want[i])
		}
	}
}

func TestEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"plain", "plain"},
		{`a\b`, `a\\b`},
		{"a;b", `a\;b`},
		{"a,b", `a\,b`},
		{`\;`, `\\\;`},
		{`x\,y;z`, `x\\\,y\;z`},
	}
	for _, tt := range tests {
		if got := Escape(tt.input); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestEscapeRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"Doe, Jane",
		"a;b;c",
		`C:\path\to`,
		`\;;,,\`,
		`trailing\`,
		`\n is not a newline`,
		"Zoë; Ñandú, \\ ✨",
	}
	for _, in := range inputs {
		if got := Unescape(Escape(in)); got != in {
			t.Errorf("round trip %q: got %q", in, got)
		}
	}
}
