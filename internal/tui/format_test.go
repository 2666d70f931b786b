package tui

import (
	"testing"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

func TestNonEmptyOrDash(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", "-"},
		{"   ", "-"},
		{"Ada", "Ada"},
		{" Ada ", "Ada"},
	}
	for _, tt := range tests {
		if got := NonEmptyOrDash(tt.in); got != tt.want {
			t.Errorf("NonEmptyOrDash(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"ada_lovelace.html", 10, "ada_lov..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"Zoë Müller-Lüdenscheidt", 10, "Zoë Mül..."},
		{"李小龙 Bruce Lee", 6, "李..."},
		{"李小龙", 5, "李..."},
		{"李小龙", 2, "李"},
	}
	for _, tt := range tests {
		if got := TruncateWithEllipsis(tt.in, tt.max); got != tt.want {
			t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestMarqueeText(t *testing.T) {
	if got := marqueeText("short", 10, 3); got != "short" {
		t.Fatalf("text that fits should not scroll, got %q", got)
	}
	if got := marqueeText("abcdefgh", 4, 0); got != "abcd" {
		t.Fatalf("tick 0 = %q", got)
	}
	if got := marqueeText("abcdefgh", 4, 2); got != "cdef" {
		t.Fatalf("tick 2 = %q", got)
	}
	// 8 chars + 3 gap = 11; tick 11 wraps to the start.
	if got := marqueeText("abcdefgh", 4, 11); got != "abcd" {
		t.Fatalf("tick 11 = %q", got)
	}
	if got := marqueeText("abcdefgh", 0, 0); got != "" {
		t.Fatalf("zero width = %q", got)
	}
}

func TestPadUsesDisplayWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  int
	}{
		{"Zoë", 6, 6},
		{"李小龙", 8, 8},
		{"too long", 3, 8},
	}
	for _, tt := range tests {
		if got := runewidth.StringWidth(pad(tt.in, tt.width)); got != tt.want {
			t.Errorf("pad(%q, %d) width = %d, want %d", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestMarqueeTextKeepsRunesWhole(t *testing.T) {
	text := "Zoë Müller Ñandú 李小龙"
	for tick := 0; tick < 40; tick++ {
		got := marqueeText(text, 8, tick)
		if !utf8.ValidString(got) {
			t.Fatalf("tick %d produced invalid UTF-8 %q", tick, got)
		}
		if w := runewidth.StringWidth(got); w > 8 {
			t.Fatalf("tick %d width %d exceeds 8: %q", tick, w, got)
		}
	}
	if got := marqueeText("Zoë Müller", 4, 2); got != "ë Mü" {
		t.Fatalf("tick 2 = %q", got)
	}
}
