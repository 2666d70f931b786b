package tui

import (
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-isatty"
)

// OutputMode selects how `generate` reports progress.
type OutputMode int

const (
	// ModeTUI redraws a live table of records.
	ModeTUI OutputMode = iota
	// ModePlain prints line-oriented progress as each record is processed.
	ModePlain
	// ModeJSON prints one JSON document once the batch is over.
	ModeJSON
)

func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeJSON:
		return "json"
	default:
		return "plain"
	}
}

// DetectMode picks JSON when requested, the live table when out is an
// interactive terminal, and plain lines otherwise.
func DetectMode(out io.Writer, noProgress, jsonOutput bool) OutputMode {
	switch {
	case jsonOutput:
		return ModeJSON
	case noProgress:
		return ModePlain
	}

	file, ok := out.(*os.File)
	if !ok || !isTerminal(file) {
		return ModePlain
	}
	if runtime.GOOS != "windows" {
		term := os.Getenv("TERM")
		if term == "" || strings.EqualFold(term, "dumb") {
			return ModePlain
		}
	}
	return ModeTUI
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
