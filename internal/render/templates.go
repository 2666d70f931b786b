package render

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"contactcard/pkg/card"
)

// DefaultFallbackName is used when neither the record nor its file yields a
// usable name.
const DefaultFallbackName = "card"

// NameOptions controls how an output base name is derived.
type NameOptions struct {
	// Template is an optional $TOKEN filename template, e.g. "$COMPANY_$NAME".
	Template string
	// Fallback is the last-resort base name.
	Fallback string
}

// BaseName derives the output file base name (without extension) for a
// record. It tries the filename template, then the record name, then the
// input file stem and finally the fallback name.
func BaseName(rec card.Record, inputPath string, index int, opts NameOptions) string {
	if tmpl := strings.TrimSpace(opts.Template); tmpl != "" {
		values := filenameTemplateValues(rec, inputPath, index)
		if base := Slugify(applyFilenameTemplate(tmpl, values)); base != "" {
			return base
		}
	}
	if base := Slugify(rec.Name); base != "" {
		return base
	}
	if base := Slugify(fileStem(inputPath)); base != "" {
		return base
	}
	if base := Slugify(opts.Fallback); base != "" {
		return base
	}
	return DefaultFallbackName
}

// ValidFilenameTokens lists the $TOKEN names understood by filename templates.
func ValidFilenameTokens() []string {
	values := filenameTemplateValues(card.Record{}, "", 0)
	tokens := make([]string, 0, len(values))
	for k := range values {
		tokens = append(tokens, k)
	}
	sort.Strings(tokens)
	return tokens
}

func fileStem(path string) string {
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func filenameTemplateValues(rec card.Record, inputPath string, index int) map[string]string {
	return map[string]string{
		"NAME":       Slugify(rec.Name),
		"TITLE":      Slugify(rec.Title),
		"COMPANY":    Slugify(rec.Company),
		"STEM":       Slugify(fileStem(inputPath)),
		"INDEX":      fmt.Sprintf("%03d", index),
		"INDEX_PAD2": fmt.Sprintf("%02d", index),
		"INDEX_RAW":  strconv.Itoa(index),
	}
}

func applyFilenameTemplate(template string, values map[string]string) string {
	var builder strings.Builder
	for i := 0; i < len(template); {
		ch := template[i]
		if ch != '$' {
			builder.WriteByte(ch)
			i++
			continue
		}

		if i+1 < len(template) && template[i+1] == '$' {
			builder.WriteByte('$')
			i += 2
			continue
		}

		j := i + 1
		for j < len(template) {
			c := template[j]
			if isAlnum(c) {
				j++
				continue
			}
			if c == '_' && j+1 < len(template) && isAlnum(template[j+1]) {
				j++
				continue
			}
			break
		}

		if j == i+1 {
			builder.WriteByte('$')
			i++
			continue
		}

		token := template[i+1 : j]
		if val, ok := values[token]; ok {
			builder.WriteString(val)
		}
		i = j
	}
	return builder.String()
}

func isAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}
