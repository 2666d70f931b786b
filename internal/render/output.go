package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ChooseOutputPath returns dir/base.html, or the first free dir/base-N.html
// (N starting at 2) when that file already exists. Existing files are never
// reused.
func ChooseOutputPath(dir, base string) (string, error) {
	candidate := filepath.Join(dir, base+".html")
	for i := 2; ; i++ {
		_, err := os.Lstat(candidate)
		if errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("check output path %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d.html", base, i))
	}
}
