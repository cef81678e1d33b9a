package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// diffArtifacts compares freshly generated artifacts with what's currently in
// dir and returns a unified diff for each one that differs. A missing file
// diffs as if it were empty.
func diffArtifacts(dir string, arts []Artifact) (string, error) {
	var b strings.Builder
	for _, art := range arts {
		filename := filepath.Join(dir, art.Name)
		existing, err := os.ReadFile(filename)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if string(existing) == string(art.Text) {
			continue
		}

		diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(string(existing)),
			B:        difflib.SplitLines(string(art.Text)),
			FromFile: filename,
			ToFile:   filename + " (generated)",
			Context:  3,
		})
		if err != nil {
			return "", err
		}
		b.WriteString(diff)
	}
	return b.String(), nil
}
