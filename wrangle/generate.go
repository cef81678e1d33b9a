package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// generate runs everything after loading: encoding checks, building the
// declarations and assembling them into artifacts. Problems that don't stop
// generation are added to diags.
func generate(isa *ISA, opts AssembleOptions, diags *Diagnostics) ([]Artifact, error) {
	checkEncodings(isa, diags)

	decls, err := buildDecls(isa, diags)
	if err != nil {
		return nil, fmt.Errorf("failed to build declarations: %w", err)
	}
	return assembleArtifacts(decls, opts)
}

func writeArtifacts(dir string, arts []Artifact, logger *slog.Logger) error {
	err := os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return err
	}
	for _, art := range arts {
		filename := filepath.Join(dir, art.Name)
		if err := os.WriteFile(filename, art.Text, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", filename, err)
		}
		logger.Debug("wrote artifact", "file", filename, "bytes", len(art.Text))
	}
	return nil
}
