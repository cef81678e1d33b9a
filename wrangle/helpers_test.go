package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var smallInputs = Inputs{
	Instructions: filepath.Join("testdata", "small.yaml"),
	Primary:      filepath.Join("testdata", "small-primary"),
	Secondary:    filepath.Join("testdata", "small-secondary"),
}

var fullInputs = Inputs{
	Instructions: filepath.Join("..", "data", "instructions.yaml"),
	Primary:      filepath.Join("..", "data", "opcodes-primary"),
	Secondary:    filepath.Join("..", "data", "opcodes-secondary"),
}

func loadTestISA(t *testing.T) (*ISA, Diagnostics) {
	t.Helper()
	return loadInputs(t, smallInputs)
}

func loadInputs(t *testing.T, in Inputs) (*ISA, Diagnostics) {
	t.Helper()
	var diags Diagnostics
	isa, err := loadISAMeta(in, &diags)
	require.NoError(t, err)
	return isa, diags
}

// mnemonicSet expands names, failing the test on any diagnostic.
func mnemonicSet(t *testing.T, names ...string) *MnemonicSet {
	t.Helper()
	var diags Diagnostics
	set := expandMnemonics(names, &diags)
	require.Empty(t, diags)
	return set
}

func messages(diags Diagnostics, sev Severity) []string {
	var ret []string
	for _, d := range diags {
		if d.Severity == sev {
			ret = append(ret, d.Message)
		}
	}
	return ret
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
