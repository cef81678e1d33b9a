package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

type rootFlags struct {
	inputs  Inputs
	strict  bool
	verbose bool
}

func (f *rootFlags) logger(stderr io.Writer) *slog.Logger {
	lvl := slog.LevelInfo
	if f.verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))
}

// load reads the instruction set description, logging whatever the loader
// reports along the way.
func (f *rootFlags) load(logger *slog.Logger, diags *Diagnostics) (*ISA, error) {
	logger.Debug("loading instruction set",
		"instructions", f.inputs.Instructions,
		"primary", f.inputs.Primary,
		"secondary", f.inputs.Secondary,
	)
	return loadISAMeta(f.inputs, diags)
}

// finish logs the diagnostics and, in strict mode, fails on any warning.
func (f *rootFlags) finish(logger *slog.Logger, diags Diagnostics) error {
	diags.Log(logger)
	threshold := SeverityError
	if f.strict {
		threshold = SeverityWarning
	}
	return diags.Err(threshold)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		Use:          "wrangle",
		Short:        "Generate an R3000 disassembler from opcode tables",
		SilenceUsage: true,
	}
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.inputs.Instructions, "instructions", "data/instructions.yaml", "instruction list and encoding tables")
	pf.StringVar(&flags.inputs.Primary, "primary", "data/opcodes-primary", "primary opcode grid")
	pf.StringVar(&flags.inputs.Secondary, "secondary", "data/opcodes-secondary", "secondary (funct) opcode grid")
	pf.BoolVar(&flags.strict, "strict", false, "fail if any warnings are reported")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "log progress")

	rootCmd.AddCommand(
		newGenerateCmd(flags, stdout, stderr),
		newCheckCmd(flags, stdout, stderr),
		newTreeCmd(flags, stdout, stderr),
		newDumpCmd(flags, stdout, stderr),
	)
	return rootCmd
}

func newGenerateCmd(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	var (
		outDir string
		check  bool
		opts   AssembleOptions
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the opcode and printer sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.logger(stderr)
			var diags Diagnostics

			isa, err := flags.load(logger, &diags)
			if err != nil {
				diags.Log(logger)
				return err
			}
			opts.Source = filepath.Base(flags.inputs.Instructions)
			arts, err := generate(isa, opts, &diags)
			if err != nil {
				diags.Log(logger)
				return err
			}
			if err := flags.finish(logger, diags); err != nil {
				return err
			}

			if check {
				diff, err := diffArtifacts(outDir, arts)
				if err != nil {
					return err
				}
				if diff != "" {
					fmt.Fprint(stdout, diff)
					return fmt.Errorf("generated sources in %s are out of date", outDir)
				}
				logger.Debug("generated sources are up to date", "dir", outDir)
				return nil
			}
			return writeArtifacts(outDir, arts, logger)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", filepath.Join("generated", "zig"), "directory to write into")
	cmd.Flags().BoolVar(&check, "check", false, "compare with the existing files instead of writing")
	cmd.Flags().StringVar(&opts.InstructionImport, "instruction-import", "instruction.zig", "import path of the decoder's instruction record")
	cmd.Flags().StringVar(&opts.InstructionType, "instruction-type", "Instruction", "type name of the decoder's instruction record")
	return cmd
}

func newCheckCmd(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report instructions without an encoding and other table drift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.logger(stderr)
			var diags Diagnostics

			isa, err := flags.load(logger, &diags)
			if err != nil {
				diags.Log(logger)
				return err
			}
			checkEncodings(isa, &diags)

			missing := missingEncodings(isa.Instructions, isa.groupMembership())
			if len(missing) > 0 {
				fmt.Fprintf(stdout, "The following instructions don't have an encoding: %v\n", missing)
			}
			fmt.Fprintln(stdout, summarizeSlots("primary", isa.Primary))
			fmt.Fprintln(stdout, summarizeSlots("secondary", isa.Secondary))
			return flags.finish(logger, diags)
		},
	}
}

func newTreeCmd(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Print the encoding groups as a tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.logger(stderr)
			var diags Diagnostics

			isa, err := flags.load(logger, &diags)
			if err != nil {
				diags.Log(logger)
				return err
			}
			fmt.Fprint(stdout, isaTree(isa).String())
			return flags.finish(logger, diags)
		},
	}
}

func newDumpCmd(flags *rootFlags, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Dump the loaded instruction set model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := flags.logger(stderr)
			var diags Diagnostics

			isa, err := flags.load(logger, &diags)
			if err != nil {
				diags.Log(logger)
				return err
			}
			spew.Fdump(stdout, isa)
			return flags.finish(logger, diags)
		},
	}
}
