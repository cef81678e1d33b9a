package main

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").Option("missingkey=error").ParseFS(templateFS, "templates/*.tmpl"))

const (
	opcodesArtifact = "opcodes.zig"
	disasmArtifact  = "disasm.zig"
)

// Artifact is one generated source file.
type Artifact struct {
	Name string
	Text []byte
}

// AssembleOptions describes how the generated printers refer to the
// decoder's own definitions.
type AssembleOptions struct {
	// Source, if set, is noted in the header of each artifact.
	Source string

	// InstructionImport and InstructionType locate the decoder's physical
	// instruction record, which must have R, I and J views.
	InstructionImport string
	InstructionType   string
}

func (o AssembleOptions) withDefaults() AssembleOptions {
	if o.InstructionImport == "" {
		o.InstructionImport = "instruction.zig"
	}
	if o.InstructionType == "" {
		o.InstructionType = "Instruction"
	}
	return o
}

type opcodesTemplateData struct {
	Source       string
	PrimaryEnum  string
	SubopEnum    string
	OpEnum       string
	ResolveOp    string
	ResolveSubop string
}

type disasmTemplateData struct {
	Source            string
	OpcodesImport     string
	InstructionImport string
	InstructionType   string
	Printers          []string
	UnknownPrinter    string
	Dispatch          string
}

func assembleArtifacts(d *Decls, opts AssembleOptions) ([]Artifact, error) {
	opts = opts.withDefaults()

	opcodes, err := executeTemplate(opcodesArtifact, opcodesTemplateData{
		Source:       opts.Source,
		PrimaryEnum:  renderEnum(d.Primary),
		SubopEnum:    renderEnum(d.Subop),
		OpEnum:       renderEnum(d.Op),
		ResolveOp:    renderResolver(d.ResolveOp),
		ResolveSubop: renderResolver(d.ResolveSub),
	})
	if err != nil {
		return nil, err
	}

	printers := make([]string, len(d.Printers))
	for i, p := range d.Printers {
		printers[i] = renderPrinter(p)
	}
	disasm, err := executeTemplate(disasmArtifact, disasmTemplateData{
		Source:            opts.Source,
		OpcodesImport:     opcodesArtifact,
		InstructionImport: opts.InstructionImport,
		InstructionType:   opts.InstructionType,
		Printers:          printers,
		UnknownPrinter:    renderUnknownPrinter(),
		Dispatch:          renderDispatch(d.Dispatch),
	})
	if err != nil {
		return nil, err
	}

	return []Artifact{
		{Name: opcodesArtifact, Text: opcodes},
		{Name: disasmArtifact, Text: disasm},
	}, nil
}

func executeTemplate(artifact string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, artifact+".tmpl", data); err != nil {
		return nil, fmt.Errorf("failed to assemble %s: %w", artifact, err)
	}
	return buf.Bytes(), nil
}
