package main

import (
	"fmt"
	"strings"
)

// Rendering of declarations as Zig source, laid out the way zig fmt would.

func renderEnumMember(m EnumMember) string {
	if m.Value == nil {
		return m.Name
	}
	return fmt.Sprintf("%s = %d", m.Name, uint8(*m.Value))
}

func renderSwitchArm(enum string, arm SwitchArm) string {
	return fmt.Sprintf("%s => %s.%s,", arm.Value, enum, arm.Result)
}

func renderDocComment(w *strings.Builder, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(doc, "\n") {
		fmt.Fprintf(w, "/// %s\n", line)
	}
}

func renderEnum(decl EnumDecl) string {
	var w strings.Builder
	renderDocComment(&w, decl.Doc)
	fmt.Fprintf(&w, "pub const %s = enum(%s) {\n", decl.Name, decl.Backing)
	for _, m := range decl.Members {
		fmt.Fprintf(&w, "    %s,\n", renderEnumMember(m))
	}
	w.WriteString("};\n")
	return w.String()
}

func renderResolver(decl ResolverDecl) string {
	var w strings.Builder
	fmt.Fprintf(&w, "pub fn %s(v: u6) %s {\n", decl.Name, decl.Enum)
	w.WriteString("    return switch (v) {\n")
	for _, arm := range decl.Arms {
		fmt.Fprintf(&w, "        %s\n", renderSwitchArm(decl.Enum, arm))
	}
	if decl.Fallback != "" {
		fmt.Fprintf(&w, "        else => %s.%s,\n", decl.Enum, decl.Fallback)
	}
	w.WriteString("    };\n")
	w.WriteString("}\n")
	return w.String()
}

func renderPrinter(decl PrinterDecl) string {
	var w strings.Builder
	fmt.Fprintf(&w, "/// Prints the %s encoding group (%s).\n", decl.Group, decl.Layout.Description())
	fmt.Fprintf(&w, "fn %s(w: anytype, i: Instruction, o: op) !void {\n", decl.Name)
	if len(decl.Fields) == 0 {
		w.WriteString("    _ = i;\n")
		fmt.Fprintf(&w, "    try w.print(%s, .{@tagName(o)});\n", zigString(decl.Format))
	} else {
		args := make([]string, 0, len(decl.Fields)+1)
		args = append(args, "@tagName(o)")
		for _, f := range decl.Fields {
			args = append(args, f.Expr())
		}
		fmt.Fprintf(&w, "    try w.print(%s, .{ %s });\n", zigString(decl.Format), strings.Join(args, ", "))
	}
	w.WriteString("}\n")
	return w.String()
}

func renderUnknownPrinter() string {
	var w strings.Builder
	w.WriteString("/// Prints any variant that has no encoding group.\n")
	fmt.Fprintf(&w, "fn %s(w: anytype, i: Instruction, o: op) !void {\n", unknownPrinter)
	w.WriteString("    _ = i;\n")
	w.WriteString("    try w.print(\"{s} <unknown>\", .{@tagName(o)});\n")
	w.WriteString("}\n")
	return w.String()
}

func renderDispatch(decl DispatchDecl) string {
	var w strings.Builder
	fmt.Fprintf(&w, "pub fn %s(w: anytype, i: Instruction, o: op) !void {\n", decl.Name)
	w.WriteString("    return switch (o) {\n")
	for _, route := range decl.Routes {
		variants := make([]string, len(route.Variants))
		for i, v := range route.Variants {
			variants[i] = "." + v
		}
		fmt.Fprintf(&w, "        %s => %s(w, i, o),\n", strings.Join(variants, ", "), route.Printer)
	}
	if decl.Fallback != "" {
		fmt.Fprintf(&w, "        else => %s(w, i, o),\n", decl.Fallback)
	}
	w.WriteString("    };\n")
	w.WriteString("}\n")
	return w.String()
}

var zigStringEscapes = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func zigString(s string) string {
	return `"` + zigStringEscapes.Replace(s) + `"`
}
