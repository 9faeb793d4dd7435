// Package svlang is a scanning SystemVerilog front-end for interface
// extraction. It recognizes the subset the documentation pipeline needs:
// package blocks, struct/union/alias typedefs, and ANSI module headers
// with their parameter and port lists. Module bodies are not elaborated.
//
// The package stands behind the extraction engine's compilation-unit
// contract, so a full language front-end could replace it without
// touching the engine.
package svlang

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/logger"
)

// scalarBases are the net and variable types the subset recognizes as
// scalar/vector bases.
var scalarBases = map[string]bool{
	"logic": true, "wire": true, "reg": true, "bit": true, "var": true,
	"byte": true, "shortint": true, "int": true, "longint": true,
	"integer": true, "time": true, "real": true, "realtime": true,
	"shortreal": true,
}

// Source is one input to a compilation: a path for diagnostics and the
// text to scan (already strategy-cleaned by the caller).
type Source struct {
	Path string
	Text string
}

// Unit is one compiled design: every module and named type from the
// given sources, merged into flat symbol tables.
type Unit struct {
	modules     []*ModuleDecl
	moduleIndex map[string]*ModuleDecl
	types       map[string]*Shape
}

// Compile scans the given sources into a single unit. Sources are
// processed in order, the main file conventionally first; the first
// definition of a type name wins and later duplicates are skipped. The
// first syntax problem aborts compilation with a diagnostic carrying the
// file and line.
func Compile(sources ...Source) (*Unit, error) {
	unit := &Unit{
		moduleIndex: make(map[string]*ModuleDecl),
		types:       make(map[string]*Shape),
	}
	for _, source := range sources {
		decls, err := parseFile(source.Path, source.Text)
		if err != nil {
			return nil, err
		}
		for _, shape := range decls.shapes {
			if _, ok := unit.types[shape.Name]; ok {
				logger.Debugw("duplicate type definition skipped", "type", shape.Name, "file", source.Path)
				continue
			}
			unit.types[shape.Name] = shape
		}
		for _, mod := range decls.modules {
			if _, ok := unit.moduleIndex[mod.Name]; ok {
				logger.Debugw("duplicate module definition skipped", "module", mod.Name, "file", source.Path)
				continue
			}
			unit.modules = append(unit.modules, mod)
			unit.moduleIndex[mod.Name] = mod
		}
		logger.Debugw("compiled source", "file", source.Path,
			"modules", len(decls.modules), "types", len(decls.shapes))
	}
	return unit, nil
}

// Module returns the named module's declaration.
func (u *Unit) Module(name string) (*ModuleDecl, bool) {
	mod, ok := u.moduleIndex[name]
	return mod, ok
}

// ModuleNames lists the declared modules in source order.
func (u *Unit) ModuleNames() []string {
	names := make([]string, len(u.modules))
	for i, mod := range u.modules {
		names[i] = mod.Name
	}
	return names
}

// Shape resolves declared type text to its shape. Pure scalar/vector
// text yields a scalar shape with base, signedness and packed range. A
// single type name resolves through the typedef table; an unknown name
// still yields an opaque scalar shape carrying the name, so a type from
// an unresolved package renders by name instead of failing the run.
// Returns false when the text cannot be interpreted at all.
func (u *Unit) Shape(typeText string) (*Shape, bool) {
	tokens := typeTokenRe.FindAllString(typeText, -1)

	base := ""
	named := ""
	signed := false
	var ranges []string
	for _, tok := range tokens {
		switch {
		case strings.HasPrefix(tok, "["):
			ranges = append(ranges, tok)
		case tok == "signed":
			signed = true
		case tok == "unsigned":
			// default; nothing to record
		case scalarBases[tok]:
			base = tok
		case identRe.MatchString(tok) && identRe.FindString(tok) == tok:
			if named != "" {
				return nil, false
			}
			named = tok
		default:
			return nil, false
		}
	}
	bitRange := strings.Join(ranges, " ")

	if named != "" {
		if shape, ok := u.types[named]; ok {
			return shape, true
		}
		return &Shape{Kind: ShapeScalar, Name: named, BitRange: bitRange, Signed: signed}, true
	}
	if base == "" || base == "var" {
		// Direction with no explicit type, or a bare range: logic is
		// the implicit base.
		base = "logic"
	}
	return &Shape{Kind: ShapeScalar, Name: base, BitRange: bitRange, Signed: signed}, true
}

// ResolvePackages maps package names to `<name>.sv` files found in the
// search directories, keeping import order. A package without a matching
// file is skipped with a debug log rather than reported: its types may
// never be referenced, and if they are, they still render by name.
func ResolvePackages(names []string, searchDirs []string) []string {
	var files []string
	for _, name := range names {
		found := ""
		for _, dir := range searchDirs {
			candidate := filepath.Join(dir, name+".sv")
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				found = candidate
				break
			}
		}
		if found == "" {
			logger.Debugw("package file not found", "package", name, "searched", searchDirs)
			continue
		}
		logger.Debugw("package resolved", "package", name, "file", found)
		files = append(files, found)
	}
	return files
}

// LoadSources reads the given files into compilation sources, applying
// clean to each text. A read failure is classified as a source-read
// error.
func LoadSources(paths []string, clean func(string) string) ([]Source, error) {
	sources := make([]Source, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "reading %s", path), errors.ErrSourceRead)
		}
		text := string(data)
		if clean != nil {
			text = clean(text)
		}
		sources = append(sources, Source{Path: path, Text: text})
	}
	return sources, nil
}
