package svlang

import (
	"regexp"
	"strings"

	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/logger"
)

// fileDecls holds everything harvested from one source file: typedefs and
// module headers, both in declaration order.
type fileDecls struct {
	path    string
	shapes  []*Shape
	modules []*ModuleDecl
}

var (
	typedefRe    = regexp.MustCompile(`\btypedef\b`)
	moduleKwRe   = regexp.MustCompile(`\bmodule\b`)
	packageKwRe  = regexp.MustCompile(`\bpackage\b`)
	endpackageRe = regexp.MustCompile(`\bendpackage\b`)
	endmoduleRe  = regexp.MustCompile(`\bendmodule\b`)
	directionRe  = regexp.MustCompile(`^(input|output|inout)\b`)
)

// parseFile scans one source text and collects its typedefs and module
// headers. The first structural problem stops the scan with a syntax
// diagnostic carrying the file and line.
func parseFile(path, src string) (*fileDecls, error) {
	mask := maskComments(src)
	decls := &fileDecls{path: path}

	if err := checkPackages(path, mask); err != nil {
		return nil, err
	}
	if err := collectTypedefs(decls, path, src, mask); err != nil {
		return nil, err
	}
	if err := collectModules(decls, path, src, mask); err != nil {
		return nil, err
	}
	return decls, nil
}

// checkPackages verifies every package block is closed. Typedefs inside
// packages are harvested by the typedef scan; only the block structure
// needs checking here.
func checkPackages(path, mask string) error {
	opens := packageKwRe.FindAllStringIndex(mask, -1)
	closes := endpackageRe.FindAllStringIndex(mask, -1)
	if len(opens) > len(closes) {
		last := opens[len(opens)-1]
		return errors.NewSyntax(path, lineAt(mask, last[0]), "package without matching endpackage")
	}
	return nil
}

// collectTypedefs finds every typedef in the file, package scope and
// module scope alike, and records its declared shape. Struct and union
// bodies are walked by brace depth; enum typedefs and typedefs whose
// members declare inline anonymous composites are recorded as
// unsupported so the failure surfaces only if a port refers to them.
func collectTypedefs(decls *fileDecls, path, src, mask string) error {
	for _, loc := range typedefRe.FindAllStringIndex(mask, -1) {
		pos := skipSpace(mask, loc[1])
		switch wordAt(mask, pos) {
		case "struct", "union":
			shape, err := parseCompositeTypedef(path, src, mask, pos, wordAt(mask, pos))
			if err != nil {
				return err
			}
			decls.shapes = append(decls.shapes, shape)
		case "enum":
			end := indexTopLevel(mask, pos, len(mask), ';')
			if end == -1 {
				return errors.NewSyntax(path, lineAt(src, loc[0]), "typedef without terminating semicolon")
			}
			if _, name, _ := splitTypeAndName(mask[pos:end]); name != "" {
				decls.shapes = append(decls.shapes, &Shape{Kind: ShapeUnsupported, Name: name})
			}
		default:
			end := indexTopLevel(mask, pos, len(mask), ';')
			if end == -1 {
				return errors.NewSyntax(path, lineAt(src, loc[0]), "typedef without terminating semicolon")
			}
			target, name, _ := splitTypeAndName(mask[pos:end])
			if name == "" {
				return errors.NewSyntax(path, lineAt(src, loc[0]), "typedef missing a type name")
			}
			decls.shapes = append(decls.shapes, &Shape{Kind: ShapeAlias, Name: name, Target: strings.TrimSpace(target)})
		}
	}
	return nil
}

// parseCompositeTypedef parses one `typedef struct|union [packed] { ... }
// name;` starting at the struct/union keyword.
func parseCompositeTypedef(path, src, mask string, pos int, kindWord string) (*Shape, error) {
	open := strings.IndexByte(mask[pos:], '{')
	if open == -1 {
		return nil, errors.NewSyntax(path, lineAt(src, pos), "%s typedef without body", kindWord)
	}
	open += pos
	closing := matchDelim(mask, open, '{', '}')
	if closing == -1 {
		return nil, errors.NewSyntax(path, lineAt(src, open), "unterminated %s body", kindWord)
	}
	namePos := skipSpace(mask, closing+1)
	name := wordAt(mask, namePos)
	if name == "" || strings.Contains(name, ".") {
		return nil, errors.NewSyntax(path, lineAt(src, closing), "%s typedef missing a type name", kindWord)
	}

	members, supported := parseCompositeMembers(src, mask, open+1, closing)
	if !supported {
		logger.Debugw("composite with inline anonymous member recorded as unsupported",
			"type", name, "file", path)
		return &Shape{Kind: ShapeUnsupported, Name: name}, nil
	}
	kind := ShapeStruct
	if kindWord == "union" {
		kind = ShapeUnion
	}
	return &Shape{Kind: kind, Name: name, Members: members}, nil
}

// parseCompositeMembers splits a struct/union body into member
// declarations. Each declaration is `<type> <name>;`, optionally with
// comma-separated declarators sharing one type. A member declaring an
// inline composite makes the whole body unsupported.
func parseCompositeMembers(src, mask string, from, to int) ([]Member, bool) {
	var members []Member
	for _, stmt := range splitTopLevel(mask, from, to, ';') {
		if strings.TrimSpace(mask[stmt.start:stmt.end]) == "" {
			continue
		}
		if strings.ContainsAny(mask[stmt.start:stmt.end], "{}") {
			return nil, false
		}
		declarators := splitTopLevel(mask, stmt.start, stmt.end, ',')
		if len(declarators) == 0 {
			continue
		}
		first := declarators[0]
		typeText, name, nameOff := splitTypeAndName(mask[first.start:first.end])
		if name == "" {
			continue
		}
		nameAbs := -1
		if nameOff >= 0 {
			nameAbs = first.start + nameOff
		}
		desc := describeDecl(src, first.start, stmt.end, to, nameAbs)
		members = append(members, Member{Name: name, TypeText: typeText, Description: desc})
		for _, extra := range declarators[1:] {
			if _, extraName, _ := splitTypeAndName(mask[extra.start:extra.end]); extraName != "" {
				members = append(members, Member{Name: extraName, TypeText: typeText, Description: desc})
			}
		}
	}
	return members, true
}

// collectModules finds every ANSI-style module header and parses its
// parameter and port lists. An import between the module name and the
// port list is a generator-tool convention, not standard syntax, and is
// reported as such.
func collectModules(decls *fileDecls, path, src, mask string) error {
	for _, loc := range moduleKwRe.FindAllStringIndex(mask, -1) {
		pos := skipSpace(mask, loc[1])
		name := wordAt(mask, pos)
		if name == "" {
			return errors.NewSyntax(path, lineAt(src, loc[0]), "module keyword without a name")
		}
		mod := &ModuleDecl{Name: name, File: path}
		pos = skipSpace(mask, pos+len(name))

		if wordAt(mask, pos) == "import" {
			return errors.NewSyntax(path, lineAt(src, pos),
				"import between module name and port list is not standard syntax (generator output? try the genesis2 strategy)")
		}

		if pos < len(mask) && mask[pos] == '#' {
			pos = skipSpace(mask, pos+1)
			if pos >= len(mask) || mask[pos] != '(' {
				return errors.NewSyntax(path, lineAt(src, pos), "module %s: expected ( after #", name)
			}
			end := matchDelim(mask, pos, '(', ')')
			if end == -1 {
				return errors.NewSyntax(path, lineAt(src, pos), "module %s: unterminated parameter list", name)
			}
			params, aliases, err := parseParameterList(path, src, mask, pos+1, end)
			if err != nil {
				return err
			}
			mod.Params = params
			decls.shapes = append(decls.shapes, aliases...)
			pos = skipSpace(mask, end+1)
		}

		if wordAt(mask, pos) == "import" {
			return errors.NewSyntax(path, lineAt(src, pos),
				"import between module name and port list is not standard syntax (generator output? try the genesis2 strategy)")
		}

		if pos < len(mask) && mask[pos] == '(' {
			end := matchDelim(mask, pos, '(', ')')
			if end == -1 {
				return errors.NewSyntax(path, lineAt(src, pos), "module %s: unterminated port list", name)
			}
			ports, err := parsePortList(path, src, mask, pos+1, end)
			if err != nil {
				return err
			}
			mod.Ports = ports
			pos = end + 1
		}

		if endmoduleRe.FindStringIndex(mask[pos:]) == nil {
			return errors.NewSyntax(path, lineAt(src, loc[0]), "module %s: missing endmodule", name)
		}
		decls.modules = append(decls.modules, mod)
	}
	return nil
}

// parseParameterList parses the inside of a #( ... ) header. Each item
// drops its parameter/localparam keyword and splits into declared type
// text, name and default, all kept verbatim. A `parameter type T =
// target` item also yields an alias shape so ports declared with T
// resolve through it.
func parseParameterList(path, src, mask string, from, to int) ([]ParamDecl, []*Shape, error) {
	var params []ParamDecl
	var aliases []*Shape
	for _, seg := range splitTopLevel(mask, from, to, ',') {
		if strings.TrimSpace(mask[seg.start:seg.end]) == "" {
			continue
		}
		declEnd := seg.end
		defaultText := ""
		if eq := indexTopLevel(mask, seg.start, seg.end, '='); eq != -1 {
			declEnd = eq
			defaultText = strings.TrimSpace(mask[eq+1 : seg.end])
		}
		pos := skipSpace(mask, seg.start)
		if w := wordAt(mask, pos); w == "parameter" || w == "localparam" {
			pos = skipSpace(mask, pos+len(w))
		}
		typeText, name, nameOff := splitTypeAndName(mask[pos:declEnd])
		if name == "" {
			return nil, nil, errors.NewSyntax(path, lineAt(src, seg.start), "parameter without a name")
		}
		nameAbs := -1
		if nameOff >= 0 {
			nameAbs = pos + nameOff
		}
		params = append(params, ParamDecl{
			Name:        name,
			TypeText:    typeText,
			Default:     defaultText,
			Description: describeDecl(src, seg.start, seg.end, to, nameAbs),
		})
		if typeText == "type" && identRe.MatchString(defaultText) {
			aliases = append(aliases, &Shape{Kind: ShapeAlias, Name: name, Target: defaultText})
		}
	}
	return params, aliases, nil
}

// parsePortList parses the inside of a module's ( ... ) port list. The
// first segment must carry a direction keyword; later segments without
// one inherit the previous direction. Each port records the raw source
// region around its direction keyword, decoration included, for the
// strategy's direction cleaning, and a trailing same-line comment as its
// description.
func parsePortList(path, src, mask string, from, to int) ([]PortDecl, error) {
	var ports []PortDecl
	lastDirection := ""
	for i, seg := range splitTopLevel(mask, from, to, ',') {
		if strings.TrimSpace(mask[seg.start:seg.end]) == "" {
			continue
		}
		pos := skipSpace(mask, seg.start)
		direction := ""
		rawEnd := pos
		if m := directionRe.FindString(mask[pos:]); m != "" {
			direction = m
			rawEnd = consumeDirectionDecoration(mask, pos+len(m), seg.end)
		} else if i == 0 {
			return nil, errors.NewSyntax(path, lineAt(src, seg.start),
				"first port has no direction; non-ANSI port declarations are not supported")
		}
		inherited := direction == ""
		if inherited {
			direction = lastDirection
		}
		lastDirection = direction

		declEnd := seg.end
		defaultText := ""
		if eq := indexTopLevel(mask, rawEnd, seg.end, '='); eq != -1 {
			declEnd = eq
			defaultText = strings.TrimSpace(mask[eq+1 : seg.end])
		}
		typeText, name, nameOff := splitTypeAndName(mask[rawEnd:declEnd])
		if name == "" {
			return nil, errors.NewSyntax(path, lineAt(src, seg.start), "port without a name")
		}
		nameAbs := -1
		if nameOff >= 0 {
			nameAbs = rawEnd + nameOff
		}

		ports = append(ports, PortDecl{
			Name:         name,
			Direction:    direction,
			DirectionRaw: src[seg.start:rawEnd],
			Inherited:    inherited,
			TypeText:     typeText,
			DefaultValue: defaultText,
			Description:  describeDecl(src, seg.start, seg.end, to, nameAbs),
		})
	}
	return ports, nil
}

// consumeDirectionDecoration advances past the tokens that belong to the
// direction region rather than the type: the injected var keyword and
// interface.modport qualifiers (the only identifiers here containing a
// dot). Comment decoration is already blanked in the mask, so plain
// space skipping covers it. Stops at the first real type token.
func consumeDirectionDecoration(mask string, pos, end int) int {
	for {
		next := skipSpace(mask, pos)
		if next >= end {
			return pos
		}
		w := wordAt(mask, next)
		switch {
		case w == "var":
			pos = next + len(w)
		case w != "" && strings.Contains(w, "."):
			pos = next + len(w)
		default:
			return pos
		}
	}
}
