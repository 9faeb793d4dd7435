package strategy

import (
	"regexp"
	"strings"

	"github.com/example/svchef/internal/logger"
)

func init() {
	Registry.Register("genesis2", func() Strategy { return &Genesis2{} })
}

// Genesis2 adapts RTL emitted by the Genesis2 generator. Generated files
// carry scaffolding that is not standard SystemVerilog: debug-signal
// injection regions fenced by `// DBG:` markers, `var` keywords injected
// into port declarations, and import statements placed between the
// module name and the port list. CleanSource removes or relocates all of
// it; CleanDirectionText strips the generator's decoration from port
// direction text.
type Genesis2 struct{}

var (
	dbgBeginRe = regexp.MustCompile(`^// DBG: begin\b`)
	dbgEndRe   = regexp.MustCompile(`^// DBG: end\b`)
	dbgLineRe  = regexp.MustCompile(`^// DBG:`)

	// A wildcard package import, the only statement kept when a debug
	// region is dropped.
	regionImportRe = regexp.MustCompile(`^import\s+[A-Za-z_]\w*\s*::\s*\*\s*;`)

	importRe = regexp.MustCompile(`\bimport\s+([A-Za-z_]\w*)\s*::`)

	// Imports wedged between the module name and its parameter or port
	// list, the Genesis2 header convention.
	headerImportsRe = regexp.MustCompile(`(\bmodule\s+[A-Za-z_]\w*)(\s*)((?:\bimport\s+[A-Za-z_]\w*\s*::\s*(?:\*|[A-Za-z_]\w*)\s*;\s*)+)`)

	injectedVarRe     = regexp.MustCompile(`\b(input|output|inout)\s+var\b`)
	continuationVarRe = regexp.MustCompile(`(,\s*)var\b\s*`)

	annotationQualifierRe = regexp.MustCompile(`ports\s+for\s+interface\s+'([^']*)'`)
	varTokenRe            = regexp.MustCompile(`\bvar\b`)
)

// CleanSource removes Genesis2 scaffolding: debug regions (keeping any
// package imports inside them), standalone debug comment lines, injected
// var keywords, and header-position imports, which are hoisted to file
// scope so the header reads as a plain ANSI module declaration.
func (g *Genesis2) CleanSource(raw string) string {
	text := g.stripDebugScaffolding(raw)
	text = headerImportsRe.ReplaceAllString(text, "${3}\n${1}${2}")
	text = injectedVarRe.ReplaceAllString(text, "${1}")
	text = continuationVarRe.ReplaceAllString(text, "${1}")
	return text
}

// stripDebugScaffolding drops `// DBG: begin` .. `// DBG: end` regions
// and standalone `// DBG:` lines. Markers are paired first; an unmatched
// begin or a stray end leaves its text untouched rather than guessing at
// a region boundary.
func (g *Genesis2) stripDebugScaffolding(raw string) string {
	lines := strings.Split(raw, "\n")

	var openStack []int
	inRegion := make([]bool, len(lines))
	unmatched := make(map[int]bool)
	regions := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case dbgBeginRe.MatchString(trimmed):
			openStack = append(openStack, i)
		case dbgEndRe.MatchString(trimmed):
			if len(openStack) == 0 {
				unmatched[i] = true
				continue
			}
			begin := openStack[len(openStack)-1]
			openStack = openStack[:len(openStack)-1]
			for j := begin; j <= i; j++ {
				inRegion[j] = true
			}
			regions++
		}
	}
	for _, i := range openStack {
		unmatched[i] = true
	}
	if len(unmatched) > 0 {
		logger.Debugw("unbalanced debug markers left untouched", "markers", len(unmatched))
	}

	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if inRegion[i] {
			if regionImportRe.MatchString(trimmed) {
				kept = append(kept, line)
			}
			continue
		}
		if dbgLineRe.MatchString(trimmed) && !unmatched[i] {
			continue
		}
		kept = append(kept, line)
	}
	if regions > 0 {
		logger.Debugw("debug regions removed", "regions", regions)
	}
	return strings.Join(kept, "\n")
}

// ExtractImports returns the packages the source imports, in order of
// first appearance. Genesis2 puts imports in the module header, but any
// import position counts, including inside debug regions.
func (g *Genesis2) ExtractImports(raw string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range importRe.FindAllStringSubmatch(raw, -1) {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}

// CleanDirectionText normalizes a port's raw direction region. An
// annotation comment `// ports for interface 'name.modport'` contributes
// its qualifier ahead of the direction keyword; all other comment text
// and injected var keywords are dropped; remaining tokens, inline
// modport qualifiers included, keep their order.
func (g *Genesis2) CleanDirectionText(raw string) string {
	qualifier := ""
	for _, m := range annotationQualifierRe.FindAllStringSubmatch(raw, -1) {
		qualifier = m[1]
	}

	text := stripComments(raw)
	text = varTokenRe.ReplaceAllString(text, " ")
	text = collapseSpace(text)

	if qualifier == "" {
		return text
	}
	if text == "" {
		return qualifier
	}
	return qualifier + " " + text
}
