// Package strategy holds the source-preprocessing strategies that adapt
// raw SystemVerilog to the extraction pipeline. Each strategy knows one
// dialect of input: genesis2 understands the scaffolding a Genesis2
// generator injects, lrm assumes standards-conformant hand-written
// source and touches nothing.
package strategy

import (
	"regexp"
	"strings"

	"github.com/example/svchef/internal/registry"
)

// Strategy prepares one dialect of SystemVerilog source for parsing and
// normalizes its port direction annotations for display.
type Strategy interface {
	// CleanSource transforms raw source text into parseable
	// SystemVerilog, removing any generator scaffolding.
	CleanSource(raw string) string

	// ExtractImports returns the package names the source imports, in
	// order of first appearance, de-duplicated.
	ExtractImports(raw string) []string

	// CleanDirectionText normalizes a port's raw direction region
	// (comments, keywords and decoration as they appear in source) into
	// the direction label shown in documents.
	CleanDirectionText(raw string) string
}

// Registry maps CLI strategy keys to implementations. Strategies
// register themselves at init time.
var Registry = registry.New[Strategy]("strategy")

var (
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe  = regexp.MustCompile(`//[^\n]*`)
)

// stripComments replaces comment syntax with spaces so the surviving
// tokens keep their relative order.
func stripComments(text string) string {
	text = blockCommentRe.ReplaceAllString(text, " ")
	return lineCommentRe.ReplaceAllString(text, " ")
}

// collapseSpace reduces runs of whitespace to single spaces and trims
// the ends.
func collapseSpace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
