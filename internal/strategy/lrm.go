package strategy

func init() {
	Registry.Register("lrm", func() Strategy { return &LRM{} })
}

// LRM handles standards-conformant SystemVerilog as the language
// reference manual defines it. Source text is trusted as written:
// nothing is cleaned, and imports are expected to be resolvable from the
// source itself.
type LRM struct{}

// CleanSource returns the source unchanged.
func (l *LRM) CleanSource(raw string) string { return raw }

// ExtractImports returns no packages; conformant input is expected to be
// self-contained.
func (l *LRM) ExtractImports(raw string) []string { return nil }

// CleanDirectionText drops comment syntax and collapses whitespace,
// nothing more.
func (l *LRM) CleanDirectionText(raw string) string {
	return collapseSpace(stripComments(raw))
}
