package svlang

import (
	"regexp"
	"strings"
)

// maskComments returns a copy of src with comment and string-literal
// interiors blanked to spaces, newlines preserved, so token searches and
// bracket matching never trip over commented-out or quoted text. Offsets
// into the mask are valid offsets into the original, which keeps the
// comment text reachable for direction annotations and descriptions.
func maskComments(src string) string {
	b := []byte(src)
	const (
		code = iota
		lineComment
		blockComment
		quoted
	)
	state := code
	for i := 0; i < len(b); i++ {
		c := b[i]
		switch state {
		case code:
			if c == '/' && i+1 < len(b) && b[i+1] == '/' {
				b[i], b[i+1] = ' ', ' '
				i++
				state = lineComment
			} else if c == '/' && i+1 < len(b) && b[i+1] == '*' {
				b[i], b[i+1] = ' ', ' '
				i++
				state = blockComment
			} else if c == '"' {
				b[i] = ' '
				state = quoted
			}
		case lineComment:
			if c == '\n' {
				state = code
			} else {
				b[i] = ' '
			}
		case blockComment:
			if c == '*' && i+1 < len(b) && b[i+1] == '/' {
				b[i], b[i+1] = ' ', ' '
				i++
				state = code
			} else if c != '\n' {
				b[i] = ' '
			}
		case quoted:
			if c == '\\' && i+1 < len(b) {
				b[i], b[i+1] = ' ', ' '
				i++
			} else if c == '"' {
				b[i] = ' '
				state = code
			} else if c != '\n' {
				b[i] = ' '
			}
		}
	}
	return string(b)
}

// lineAt returns the 1-based line number of an offset.
func lineAt(src string, off int) int {
	if off > len(src) {
		off = len(src)
	}
	return 1 + strings.Count(src[:off], "\n")
}

// matchDelim scans the mask from an opening delimiter at open and returns
// the offset of the matching closer, or -1 when the text ends first.
func matchDelim(mask string, open int, oc, cc byte) int {
	depth := 0
	for i := open; i < len(mask); i++ {
		switch mask[i] {
		case oc:
			depth++
		case cc:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// span is a half-open [start, end) offset range.
type span struct {
	start, end int
}

// splitTopLevel splits mask[from:to] at delimiters that sit outside any
// (), [] or {} nesting, returning the segment ranges.
func splitTopLevel(mask string, from, to int, delim byte) []span {
	var segs []span
	depthParen, depthBracket, depthBrace := 0, 0, 0
	segStart := from
	for i := from; i < to; i++ {
		switch mask[i] {
		case '(':
			depthParen++
		case ')':
			if depthParen > 0 {
				depthParen--
			}
		case '[':
			depthBracket++
		case ']':
			if depthBracket > 0 {
				depthBracket--
			}
		case '{':
			depthBrace++
		case '}':
			if depthBrace > 0 {
				depthBrace--
			}
		case delim:
			if depthParen == 0 && depthBracket == 0 && depthBrace == 0 {
				segs = append(segs, span{segStart, i})
				segStart = i + 1
			}
		}
	}
	if segStart < to {
		segs = append(segs, span{segStart, to})
	}
	return segs
}

// indexTopLevel returns the offset of the first delim in mask[from:to]
// outside any nesting, or -1.
func indexTopLevel(mask string, from, to int, delim byte) int {
	segs := splitTopLevel(mask, from, to, delim)
	if len(segs) > 0 && segs[0].end < to {
		return segs[0].end
	}
	return -1
}

func skipSpace(mask string, pos int) int {
	for pos < len(mask) && (mask[pos] == ' ' || mask[pos] == '\t' || mask[pos] == '\n' || mask[pos] == '\r') {
		pos++
	}
	return pos
}

var wordRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.]*`)

// wordAt reads the identifier-like word starting at pos, dots included so
// interface.modport qualifiers come back whole.
func wordAt(mask string, pos int) string {
	return wordRe.FindString(mask[pos:])
}

// typeTokenRe splits a declaration into bracket groups and words, so an
// attached packed range ("logic[31:0]") separates from its base type.
var typeTokenRe = regexp.MustCompile(`\[[^\]]*\]|[^\s\[\]]+`)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*`)

// splitTypeAndName splits a masked declaration into its type text and the
// declared identifier: the last token names the declaration, everything
// before it is the type. Array suffixes stuck to the name are dropped.
// Returns the name's offset within decl, -1 when no name is found.
func splitTypeAndName(decl string) (typeText, name string, nameOff int) {
	spans := typeTokenRe.FindAllStringIndex(decl, -1)
	last := len(spans) - 1
	for last >= 0 {
		name = identRe.FindString(decl[spans[last][0]:spans[last][1]])
		if name != "" {
			break
		}
		last--
	}
	if last < 0 {
		return strings.TrimSpace(decl), "", -1
	}
	var parts []string
	for _, s := range spans[:last] {
		parts = append(parts, decl[s[0]:s[1]])
	}
	return strings.Join(parts, " "), name, spans[last][0]
}

// commentSpan is one // comment found in original text: its absolute
// start offset, line, body text, and whether it leads its line.
type commentSpan struct {
	start    int
	line     int
	text     string
	ownsLine bool
}

// lineCommentsIn collects // comments in src[from:to] with absolute
// offsets. ownsLine is true when only whitespace precedes the comment on
// its line.
func lineCommentsIn(src string, from, to int) []commentSpan {
	var out []commentSpan
	for i := from; i+1 < to; i++ {
		if src[i] == '/' && src[i+1] == '/' {
			end := strings.IndexByte(src[i:to], '\n')
			if end == -1 {
				end = to
			} else {
				end += i
			}
			lineStart := strings.LastIndexByte(src[:i], '\n') + 1
			out = append(out, commentSpan{
				start:    i,
				line:     lineAt(src, i),
				text:     strings.TrimSpace(strings.TrimPrefix(src[i:end], "//")),
				ownsLine: strings.TrimSpace(src[lineStart:i]) == "",
			})
			i = end
		} else if src[i] == '/' && src[i+1] == '*' {
			close := strings.Index(src[i+2:], "*/")
			if close == -1 {
				break
			}
			i += 2 + close + 1
		}
	}
	return out
}

var annotationRe = regexp.MustCompile(`ports\s+for\s+interface`)

// isAnnotation reports whether a comment is tool decoration rather than
// documentation.
func isAnnotation(text string) bool {
	return annotationRe.MatchString(text) || strings.HasPrefix(text, "DBG:")
}

// describeDecl mines a description for a declaration: first a trailing
// comment on the name's line (looking past segEnd up to listEnd, since
// the comment usually follows the separating comma), else a leading
// comment that owns a line before the name.
func describeDecl(src string, segStart, segEnd, listEnd, nameAbs int) string {
	if nameAbs < 0 {
		return ""
	}
	nameLine := lineAt(src, nameAbs)
	lookEnd := segEnd
	if nl := strings.IndexByte(src[segEnd:listEnd], '\n'); nl == -1 {
		lookEnd = listEnd
	} else {
		lookEnd = segEnd + nl
	}
	for _, c := range lineCommentsIn(src, nameAbs, lookEnd) {
		if c.line == nameLine && !isAnnotation(c.text) && c.text != "" {
			return c.text
		}
	}
	for _, c := range lineCommentsIn(src, segStart, nameAbs) {
		if c.ownsLine && c.line < nameLine && !isAnnotation(c.text) && c.text != "" {
			return c.text
		}
	}
	return ""
}
