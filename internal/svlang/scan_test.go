package svlang

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskComments(t *testing.T) {
	src := "logic a; // note\ninput /* keep\noffsets */ logic x;\ns = \"//quoted\";"
	mask := maskComments(src)

	require.Len(t, mask, len(src), "mask must preserve offsets")
	for i := range src {
		if src[i] == '\n' {
			assert.Equal(t, byte('\n'), mask[i], "newline at offset %d", i)
		}
	}
	assert.NotContains(t, mask, "note")
	assert.NotContains(t, mask, "keep")
	assert.NotContains(t, mask, "offsets")
	assert.NotContains(t, mask, "quoted")
	assert.Contains(t, mask, "logic a;")
	assert.Contains(t, mask, "logic x;")
}

func TestSplitTypeAndName(t *testing.T) {
	tests := []struct {
		decl     string
		wantType string
		wantName string
	}{
		{"logic [63:0] data", "logic [63:0]", "data"},
		{"stream_s in_stream", "stream_s", "in_stream"},
		{"clk", "", "clk"},
		{"logic signed [7:0] value", "logic signed [7:0]", "value"},
		{"logic mem [4]", "logic", "mem"},
		{"logic[31:0] word", "logic [31:0]", "word"},
		{"int unsigned DEPTH", "int unsigned", "DEPTH"},
	}

	for _, tt := range tests {
		t.Run(tt.decl, func(t *testing.T) {
			typeText, name, nameOff := splitTypeAndName(tt.decl)
			assert.Equal(t, tt.wantType, typeText)
			assert.Equal(t, tt.wantName, name)
			require.GreaterOrEqual(t, nameOff, 0)
			assert.Equal(t, tt.wantName, identRe.FindString(tt.decl[nameOff:]))
		})
	}

	t.Run("no name at all", func(t *testing.T) {
		typeText, name, nameOff := splitTypeAndName("  [7:0]  ")
		assert.Equal(t, "[7:0]", typeText)
		assert.Empty(t, name)
		assert.Equal(t, -1, nameOff)
	})
}

func TestSplitTopLevel(t *testing.T) {
	mask := "a, b [1:0], {c, d}, e(f, g)"
	segs := splitTopLevel(mask, 0, len(mask), ',')
	require.Len(t, segs, 4)

	var texts []string
	for _, s := range segs {
		texts = append(texts, mask[s.start:s.end])
	}
	assert.Equal(t, []string{"a", " b [1:0]", " {c, d}", " e(f, g)"}, texts)
}

func TestIndexTopLevel(t *testing.T) {
	mask := "parameter W = N[3:0]"
	eq := indexTopLevel(mask, 0, len(mask), '=')
	assert.Equal(t, strings.IndexByte(mask, '='), eq)

	assert.Equal(t, -1, indexTopLevel("no delimiter here", 0, 17, '='))
}

func TestDescribeDecl(t *testing.T) {
	t.Run("trailing comment past the separator", func(t *testing.T) {
		src := "(\n    input logic clk,   // core clock\n    input logic rst\n)"
		mask := maskComments(src)
		segs := splitTopLevel(mask, 1, len(src)-1, ',')
		require.Len(t, segs, 2)

		nameAbs := strings.Index(src, "clk")
		desc := describeDecl(src, segs[0].start, segs[0].end, len(src)-1, nameAbs)
		assert.Equal(t, "core clock", desc)
	})

	t.Run("leading comment owning its line", func(t *testing.T) {
		src := "(\n    // active-low reset\n    input logic rst_n\n)"
		nameAbs := strings.Index(src, "rst_n")
		desc := describeDecl(src, 1, len(src)-1, len(src)-1, nameAbs)
		assert.Equal(t, "active-low reset", desc)
	})

	t.Run("tool annotations are not descriptions", func(t *testing.T) {
		src := "(\n    // ports for interface 'bus.host'\n    input logic req\n)"
		nameAbs := strings.Index(src, "req")
		desc := describeDecl(src, 1, len(src)-1, len(src)-1, nameAbs)
		assert.Empty(t, desc)
	})
}
