package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/svchef/internal/model"
)

func markdownDoc() *model.Document {
	inner := &model.TypeNode{
		Kind: model.KindStruct,
		Name: "inner_s",
		Fields: []model.Field{
			{Name: "data", Type: model.Scalar("logic", "[7:0]", false)},
		},
	}
	outer := &model.TypeNode{
		Kind: model.KindStruct,
		Name: "outer_s",
		Fields: []model.Field{
			{Name: "beat", Type: inner},
			{Name: "tag", Type: model.Scalar("logic", "[3:0]", false)},
		},
	}
	return &model.Document{
		Module: "stream_ep",
		Ports: []model.Port{
			{Name: "clk", Direction: "input", Type: model.Scalar("logic", "", false), Description: "core clock"},
			{Name: "out_beat", Direction: "output", Type: outer},
		},
		Parameters: []model.Parameter{
			{Name: "DEPTH", Type: "int unsigned", Default: "4", Description: "buffer depth"},
		},
	}
}

func TestMarkdownRender(t *testing.T) {
	m := &Markdown{}
	got, err := m.Render(markdownDoc(), nil)
	require.NoError(t, err)

	want := `# Module stream_ep

| Signal Name | Type | Direction | Reset Value | Default Value | clk Domain | Description |
|:------------|:-----|:----------|:------------|:--------------|:-----------|:------------|
| clk | logic | input |  |  |  | core clock |
| out_beat | outer_s | output |  |  |  |  |
| &nbsp;&nbsp;&nbsp;&nbsp;beat | inner_s |  |  |  |  |  |
| &nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;&nbsp;data | logic [7:0] |  |  |  |  |  |
| &nbsp;&nbsp;&nbsp;&nbsp;tag | logic [3:0] |  |  |  |  |  |

| Generic Name | Type | Range of Values | Default Value | Description |
|:-------------|:-----|:----------------|:--------------|:------------|
| DEPTH | int unsigned |  | 4 | buffer depth |
`
	assert.Equal(t, want, got)
}

func TestMarkdownNestedIndentLevels(t *testing.T) {
	leaf := model.Scalar("logic", "", false)
	level3 := &model.TypeNode{Kind: model.KindStruct, Name: "l3_s",
		Fields: []model.Field{{Name: "deep", Type: leaf}}}
	level2 := &model.TypeNode{Kind: model.KindStruct, Name: "l2_s",
		Fields: []model.Field{{Name: "mid", Type: level3}}}
	level1 := &model.TypeNode{Kind: model.KindStruct, Name: "l1_s",
		Fields: []model.Field{{Name: "top", Type: level2}}}

	doc := &model.Document{
		Module: "deep_ep",
		Ports:  []model.Port{{Name: "bus", Direction: "input", Type: level1}},
	}

	m := &Markdown{}
	got, err := m.Render(doc, nil)
	require.NoError(t, err)

	indent := func(level int) string { return strings.Repeat("&nbsp;", 4*level) }
	assert.Contains(t, got, "| "+indent(1)+"top | l2_s |")
	assert.Contains(t, got, "| "+indent(2)+"mid | l3_s |")
	assert.Contains(t, got, "| "+indent(3)+"deep | logic |")
}

func TestMarkdownAliasPortExpands(t *testing.T) {
	st := &model.TypeNode{
		Kind:   model.KindStruct,
		Name:   "beat_s",
		Fields: []model.Field{{Name: "data", Type: model.Scalar("logic", "[7:0]", false)}},
	}
	alias := &model.TypeNode{Kind: model.KindAlias, Name: "beat_t", Target: st}

	doc := &model.Document{
		Module: "alias_ep",
		Ports:  []model.Port{{Name: "beat", Direction: "input", Type: alias}},
	}

	m := &Markdown{}
	got, err := m.Render(doc, nil)
	require.NoError(t, err)

	assert.Contains(t, got, "| beat | beat_t | input |", "the port row shows the alias name")
	assert.Contains(t, got, "&nbsp;data | logic [7:0] |", "the alias target's fields still expand")
}

func TestMarkdownFilter(t *testing.T) {
	m := &Markdown{}
	doc := markdownDoc()

	t.Run("excluded composite loses its field rows too", func(t *testing.T) {
		f, err := CompileFilter("^out_beat$")
		require.NoError(t, err)
		got, err := m.Render(doc, f)
		require.NoError(t, err)
		assert.NotContains(t, got, "out_beat")
		assert.NotContains(t, got, "&nbsp;")
		assert.Contains(t, got, "| clk |")
	})

	t.Run("matching nothing changes nothing", func(t *testing.T) {
		f, err := CompileFilter("^zzz$")
		require.NoError(t, err)
		got, err := m.Render(doc, f)
		require.NoError(t, err)
		unfiltered, err := m.Render(doc, nil)
		require.NoError(t, err)
		assert.Equal(t, unfiltered, got)
	})

	t.Run("matching everything leaves the headers", func(t *testing.T) {
		f, err := CompileFilter(".")
		require.NoError(t, err)
		got, err := m.Render(doc, f)
		require.NoError(t, err)
		assert.Contains(t, got, "# Module stream_ep")
		assert.Contains(t, got, "| Signal Name |")
		assert.Contains(t, got, "| Generic Name |")
		assert.NotContains(t, got, "| clk |")
		assert.NotContains(t, got, "DEPTH")
	})
}

func TestMarkdownRegistered(t *testing.T) {
	r, err := Registry.Create("markdown")
	require.NoError(t, err)
	assert.IsType(t, &Markdown{}, r)
}
