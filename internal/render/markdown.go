package render

import (
	"fmt"
	"strings"

	"github.com/example/svchef/internal/model"
)

func init() {
	Registry.Register("markdown", func() Renderer { return &Markdown{} })
}

// Markdown renders GitHub-flavoured Markdown tables: a ports table and a
// parameters table under a module heading. Composite ports list their
// fields as extra rows directly beneath the port, the name cell indented
// with non-breaking spaces per nesting level.
type Markdown struct{}

var signalHeaders = []string{
	"Signal Name", "Type", "Direction", "Reset Value",
	"Default Value", "clk Domain", "Description",
}

var parameterHeaders = []string{
	"Generic Name", "Type", "Range of Values", "Default Value", "Description",
}

func (m *Markdown) Render(doc *model.Document, filter *Filter) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# Module %s\n\n", doc.Module)
	b.WriteString(m.signalTable(filter.Ports(doc.Ports)))
	b.WriteString("\n\n")
	b.WriteString(m.parameterTable(filter.Parameters(doc.Parameters)))
	b.WriteString("\n")
	return b.String(), nil
}

func (m *Markdown) signalTable(ports []model.Port) string {
	rows := []string{headerRow(signalHeaders), alignRow(signalHeaders)}
	for _, port := range ports {
		rows = append(rows, tableRow(
			port.Name,
			port.Type.String(),
			port.Direction,
			port.ResetValue,
			port.DefaultValue,
			port.ClkDomain,
			port.Description,
		))
		rows = appendFieldRows(rows, port.Type, 1)
	}
	return strings.Join(rows, "\n")
}

// appendFieldRows adds one row per member of a composite type,
// recursively. Top-level fields of a composite port are level 1; each
// level indents the name cell by four non-breaking spaces.
func appendFieldRows(rows []string, t *model.TypeNode, level int) []string {
	node := t.Resolve()
	if !node.IsComposite() {
		return rows
	}
	indent := strings.Repeat("&nbsp;", 4*level)
	for _, f := range node.Fields {
		rows = append(rows, tableRow(
			indent+f.Name,
			f.Type.String(),
			"", "", "", "",
			f.Description,
		))
		rows = appendFieldRows(rows, f.Type, level+1)
	}
	return rows
}

func (m *Markdown) parameterTable(params []model.Parameter) string {
	rows := []string{headerRow(parameterHeaders), alignRow(parameterHeaders)}
	for _, p := range params {
		rows = append(rows, tableRow(p.Name, p.Type, "", p.Default, p.Description))
	}
	return strings.Join(rows, "\n")
}

func headerRow(headers []string) string {
	return "| " + strings.Join(headers, " | ") + " |"
}

// alignRow builds the left-alignment separator, each cell one dash wider
// than its header.
func alignRow(headers []string) string {
	cells := make([]string, len(headers))
	for i, h := range headers {
		cells[i] = ":" + strings.Repeat("-", len(h)+1)
	}
	return "|" + strings.Join(cells, "|") + "|"
}

func tableRow(cells ...string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}
