package render

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/example/svchef/internal/model"
)

// DefaultCSVMaxDepth caps the number of Type Level columns unless
// configured otherwise.
const DefaultCSVMaxDepth = 20

func init() {
	Registry.Register("csv", func() Renderer { return &CSV{MaxDepth: DefaultCSVMaxDepth} })
}

// CSV renders ports and parameters as two CSV record blocks. Nested
// composite fields occupy hierarchy columns instead of indentation: the
// port row carries its type in Type Level 1, each field adds a record
// with empty base columns and `<type> <name>` in the column of its
// level, so the structure survives import into a spreadsheet.
type CSV struct {
	// MaxDepth caps how many Type Level columns are emitted. Fields
	// nested deeper still produce records, with no type cell to land in.
	MaxDepth int
}

var csvBaseHeaders = []string{
	"Signal Name", "Direction", "Reset Value", "Default Value", "clk Domain",
}

func (c *CSV) Render(doc *model.Document, filter *Filter) (string, error) {
	var b strings.Builder
	b.WriteString(c.signalRecords(filter.Ports(doc.Ports)))
	b.WriteString("\n\n")
	b.WriteString(c.parameterRecords(filter.Parameters(doc.Parameters)))
	b.WriteString("\n")
	return b.String(), nil
}

func (c *CSV) signalRecords(ports []model.Port) string {
	depth := c.typeDepth(ports)

	headers := append([]string{}, csvBaseHeaders...)
	for i := 1; i <= depth; i++ {
		headers = append(headers, "Type Level "+strconv.Itoa(i))
	}
	headers = append(headers, "Description")

	records := [][]string{headers}
	for _, port := range ports {
		typeCols := make([]string, depth)
		typeCols[0] = port.Type.String()
		record := []string{port.Name, port.Direction, port.ResetValue, port.DefaultValue, port.ClkDomain}
		record = append(record, typeCols...)
		record = append(record, port.Description)
		records = append(records, record)

		for _, lf := range flattenFields(port.Type, 1) {
			typeCols := make([]string, depth)
			if lf.level < depth {
				typeCols[lf.level] = lf.text
			}
			record := make([]string, len(csvBaseHeaders))
			record = append(record, typeCols...)
			record = append(record, "")
			records = append(records, record)
		}
	}
	return writeRecords(records)
}

func (c *CSV) parameterRecords(params []model.Parameter) string {
	records := [][]string{parameterHeaders}
	for _, p := range params {
		records = append(records, []string{p.Name, p.Type, "", p.Default, p.Description})
	}
	return writeRecords(records)
}

// typeDepth is the deepest nesting across the rendered ports, the port
// itself counting as level one, capped by the configured maximum. Even
// an all-scalar interface gets one type column.
func (c *CSV) typeDepth(ports []model.Port) int {
	depth := 1
	for _, port := range ports {
		if d := nestingDepth(port.Type, 1); d > depth {
			depth = d
		}
	}
	if c.MaxDepth > 0 && depth > c.MaxDepth {
		depth = c.MaxDepth
	}
	return depth
}

func nestingDepth(t *model.TypeNode, current int) int {
	node := t.Resolve()
	if !node.IsComposite() {
		return current
	}
	deepest := current
	for _, f := range node.Fields {
		if d := nestingDepth(f.Type, current+1); d > deepest {
			deepest = d
		}
	}
	return deepest
}

// levelField is one flattened composite member: its nesting level (the
// owning port is level one, so direct members are level two when they
// land in a column) and its `<type> <name>` cell text.
type levelField struct {
	level int
	text  string
}

func flattenFields(t *model.TypeNode, level int) []levelField {
	node := t.Resolve()
	if !node.IsComposite() {
		return nil
	}
	var out []levelField
	for _, f := range node.Fields {
		out = append(out, levelField{level: level, text: f.Type.String() + " " + f.Name})
		out = append(out, flattenFields(f.Type, level+1)...)
	}
	return out
}

func writeRecords(records [][]string) string {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, record := range records {
		// Write on a bytes.Buffer cannot fail.
		_ = w.Write(record)
	}
	w.Flush()
	return strings.TrimRight(buf.String(), "\n")
}
