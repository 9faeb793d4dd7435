package render

import (
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/example/svchef/internal/model"
)

// DefaultHTMLTitleSuffix follows the module name in the page title.
const DefaultHTMLTitleSuffix = " Interface"

func init() {
	Registry.Register("html", func() Renderer { return &HTML{TitleSuffix: DefaultHTMLTitleSuffix} })
}

// HTML renders a complete standalone page with embedded styles and
// scripts. Ports form a collapsible tree in which composite types
// expand into their fields recursively; parameters render as a table.
// The page carries its own view-only regex filter control, applied in
// the browser without re-running extraction.
type HTML struct {
	TitleSuffix string
}

type pageData struct {
	Title   string
	Module  string
	Styles  template.CSS
	Scripts template.JS
	Signals template.HTML
	Params  template.HTML
}

func (h *HTML) Render(doc *model.Document, filter *Filter) (string, error) {
	data := pageData{
		Title:   doc.Module + h.TitleSuffix,
		Module:  doc.Module,
		Styles:  template.CSS(pageStyles),
		Scripts: template.JS(pageScripts),
		Signals: template.HTML(h.signalTree(filter.Ports(doc.Ports))),
		Params:  template.HTML(h.parameterTable(filter.Parameters(doc.Parameters))),
	}
	var b strings.Builder
	if err := pageTemplate.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (h *HTML) signalTree(ports []model.Port) string {
	items := make([]string, 0, len(ports))
	for _, port := range ports {
		items = append(items, h.portItem(port))
	}
	return "<ul class=\"tree\">\n" + strings.Join(items, "\n") + "\n</ul>"
}

func (h *HTML) portItem(port model.Port) string {
	node := port.Type.Resolve()
	composite := node.IsComposite()

	itemClass, headerClass, icon := "", "", ""
	if composite {
		itemClass = " has-children"
		headerClass = " expandable"
		icon = "▶"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<li class=\"tree-item%s\">\n", itemClass)
	fmt.Fprintf(&b, "  <div class=\"tree-header%s\">\n", headerClass)
	fmt.Fprintf(&b, "    <span class=\"expand-icon\">%s</span>\n", icon)
	fmt.Fprintf(&b, "    <span class=\"signal-name\">%s</span>\n", html.EscapeString(port.Name))
	fmt.Fprintf(&b, "    <span class=\"signal-type\"%s>%s</span>\n",
		widthTitle(port.Type), html.EscapeString(port.Type.String()))
	fmt.Fprintf(&b, "    <span class=\"signal-direction %s\">%s</span>\n",
		directionClass(port.Direction), html.EscapeString(port.Direction))
	b.WriteString("  </div>")
	if composite {
		b.WriteString("\n  <ul class=\"tree-children\">\n")
		b.WriteString(h.fieldItems(node))
		b.WriteString("\n  </ul>\n")
	}
	b.WriteString("</li>")
	return b.String()
}

func (h *HTML) fieldItems(node *model.TypeNode) string {
	items := make([]string, 0, len(node.Fields))
	for _, f := range node.Fields {
		fieldNode := f.Type.Resolve()
		composite := fieldNode.IsComposite()

		itemClass, icon := "", ""
		if composite {
			itemClass = " expandable"
			icon = "▶"
		}

		var b strings.Builder
		fmt.Fprintf(&b, "<li><div class=\"field-item%s\">", itemClass)
		fmt.Fprintf(&b, "<span class=\"expand-icon\">%s</span>", icon)
		fmt.Fprintf(&b, "<span class=\"field-type\"%s>%s</span>",
			widthTitle(f.Type), html.EscapeString(f.Type.String()))
		fmt.Fprintf(&b, "<span class=\"field-name\">%s</span>", html.EscapeString(f.Name))
		b.WriteString("</div>")
		if composite {
			b.WriteString("\n<ul class=\"nested-fields\">\n")
			b.WriteString(h.fieldItems(fieldNode))
			b.WriteString("\n</ul>\n")
		}
		b.WriteString("</li>")
		items = append(items, b.String())
	}
	return strings.Join(items, "\n")
}

func (h *HTML) parameterTable(params []model.Parameter) string {
	if len(params) == 0 {
		return `<p class="no-params">No parameters</p>`
	}
	rows := make([]string, 0, len(params))
	for _, p := range params {
		def := p.Default
		if def == "" {
			def = "—"
		}
		rows = append(rows, fmt.Sprintf(
			"<tr>\n  <td class=\"param-name\">%s</td>\n  <td class=\"param-type\">%s</td>\n"+
				"  <td class=\"param-default\">%s</td>\n  <td>%s</td>\n</tr>",
			html.EscapeString(p.Name), html.EscapeString(p.Type),
			html.EscapeString(def), html.EscapeString(p.Description)))
	}
	return "<table class=\"param-table\">\n<thead>\n<tr>\n" +
		"  <th>Name</th>\n  <th>Type</th>\n  <th>Default</th>\n  <th>Description</th>\n" +
		"</tr>\n</thead>\n<tbody>\n" + strings.Join(rows, "\n") + "\n</tbody>\n</table>"
}

// widthTitle builds a title attribute carrying the computed bit width,
// surfaced as a hover tooltip. Types without a known width get none.
func widthTitle(t *model.TypeNode) string {
	w, ok := t.Width()
	if !ok {
		return ""
	}
	if w == 1 {
		return ` title="1 bit"`
	}
	return fmt.Sprintf(` title="%d bits"`, w)
}

func directionClass(direction string) string {
	d := strings.ToLower(direction)
	switch {
	case strings.Contains(d, "output"):
		return "dir-output"
	case strings.Contains(d, "inout"):
		return "dir-inout"
	default:
		return "dir-input"
	}
}

var pageTemplate = template.Must(template.New("page").Parse(pageMarkup))

const pageMarkup = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
{{.Styles}}
</style>
</head>
<body>
<div class="container">
<h1>{{.Module}}</h1>
<div class="filter-bar">
  <input type="text" id="filter-pattern" placeholder="Filter signals (regex)">
  <label><input type="checkbox" id="filter-invert"> hide matching</label>
</div>
<h2>Ports</h2>
{{.Signals}}
<h2>Parameters</h2>
{{.Params}}
</div>
<script>
{{.Scripts}}
</script>
</body>
</html>
`

const pageStyles = `:root {
  --accent-blue: #2563eb;
  --accent-green: #16a34a;
  --accent-orange: #d97706;
  --border: #d1d5db;
  --bg-hover: #f3f4f6;
  --text-dim: #6b7280;
}

body {
  font-family: "Segoe UI", system-ui, sans-serif;
  margin: 0;
  color: #111827;
  background: #f9fafb;
}

.container {
  max-width: 960px;
  margin: 0 auto;
  padding: 2rem 1rem;
}

h1 {
  border-bottom: 2px solid var(--accent-blue);
  padding-bottom: 0.5rem;
}

.filter-bar {
  display: flex;
  align-items: center;
  gap: 1rem;
  margin: 1rem 0;
}

.filter-bar input[type="text"] {
  flex: 1;
  padding: 0.4rem 0.6rem;
  border: 1px solid var(--border);
  border-radius: 4px;
  font-family: monospace;
}

.filter-bar input[type="text"].filter-error {
  border-color: #dc2626;
  outline-color: #dc2626;
}

.filter-bar label {
  color: var(--text-dim);
  user-select: none;
}

.tree {
  list-style: none;
  padding-left: 0;
  border: 1px solid var(--border);
  border-radius: 6px;
  background: #fff;
}

.tree-item {
  border-bottom: 1px solid var(--border);
}

.tree-item:last-child {
  border-bottom: none;
}

.tree-header {
  display: flex;
  align-items: center;
  gap: 0.75rem;
  padding: 0.5rem 0.75rem;
}

.tree-header.expandable {
  cursor: pointer;
}

.tree-header.expandable:hover {
  background: var(--bg-hover);
}

.expand-icon {
  display: inline-block;
  width: 1em;
  font-size: 0.7rem;
  color: var(--text-dim);
  transition: transform 0.15s ease;
}

.expanded > .tree-header .expand-icon,
li.expanded > .field-item .expand-icon {
  transform: rotate(90deg);
}

.signal-name {
  font-family: monospace;
  font-weight: 600;
}

.signal-type {
  font-family: monospace;
  color: var(--text-dim);
  margin-left: auto;
}

.signal-direction {
  font-size: 0.75rem;
  font-weight: 600;
  text-transform: uppercase;
  padding: 0.1rem 0.5rem;
  border-radius: 9999px;
  color: #fff;
}

.dir-input {
  background: var(--accent-blue);
}

.dir-output {
  background: var(--accent-green);
}

.dir-inout {
  background: var(--accent-orange);
}

.tree-children,
.nested-fields {
  display: none;
  list-style: none;
  padding-left: 1.5rem;
  margin: 0 0 0.5rem;
}

.tree-item.expanded > .tree-children,
li.expanded > .nested-fields {
  display: block;
}

.field-item {
  display: flex;
  align-items: center;
  gap: 0.5rem;
  padding: 0.2rem 0.5rem;
  font-family: monospace;
}

.field-item.expandable {
  cursor: pointer;
}

.field-item.expandable:hover {
  background: var(--bg-hover);
}

.field-type {
  color: var(--text-dim);
}

.field-name {
  font-weight: 600;
}

.param-table {
  width: 100%;
  border-collapse: collapse;
  background: #fff;
  border: 1px solid var(--border);
  border-radius: 6px;
}

.param-table th,
.param-table td {
  text-align: left;
  padding: 0.5rem 0.75rem;
  border-bottom: 1px solid var(--border);
}

.param-table th {
  background: var(--bg-hover);
}

.param-name {
  font-family: monospace;
  font-weight: 600;
}

.param-type,
.param-default {
  font-family: monospace;
}

.no-params {
  color: var(--text-dim);
  font-style: italic;
}
`

const pageScripts = `document.addEventListener('DOMContentLoaded', function () {
  document.querySelectorAll('.expandable').forEach(function (el) {
    el.addEventListener('click', function () {
      el.parentElement.classList.toggle('expanded');
    });
  });

  var pattern = document.getElementById('filter-pattern');
  var invert = document.getElementById('filter-invert');
  if (!pattern || !invert) {
    return;
  }

  function applyFilter() {
    pattern.classList.remove('filter-error');
    var re = null;
    if (pattern.value) {
      try {
        re = new RegExp(pattern.value);
      } catch (e) {
        pattern.classList.add('filter-error');
        return;
      }
    }
    document.querySelectorAll('.tree > .tree-item').forEach(function (item) {
      var nameEl = item.querySelector('.signal-name');
      var name = nameEl ? nameEl.textContent : '';
      var show = true;
      if (re) {
        var matched = re.test(name);
        show = invert.checked ? !matched : matched;
      }
      item.style.display = show ? '' : 'none';
    });
  }

  pattern.addEventListener('input', applyFilter);
  invert.addEventListener('change', applyFilter);
});
`
