// Package render turns an interface document into output text. Each
// renderer is stateless with respect to the document: the same document
// can be rendered repeatedly, under different filters, without change.
package render

import (
	"github.com/example/svchef/internal/model"
	"github.com/example/svchef/internal/registry"
)

// Renderer produces one output format from a document. The filter
// selects which ports and parameters appear; nil means everything.
type Renderer interface {
	Render(doc *model.Document, filter *Filter) (string, error)
}

// Registry maps CLI format keys to renderers. Renderers register
// themselves at init time.
var Registry = registry.New[Renderer]("format")
