// Package extract turns a compiled design into a renderer-agnostic
// interface document: one module's ports and parameters, with every port
// type resolved into a node tree.
package extract

import (
	"strings"

	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/logger"
	"github.com/example/svchef/internal/model"
	"github.com/example/svchef/internal/strategy"
	"github.com/example/svchef/internal/svlang"
)

// CompilationUnit is the contract the engine consumes. Any front-end
// that can find modules by name, enumerate them in declaration order and
// produce the declared shape of a type can drive extraction.
type CompilationUnit interface {
	Module(name string) (*svlang.ModuleDecl, bool)
	ModuleNames() []string
	Shape(typeText string) (*svlang.Shape, bool)
}

// Extract builds the interface document for one module. Parameters are
// recorded verbatim; ports resolve their declared types recursively
// through an arena, so a named composite referenced several times costs
// one resolution and every reference shares one node. The document is a
// pure function of the inputs; the arena lives and dies with this call.
func Extract(unit CompilationUnit, moduleName string, strat strategy.Strategy) (*model.Document, error) {
	mod, ok := unit.Module(moduleName)
	if !ok {
		return nil, errors.NewModuleNotFound(moduleName)
	}
	logger.Debugw("extracting interface", "module", mod.Name,
		"ports", len(mod.Ports), "parameters", len(mod.Params))

	arena := newArena(unit)
	doc := &model.Document{Module: mod.Name}

	for _, pd := range mod.Params {
		doc.Parameters = append(doc.Parameters, model.Parameter{
			Name:        pd.Name,
			Type:        pd.TypeText,
			Default:     pd.Default,
			Description: pd.Description,
		})
	}

	for _, pd := range mod.Ports {
		node, err := arena.resolveText(pd.TypeText)
		if err != nil {
			return nil, errors.Wrapf(err, "port %s", pd.Name)
		}
		doc.Ports = append(doc.Ports, model.Port{
			Name:         pd.Name,
			Direction:    directionLabel(pd, strat),
			Type:         node,
			DefaultValue: pd.DefaultValue,
			Description:  pd.Description,
		})
	}
	return doc, nil
}

// directionLabel cleans a port's raw direction region through the
// strategy. An inheriting port has no keyword in its raw region, so the
// inherited keyword is appended before cleaning; should cleaning still
// come back empty, the bare keyword stands.
func directionLabel(pd svlang.PortDecl, strat strategy.Strategy) string {
	raw := pd.DirectionRaw
	if pd.Inherited && pd.Direction != "" {
		raw += " " + pd.Direction
	}
	if label := strat.CleanDirectionText(raw); label != "" {
		return label
	}
	return pd.Direction
}

// SelectModule picks the module a run targets. An explicit request wins.
// Otherwise a single-module design targets its only module; a design
// with several modules needs the choice made explicit.
func SelectModule(unit CompilationUnit, requested string) (string, error) {
	if requested != "" {
		return requested, nil
	}
	names := unit.ModuleNames()
	switch len(names) {
	case 0:
		return "", errors.Mark(errors.New("no module declarations found"), errors.ErrModuleNotFound)
	case 1:
		return names[0], nil
	default:
		return "", errors.Newf("design declares %d modules (%s); select one with --module",
			len(names), strings.Join(names, ", "))
	}
}
