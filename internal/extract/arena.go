package extract

import (
	"strings"

	"github.com/example/svchef/internal/errors"
	"github.com/example/svchef/internal/logger"
	"github.com/example/svchef/internal/model"
	"github.com/example/svchef/internal/svlang"
)

// arena resolves declared types into document nodes for one extraction.
// Named composites and aliases are memoized by type name, so every
// reference to a type shares one resolved node; scalars are built fresh
// per occurrence. The visiting set catches definitions that reach back
// into themselves before diverging.
type arena struct {
	unit     CompilationUnit
	resolved map[string]*model.TypeNode
	visiting map[string]bool
	trail    []string
}

func newArena(unit CompilationUnit) *arena {
	return &arena{
		unit:     unit,
		resolved: make(map[string]*model.TypeNode),
		visiting: make(map[string]bool),
	}
}

// resolveText resolves declared type text (as it appears in a port,
// member or alias declaration) into a node.
func (a *arena) resolveText(typeText string) (*model.TypeNode, error) {
	shape, ok := a.unit.Shape(typeText)
	if !ok {
		return nil, errors.NewUnsupportedConstruct("cannot interpret type %q", typeText)
	}
	return a.resolveShape(shape)
}

func (a *arena) resolveShape(shape *svlang.Shape) (*model.TypeNode, error) {
	switch shape.Kind {
	case svlang.ShapeScalar:
		return model.Scalar(shape.Name, shape.BitRange, shape.Signed), nil
	case svlang.ShapeUnsupported:
		return nil, errors.NewUnsupportedConstruct("type %q uses an unsupported construct", shape.Name)
	}

	if node, ok := a.resolved[shape.Name]; ok {
		logger.Debugw("arena hit", "type", shape.Name)
		return node, nil
	}
	if a.visiting[shape.Name] {
		return nil, errors.NewCyclicType(a.cyclePath(shape.Name))
	}
	a.visiting[shape.Name] = true
	a.trail = append(a.trail, shape.Name)
	defer func() {
		delete(a.visiting, shape.Name)
		a.trail = a.trail[:len(a.trail)-1]
	}()

	var node *model.TypeNode
	switch shape.Kind {
	case svlang.ShapeAlias:
		target, err := a.resolveText(shape.Target)
		if err != nil {
			return nil, err
		}
		node = &model.TypeNode{Kind: model.KindAlias, Name: shape.Name, Target: target}
	case svlang.ShapeStruct, svlang.ShapeUnion:
		kind := model.KindStruct
		if shape.Kind == svlang.ShapeUnion {
			kind = model.KindUnion
		}
		fields := make([]model.Field, 0, len(shape.Members))
		for _, member := range shape.Members {
			fieldType, err := a.resolveText(member.TypeText)
			if err != nil {
				return nil, errors.Wrapf(err, "member %s.%s", shape.Name, member.Name)
			}
			fields = append(fields, model.Field{
				Name:        member.Name,
				Type:        fieldType,
				Description: member.Description,
			})
		}
		node = &model.TypeNode{Kind: kind, Name: shape.Name, Fields: fields}
	default:
		return nil, errors.NewUnsupportedConstruct("type %q uses an unsupported construct", shape.Name)
	}

	a.resolved[shape.Name] = node
	logger.Debugw("arena miss, resolved", "type", shape.Name, "kind", node.Kind)
	return node, nil
}

// cyclePath renders the resolution trail from the first visit of name
// back around to it, e.g. "a_t -> b_t -> a_t".
func (a *arena) cyclePath(name string) string {
	path := a.trail
	for i, n := range path {
		if n == name {
			path = path[i:]
			break
		}
	}
	return strings.Join(append(append([]string{}, path...), name), " -> ")
}
