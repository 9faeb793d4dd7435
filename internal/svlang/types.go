package svlang

// ShapeKind classifies what a declared type name resolves to.
type ShapeKind int

const (
	// ShapeScalar is a scalar or packed vector (logic, wire, bit [7:0], ...).
	ShapeScalar ShapeKind = iota
	// ShapeStruct is a packed struct definition.
	ShapeStruct
	// ShapeUnion is a packed union definition.
	ShapeUnion
	// ShapeAlias is a typedef of another type, target still textual.
	ShapeAlias
	// ShapeUnsupported marks a definition the subset cannot represent,
	// such as an enum typedef or an inline anonymous composite.
	ShapeUnsupported
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeScalar:
		return "scalar"
	case ShapeStruct:
		return "struct"
	case ShapeUnion:
		return "union"
	case ShapeAlias:
		return "alias"
	default:
		return "unsupported"
	}
}

// Shape is the declared form of a type as the source states it. Member
// and alias targets stay textual; resolving them into a node tree is the
// extraction engine's job.
type Shape struct {
	Kind     ShapeKind
	Name     string
	BitRange string
	Signed   bool
	Members  []Member
	Target   string
}

// Member is one declared field of a struct or union.
type Member struct {
	Name        string
	TypeText    string
	Description string
}

// ModuleDecl is one module header as declared in source.
type ModuleDecl struct {
	Name   string
	File   string
	Params []ParamDecl
	Ports  []PortDecl
}

// ParamDecl is one parameter declaration, values kept verbatim.
type ParamDecl struct {
	Name        string
	TypeText    string
	Default     string
	Description string
}

// PortDecl is one port declaration. Direction is the bare keyword, after
// inheritance; DirectionRaw is the source region around the declaration's
// own keyword, comment decoration included, ready for strategy cleaning.
// Inherited marks ports whose declaration carried no keyword of its own
// and took the previous port's direction.
type PortDecl struct {
	Name         string
	Direction    string
	DirectionRaw string
	Inherited    bool
	TypeText     string
	DefaultValue string
	Description  string
}
