package graph

import (
	"github.com/emre-synnada/mithril/shape"
	"github.com/emre-synnada/mithril/typesys"
)

// Role distinguishes a port's direction on its owning vertex.
type Role int

const (
	RoleInput Role = iota
	RoleOutput
)

func (r Role) String() string {
	if r == RoleOutput {
		return "output"
	}
	return "input"
}

// EndpointKind tags how a port's connection was declared (spec §4.5).
type EndpointKind int

const (
	// EndpointUnbound: no connection declared yet (transient during build).
	EndpointUnbound EndpointKind = iota
	// EndpointAlias: a string naming a key at the enclosing scope.
	EndpointAlias
	// EndpointEdge: one or more (submodel, port) references.
	EndpointEdge
	// EndpointLiteral: a literal value, pinning the port static.
	EndpointLiteral
)

// EdgeTarget is one producer or consumer reference named by a connect list.
type EdgeTarget struct {
	Submodel string // as declared; resolved to Vertex once the graph is built
	Port     string
	Vertex   VertexID
	PortID   PortID
}

// LiteralValue is a scalar value pinned directly in a connections table.
type LiteralValue struct {
	Atom  typesys.Atom // Bool, Int, or Float
	Bool  bool
	Int   int
	Float float64
}

// Endpoint is the resolved connection descriptor for one port, per spec
// §4.5. At most one of Alias, Targets, Literal is meaningful, selected by
// Kind; TypeBound additionally narrows an EndpointAlias.
type Endpoint struct {
	Kind         EndpointKind
	Alias        string
	HasTypeBound bool
	TypeBound    typesys.Type
	Targets      []EdgeTarget
	Literal      LiteralValue
}

// Port is a named, typed, shaped input or output of a vertex.
type Port struct {
	ID       PortID
	Owner    VertexID
	Name     string
	Role     Role
	Shape shape.Term
	// Type is a pointer so a composite's boundary port can share the exact
	// same type cell as the internal anchor port(s) it projects — a type
	// refinement on either side is then visible through both, the same
	// way shared dim-var ids keep Shape consistent without any extra
	// bookkeeping.
	Type     *typesys.Type
	Endpoint Endpoint

	// Static is set by the static-key propagator (spec §4.7). It starts
	// false and only ever flips to true — the propagator is a monotone
	// least-fixpoint, never a retraction.
	Static bool
}
