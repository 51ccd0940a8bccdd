package description

import (
	"fmt"

	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/typesys"
)

// Build converts a parsed Node tree into a structural graph.Graph: vertices
// and their declared connections tables exist, but no ports have been
// instantiated yet — that is the inference driver's job (spec §4.6 Build
// phase), kept deliberately separate from parsing.
func Build(root *Node) (*graph.Graph, error) {
	return buildNode(root, graph.Path{})
}

func buildNode(node *Node, path graph.Path) (*graph.Graph, error) {
	g := graph.NewGraph(node.Name)
	g.ExposedKeys = node.ExposedKeys
	g.HasExposedKeys = node.HasExposedKeys

	for _, name := range node.SubmodelOrder {
		child := node.Submodels[name]
		childPath := path.Child(name)

		if len(child.SubmodelOrder) > 0 {
			id := g.AddSubmodel(name, graph.KindComposite)
			sub, err := buildNode(child, childPath)
			if err != nil {
				return nil, err
			}
			g.Vertex(id).Sub = sub
			continue
		}

		op, ok := graph.LookupOp(child.Name)
		if !ok {
			return nil, core.New(core.KindUnknownReference, childPath.String(), child.Name)
		}
		id := g.AddSubmodel(name, graph.KindPrimitive)
		g.Vertex(id).Op = op
	}

	for sub, ports := range node.Connections {
		order := node.ConnectionOrder[sub]
		conns := make([]graph.PortConnection, 0, len(order))
		for _, port := range order {
			ep, err := resolveEndpoint(ports[port])
			if err != nil {
				return nil, fmt.Errorf("%s.%s.%s: %w", path, sub, port, err)
			}
			conns = append(conns, graph.PortConnection{Port: port, Endpoint: ep})
		}
		g.Connections[sub] = conns
	}

	return g, nil
}

func resolveEndpoint(raw RawEndpoint) (graph.Endpoint, error) {
	ep := graph.Endpoint{Kind: raw.Kind}

	switch raw.Kind {
	case graph.EndpointAlias:
		ep.Alias = raw.Alias
		if raw.HasTypeBound {
			ep.HasTypeBound = true
			ep.TypeBound = tensorBoundFromElements(raw.TypeElements)
		}

	case graph.EndpointEdge:
		ep.Targets = make([]graph.EdgeTarget, len(raw.Targets))
		for i, t := range raw.Targets {
			ep.Targets[i] = graph.EdgeTarget{
				Submodel: t[0],
				Port:     t[1],
				Vertex:   graph.InvalidVertex,
				PortID:   graph.InvalidPort,
			}
		}

	case graph.EndpointLiteral:
		switch {
		case raw.LiteralIsBool:
			ep.Literal = graph.LiteralValue{Atom: typesys.Bool, Bool: raw.LiteralBool}
		case raw.LiteralIsInt:
			ep.Literal = graph.LiteralValue{Atom: typesys.Int, Int: raw.LiteralInt}
		default:
			ep.Literal = graph.LiteralValue{Atom: typesys.Float, Float: raw.LiteralFloat}
		}
	}

	return ep, nil
}

func tensorBoundFromElements(names []string) typesys.Type {
	var elements typesys.Atom
	for _, name := range names {
		switch name {
		case "bool":
			elements |= typesys.Bool
		case "int":
			elements |= typesys.Int
		case "float":
			elements |= typesys.Float
		}
	}
	return typesys.NewTensor(elements)
}
