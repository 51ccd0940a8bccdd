package infer

import (
	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
)

// resolveConnections binds submodel's declared connection table onto its
// now-instantiated ports: every port's Endpoint is set, alias endpoints are
// recorded into g's AliasPorts groups, and edge targets are resolved from
// declared (submodel, port) name pairs to concrete ids.
func resolveConnections(g *graph.Graph, submodel string, id graph.VertexID, path graph.Path) error {
	v := g.Vertex(id)
	for _, pc := range g.Connections[submodel] {
		portID, ok := v.PortByName(g.Arena, pc.Port)
		if !ok {
			return core.New(core.KindUnknownReference, path.String(), submodel+"."+pc.Port)
		}
		port := g.Port(portID)
		port.Endpoint = pc.Endpoint

		switch pc.Endpoint.Kind {
		case graph.EndpointAlias:
			g.RecordAlias(pc.Endpoint.Alias, portID)
		case graph.EndpointEdge:
			for i := range port.Endpoint.Targets {
				t := &port.Endpoint.Targets[i]
				targetVertex, ok := g.Submodel(t.Submodel)
				if !ok {
					return core.New(core.KindUnknownReference, path.String(), t.Submodel)
				}
				targetPort, ok := g.Vertex(targetVertex).PortByName(g.Arena, t.Port)
				if !ok {
					return core.New(core.KindUnknownReference, path.String(), t.Submodel+"."+t.Port)
				}
				// D3: a connect target must name an output (or, for a
				// composite, one of its exposed output keys) — connecting to
				// another input is a structural error, not implicit aliasing.
				if g.Port(targetPort).Role != graph.RoleOutput {
					return core.New(core.KindUnknownReference, path.String(), submodel+"."+pc.Port, t.Submodel+"."+t.Port)
				}
				t.Vertex = targetVertex
				t.PortID = targetPort
			}
		}
	}
	return nil
}
