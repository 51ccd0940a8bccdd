package infer

import (
	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
)

// checkMissingPorts enforces spec §7's missing-port rule: a primitive's
// input port must be connected, aliased, or literal-pinned. Outputs are
// exempt — an unconnected output simply renders "--" in the summary.
func checkMissingPorts(g *graph.Graph, path graph.Path) error {
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		childPath := path.Child(name)

		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Role == graph.RoleInput && port.Endpoint.Kind == graph.EndpointUnbound {
				return core.New(core.KindMissingPort, childPath.String(), port.Name)
			}
		}
		if v.Kind == graph.KindComposite {
			if err := checkMissingPorts(v.Sub, childPath); err != nil {
				return err
			}
		}
	}
	return nil
}

// detectCycles walks g's edges (submodel -> submodel, following EndpointEdge
// targets from consumer to producer) with Kahn's algorithm, the way the
// teacher's compiler.detectCycles walked its instruction dependency graph:
// repeatedly remove zero-in-degree nodes; anything left over sits on a
// cycle.
func detectCycles(g *graph.Graph, path graph.Path) error {
	indegree := make(map[graph.VertexID]int)
	edges := make(map[graph.VertexID][]graph.VertexID)
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		indegree[id] = 0
	}
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Endpoint.Kind != graph.EndpointEdge {
				continue
			}
			for _, t := range port.Endpoint.Targets {
				// edge: t.Vertex (producer) must run before id (consumer)
				edges[t.Vertex] = append(edges[t.Vertex], id)
				indegree[id]++
			}
		}
	}

	var queue []graph.VertexID
	for id, deg := range indegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	visited := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		visited++
		for _, next := range edges[cur] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}
	if visited != len(indegree) {
		return core.New(core.KindCycle, path.String())
	}

	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		if v.Kind == graph.KindComposite {
			if err := detectCycles(v.Sub, path.Child(name)); err != nil {
				return err
			}
		}
	}
	return nil
}
