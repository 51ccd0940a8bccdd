// Package static implements the static-key propagator (spec §4.7): the
// least fixpoint that decides which external keys at a graph's outermost
// scope are determined at build time rather than supplied at runtime.
package static

import (
	"sort"

	"github.com/emre-synnada/mithril/graph"
)

// Propagate computes Static on every port of root and its nested
// composites, seeded by seed (the outermost keys declared in
// static_input_shapes), and returns the sorted static_keys result: the
// outermost-scope external keys whose value ended up determined.
func Propagate(root *graph.Graph, seed map[string]bool) []string {
	seedRoot(root, seed)
	seedDanglingInputs(root)
	for propagateOnce(root) {
	}
	return collectStaticKeys(root)
}

func seedRoot(root *graph.Graph, seed map[string]bool) {
	for alias := range seed {
		for _, id := range root.AliasPorts[alias] {
			root.Port(id).Static = true
		}
	}
}

// seedDanglingInputs marks every outermost external-input alias group that
// has no downstream consumer as static: an input nothing ever reads the
// value of might as well have been supplied at build time. "Consumes" is
// transitive — an input feeding a chain of edges that eventually dead-ends
// without ever reaching an exposed output is just as dangling as an input
// feeding nothing at all. This only looks at root's own scope — a nested
// composite's unconsumed inputs are its own composite's business, not the
// outermost static_keys result.
func seedDanglingInputs(root *graph.Graph) {
	live := liveOutputs(root)

	for _, alias := range root.AliasOrder {
		ports := root.AliasPorts[alias]
		if !allInputs(root, ports) {
			continue
		}
		if feedsLiveOutput(root, ports, live) {
			continue
		}
		for _, id := range ports {
			root.Port(id).Static = true
		}
	}
}

// liveOutputs computes, by backward fixpoint through root's own edges, every
// output port whose value is ever actually needed: the aliased (exposed)
// outputs themselves, plus every producer that feeds a vertex with at least
// one live output of its own. An output that never reaches this set is a
// dead end.
func liveOutputs(g *graph.Graph) map[graph.PortID]bool {
	live := make(map[graph.PortID]bool)
	for _, id := range g.Arena.Vertices() {
		v := g.Vertex(id)
		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Role == graph.RoleOutput && port.Endpoint.Kind == graph.EndpointAlias {
				live[portID] = true
			}
		}
	}

	for {
		changed := false
		for _, id := range g.Arena.Vertices() {
			v := g.Vertex(id)
			if !vertexHasLiveOutput(g, v, live) {
				continue
			}
			for _, portID := range v.Ports {
				port := g.Port(portID)
				if port.Endpoint.Kind != graph.EndpointEdge {
					continue
				}
				for _, target := range port.Endpoint.Targets {
					if !live[target.PortID] {
						live[target.PortID] = true
						changed = true
					}
				}
			}
		}
		if !changed {
			return live
		}
	}
}

func vertexHasLiveOutput(g *graph.Graph, v *graph.Vertex, live map[graph.PortID]bool) bool {
	for _, portID := range v.Ports {
		if g.Port(portID).Role == graph.RoleOutput && live[portID] {
			return true
		}
	}
	return false
}

func allInputs(g *graph.Graph, ports []graph.PortID) bool {
	for _, id := range ports {
		if g.Port(id).Role != graph.RoleInput {
			return false
		}
	}
	return true
}

func feedsLiveOutput(g *graph.Graph, ports []graph.PortID, live map[graph.PortID]bool) bool {
	for _, id := range ports {
		owner := g.Vertex(g.Port(id).Owner)
		if vertexHasLiveOutput(g, owner, live) {
			return true
		}
	}
	return false
}

// propagateOnce applies every propagation rule once across the whole tree
// and reports whether anything changed, so Propagate can keep calling it
// until the fixpoint is reached.
func propagateOnce(g *graph.Graph) bool {
	changed := false

	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		if v.Kind == graph.KindComposite {
			if propagateOnce(v.Sub) {
				changed = true
			}
		}
	}

	// Literal pins are always static.
	for _, id := range g.Arena.Vertices() {
		v := g.Vertex(id)
		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Endpoint.Kind == graph.EndpointLiteral && !port.Static {
				port.Static = true
				changed = true
			}
		}
	}

	// Every primitive operator in the registry is purely functional: once
	// all of a primitive vertex's inputs are static, its outputs are too.
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		if v.Kind != graph.KindPrimitive {
			continue
		}
		allStatic := true
		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Role == graph.RoleInput && !port.Static {
				allStatic = false
				break
			}
		}
		if !allStatic {
			continue
		}
		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Role == graph.RoleOutput && !port.Static {
				port.Static = true
				changed = true
			}
		}
	}

	// Directed edges: a consumer fed entirely by static producers is
	// itself static.
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		for _, portID := range v.Ports {
			port := g.Port(portID)
			if port.Endpoint.Kind != graph.EndpointEdge || port.Static {
				continue
			}
			allStatic := len(port.Endpoint.Targets) > 0
			for _, t := range port.Endpoint.Targets {
				if !g.Port(t.PortID).Static {
					allStatic = false
					break
				}
			}
			if allStatic {
				port.Static = true
				changed = true
			}
		}
	}

	// Aliases are an identity relation: if any member of the group is
	// static, every member is.
	for _, alias := range g.AliasOrder {
		ports := g.AliasPorts[alias]
		anyStatic := false
		for _, id := range ports {
			if g.Port(id).Static {
				anyStatic = true
				break
			}
		}
		if !anyStatic {
			continue
		}
		for _, id := range ports {
			port := g.Port(id)
			if !port.Static {
				port.Static = true
				changed = true
			}
		}
	}

	return changed
}

func collectStaticKeys(root *graph.Graph) []string {
	var keys []string
	for _, alias := range root.AliasOrder {
		for _, id := range root.AliasPorts[alias] {
			if root.Port(id).Static {
				keys = append(keys, alias)
				break
			}
		}
	}
	sort.Strings(keys)
	return keys
}
