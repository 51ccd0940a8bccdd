// Package infer is the inference driver (spec §4.6): it walks a built
// graph.Graph, instantiates every vertex's ports, resolves each submodel's
// declared connections, and unifies shapes and types across aliases and
// edges until the solver's union-find and the type lattice have no more
// constraints to apply.
package infer

import (
	"fmt"

	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/primitives"
)

// structure walks g recursively, instantiating every vertex's ports and
// resolving its connections table, fully finishing each composite submodel
// (including its own nested structure) before returning to compute that
// submodel's boundary ports. Dim-vars are allocated in the preorder this
// walk naturally produces: a submodel's primitive ports are freshened the
// moment it's visited, and a composite submodel is fully descended into
// before its next sibling is touched.
func structure(g *graph.Graph, alloc *core.DimAllocator, path graph.Path) error {
	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		childPath := path.Child(name)

		switch v.Kind {
		case graph.KindPrimitive:
			ok, _ := primitives.Instantiate(g, id, v.Op, alloc)
			if !ok {
				return core.Wrap(core.KindUnknownReference, childPath.String(),
					fmt.Errorf("no primitive registered for op %s", v.Op), name)
			}
		case graph.KindComposite:
			if err := structure(v.Sub, alloc, childPath); err != nil {
				return err
			}
			exposeBoundary(g, id, v)
		}
	}

	for _, name := range g.SubmodelOrder {
		id, _ := g.Submodel(name)
		if err := resolveConnections(g, name, id, path); err != nil {
			return err
		}
	}
	return nil
}

// exposeBoundary gives a composite submodel its boundary ports: one per
// exposed key, each sharing the shape/type of whichever internal alias
// group (inside the submodel's own graph) declared that key name. This is
// the only place composite re-projection (spec §4.5) is handled specially
// — everything downstream treats a composite vertex's ports exactly like a
// primitive's.
func exposeBoundary(parent *graph.Graph, id graph.VertexID, v *graph.Vertex) {
	sub := v.Sub
	keys := exposedKeySet(sub)
	for _, key := range keys {
		anchors := sub.AliasPorts[key]
		if len(anchors) == 0 {
			continue
		}
		anchor := sub.Port(anchors[0])
		portID := parent.Arena.NewPort(id, key, anchor.Role)
		boundary := parent.Port(portID)
		// The boundary port starts out carrying the exact same dim-var ids
		// as the internal anchor (Term values are copied, not re-allocated),
		// which is what ties it to the internal alias group — no separate
		// cross-arena bookkeeping is needed.
		boundary.Shape = anchor.Shape
		boundary.Type = anchor.Type
	}
}

// exposedKeySet resolves Design Decision D1: an explicit exposed_keys list
// is used verbatim; when the key is omitted, every alias actually
// referenced by the composite's own connections table is exposed instead
// (never more — an alias nobody mentioned inside the composite isn't a key
// some enclosing graph could usefully reference anyway).
func exposedKeySet(sub *graph.Graph) []string {
	if sub.HasExposedKeys {
		return sub.ExposedKeys
	}
	return sub.AliasOrder
}
