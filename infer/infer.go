package infer

import (
	"github.com/emre-synnada/mithril/core"
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/shape"
	"go.uber.org/zap"
)

// Result is the outcome of a successful Run: the solver holding every
// dim-var's final equivalence class, and the allocator's final count for
// diagnostics/metrics.
type Result struct {
	Solver *shape.Solver
	Alloc  *core.DimAllocator
}

// Run executes the full inference pipeline (spec §4.6) over root: the
// structural build (instantiate every vertex, resolve every connection),
// cycle and missing-port validation, the static_input_shapes directive
// (spec §6), and the constraint phase that unifies shapes and types to
// their fixpoint. log may be nil; a nil logger is treated as zap.NewNop()
// throughout. staticInputShapes may be nil.
func Run(root *graph.Graph, staticInputShapes map[string][]int, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	alloc := core.NewDimAllocator()
	solver := shape.NewSolver()
	path := graph.Path{root.Name}

	log.Info("building graph structure", zap.String("model", root.Name))
	if err := structure(root, alloc, path); err != nil {
		return nil, err
	}
	if err := detectCycles(root, path); err != nil {
		return nil, err
	}
	if err := checkMissingPorts(root, path); err != nil {
		return nil, err
	}

	if err := bindStaticShapes(root, solver, staticInputShapes, path); err != nil {
		return nil, err
	}

	log.Info("running constraint phase", zap.Int("dim-vars", alloc.Count()))
	if err := unify(root, solver, path, log); err != nil {
		return nil, err
	}

	return &Result{Solver: solver, Alloc: alloc}, nil
}

// bindStaticShapes applies the static_input_shapes directive: each
// outermost-scope key's declared concrete dims are unified against every
// port in that key's alias group, the same way any other shape unification
// would be — a concrete shape is just a FixedTerm of concrete atoms.
func bindStaticShapes(root *graph.Graph, solver *shape.Solver, shapes map[string][]int, path graph.Path) error {
	for key, dims := range shapes {
		ports, ok := root.AliasPorts[key]
		if !ok {
			return core.New(core.KindUnknownReference, path.String(), key)
		}
		atoms := make([]shape.Atom, len(dims))
		for i, d := range dims {
			atoms[i] = shape.ConcreteAtom(d)
		}
		want := shape.FixedTerm(atoms...)
		for _, id := range ports {
			port := root.Port(id)
			if err := solver.UnifyShapes(port.Shape, want); err != nil {
				return core.Wrap(core.KindRankMismatch, path.String(), err, key)
			}
		}
	}
	return nil
}
