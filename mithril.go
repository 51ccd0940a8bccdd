package mithril

import (
	"encoding/json"

	"github.com/emre-synnada/mithril/description"
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/infer"
	"github.com/emre-synnada/mithril/shape"
	"github.com/emre-synnada/mithril/static"
	"github.com/emre-synnada/mithril/summary"
	"go.uber.org/zap"
)

// Report is the result of a full Infer call (spec §6 "Result").
type Report struct {
	Graph      *graph.Graph
	Solver     *shape.Solver
	StaticKeys []string
	Summary    string
}

// Infer parses raw (a graph description document), runs the full
// inference pipeline, computes static keys, and renders the hierarchical
// summary — the single entry point cmd/mithrilc's subcommands call into.
// overrideStaticInputs is merged over (and takes precedence on key
// collision with) any static_input_shapes declared inside raw itself; it
// may be nil. log may be nil.
func Infer(raw []byte, overrideStaticInputs map[string][]int, log *zap.Logger) (*Report, error) {
	var node description.Node
	if err := json.Unmarshal(raw, &node); err != nil {
		return nil, err
	}
	if len(overrideStaticInputs) > 0 {
		if node.StaticInputShapes == nil {
			node.StaticInputShapes = make(map[string][]int, len(overrideStaticInputs))
		}
		for k, v := range overrideStaticInputs {
			node.StaticInputShapes[k] = v
		}
	}

	g, err := description.Build(&node)
	if err != nil {
		return nil, err
	}

	result, err := infer.Run(g, node.StaticInputShapes, log)
	if err != nil {
		return nil, err
	}

	seed := make(map[string]bool, len(node.StaticInputShapes))
	for key := range node.StaticInputShapes {
		seed[key] = true
	}
	staticKeys := static.Propagate(g, seed)

	return &Report{
		Graph:      g,
		Solver:     result.Solver,
		StaticKeys: staticKeys,
		Summary:    summary.Render(g, result.Solver),
	}, nil
}
