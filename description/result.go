package description

import (
	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/shape"
	"github.com/emre-synnada/mithril/summary"
)

// PortResult is one port's resolved inference outcome.
type PortResult struct {
	Name       string `json:"name"`
	Role       string `json:"role"`
	Shape      string `json:"shape"`
	Type       string `json:"type"`
	Connection string `json:"connection"`
	Static     bool   `json:"static"`
}

// VertexResult is one submodel's resolved outcome; Sub is set only when the
// submodel is itself a composite.
type VertexResult struct {
	Name  string       `json:"name"`
	Op    string       `json:"op,omitempty"`
	Ports []PortResult `json:"ports"`
	Sub   *Result      `json:"sub,omitempty"`
}

// Result is the structured counterpart to the plain-text summary (spec §6):
// everything Infer resolved about the graph, for callers that want typed
// access instead of parsing the rendered table. StaticKeys and Summary are
// only meaningful on the outermost Result.
type Result struct {
	Name       string         `json:"name"`
	Vertices   []VertexResult `json:"vertices"`
	StaticKeys []string       `json:"static_keys,omitempty"`
	Summary    string         `json:"summary,omitempty"`
}

// BuildResult resolves g's full inference outcome against solver into a
// Result tree, attaching staticKeys and summaryText at the outermost level
// only. It always walks the full graph regardless of any CLI display
// options — those only narrow what the plain-text table shows.
func BuildResult(g *graph.Graph, solver *shape.Solver, staticKeys []string, summaryText string) *Result {
	snap := summary.BuildSnapshot(g, solver, -1, false)
	result := convertSnapshot(snap)
	result.StaticKeys = staticKeys
	result.Summary = summaryText
	return result
}

func convertSnapshot(snap *summary.Snapshot) *Result {
	r := &Result{Name: snap.Name}
	for _, vr := range snap.Vertices {
		out := VertexResult{Name: vr.Name}
		if vr.Sub != nil {
			out.Sub = convertSnapshot(vr.Sub)
		} else {
			out.Op = vr.Label
		}
		for _, p := range vr.Ports {
			out.Ports = append(out.Ports, PortResult{
				Name:       p.Name,
				Role:       p.Role,
				Shape:      p.Shape,
				Type:       p.Type,
				Connection: p.Connection,
				Static:     p.Static,
			})
		}
		r.Vertices = append(r.Vertices, out)
	}
	return r
}
