package summary

import (
	"strings"
	"testing"

	"github.com/emre-synnada/mithril/graph"
	"github.com/emre-synnada/mithril/infer"
	"github.com/emre-synnada/mithril/model"
	"github.com/emre-synnada/mithril/shape"
	"github.com/emre-synnada/mithril/typesys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSnapshotWalksEveryVertex(t *testing.T) {
	g := model.MLP("MLP")
	result, err := infer.Run(g, nil, nil)
	require.NoError(t, err)

	snap := BuildSnapshot(g, result.Solver, -1, false)
	assert.Equal(t, "MLP", snap.Name)
	assert.Len(t, snap.Vertices, 7)
}

func TestBuildSnapshotDepthZeroStopsAtOutermost(t *testing.T) {
	g := model.KernelizedSVMThenMLP("Pipeline")
	result, err := infer.Run(g, nil, nil)
	require.NoError(t, err)

	snap := BuildSnapshot(g, result.Solver, 0, false)
	for _, vr := range snap.Vertices {
		assert.Nil(t, vr.Sub)
	}
}

func TestBuildSnapshotUnlimitedDepthDescendsIntoComposites(t *testing.T) {
	g := model.KernelizedSVMThenMLP("Pipeline")
	result, err := infer.Run(g, nil, nil)
	require.NoError(t, err)

	snap := BuildSnapshot(g, result.Solver, -1, false)
	var sawNested bool
	for _, vr := range snap.Vertices {
		if vr.Sub != nil {
			sawNested = true
		}
	}
	assert.True(t, sawNested)
}

func TestRenderWithOptionsShapesOnlyOmitsTypeColumn(t *testing.T) {
	g := model.MLP("MLP")
	result, err := infer.Run(g, nil, nil)
	require.NoError(t, err)

	opts := DefaultOptions()
	opts.Shapes = true
	opts.Types = false
	text := RenderWithOptions(g, result.Solver, opts)
	assert.NotContains(t, text, "Tensor[")
}

func TestRenderTitleMatchesGraphName(t *testing.T) {
	g := model.MLP("MyModel")
	result, err := infer.Run(g, nil, nil)
	require.NoError(t, err)

	text := Render(g, result.Solver)
	lines := strings.Split(text, "\n")
	require.NotEmpty(t, lines)
	assert.Equal(t, "MyModel", lines[0])
}

// TestRenderRightAlignsShapeAtomsWithinTable exercises spec §4.8's
// alignment rule directly: [1,37,43] and [4] share one table, so every
// atom pads to the widest atom seen anywhere in that table, not just
// within its own shape.
func TestRenderRightAlignsShapeAtomsWithinTable(t *testing.T) {
	g := graph.NewGraph("Align")
	ty := typesys.NewTensor(0)

	v1 := g.AddSubmodel("r1", graph.KindPrimitive)
	in1 := g.Arena.NewPort(v1, "input", graph.RoleInput)
	*g.Port(in1).Type = ty
	g.Port(in1).Shape = shape.FixedTerm(shape.ConcreteAtom(1), shape.ConcreteAtom(37), shape.ConcreteAtom(43))
	g.Port(in1).Endpoint = graph.Endpoint{Kind: graph.EndpointAlias, Alias: "big"}
	g.RecordAlias("big", in1)

	v2 := g.AddSubmodel("r2", graph.KindPrimitive)
	in2 := g.Arena.NewPort(v2, "input", graph.RoleInput)
	*g.Port(in2).Type = ty
	g.Port(in2).Shape = shape.FixedTerm(shape.ConcreteAtom(4))
	g.Port(in2).Endpoint = graph.Endpoint{Kind: graph.EndpointAlias, Alias: "small"}
	g.RecordAlias("small", in2)

	text := Render(g, shape.NewSolver())
	assert.Contains(t, text, "[ 1,37,43]")
	assert.Contains(t, text, "[ 4]")
}

func TestConnectionLabelUsesDollarPrefixForAlias(t *testing.T) {
	g := model.MLP("MLP")
	result, err := infer.Run(g, nil, nil)
	require.NoError(t, err)

	text := Render(g, result.Solver)
	assert.Contains(t, text, "$input")
}
