package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDescriptionRoundTripsThroughJSON(t *testing.T) {
	g := NewGraph("Model")
	g.AddSubmodel("a", KindPrimitive)
	g.Vertex(mustSubmodel(t, g, "a")).Op = OpRelu
	g.Connections["a"] = []PortConnection{
		{Port: "input", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "input"}},
		{Port: "output", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "output"}},
	}

	raw, err := g.ToDescription()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "Model", decoded["name"])

	submodels, ok := decoded["submodels"].(map[string]interface{})
	require.True(t, ok)
	_, ok = submodels["a"]
	assert.True(t, ok)
}

func TestToDescriptionPreservesConnectionOrder(t *testing.T) {
	g := NewGraph("Model")
	g.AddSubmodel("a", KindPrimitive)
	g.Vertex(mustSubmodel(t, g, "a")).Op = OpAdd
	g.Connections["a"] = []PortConnection{
		{Port: "left", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "left"}},
		{Port: "right", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "right"}},
		{Port: "output", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "output"}},
	}

	raw, err := g.ToDescription()
	require.NoError(t, err)

	// connections.a's keys must appear in declaration order in the raw
	// bytes, since encoding/json would otherwise be free to reorder them
	// -- check the substring positions directly rather than decoding into
	// a map, which would lose the very order being tested.
	text := string(raw)
	leftAt := indexOf(t, text, `"left"`)
	rightAt := indexOf(t, text, `"right"`)
	outputAt := indexOf(t, text, `"output"`)
	assert.True(t, leftAt < rightAt && rightAt < outputAt, "expected left < right < output in %s", text)
}

func indexOf(t *testing.T, s, substr string) int {
	t.Helper()
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	t.Fatalf("substring %q not found in %q", substr, s)
	return -1
}

func TestToDescriptionEmitsExposedKeysWhenPresent(t *testing.T) {
	g := NewGraph("Model")
	g.HasExposedKeys = true
	g.ExposedKeys = []string{"x", "y"}
	g.AddSubmodel("a", KindPrimitive)
	g.Vertex(mustSubmodel(t, g, "a")).Op = OpRelu
	g.Connections["a"] = []PortConnection{
		{Port: "input", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "x"}},
		{Port: "output", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "y"}},
	}

	raw, err := g.ToDescription()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	keys, ok := decoded["exposed_keys"].([]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"x", "y"}, keys)
}

func TestToDescriptionOmitsExposedKeysWhenNotSet(t *testing.T) {
	g := NewGraph("Model")
	g.AddSubmodel("a", KindPrimitive)
	g.Vertex(mustSubmodel(t, g, "a")).Op = OpRelu

	raw, err := g.ToDescription()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	_, ok := decoded["exposed_keys"]
	assert.False(t, ok)
}

func TestToDescriptionEncodesEdgeConnectTarget(t *testing.T) {
	g := NewGraph("Model")
	g.AddSubmodel("a", KindPrimitive)
	g.AddSubmodel("b", KindPrimitive)
	g.Vertex(mustSubmodel(t, g, "a")).Op = OpRelu
	g.Vertex(mustSubmodel(t, g, "b")).Op = OpRelu
	g.Connections["a"] = []PortConnection{
		{Port: "input", Endpoint: Endpoint{Kind: EndpointAlias, Alias: "input"}},
	}
	g.Connections["b"] = []PortConnection{
		{Port: "input", Endpoint: Endpoint{
			Kind:    EndpointEdge,
			Targets: []EdgeTarget{{Submodel: "a", Port: "output"}},
		}},
	}

	raw, err := g.ToDescription()
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	conns := decoded["connections"].(map[string]interface{})
	b := conns["b"].(map[string]interface{})
	input := b["input"].(map[string]interface{})
	connect, ok := input["connect"].([]interface{})
	require.True(t, ok)
	require.Len(t, connect, 1)
	pair := connect[0].([]interface{})
	assert.Equal(t, []interface{}{"a", "output"}, pair)
}

func mustSubmodel(t *testing.T, g *Graph, name string) VertexID {
	t.Helper()
	id, ok := g.Submodel(name)
	require.True(t, ok)
	return id
}
