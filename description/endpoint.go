package description

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/emre-synnada/mithril/graph"
)

// RawEndpoint is an endpoint spec (spec §6) before it is resolved against an
// actual arena: alias names and edge targets are still plain strings.
type RawEndpoint struct {
	Kind graph.EndpointKind

	Alias string

	HasTypeBound bool
	TypeElements []string // e.g. ["int","float","bool"] from {"Tensor": [...]}

	Targets [][2]string // (submodel, port) pairs, for EndpointEdge

	LiteralIsBool bool
	LiteralBool   bool
	LiteralIsInt  bool
	LiteralInt    int
	LiteralFloat  float64
}

type rawObjectEndpoint struct {
	Connect [][2]string         `json:"connect,omitempty"`
	Name    string              `json:"name,omitempty"`
	Type    map[string][]string `json:"type,omitempty"`
}

// UnmarshalJSON dispatches on the JSON value's shape: a string is an
// alias, an object is either an edge or an annotated alias, and a
// number/bool is a literal pin.
func (e *RawEndpoint) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		e.Kind = graph.EndpointAlias
		e.Alias = s
		return nil

	case '{':
		var obj rawObjectEndpoint
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		if len(obj.Connect) > 0 {
			e.Kind = graph.EndpointEdge
			e.Targets = obj.Connect
			return nil
		}
		e.Kind = graph.EndpointAlias
		e.Alias = obj.Name
		if obj.Type != nil {
			e.HasTypeBound = true
			e.TypeElements = obj.Type["Tensor"]
		}
		return nil

	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		e.Kind = graph.EndpointLiteral
		e.LiteralIsBool = true
		e.LiteralBool = b
		return nil

	default:
		var num json.Number
		if err := json.Unmarshal(data, &num); err != nil {
			return err
		}
		e.Kind = graph.EndpointLiteral
		if !strings.ContainsAny(num.String(), ".eE") {
			if i, err := num.Int64(); err == nil {
				e.LiteralIsInt = true
				e.LiteralInt = int(i)
				return nil
			}
		}
		f, err := num.Float64()
		if err != nil {
			return err
		}
		e.LiteralFloat = f
		return nil
	}
}
