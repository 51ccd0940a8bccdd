// Package description parses the graph description wire format (spec §6)
// into a structural graph.Graph. Byte-level JSON lexing is explicitly out
// of scope for this engine — encoding/json does the actual decoding — but
// Go's map type does not preserve key order, and declaration order is load
// bearing here (dim-var allocation and summary rendering both depend on it,
// spec §5). So this package reads each object level through a
// json.Decoder's token stream instead of unmarshalling straight into a Go
// map, which is enough to recover that order without writing a parser.
package description

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node is one level of the graph description: either a primitive (Name set,
// everything else empty) or a composite (SubmodelOrder/Connections
// populated).
type Node struct {
	Name string

	SubmodelOrder   []string
	Submodels       map[string]*Node
	ConnectionOrder map[string][]string
	Connections     map[string]map[string]RawEndpoint

	ExposedKeys    []string
	HasExposedKeys bool

	// StaticInputShapes is only meaningful on the outermost Node — the
	// static_input_shapes directive from spec §6 — but is parsed
	// unconditionally since nothing stops a caller from attaching it
	// anywhere and the zero value (nil) is harmless if unused.
	StaticInputShapes map[string][]int
}

// UnmarshalJSON implements the order-preserving decode described in the
// package doc.
func (n *Node) UnmarshalJSON(data []byte) error {
	order, fields, err := orderedObject(data)
	_ = order // the top-level description's own key order never matters
	if err != nil {
		return err
	}

	if raw, ok := fields["name"]; ok {
		if err := json.Unmarshal(raw, &n.Name); err != nil {
			return fmt.Errorf("description: name: %w", err)
		}
	}

	if raw, ok := fields["submodels"]; ok {
		names, subs, err := orderedObject(raw)
		if err != nil {
			return fmt.Errorf("description: submodels: %w", err)
		}
		n.SubmodelOrder = names
		n.Submodels = make(map[string]*Node, len(names))
		for _, name := range names {
			child := &Node{}
			if err := json.Unmarshal(subs[name], child); err != nil {
				return fmt.Errorf("description: submodels.%s: %w", name, err)
			}
			n.Submodels[name] = child
		}
	}

	if raw, ok := fields["connections"]; ok {
		subNames, subRaw, err := orderedObject(raw)
		if err != nil {
			return fmt.Errorf("description: connections: %w", err)
		}
		n.ConnectionOrder = make(map[string][]string, len(subNames))
		n.Connections = make(map[string]map[string]RawEndpoint, len(subNames))
		for _, sub := range subNames {
			portNames, portRaw, err := orderedObject(subRaw[sub])
			if err != nil {
				return fmt.Errorf("description: connections.%s: %w", sub, err)
			}
			n.ConnectionOrder[sub] = portNames
			ports := make(map[string]RawEndpoint, len(portNames))
			for _, port := range portNames {
				var ep RawEndpoint
				if err := json.Unmarshal(portRaw[port], &ep); err != nil {
					return fmt.Errorf("description: connections.%s.%s: %w", sub, port, err)
				}
				ports[port] = ep
			}
			n.Connections[sub] = ports
		}
	}

	if raw, ok := fields["static_input_shapes"]; ok {
		if err := json.Unmarshal(raw, &n.StaticInputShapes); err != nil {
			return fmt.Errorf("description: static_input_shapes: %w", err)
		}
	}

	if raw, ok := fields["exposed_keys"]; ok {
		n.HasExposedKeys = true
		if err := json.Unmarshal(raw, &n.ExposedKeys); err != nil {
			return fmt.Errorf("description: exposed_keys: %w", err)
		}
	}

	return nil
}

// orderedObject decodes a JSON object's top-level keys in declaration
// order, alongside the raw bytes of each value for a second-pass decode.
func orderedObject(data []byte) ([]string, map[string]json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected object, got %v", tok)
	}

	var order []string
	fields := make(map[string]json.RawMessage)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, nil, fmt.Errorf("object key %q: %w", key, err)
		}
		order = append(order, key)
		fields[key] = raw
	}
	return order, fields, nil
}
