package graph

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/emre-synnada/mithril/typesys"
)

// ToDescription re-emits g as the canonical JSON description document it
// could have been parsed from (spec §6), preserving declared submodel and
// connection order at every level — the inverse of description.Build, used
// by the round-trip property test (spec §8). encoding/json.Marshal cannot
// be used directly for the submodels/connections objects since Go maps
// don't preserve insertion order and the decoder relies on that order being
// recoverable; this writes the object punctuation by hand while still
// leaning on encoding/json for every scalar value's own encoding.
func (g *Graph) ToDescription() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeComposite(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeComposite(buf *bytes.Buffer, g *Graph) error {
	buf.WriteByte('{')

	if err := writeRawField(buf, "name", g.Name); err != nil {
		return err
	}

	buf.WriteString(`,"submodels":{`)
	for i, name := range g.SubmodelOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeKey(buf, name); err != nil {
			return err
		}
		id, _ := g.Submodel(name)
		v := g.Vertex(id)
		if v.Kind == KindComposite {
			if err := writeComposite(buf, v.Sub); err != nil {
				return err
			}
			continue
		}
		buf.WriteByte('{')
		if err := writeRawField(buf, "name", v.Op.String()); err != nil {
			return err
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	buf.WriteString(`,"connections":{`)
	first := true
	for _, name := range g.SubmodelOrder {
		conns := g.Connections[name]
		if len(conns) == 0 {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false
		if err := writeKey(buf, name); err != nil {
			return err
		}
		buf.WriteByte('{')
		for j, pc := range conns {
			if j > 0 {
				buf.WriteByte(',')
			}
			if err := writeKey(buf, pc.Port); err != nil {
				return err
			}
			if err := writeEndpoint(buf, pc.Endpoint); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')

	if g.HasExposedKeys {
		buf.WriteString(`,"exposed_keys":`)
		raw, err := json.Marshal(g.ExposedKeys)
		if err != nil {
			return err
		}
		buf.Write(raw)
	}

	buf.WriteByte('}')
	return nil
}

func writeEndpoint(buf *bytes.Buffer, ep Endpoint) error {
	switch ep.Kind {
	case EndpointAlias:
		if !ep.HasTypeBound {
			return writeRawValue(buf, ep.Alias)
		}
		buf.WriteByte('{')
		if err := writeRawField(buf, "name", ep.Alias); err != nil {
			return err
		}
		buf.WriteString(`,"type":{"Tensor":`)
		raw, err := json.Marshal(elementNames(ep.TypeBound.ElementSet()))
		if err != nil {
			return err
		}
		buf.Write(raw)
		buf.WriteString("}}")
		return nil

	case EndpointEdge:
		buf.WriteString(`{"connect":[`)
		for i, t := range ep.Targets {
			if i > 0 {
				buf.WriteByte(',')
			}
			raw, err := json.Marshal([2]string{t.Submodel, t.Port})
			if err != nil {
				return err
			}
			buf.Write(raw)
		}
		buf.WriteString("]}")
		return nil

	case EndpointLiteral:
		return writeLiteral(buf, ep.Literal)

	default:
		return fmt.Errorf("graph: cannot re-emit an unbound endpoint")
	}
}

func writeLiteral(buf *bytes.Buffer, v LiteralValue) error {
	var raw []byte
	var err error
	switch v.Atom {
	case typesys.Bool:
		raw, err = json.Marshal(v.Bool)
	case typesys.Int:
		raw, err = json.Marshal(v.Int)
	default:
		raw, err = json.Marshal(v.Float)
	}
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

func elementNames(e typesys.Atom) []string {
	var names []string
	if e&typesys.Bool != 0 {
		names = append(names, "bool")
	}
	if e&typesys.Int != 0 {
		names = append(names, "int")
	}
	if e&typesys.Float != 0 {
		names = append(names, "float")
	}
	return names
}

func writeKey(buf *bytes.Buffer, key string) error {
	raw, err := json.Marshal(key)
	if err != nil {
		return err
	}
	buf.Write(raw)
	buf.WriteByte(':')
	return nil
}

func writeRawValue(buf *bytes.Buffer, s string) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(raw)
	return nil
}

func writeRawField(buf *bytes.Buffer, key, value string) error {
	if err := writeKey(buf, key); err != nil {
		return err
	}
	return writeRawValue(buf, value)
}
