package cypherparse

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalNode encodes a node and its subtree as JSON. Every object carries
// a "type" key holding the kind name, followed by the node's fields in
// declaration order.
func MarshalNode(n Node) ([]byte, error) {
	var buf bytes.Buffer

	if err := writeNode(&buf, n); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

type outcomeJSON struct {
	EOF        bool              `json:"eof"`
	Roots      []json.RawMessage `json:"roots"`
	Directives []json.RawMessage `json:"directives"`
	NNodes     int               `json:"nnodes"`
	Errors     []Error           `json:"errors"`
	AST        string            `json:"ast,omitempty"`
}

// MarshalJSON encodes the outcome. Raw is not included.
func (o *Outcome) MarshalJSON() ([]byte, error) {
	out := outcomeJSON{
		EOF:        o.EOF,
		Roots:      make([]json.RawMessage, 0, len(o.Roots)),
		Directives: make([]json.RawMessage, 0, len(o.Directives)),
		NNodes:     o.NNodes,
		Errors:     o.Errors,
		AST:        o.AST,
	}

	if out.Errors == nil {
		out.Errors = []Error{}
	}

	for _, r := range o.Roots {
		b, err := MarshalNode(r)
		if err != nil {
			return nil, err
		}

		out.Roots = append(out.Roots, b)
	}

	for _, d := range o.Directives {
		b, err := MarshalNode(d)
		if err != nil {
			return nil, err
		}

		out.Directives = append(out.Directives, b)
	}

	return json.Marshal(out)
}

func writeNode(buf *bytes.Buffer, n Node) error {
	if isNil(n) {
		buf.WriteString("null")

		return nil
	}

	buf.WriteString(`{"type":`)

	if err := writeValue(buf, n.Kind().String()); err != nil {
		return err
	}

	for _, f := range n.fields() {
		buf.WriteByte(',')

		if err := writeValue(buf, f.name); err != nil {
			return err
		}

		buf.WriteByte(':')

		if err := writeField(buf, f.value); err != nil {
			return fmt.Errorf("%s.%s: %w", n.Kind(), f.name, err)
		}
	}

	buf.WriteByte('}')

	return nil
}

func writeField(buf *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case nil:
		buf.WriteString("null")
	case Node:
		return writeNode(buf, v)
	case []Node:
		buf.WriteByte('[')

		for i, c := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeNode(buf, c); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case []*Operator:
		buf.WriteByte('[')

		for i, op := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeValue(buf, op); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case Direction:
		return writeValue(buf, int(v))
	case []entry:
		buf.WriteByte('[')

		for i, e := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writePair(buf, "key", e.key, "value", e.value); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case []alternative:
		buf.WriteByte('[')

		for i, a := range v {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writePair(buf, "predicate", a.predicate, "value", a.value); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	default:
		return writeValue(buf, v)
	}

	return nil
}

func writePair(buf *bytes.Buffer, k1 string, v1 Node, k2 string, v2 Node) error {
	buf.WriteString(`{"` + k1 + `":`)

	if err := writeNode(buf, v1); err != nil {
		return err
	}

	buf.WriteString(`,"` + k2 + `":`)

	if err := writeNode(buf, v2); err != nil {
		return err
	}

	buf.WriteByte('}')

	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	buf.Write(b)

	return nil
}
