package models

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Kind identifies which variant of a JSON value a Value holds.
type Kind int

const (
	Null Kind = iota
	Boolean
	Number
	String
	Array
	Object
)

// String returns the type name used in shape tags for scalar kinds.
// Containers return their shape family name.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "list"
	case Object:
		return "dict"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// IsScalar reports whether the kind is a leaf kind.
func (k Kind) IsScalar() bool {
	return k != Array && k != Object
}

// Member is a single key/value pair of a JSON object.
type Member struct {
	Key   string
	Value Value
}

// Value is a parsed JSON value. Only the fields relevant to Kind are set.
// Object members keep their document order, and numbers keep their literal
// text so that re-serialization is lossless.
type Value struct {
	Kind    Kind
	Bool    bool
	Str     string
	Num     json.Number
	Items   []Value
	Members []Member
}

// NullValue returns a JSON null.
func NullValue() Value { return Value{Kind: Null} }

// BoolValue returns a JSON boolean.
func BoolValue(b bool) Value { return Value{Kind: Boolean, Bool: b} }

// NumberValue returns a JSON number holding the given literal.
func NumberValue(n json.Number) Value { return Value{Kind: Number, Num: n} }

// StringValue returns a JSON string.
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

// ArrayValue returns a JSON array of the given items.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: Array, Items: items}
}

// ObjectValue returns a JSON object with members in the given order.
func ObjectValue(members ...Member) Value {
	if members == nil {
		members = []Member{}
	}
	return Value{Kind: Object, Members: members}
}

// Len returns the number of members or items of a container, and 0 for scalars.
func (v Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Items)
	case Object:
		return len(v.Members)
	default:
		return 0
	}
}

// Get returns the first member of an object with the given key.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object {
		return Value{}, false
	}
	for _, m := range v.Members {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// MarshalJSON writes the value as compact JSON, keeping object member order.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.Kind {
	case Null:
		buf.WriteString("null")
	case Boolean:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case Number:
		if v.Num == "" {
			buf.WriteString("0")
			return nil
		}
		buf.WriteString(v.Num.String())
	case String:
		return encodeString(buf, v.Str)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeString(buf, m.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := m.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return &json.UnsupportedValueError{Str: v.Kind.String()}
	}
	return nil
}

// encodeString quotes s without HTML escaping so that text survives as written.
func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode always terminates with a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
