package standards

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ValueKind discriminates the variants of Value.
type ValueKind string

const (
	ValueNull   ValueKind = "null"
	ValueString ValueKind = "string"
	ValueNumber ValueKind = "number"
	ValueBool   ValueKind = "bool"
	ValueList   ValueKind = "list"
	ValueObject ValueKind = "object"
)

// Value is a closed tagged variant for condition values and
// design-context attributes. There is no automatic coercion between
// kinds except that numeric strings may be read as numbers via
// AsNumber, which the numeric operators rely on.
type Value struct {
	Kind   ValueKind
	Str    string
	Num    float64
	Bool   bool
	List   []Value
	Object map[string]Value
}

// NullValue returns the null value.
func NullValue() Value { return Value{Kind: ValueNull} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: ValueString, Str: s} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{Kind: ValueNumber, Num: n} }

// BoolValue wraps a bool.
func BoolValue(b bool) Value { return Value{Kind: ValueBool, Bool: b} }

// ListValue wraps a list.
func ListValue(items ...Value) Value { return Value{Kind: ValueList, List: items} }

// ObjectValue wraps a map of named values.
func ObjectValue(fields map[string]Value) Value { return Value{Kind: ValueObject, Object: fields} }

// IsNull returns true for the null value (including the zero Value).
func (v Value) IsNull() bool { return v.Kind == ValueNull || v.Kind == "" }

// AsNumber returns the numeric reading of the value. Numbers convert
// directly; strings convert when they parse as a float. Everything else
// is not numeric.
func (v Value) AsNumber() (float64, bool) {
	switch v.Kind {
	case ValueNumber:
		return v.Num, true
	case ValueString:
		n, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// AsString returns the string reading of the value, false for
// non-string kinds.
func (v Value) AsString() (string, bool) {
	if v.Kind == ValueString {
		return v.Str, true
	}
	return "", false
}

// Field looks up a named member of an object value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != ValueObject {
		return Value{}, false
	}
	f, ok := v.Object[name]
	return f, ok
}

// Equal reports strict equality: kinds must match and contents must be
// equal element-wise. Numeric strings do not equal numbers.
func (v Value) Equal(other Value) bool {
	if v.IsNull() && other.IsNull() {
		return true
	}
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case ValueString:
		return v.Str == other.Str
	case ValueNumber:
		return v.Num == other.Num
	case ValueBool:
		return v.Bool == other.Bool
	case ValueList:
		if len(v.List) != len(other.List) {
			return false
		}
		for i := range v.List {
			if !v.List[i].Equal(other.List[i]) {
				return false
			}
		}
		return true
	case ValueObject:
		if len(v.Object) != len(other.Object) {
			return false
		}
		for k, f := range v.Object {
			of, ok := other.Object[k]
			if !ok || !f.Equal(of) {
				return false
			}
		}
		return true
	}
	return false
}

// Contains reports membership of item in a list value.
func (v Value) Contains(item Value) bool {
	if v.Kind != ValueList {
		return false
	}
	for _, e := range v.List {
		if e.Equal(item) {
			return true
		}
	}
	return false
}

// String renders the value for messages and logs.
func (v Value) String() string {
	switch v.Kind {
	case ValueString:
		return v.Str
	case ValueNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case ValueObject:
		keys := make([]string, 0, len(v.Object))
		for k := range v.Object {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = k + ": " + v.Object[k].String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// ValueFromAny converts a decoded YAML/JSON value into a Value.
// Supported inputs are nil, bool, string, numeric types, []interface{}
// and map[string]interface{}.
func ValueFromAny(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case int:
		return NumberValue(float64(t)), nil
	case int64:
		return NumberValue(float64(t)), nil
	case uint64:
		return NumberValue(float64(t)), nil
	case float32:
		return NumberValue(float64(t)), nil
	case float64:
		return NumberValue(t), nil
	case []interface{}:
		items := make([]Value, len(t))
		for i, e := range t {
			v, err := ValueFromAny(e)
			if err != nil {
				return Value{}, err
			}
			items[i] = v
		}
		return ListValue(items...), nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := ValueFromAny(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = v
		}
		return ObjectValue(fields), nil
	default:
		return Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

// MarshalJSON encodes the value as its native JSON representation.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case ValueString:
		return json.Marshal(v.Str)
	case ValueNumber:
		return json.Marshal(v.Num)
	case ValueBool:
		return json.Marshal(v.Bool)
	case ValueList:
		return json.Marshal(v.List)
	case ValueObject:
		return json.Marshal(v.Object)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a native JSON value into the matching kind.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	val, err := ValueFromAny(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// MarshalYAML encodes the value as its native YAML representation.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.Kind {
	case ValueString:
		return v.Str, nil
	case ValueNumber:
		return v.Num, nil
	case ValueBool:
		return v.Bool, nil
	case ValueList:
		return v.List, nil
	case ValueObject:
		return v.Object, nil
	default:
		return nil, nil
	}
}

// UnmarshalYAML decodes a native YAML value into the matching kind.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw interface{}
	if err := node.Decode(&raw); err != nil {
		return err
	}
	// yaml.v3 decodes mappings with interface{} keys.
	val, err := ValueFromAny(normalizeYAML(raw))
	if err != nil {
		return err
	}
	*v = val
	return nil
}

// normalizeYAML rewrites map[interface{}]interface{} trees into
// map[string]interface{} so ValueFromAny accepts them.
func normalizeYAML(raw interface{}) interface{} {
	switch t := raw.(type) {
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, e := range t {
			out[k] = normalizeYAML(e)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = normalizeYAML(e)
		}
		return out
	default:
		return raw
	}
}
