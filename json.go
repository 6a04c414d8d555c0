package gofunc

import (
	"encoding/json"
	"fmt"
)

// ============================================================
// JSON Serialization
// ============================================================

func ToJSON(f Function) (string, error) {
	b, err := json.Marshal(f.toJSON())
	return string(b), err
}

// ToMap returns the JSON object form of f, as accepted by FromJSON.
func ToMap(f Function) map[string]interface{} { return f.toJSON() }

// payloadFields names the field carrying each primitive's payload.
var payloadFields = map[string]string{
	"const":      "value",
	"power":      "n",
	"exp":        "k",
	"polynomial": "coeffs",
}

// compositeTypes maps the "type" emitted for each composite to its operator.
var compositeTypes = map[string]Op{
	"sum":        OpAdd,
	"difference": OpSub,
	"product":    OpMul,
	"quotient":   OpDiv,
}

// FromJSON decodes a tree produced by ToJSON, or by json.Unmarshal into a
// map. Primitive nodes go through the default factory; composite operands
// that are not objects fail with a *TypeMismatchError.
func FromJSON(data map[string]interface{}) (Function, error) {
	return decodeWith(defaultFactory, data)
}

// Decode is FromJSON with primitives built by f.
func (f *Factory) Decode(data map[string]interface{}) (Function, error) {
	return decodeWith(f, data)
}

func decodeWith(fact *Factory, data map[string]interface{}) (Function, error) {
	if data == nil {
		return nil, fmt.Errorf("function must be an object")
	}
	typAny, ok := data["type"]
	if !ok {
		return nil, fmt.Errorf("missing 'type' field")
	}
	typ, ok := typAny.(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("field 'type' must be a non-empty string")
	}

	operand := func(field string) (interface{}, error) {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		m, ok := v.(map[string]interface{})
		if !ok {
			// Left for Combine to reject.
			return v, nil
		}
		f, err := decodeWith(fact, m)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", typ, field, err)
		}
		return f, nil
	}

	if op, ok := compositeTypes[typ]; ok {
		a, err := operand("a")
		if err != nil {
			return nil, err
		}
		b, err := operand("b")
		if err != nil {
			return nil, err
		}
		f, err := Combine(op, a, b)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", typ, err)
		}
		return f, nil
	}

	var payload Payload
	if field, ok := payloadFields[typ]; ok {
		v, ok := data[field]
		if !ok {
			return nil, fmt.Errorf("%s: missing %q", typ, field)
		}
		p, err := PayloadFromValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", typ, field, err)
		}
		payload = p
	}
	f, err := fact.Create(typ, payload)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("unknown function type: %s", typ)
	}
	return f, nil
}
