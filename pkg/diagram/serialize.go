package diagram

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/isostack/pkg/errors"
)

// Serialize encodes list as indented JSON.
func Serialize(list []Component) ([]byte, error) {
	if list == nil {
		list = []Component{}
	}
	data, err := json.MarshalIndent(Clone(list), "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode diagram")
	}
	return data, nil
}

// Deserialize decodes and validates a serialized list.
//
// Syntax errors return ErrCodeInvalidFormat. Well-formed JSON that is not a
// diagram returns ErrCodeInvalidStructure. No partial list is ever returned.
func Deserialize(data []byte) ([]Component, error) {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse diagram")
	}
	if dec.More() {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "parse diagram: trailing data")
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}

	var list []Component
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "decode diagram")
	}
	return list, nil
}

// Validate checks that a decoded JSON value has the shape of a diagram.
func Validate(raw any) error {
	items, ok := raw.([]any)
	if !ok {
		return invalid("diagram must be an array of components")
	}
	for i, item := range items {
		if err := validateComponent(item); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidStructure, err, "component %d", i)
		}
	}
	return nil
}

func validateComponent(item any) error {
	c, ok := item.(map[string]any)
	if !ok {
		return invalid("not an object")
	}
	for _, key := range []string{"id", "shape", "position"} {
		if s, ok := c[key].(string); !ok || s == "" {
			return invalid("%s must be a non-empty string", key)
		}
	}
	if ref, present := c["relativeToId"]; present && ref != nil {
		if _, ok := ref.(string); !ok {
			return invalid("relativeToId must be a string or null")
		}
	}
	if cut, present := c["cut"]; present {
		if _, ok := cut.(bool); !ok {
			return invalid("cut must be a boolean")
		}
	}

	shapes, ok := c["attached2DShapes"].([]any)
	if !ok {
		return invalid("attached2DShapes must be an array")
	}
	for j, s := range shapes {
		m, ok := s.(map[string]any)
		if !ok || !isString(m["name"]) || !isString(m["attachedTo"]) {
			return invalid("attached2DShapes[%d] needs string name and attachedTo", j)
		}
	}

	points, ok := c["attachmentPoints"].([]any)
	if !ok {
		return invalid("attachmentPoints must be an array")
	}
	for j, p := range points {
		m, ok := p.(map[string]any)
		if !ok || !isString(m["name"]) || !isNumber(m["x"]) || !isNumber(m["y"]) {
			return invalid("attachmentPoints[%d] needs string name and numeric x, y", j)
		}
	}

	abs, ok := c["absolutePosition"].(map[string]any)
	if !ok || !isNumber(abs["x"]) || !isNumber(abs["y"]) {
		return invalid("absolutePosition must have numeric x and y")
	}
	return nil
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}

func isNumber(v any) bool {
	_, ok := v.(float64)
	return ok
}
