package model

import (
	"encoding/json"
	"fmt"
)

// Scene is the ordered list of objects produced by one generation. Order only affects draw order.
type Scene []Object

// Counts returns how many boxes, lights and unusable elements the scene holds.
func (s Scene) Counts() (boxes, lights, unknown int) {
	for _, o := range s {
		switch o.(type) {
		case Box:
			boxes++
		case Light:
			lights++
		default:
			unknown++
		}
	}
	return boxes, lights, unknown
}

// DecodeScene converts a decoded JSON array into a Scene. Elements that are not objects
// become Unknown so that the caller decides whether they are fatal.
func DecodeScene(items []interface{}) Scene {
	out := make(Scene, 0, len(items))
	for _, raw := range items {
		payload, ok := raw.(map[string]interface{})
		if !ok {
			b, _ := json.Marshal(raw)
			out = append(out, Unknown{Raw: b})
			continue
		}
		out = append(out, DecodeObject(payload))
	}
	return out
}

// ParseScene decodes a JSON array of objects leniently: unknown tags and malformed elements
// are kept as Unknown instead of failing the whole document.
func ParseScene(data []byte) (Scene, error) {
	var items []interface{}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return DecodeScene(items), nil
}

// UnmarshalJSON implements json.Unmarshaler using ParseScene.
func (s *Scene) UnmarshalJSON(data []byte) error {
	parsed, err := ParseScene(data)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
