package model

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
)

// Type is the discriminant carried by every generated object.
type Type string

const (
	TypeBox   Type = "box"
	TypeLight Type = "light"
)

// Defaults applied when the generator omits optional fields.
var (
	DefaultSize     = [3]float64{1, 1, 1}
	DefaultRotation = [3]float64{0, 0, 0}
)

const (
	DefaultColor     = "#ffffff"
	DefaultIntensity = 1.0
)

// Object is one generated scene object. The set of variants is closed: Box, Light and Unknown.
// Code that consumes objects switches on the concrete type.
type Object interface {
	// Kind returns the wire discriminant ("box", "light", or whatever an Unknown carried).
	Kind() Type
	object()
}

// Box is a textured cuboid centred on Position.
type Box struct {
	Position [3]float64
	Size     [3]float64
	Rotation [3]float64 // Euler XYZ, radians
	Material Material
}

// Light is a point light source.
type Light struct {
	Position  [3]float64
	Color     string
	Intensity float64
}

// Unknown holds an element that is not a usable box or light. It never renders.
type Unknown struct {
	Type Type
	Raw  json.RawMessage
}

func (Box) Kind() Type       { return TypeBox }
func (Light) Kind() Type     { return TypeLight }
func (u Unknown) Kind() Type { return u.Type }

func (Box) object()     {}
func (Light) object()   {}
func (Unknown) object() {}

// NewBox returns a box at position with every optional field defaulted.
func NewBox(position [3]float64) Box {
	return Box{Position: position, Size: DefaultSize, Rotation: DefaultRotation, Material: MaterialDefault}
}

// NewLight returns a white light of intensity 1 at position.
func NewLight(position [3]float64) Light {
	return Light{Position: position, Color: DefaultColor, Intensity: DefaultIntensity}
}

var hexColorRe = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidColor reports whether s is a #rgb or #rrggbb hex colour.
func ValidColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// DecodeObject converts one decoded JSON element into an Object. Optional fields that are
// missing or malformed take their defaults; a missing or malformed position, or a tag other
// than box/light, yields Unknown.
func DecodeObject(payload map[string]interface{}) Object {
	typ, _ := payload["type"].(string)
	switch Type(typ) {
	case TypeBox:
		pos, err := parseFloat3(payload["position"])
		if err != nil {
			return unknownFrom(Type(typ), payload)
		}
		b := NewBox(pos)
		if size, err := parseFloat3(payload["size"]); err == nil {
			for i, v := range size {
				if v > 0 {
					b.Size[i] = v
				}
			}
		}
		if rot, err := parseFloat3(payload["rotation"]); err == nil {
			b.Rotation = rot
		}
		if m, ok := payload["material"].(string); ok && m != "" {
			b.Material = Material(m)
		}
		return b
	case TypeLight:
		pos, err := parseFloat3(payload["position"])
		if err != nil {
			return unknownFrom(Type(typ), payload)
		}
		l := NewLight(pos)
		if c, ok := payload["color"].(string); ok && ValidColor(c) {
			l.Color = c
		}
		if n, ok := payload["intensity"].(float64); ok && representable(n) {
			l.Intensity = math.Max(n, 0)
		}
		return l
	default:
		return unknownFrom(Type(typ), payload)
	}
}

func unknownFrom(typ Type, payload map[string]interface{}) Unknown {
	raw, err := json.Marshal(payload)
	if err != nil {
		raw = nil
	}
	return Unknown{Type: typ, Raw: raw}
}

func parseFloat3(v interface{}) ([3]float64, error) {
	var out [3]float64
	arr, ok := v.([]interface{})
	if !ok || len(arr) < 3 {
		return out, fmt.Errorf("expected [x,y,z]")
	}
	for i := 0; i < 3; i++ {
		n, ok := arr[i].(float64)
		if !ok || !representable(n) {
			return out, fmt.Errorf("component %d not a usable number", i)
		}
		out[i] = n
	}
	return out, nil
}

// representable reports whether n is finite and survives the float32 conversion done at
// render time.
func representable(n float64) bool {
	return !math.IsNaN(n) && math.Abs(n) <= math.MaxFloat32
}

type boxWire struct {
	Type     Type       `json:"type"`
	Position [3]float64 `json:"position"`
	Size     [3]float64 `json:"size"`
	Rotation [3]float64 `json:"rotation"`
	Material Material   `json:"material"`
}

type lightWire struct {
	Type      Type       `json:"type"`
	Position  [3]float64 `json:"position"`
	Color     string     `json:"color"`
	Intensity float64    `json:"intensity"`
}

// MarshalJSON writes the box in the generator's wire shape.
func (b Box) MarshalJSON() ([]byte, error) {
	return json.Marshal(boxWire{TypeBox, b.Position, b.Size, b.Rotation, b.Material})
}

// MarshalJSON writes the light in the generator's wire shape.
func (l Light) MarshalJSON() ([]byte, error) {
	return json.Marshal(lightWire{TypeLight, l.Position, l.Color, l.Intensity})
}

// MarshalJSON writes the element back as it was received.
func (u Unknown) MarshalJSON() ([]byte, error) {
	if len(u.Raw) == 0 {
		return json.Marshal(map[string]Type{"type": u.Type})
	}
	return u.Raw, nil
}
