package generate

import (
	"strings"

	"house-modeler/internal/model"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// SchemaName is the name given to the structured-output schema.
const SchemaName = "house_model"

// SystemInstruction is sent with every request. It fixes the coordinate system, the two
// object types and the closed material vocabulary.
var SystemInstruction = buildSystemInstruction()

func buildSystemInstruction() string {
	quoted := make([]string, len(model.Materials))
	for i, m := range model.Materials {
		quoted[i] = "'" + string(m) + "'"
	}
	return "You are an AI assistant that builds 3D models of houses, their interiors and their surroundings from a user's description. " +
		"Reply with a valid JSON array of objects and nothing else: no explanations, no markdown, no text outside the array. " +
		"The coordinate system is right-handed with Y as the up axis. The origin [0, 0, 0] is the center of the ground plane.\n\n" +
		"There are two kinds of objects: 'box' and 'light'.\n\n" +
		"1. 'box' is used for all physical geometry.\n" +
		"   - position is the center [x, y, z]; size is [width, height, depth]; rotation is Euler [x, y, z] in radians.\n" +
		"   - Give every box a 'material' instead of a color. It selects the texture.\n" +
		"   - The material MUST be one of: " + strings.Join(quoted, ", ") + ".\n\n" +
		"2. 'light' adds a light source.\n" +
		"   - It has a 'position', a hex 'color' (e.g. '#ffddaa') and an 'intensity'.\n" +
		"   - Place lights sensibly: inside rooms as lamps, and outside to illuminate the house.\n" +
		"   - Example: {\"type\": \"light\", \"position\": [2, 2.5, 3], \"color\": \"#ffffdd\", \"intensity\": 50}\n\n" +
		"Model the house, its interior and its environment with these objects.\n\n" +
		"IMPORTANT: build complex shapes such as roofs or trees from several rotated and positioned 'box' objects."
}

// OutputSchema describes the reply: an array of objects with required type and position.
func OutputSchema() *jsonschema.Definition {
	vec3 := func(desc string) jsonschema.Definition {
		return jsonschema.Definition{
			Type:        jsonschema.Array,
			Description: desc,
			Items:       &jsonschema.Definition{Type: jsonschema.Number},
		}
	}
	return &jsonschema.Definition{
		Type:        jsonschema.Array,
		Description: "An array of 3D objects (shapes and lights) that make up the model.",
		Items: &jsonschema.Definition{
			Type: jsonschema.Object,
			Properties: map[string]jsonschema.Definition{
				"type": {
					Type:        jsonschema.String,
					Description: "The type of object. Must be 'box' or 'light'.",
					Enum:        []string{string(model.TypeBox), string(model.TypeLight)},
				},
				"position": vec3("The center position of the object as [x, y, z]."),
				"size":     vec3("For 'box'. The dimensions as [width, height, depth]."),
				"rotation": vec3("For 'box'. Euler rotation in radians [x, y, z]."),
				"material": {
					Type:        jsonschema.String,
					Description: "For 'box'. The material texture to apply.",
					Enum:        model.MaterialNames(),
				},
				"color": {
					Type:        jsonschema.String,
					Description: "For 'light'. The hex color of the light (e.g. '#ffffff').",
				},
				"intensity": {
					Type:        jsonschema.Number,
					Description: "For 'light'. The intensity of the light.",
				},
			},
			Required: []string{"type", "position"},
		},
	}
}
