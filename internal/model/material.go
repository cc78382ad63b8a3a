package model

// Material names a surface in the closed vocabulary the generator may use for boxes.
// Values outside the vocabulary are kept as-is and resolved to the default texture at render time.
type Material string

const (
	MaterialBrick      Material = "brick"
	MaterialWoodPlanks Material = "wood_planks"
	MaterialWhiteWall  Material = "white_wall"
	MaterialRoofTiles  Material = "roof_tiles"
	MaterialGlass      Material = "glass"
	MaterialGrass      Material = "grass"
	MaterialConcrete   Material = "concrete"
	MaterialAsphalt    Material = "asphalt"
	MaterialTreeBark   Material = "tree_bark"
	MaterialTreeLeaves Material = "tree_leaves"
	MaterialMetal      Material = "metal"
	MaterialWater      Material = "water"

	// MaterialDefault is the neutral fallback. It is not offered to the model.
	MaterialDefault Material = "default"
)

// Materials is the vocabulary offered to the model, in prompt order.
var Materials = []Material{
	MaterialBrick,
	MaterialWoodPlanks,
	MaterialWhiteWall,
	MaterialRoofTiles,
	MaterialGlass,
	MaterialGrass,
	MaterialConcrete,
	MaterialAsphalt,
	MaterialTreeBark,
	MaterialTreeLeaves,
	MaterialMetal,
	MaterialWater,
}

// Known reports whether m is part of the vocabulary (the default fallback included).
func (m Material) Known() bool {
	if m == MaterialDefault {
		return true
	}
	for _, v := range Materials {
		if v == m {
			return true
		}
	}
	return false
}

// MaterialNames returns the vocabulary as plain strings.
func MaterialNames() []string {
	out := make([]string, len(Materials))
	for i, m := range Materials {
		out[i] = string(m)
	}
	return out
}
