package render

import "house-modeler/internal/model"

// TextureBaseURL is the host directory of the material textures.
const TextureBaseURL = "https://aistudiocdn.com/3d-house-textures/"

// textureURLs maps every material of the vocabulary, plus the default, to its image.
// It is never modified after package initialisation.
var textureURLs = map[model.Material]string{
	model.MaterialBrick:      TextureBaseURL + "brick_wall.jpg",
	model.MaterialWoodPlanks: TextureBaseURL + "wood_planks.jpg",
	model.MaterialWhiteWall:  TextureBaseURL + "white_wall.jpg",
	model.MaterialRoofTiles:  TextureBaseURL + "roof_tiles.jpg",
	model.MaterialGlass:      TextureBaseURL + "glass.png",
	model.MaterialGrass:      TextureBaseURL + "grass.jpg",
	model.MaterialConcrete:   TextureBaseURL + "concrete.jpg",
	model.MaterialAsphalt:    TextureBaseURL + "asphalt.jpg",
	model.MaterialTreeBark:   TextureBaseURL + "tree_bark.jpg",
	model.MaterialTreeLeaves: TextureBaseURL + "tree_leaves.jpg",
	model.MaterialMetal:      TextureBaseURL + "metal.jpg",
	model.MaterialWater:      TextureBaseURL + "water.jpg",
	model.MaterialDefault:    TextureBaseURL + "default_white.jpg",
}

// TextureURL returns the texture for m; unknown or empty materials get the default texture.
func TextureURL(m model.Material) string {
	if u, ok := textureURLs[m]; ok {
		return u
	}
	return textureURLs[model.MaterialDefault]
}

// TextureURLs returns a copy of the material table, e.g. to prefetch every texture.
func TextureURLs() map[model.Material]string {
	out := make(map[model.Material]string, len(textureURLs))
	for k, v := range textureURLs {
		out[k] = v
	}
	return out
}
