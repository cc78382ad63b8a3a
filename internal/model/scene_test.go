package model_test

import (
	"encoding/json"
	"testing"

	"house-modeler/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScene_BoxDefaults(t *testing.T) {
	scene, err := model.ParseScene([]byte(`[{"type":"box","position":[0,0,0]}]`))
	require.NoError(t, err)
	require.Len(t, scene, 1)

	box, ok := scene[0].(model.Box)
	require.True(t, ok, "expected a Box, got %T", scene[0])
	assert.Equal(t, [3]float64{0, 0, 0}, box.Position)
	assert.Equal(t, [3]float64{1, 1, 1}, box.Size)
	assert.Equal(t, [3]float64{0, 0, 0}, box.Rotation)
	assert.Equal(t, model.MaterialDefault, box.Material)
}

func TestParseScene_LightDefaults(t *testing.T) {
	scene, err := model.ParseScene([]byte(`[{"type":"light","position":[2,2.5,3]}]`))
	require.NoError(t, err)
	require.Len(t, scene, 1)

	light, ok := scene[0].(model.Light)
	require.True(t, ok)
	assert.Equal(t, "#ffffff", light.Color)
	assert.Equal(t, 1.0, light.Intensity)
}

func TestParseScene_FullObjects(t *testing.T) {
	data := `[
		{"type":"box","position":[1,2,3],"size":[4,0.2,6],"rotation":[0,0.5,0],"material":"roof_tiles"},
		{"type":"light","position":[2,2.5,3],"color":"#ffffdd","intensity":50}
	]`
	scene, err := model.ParseScene([]byte(data))
	require.NoError(t, err)
	require.Len(t, scene, 2)

	assert.Equal(t, model.Box{
		Position: [3]float64{1, 2, 3},
		Size:     [3]float64{4, 0.2, 6},
		Rotation: [3]float64{0, 0.5, 0},
		Material: model.MaterialRoofTiles,
	}, scene[0])
	assert.Equal(t, model.Light{Position: [3]float64{2, 2.5, 3}, Color: "#ffffdd", Intensity: 50}, scene[1])
}

func TestParseScene_LenientFields(t *testing.T) {
	data := `[
		{"type":"box","position":[0,0,0],"size":[2,-1,"x"],"rotation":"nope"},
		{"type":"light","position":[0,3,0],"color":"warm","intensity":-4},
		{"type":"box","position":[0,"a",0]},
		{"type":"light"},
		{"type":"sphere","position":[0,0,0]},
		7
	]`
	scene, err := model.ParseScene([]byte(data))
	require.NoError(t, err)
	require.Len(t, scene, 6)

	box := scene[0].(model.Box)
	assert.Equal(t, [3]float64{1, 1, 1}, box.Size, "size with a non-number keeps the default")
	assert.Equal(t, model.DefaultRotation, box.Rotation)

	light := scene[1].(model.Light)
	assert.Equal(t, model.DefaultColor, light.Color)
	assert.Equal(t, 0.0, light.Intensity)

	for i, o := range scene[2:] {
		_, ok := o.(model.Unknown)
		assert.True(t, ok, "element %d should be Unknown, got %T", i+2, o)
	}
	assert.Equal(t, model.Type("sphere"), scene[4].Kind())

	boxes, lights, unknown := scene.Counts()
	assert.Equal(t, 1, boxes)
	assert.Equal(t, 1, lights)
	assert.Equal(t, 4, unknown)
}

func TestParseScene_NotAnArray(t *testing.T) {
	_, err := model.ParseScene([]byte(`{"foo": 1}`))
	assert.Error(t, err)
}

func TestScene_MarshalJSON(t *testing.T) {
	scene := model.Scene{
		model.NewBox([3]float64{0, 1, 0}),
		model.NewLight([3]float64{0, 3, 0}),
	}
	data, err := json.Marshal(scene)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"box","position":[0,1,0],"size":[1,1,1],"rotation":[0,0,0],"material":"default"},
		{"type":"light","position":[0,3,0],"color":"#ffffff","intensity":1}
	]`, string(data))

	var back model.Scene
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, scene, back)
}

func TestMaterial_Known(t *testing.T) {
	assert.True(t, model.MaterialGlass.Known())
	assert.True(t, model.MaterialDefault.Known())
	assert.False(t, model.Material("marble").Known())
	assert.Len(t, model.MaterialNames(), 12)
}

func TestParseScene_OutOfFloat32Range(t *testing.T) {
	scene, err := model.ParseScene([]byte(`[
		{"type":"light","position":[0,2,0],"intensity":1e300},
		{"type":"box","position":[1e300,0,0]},
		{"type":"box","position":[0,0,0],"size":[1e300,2,-1e39],"rotation":[0,1e300,0]}
	]`))
	require.NoError(t, err)
	require.Len(t, scene, 3)

	light, ok := scene[0].(model.Light)
	require.True(t, ok)
	assert.Equal(t, model.DefaultIntensity, light.Intensity)

	_, ok = scene[1].(model.Unknown)
	assert.True(t, ok, "unusable position makes the element unknown")

	box, ok := scene[2].(model.Box)
	require.True(t, ok)
	assert.Equal(t, model.DefaultSize, box.Size)
	assert.Equal(t, model.DefaultRotation, box.Rotation)
}
