package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"house-modeler/internal/api"
	"house-modeler/internal/generate"
	"house-modeler/internal/metrics"
	"house-modeler/internal/mocks"
	"house-modeler/internal/model"
	"house-modeler/internal/render"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type generateResponse struct {
	Objects json.RawMessage `json:"objects"`
	Frame   render.Frame    `json:"frame"`
}

func newRouter(t *testing.T) (*gin.Engine, *mocks.MockSceneGenerator, *observer.ObservedLogs) {
	t.Helper()
	gen := mocks.NewMockSceneGenerator(t)
	core, logs := observer.New(zap.DebugLevel)
	log := zap.New(core)
	return api.NewRouter(api.NewHandler(gen, log), metrics.New(), log), gen, logs
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// generationError runs reply through a real Generator so the handler sees the same error the
// service would produce. An empty reply stands for a transport failure.
func generationError(t *testing.T, reply string) error {
	t.Helper()
	client := mocks.NewMockLLMClient(t)
	client.On("Name").Return("gemini").Maybe()
	var cause error
	if reply == "" {
		cause = errors.New("dial tcp: connection refused")
	}
	client.On("Complete", mock.Anything, mock.Anything).Return(reply, cause).Once()
	g, err := generate.New(client, "gemini-2.5-flash", nil, nil)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), "a house")
	require.Error(t, err)
	return err
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) api.ErrorResponse {
	t.Helper()
	var out api.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestGenerate_Success(t *testing.T) {
	r, gen, logs := newRouter(t)
	scene := model.Scene{
		model.Box{Position: [3]float64{0, 1.5, 0}, Size: [3]float64{8, 3, 6}, Material: model.MaterialBrick},
		model.NewLight([3]float64{2, 2.5, 3}),
	}
	gen.On("Generate", mock.Anything, "a brick house").Return(scene, nil).Once()

	w := do(r, http.MethodPost, "/api/generate", `{"prompt":"a brick house"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(api.RequestIDHeader))

	var out generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	parsed, err := model.ParseScene(out.Objects)
	require.NoError(t, err)
	assert.Equal(t, scene, parsed)
	require.Len(t, out.Frame.Meshes, 1)
	require.Len(t, out.Frame.Lights, 1)
	assert.Equal(t, render.TextureURL(model.MaterialBrick), out.Frame.Meshes[0].TextureURL)
	assert.Equal(t, 1, logs.FilterMessage("Request completed").Len())
}

func TestGenerate_BadRequests(t *testing.T) {
	r, gen, _ := newRouter(t)

	w := do(r, http.MethodPost, "/api/generate", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, api.KindBadRequest, decodeError(t, w).Kind)

	w = do(r, http.MethodPost, "/api/generate", `{"prompt":"   "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, api.KindEmptyPrompt, decodeError(t, w).Kind)

	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestGenerate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		status  int
		kind    string
		message string
	}{
		{"invalid json", `[{"type":`, http.StatusUnprocessableEntity, "invalid_json", "The AI returned invalid JSON. Please try refining your prompt."},
		{"unexpected format", `{"foo":1}`, http.StatusUnprocessableEntity, "unexpected_format", "Failed to generate a valid model. The AI returned an unexpected format."},
		{"service failure", "", http.StatusBadGateway, "service_failure", "An error occurred while communicating with the AI. Please try again."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, gen, _ := newRouter(t)
			gen.On("Generate", mock.Anything, "a house").Return(nil, generationError(t, tt.reply)).Once()

			w := do(r, http.MethodPost, "/api/generate", `{"prompt":"a house"}`)
			assert.Equal(t, tt.status, w.Code)
			e := decodeError(t, w)
			assert.Equal(t, tt.kind, e.Kind)
			assert.Equal(t, tt.message, e.Error)
		})
	}
}

func TestGenerate_ForeignError(t *testing.T) {
	r, gen, logs := newRouter(t)
	gen.On("Generate", mock.Anything, "a house").Return(nil, errors.New("boom")).Once()

	w := do(r, http.MethodPost, "/api/generate", `{"prompt":"a house"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unknown error occurred.", decodeError(t, w).Error)
	assert.Equal(t, 1, logs.FilterMessage("Request error").Len())
}

func TestRender_Lenient(t *testing.T) {
	r, _, _ := newRouter(t)
	body := `{"objects":[
		{"type":"box","position":[0,0,0],"material":"glass"},
		{"type":"sphere","position":[1,1,1]},
		{"type":"light","position":[0,3,0],"color":"red","intensity":"bright"}
	]}`

	w := do(r, http.MethodPost, "/api/render", body)
	require.Equal(t, http.StatusOK, w.Code)

	var out generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Frame.Meshes, 1)
	assert.True(t, out.Frame.Meshes[0].Surface.Transparent)
	require.Len(t, out.Frame.Lights, 1)
	assert.Equal(t, model.DefaultColor, out.Frame.Lights[0].Color)
	assert.Equal(t, float32(1), out.Frame.Lights[0].Intensity)

	var objects []map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Objects, &objects))
	assert.Len(t, objects, 3)
	assert.Equal(t, "sphere", objects[1]["type"])
}

func TestRender_EmptyAndBad(t *testing.T) {
	r, _, _ := newRouter(t)

	w := do(r, http.MethodPost, "/api/render", `{}`)
	require.Equal(t, http.StatusOK, w.Code)
	var out generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.True(t, out.Frame.Empty())
	assert.True(t, out.Frame.Stage.Bounds.Empty)

	w = do(r, http.MethodPost, "/api/render", `{"objects":{"type":"box"}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMaterials(t *testing.T) {
	r, _, _ := newRouter(t)
	w := do(r, http.MethodGet, "/api/materials", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Materials []api.MaterialInfo `json:"materials"`
		Default   string             `json:"default"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Materials, len(model.Materials))
	for i, m := range model.Materials {
		assert.Equal(t, m, out.Materials[i].Name)
		assert.Equal(t, render.TextureURL(m), out.Materials[i].Texture)
	}
	assert.Equal(t, render.TextureURL(model.MaterialDefault), out.Default)
}

func TestHealthAndMetrics_NotLogged(t *testing.T) {
	r, _, logs := newRouter(t)

	w := do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, 0, logs.Len())
}

func TestRequestID_Propagated(t *testing.T) {
	r, _, logs := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/api/materials", bytes.NewReader(nil))
	req.Header.Set(api.RequestIDHeader, "req-42")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-42", w.Header().Get(api.RequestIDHeader))
	entries := logs.FilterMessage("Request completed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "req-42", entries[0].ContextMap()["request_id"])
}

func TestRender_OutOfFloat32Range(t *testing.T) {
	r, _, _ := newRouter(t)
	body := `{"objects":[
		{"type":"light","position":[0,2,0],"intensity":1e300},
		{"type":"box","position":[1e300,0,0]}
	]}`

	w := do(r, http.MethodPost, "/api/render", body)
	require.Equal(t, http.StatusOK, w.Code)

	var out generateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Empty(t, out.Frame.Meshes)
	require.Len(t, out.Frame.Lights, 1)
	assert.Equal(t, float32(1), out.Frame.Lights[0].Intensity)
	assert.Equal(t, render.Vec3{0, 2, 0}, out.Frame.Stage.Bounds.Max)
}

func TestGenerate_UnencodableSceneIsAnError(t *testing.T) {
	r, gen, _ := newRouter(t)
	huge := model.NewLight([3]float64{0, 0, 0})
	huge.Intensity = 1e300
	gen.On("Generate", mock.Anything, "a house").Return(model.Scene{huge}, nil).Once()

	w := do(r, http.MethodPost, "/api/generate", `{"prompt":"a house"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, api.KindRenderFailed, decodeError(t, w).Kind)
}

var _ api.SceneGenerator = (*generate.Generator)(nil)
