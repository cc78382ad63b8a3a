package generate_test

import (
	"context"
	"errors"
	"testing"

	"house-modeler/internal/generate"
	"house-modeler/internal/llm"
	"house-modeler/internal/metrics"
	"house-modeler/internal/mocks"
	"house-modeler/internal/model"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testModel = "gemini-2.5-flash"

func newGenerator(t *testing.T, reply string, replyErr error) (*generate.Generator, *mocks.MockLLMClient, *metrics.Metrics, *observer.ObservedLogs) {
	t.Helper()
	client := mocks.NewMockLLMClient(t)
	client.On("Name").Return("gemini").Maybe()
	client.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.Request) bool {
		return req.Model == testModel &&
			req.SystemPrompt == generate.SystemInstruction &&
			req.SchemaName == generate.SchemaName &&
			req.Schema != nil
	})).Return(reply, replyErr).Once()

	core, logs := observer.New(zap.DebugLevel)
	m := metrics.New()
	g, err := generate.New(client, testModel, zap.New(core), m)
	require.NoError(t, err)
	return g, client, m, logs
}

func TestGenerate_SingleBoxWithDefaults(t *testing.T) {
	g, _, m, _ := newGenerator(t, `[{"type":"box","position":[0,0,0]}]`, nil)

	scene, err := g.Generate(context.Background(), "a tiny shed")
	require.NoError(t, err)
	require.Len(t, scene, 1)
	assert.Equal(t, model.NewBox([3]float64{0, 0, 0}), scene[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRequests.WithLabelValues("gemini", metrics.StatusSuccess)))
}

func TestGenerate_MixedScene(t *testing.T) {
	reply := "```json\n" + `[
		{"type":"box","position":[0,1.5,0],"size":[8,3,6],"material":"brick"},
		{"type":"box","position":[0,3.5,0],"size":[9,0.2,7],"rotation":[0.3,0,0],"material":"roof_tiles"},
		{"type":"light","position":[2,2.5,3],"color":"#ffffdd","intensity":50}
	]` + "\n```"
	g, _, _, _ := newGenerator(t, reply, nil)

	scene, err := g.Generate(context.Background(), "a brick house")
	require.NoError(t, err)
	boxes, lights, unknown := scene.Counts()
	assert.Equal(t, 2, boxes)
	assert.Equal(t, 1, lights)
	assert.Equal(t, 0, unknown)
}

func TestGenerate_UnknownMaterialLogged(t *testing.T) {
	reply := `[
		{"type":"box","position":[0,0,0],"material":"marble"},
		{"type":"box","position":[1,0,0],"material":"marble"},
		{"type":"box","position":[2,0,0],"material":"brick"}
	]`
	g, _, _, logs := newGenerator(t, reply, nil)

	scene, err := g.Generate(context.Background(), "a marble villa")
	require.NoError(t, err)
	assert.Len(t, scene, 3)

	entries := logs.FilterMessage("Unknown material, default texture used").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "marble", entries[0].ContextMap()["material"])
}

func TestKind_StringMatchesMetricLabels(t *testing.T) {
	assert.Equal(t, metrics.StatusInvalidJSON, generate.InvalidJSON.String())
	assert.Equal(t, metrics.StatusUnexpectedFormat, generate.UnexpectedFormat.String())
	assert.Equal(t, metrics.StatusServiceFailure, generate.ServiceFailure.String())
}

func TestGenerate_InvalidJSON(t *testing.T) {
	g, _, m, logs := newGenerator(t, `[{"type":"box",`, nil)

	scene, err := g.Generate(context.Background(), "a house")
	assert.Nil(t, scene)
	require.Error(t, err)
	assert.True(t, errors.Is(err, generate.ErrInvalidJSON))

	var ge *generate.GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, generate.InvalidJSON, ge.Kind)
	assert.Contains(t, ge.Error(), "refining your prompt")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRequests.WithLabelValues("gemini", metrics.StatusInvalidJSON)))
	assert.Equal(t, 1, logs.FilterMessage("AI returned invalid JSON").Len())
}

func TestGenerate_NotAnArray(t *testing.T) {
	g, _, _, logs := newGenerator(t, `{"foo": 1}`, nil)

	_, err := g.Generate(context.Background(), "a house")
	assert.ErrorIs(t, err, generate.ErrUnexpectedFormat)
	assert.False(t, errors.Is(err, generate.ErrInvalidJSON))

	entries := logs.FilterMessage("Invalid data structure received from API").All()
	require.Len(t, entries, 1)
	assert.Equal(t, `{"foo": 1}`, entries[0].ContextMap()["payload"])
}

func TestGenerate_UnknownTagRejectsWholePayload(t *testing.T) {
	g, _, _, _ := newGenerator(t, `[{"type":"box","position":[0,0,0]},{"type":"sphere","position":[1,1,1]}]`, nil)

	_, err := g.Generate(context.Background(), "a house")
	assert.ErrorIs(t, err, generate.ErrUnexpectedFormat)
}

func TestGenerate_NonObjectElement(t *testing.T) {
	g, _, _, _ := newGenerator(t, `[1, 2, 3]`, nil)

	_, err := g.Generate(context.Background(), "a house")
	assert.ErrorIs(t, err, generate.ErrUnexpectedFormat)
}

func TestGenerate_ServiceFailureHidesCause(t *testing.T) {
	cause := errors.New("gemini: dial tcp: connection refused")
	g, _, m, _ := newGenerator(t, "", cause)

	_, err := g.Generate(context.Background(), "a house")
	require.Error(t, err)
	assert.ErrorIs(t, err, generate.ErrServiceFailure)
	assert.ErrorIs(t, err, cause, "cause stays reachable for logging")
	assert.NotContains(t, err.Error(), "connection refused")
	assert.Equal(t, "An error occurred while communicating with the AI. Please try again.", generate.UserMessage(err))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.GenerationRequests.WithLabelValues("gemini", metrics.StatusServiceFailure)))
}

func TestGenerate_EmptyPromptNotDispatched(t *testing.T) {
	client := mocks.NewMockLLMClient(t)
	g, err := generate.New(client, testModel, nil, nil)
	require.NoError(t, err)

	_, err = g.Generate(context.Background(), "  \n\t ")
	assert.ErrorIs(t, err, generate.ErrEmptyPrompt)
	client.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestNew_Validation(t *testing.T) {
	_, err := generate.New(nil, testModel, nil, nil)
	assert.Error(t, err)

	_, err = generate.New(mocks.NewMockLLMClient(t), "", nil, nil)
	assert.Error(t, err)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "An unknown error occurred.", generate.UserMessage(errors.New("boom")))
	assert.NotEmpty(t, generate.UserMessage(generate.ErrEmptyPrompt))
}

func TestSystemInstruction_ListsVocabulary(t *testing.T) {
	for _, m := range model.Materials {
		assert.Contains(t, generate.SystemInstruction, "'"+string(m)+"'")
	}
	assert.Contains(t, generate.SystemInstruction, "Y as the up axis")
	assert.Contains(t, generate.SystemInstruction, "roofs or trees")

	schema := generate.OutputSchema()
	assert.Equal(t, []string{"type", "position"}, schema.Items.Required)
	for _, field := range []string{"type", "position", "size", "rotation", "material", "color", "intensity"} {
		assert.Contains(t, schema.Items.Properties, field)
	}
}
