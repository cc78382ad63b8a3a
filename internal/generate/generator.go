package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"house-modeler/internal/llm"
	"house-modeler/internal/metrics"
	"house-modeler/internal/model"

	"go.uber.org/zap"
)

// Generator turns a free-text description into a Scene with one call to the text-generation
// service. It holds no per-call state; concurrent calls are independent.
type Generator struct {
	client  llm.Client
	model   string
	log     *zap.Logger
	metrics *metrics.Metrics
}

// New returns a Generator that asks client's model modelName. log and m may be nil.
func New(client llm.Client, modelName string, log *zap.Logger, m *metrics.Metrics) (*Generator, error) {
	if client == nil {
		return nil, errors.New("generate: nil llm client")
	}
	if modelName == "" {
		return nil, errors.New("generate: model name is empty")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{client: client, model: modelName, log: log, metrics: m}, nil
}

// Generate sends prompt with the fixed system instruction and output schema, then parses and
// shallow-validates the reply. Failures are *GenerationError (or ErrEmptyPrompt).
func (g *Generator) Generate(ctx context.Context, prompt string) (model.Scene, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	provider := g.client.Name()
	log := g.log.With(zap.String("provider", provider), zap.String("model", g.model))
	log.Info("Generating house model", zap.Int("prompt_bytes", len(prompt)))

	start := time.Now()
	reply, err := g.client.Complete(ctx, llm.Request{
		Model:        g.model,
		SystemPrompt: SystemInstruction,
		UserMessage:  prompt,
		SchemaName:   SchemaName,
		Schema:       OutputSchema(),
	})
	duration := time.Since(start)
	if g.metrics != nil {
		g.metrics.GenerationDuration.WithLabelValues(provider).Observe(duration.Seconds())
	}
	if err != nil {
		log.Error("Error generating house model", zap.Duration("duration", duration), zap.Error(err))
		return nil, g.fail(provider, newError(ServiceFailure, err))
	}

	scene, gerr := parseReply(reply)
	if gerr != nil {
		switch gerr.Kind {
		case InvalidJSON:
			log.Warn("AI returned invalid JSON", zap.Error(gerr.Err), zap.String("payload", reply))
		case UnexpectedFormat:
			log.Warn("Invalid data structure received from API", zap.Error(gerr.Err), zap.String("payload", reply))
		}
		return nil, g.fail(provider, gerr)
	}

	for _, m := range unknownMaterials(scene) {
		log.Warn("Unknown material, default texture used", zap.String("material", string(m)))
	}

	boxes, lights, _ := scene.Counts()
	if g.metrics != nil {
		g.metrics.GenerationRequests.WithLabelValues(provider, metrics.StatusSuccess).Inc()
		g.metrics.GenerationObjects.WithLabelValues("box").Observe(float64(boxes))
		g.metrics.GenerationObjects.WithLabelValues("light").Observe(float64(lights))
	}
	log.Info("House model generated",
		zap.Duration("duration", duration),
		zap.Int("boxes", boxes),
		zap.Int("lights", lights))
	return scene, nil
}

func (g *Generator) fail(provider string, err *GenerationError) error {
	if g.metrics != nil {
		g.metrics.GenerationRequests.WithLabelValues(provider, err.Kind.String()).Inc()
	}
	return err
}

// unknownMaterials lists, once each, the box materials outside the vocabulary.
func unknownMaterials(scene model.Scene) []model.Material {
	var out []model.Material
	seen := map[model.Material]bool{}
	for _, o := range scene {
		b, ok := o.(model.Box)
		if !ok || b.Material.Known() || seen[b.Material] {
			continue
		}
		seen[b.Material] = true
		out = append(out, b.Material)
	}
	return out
}

var fenceRe = regexp.MustCompile("^```\\w*\\n?")

// stripFence removes a markdown code block wrapped around the reply, if any.
func stripFence(reply string) string {
	reply = strings.TrimSpace(reply)
	if strings.HasPrefix(reply, "```") {
		reply = fenceRe.ReplaceAllString(reply, "")
		reply = strings.TrimSuffix(reply, "```")
		reply = strings.TrimSpace(reply)
	}
	return reply
}

// parseReply checks the whole-payload contract: a JSON array whose every element is an
// object tagged box or light. Per-field leniency is left to model.DecodeScene.
func parseReply(reply string) (model.Scene, *GenerationError) {
	var data interface{}
	if err := json.Unmarshal([]byte(stripFence(reply)), &data); err != nil {
		return nil, newError(InvalidJSON, err)
	}
	items, ok := data.([]interface{})
	if !ok {
		return nil, newError(UnexpectedFormat, fmt.Errorf("top-level value is %T, not an array", data))
	}
	for i, raw := range items {
		payload, ok := raw.(map[string]interface{})
		if !ok {
			return nil, newError(UnexpectedFormat, fmt.Errorf("element %d is not an object", i))
		}
		switch typ, _ := payload["type"].(string); model.Type(typ) {
		case model.TypeBox, model.TypeLight:
		default:
			return nil, newError(UnexpectedFormat, fmt.Errorf("element %d has type %q", i, typ))
		}
	}
	return model.DecodeScene(items), nil
}
