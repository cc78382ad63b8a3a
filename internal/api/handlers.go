package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"house-modeler/internal/generate"
	"house-modeler/internal/model"
	"house-modeler/internal/render"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error kinds returned in the "kind" field besides the generation kinds.
const (
	KindBadRequest   = "bad_request"
	KindEmptyPrompt  = "empty_prompt"
	KindRenderFailed = "render_failed"
)

// SceneGenerator produces a scene from a prompt. *generate.Generator satisfies it.
type SceneGenerator interface {
	Generate(ctx context.Context, prompt string) (model.Scene, error)
}

// Handler serves the modeler API.
type Handler struct {
	gen SceneGenerator
	log *zap.Logger
}

// NewHandler returns a Handler generating with gen. log may be nil.
func NewHandler(gen SceneGenerator, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{gen: gen, log: log}
}

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Prompt string `json:"prompt"`
}

// SceneResponse carries a scene and its drawable frame.
type SceneResponse struct {
	Objects model.Scene  `json:"objects"`
	Frame   render.Frame `json:"frame"`
}

// RenderRequest is the body of POST /api/render.
type RenderRequest struct {
	Objects model.Scene `json:"objects"`
}

// ErrorResponse is returned with every 4xx/5xx status.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

// MaterialInfo describes one entry of the material vocabulary.
type MaterialInfo struct {
	Name    model.Material `json:"name"`
	Texture string         `json:"texture"`
}

// Generate handles POST /api/generate.
func (h *Handler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body.", Kind: KindBadRequest})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: generate.UserMessage(generate.ErrEmptyPrompt), Kind: KindEmptyPrompt})
		return
	}

	scene, err := h.gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		status, kind := classify(err)
		_ = c.Error(err)
		c.JSON(status, ErrorResponse{Error: generate.UserMessage(err), Kind: kind})
		return
	}
	h.writeScene(c, scene)
}

// Render handles POST /api/render: it maps an already generated scene without calling the
// generator. Unknown objects are kept in "objects" and dropped from the frame.
func (h *Handler) Render(c *gin.Context) {
	var req RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body.", Kind: KindBadRequest})
		return
	}
	if req.Objects == nil {
		req.Objects = model.Scene{}
	}
	h.writeScene(c, req.Objects)
}

// writeScene encodes before writing so an unencodable frame becomes a 500 instead of a
// 200 with a truncated body.
func (h *Handler) writeScene(c *gin.Context, scene model.Scene) {
	body, err := json.Marshal(SceneResponse{Objects: scene, Frame: render.Render(scene)})
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "The model could not be rendered.", Kind: KindRenderFailed})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// Materials handles GET /api/materials.
func (h *Handler) Materials(c *gin.Context) {
	out := make([]MaterialInfo, 0, len(model.Materials))
	for _, m := range model.Materials {
		out = append(out, MaterialInfo{Name: m, Texture: render.TextureURL(m)})
	}
	c.JSON(http.StatusOK, gin.H{
		"materials": out,
		"default":   render.TextureURL(model.MaterialDefault),
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func classify(err error) (int, string) {
	var ge *generate.GenerationError
	if !errors.As(err, &ge) {
		return http.StatusInternalServerError, generate.ServiceFailure.String()
	}
	switch ge.Kind {
	case generate.InvalidJSON, generate.UnexpectedFormat:
		return http.StatusUnprocessableEntity, ge.Kind.String()
	default:
		return http.StatusBadGateway, ge.Kind.String()
	}
}
