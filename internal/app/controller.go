// Package app holds the application controller: the prompt, the current scene and the
// generation lifecycle shared by the desktop UI.
package app

import (
	"context"
	"strings"
	"sync"

	"house-modeler/internal/generate"
	"house-modeler/internal/model"
	"house-modeler/internal/render"

	"go.uber.org/zap"
)

// DefaultPrompt is the prompt the panel starts with.
const DefaultPrompt = "A modern brick house with a dark tile roof and a wooden deck. " +
	"Add warm interior lighting in the living room and a spotlight illuminating the front door."

// Phase is where the controller is in the generation lifecycle.
type Phase int

const (
	Idle Phase = iota
	Generating
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Generating:
		return "generating"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// State is a snapshot of the controller. It is replaced as a whole on every transition, so a
// copy never changes under the reader.
type State struct {
	Phase  Phase
	Prompt string
	// Scene is the last generated scene. It stays visible while a new one is generating and
	// is cleared when generation fails.
	Scene model.Scene
	// Frame is Scene mapped for drawing.
	Frame render.Frame
	// Version increases each time Scene is replaced.
	Version uint64
	Error   string
}

// Busy reports whether a generation is in flight.
func (s State) Busy() bool { return s.Phase == Generating }

// SceneGenerator produces a scene from a prompt. *generate.Generator satisfies it.
type SceneGenerator interface {
	Generate(ctx context.Context, prompt string) (model.Scene, error)
}

// Controller owns the application state. At most one generation runs at a time.
type Controller struct {
	gen SceneGenerator
	log *zap.Logger

	mu      sync.Mutex
	state   State
	changes chan State
	wg      sync.WaitGroup
}

// NewController returns an Idle controller holding DefaultPrompt. log may be nil.
func NewController(gen SceneGenerator, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		gen:     gen,
		log:     log,
		state:   State{Phase: Idle, Prompt: DefaultPrompt, Frame: render.Render(nil)},
		changes: make(chan State, 16),
	}
}

// State returns the current snapshot.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Changes delivers a snapshot after every transition. Snapshots are dropped when the
// receiver falls behind; State always has the latest.
func (c *Controller) Changes() <-chan State {
	return c.changes
}

// SetPrompt replaces the prompt. It is refused while a generation is in flight.
func (c *Controller) SetPrompt(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Phase == Generating {
		return false
	}
	c.state.Prompt = text
	return true
}

// CanSubmit reports whether Submit would start a generation.
func (c *Controller) CanSubmit() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canSubmitLocked()
}

func (c *Controller) canSubmitLocked() bool {
	return c.state.Phase != Generating && strings.TrimSpace(c.state.Prompt) != ""
}

// Submit starts generating a scene for the current prompt in the background. It is a no-op,
// returning false, when the prompt is blank or a generation is already in flight.
func (c *Controller) Submit(ctx context.Context) bool {
	c.mu.Lock()
	if !c.canSubmitLocked() {
		c.mu.Unlock()
		return false
	}
	next := c.state
	next.Phase = Generating
	next.Error = ""
	prompt := next.Prompt
	c.setLocked(next)
	c.mu.Unlock()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		scene, err := c.gen.Generate(ctx, prompt)
		c.finish(scene, err)
	}()
	return true
}

// Wait blocks until the in-flight generation, if any, has finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) finish(scene model.Scene, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.state
	next.Version++
	if err != nil {
		c.log.Error("Generation failed", zap.Error(err))
		next.Phase = Failed
		next.Error = generate.UserMessage(err)
		next.Scene = nil
		next.Frame = render.Render(nil)
	} else {
		next.Phase = Ready
		next.Scene = scene
		next.Frame = render.Render(scene)
	}
	c.setLocked(next)
}

func (c *Controller) setLocked(s State) {
	c.state = s
	select {
	case c.changes <- s:
	default:
	}
}
