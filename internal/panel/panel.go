// Package panel draws the control panel on the left of the window: the prompt input, the
// generate button, the error banner and the navigation hint. It also draws the placeholder
// shown in the 3D view before any model exists.
package panel

import (
	"context"
	"strings"

	"house-modeler/internal/app"
	"house-modeler/internal/commands"
	"house-modeler/internal/textbox"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Width is the panel width in pixels; the 3D view fills the rest of the window.
const Width = 384

// Title is shown at the top of the panel and in the window bar.
const Title = "AI 3D House Modeler"

const (
	title       = Title
	label       = "Describe the house you want to build:"
	placeholder = "e.g., A cozy log cabin with warm lights..."
	buttonIdle  = "Generate Model"
	buttonBusy  = "Generating..."
	hint        = "Use your mouse to rotate, pan, and zoom the model. The AI will create a 3D model " +
		"from simple building blocks based on your description."

	emptyTitle = "Your 3D Model Awaits"
	emptyBody  = "Describe your dream house in the panel on the left and click \"Generate Model\" " +
		"to bring it to life in this 3D space."

	maxPromptBytes = 4000
	pad            = 24
	titleSize      = 24
	textSize       = 16
	smallSize      = 13
	lineGap        = 4
	inputHeight    = 160
	buttonHeight   = 48
)

var (
	panelBg      = rl.NewColor(17, 24, 39, 235)
	borderColor  = rl.NewColor(55, 65, 81, 128)
	titleColor   = rl.NewColor(243, 244, 246, 255)
	labelColor   = rl.NewColor(156, 163, 175, 255)
	hintColor    = rl.NewColor(107, 114, 128, 255)
	inputBg      = rl.NewColor(31, 41, 55, 255)
	inputBorder  = rl.NewColor(55, 65, 81, 255)
	focusRing    = rl.NewColor(99, 102, 241, 255)
	accent       = rl.NewColor(79, 70, 229, 255)
	accentHover  = rl.NewColor(99, 102, 241, 255)
	disabledBg   = rl.NewColor(75, 85, 99, 255)
	errorText    = rl.NewColor(248, 113, 113, 255)
	errorBg      = rl.NewColor(127, 29, 29, 128)
	messageColor = rl.NewColor(165, 180, 252, 255)
	emptyBg      = rl.NewColor(31, 41, 55, 255)
	emptyTitleC  = rl.NewColor(209, 213, 219, 255)
	emptyIconC   = rl.NewColor(75, 85, 99, 255)
)

// Panel is the prompt UI. It reads and writes the controller; it never generates by itself.
type Panel struct {
	ctl *app.Controller
	reg *commands.Registry
	log *zap.Logger

	input   *textbox.Buffer
	focused bool
	font    rl.Font
	// message is the output of the last "cmd" line.
	message    string
	messageErr bool
	spin       float32
}

// New returns a panel editing ctl's prompt. Lines starting with "cmd " run through reg.
func New(ctl *app.Controller, reg *commands.Registry, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{
		ctl:     ctl,
		reg:     reg,
		log:     log,
		input:   textbox.New(ctl.State().Prompt, maxPromptBytes),
		focused: true,
	}
}

// SetFont sets the UI font. A zero font uses raylib's default.
func (p *Panel) SetFont(font rl.Font) {
	p.font = font
}

type layout struct {
	input, button rl.Rectangle
	errorY        float32
}

func (p *Panel) layout() layout {
	y := float32(pad + titleSize + 32 + textSize + 12)
	in := rl.NewRectangle(pad, y, Width-2*pad, inputHeight)
	btn := rl.NewRectangle(pad, in.Y+in.Height+16, Width-2*pad, buttonHeight)
	return layout{input: in, button: btn, errorY: btn.Y + btn.Height + 16}
}

// Update handles focus, typing and submission. Call once per frame before Draw.
func (p *Panel) Update() {
	p.drainChanges()
	l := p.layout()
	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		p.focused = rl.CheckCollisionPointRec(mouse, l.input)
		if rl.CheckCollisionPointRec(mouse, l.button) {
			p.submit()
		}
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		p.focused = false
	}
	if rl.CheckCollisionPointRec(mouse, l.input) {
		rl.SetMouseCursor(int32(rl.MouseCursorIBeam))
	} else {
		rl.SetMouseCursor(int32(rl.MouseCursorDefault))
	}

	if p.ctl.State().Busy() || !p.focused {
		// Drain typed characters so they do not show up later.
		for rl.GetCharPressed() != 0 {
		}
		return
	}

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl) ||
		rl.IsKeyDown(rl.KeyLeftSuper) || rl.IsKeyDown(rl.KeyRightSuper)
	changed := false
	if ctrl && rl.IsKeyPressed(rl.KeyV) {
		if pasted := rl.GetClipboardText(); pasted != "" {
			p.input.Insert(pasted)
			changed = true
		}
	} else {
		for c := rl.GetCharPressed(); c != 0; c = rl.GetCharPressed() {
			p.input.InsertRune(rune(c))
			changed = true
		}
	}
	if rl.IsKeyPressed(rl.KeyBackspace) || rl.IsKeyPressedRepeat(rl.KeyBackspace) {
		if ctrl {
			p.input.DeleteWord()
		} else {
			p.input.Backspace()
		}
		changed = true
	}
	enter := rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeyKpEnter)
	if enter && !ctrl {
		p.input.InsertRune('\n')
		changed = true
	}
	if changed {
		p.ctl.SetPrompt(p.input.String())
	}
	if enter && ctrl {
		p.submit()
	}
}

// drainChanges returns focus to the prompt once a generation finishes, so the user can
// refine the description right away.
func (p *Panel) drainChanges() {
	for {
		select {
		case st := <-p.ctl.Changes():
			if st.Phase == app.Ready || st.Phase == app.Failed {
				p.focused = true
			}
		default:
			return
		}
	}
}

// submit runs a "cmd" line or asks the controller to generate.
func (p *Panel) submit() {
	line := strings.TrimSpace(p.input.String())
	if args, isCmd := commands.Parse(line); isCmd {
		out, err := p.reg.Execute(args)
		p.message, p.messageErr = out, err != nil
		if err != nil {
			p.message = err.Error()
			p.log.Warn("Command failed", zap.String("line", line), zap.Error(err))
		} else {
			p.log.Info("Command run", zap.String("line", line))
		}
		p.input.Set("")
		p.ctl.SetPrompt("")
		return
	}
	p.message = ""
	p.ctl.Submit(context.Background())
}

// Draw draws the panel for state.
func (p *Panel) Draw(state app.State) {
	h := float32(rl.GetScreenHeight())
	l := p.layout()
	rl.DrawRectangleRec(rl.NewRectangle(0, 0, Width, h), panelBg)
	rl.DrawRectangleRec(rl.NewRectangle(Width-1, 0, 1, h), borderColor)

	// Title with the house badge.
	badge := rl.NewRectangle(pad, pad, 40, 40)
	rl.DrawRectangleRounded(badge, 0.3, 8, accent)
	drawHouseIcon(badge, titleColor)
	p.text(title, rl.NewVector2(pad+52, pad+8), titleSize, titleColor)

	p.text(label, rl.NewVector2(pad, l.input.Y-textSize-10), textSize, labelColor)
	p.drawInput(l.input, state.Busy())
	p.drawButton(l.button, state)

	y := l.errorY
	if state.Error != "" {
		y = p.drawBanner(state.Error, y, errorText, errorBg)
	}
	if p.message != "" {
		c := messageColor
		if p.messageErr {
			c = errorText
		}
		for _, line := range p.wrap(p.message, Width-2*pad, smallSize) {
			p.text(line, rl.NewVector2(pad, y), smallSize, c)
			y += smallSize + lineGap
		}
	}

	hintLines := p.wrap(hint, Width-2*pad, smallSize)
	hy := h - pad - float32(len(hintLines))*(smallSize+lineGap)
	for _, line := range hintLines {
		p.text(line, rl.NewVector2(pad, hy), smallSize, hintColor)
		hy += smallSize + lineGap
	}
}

func (p *Panel) drawInput(r rl.Rectangle, busy bool) {
	rl.DrawRectangleRounded(r, 0.06, 8, inputBg)
	border := inputBorder
	if p.focused && !busy {
		border = focusRing
	}
	rl.DrawRectangleRoundedLines(r, 0.06, 8, border)

	inner := rl.NewRectangle(r.X+12, r.Y+12, r.Width-24, r.Height-24)
	color := titleColor
	text := p.input.String()
	if text == "" {
		text, color = placeholder, hintColor
	}
	if busy {
		color = labelColor
	}
	lines := p.wrap(text, inner.Width, textSize)
	visible := int(inner.Height / (textSize + lineGap))
	if len(lines) > visible {
		lines = lines[len(lines)-visible:]
	}
	rl.BeginScissorMode(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
	y := inner.Y
	for i, line := range lines {
		if i == len(lines)-1 && p.focused && !busy && p.input.String() != "" && int(rl.GetTime()*2)%2 == 0 {
			line += "|"
		}
		p.text(line, rl.NewVector2(inner.X, y), textSize, color)
		y += textSize + lineGap
	}
	rl.EndScissorMode()
}

func (p *Panel) drawButton(r rl.Rectangle, state app.State) {
	enabled := p.ctl.CanSubmit()
	bg := disabledBg
	if enabled {
		bg = accent
		if rl.CheckCollisionPointRec(rl.GetMousePosition(), r) {
			bg = accentHover
		}
	}
	rl.DrawRectangleRounded(r, 0.2, 8, bg)

	text := buttonIdle
	if state.Busy() {
		text = buttonBusy
	}
	w := p.measure(text, textSize)
	x := r.X + (r.Width-w-28)/2
	cy := r.Y + r.Height/2
	if state.Busy() {
		p.spin += rl.GetFrameTime() * 360
		center := rl.NewVector2(x+9, cy)
		rl.DrawRing(center, 7, 9, p.spin, p.spin+270, 24, titleColor)
	} else {
		drawWandIcon(rl.NewVector2(x+9, cy), titleColor)
	}
	p.text(text, rl.NewVector2(x+28, cy-textSize/2), textSize, titleColor)
}

// drawBanner draws wrapped text on a tinted box and returns the y below it.
func (p *Panel) drawBanner(msg string, y float32, fg, bg rl.Color) float32 {
	lines := p.wrap(msg, Width-2*pad-24, smallSize+1)
	h := float32(len(lines))*(smallSize+1+lineGap) + 20
	rl.DrawRectangleRounded(rl.NewRectangle(pad, y, Width-2*pad, h), 0.15, 8, bg)
	ty := y + 10
	for _, line := range lines {
		p.text(line, rl.NewVector2(pad+12, ty), smallSize+1, fg)
		ty += smallSize + 1 + lineGap
	}
	return y + h + 12
}

// DrawPlaceholder fills area with the empty-state message shown before a model exists.
func (p *Panel) DrawPlaceholder(area rl.Rectangle) {
	rl.DrawRectangleRec(area, emptyBg)
	cx := area.X + area.Width/2
	cy := area.Y + area.Height/2

	rl.DrawRing(rl.NewVector2(cx, cy-70), 28, 31, 0, 360, 48, emptyIconC)
	tri := []rl.Vector2{
		rl.NewVector2(cx-7, cy-82),
		rl.NewVector2(cx-7, cy-58),
		rl.NewVector2(cx+12, cy-70),
	}
	rl.DrawTriangle(tri[0], tri[1], tri[2], emptyIconC)

	tw := p.measure(emptyTitle, titleSize)
	p.text(emptyTitle, rl.NewVector2(cx-tw/2, cy-20), titleSize, emptyTitleC)
	y := cy + 20
	for _, line := range p.wrap(emptyBody, min(448, area.Width-2*pad), textSize) {
		w := p.measure(line, textSize)
		p.text(line, rl.NewVector2(cx-w/2, y), textSize, labelColor)
		y += textSize + lineGap
	}
}
