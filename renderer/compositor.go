package renderer

import (
	"github.com/richinsley/gostereo/stereo"
)

// Fit returns the fraction of the viewport width and height covered by a frame
// of the given display aspect ratio, keeping that ratio.
func Fit(viewportWidth, viewportHeight int, frameAspect float32) (relWidth, relHeight float32) {
	relWidth, relHeight = 1, 1
	if viewportWidth <= 0 || viewportHeight <= 0 || frameAspect <= 0 {
		return
	}
	screenAspect := float32(viewportWidth) / float32(viewportHeight)
	if screenAspect < frameAspect {
		relHeight = screenAspect / frameAspect
	} else {
		relWidth = frameAspect / screenAspect
	}
	return
}

// CompositeInput is everything one composite pass depends on.
type CompositeInput struct {
	Mode         stereo.Mode
	Frame        FrameDescriptor
	Viewport     Viewport
	NativeStereo bool
	State        stereo.State
}

// Draw is one quad draw of a composite: the target buffer and the single-eye or
// composite mode the shader runs for it.
type Draw struct {
	Buffer DrawBuffer
	Mode   stereo.Mode
}

// Plan is the outcome of a composite pass.
type Plan struct {
	Draws     []Draw
	RelWidth  float32
	RelHeight float32
	// State is the alternation state for the next pass.
	State stereo.State
	// Redraw is set when the next pass must follow immediately.
	Redraw bool
}

// PlanComposite decides the draws of a composite pass without touching the GPU.
func PlanComposite(in CompositeInput) Plan {
	mode := stereo.Effective(in.Mode, in.Frame.ViewCount == 2)
	var p Plan
	switch {
	case in.NativeStereo && mode == stereo.ModeOpenGLStereo:
		p.Draws = []Draw{
			{Buffer: BufferBackLeft, Mode: stereo.ModeLeft},
			{Buffer: BufferBackRight, Mode: stereo.ModeRight},
		}
	case in.NativeStereo:
		// With a stereo surface every other mode writes the same image to both
		// back buffers; alternating does not alternate per buffer.
		resolved := stereo.ResolveAlternating(mode, in.State.Parity)
		p.Draws = []Draw{
			{Buffer: BufferBackLeft, Mode: resolved},
			{Buffer: BufferBackRight, Mode: resolved},
		}
	default:
		resolved := stereo.ResolveAlternating(mode, in.State.Parity)
		p.Draws = []Draw{{Buffer: BufferDefault, Mode: resolved}}
	}
	aspect := in.Frame.DisplayAspectRatio * p.Draws[0].Mode.AspectScale()
	p.RelWidth, p.RelHeight = Fit(in.Viewport.Width, in.Viewport.Height, aspect)
	p.State, p.Redraw = in.State.Advance(in.Mode, in.Frame.ViewCount)
	return p
}

// Compositor puts the view textures on screen.
type Compositor struct {
	dev   Device
	views *ViewCache
}

func NewCompositor(dev Device, views *ViewCache) *Compositor {
	return &Compositor{dev: dev, views: views}
}

// Composite runs one composite pass and returns its plan, which carries the
// state for the next pass.
func (c *Compositor) Composite(in CompositeInput) Plan {
	p := PlanComposite(in)
	c.dev.BeginComposite(in.Viewport)
	textures := c.views.Textures()
	for _, d := range p.Draws {
		left, right := d.Mode.AnaglyphMatrices()
		c.dev.Draw(d.Buffer, DrawParams{
			Views:       textures,
			Algorithm:   d.Mode.Algorithm(),
			LeftMatrix:  left,
			RightMatrix: right,
			RelWidth:    p.RelWidth,
			RelHeight:   p.RelHeight,
			Viewport:    in.Viewport,
		})
	}
	return p
}
