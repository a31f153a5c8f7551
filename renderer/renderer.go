// Package renderer runs the per-frame stereo pass: it refreshes the view
// textures a mode needs, composites them on screen and tracks the state that
// carries over between frames.
package renderer

import (
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gostereo/orientation"
	"github.com/richinsley/gostereo/stereo"
)

type Renderer struct {
	dev          Device
	source       FrameSource
	views        *ViewCache
	compositor   *Compositor
	redraw       *Redraw
	nativeStereo bool
	mode         stereo.Mode
	stereoState  stereo.State
	orientation  orientation.State
	width        int
	height       int
	verbose      bool
}

// NewRenderer creates the view textures on dev and returns a renderer drawing
// frames from source. nativeStereo tells whether the surface has left and
// right back buffers.
func NewRenderer(dev Device, source FrameSource, mode stereo.Mode, nativeStereo bool, redraw *Redraw) *Renderer {
	if redraw == nil {
		redraw = NewRedraw(nil)
	}
	views := NewViewCache(dev)
	return &Renderer{
		dev:          dev,
		source:       source,
		views:        views,
		compositor:   NewCompositor(dev, views),
		redraw:       redraw,
		nativeStereo: nativeStereo,
		mode:         mode,
		stereoState:  stereo.NewState(),
	}
}

// SetVerbose enables per-frame logging.
func (r *Renderer) SetVerbose(v bool) { r.verbose = v }

// Paint runs one display pass.
func (r *Renderer) Paint() {
	frame := r.source.Query(r.width, r.height)
	if r.verbose {
		log.Printf("paint: %d views, %dx%d, aspect %g, 360=%v", frame.ViewCount, frame.ViewWidth, frame.ViewHeight, frame.DisplayAspectRatio, frame.Panoramic)
	}

	for v := 0; v < ViewCount; v++ {
		if !stereo.NeedsView(r.mode, v, frame.IsStereo(), r.stereoState.Parity) {
			continue
		}
		tex := r.views.Ensure(v, frame.ViewWidth, frame.ViewHeight)
		projection, view := r.transforms(frame)
		if r.verbose {
			log.Printf("paint: filling view %d for mode %v", v, r.mode)
		}
		r.source.Render(v, projection, view, frame.ViewWidth, frame.ViewHeight, tex)
		r.views.GenerateMipmaps(v)
	}

	plan := r.compositor.Composite(CompositeInput{
		Mode:         r.mode,
		Frame:        frame,
		Viewport:     Viewport{Width: r.width, Height: r.height},
		NativeStereo: r.nativeStereo,
		State:        r.stereoState,
	})
	r.stereoState = plan.State
	if plan.Redraw {
		r.redraw.Request()
	}
}

func (r *Renderer) transforms(frame FrameDescriptor) (projection, view mgl32.Mat4) {
	if !frame.Panoramic {
		return orientation.Identity()
	}
	return orientation.Projection(r.width, r.height), r.orientation.ViewMatrix()
}

// Resize records the new framebuffer size.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	r.redraw.Request()
}

// Size returns the framebuffer size last passed to Resize.
func (r *Renderer) Size() (int, int) { return r.width, r.height }

// SetStereoMode changes the output mode from the next pass on.
func (r *Renderer) SetStereoMode(mode stereo.Mode) {
	r.mode = mode
	r.redraw.Request()
}

func (r *Renderer) StereoMode() stereo.Mode { return r.mode }

// NativeStereo reports whether the surface has hardware stereo back buffers.
func (r *Renderer) NativeStereo() bool { return r.nativeStereo }

// StereoState returns the alternation state carried to the next pass.
func (r *Renderer) StereoState() stereo.State { return r.stereoState }

// Orientation returns the current panoramic drag state.
func (r *Renderer) Orientation() orientation.State { return r.orientation }

func (r *Renderer) PointerPress(x, y float64) {
	r.orientation = r.orientation.Press(float32(x), float32(y))
}

func (r *Renderer) PointerMove(x, y float64) {
	var changed bool
	r.orientation, changed = r.orientation.Move(float32(x), float32(y), r.width, r.height)
	if changed {
		r.redraw.Request()
	}
}

func (r *Renderer) PointerRelease() {
	r.orientation = r.orientation.Release()
}

// MediaChanged resets the orientation for newly loaded content.
func (r *Renderer) MediaChanged() {
	r.orientation = r.orientation.Reset()
	r.redraw.Request()
}

// FrameReady is the frame source's notification that a new frame is available.
func (r *Renderer) FrameReady() {
	r.redraw.Request()
}

// Redraw returns the renderer's redraw request.
func (r *Renderer) Redraw() *Redraw { return r.redraw }

// Shutdown releases the view textures and the device resources.
func (r *Renderer) Shutdown() {
	r.views.Destroy()
	r.dev.Destroy()
}
