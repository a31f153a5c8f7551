package renderer

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gostereo/stereo"
)

// DrawBuffer is the back buffer a composite draw writes to.
type DrawBuffer int

const (
	BufferDefault DrawBuffer = iota
	BufferBackLeft
	BufferBackRight
)

func (b DrawBuffer) String() string {
	switch b {
	case BufferBackLeft:
		return "back-left"
	case BufferBackRight:
		return "back-right"
	default:
		return "default"
	}
}

// Viewport is the size of the display surface in framebuffer pixels.
type Viewport struct {
	Width  int
	Height int
}

// DrawParams carries everything the display shader needs for one quad draw.
type DrawParams struct {
	Views       [2]uint32
	Algorithm   stereo.Algorithm
	LeftMatrix  mgl32.Mat3
	RightMatrix mgl32.Mat3
	RelWidth    float32
	RelHeight   float32
	Viewport    Viewport
}

// Device issues the GPU work decided by the renderer. All methods are called
// from the render thread with the context current.
type Device interface {
	// CreateViewTexture returns a new 1x1 zeroed view texture.
	CreateViewTexture() uint32
	// AllocateViewStorage replaces the storage of tex with width x height texels.
	AllocateViewStorage(tex uint32, width, height int)
	GenerateMipmap(tex uint32)
	DeleteTexture(tex uint32)
	// BeginComposite binds the default framebuffer and prepares a composite of
	// the given viewport.
	BeginComposite(viewport Viewport)
	// Draw renders the display quad into buffer.
	Draw(buffer DrawBuffer, params DrawParams)
	// Destroy releases the device's own resources (geometry, programs).
	Destroy()
}
