package renderer

import "github.com/go-gl/mathgl/mgl32"

// FrameDescriptor describes the views available for the frame about to be drawn.
type FrameDescriptor struct {
	ViewCount          int
	ViewWidth          int
	ViewHeight         int
	DisplayAspectRatio float32
	Panoramic          bool
}

// IsStereo reports whether the frame carries two views.
func (f FrameDescriptor) IsStereo() bool { return f.ViewCount == 2 }

// FrameSource supplies the views. Query is called once per pass before any
// Render; Render fills dst synchronously. projection and view are only used
// for panoramic frames.
type FrameSource interface {
	Query(viewportWidth, viewportHeight int) FrameDescriptor
	Render(view int, projection, viewMatrix mgl32.Mat4, width, height int, dst uint32)
}
