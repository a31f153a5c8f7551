package graphics

import "fmt"

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	// WaitEvents blocks until a window event arrives or Wake is called.
	WaitEvents()
	// Wake unblocks WaitEvents. Safe to call from any goroutine.
	Wake()
	GetFramebufferSize() (int, int)
	Time() float64
	IsGLES() bool
	Capabilities() Capabilities
}

// EventHandler receives pointer and resize events in framebuffer pixels.
type EventHandler interface {
	PointerPress(x, y float64)
	PointerMove(x, y float64)
	PointerRelease()
	Resize(width, height int)
}

// Capabilities describes the context that was actually created.
type Capabilities struct {
	Major  int
	Minor  int
	Stereo bool
}

const (
	MinMajorVersion = 3
	MinMinorVersion = 2
)

// AtLeast reports whether the context version is major.minor or newer.
func (c Capabilities) AtLeast(major, minor int) bool {
	return c.Major > major || (c.Major == major && c.Minor >= minor)
}

// CheckCapabilities validates the context once at startup. requestStereo is
// whether native stereo output was requested; it then requires a stereo
// surface.
func CheckCapabilities(caps Capabilities, requestStereo bool) error {
	if !caps.AtLeast(MinMajorVersion, MinMinorVersion) {
		return fmt.Errorf("insufficient OpenGL capabilities: have %d.%d, need %d.%d",
			caps.Major, caps.Minor, MinMajorVersion, MinMinorVersion)
	}
	if requestStereo && !caps.Stereo {
		return fmt.Errorf("OpenGL stereo mode is not available on this system")
	}
	return nil
}
