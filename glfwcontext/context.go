package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	graphics "github.com/richinsley/gostereo/graphics"
)

const (
	windowTitle   = "gostereo"
	minWindowSize = 8
)

// Base aspect of the default window size.
const (
	sizeBaseWidth  = 16
	sizeBaseHeight = 9
)

// Config selects the window to create.
type Config struct {
	Width  int // 0 picks SizeHint for the primary monitor
	Height int
	Stereo bool // request left and right back buffers
}

// Context is a GLFW window with its OpenGL context. It forwards pointer and
// framebuffer events to the registered graphics.EventHandler.
type Context struct {
	window   *glfw.Window
	handler  graphics.EventHandler
	dragging bool
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
}

var _ graphics.Context = (*Context)(nil)

// SizeHint returns the default window size: 16:9 fitted into three quarters
// of a screen of the given size.
func SizeHint(screenWidth, screenHeight int) (int, int) {
	maxW := screenWidth * 3 / 4
	maxH := screenHeight * 3 / 4
	if maxW <= 0 || maxH <= 0 {
		return sizeBaseWidth * 80, sizeBaseHeight * 80
	}
	w := maxW
	h := w * sizeBaseHeight / sizeBaseWidth
	if h > maxH {
		h = maxH
		w = h * sizeBaseWidth / sizeBaseHeight
	}
	return w, h
}

// New creates and initializes a new GLFW window and returns a Context object.
func New(cfg Config) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	if cfg.Stereo {
		glfw.WindowHint(glfw.Stereo, glfw.True)
	} else {
		glfw.WindowHint(glfw.Stereo, glfw.False)
	}

	width, height := cfg.Width, cfg.Height
	if width == 0 || height == 0 {
		if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
			mode := monitor.GetVideoMode()
			width, height = SizeHint(mode.Width, mode.Height)
		} else {
			width, height = SizeHint(0, 0)
		}
	}

	win, err := glfw.CreateWindow(width, height, windowTitle, nil, nil)
	if err != nil {
		if cfg.Stereo {
			return nil, fmt.Errorf("OpenGL stereo mode is not available on this system: %w", err)
		}
		return nil, err
	}
	win.SetSizeLimits(minWindowSize, minWindowSize, glfw.DontCare, glfw.DontCare)

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetMouseButtonCallback(c.glfwMouseButtonCallback)
	win.SetCursorPosCallback(c.glfwCursorPosCallback)
	win.SetFramebufferSizeCallback(c.glfwFramebufferSizeCallback)

	return c, nil
}

// SetEventHandler registers h for pointer and resize events and reports the
// current framebuffer size to it.
func (c *Context) SetEventHandler(h graphics.EventHandler) {
	c.handler = h
	if h != nil {
		h.Resize(c.GetFramebufferSize())
	}
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

// glfwKeyCallback dispatches to our registered custom callbacks.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	// Handle the default Escape key behavior
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwMouseButtonCallback(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	if c.handler == nil || button != glfw.MouseButtonLeft {
		return
	}
	switch action {
	case glfw.Press:
		c.dragging = true
		c.handler.PointerPress(c.framebufferCursor(w.GetCursorPos()))
	case glfw.Release:
		if c.dragging {
			c.dragging = false
			c.handler.PointerRelease()
		}
	}
}

func (c *Context) glfwCursorPosCallback(w *glfw.Window, xpos, ypos float64) {
	if c.handler == nil {
		return
	}
	c.handler.PointerMove(c.framebufferCursor(xpos, ypos))
}

func (c *Context) glfwFramebufferSizeCallback(w *glfw.Window, width, height int) {
	if c.handler != nil {
		c.handler.Resize(width, height)
	}
}

// framebufferCursor converts window coordinates to framebuffer pixels, which
// differ on high-DPI displays.
func (c *Context) framebufferCursor(x, y float64) (float64, float64) {
	fbWidth, fbHeight := c.GetFramebufferSize()
	winWidth, winHeight := c.window.GetSize()
	var scaleX, scaleY float64 = 1.0, 1.0
	if winWidth > 0 && winHeight > 0 {
		scaleX = float64(fbWidth) / float64(winWidth)
		scaleY = float64(fbHeight) / float64(winHeight)
	}
	return x * scaleX, y * scaleY
}

// IsGLES reports false: the window always carries a desktop core profile.
func (c *Context) IsGLES() bool {
	return false
}

// Capabilities reports the version and stereo support of the created context.
// The OpenGL bindings must be initialized and the context current.
func (c *Context) Capabilities() graphics.Capabilities {
	var stereo bool
	gl.GetBooleanv(gl.STEREO, &stereo)
	return graphics.Capabilities{
		Major:  c.window.GetAttrib(glfw.ContextVersionMajor),
		Minor:  c.window.GetAttrib(glfw.ContextVersionMinor),
		Stereo: stereo,
	}
}

// MakeCurrent makes the context current for the calling goroutine and syncs
// buffer swaps to the display refresh.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	glfw.SwapInterval(1)
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
}

func (c *Context) WaitEvents() {
	glfw.WaitEvents()
}

func (c *Context) Wake() {
	glfw.PostEmptyEvent()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
