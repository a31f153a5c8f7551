package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	gldevice "github.com/richinsley/gostereo/gldevice"
	glfwcontext "github.com/richinsley/gostereo/glfwcontext"
	graphics "github.com/richinsley/gostereo/graphics"
	media "github.com/richinsley/gostereo/media"
	options "github.com/richinsley/gostereo/options"
	renderer "github.com/richinsley/gostereo/renderer"
)

func init() {
	runtime.LockOSThread()
}

// playlist cycles through the files given on the command line.
type playlist struct {
	files []string
	index int
}

func (p *playlist) next() (string, bool) {
	if len(p.files) == 0 {
		return "", false
	}
	p.index = (p.index + 1) % len(p.files)
	return p.files[p.index], true
}

func runPlayer(opts *options.PlayerOptions) error {
	layout, err := media.ParseLayout(*opts.InputLayout)
	if err != nil {
		return err
	}

	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	ctx, err := glfwcontext.New(glfwcontext.Config{
		Width:  *opts.Width,
		Height: *opts.Height,
		Stereo: opts.WantsOpenGLStereo(),
	})
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer ctx.Shutdown()
	ctx.MakeCurrent()

	if err := gldevice.Init(); err != nil {
		return fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	caps := ctx.Capabilities()
	if err := graphics.CheckCapabilities(caps, opts.WantsOpenGLStereo()); err != nil {
		return err
	}
	log.Printf("OpenGL %d.%d, stereo surface: %v", caps.Major, caps.Minor, caps.Stereo)

	dev, err := gldevice.New(ctx.IsGLES())
	if err != nil {
		return fmt.Errorf("failed to create device: %w", err)
	}
	filler, err := gldevice.NewViewFiller(dev)
	if err != nil {
		dev.Destroy()
		return fmt.Errorf("failed to create view filler: %w", err)
	}
	defer filler.Destroy()

	redraw := renderer.NewRedraw(ctx.Wake)
	var r *renderer.Renderer
	source := media.NewSource(filler, media.Config{
		Layout:         layout,
		Panoramic:      *opts.Panoramic,
		FFMPEGPath:     *opts.FFMPEGPath,
		OnFrame:        redraw.Request,
		OnMediaChanged: func() { r.MediaChanged() },
	})
	defer source.Close()

	r = renderer.NewRenderer(dev, source, opts.Mode(), caps.Stereo, redraw)
	r.SetVerbose(*opts.Verbose)
	defer r.Shutdown()
	ctx.SetEventHandler(r)

	files := &playlist{files: opts.Files, index: -1}
	openNext := func() {
		for range len(files.files) {
			path, _ := files.next()
			if err := source.Open(path); err != nil {
				log.Printf("Skipping %s: %v", path, err)
				continue
			}
			return
		}
	}
	openNext()
	if source.Path() == "" && len(files.files) > 0 {
		return fmt.Errorf("none of the given files could be opened")
	}

	ctx.RegisterKeyCallback(glfw.KeyS, func() {
		mode := r.StereoMode().Next()
		log.Printf("Stereo mode: %v", mode)
		r.SetStereoMode(mode)
	})
	ctx.RegisterKeyCallback(glfw.KeyN, openNext)

	log.Println("Starting render loop...")
	renderLoop(ctx, r)
	log.Println("Render loop finished")
	return nil
}

// renderLoop paints only when a redraw is pending and sleeps in between.
func renderLoop(ctx graphics.Context, r *renderer.Renderer) {
	redraw := r.Redraw()
	for !ctx.ShouldClose() {
		if redraw.Take() {
			r.Paint()
			ctx.EndFrame()
		}
		ctx.WaitEvents()
	}
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	opts, err := options.Parse(fs, os.Args[1:])
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}
	if *opts.Help {
		fmt.Println("Stereoscopic and 360° video player")
		fmt.Printf("Usage: %s [flags] file...\n", os.Args[0])
		fs.PrintDefaults()
		return
	}

	if err := runPlayer(opts); err != nil {
		log.Fatalf("%v", err)
	}
}
