package options

import (
	"flag"
	"fmt"

	"github.com/richinsley/gostereo/stereo"
)

type PlayerOptions struct {
	StereoMode   *string
	InputLayout  *string // how the file packs its views: auto, mono, left-right, ...
	Panoramic    *bool   // treat the input as 360° equirectangular content
	Width        *int    // window width; 0 picks a size from the primary monitor
	Height       *int
	FFMPEGPath   *string
	Verbose      *bool // per-frame logging
	Help         *bool
	Files        []string
	parsedStereo stereo.Mode
}

// Register declares the player flags on fs.
func Register(fs *flag.FlagSet) *PlayerOptions {
	return &PlayerOptions{
		StereoMode:  fs.String("stereo-mode", "left", "Stereo output mode (stereo, alternating, left, right, red-cyan-dubois, left-right, ...)"),
		InputLayout: fs.String("input", "auto", "Input layout (auto, mono, left-right, left-right-half, top-bottom, top-bottom-half)"),
		Panoramic:   fs.Bool("360", false, "Treat the input as 360° panoramic video"),
		Width:       fs.Int("width", 0, "Window width (0 fits the primary monitor)"),
		Height:      fs.Int("height", 0, "Window height (0 fits the primary monitor)"),
		FFMPEGPath:  fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Verbose:     fs.Bool("verbose", false, "Log every frame"),
		Help:        fs.Bool("help", false, "Show help message"),
	}
}

// Parse parses args into a new PlayerOptions. The remaining arguments are the
// files to play.
func Parse(fs *flag.FlagSet, args []string) (*PlayerOptions, error) {
	o := Register(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	o.Files = fs.Args()
	if *o.Help {
		return o, nil
	}
	mode, err := stereo.ParseMode(*o.StereoMode)
	if err != nil {
		return nil, fmt.Errorf("invalid -stereo-mode: %w", err)
	}
	o.parsedStereo = mode
	if (*o.Width == 0) != (*o.Height == 0) {
		return nil, fmt.Errorf("-width and -height must be given together")
	}
	if *o.Width < 0 || *o.Height < 0 {
		return nil, fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	return o, nil
}

// Mode returns the parsed stereo mode.
func (o *PlayerOptions) Mode() stereo.Mode { return o.parsedStereo }

// WantsOpenGLStereo reports whether a hardware stereo surface must be requested.
func (o *PlayerOptions) WantsOpenGLStereo() bool { return o.parsedStereo == stereo.ModeOpenGLStereo }
