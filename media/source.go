package media

import (
	"fmt"
	"log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gostereo/renderer"
)

// Filler copies decoded pixels into view textures. The renderer thread calls
// it with the GL context current.
type Filler interface {
	// Upload copies the crop of frame into dst, whose storage is crop-sized.
	Upload(dst uint32, frame Frame, crop Rect)
	// UploadPanoramic renders the part of the equirectangular crop seen
	// through projection and view into dst, which is width x height.
	UploadPanoramic(dst uint32, frame Frame, crop Rect, width, height int, projection, view mgl32.Mat4)
}

type frameStream interface {
	WithLatest(fn func(Frame)) bool
	Close()
}

// Config controls how a Source opens files.
type Config struct {
	Layout         Layout // LayoutAuto guesses from the file name
	Panoramic      bool   // force 360° playback
	FFMPEGPath     string
	OnFrame        func() // called from the decoder goroutine for every frame
	OnMediaChanged func() // called from Open after the new file is in place
}

// Source plays one file at a time and implements renderer.FrameSource.
type Source struct {
	cfg    Config
	filler Filler
	open   func(path string, onFrame func()) (Info, frameStream, error)

	stream    frameStream
	path      string
	geometry  Geometry
	panoramic bool
}

var _ renderer.FrameSource = (*Source)(nil)

func NewSource(filler Filler, cfg Config) *Source {
	s := &Source{cfg: cfg, filler: filler}
	s.open = s.openFile
	return s
}

func (s *Source) openFile(path string, onFrame func()) (Info, frameStream, error) {
	if IsImage(path) {
		info, frame, err := LoadImage(path)
		if err != nil {
			return Info{}, nil, err
		}
		return info, &still{frame: frame}, nil
	}
	info, err := Probe(path)
	if err != nil {
		return Info{}, nil, err
	}
	d, err := NewDecoder(path, info, s.cfg.FFMPEGPath, onFrame)
	if err != nil {
		return Info{}, nil, err
	}
	return info, d, nil
}

// Open replaces the playing file by path. On failure the previous file keeps
// playing.
func (s *Source) Open(path string) error {
	info, stream, err := s.open(path, s.cfg.OnFrame)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	if s.stream != nil {
		s.stream.Close()
	}
	layout, panoramic := Resolve(s.cfg.Layout, s.cfg.Panoramic, path)
	s.stream = stream
	s.path = path
	s.geometry = ComputeGeometry(info, layout)
	s.panoramic = panoramic
	log.Printf("Playing %s: %dx%d, %v, %d view(s), 360=%v", path, info.Width, info.Height, layout, s.geometry.ViewCount, panoramic)
	if s.cfg.OnMediaChanged != nil {
		s.cfg.OnMediaChanged()
	}
	return nil
}

// Path returns the file being played, if any.
func (s *Source) Path() string { return s.path }

// Close stops the current file.
func (s *Source) Close() {
	if s.stream != nil {
		s.stream.Close()
		s.stream = nil
	}
}

// Query describes the current file. Panoramic views are rendered at the
// viewport size; an empty source reports a single 1x1 view.
func (s *Source) Query(viewportWidth, viewportHeight int) renderer.FrameDescriptor {
	if s.stream == nil {
		return renderer.FrameDescriptor{ViewCount: 1, ViewWidth: 1, ViewHeight: 1, DisplayAspectRatio: 1}
	}
	g := s.geometry
	if s.panoramic {
		w, h := max(viewportWidth, 1), max(viewportHeight, 1)
		return renderer.FrameDescriptor{
			ViewCount:          g.ViewCount,
			ViewWidth:          w,
			ViewHeight:         h,
			DisplayAspectRatio: float32(w) / float32(h),
			Panoramic:          true,
		}
	}
	return renderer.FrameDescriptor{
		ViewCount:          g.ViewCount,
		ViewWidth:          max(g.ViewWidth, 1),
		ViewHeight:         max(g.ViewHeight, 1),
		DisplayAspectRatio: g.DisplayAspect,
	}
}

// Render fills dst with view from the latest decoded frame. Before the first
// frame arrives dst is left untouched.
func (s *Source) Render(view int, projection, viewMatrix mgl32.Mat4, width, height int, dst uint32) {
	if s.stream == nil || view < 0 || view >= s.geometry.ViewCount {
		return
	}
	crop := s.geometry.Crops[view]
	s.stream.WithLatest(func(f Frame) {
		if s.panoramic {
			s.filler.UploadPanoramic(dst, f, crop, width, height, projection, viewMatrix)
		} else {
			s.filler.Upload(dst, f, crop)
		}
	})
}
