package media

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStream struct {
	frame  *Frame
	closed bool
}

func (s *fakeStream) WithLatest(fn func(Frame)) bool {
	if s.frame == nil {
		return false
	}
	fn(*s.frame)
	return true
}

func (s *fakeStream) Close() { s.closed = true }

type fakeFiller struct {
	log []string
}

func (f *fakeFiller) Upload(dst uint32, frame Frame, crop Rect) {
	f.log = append(f.log, fmt.Sprintf("upload %d %v", dst, crop))
}

func (f *fakeFiller) UploadPanoramic(dst uint32, frame Frame, crop Rect, width, height int, projection, view mgl32.Mat4) {
	f.log = append(f.log, fmt.Sprintf("panoramic %d %v %dx%d", dst, crop, width, height))
}

func newTestSource(cfg Config, info Info, stream *fakeStream) (*Source, *fakeFiller) {
	filler := &fakeFiller{}
	s := NewSource(filler, cfg)
	s.open = func(path string, onFrame func()) (Info, frameStream, error) {
		return info, stream, nil
	}
	return s, filler
}

func TestEmptySource(t *testing.T) {
	s, filler := newTestSource(Config{}, Info{}, nil)
	fd := s.Query(800, 600)
	assert.Equal(t, 1, fd.ViewCount)
	assert.Equal(t, 1, fd.ViewWidth)
	assert.Equal(t, 1, fd.ViewHeight)
	s.Render(0, mgl32.Ident4(), mgl32.Ident4(), 1, 1, 7)
	assert.Empty(t, filler.log)
}

func TestSourceRendersCrops(t *testing.T) {
	stream := &fakeStream{frame: &Frame{Width: 3840, Height: 1080}}
	changed := 0
	s, filler := newTestSource(Config{OnMediaChanged: func() { changed++ }}, Info{Width: 3840, Height: 1080}, stream)

	require.NoError(t, s.Open("movie-lr.mkv"))
	assert.Equal(t, 1, changed)
	assert.Equal(t, "movie-lr.mkv", s.Path())

	fd := s.Query(800, 600)
	assert.True(t, fd.IsStereo())
	assert.Equal(t, 1920, fd.ViewWidth)
	assert.False(t, fd.Panoramic)

	s.Render(0, mgl32.Ident4(), mgl32.Ident4(), 1920, 1080, 5)
	s.Render(1, mgl32.Ident4(), mgl32.Ident4(), 1920, 1080, 6)
	// Out of range views are ignored.
	s.Render(2, mgl32.Ident4(), mgl32.Ident4(), 1920, 1080, 6)
	assert.Equal(t, []string{
		"upload 5 {0 0 1920 1080}",
		"upload 6 {1920 0 1920 1080}",
	}, filler.log)
}

func TestSourceWithoutFrameLeavesTexture(t *testing.T) {
	s, filler := newTestSource(Config{}, Info{Width: 640, Height: 480}, &fakeStream{})
	require.NoError(t, s.Open("a.mp4"))
	s.Render(0, mgl32.Ident4(), mgl32.Ident4(), 640, 480, 3)
	assert.Empty(t, filler.log)
}

func TestPanoramicSource(t *testing.T) {
	stream := &fakeStream{frame: &Frame{Width: 4096, Height: 4096}}
	s, filler := newTestSource(Config{}, Info{Width: 4096, Height: 4096}, stream)
	require.NoError(t, s.Open("trip-360-tb.mp4"))

	fd := s.Query(1280, 720)
	assert.True(t, fd.Panoramic)
	assert.Equal(t, 2, fd.ViewCount)
	assert.Equal(t, 1280, fd.ViewWidth)
	assert.Equal(t, 720, fd.ViewHeight)
	assert.InDelta(t, 1280.0/720.0, fd.DisplayAspectRatio, 1e-5)

	s.Render(1, mgl32.Ident4(), mgl32.Ident4(), 1280, 720, 9)
	assert.Equal(t, []string{"panoramic 9 {0 2048 4096 2048} 1280x720"}, filler.log)

	// An empty viewport still yields a drawable size.
	fd = s.Query(0, 0)
	assert.Equal(t, 1, fd.ViewWidth)
	assert.Equal(t, 1, fd.ViewHeight)
}

func TestOpenReplacesStream(t *testing.T) {
	first := &fakeStream{}
	s, _ := newTestSource(Config{}, Info{Width: 640, Height: 480}, first)
	require.NoError(t, s.Open("a.mp4"))

	second := &fakeStream{}
	s.open = func(string, func()) (Info, frameStream, error) { return Info{Width: 640, Height: 480}, second, nil }
	require.NoError(t, s.Open("b.mp4"))
	assert.True(t, first.closed)
	assert.False(t, second.closed)

	s.Close()
	assert.True(t, second.closed)
}

func TestOpenFailureKeepsCurrent(t *testing.T) {
	current := &fakeStream{}
	changed := 0
	s, _ := newTestSource(Config{OnMediaChanged: func() { changed++ }}, Info{Width: 640, Height: 480}, current)
	require.NoError(t, s.Open("a.mp4"))

	s.open = func(string, func()) (Info, frameStream, error) { return Info{}, nil, errors.New("boom") }
	assert.Error(t, s.Open("broken.mp4"))
	assert.False(t, current.closed)
	assert.Equal(t, "a.mp4", s.Path())
	assert.Equal(t, 1, changed)
}
