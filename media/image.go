package media

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImage reports whether path names a still image format the player decodes
// without ffmpeg.
func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// still is a frame stream holding a single decoded picture.
type still struct {
	frame Frame
}

func (s *still) WithLatest(fn func(Frame)) bool {
	fn(s.frame)
	return true
}

func (s *still) Close() {}

// LoadImage decodes the image at path into a single rgba64le frame.
func LoadImage(path string) (Info, Frame, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, Frame{}, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return Info{}, Frame{}, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	frame := imageFrame(img)
	return Info{Width: frame.Width, Height: frame.Height, SampleAspect: 1}, frame, nil
}

// imageFrame converts img to little-endian 16-bit RGBA rows, top row first.
func imageFrame(img image.Image) Frame {
	b := img.Bounds()
	rgba := image.NewRGBA64(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	// image.RGBA64 stores big-endian channels.
	pix := rgba.Pix
	for i := 0; i+1 < len(pix); i += 2 {
		pix[i], pix[i+1] = pix[i+1], pix[i]
	}
	return Frame{Pix: pix, Width: b.Dx(), Height: b.Dy(), Seq: 1}
}
