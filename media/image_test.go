package media

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("photo-lr.JPG"))
	assert.True(t, IsImage("/tmp/pano-360.webp"))
	assert.False(t, IsImage("movie.mkv"))
	assert.False(t, IsImage("noext"))
}

func TestImageFrameIsLittleEndian(t *testing.T) {
	img := image.NewRGBA64(image.Rect(10, 20, 12, 21))
	img.SetRGBA64(10, 20, color.RGBA64{R: 0x0102, G: 0x0304, B: 0x0506, A: 0xffff})
	img.SetRGBA64(11, 20, color.RGBA64{R: 0xa0b0, A: 0xffff})

	f := imageFrame(img)
	assert.Equal(t, 2, f.Width)
	assert.Equal(t, 1, f.Height)
	require.Len(t, f.Pix, 2*bytesPerPixel)
	assert.Equal(t, []byte{0x02, 0x01, 0x04, 0x03, 0x06, 0x05, 0xff, 0xff}, f.Pix[:8])
	assert.Equal(t, []byte{0xb0, 0xa0}, f.Pix[8:10])
}

func TestLoadImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pair-lr.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	out, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(out, img))
	require.NoError(t, out.Close())

	info, frame, err := LoadImage(path)
	require.NoError(t, err)
	assert.Equal(t, Info{Width: 4, Height: 2, SampleAspect: 1}, info)
	assert.Equal(t, []byte{0xff, 0xff}, frame.Pix[:2])

	_, _, err = LoadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
