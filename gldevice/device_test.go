package gldevice

import (
	"testing"

	"github.com/richinsley/gostereo/media"
	"github.com/richinsley/gostereo/renderer"
	"github.com/stretchr/testify/assert"
)

func TestFrameRectIsCentred(t *testing.T) {
	rect := frameRect(renderer.DrawParams{
		RelWidth:  0.75,
		RelHeight: 1,
		Viewport:  renderer.Viewport{Width: 800, Height: 600},
	})
	assert.Equal(t, [4]float32{100, 0, 600, 600}, rect)

	rect = frameRect(renderer.DrawParams{
		RelWidth:  1,
		RelHeight: 0.5,
		Viewport:  renderer.Viewport{Width: 400, Height: 400},
	})
	assert.Equal(t, [4]float32{0, 100, 400, 200}, rect)
}

func TestQuadWinding(t *testing.T) {
	assert.Equal(t, []uint16{0, 3, 1, 1, 3, 2}, quadIndices)
	assert.Len(t, quadVertices, 4*3)
}

func TestValidFrame(t *testing.T) {
	frame := media.Frame{Pix: make([]byte, 4*2*8), Width: 4, Height: 2}
	assert.True(t, validFrame(frame, media.Rect{W: 4, H: 2}))
	assert.True(t, validFrame(frame, media.Rect{X: 2, W: 2, H: 2}))
	assert.False(t, validFrame(frame, media.Rect{X: 3, W: 2, H: 2}))
	assert.False(t, validFrame(frame, media.Rect{W: 0, H: 2}))
	assert.False(t, validFrame(media.Frame{Pix: make([]byte, 8), Width: 4, Height: 2}, media.Rect{W: 4, H: 2}))
}
