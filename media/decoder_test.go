package media

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderKeepsLatestFrame(t *testing.T) {
	r, w := io.Pipe()
	frames := make(chan struct{}, 8)
	d := newDecoder(r, 2, 1, func() { frames <- struct{}{} })
	defer d.Close()

	assert.False(t, d.WithLatest(func(Frame) { t.Fatal("no frame decoded yet") }))

	first := bytes.Repeat([]byte{1}, 2*bytesPerPixel)
	second := bytes.Repeat([]byte{2}, 2*bytesPerPixel)
	go func() {
		w.Write(first)
		w.Write(second)
	}()
	<-frames
	<-frames

	var got Frame
	require.True(t, d.WithLatest(func(f Frame) {
		got = f
		got.Pix = append([]byte(nil), f.Pix...)
	}))
	assert.Equal(t, second, got.Pix)
	assert.Equal(t, 2, got.Width)
	assert.Equal(t, 1, got.Height)
	assert.Equal(t, uint64(2), got.Seq)
}

func TestDecoderCloseStopsReader(t *testing.T) {
	r, _ := io.Pipe()
	d := newDecoder(r, 4, 4, nil)
	d.Close()
	// Idempotent.
	d.Close()
	select {
	case <-d.readDone:
	default:
		t.Fatal("reader still running after Close")
	}
}

func TestDecoderStopsAtShortFrame(t *testing.T) {
	r, w := io.Pipe()
	d := newDecoder(r, 2, 2, nil)
	go func() {
		w.Write(make([]byte, 3))
		w.Close()
	}()
	<-d.readDone
	assert.False(t, d.WithLatest(func(Frame) {}))
	d.Close()
}
