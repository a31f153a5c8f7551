package media

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os/exec"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Decoded frames are rgba64le: four little-endian 16-bit channels.
const bytesPerPixel = 8

// Frame is one decoded picture.
type Frame struct {
	Pix    []byte
	Width  int
	Height int
	Seq    uint64 // increases by one per decoded frame, starting at 1
}

// Decoder reads raw frames from an ffmpeg process and keeps the latest one.
type Decoder struct {
	width  int
	height int

	cmd *exec.Cmd
	r   io.ReadCloser

	mu    sync.Mutex
	frame []byte
	seq   uint64

	onFrame   func()
	readDone  chan struct{}
	waitDone  chan struct{}
	closeOnce sync.Once
}

// NewDecoder starts decoding path in real time. onFrame, if set, is called
// from the decoder goroutine after each new frame.
func NewDecoder(path string, info Info, ffmpegPath string, onFrame func()) (*Decoder, error) {
	pipeReader, pipeWriter := io.Pipe()

	ffmpegCmd := ffmpeg.Input(path, ffmpeg.KwArgs{"re": ""}).
		Output("pipe:", ffmpeg.KwArgs{
			"f":       "rawvideo",
			"pix_fmt": "rgba64le",
			"an":      "",
			"sn":      "",
		}).
		WithOutput(pipeWriter)
	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}

	cmd := ffmpegCmd.Compile()
	if err := cmd.Start(); err != nil {
		pipeWriter.Close()
		return nil, fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	d := newDecoder(pipeReader, info.Width, info.Height, onFrame)
	d.cmd = cmd
	go func() {
		err := cmd.Wait()
		// Unblocks the reader once ffmpeg is gone.
		pipeWriter.CloseWithError(err)
		close(d.waitDone)
	}()
	return d, nil
}

func newDecoder(r io.ReadCloser, width, height int, onFrame func()) *Decoder {
	d := &Decoder{
		width:    width,
		height:   height,
		r:        r,
		onFrame:  onFrame,
		readDone: make(chan struct{}),
		waitDone: make(chan struct{}),
	}
	go d.readLoop()
	return d
}

func (d *Decoder) readLoop() {
	defer close(d.readDone)
	size := d.width * d.height * bytesPerPixel
	if size <= 0 {
		return
	}
	buf := make([]byte, size)
	for {
		if _, err := io.ReadFull(d.r, buf); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.ErrClosedPipe) {
				log.Printf("decoder: read failed: %v", err)
			}
			return
		}
		d.mu.Lock()
		d.frame, buf = buf, d.frame
		d.seq++
		d.mu.Unlock()
		if buf == nil {
			buf = make([]byte, size)
		}
		if d.onFrame != nil {
			d.onFrame()
		}
	}
}

// WithLatest calls fn with the most recent frame and reports whether there
// was one. The frame must not be retained after fn returns.
func (d *Decoder) WithLatest(fn func(Frame)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.frame == nil {
		return false
	}
	fn(Frame{Pix: d.frame, Width: d.width, Height: d.height, Seq: d.seq})
	return true
}

// Close stops ffmpeg and waits for the decoder goroutines to finish.
func (d *Decoder) Close() {
	d.closeOnce.Do(func() {
		if d.cmd != nil && d.cmd.Process != nil {
			d.cmd.Process.Kill()
		}
		d.r.Close()
		<-d.readDone
		if d.cmd != nil {
			<-d.waitDone
		}
	})
}
