package media

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Info describes the first video stream of a file.
type Info struct {
	Width        int
	Height       int
	SampleAspect float32 // pixel aspect ratio, 1 for square pixels
	FrameRate    float64
}

type probeOutput struct {
	Streams []struct {
		CodecType         string `json:"codec_type"`
		Width             int    `json:"width"`
		Height            int    `json:"height"`
		SampleAspectRatio string `json:"sample_aspect_ratio"`
		AvgFrameRate      string `json:"avg_frame_rate"`
		RFrameRate        string `json:"r_frame_rate"`
	} `json:"streams"`
}

// Probe runs ffprobe on path.
func Probe(path string) (Info, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(out)
}

func parseProbe(out string) (Info, error) {
	var p probeOutput
	if err := json.Unmarshal([]byte(out), &p); err != nil {
		return Info{}, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	for _, s := range p.Streams {
		if s.CodecType != "video" {
			continue
		}
		if s.Width <= 0 || s.Height <= 0 {
			return Info{}, fmt.Errorf("video stream has invalid size %dx%d", s.Width, s.Height)
		}
		info := Info{
			Width:        s.Width,
			Height:       s.Height,
			SampleAspect: float32(parseRatio(s.SampleAspectRatio, ":", 1)),
			FrameRate:    parseRatio(s.AvgFrameRate, "/", 0),
		}
		if info.FrameRate == 0 {
			info.FrameRate = parseRatio(s.RFrameRate, "/", 0)
		}
		return info, nil
	}
	return Info{}, fmt.Errorf("no video stream found")
}

// parseRatio parses "num<sep>den". Missing, malformed and zero ratios give
// fallback; ffprobe reports unknown values as "0:1" or "0/0".
func parseRatio(s, sep string, fallback float64) float64 {
	num, den, ok := strings.Cut(s, sep)
	if !ok {
		return fallback
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || n <= 0 || d <= 0 {
		return fallback
	}
	return n / d
}
