// Package media decodes video files with ffmpeg and serves their views to the
// renderer.
package media

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Layout says how a file packs its views into one decoded frame.
type Layout int

const (
	LayoutAuto Layout = iota
	LayoutMono
	LayoutLeftRight
	LayoutLeftRightHalf
	LayoutTopBottom
	LayoutTopBottomHalf
)

var layoutNames = map[Layout]string{
	LayoutAuto:          "auto",
	LayoutMono:          "mono",
	LayoutLeftRight:     "left-right",
	LayoutLeftRightHalf: "left-right-half",
	LayoutTopBottom:     "top-bottom",
	LayoutTopBottomHalf: "top-bottom-half",
}

func (l Layout) String() string {
	if name, ok := layoutNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout parses a layout name as printed by String.
func ParseLayout(s string) (Layout, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for l, name := range layoutNames {
		if s == name {
			return l, nil
		}
	}
	return LayoutAuto, fmt.Errorf("unknown input layout %q", s)
}

// Filename markers, matched against the dash separated words of the base name.
var layoutMarkers = map[string]Layout{
	"2d":  LayoutMono,
	"lr":  LayoutLeftRight,
	"lrh": LayoutLeftRightHalf,
	"tb":  LayoutTopBottom,
	"tbh": LayoutTopBottomHalf,
}

const panoramicMarker = "360"

// GuessLayout derives the layout from markers in a file name such as
// "trip-360-tb.mp4". Files without a layout marker are mono.
func GuessLayout(filename string) (Layout, bool) {
	base := strings.ToLower(filepath.Base(filename))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	layout := LayoutMono
	panoramic := false
	words := strings.FieldsFunc(base, func(r rune) bool {
		return r == '-' || r == '_' || r == '.' || r == ' '
	})
	// The first word is the title, never a marker.
	for i, w := range words {
		if i == 0 {
			continue
		}
		if w == panoramicMarker {
			panoramic = true
			continue
		}
		if l, ok := layoutMarkers[w]; ok {
			layout = l
		}
	}
	return layout, panoramic
}

// Resolve replaces LayoutAuto by the layout guessed from filename. panoramic
// is true when forced or when the file name carries the 360 marker.
func Resolve(layout Layout, forcePanoramic bool, filename string) (Layout, bool) {
	guessed, panoramic := GuessLayout(filename)
	if layout == LayoutAuto {
		layout = guessed
	}
	return layout, panoramic || forcePanoramic
}

// Rect is a rectangle of source pixels.
type Rect struct {
	X, Y int
	W, H int
}

// Geometry is where the views of a frame live and how they are displayed.
type Geometry struct {
	ViewCount     int
	ViewWidth     int
	ViewHeight    int
	DisplayAspect float32
	Crops         [2]Rect
}

// ComputeGeometry splits a frame of the probed size according to layout.
// Half layouts store each view squeezed, so they display with the aspect of
// the whole frame.
func ComputeGeometry(info Info, layout Layout) Geometry {
	w, h := info.Width, info.Height
	sar := info.SampleAspect
	if sar <= 0 {
		sar = 1
	}
	g := Geometry{ViewCount: 2}
	var displayW, displayH int
	switch layout {
	case LayoutLeftRight, LayoutLeftRightHalf:
		g.ViewWidth, g.ViewHeight = w/2, h
		g.Crops[0] = Rect{0, 0, w / 2, h}
		g.Crops[1] = Rect{w / 2, 0, w / 2, h}
		displayW, displayH = w/2, h
		if layout == LayoutLeftRightHalf {
			displayW = w
		}
	case LayoutTopBottom, LayoutTopBottomHalf:
		g.ViewWidth, g.ViewHeight = w, h/2
		g.Crops[0] = Rect{0, 0, w, h / 2}
		g.Crops[1] = Rect{0, h / 2, w, h / 2}
		displayW, displayH = w, h/2
		if layout == LayoutTopBottomHalf {
			displayH = h
		}
	default:
		g.ViewCount = 1
		g.ViewWidth, g.ViewHeight = w, h
		g.Crops[0] = Rect{0, 0, w, h}
		g.Crops[1] = g.Crops[0]
		displayW, displayH = w, h
	}
	g.DisplayAspect = 1
	if displayH > 0 && displayW > 0 {
		g.DisplayAspect = float32(displayW) * sar / float32(displayH)
	}
	return g
}
