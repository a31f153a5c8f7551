package stereo

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Mode is an output presentation mode.
type Mode int

const (
	ModeLeft Mode = iota
	ModeRight
	ModeOpenGLStereo
	ModeAlternating
	ModeRedCyanDubois
	ModeRedCyanFullColor
	ModeRedCyanHalfColor
	ModeRedCyanMonochrome
	ModeGreenMagentaDubois
	ModeGreenMagentaFullColor
	ModeGreenMagentaHalfColor
	ModeGreenMagentaMonochrome
	ModeAmberBlueDubois
	ModeAmberBlueFullColor
	ModeAmberBlueHalfColor
	ModeAmberBlueMonochrome
	ModeRedGreenMonochrome
	ModeRedBlueMonochrome
	ModeLeftRight
	ModeLeftRightHalf
	ModeTopBottom
	ModeTopBottomHalf
	ModeEvenOddRows
	ModeEvenOddColumns
	ModeCheckerboard

	modeCount
)

// ViewPolicy says which views a mode needs refreshed in a frame.
type ViewPolicy int

const (
	PolicyLeft ViewPolicy = iota
	PolicyRight
	PolicyAlternate
	PolicyBoth
)

// Algorithm selects the compositing branch of the display shader.
type Algorithm int32

const (
	AlgorithmView0 Algorithm = iota
	AlgorithmView1
	AlgorithmAnaglyph
	AlgorithmLeftRight
	AlgorithmLeftRightHalf
	AlgorithmTopBottom
	AlgorithmTopBottomHalf
	AlgorithmEvenOddRows
	AlgorithmEvenOddColumns
	AlgorithmCheckerboard
)

type modeInfo struct {
	name      string
	policy    ViewPolicy
	algorithm Algorithm
	// anaglyph holds the (left, right) color matrices; nil for non-anaglyph modes.
	anaglyph *[2]mgl32.Mat3
	// aspect scales the source display aspect ratio for composites that place views next to each other.
	aspect float32
}

var modeTable = [modeCount]modeInfo{
	ModeLeft:                   {"left", PolicyLeft, AlgorithmView0, nil, 1},
	ModeRight:                  {"right", PolicyRight, AlgorithmView1, nil, 1},
	ModeOpenGLStereo:           {"stereo", PolicyBoth, AlgorithmView0, nil, 1},
	ModeAlternating:            {"alternating", PolicyAlternate, AlgorithmView0, nil, 1},
	ModeRedCyanDubois:          {"red-cyan-dubois", PolicyBoth, AlgorithmAnaglyph, &redCyanDubois, 1},
	ModeRedCyanFullColor:       {"red-cyan-full-color", PolicyBoth, AlgorithmAnaglyph, fullColor(red, cyan), 1},
	ModeRedCyanHalfColor:       {"red-cyan-half-color", PolicyBoth, AlgorithmAnaglyph, halfColor(red, cyan), 1},
	ModeRedCyanMonochrome:      {"red-cyan-monochrome", PolicyBoth, AlgorithmAnaglyph, monochrome(red, cyan), 1},
	ModeGreenMagentaDubois:     {"green-magenta-dubois", PolicyBoth, AlgorithmAnaglyph, &greenMagentaDubois, 1},
	ModeGreenMagentaFullColor:  {"green-magenta-full-color", PolicyBoth, AlgorithmAnaglyph, fullColor(green, magenta), 1},
	ModeGreenMagentaHalfColor:  {"green-magenta-half-color", PolicyBoth, AlgorithmAnaglyph, halfColor(green, magenta), 1},
	ModeGreenMagentaMonochrome: {"green-magenta-monochrome", PolicyBoth, AlgorithmAnaglyph, monochrome(green, magenta), 1},
	ModeAmberBlueDubois:        {"amber-blue-dubois", PolicyBoth, AlgorithmAnaglyph, &amberBlueDubois, 1},
	ModeAmberBlueFullColor:     {"amber-blue-full-color", PolicyBoth, AlgorithmAnaglyph, fullColor(amber, blue), 1},
	ModeAmberBlueHalfColor:     {"amber-blue-half-color", PolicyBoth, AlgorithmAnaglyph, halfColor(amber, blue), 1},
	ModeAmberBlueMonochrome:    {"amber-blue-monochrome", PolicyBoth, AlgorithmAnaglyph, monochrome(amber, blue), 1},
	ModeRedGreenMonochrome:     {"red-green-monochrome", PolicyBoth, AlgorithmAnaglyph, monochrome(red, green), 1},
	ModeRedBlueMonochrome:      {"red-blue-monochrome", PolicyBoth, AlgorithmAnaglyph, monochrome(red, blue), 1},
	ModeLeftRight:              {"left-right", PolicyBoth, AlgorithmLeftRight, nil, 2},
	ModeLeftRightHalf:          {"left-right-half", PolicyBoth, AlgorithmLeftRightHalf, nil, 1},
	ModeTopBottom:              {"top-bottom", PolicyBoth, AlgorithmTopBottom, nil, 0.5},
	ModeTopBottomHalf:          {"top-bottom-half", PolicyBoth, AlgorithmTopBottomHalf, nil, 1},
	ModeEvenOddRows:            {"even-odd-rows", PolicyBoth, AlgorithmEvenOddRows, nil, 1},
	ModeEvenOddColumns:         {"even-odd-columns", PolicyBoth, AlgorithmEvenOddColumns, nil, 1},
	ModeCheckerboard:           {"checkerboard", PolicyBoth, AlgorithmCheckerboard, nil, 1},
}

func (m Mode) info() modeInfo {
	if m < 0 || m >= modeCount {
		return modeTable[ModeLeft]
	}
	return modeTable[m]
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool { return m >= 0 && m < modeCount }

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", int(m))
	}
	return modeTable[m].name
}

// Policy returns the views this mode needs for one frame of a stereo source.
func (m Mode) Policy() ViewPolicy { return m.info().policy }

// Algorithm returns the shader selector for m. Alternating must be resolved first
// with ResolveAlternating; on its own it reports the view 0 pass-through.
func (m Mode) Algorithm() Algorithm { return m.info().algorithm }

// IsAnaglyph reports whether m combines the views through color matrices.
func (m Mode) IsAnaglyph() bool { return m.info().anaglyph != nil }

// AnaglyphMatrices returns the color matrices applied to the left and right view.
// Non-anaglyph modes return the identity for the left view and zero for the right.
func (m Mode) AnaglyphMatrices() (left, right mgl32.Mat3) {
	a := m.info().anaglyph
	if a == nil {
		return mgl32.Ident3(), mgl32.Mat3{}
	}
	return a[0], a[1]
}

// AspectScale is the factor applied to the source display aspect ratio to get the
// aspect ratio of the composited frame.
func (m Mode) AspectScale() float32 { return m.info().aspect }

// Next returns the mode following m in Modes order, wrapping around.
func (m Mode) Next() Mode {
	return Mode((int(m) + 1) % int(modeCount))
}

// Modes lists every mode in declaration order.
func Modes() []Mode {
	modes := make([]Mode, modeCount)
	for i := range modes {
		modes[i] = Mode(i)
	}
	return modes
}

// ParseMode returns the mode with the given name. Matching ignores case and
// accepts underscores in place of dashes.
func ParseMode(name string) (Mode, error) {
	n := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for i, info := range modeTable {
		if info.name == n {
			return Mode(i), nil
		}
	}
	return ModeLeft, fmt.Errorf("unknown stereo mode %q", name)
}

// ModeNames returns the names accepted by ParseMode.
func ModeNames() []string {
	names := make([]string, 0, modeCount)
	for _, info := range modeTable {
		names = append(names, info.name)
	}
	return names
}
