package stereo

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func expectedNeedsView(mode Mode, view int, sourceIsStereo bool, parity Parity) bool {
	if !sourceIsStereo {
		return view == 0
	}
	switch mode {
	case ModeLeft:
		return view == 0
	case ModeRight:
		return view == 1
	case ModeAlternating:
		return view != int(parity)
	default:
		return true
	}
}

func TestNeedsViewTable(t *testing.T) {
	for _, mode := range Modes() {
		for view := 0; view <= 1; view++ {
			for _, isStereo := range []bool{false, true} {
				for _, parity := range []Parity{0, 1} {
					assert.Equal(t, expectedNeedsView(mode, view, isStereo, parity),
						NeedsView(mode, view, isStereo, parity),
						"mode=%v view=%d stereo=%v parity=%d", mode, view, isStereo, parity)
				}
			}
		}
	}
}

func TestNeedsViewOutOfRange(t *testing.T) {
	assert.False(t, NeedsView(ModeRedCyanDubois, 2, true, 0))
	assert.False(t, NeedsView(ModeLeft, -1, true, 0))
}

func TestMonoSourceBehavesAsLeft(t *testing.T) {
	for _, mode := range Modes() {
		assert.Equal(t, ModeLeft, Effective(mode, false), mode.String())
		for _, parity := range []Parity{0, 1} {
			assert.True(t, NeedsView(mode, 0, false, parity))
			assert.False(t, NeedsView(mode, 1, false, parity))
		}
	}
	assert.Equal(t, ModeTopBottom, Effective(ModeTopBottom, true))
}

func TestResolveAlternating(t *testing.T) {
	assert.Equal(t, ModeLeft, ResolveAlternating(ModeAlternating, 1))
	assert.Equal(t, ModeRight, ResolveAlternating(ModeAlternating, 0))
	assert.Equal(t, ModeCheckerboard, ResolveAlternating(ModeCheckerboard, 0))

	// The eye that is displayed is the eye that was refreshed.
	for _, parity := range []Parity{0, 1} {
		shown := ResolveAlternating(ModeAlternating, parity)
		assert.True(t, NeedsView(shown, parity.Next(), true, parity))
	}
}

func TestAdvanceFlipsOnlyForStereoAlternating(t *testing.T) {
	s := NewState()
	assert.Equal(t, InitialParity, s.Parity)

	next, redraw := s.Advance(ModeAlternating, 2)
	assert.True(t, redraw)
	assert.Equal(t, Parity(0), next.Parity)

	next, redraw = next.Advance(ModeAlternating, 2)
	assert.True(t, redraw)
	assert.Equal(t, Parity(1), next.Parity)

	for _, mode := range Modes() {
		same, redraw := s.Advance(mode, 1)
		assert.False(t, redraw)
		assert.Equal(t, s, same)
		if mode != ModeAlternating {
			same, redraw = s.Advance(mode, 2)
			assert.False(t, redraw)
			assert.Equal(t, s, same)
		}
	}
}

func TestParseMode(t *testing.T) {
	for _, mode := range Modes() {
		parsed, err := ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
	m, err := ParseMode("Red_Cyan_Dubois")
	require.NoError(t, err)
	assert.Equal(t, ModeRedCyanDubois, m)

	_, err = ParseMode("hologram")
	assert.Error(t, err)
	assert.Len(t, ModeNames(), len(Modes()))
}

func TestNextCycles(t *testing.T) {
	m := ModeLeft
	for range Modes() {
		m = m.Next()
	}
	assert.Equal(t, ModeLeft, m)
	assert.Equal(t, ModeLeft, ModeCheckerboard.Next())
}

func TestAlgorithms(t *testing.T) {
	assert.Equal(t, AlgorithmView0, ModeLeft.Algorithm())
	assert.Equal(t, AlgorithmView1, ModeRight.Algorithm())
	assert.Equal(t, AlgorithmView0, ModeOpenGLStereo.Algorithm())
	assert.Equal(t, AlgorithmCheckerboard, ModeCheckerboard.Algorithm())
	for _, mode := range Modes() {
		assert.Equal(t, mode.IsAnaglyph(), mode.Algorithm() == AlgorithmAnaglyph, mode.String())
	}
	assert.Equal(t, "Mode(99)", Mode(99).String())
	assert.False(t, Mode(99).Valid())
}

func TestAspectScale(t *testing.T) {
	assert.Equal(t, float32(2), ModeLeftRight.AspectScale())
	assert.Equal(t, float32(0.5), ModeTopBottom.AspectScale())
	assert.Equal(t, float32(1), ModeLeftRightHalf.AspectScale())
	assert.Equal(t, float32(1), ModeRedCyanDubois.AspectScale())
}

func TestFullColorMatrices(t *testing.T) {
	left, right := ModeRedCyanFullColor.AnaglyphMatrices()
	in := mgl32.Vec3{0.25, 0.5, 0.75}
	assert.Equal(t, mgl32.Vec3{0.25, 0, 0}, left.Mul3x1(in))
	assert.Equal(t, mgl32.Vec3{0, 0.5, 0.75}, right.Mul3x1(in))

	left, right = ModeAmberBlueFullColor.AnaglyphMatrices()
	assert.Equal(t, mgl32.Vec3{0.25, 0.5, 0}, left.Mul3x1(in))
	assert.Equal(t, mgl32.Vec3{0, 0, 0.75}, right.Mul3x1(in))
}

func TestMonochromeMatrices(t *testing.T) {
	weightSum := luminance[0] + luminance[1] + luminance[2]
	left, right := ModeRedBlueMonochrome.AnaglyphMatrices()
	white := mgl32.Vec3{1, 1, 1}
	assert.InDelta(t, weightSum, left.Mul3x1(white)[0], 1e-6)
	assert.Equal(t, float32(0), left.Mul3x1(white)[1])
	assert.InDelta(t, weightSum, right.Mul3x1(white)[2], 1e-6)
	assert.Equal(t, float32(0), right.Mul3x1(white)[0])
}

func TestHalfColorMatrices(t *testing.T) {
	left, right := ModeGreenMagentaHalfColor.AnaglyphMatrices()
	in := mgl32.Vec3{1, 0, 0}
	assert.InDelta(t, luminance[0], left.Mul3x1(in)[1], 1e-6)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, right.Mul3x1(in))
}

func TestDuboisRowsMatchPublishedValues(t *testing.T) {
	left, right := ModeRedCyanDubois.AnaglyphMatrices()
	assert.Equal(t, mgl32.Vec3{0.437, 0.449, 0.164}, left.Row(0))
	assert.Equal(t, mgl32.Vec3{-0.026, -0.093, 1.234}, right.Row(2))
}

func TestNonAnaglyphMatrices(t *testing.T) {
	left, right := ModeLeftRight.AnaglyphMatrices()
	assert.Equal(t, mgl32.Ident3(), left)
	assert.Equal(t, mgl32.Mat3{}, right)
}
