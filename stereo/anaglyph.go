package stereo

import "github.com/go-gl/mathgl/mgl32"

// Rec.709 luma weights.
var luminance = mgl32.Vec3{0.2126, 0.7152, 0.0722}

// Filter colors as RGB channel masks.
var (
	red     = mgl32.Vec3{1, 0, 0}
	green   = mgl32.Vec3{0, 1, 0}
	blue    = mgl32.Vec3{0, 0, 1}
	cyan    = mgl32.Vec3{0, 1, 1}
	magenta = mgl32.Vec3{1, 0, 1}
	amber   = mgl32.Vec3{1, 1, 0}
)

// Least-squares projections after Eric Dubois, given row by row
// (output channel from input R, G, B).
var (
	redCyanDubois = [2]mgl32.Mat3{
		mgl32.Mat3FromRows(
			mgl32.Vec3{0.437, 0.449, 0.164},
			mgl32.Vec3{-0.062, -0.062, -0.024},
			mgl32.Vec3{-0.048, -0.050, -0.017}),
		mgl32.Mat3FromRows(
			mgl32.Vec3{-0.011, -0.032, -0.007},
			mgl32.Vec3{0.377, 0.761, 0.009},
			mgl32.Vec3{-0.026, -0.093, 1.234}),
	}
	greenMagentaDubois = [2]mgl32.Mat3{
		mgl32.Mat3FromRows(
			mgl32.Vec3{-0.062, -0.158, -0.039},
			mgl32.Vec3{0.284, 0.668, 0.143},
			mgl32.Vec3{-0.015, -0.027, 0.021}),
		mgl32.Mat3FromRows(
			mgl32.Vec3{0.529, 0.705, 0.024},
			mgl32.Vec3{-0.016, -0.015, -0.065},
			mgl32.Vec3{0.009, 0.075, 0.937}),
	}
	amberBlueDubois = [2]mgl32.Mat3{
		mgl32.Mat3FromRows(
			mgl32.Vec3{1.062, -0.205, 0.299},
			mgl32.Vec3{-0.026, 0.908, 0.068},
			mgl32.Vec3{-0.038, -0.173, 0.022}),
		mgl32.Mat3FromRows(
			mgl32.Vec3{-0.016, -0.123, -0.017},
			mgl32.Vec3{0.006, 0.062, -0.017},
			mgl32.Vec3{0.094, 0.185, 0.911}),
	}
)

// passColor keeps the masked channels of the input unchanged.
func passColor(mask mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Diag3(mask)
}

// passLuminance writes the input luminance into the masked channels.
func passLuminance(mask mgl32.Vec3) mgl32.Mat3 {
	return mgl32.Mat3FromRows(
		luminance.Mul(mask[0]),
		luminance.Mul(mask[1]),
		luminance.Mul(mask[2]))
}

func fullColor(left, right mgl32.Vec3) *[2]mgl32.Mat3 {
	return &[2]mgl32.Mat3{passColor(left), passColor(right)}
}

func halfColor(left, right mgl32.Vec3) *[2]mgl32.Mat3 {
	return &[2]mgl32.Mat3{passLuminance(left), passColor(right)}
}

func monochrome(left, right mgl32.Vec3) *[2]mgl32.Mat3 {
	return &[2]mgl32.Mat3{passLuminance(left), passLuminance(right)}
}
