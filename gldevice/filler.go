package gldevice

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gostereo/media"
	"github.com/richinsley/gostereo/shader"
	"github.com/richinsley/gostereo/translator"
)

// ViewFiller uploads decoded frames into view textures. Panoramic frames go
// through a staging texture and are reprojected into the view with an
// offscreen pass.
type ViewFiller struct {
	dev *Device

	staging       uint32
	stagingWidth  int
	stagingHeight int
	fbo           uint32
	program       uint32

	equirectLoc   int32
	inverseVPLoc  int32
	targetSizeLoc int32
	cropLoc       int32
}

var _ media.Filler = (*ViewFiller)(nil)

// NewViewFiller creates the reprojection resources. It shares the quad of dev.
func NewViewFiller(dev *Device) (*ViewFiller, error) {
	f := &ViewFiller{dev: dev}

	fs, err := translator.TranslateFragment(shader.ReprojectFragmentShader(), dev.isGLES)
	if err != nil {
		return nil, fmt.Errorf("failed to translate reprojection shader: %w", err)
	}
	f.program, err = newProgram(shader.FullscreenVertexShader(dev.isGLES), fs.Code)
	if err != nil {
		return nil, fmt.Errorf("failed to create reprojection program: %w", err)
	}
	f.equirectLoc = uniformLocation(f.program, fs.Uniform("equirect"))
	f.inverseVPLoc = uniformLocation(f.program, fs.Uniform("inverseViewProjection"))
	f.targetSizeLoc = uniformLocation(f.program, fs.Uniform("targetSize"))
	f.cropLoc = uniformLocation(f.program, fs.Uniform("crop"))

	gl.GenTextures(1, &f.staging)
	gl.BindTexture(gl.TEXTURE_2D, f.staging)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &f.fbo)
	return f, nil
}

// uploadRows copies the crop of frame into the bound texture at the origin.
func uploadRows(frame media.Frame, crop media.Rect) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 8)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Width))
	gl.PixelStorei(gl.UNPACK_SKIP_PIXELS, int32(crop.X))
	gl.PixelStorei(gl.UNPACK_SKIP_ROWS, int32(crop.Y))
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, 0, 0, int32(crop.W), int32(crop.H), gl.RGBA, gl.UNSIGNED_SHORT, gl.Ptr(frame.Pix))
	gl.PixelStorei(gl.UNPACK_SKIP_ROWS, 0)
	gl.PixelStorei(gl.UNPACK_SKIP_PIXELS, 0)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)
}

func validFrame(frame media.Frame, crop media.Rect) bool {
	if len(frame.Pix) < frame.Width*frame.Height*8 || crop.W <= 0 || crop.H <= 0 {
		return false
	}
	return crop.X >= 0 && crop.Y >= 0 && crop.X+crop.W <= frame.Width && crop.Y+crop.H <= frame.Height
}

func (f *ViewFiller) Upload(dst uint32, frame media.Frame, crop media.Rect) {
	if !validFrame(frame, crop) {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, dst)
	uploadRows(frame, crop)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (f *ViewFiller) UploadPanoramic(dst uint32, frame media.Frame, crop media.Rect, width, height int, projection, view mgl32.Mat4) {
	if !validFrame(frame, crop) || width <= 0 || height <= 0 {
		return
	}

	// Stage the whole frame; the crop is applied when sampling.
	whole := media.Rect{W: frame.Width, H: frame.Height}
	gl.BindTexture(gl.TEXTURE_2D, f.staging)
	if frame.Width != f.stagingWidth || frame.Height != f.stagingHeight {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16, int32(frame.Width), int32(frame.Height), 0, gl.RGBA, gl.UNSIGNED_SHORT, nil)
		f.stagingWidth, f.stagingHeight = frame.Width, frame.Height
	}
	uploadRows(frame, whole)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.BindFramebuffer(gl.FRAMEBUFFER, f.fbo)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, dst, 0)
	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return
	}
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(f.program)
	inverseVP := projection.Mul4(view).Inv()
	gl.UniformMatrix4fv(f.inverseVPLoc, 1, false, &inverseVP[0])
	gl.Uniform2f(f.targetSizeLoc, float32(width), float32(height))
	fw, fh := float32(frame.Width), float32(frame.Height)
	gl.Uniform4f(f.cropLoc, float32(crop.X)/fw, float32(crop.Y)/fh, float32(crop.W)/fw, float32(crop.H)/fh)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, f.staging)
	gl.Uniform1i(f.equirectLoc, 0)

	f.dev.drawQuad()

	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.UseProgram(0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, 0, 0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (f *ViewFiller) Destroy() {
	if f.fbo != 0 {
		gl.DeleteFramebuffers(1, &f.fbo)
		f.fbo = 0
	}
	if f.staging != 0 {
		gl.DeleteTextures(1, &f.staging)
		f.staging = 0
	}
	if f.program != 0 {
		gl.DeleteProgram(f.program)
		f.program = 0
	}
}
