package gldevice

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/gostereo/renderer"
	"github.com/richinsley/gostereo/shader"
	"github.com/richinsley/gostereo/translator"
)

// GL_TEXTURE_MAX_ANISOTROPY, core since 4.6 and missing from the 4.1 bindings.
const textureMaxAnisotropy = 0x84FE

const viewAnisotropy = 4.0

var quadVertices = []float32{
	-1.0, -1.0, 0.0,
	1.0, -1.0, 0.0,
	1.0, 1.0, 0.0,
	-1.0, 1.0, 0.0,
}

var quadIndices = []uint16{0, 3, 1, 1, 3, 2}

// Device draws the display quad with the compositing program. It implements
// renderer.Device.
type Device struct {
	isGLES bool

	quadVAO uint32
	quadVBO uint32
	quadIBO uint32
	program uint32

	relWidthLoc    int32
	relHeightLoc   int32
	view0Loc       int32
	view1Loc       int32
	algorithmLoc   int32
	leftMatrixLoc  int32
	rightMatrixLoc int32
	frameRectLoc   int32
}

var _ renderer.Device = (*Device)(nil)

// New builds the quad and the display program. Init must have succeeded.
func New(isGLES bool) (*Device, error) {
	d := &Device{isGLES: isGLES}

	gl.GenVertexArrays(1, &d.quadVAO)
	gl.GenBuffers(1, &d.quadVBO)
	gl.GenBuffers(1, &d.quadIBO)
	gl.BindVertexArray(d.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, d.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, d.quadIBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(quadIndices)*2, gl.Ptr(quadIndices), gl.STATIC_DRAW)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	fs, err := translator.TranslateFragment(shader.DisplayFragmentShader(), isGLES)
	if err != nil {
		d.Destroy()
		return nil, fmt.Errorf("failed to translate display shader: %w", err)
	}
	d.program, err = newProgram(shader.DisplayVertexShader(isGLES), fs.Code)
	if err != nil {
		d.Destroy()
		return nil, fmt.Errorf("failed to create display program: %w", err)
	}

	d.relWidthLoc = uniformLocation(d.program, "u_relWidth")
	d.relHeightLoc = uniformLocation(d.program, "u_relHeight")
	d.view0Loc = uniformLocation(d.program, fs.Uniform("view0"))
	d.view1Loc = uniformLocation(d.program, fs.Uniform("view1"))
	d.algorithmLoc = uniformLocation(d.program, fs.Uniform("algorithm"))
	d.leftMatrixLoc = uniformLocation(d.program, fs.Uniform("leftMatrix"))
	d.rightMatrixLoc = uniformLocation(d.program, fs.Uniform("rightMatrix"))
	d.frameRectLoc = uniformLocation(d.program, fs.Uniform("frameRect"))
	return d, nil
}

// viewFormat returns the storage of a view texture: 16 bits per channel on
// desktop GL, 10 bits on GLES.
func (d *Device) viewFormat() (internalFormat int32, format, xtype uint32) {
	if d.isGLES {
		return gl.RGB10_A2, gl.RGBA, gl.UNSIGNED_INT_2_10_10_10_REV
	}
	return gl.RGBA16, gl.RGBA, gl.UNSIGNED_SHORT
}

func (d *Device) CreateViewTexture() uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	internalFormat, format, xtype := d.viewFormat()
	var zero [8]byte
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, 1, 1, 0, format, xtype, gl.Ptr(&zero[0]))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_BORDER)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameterf(gl.TEXTURE_2D, textureMaxAnisotropy, viewAnisotropy)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (d *Device) AllocateViewStorage(tex uint32, width, height int) {
	internalFormat, format, xtype := d.viewFormat()
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormat, int32(width), int32(height), 0, format, xtype, nil)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *Device) GenerateMipmap(tex uint32) {
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

func (d *Device) DeleteTexture(tex uint32) {
	gl.DeleteTextures(1, &tex)
}

func (d *Device) BeginComposite(viewport renderer.Viewport) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(viewport.Width), int32(viewport.Height))
	gl.Disable(gl.DEPTH_TEST)
	d.selectBuffer(renderer.BufferDefault)
	gl.ClearColor(0.0, 0.0, 0.0, 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// selectBuffer is a no-op on GLES, whose surfaces have a single back buffer.
func (d *Device) selectBuffer(buffer renderer.DrawBuffer) {
	if d.isGLES {
		return
	}
	switch buffer {
	case renderer.BufferBackLeft:
		gl.DrawBuffer(gl.BACK_LEFT)
	case renderer.BufferBackRight:
		gl.DrawBuffer(gl.BACK_RIGHT)
	default:
		gl.DrawBuffer(gl.BACK)
	}
}

// frameRect returns the fitted image rectangle in window pixels, centred in
// the viewport.
func frameRect(params renderer.DrawParams) [4]float32 {
	vw := float32(params.Viewport.Width)
	vh := float32(params.Viewport.Height)
	w := params.RelWidth * vw
	h := params.RelHeight * vh
	return [4]float32{(vw - w) / 2, (vh - h) / 2, w, h}
}

func (d *Device) Draw(buffer renderer.DrawBuffer, params renderer.DrawParams) {
	d.selectBuffer(buffer)
	gl.UseProgram(d.program)

	gl.Uniform1f(d.relWidthLoc, params.RelWidth)
	gl.Uniform1f(d.relHeightLoc, params.RelHeight)
	gl.Uniform1i(d.algorithmLoc, int32(params.Algorithm))
	setMat3(d.leftMatrixLoc, params.LeftMatrix)
	setMat3(d.rightMatrixLoc, params.RightMatrix)
	rect := frameRect(params)
	gl.Uniform4fv(d.frameRectLoc, 1, &rect[0])

	for i, tex := range params.Views {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
	gl.Uniform1i(d.view0Loc, 0)
	gl.Uniform1i(d.view1Loc, 1)

	d.drawQuad()

	for i := range params.Views {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, 0)
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.UseProgram(0)
}

func setMat3(loc int32, m mgl32.Mat3) {
	if loc != -1 {
		gl.UniformMatrix3fv(loc, 1, false, &m[0])
	}
}

// drawQuad draws the shared quad with whatever program is bound.
func (d *Device) drawQuad() {
	gl.BindVertexArray(d.quadVAO)
	gl.DrawElements(gl.TRIANGLES, int32(len(quadIndices)), gl.UNSIGNED_SHORT, gl.PtrOffset(0))
	gl.BindVertexArray(0)
}

func (d *Device) Destroy() {
	if d.program != 0 {
		gl.DeleteProgram(d.program)
		d.program = 0
	}
	if d.quadIBO != 0 {
		gl.DeleteBuffers(1, &d.quadIBO)
		d.quadIBO = 0
	}
	if d.quadVBO != 0 {
		gl.DeleteBuffers(1, &d.quadVBO)
		d.quadVBO = 0
	}
	if d.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &d.quadVAO)
		d.quadVAO = 0
	}
}
