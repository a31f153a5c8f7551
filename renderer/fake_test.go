package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// fakeDevice records the GPU work issued by the renderer.
type fakeDevice struct {
	nextTexture uint32
	allocations map[uint32][][2]int
	mipmaps     map[uint32]int
	deleted     []uint32
	begins      []Viewport
	draws       []recordedDraw
	destroyed   bool
	log         []string
}

type recordedDraw struct {
	Buffer DrawBuffer
	Params DrawParams
}

func newFakeDevice() *fakeDevice {
	return &fakeDevice{
		allocations: make(map[uint32][][2]int),
		mipmaps:     make(map[uint32]int),
	}
}

func (d *fakeDevice) CreateViewTexture() uint32 {
	d.nextTexture++
	d.log = append(d.log, fmt.Sprintf("create %d", d.nextTexture))
	return d.nextTexture
}

func (d *fakeDevice) AllocateViewStorage(tex uint32, width, height int) {
	d.allocations[tex] = append(d.allocations[tex], [2]int{width, height})
	d.log = append(d.log, fmt.Sprintf("alloc %d %dx%d", tex, width, height))
}

func (d *fakeDevice) GenerateMipmap(tex uint32) {
	d.mipmaps[tex]++
	d.log = append(d.log, fmt.Sprintf("mipmap %d", tex))
}

func (d *fakeDevice) DeleteTexture(tex uint32) {
	d.deleted = append(d.deleted, tex)
}

func (d *fakeDevice) BeginComposite(viewport Viewport) {
	d.begins = append(d.begins, viewport)
	d.log = append(d.log, "begin")
}

func (d *fakeDevice) Draw(buffer DrawBuffer, params DrawParams) {
	d.draws = append(d.draws, recordedDraw{buffer, params})
	d.log = append(d.log, fmt.Sprintf("draw %v %d", buffer, params.Algorithm))
}

func (d *fakeDevice) Destroy() { d.destroyed = true }

func (d *fakeDevice) reset() {
	d.draws = nil
	d.begins = nil
	d.log = nil
}

// fakeSource serves a fixed descriptor and records render calls.
type fakeSource struct {
	frame   FrameDescriptor
	renders []recordedRender
	log     *[]string
}

type recordedRender struct {
	View          int
	Projection    mgl32.Mat4
	View4         mgl32.Mat4
	Width, Height int
	Dst           uint32
}

func (s *fakeSource) Query(viewportWidth, viewportHeight int) FrameDescriptor {
	return s.frame
}

func (s *fakeSource) Render(view int, projection, viewMatrix mgl32.Mat4, width, height int, dst uint32) {
	s.renders = append(s.renders, recordedRender{view, projection, viewMatrix, width, height, dst})
	if s.log != nil {
		*s.log = append(*s.log, fmt.Sprintf("render %d", view))
	}
}

func (s *fakeSource) renderedViews() []int {
	views := make([]int, 0, len(s.renders))
	for _, r := range s.renders {
		views = append(views, r.View)
	}
	return views
}
