package renderer

// ViewCount is the number of view slots: one per eye.
const ViewCount = 2

type viewSlot struct {
	texture uint32
	width   int
	height  int
}

// ViewCache owns the two view textures and keeps their storage sized to the
// current source resolution.
type ViewCache struct {
	dev   Device
	slots [ViewCount]viewSlot
}

// NewViewCache creates both view textures as 1x1 placeholders so that the
// compositor always has valid bindings.
func NewViewCache(dev Device) *ViewCache {
	c := &ViewCache{dev: dev}
	for i := range c.slots {
		c.initPlaceholder(i)
	}
	return c
}

func (c *ViewCache) initPlaceholder(view int) {
	c.slots[view] = viewSlot{
		texture: c.dev.CreateViewTexture(),
		width:   1,
		height:  1,
	}
}

// Ensure makes sure the texture of view has width x height storage and returns
// it. Storage is only reallocated when the size changes.
func (c *ViewCache) Ensure(view, width, height int) uint32 {
	s := &c.slots[view]
	if s.width != width || s.height != height {
		c.dev.AllocateViewStorage(s.texture, width, height)
		s.width = width
		s.height = height
	}
	return s.texture
}

// GenerateMipmaps must be called after every fill of the view texture.
func (c *ViewCache) GenerateMipmaps(view int) {
	c.dev.GenerateMipmap(c.slots[view].texture)
}

// Texture returns the texture handle of view.
func (c *ViewCache) Texture(view int) uint32 {
	return c.slots[view].texture
}

// Textures returns both texture handles, view 0 first.
func (c *ViewCache) Textures() [ViewCount]uint32 {
	return [ViewCount]uint32{c.slots[0].texture, c.slots[1].texture}
}

// Size returns the allocated size of view.
func (c *ViewCache) Size(view int) (int, int) {
	return c.slots[view].width, c.slots[view].height
}

// Destroy deletes both textures.
func (c *ViewCache) Destroy() {
	for i := range c.slots {
		if c.slots[i].texture != 0 {
			c.dev.DeleteTexture(c.slots[i].texture)
		}
		c.slots[i] = viewSlot{}
	}
}
