package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewCachePlaceholders(t *testing.T) {
	dev := newFakeDevice()
	c := NewViewCache(dev)

	assert.Equal(t, []string{"create 1", "create 2"}, dev.log)
	for v := 0; v < ViewCount; v++ {
		w, h := c.Size(v)
		assert.Equal(t, 1, w)
		assert.Equal(t, 1, h)
		assert.NotZero(t, c.Texture(v))
	}
	assert.Empty(t, dev.allocations)
}

func TestViewCacheAllocatesOnlyOnResize(t *testing.T) {
	dev := newFakeDevice()
	c := NewViewCache(dev)

	for i := 0; i < 10; i++ {
		tex := c.Ensure(0, 1920, 1080)
		assert.Equal(t, c.Texture(0), tex)
	}
	assert.Len(t, dev.allocations[c.Texture(0)], 1)
	assert.Empty(t, dev.allocations[c.Texture(1)])

	c.Ensure(0, 1280, 720)
	c.Ensure(0, 1280, 720)
	assert.Equal(t, [][2]int{{1920, 1080}, {1280, 720}}, dev.allocations[c.Texture(0)])

	// Same size as the placeholder: nothing to allocate.
	c.Ensure(1, 1, 1)
	assert.Empty(t, dev.allocations[c.Texture(1)])
}

func TestViewCacheMipmapsAreUnconditional(t *testing.T) {
	dev := newFakeDevice()
	c := NewViewCache(dev)
	c.Ensure(1, 64, 64)
	c.GenerateMipmaps(1)
	c.GenerateMipmaps(1)
	assert.Equal(t, 2, dev.mipmaps[c.Texture(1)])
}

func TestViewCacheDestroy(t *testing.T) {
	dev := newFakeDevice()
	c := NewViewCache(dev)
	textures := c.Textures()
	c.Destroy()
	assert.ElementsMatch(t, textures[:], dev.deleted)

	// A second destroy has nothing left to release.
	c.Destroy()
	assert.Len(t, dev.deleted, 2)
}
