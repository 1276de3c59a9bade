package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogResolve(t *testing.T) {
	c := New(map[string]string{
		"flux-schnell": "black-forest-labs/FLUX.1-schnell",
		"sd-xl":        "stabilityai/stable-diffusion-xl-base-1.0",
	})

	t.Run("known id", func(t *testing.T) {
		model, ok := c.Resolve("flux-schnell")
		assert.True(t, ok)
		assert.Equal(t, "black-forest-labs/FLUX.1-schnell", model)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, ok := c.Resolve("dall-e-9")
		assert.False(t, ok)
	})
}

func TestCatalogIDs(t *testing.T) {
	c := New(map[string]string{"zeta": "z", "alpha": "a", "mid": "m"})
	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.IDs())
}

func TestValidSize(t *testing.T) {
	for _, size := range Sizes() {
		assert.True(t, ValidSize(size), size)
	}
	assert.False(t, ValidSize("640x480"))
	assert.False(t, ValidSize(""))
}

func TestSteps(t *testing.T) {
	assert.Equal(t, []int{4, 5, 6, 7, 8}, Steps())
}

func TestClampSteps(t *testing.T) {
	assert.Equal(t, MinSteps, ClampSteps(1))
	assert.Equal(t, 6, ClampSteps(6))
	assert.Equal(t, MaxSteps, ClampSteps(50))
}
