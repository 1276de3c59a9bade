package page

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	templator := &Templator{}
	out, err := templator.Index(context.Background(), IndexParams{
		Models:       []string{"flux-dev", "flux-schnell"},
		Sizes:        []string{"1024x1024", "512x1024"},
		Steps:        []int{4, 5, 6, 7, 8},
		DefaultModel: "flux-schnell",
		DefaultSize:  "1024x1024",
		DefaultSteps: 4,
	})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<option value="flux-dev">flux-dev</option>`)
	assert.Contains(t, html, `<option value="flux-schnell" selected>flux-schnell</option>`)
	assert.Contains(t, html, `<option value="1024x1024" selected>1024x1024</option>`)
	assert.Contains(t, html, `<option value="4" selected>4</option>`)
	assert.Contains(t, html, `<option value="8">8</option>`)

	// the form guards against concurrent submissions and normalizes the
	// enhance checkbox to a true/false field
	assert.Contains(t, html, "if (inFlight)")
	assert.Contains(t, html, "generate.disabled = true")
	assert.Contains(t, html, "form.enhance.checked ? 'true' : 'false'")
}

func TestGallery(t *testing.T) {
	templator := &Templator{}
	out, err := templator.Gallery(context.Background(), GalleryParams{Items: []GalleryItem{
		{
			URL:     "https://pics.example.com/20240301000000.png",
			Prompt:  "a fox in the snow",
			Model:   "flux-schnell",
			Created: "2024-03-01",
		},
	}})
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "https://pics.example.com/20240301000000.png")
	assert.Contains(t, html, "a fox in the snow")
	assert.Contains(t, html, "flux-schnell")
}

func TestGalleryEmpty(t *testing.T) {
	templator := &Templator{}
	out, err := templator.Gallery(context.Background(), GalleryParams{})
	require.NoError(t, err)
	assert.Contains(t, string(out), "Nothing here yet")
}

func TestIndexEscapesNothingUnsafe(t *testing.T) {
	templator := &Templator{}
	out, err := templator.Index(context.Background(), IndexParams{
		Models:       []string{`<script>alert(1)</script>`},
		Sizes:        []string{"1024x1024"},
		Steps:        []int{4},
		DefaultModel: "",
		DefaultSize:  "1024x1024",
		DefaultSteps: 4,
	})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>alert(1)</script>")
}
