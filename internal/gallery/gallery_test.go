package gallery

import (
	"context"
	"testing"
	"time"

	"github.com/dverbeek/promptbooth/internal/store"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	uploads []store.UploadParams
	err     error
}

func (f *fakeUploader) Upload(_ context.Context, params store.UploadParams) error {
	f.uploads = append(f.uploads, params)
	return f.err
}

type fakeInvalidator struct {
	paths [][]string
	err   error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, paths []string) error {
	f.paths = append(f.paths, paths)
	return f.err
}

type fakeLister struct {
	entries []store.Entry
	err     error
}

func (f *fakeLister) List(_ context.Context) ([]store.Entry, error) {
	return f.entries, f.err
}

func newTestGallery(t *testing.T, up *fakeUploader, inv *fakeInvalidator, lister *fakeLister, publicURL string) *Gallery {
	t.Helper()
	i := do.New()
	do.ProvideValue[store.Uploader](i, up)
	do.ProvideValue[store.Invalidator](i, inv)
	do.ProvideValue[store.Lister](i, lister)
	do.ProvideNamedValue(i, "public_url", publicURL)
	g, err := New(i)
	require.NoError(t, err)
	return g
}

func TestSave(t *testing.T) {
	up := &fakeUploader{}
	inv := &fakeInvalidator{}
	g := newTestGallery(t, up, inv, &fakeLister{}, "https://pics.example.com")

	item, err := g.Save(context.Background(), SaveParams{
		Image:            []byte("png-bytes"),
		Prompt:           "a fox in the snow",
		TranslatedPrompt: "!enhance a fox in the snow",
		Model:            "flux-schnell",
	})
	require.NoError(t, err)

	require.Len(t, up.uploads, 1)
	upload := up.uploads[0]
	assert.Regexp(t, `^\d{14}\.png$`, upload.Name)
	assert.Equal(t, []byte("png-bytes"), upload.Data)
	assert.Equal(t, "image/png", upload.ContentType)
	assert.Equal(t, "a fox in the snow", upload.Metadata["prompt"])
	assert.Equal(t, "!enhance a fox in the snow", upload.Metadata["translated_prompt"])
	assert.Equal(t, "flux-schnell", upload.Metadata["model"])
	assert.NotEmpty(t, upload.Metadata["created"])

	require.Len(t, inv.paths, 1)
	assert.Equal(t, []string{"/gallery", "/feed.xml"}, inv.paths[0])

	assert.Equal(t, upload.Name, item.Name)
	assert.Equal(t, "https://pics.example.com/"+upload.Name, item.URL)
}

func TestListNewestFirst(t *testing.T) {
	lister := &fakeLister{entries: []store.Entry{
		{
			Name:     "20240101000000.png",
			Metadata: map[string]string{"prompt": "old", "created": "2024-01-01T00:00:00Z"},
		},
		{
			Name:     "20240301000000.png",
			Metadata: map[string]string{"prompt": "new", "created": "2024-03-01T00:00:00Z"},
		},
		{
			Name:     "stray.png",
			Modified: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}}
	g := newTestGallery(t, &fakeUploader{}, &fakeInvalidator{}, lister, "")

	items, err := g.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "new", items[0].Prompt)
	assert.Equal(t, "stray.png", items[1].Name, "entries without metadata sort by storage time")
	assert.Equal(t, "old", items[2].Prompt)
	assert.Equal(t, "/images/20240301000000.png", items[0].URL)
}

func TestURL(t *testing.T) {
	g := newTestGallery(t, &fakeUploader{}, &fakeInvalidator{}, &fakeLister{}, "https://pics.example.com/")
	assert.Equal(t, "https://pics.example.com/a.png", g.URL("a.png"))

	local := newTestGallery(t, &fakeUploader{}, &fakeInvalidator{}, &fakeLister{}, "")
	assert.Equal(t, "/images/a.png", local.URL("a.png"))
}
