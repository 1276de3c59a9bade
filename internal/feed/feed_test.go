package feed

import (
	"context"
	"testing"
	"time"

	"github.com/dverbeek/promptbooth/internal/gallery"
	"github.com/dverbeek/promptbooth/internal/store"
	"github.com/samber/do"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct{}

func (fakeUploader) Upload(context.Context, store.UploadParams) error { return nil }

type fakeLister struct {
	entries []store.Entry
}

func (f *fakeLister) List(context.Context) ([]store.Entry, error) {
	return f.entries, nil
}

func TestGenerate(t *testing.T) {
	i := do.New()
	do.ProvideValue[store.Uploader](i, fakeUploader{})
	do.ProvideValue[store.Invalidator](i, store.NoopInvalidator{})
	do.ProvideValue[store.Lister](i, &fakeLister{entries: []store.Entry{
		{
			Name: "20240301000000.png",
			Metadata: map[string]string{
				"prompt":            "a fox in the snow",
				"translated_prompt": "!enhance a fox in the snow",
				"model":             "flux-schnell",
				"created":           "2024-03-01T00:00:00Z",
			},
			Modified: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		},
	}})
	do.ProvideNamedValue(i, "public_url", "https://booth.example.com")
	do.Provide(i, gallery.New)
	do.Provide(i, NewGenerator)

	rss, err := do.MustInvoke[*Generator](i).Generate(context.Background())
	require.NoError(t, err)

	out := string(rss)
	assert.Contains(t, out, "<title>PromptBooth</title>")
	assert.Contains(t, out, "a fox in the snow")
	assert.Contains(t, out, "flux-schnell")
	assert.Contains(t, out, "https://booth.example.com/20240301000000.png")
}
