package gallery

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/dverbeek/promptbooth/internal/store"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Item is one published generation.
type Item struct {
	Name             string
	URL              string
	Prompt           string
	TranslatedPrompt string
	Model            string
	Created          time.Time
}

type SaveParams struct {
	Image            []byte
	Prompt           string
	TranslatedPrompt string
	Model            string
}

type Gallery struct {
	uploader    store.Uploader
	invalidator store.Invalidator
	lister      store.Lister
	publicURL   string
}

func New(i *do.Injector) (*Gallery, error) {
	return &Gallery{
		uploader:    do.MustInvoke[store.Uploader](i),
		invalidator: do.MustInvoke[store.Invalidator](i),
		lister:      do.MustInvoke[store.Lister](i),
		publicURL:   do.MustInvokeNamed[string](i, "public_url"),
	}, nil
}

// Save stores the image under a timestamped name and refreshes the cached
// listing pages.
func (g *Gallery) Save(ctx context.Context, params SaveParams) (Item, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("gallery")

	created := time.Now().UTC()
	name := created.Format("20060102150405") + ".png"
	logger.Info("saving image", "name", name, "model", params.Model)

	err := g.uploader.Upload(ctx, store.UploadParams{
		Name:        name,
		Data:        params.Image,
		ContentType: "image/png",
		Metadata: map[string]string{
			"prompt":            params.Prompt,
			"translated_prompt": params.TranslatedPrompt,
			"model":             params.Model,
			"created":           created.Format(time.RFC3339),
		},
	})
	if err != nil {
		return Item{}, err
	}

	if err := g.invalidator.Invalidate(ctx, []string{"/gallery", "/feed.xml"}); err != nil {
		return Item{}, err
	}

	return Item{
		Name:             name,
		URL:              g.URL(name),
		Prompt:           params.Prompt,
		TranslatedPrompt: params.TranslatedPrompt,
		Model:            params.Model,
		Created:          created,
	}, nil
}

// List returns stored items, newest first. Entries written before metadata
// existed fall back to their storage timestamps.
func (g *Gallery) List(ctx context.Context) ([]Item, error) {
	entries, err := g.lister.List(ctx)
	if err != nil {
		return nil, err
	}

	items := lo.Map(entries, func(e store.Entry, _ int) Item {
		created := e.Modified
		if t, err := time.Parse(time.RFC3339, e.Metadata["created"]); err == nil {
			created = t
		}
		return Item{
			Name:             e.Name,
			URL:              g.URL(e.Name),
			Prompt:           e.Metadata["prompt"],
			TranslatedPrompt: e.Metadata["translated_prompt"],
			Model:            e.Metadata["model"],
			Created:          created,
		}
	})
	sort.Slice(items, func(a, b int) bool {
		return items[a].Created.After(items[b].Created)
	})
	return items, nil
}

// URL resolves a stored name to its public location. Without a public URL
// the server's own image route serves the files.
func (g *Gallery) URL(name string) string {
	if g.publicURL == "" {
		return "/images/" + name
	}
	return strings.TrimSuffix(g.publicURL, "/") + "/" + name
}
