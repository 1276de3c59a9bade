package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/dverbeek/promptbooth/internal/gallery"
	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/gorilla/feeds"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Generator renders the gallery as an RSS feed.
type Generator struct {
	gallery   *gallery.Gallery
	publicURL string
}

func NewGenerator(i *do.Injector) (*Generator, error) {
	return &Generator{
		gallery:   do.MustInvoke[*gallery.Gallery](i),
		publicURL: do.MustInvokeNamed[string](i, "public_url"),
	}, nil
}

func (g *Generator) Generate(ctx context.Context) ([]byte, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("feed")
	logger.Info("generating rss feed")

	items, err := g.gallery.List(ctx)
	if err != nil {
		return nil, err
	}

	feed := feeds.Feed{
		Title:       "PromptBooth",
		Description: "AI generated images, fresh from the booth",
		Link:        &feeds.Link{Href: lo.Ternary(g.publicURL != "", g.publicURL, "/")},
		Updated:     time.Now(),
	}
	for _, item := range items {
		feed.Add(&feeds.Item{
			Id:          item.Name,
			Title:       item.Prompt,
			Description: fmt.Sprintf("%s (%s)", item.TranslatedPrompt, item.Model),
			Link:        &feeds.Link{Href: item.URL},
			Created:     item.Created,
		})
	}

	rss, err := feed.ToRss()
	return []byte(rss), err
}
