package post

import (
	"context"

	"github.com/dverbeek/promptbooth/internal/log"
)

type Params struct {
	Name   string
	Prompt string
	Model  string
	URL    string
}

type Poster interface {
	Post(context.Context, Params) error
}

// NopPoster stands in when no subreddit is configured.
type NopPoster struct{}

func (NopPoster) Post(ctx context.Context, params Params) error {
	log.FromContextOrDiscard(ctx).Debug("skipping announcement", "name", params.Name)
	return nil
}
