package store

import (
	"context"

	"github.com/dverbeek/promptbooth/internal/log"
)

type Invalidator interface {
	Invalidate(context.Context, []string) error
}

// NoopInvalidator stands in when no CDN fronts the store.
type NoopInvalidator struct{}

func (NoopInvalidator) Invalidate(ctx context.Context, paths []string) error {
	log.FromContextOrDiscard(ctx).Debug("skipping invalidation", "paths", paths)
	return nil
}
