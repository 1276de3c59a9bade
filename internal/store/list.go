package store

import (
	"context"
	"time"
)

// Entry describes one stored image and the metadata recorded with it.
type Entry struct {
	Name     string
	Metadata map[string]string
	Modified time.Time
}

type Lister interface {
	List(context.Context) ([]Entry, error)
}
