package param

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Fetcher resolves secrets by name. Fetch returns a single value, FetchAll a
// list stored under one name.
type Fetcher interface {
	Fetch(context.Context, string) (string, error)
	FetchAll(context.Context, string) ([]string, error)
}

// EnvFetcher reads parameters from environment variables, for running
// without AWS. FetchAll treats the value as a newline-separated list.
type EnvFetcher struct{}

func NewEnvFetcher(*do.Injector) (Fetcher, error) {
	return EnvFetcher{}, nil
}

func (EnvFetcher) Fetch(ctx context.Context, name string) (string, error) {
	log.FromContextOrDiscard(ctx).Debug("reading parameter from environment", "name", name)

	value, ok := os.LookupEnv(name)
	if !ok {
		return "", fmt.Errorf("environment variable %s not set", name)
	}
	return value, nil
}

func (f EnvFetcher) FetchAll(ctx context.Context, name string) ([]string, error) {
	value, err := f.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}

	lines := lo.Map(strings.Split(value, "\n"), func(s string, _ int) string {
		return strings.TrimSpace(s)
	})
	return lo.Filter(lines, func(s string, _ int) bool {
		return s != ""
	}), nil
}
