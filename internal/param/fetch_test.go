package param

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFetch(t *testing.T) {
	t.Setenv("PROMPTBOOTH_TEST_SECRET", "hunter2")

	value, err := EnvFetcher{}.Fetch(context.Background(), "PROMPTBOOTH_TEST_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", value)

	_, err = EnvFetcher{}.Fetch(context.Background(), "PROMPTBOOTH_TEST_MISSING")
	assert.Error(t, err)
}

func TestEnvFetchAll(t *testing.T) {
	t.Setenv("PROMPTBOOTH_TEST_PROMPTS", "flux-schnell|a cat\n\n  flux-dev|a dog  \n")

	values, err := EnvFetcher{}.FetchAll(context.Background(), "PROMPTBOOTH_TEST_PROMPTS")
	require.NoError(t, err)
	assert.Equal(t, []string{"flux-schnell|a cat", "flux-dev|a dog"}, values)
}
