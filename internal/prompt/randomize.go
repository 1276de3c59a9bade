package prompt

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/do"
)

// Randomizer picks a model|prompt pair for unattended showcase runs.
type Randomizer struct {
	prompts []string
	rnd     *rand.Rand
}

func NewRandomizer(i *do.Injector) (*Randomizer, error) {
	prompts := do.MustInvokeNamed[[]string](i, "showcase_prompts")
	rnd := rand.New(rand.NewSource(time.Now().UTC().UnixNano()))
	return &Randomizer{prompts, rnd}, nil
}

func (r *Randomizer) Randomize(ctx context.Context) (string, string, error) {
	log.FromContextOrDiscard(ctx).WithGroup("randomizer").Info("picking random model and prompt")

	if len(r.prompts) == 0 {
		return "", "", errors.New("no showcase prompts configured")
	}
	entry := r.prompts[r.rnd.Intn(len(r.prompts))]
	pair := strings.SplitN(entry, "|", 2)
	if len(pair) != 2 {
		return "", "", fmt.Errorf("malformed showcase prompt %q, want model|prompt", entry)
	}
	return pair[0], pair[1], nil
}
