package catalog

import (
	"slices"
	"sort"

	"github.com/samber/lo"
)

// The hosted backends only accept a small fixed set of output sizes, so the
// booth enumerates them rather than letting users type dimensions.
var sizes = []string{
	"1024x1024",
	"512x1024",
	"768x512",
	"768x1024",
	"1024x576",
	"576x1024",
}

const (
	DefaultSize = "1024x1024"

	MinSteps = 4
	MaxSteps = 8
)

// Catalog maps user-facing model ids to the identifiers the generation
// backend expects. It is read-only after construction.
type Catalog struct {
	models map[string]string
}

func New(models map[string]string) Catalog {
	return Catalog{models: models}
}

// Resolve returns the backend model identifier for a user-facing id.
func (c Catalog) Resolve(id string) (string, bool) {
	model, ok := c.models[id]
	return model, ok
}

// IDs returns the user-facing model ids in stable order for form rendering.
func (c Catalog) IDs() []string {
	ids := lo.Keys(c.models)
	sort.Strings(ids)
	return ids
}

func Sizes() []string {
	return slices.Clone(sizes)
}

func ValidSize(size string) bool {
	return lo.Contains(sizes, size)
}

// Steps returns the selectable inference step counts.
func Steps() []int {
	return lo.RangeFrom(MinSteps, MaxSteps-MinSteps+1)
}

func ClampSteps(steps int) int {
	return lo.Clamp(steps, MinSteps, MaxSteps)
}
