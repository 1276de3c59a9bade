package showcase

import (
	"context"
	"fmt"

	"github.com/dverbeek/promptbooth/internal/catalog"
	"github.com/dverbeek/promptbooth/internal/gallery"
	"github.com/dverbeek/promptbooth/internal/image"
	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/dverbeek/promptbooth/internal/post"
	"github.com/dverbeek/promptbooth/internal/prompt"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Input optionally pins any of the generation knobs. Unset fields fall back
// to a randomized prompt and the configured defaults.
type Input struct {
	Model   string `json:"model,omitempty"`
	Prompt  string `json:"prompt,omitempty"`
	Size    string `json:"size,omitempty"`
	Steps   int    `json:"steps,omitempty"`
	Enhance bool   `json:"enhance,omitempty"`
}

type Output struct {
	Name             string `json:"name"`
	Model            string `json:"model"`
	Prompt           string `json:"prompt"`
	TranslatedPrompt string `json:"translatedPrompt"`
	URL              string `json:"url"`
}

// Handler runs one scheduled generation: pick a prompt, generate, publish to
// the gallery, announce.
type Handler struct {
	randomizer     *prompt.Randomizer
	catalog        catalog.Catalog
	generator      image.Generator
	gallery        *gallery.Gallery
	poster         post.Poster
	defaultSteps   int
	defaultEnhance bool
}

func NewHandler(i *do.Injector) (*Handler, error) {
	return &Handler{
		randomizer:     do.MustInvoke[*prompt.Randomizer](i),
		catalog:        do.MustInvoke[catalog.Catalog](i),
		generator:      do.MustInvoke[image.Generator](i),
		gallery:        do.MustInvoke[*gallery.Gallery](i),
		poster:         do.MustInvoke[post.Poster](i),
		defaultSteps:   do.MustInvokeNamed[int](i, "default_steps"),
		defaultEnhance: do.MustInvokeNamed[bool](i, "showcase_enhance"),
	}, nil
}

func (h *Handler) Handle(ctx context.Context, input Input) (Output, error) {
	logger := log.FromContextOrDiscard(ctx).WithGroup("showcase").With("input", input)
	logger.Info("handling scheduled generation")

	if input.Model == "" || input.Prompt == "" {
		model, picked, err := h.randomizer.Randomize(ctx)
		if err != nil {
			return Output{}, err
		}
		input.Model = lo.Ternary(input.Model != "", input.Model, model)
		input.Prompt = lo.Ternary(input.Prompt != "", input.Prompt, picked)
	}

	backendModel, ok := h.catalog.Resolve(input.Model)
	if !ok {
		return Output{}, fmt.Errorf("unknown model %q", input.Model)
	}
	if input.Size == "" {
		input.Size = catalog.DefaultSize
	}
	if !catalog.ValidSize(input.Size) {
		return Output{}, fmt.Errorf("unknown size %q", input.Size)
	}
	steps := catalog.ClampSteps(lo.Ternary(input.Steps != 0, input.Steps, h.defaultSteps))

	translated := input.Prompt
	if input.Enhance || h.defaultEnhance {
		translated = prompt.Enhance(input.Prompt)
	}

	result, err := h.generator.Generate(ctx, image.Params{
		Prompt:           input.Prompt,
		TranslatedPrompt: translated,
		Model:            backendModel,
		Size:             input.Size,
		Steps:            steps,
	})
	if err != nil {
		return Output{}, err
	}

	item, err := h.gallery.Save(ctx, gallery.SaveParams{
		Image:            result.Image,
		Prompt:           result.Prompt,
		TranslatedPrompt: result.TranslatedPrompt,
		Model:            input.Model,
	})
	if err != nil {
		return Output{}, err
	}

	if err := h.poster.Post(ctx, post.Params{
		Name:   item.Name,
		Prompt: item.Prompt,
		Model:  item.Model,
		URL:    item.URL,
	}); err != nil {
		return Output{}, err
	}

	return Output{
		Name:             item.Name,
		Model:            input.Model,
		Prompt:           item.Prompt,
		TranslatedPrompt: item.TranslatedPrompt,
		URL:              item.URL,
	}, nil
}
