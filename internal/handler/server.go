package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dverbeek/promptbooth/internal/catalog"
	"github.com/dverbeek/promptbooth/internal/feed"
	"github.com/dverbeek/promptbooth/internal/gallery"
	"github.com/dverbeek/promptbooth/internal/image"
	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/dverbeek/promptbooth/internal/page"
	"github.com/dverbeek/promptbooth/internal/prompt"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Server wires the booth's HTTP routes: the form page, the generation API,
// and the gallery views.
type Server struct {
	catalog      catalog.Catalog
	generator    image.Generator
	gallery      *gallery.Gallery
	feed         *feed.Generator
	templator    *page.Templator
	defaultModel string
	defaultSteps int
	imagesDir    string
}

func NewServer(i *do.Injector) (*Server, error) {
	return &Server{
		catalog:      do.MustInvoke[catalog.Catalog](i),
		generator:    do.MustInvoke[image.Generator](i),
		gallery:      do.MustInvoke[*gallery.Gallery](i),
		feed:         do.MustInvoke[*feed.Generator](i),
		templator:    do.MustInvoke[*page.Templator](i),
		defaultModel: do.MustInvokeNamed[string](i, "default_model"),
		defaultSteps: do.MustInvokeNamed[int](i, "default_steps"),
		imagesDir:    do.MustInvokeNamed[string](i, "images_dir"),
	}, nil
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/gallery", s.handleSave)
	mux.HandleFunc("GET /gallery", s.handleGallery)
	mux.HandleFunc("GET /feed.xml", s.handleFeed)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	if s.imagesDir != "" {
		mux.Handle("GET /images/", http.StripPrefix("/images/", http.FileServer(http.Dir(s.imagesDir))))
	}
	return mux
}

// CheckBackend probes the generation backend once and logs the outcome. The
// result is advisory; the server serves either way.
func (s *Server) CheckBackend(ctx context.Context) {
	logger := log.FromContextOrDiscard(ctx)
	if err := s.generator.Ping(ctx); err != nil {
		logger.Warn("generation backend not reachable", "error", err)
		return
	}
	logger.Info("generation backend reachable")
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := s.templator.Index(ctx, page.IndexParams{
		Models:       s.catalog.IDs(),
		Sizes:        catalog.Sizes(),
		Steps:        catalog.Steps(),
		DefaultModel: s.defaultModel,
		DefaultSize:  catalog.DefaultSize,
		DefaultSteps: s.defaultSteps,
	})
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("rendering index failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}

type generateResponse struct {
	Image            string `json:"image"`
	Prompt           string `json:"prompt"`
	TranslatedPrompt string `json:"translatedPrompt"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.FromContextOrDiscard(ctx).WithGroup("generate")

	if err := r.ParseForm(); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "malformed form data")
		return
	}

	userPrompt := strings.TrimSpace(r.PostFormValue("prompt"))
	if userPrompt == "" {
		respondError(ctx, w, http.StatusBadRequest, "prompt must not be empty")
		return
	}

	modelID := lo.Ternary(r.PostFormValue("model") != "", r.PostFormValue("model"), s.defaultModel)
	backendModel, ok := s.catalog.Resolve(modelID)
	if !ok {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("unknown model %q", modelID))
		return
	}

	size := r.PostFormValue("size")
	if !catalog.ValidSize(size) {
		size = catalog.DefaultSize
	}

	steps := s.defaultSteps
	if v, err := strconv.Atoi(r.PostFormValue("numSteps")); err == nil {
		steps = v
	}
	steps = catalog.ClampSteps(steps)

	enhance := r.PostFormValue("enhance") == "true"
	translated := lo.Ternary(enhance, prompt.Enhance(userPrompt), userPrompt)

	logger.Info("generating image", "model", modelID, "size", size, "steps", steps, "enhance", enhance)

	result, err := s.generator.Generate(ctx, image.Params{
		Prompt:           userPrompt,
		TranslatedPrompt: translated,
		Model:            backendModel,
		Size:             size,
		Steps:            steps,
	})
	if err != nil {
		var apiErr *image.Error
		if errors.As(err, &apiErr) {
			respondError(ctx, w, apiErr.Status, apiErr.Message)
			return
		}
		logger.Error("generation failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "image generation failed")
		return
	}

	respondJSON(w, http.StatusOK, generateResponse{
		Image:            base64.StdEncoding.EncodeToString(result.Image),
		Prompt:           result.Prompt,
		TranslatedPrompt: result.TranslatedPrompt,
	})
}

type saveRequest struct {
	Image            string `json:"image"`
	Prompt           string `json:"prompt"`
	TranslatedPrompt string `json:"translatedPrompt"`
	Model            string `json:"model"`
}

type saveResponse struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "malformed request body")
		return
	}

	data, err := base64.StdEncoding.DecodeString(req.Image)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, "image must be base64 encoded")
		return
	}
	if len(data) == 0 {
		respondError(ctx, w, http.StatusBadRequest, "image must not be empty")
		return
	}

	item, err := s.gallery.Save(ctx, gallery.SaveParams{
		Image:            data,
		Prompt:           req.Prompt,
		TranslatedPrompt: req.TranslatedPrompt,
		Model:            req.Model,
	})
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("saving to gallery failed", "error", err)
		respondError(ctx, w, http.StatusInternalServerError, "saving image failed")
		return
	}

	respondJSON(w, http.StatusCreated, saveResponse{Name: item.Name, URL: item.URL})
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	items, err := s.gallery.List(ctx)
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("listing gallery failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	out, err := s.templator.Gallery(ctx, page.GalleryParams{
		Items: lo.Map(items, func(item gallery.Item, _ int) page.GalleryItem {
			return page.GalleryItem{
				URL:              item.URL,
				Prompt:           item.Prompt,
				TranslatedPrompt: item.TranslatedPrompt,
				Model:            item.Model,
				Created:          item.Created.Format("2006-01-02 15:04 UTC"),
			}
		}),
	})
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("rendering gallery failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(out)
}

func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	rss, err := s.feed.Generate(ctx)
	if err != nil {
		log.FromContextOrDiscard(ctx).Error("generating feed failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	_, _ = w.Write(rss)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
