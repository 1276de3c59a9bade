package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dverbeek/promptbooth/internal/log"
	"github.com/samber/do"
)

// SiliconFlowGenerator talks to a SiliconFlow-compatible image generation
// API. The backend responds with a URL to the rendered image, which is
// downloaded before returning.
type SiliconFlowGenerator struct {
	Client  *http.Client
	APIRoot string
	Key     string
}

func NewSiliconFlowGenerator(i *do.Injector) (Generator, error) {
	return &SiliconFlowGenerator{
		Client:  do.MustInvoke[*http.Client](i),
		APIRoot: do.MustInvokeNamed[string](i, "backend_api_root"),
		Key:     do.MustInvokeNamed[string](i, "backend_api_key"),
	}, nil
}

type generateRequest struct {
	Model             string `json:"model"`
	Prompt            string `json:"prompt"`
	ImageSize         string `json:"image_size"`
	BatchSize         int    `json:"batch_size"`
	NumInferenceSteps int    `json:"num_inference_steps"`
}

type generateResponse struct {
	Images []struct {
		URL string `json:"url"`
	} `json:"images"`
}

func (g *SiliconFlowGenerator) Generate(ctx context.Context, params Params) (Result, error) {
	logger := log.FromContextOrDiscard(ctx).With("model", params.Model, "size", params.Size, "steps", params.Steps)
	logger.Info("generating image")

	body, err := json.Marshal(generateRequest{
		Model:             params.Model,
		Prompt:            params.TranslatedPrompt,
		ImageSize:         params.Size,
		BatchSize:         1,
		NumInferenceSteps: params.Steps,
	})
	if err != nil {
		return Result{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.APIRoot+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.Key)

	resp, err := g.Client.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, &Error{Status: resp.StatusCode, Message: backendMessage(data)}
	}

	var payload generateResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return Result{}, fmt.Errorf("decoding generation response: %w", err)
	}
	if len(payload.Images) == 0 || payload.Images[0].URL == "" {
		return Result{}, fmt.Errorf("backend returned no image")
	}

	img, err := g.download(ctx, payload.Images[0].URL)
	if err != nil {
		return Result{}, err
	}
	logger.Info("received image", "bytes", len(img))

	return Result{
		Image:            img,
		Prompt:           params.Prompt,
		TranslatedPrompt: params.TranslatedPrompt,
	}, nil
}

func (g *SiliconFlowGenerator) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading image: status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Ping lists the backend's models to check reachability and credentials.
func (g *SiliconFlowGenerator) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.APIRoot+"/models", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+g.Key)

	resp, err := g.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("backend responded with status %d", resp.StatusCode)
	}
	return nil
}

type errorResponse struct {
	Message string `json:"message"`
	Err     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// backendMessage pulls a human-readable message out of an error body,
// accepting both bare and OpenAI-style envelopes.
func backendMessage(body []byte) string {
	var e errorResponse
	if err := json.Unmarshal(body, &e); err == nil {
		if e.Message != "" {
			return e.Message
		}
		if e.Err.Message != "" {
			return e.Err.Message
		}
	}
	if s := strings.TrimSpace(string(body)); s != "" {
		return s
	}
	return "image generation failed"
}
