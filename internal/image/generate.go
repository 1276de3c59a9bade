package image

import (
	"context"
	"fmt"
)

// Params carries a single generation request to the backend. TranslatedPrompt
// is the text actually dispatched to the model; it differs from Prompt when
// the enhancement marker has been applied.
type Params struct {
	Prompt           string
	TranslatedPrompt string
	Model            string
	Size             string
	Steps            int
}

// Result echoes both prompt forms alongside the image so callers can hand the
// triple back to clients unchanged.
type Result struct {
	Image            []byte
	Prompt           string
	TranslatedPrompt string
}

type Generator interface {
	Generate(context.Context, Params) (Result, error)
	// Ping probes backend reachability. Failures are advisory; callers log
	// them and continue.
	Ping(context.Context) error
}

// Error is an application-level failure reported by the backend, carrying the
// HTTP status to surface to the caller.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend error (status %d): %s", e.Status, e.Message)
}
