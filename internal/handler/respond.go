package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dverbeek/promptbooth/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondError logs the failure and returns it to the client as {"error": ...}.
func respondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	log.FromContextOrDiscard(ctx).Warn("request failed", "status", status, "error", message)
	respondJSON(w, status, errorResponse{Error: message})
}
