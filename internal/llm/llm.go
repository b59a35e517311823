// Package llm defines the provider interface and implementations used for
// ticket summarization.
package llm

import (
	"context"
	"net/http"
	"time"
)

// Settings configures a summarization request.
type Settings struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider generates text from a prompt using an LLM.
type Provider interface {
	Generate(ctx context.Context, prompt string, settings Settings) (string, error)
	Name() string
}

// Ticket conversations run long; allow generous time per request.
const requestTimeout = 5 * time.Minute

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
