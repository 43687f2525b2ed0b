// Package reconcile forces the free-form output of the generative service
// into the JSON shapes the rest of the system stores. The model is treated
// as untrusted: nothing is assumed from the prompt text, every response is
// parsed defensively, and batch mode feeds parse failures back to the model
// for a bounded number of self-correction attempts.
package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/adilbekov/shopscout/internal/genai"
	"github.com/adilbekov/shopscout/internal/metrics"
)

const maxAttempts = 3

var (
	// ErrNotJSON means the output could not be parsed at all.
	ErrNotJSON = errors.New("output is not valid JSON")
	// ErrNotArray means the output parsed but is not the required array.
	ErrNotArray = errors.New("output is not a JSON array")
	// ErrAttemptsExhausted is terminal: every allowed attempt produced
	// unusable output and no partial result exists.
	ErrAttemptsExhausted = errors.New("generation attempts exhausted")
)

type Reconciler struct {
	gen    genai.Generator
	logger *slog.Logger
}

func New(gen genai.Generator, logger *slog.Logger) *Reconciler {
	return &Reconciler{gen: gen, logger: logger.With("component", "reconciler")}
}

// StripFences removes a markdown code fence (with optional json tag)
// wrapping the model's output. Output without fences passes through
// untouched.
func StripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// Object runs a single generation call and parses the output as one JSON
// object. There is no retry: any failure is fatal for this item and the
// caller decides whether to skip it or abort.
func (r *Reconciler) Object(ctx context.Context, prompt string) (map[string]any, error) {
	text, err := r.gen.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}

	var parsed any
	if err := json.Unmarshal([]byte(StripFences(text)), &parsed); err != nil {
		metrics.ReconcileAttemptsTotal.WithLabelValues("parse_error").Inc()
		return nil, fmt.Errorf("%w: %s", ErrNotJSON, err)
	}
	obj, ok := parsed.(map[string]any)
	if !ok {
		metrics.ReconcileAttemptsTotal.WithLabelValues("schema_error").Inc()
		return nil, fmt.Errorf("%w: expected a JSON object", ErrNotJSON)
	}
	metrics.ReconcileAttemptsTotal.WithLabelValues("ok").Inc()
	return obj, nil
}

// Array runs up to maxAttempts generation calls until the output parses as
// a JSON array. Each failed attempt's reason and raw output are appended to
// the next prompt so the model can correct itself. Exhausting every attempt
// returns ErrAttemptsExhausted with no partial result.
func (r *Reconciler) Array(ctx context.Context, prompt string) ([]map[string]any, error) {
	attemptPrompt := prompt

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := r.gen.Generate(ctx, attemptPrompt)
		if err != nil {
			return nil, fmt.Errorf("generate (attempt %d): %w", attempt, err)
		}

		items, parseErr := parseArray(text)
		if parseErr == nil {
			metrics.ReconcileAttemptsTotal.WithLabelValues("ok").Inc()
			return items, nil
		}

		outcome := "parse_error"
		if errors.Is(parseErr, ErrNotArray) {
			outcome = "schema_error"
		}
		metrics.ReconcileAttemptsTotal.WithLabelValues(outcome).Inc()
		r.logger.Warn("reconcile attempt failed",
			"attempt", attempt, "max_attempts", maxAttempts, "error", parseErr)

		attemptPrompt = fmt.Sprintf(
			"%s\n\nYour previous attempt failed: %s.\nPrevious output:\n%s\nRespond again with only a valid JSON array.",
			prompt, parseErr, text)
	}

	return nil, ErrAttemptsExhausted
}

func parseArray(text string) ([]map[string]any, error) {
	var parsed any
	if err := json.Unmarshal([]byte(StripFences(text)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotJSON, err)
	}
	raw, ok := parsed.([]any)
	if !ok {
		return nil, ErrNotArray
	}

	items := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if obj, ok := el.(map[string]any); ok {
			items = append(items, obj)
		}
	}
	return items, nil
}
