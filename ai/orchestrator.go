package ai

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// MaxRetries is the per-model retry ceiling for rate-limited calls.
const MaxRetries = 3

// ModelCaller performs one call against one model. *Client is the production
// implementation; tests substitute a fake to exercise the fallback logic.
type ModelCaller interface {
	Call(ctx context.Context, model Model, systemPrompt string, messages []Message, noSystemRole bool, onChunk func(full string)) (string, error)
	CallVision(ctx context.Context, model Model, systemPrompt, userPrompt, imageURL string) (string, error)
}

// Options carries the optional progress callbacks for a generation.
type Options struct {
	// OnChunk receives the full accumulated text after every streamed delta.
	OnChunk func(full string)
	// OnModelInfo receives the display name of the model about to be tried,
	// suffixed with " (retry N)" on retries.
	OnModelInfo func(name string)
}

// Orchestrator walks the model list until one produces a response.
type Orchestrator struct {
	caller       ModelCaller
	models       []Model
	systemPrompt string
	sleep        func(time.Duration)
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithModels overrides the default model fallback list.
func WithModels(models []Model) Option {
	return func(o *Orchestrator) { o.models = models }
}

// WithSystemPrompt overrides the default daily-log system prompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Orchestrator) { o.systemPrompt = prompt }
}

// NewOrchestrator creates an Orchestrator backed by the given caller.
func NewOrchestrator(caller ModelCaller, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		caller:       caller,
		models:       FreeModels,
		systemPrompt: logSystemPrompt,
		sleep:        time.Sleep,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Generate tries each model in order until one responds. Per model it makes
// up to MaxRetries+1 attempts, backing off on rate limits. The returned
// string is the full generated text.
func (o *Orchestrator) Generate(ctx context.Context, messages []Message, opts Options) (string, error) {
	var lastErr error

models:
	for _, model := range o.models {
		useNoSystemRole := model.NoSystemRole

		for attempt := 0; attempt <= MaxRetries; attempt++ {
			if err := ctx.Err(); err != nil {
				return "", err
			}
			if opts.OnModelInfo != nil {
				name := model.Name
				if attempt > 0 {
					name += fmt.Sprintf(" (retry %d)", attempt)
				}
				opts.OnModelInfo(name)
			}

			result, err := o.caller.Call(ctx, model, o.systemPrompt, messages, useNoSystemRole, opts.OnChunk)
			if err == nil {
				return result, nil
			}
			lastErr = err
			msg := err.Error()

			switch {
			case isInvalidModel(msg):
				// Model doesn't exist upstream. Skip it, no retry.
				continue models
			case isSystemRoleRejected(msg) && !useNoSystemRole:
				// Retry the same model with instructions folded into the
				// first user turn.
				useNoSystemRole = true
				continue
			case isRateLimited(msg) && attempt < MaxRetries:
				o.sleep(time.Duration(attempt+1) * 5 * time.Second)
				continue
			default:
				continue models
			}
		}
	}

	return "", fmt.Errorf("all models unavailable, last error: %w", lastErr)
}

// GenerateFromImage tries vision-capable models first, then the rest, one
// attempt each, and returns the first non-empty response. Non-vision models
// occasionally manage a useful answer from the text prompt alone, so they
// stay in the fallback tail.
func (o *Orchestrator) GenerateFromImage(ctx context.Context, systemPrompt, userPrompt, imageURL string) (string, error) {
	var lastErr error

	ordered := VisionModels(o.models)
	for _, m := range o.models {
		if !m.Vision {
			ordered = append(ordered, m)
		}
	}

	for _, model := range ordered {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		result, err := o.caller.CallVision(ctx, model, systemPrompt, userPrompt, imageURL)
		if err == nil {
			return result, nil
		}
		lastErr = err
	}

	return "", fmt.Errorf("all models failed: %w", lastErr)
}

// Error classification mirrors the OpenRouter error surface: the status code
// and message text are all there is to go on.

func isRateLimited(msg string) bool {
	return strings.Contains(msg, "429")
}

func isInvalidModel(msg string) bool {
	return strings.Contains(msg, "404") || strings.Contains(msg, "not a valid model")
}

func isSystemRoleRejected(msg string) bool {
	return strings.Contains(msg, "Developer instruction") || strings.Contains(msg, "system role")
}
