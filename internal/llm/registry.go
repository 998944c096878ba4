package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ats-checker/internal/shared/metrics"
	"ats-checker/internal/shared/telemetry"
)

// Registry holds configured provider clients keyed by name.
type Registry struct {
	clients map[string]Client
	order   []string
}

// NewRegistry builds a registry from the given clients. Nil clients are skipped.
func NewRegistry(clients ...Client) *Registry {
	r := &Registry{clients: make(map[string]Client, len(clients))}
	for _, c := range clients {
		if c == nil {
			continue
		}
		name := strings.ToLower(c.Name())
		if _, ok := r.clients[name]; ok {
			continue
		}
		r.clients[name] = c
		r.order = append(r.order, name)
	}
	return r
}

// Get returns the client registered under name.
func (r *Registry) Get(name string) (Client, bool) {
	c, ok := r.clients[strings.ToLower(strings.TrimSpace(name))]
	return c, ok
}

// Names lists registered providers in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Available lists providers that have credentials configured.
func (r *Registry) Available() []string {
	var out []string
	for _, name := range r.order {
		if r.clients[name].Available() {
			out = append(out, name)
		}
	}
	return out
}

// Eligible filters a priority list down to providers that are registered,
// available, and able to handle the input (file inputs need upload support).
func (r *Registry) Eligible(priority []string, wantsFile bool) []string {
	var out []string
	for _, name := range priority {
		c, ok := r.Get(name)
		if !ok || !c.Available() {
			continue
		}
		if wantsFile && !c.SupportsFileUpload() {
			continue
		}
		out = append(out, strings.ToLower(strings.TrimSpace(name)))
	}
	return out
}

// RunResult reports which provider produced the output and how many were tried.
type RunResult struct {
	Raw      json.RawMessage
	Provider string
	Attempts int
}

// Run tries each provider in priority order until one succeeds. When
// autoFallback is false only the first eligible provider is tried.
func (r *Registry) Run(ctx context.Context, priority []string, input ExtractInput, autoFallback bool, requestID string) (RunResult, error) {
	eligible := r.Eligible(priority, input.WantsFile())
	if len(eligible) == 0 {
		return RunResult{}, fmt.Errorf("no eligible llm provider for priority %v", priority)
	}
	if !autoFallback {
		eligible = eligible[:1]
	}

	var lastErr error
	for i, name := range eligible {
		if err := ctx.Err(); err != nil {
			return RunResult{}, err
		}
		client := WithRetry(r.clients[name], requestID)
		raw, err := client.ExtractResume(ctx, input)
		if err == nil {
			return RunResult{Raw: raw, Provider: name, Attempts: i + 1}, nil
		}
		lastErr = err
		telemetry.Warn("llm.provider_failed", map[string]any{
			"provider":   name,
			"request_id": requestID,
			"error":      sanitizeError(err),
		})
		if i < len(eligible)-1 {
			metrics.IncProviderFallback()
		}
	}
	return RunResult{}, fmt.Errorf("all llm providers failed: %w", lastErr)
}
