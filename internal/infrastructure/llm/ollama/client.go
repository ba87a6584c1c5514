// Package ollama implements the generative-model classifiers against the
// Ollama /api/generate endpoint. All failure modes collapse into the domain's
// model-rejection kinds so the coordinator can fall back without inspecting
// transport details.
package ollama

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/kirillkom/document-triage/internal/infrastructure/resilience"
)

const (
	defaultTimeout    = 120 * time.Second
	generateTemp      = 0.3
	generateMaxTokens = 512
)

type Client struct {
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *resilience.Breaker
}

type Options struct {
	// Timeout bounds one generate call end to end. The call is never
	// retried; on expiry it is treated as service-unavailable.
	Timeout time.Duration
	// MaxRPS throttles outbound generate calls. Zero means no limit.
	MaxRPS float64
	// Breaker, when set, short-circuits calls while the service is down and
	// feeds the Available() probe.
	Breaker *resilience.Breaker
}

func New(baseURL, model string, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	var limiter *rate.Limiter
	if opts.MaxRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.MaxRPS), 1)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    limiter,
		breaker:    opts.Breaker,
	}
}

// Available reports whether the service is worth calling: configured and not
// currently marked unreachable by the breaker.
func (c *Client) Available() bool {
	if c == nil || c.baseURL == "" {
		return false
	}
	return c.breaker == nil || c.breaker.Available()
}

// GenerateJSON asks the model for a strict-JSON completion and returns the
// raw response text. Errors are domain-typed.
func (c *Client) GenerateJSON(ctx context.Context, prompt string) (string, error) {
	reqBody := map[string]any{
		"model":  c.model,
		"prompt": prompt,
		"stream": false,
		"format": "json",
		"options": map[string]any{
			"temperature": generateTemp,
			"num_predict": generateMaxTokens,
		},
	}

	var response struct {
		Response string `json:"response"`
	}

	call := func(callCtx context.Context) error {
		if c.limiter != nil {
			if err := c.limiter.Wait(callCtx); err != nil {
				return err
			}
		}
		return c.postJSON(callCtx, "/api/generate", reqBody, &response)
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Do(ctx, call)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return "", wrapTransportError("generate", err)
	}
	return strings.TrimSpace(response.Response), nil
}

// extractJSONObject tolerates models that wrap the JSON object in prose or
// markdown fences.
func extractJSONObject(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
