// Package gemini calls the Google generative language REST API.
package gemini

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/riskibarqy/football-hub/internal/metrics"
	"github.com/riskibarqy/football-hub/internal/platform/logging"
	"github.com/riskibarqy/football-hub/internal/platform/resilience"
	"github.com/riskibarqy/football-hub/internal/usecase"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	providerName   = "gemini"
	maxBodyBytes   = 2 << 20
)

// DefaultModels are tried in order; a 404 moves on to the next one.
var DefaultModels = []string{"gemini-2.5-flash", "gemini-2.0-flash-lite-001", "gemini-2.0-flash-001"}

var (
	errModelNotFound   = crerr.New("gemini model not found")
	errGeminiTransient = crerr.New("gemini transient failure")
	ErrEmptyAnswer     = stderrors.New("gemini returned an empty answer")
)

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	APIKey         string
	Models         []string
	Timeout        time.Duration
	Temperature    float64
	MaxTokens      int
	Logger         *logging.Logger
	CircuitBreaker resilience.BreakerConfig
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	models      []string
	temperature float64
	maxTokens   int
	logger      *logging.Logger
	breaker     *resilience.Breaker
}

var _ usecase.LLMClient = (*Client)(nil)

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	models := make([]string, 0, len(cfg.Models))
	for _, m := range cfg.Models {
		if m = strings.TrimSpace(m); m != "" {
			models = append(models, m)
		}
	}
	if len(models) == 0 {
		models = append(models, DefaultModels...)
	}
	temperature := cfg.Temperature
	if temperature <= 0 {
		temperature = 0.4
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}

	return &Client{
		httpClient:  httpClient,
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.APIKey),
		models:      models,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
		breaker:     resilience.NewBreaker(cfg.CircuitBreaker),
	}
}

func (c *Client) Enabled() bool {
	return c != nil && c.apiKey != ""
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateRequest struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
}

// Generate sends the system prompt, earlier turns and the message to the
// first model that exists.
func (c *Client) Generate(ctx context.Context, systemPrompt string, turns []usecase.ChatTurn, message string) (string, error) {
	if !c.Enabled() {
		return "", fmt.Errorf("%w: gemini api key is not configured", usecase.ErrDependencyUnavailable)
	}
	if err := c.breaker.Allow(); err != nil {
		metrics.ObserveUpstream(providerName, "generateContent", "rejected", 0)
		return "", fmt.Errorf("%w: chat model is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}

	payload, err := sonic.Marshal(buildRequest(systemPrompt, turns, message, c.temperature, c.maxTokens))
	if err != nil {
		return "", fmt.Errorf("encode gemini request: %w", err)
	}

	var lastErr error
	for _, model := range c.models {
		started := time.Now()
		answer, err := c.generate(ctx, model, payload)
		c.breaker.Record(err != nil && crerr.Is(err, errGeminiTransient))
		if err == nil {
			metrics.ObserveUpstream(providerName, "generateContent", "ok", time.Since(started))
			return answer, nil
		}
		metrics.ObserveUpstream(providerName, "generateContent", "error", time.Since(started))
		lastErr = err
		if crerr.Is(err, errModelNotFound) {
			c.logger.WarnContext(ctx, "gemini model unavailable, trying next", "model", model)
			continue
		}
		break
	}
	return "", lastErr
}

func buildRequest(systemPrompt string, turns []usecase.ChatTurn, message string, temperature float64, maxTokens int) generateRequest {
	req := generateRequest{
		Contents:         make([]content, 0, len(turns)+1),
		GenerationConfig: generationConfig{Temperature: temperature, MaxOutputTokens: maxTokens},
	}
	if strings.TrimSpace(systemPrompt) != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemPrompt}}}
	}
	for _, turn := range turns {
		role := "user"
		if turn.Role == "assistant" || turn.Role == "model" {
			role = "model"
		}
		if strings.TrimSpace(turn.Content) == "" {
			continue
		}
		req.Contents = append(req.Contents, content{Role: role, Parts: []part{{Text: turn.Content}}})
	}
	req.Contents = append(req.Contents, content{Role: "user", Parts: []part{{Text: message}}})
	return req
}

func (c *Client) generate(ctx context.Context, model string, payload []byte) (string, error) {
	endpoint := c.baseURL + "/models/" + url.PathEscape(model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", crerr.Mark(fmt.Errorf("send gemini request model=%s: %w", model, err), errGeminiTransient)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", crerr.Mark(fmt.Errorf("read gemini response: %w", err), errGeminiTransient)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", crerr.Mark(fmt.Errorf("gemini model=%s not found", model), errModelNotFound)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
		return "", crerr.Mark(fmt.Errorf("gemini status=%d model=%s", resp.StatusCode, model), errGeminiTransient)
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return "", fmt.Errorf("gemini status=%d model=%s", resp.StatusCode, model)
	}

	var decoded generateResponse
	if err := sonic.Unmarshal(raw, &decoded); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	var b strings.Builder
	for _, cand := range decoded.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		if b.Len() > 0 {
			break
		}
	}
	answer := strings.TrimSpace(b.String())
	if answer == "" {
		return "", ErrEmptyAnswer
	}
	return answer, nil
}
