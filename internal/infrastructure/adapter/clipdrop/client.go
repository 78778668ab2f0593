package clipdrop

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"

	errs "github.com/amirhossein-jamali/imagify/internal/domain/error"
	coreport "github.com/amirhossein-jamali/imagify/internal/domain/port/core"
	"github.com/amirhossein-jamali/imagify/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/imagify/internal/infrastructure/adapter/upstream"
)

const (
	providerName = "clipdrop"

	// DefaultBaseURL is the text-to-image endpoint
	DefaultBaseURL = "https://clipdrop-api.co/text-to-image/v1"
	// DefaultTimeout bounds one generation call
	DefaultTimeout = 60 * time.Second

	maxImageBytes = 20 << 20
	maxErrorBytes = 64 << 10
)

// Config holds the provider credentials and endpoint
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client calls the Clipdrop text-to-image API
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     coreport.Logger
}

// Option customizes a Client
type Option func(*Client)

// WithHTTPClient replaces the HTTP client; its timeout is kept as-is
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithBreakerObserver reports breaker transitions, e.g. to metrics
func WithBreakerObserver(observe upstream.StateObserver) Option {
	return func(cl *Client) {
		cl.breaker = upstream.NewBreaker[[]byte](upstream.DefaultBreakerConfig(providerName), cl.logger, observe)
	}
}

// NewClient creates a Clipdrop client
func NewClient(cfg Config, logger coreport.Logger, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
	c.breaker = upstream.NewBreaker[[]byte](upstream.DefaultBreakerConfig(providerName), logger, nil)

	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ gateway.ImageGenerator = (*Client)(nil)

// Generate posts the prompt and returns the PNG bytes
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	image, err := c.breaker.Execute(func() ([]byte, error) {
		return c.generate(ctx, prompt)
	})
	if err != nil {
		classified := upstream.ClassifyTransportError(err)
		c.logger.Warn("Image generation failed", map[string]any{
			"provider": providerName,
			"error":    err.Error(),
		})
		return nil, classified
	}
	return image, nil
}

func (c *Client) generate(ctx context.Context, prompt string) ([]byte, error) {
	body, contentType, err := c.form(prompt)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "image/png")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewProviderError(providerName, resp.StatusCode, readErrorMessage(resp))
	}

	image, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(image) == 0 {
		return nil, errs.ErrEmptyImage
	}

	c.logger.Debug("Image generated", map[string]any{
		"provider":    providerName,
		"bytes":       len(image),
		"duration_ms": time.Since(start).Milliseconds(),
		"credits":     resp.Header.Get("x-remaining-credits"),
	})
	return image, nil
}

func (c *Client) form(prompt string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("prompt", prompt); err != nil {
		return nil, "", fmt.Errorf("write prompt field: %w", err)
	}
	if c.model != "" {
		if err := w.WriteField("model", c.model); err != nil {
			return nil, "", fmt.Errorf("write model field: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

// errorBody is the provider's JSON error shape
type errorBody struct {
	Error string `json:"error"`
}

// readErrorMessage prefers the JSON "error" field and falls back to the raw text
func readErrorMessage(resp *http.Response) string {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))

	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		return body.Error
	}
	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "{") {
		return text
	}
	return http.StatusText(resp.StatusCode)
}
