package completion

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	configpkg "github.com/minhyannv/prompt-cli/pkg/config"
)

// Client POSTs completion requests to a single fixed endpoint.
type Client struct {
	api      openai.Client
	endpoint string
}

// NewClient builds a client from cfg. Retries are disabled.
func NewClient(cfg configpkg.Config) *Client {
	cfg = configpkg.Normalize(cfg)
	opts := []option.RequestOption{
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &Client{
		api:      openai.NewClient(opts...),
		endpoint: cfg.Endpoint,
	}
}

// Endpoint returns the path requests are sent to, relative to the base URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Complete sends one request and waits for the full response body.
func (c *Client) Complete(ctx context.Context, req Request) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var body []byte
	err := c.api.Post(ctx, c.endpoint, req, &body)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return Response{}, &StatusError{
				StatusCode: apiErr.StatusCode,
				Message:    strings.TrimSpace(apiErr.Message),
			}
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		return Response{}, &TransportError{Err: err}
	}
	return Decode(body)
}
