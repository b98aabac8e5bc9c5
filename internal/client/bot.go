package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/harmonix-bot/backend/config"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/xcontext"
)

// IBotClient forwards authenticated panel requests to the bot control API
// under a deadline and normalizes every outcome into an errorx value. The
// upstream body is treated as opaque and returned verbatim.
type IBotClient interface {
	Get(ctx context.Context, path string, query api.Parameter) (json.RawMessage, error)
	Post(ctx context.Context, path string, body api.Body) (json.RawMessage, error)
	Submit(ctx context.Context, path string, body api.Body) (json.RawMessage, error)
	Put(ctx context.Context, path string, body api.Body) (json.RawMessage, error)
	Patch(ctx context.Context, path string, body api.Body) (json.RawMessage, error)
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

type botClient struct {
	baseURL       string
	readTimeout   time.Duration
	submitTimeout time.Duration

	apiGenerator api.Generator
}

func NewBot(cfg config.BotConfigs) *botClient {
	readTimeout := cfg.ReadTimeout
	if readTimeout == 0 {
		readTimeout = 30 * time.Second
	}

	submitTimeout := cfg.SubmitTimeout
	if submitTimeout == 0 {
		submitTimeout = 10 * time.Minute
	}

	return &botClient{
		baseURL:       cfg.BaseURL,
		readTimeout:   readTimeout,
		submitTimeout: submitTimeout,
		apiGenerator:  api.NewGenerator(),
	}
}

func (c *botClient) Get(ctx context.Context, path string, query api.Parameter) (json.RawMessage, error) {
	return c.call(ctx, http.MethodGet, path, query, nil, c.readTimeout)
}

func (c *botClient) Post(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPost, path, nil, body, c.readTimeout)
}

// Submit is Post under the long deadline, for operations that wait on the bot
// joining a channel and resolving a track.
func (c *botClient) Submit(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPost, path, nil, body, c.submitTimeout)
}

func (c *botClient) Put(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPut, path, nil, body, c.readTimeout)
}

func (c *botClient) Patch(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	return c.call(ctx, http.MethodPatch, path, nil, body, c.readTimeout)
}

func (c *botClient) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.call(ctx, http.MethodDelete, path, nil, nil, c.readTimeout)
}

func (c *botClient) call(
	ctx context.Context,
	method, path string,
	query api.Parameter,
	body api.Body,
	timeout time.Duration,
) (json.RawMessage, error) {
	// A missing base URL is a deployment misconfiguration; fail before
	// touching the network.
	if c.baseURL == "" {
		return nil, errorx.New(errorx.Internal, "Bot API is not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client := c.apiGenerator.New(c.baseURL, path)
	if query != nil {
		client = client.Query(query)
	}
	if body != nil {
		client = client.Body(body)
	}

	var resp *api.Response
	var err error
	switch method {
	case http.MethodGet:
		resp, err = client.GET(ctx)
	case http.MethodPost:
		resp, err = client.POST(ctx)
	case http.MethodPut:
		resp, err = client.PUT(ctx)
	case http.MethodPatch:
		resp, err = client.PATCH(ctx)
	case http.MethodDelete:
		resp, err = client.DELETE(ctx)
	default:
		return nil, errorx.New(errorx.Internal, "Unsupported method %s", method)
	}

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errorx.New(errorx.Timeout, "Request timed out")
		}

		xcontext.Logger(ctx).Warnf("Cannot call bot api %s %s: %v", method, path, err)
		return nil, errorx.New(errorx.Unavailable, "Bot API request failed").WithDetail(err.Error())
	}

	if resp.Code < 200 || resp.Code >= 300 {
		return nil, errorx.New(errorx.Unavailable, "Bot API request failed").
			WithStatus(resp.Code).
			WithDetail(string(resp.RawBody))
	}

	if len(resp.RawBody) == 0 {
		return json.RawMessage(`{}`), nil
	}

	// A 2xx with an unparseable body cannot be forwarded as JSON.
	if resp.Body == nil {
		return nil, errorx.New(errorx.Internal, "Unexpected error").
			WithDetail("invalid upstream response body")
	}

	return json.RawMessage(resp.RawBody), nil
}
