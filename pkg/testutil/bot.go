package testutil

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/harmonix-bot/backend/pkg/api"
)

type MockBotClient struct {
	GetFunc    func(context.Context, string, api.Parameter) (json.RawMessage, error)
	PostFunc   func(context.Context, string, api.Body) (json.RawMessage, error)
	SubmitFunc func(context.Context, string, api.Body) (json.RawMessage, error)
	PutFunc    func(context.Context, string, api.Body) (json.RawMessage, error)
	PatchFunc  func(context.Context, string, api.Body) (json.RawMessage, error)
	DeleteFunc func(context.Context, string) (json.RawMessage, error)
}

func (c *MockBotClient) Get(ctx context.Context, path string, query api.Parameter) (json.RawMessage, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path, query)
	}

	return nil, errors.New("not implemented")
}

func (c *MockBotClient) Post(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	if c.PostFunc != nil {
		return c.PostFunc(ctx, path, body)
	}

	return nil, errors.New("not implemented")
}

func (c *MockBotClient) Submit(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	if c.SubmitFunc != nil {
		return c.SubmitFunc(ctx, path, body)
	}

	return nil, errors.New("not implemented")
}

func (c *MockBotClient) Put(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	if c.PutFunc != nil {
		return c.PutFunc(ctx, path, body)
	}

	return nil, errors.New("not implemented")
}

func (c *MockBotClient) Patch(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
	if c.PatchFunc != nil {
		return c.PatchFunc(ctx, path, body)
	}

	return nil, errors.New("not implemented")
}

func (c *MockBotClient) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	if c.DeleteFunc != nil {
		return c.DeleteFunc(ctx, path)
	}

	return nil, errors.New("not implemented")
}
