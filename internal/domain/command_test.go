package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_commandDomain_Create(t *testing.T) {
	ctx := testutil.MockContext()

	bot := &testutil.MockBotClient{
		PostFunc: func(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
			require.Equal(t, "/api/commands", path)
			return json.RawMessage(`{"id":"c1","name":"hello"}`), nil
		},
	}

	d := NewCommandDomain(bot)

	resp, err := d.Create(ctx, &model.CreateCommandRequest{Name: "hello", Response: "world"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"c1","name":"hello"}`, string(resp))

	_, err = d.Create(ctx, &model.CreateCommandRequest{Response: "world"})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}

func Test_commandDomain_UpdateAndDelete(t *testing.T) {
	ctx := testutil.MockContext()

	bot := &testutil.MockBotClient{
		PatchFunc: func(ctx context.Context, path string, body api.Body) (json.RawMessage, error) {
			require.Equal(t, "/api/commands/c1", path)
			return json.RawMessage(`{"id":"c1"}`), nil
		},
		DeleteFunc: func(ctx context.Context, path string) (json.RawMessage, error) {
			require.Equal(t, "/api/commands/c1", path)
			return json.RawMessage(`{}`), nil
		},
	}

	d := NewCommandDomain(bot)

	resp, err := d.Update(ctx, &model.UpdateCommandRequest{CommandID: "c1", Name: "hi"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"c1"}`, string(resp))

	_, err = d.Delete(ctx, &model.DeleteCommandRequest{CommandID: "c1"})
	require.NoError(t, err)

	_, err = d.Delete(ctx, &model.DeleteCommandRequest{})
	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
