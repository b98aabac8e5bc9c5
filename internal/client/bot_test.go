package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harmonix-bot/backend/config"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_botClient_NotConfigured(t *testing.T) {
	ctx := testutil.MockContext()

	bot := NewBot(config.BotConfigs{})
	_, err := bot.Get(ctx, "/api/queue", nil)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Internal, errx.Code)
	require.Equal(t, http.StatusInternalServerError, errx.HTTPStatus())
}

func Test_botClient_Success(t *testing.T) {
	ctx := testutil.MockContext()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/queue", r.URL.Path)
		require.Equal(t, "vc1", r.URL.Query().Get("voice_channel_id"))
		w.Write([]byte(`{"ok":true,"queue":[]}`))
	}))
	defer ts.Close()

	bot := NewBot(config.BotConfigs{BaseURL: ts.URL})
	raw, err := bot.Get(ctx, "/api/queue", api.Parameter{"voice_channel_id": "vc1"})
	require.NoError(t, err)
	require.JSONEq(t, `{"ok":true,"queue":[]}`, string(raw))
}

func Test_botClient_EmptyBody(t *testing.T) {
	ctx := testutil.MockContext()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	bot := NewBot(config.BotConfigs{BaseURL: ts.URL})
	raw, err := bot.Post(ctx, "/api/queue/skip", api.JSON{})
	require.NoError(t, err)
	require.JSONEq(t, `{}`, string(raw))
}

func Test_botClient_UpstreamErrorPassesStatusThrough(t *testing.T) {
	ctx := testutil.MockContext()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"already playing"}`))
	}))
	defer ts.Close()

	bot := NewBot(config.BotConfigs{BaseURL: ts.URL})
	_, err := bot.Post(ctx, "/api/queue/play", api.JSON{})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
	require.Equal(t, http.StatusConflict, errx.HTTPStatus())
	require.Contains(t, errx.Detail, "already playing")
}

func Test_botClient_Timeout(t *testing.T) {
	ctx := testutil.MockContext()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer ts.Close()

	bot := NewBot(config.BotConfigs{
		BaseURL:     ts.URL,
		ReadTimeout: 20 * time.Millisecond,
	})
	_, err := bot.Get(ctx, "/api/queue", api.Parameter{"voice_channel_id": "vc1"})

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Timeout, errx.Code)
	require.Equal(t, http.StatusGatewayTimeout, errx.HTTPStatus())
}
