package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/testutil"
	"github.com/harmonix-bot/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_Authenticate_BearerToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	r := httptest.NewRequest("GET", "/api/guilds", nil)
	r.Header.Set("Authorization", "Bearer "+testutil.User1Session.Token)
	ctx = xcontext.WithHTTPRequest(ctx, r)

	next, err := Authenticate(repository.NewSessionRepository())(ctx)
	require.NoError(t, err)

	identity := xcontext.RequestIdentity(next)
	require.Equal(t, testutil.User1.ID, identity.UserID)
	require.Equal(t, testutil.User1.Name, identity.Name)
}

func Test_Authenticate_InvalidToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	r := httptest.NewRequest("GET", "/api/guilds", nil)
	r.Header.Set("Authorization", "Bearer not-a-session")
	ctx = xcontext.WithHTTPRequest(ctx, r)

	_, err := Authenticate(repository.NewSessionRepository())(ctx)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
	require.Equal(t, "Unauthorized", errx.Message)
}

func Test_Authenticate_MissingToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("GET", "/api/guilds", nil))

	_, err := Authenticate(repository.NewSessionRepository())(ctx)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_Authenticate_ExpiredSession(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	sessionRepo := repository.NewSessionRepository()
	expired := entity.Session{
		Base:      entity.Base{ID: "session-expired"},
		Token:     "expired-token",
		UserID:    testutil.User1.ID,
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, sessionRepo.Create(ctx, &expired))

	r := httptest.NewRequest("GET", "/api/guilds", nil)
	r.Header.Set("Authorization", "Bearer expired-token")
	ctx = xcontext.WithHTTPRequest(ctx, r)

	_, err := Authenticate(sessionRepo)(ctx)

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unauthenticated, errx.Code)
}

func Test_OptionalAuthenticate(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	ctx = xcontext.WithHTTPRequest(ctx, httptest.NewRequest("GET", "/api/auth/has-discord", nil))

	next, err := OptionalAuthenticate(repository.NewSessionRepository())(ctx)
	require.NoError(t, err)
	require.True(t, xcontext.RequestIdentity(next).IsZero())
}
