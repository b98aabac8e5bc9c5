package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/router"
	"github.com/harmonix-bot/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Authenticate rejects the request unless it carries a valid session. On
// success the resolved identity is attached to the context for the handler.
func Authenticate(sessionRepo repository.SessionRepository) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		identity, err := resolveIdentity(ctx, sessionRepo)
		if err != nil {
			return nil, err
		}

		return xcontext.WithRequestIdentity(ctx, identity), nil
	}
}

// OptionalAuthenticate attaches the identity when a valid session is present
// and lets the request through anonymously otherwise.
func OptionalAuthenticate(sessionRepo repository.SessionRepository) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		identity, err := resolveIdentity(ctx, sessionRepo)
		if err != nil {
			return ctx, nil
		}

		return xcontext.WithRequestIdentity(ctx, identity), nil
	}
}

func resolveIdentity(
	ctx context.Context, sessionRepo repository.SessionRepository,
) (model.Identity, error) {
	token := sessionToken(ctx)
	if token == "" {
		return model.Identity{}, errorx.New(errorx.Unauthenticated, "Unauthorized")
	}

	session, err := sessionRepo.GetByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get session: %v", err)
		}

		return model.Identity{}, errorx.New(errorx.Unauthenticated, "Unauthorized")
	}

	if time.Now().After(session.ExpiresAt) {
		return model.Identity{}, errorx.New(errorx.Unauthenticated, "Unauthorized")
	}

	return model.Identity{UserID: session.UserID, Name: session.User.Name}, nil
}

// sessionToken looks in the session cookie first and falls back to a bearer
// header, so both browser and programmatic clients can authenticate.
func sessionToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	if store := xcontext.SessionStore(ctx); store != nil {
		name := xcontext.Configs(ctx).Session.Name
		if session, err := store.Get(r, name); err == nil {
			if token, ok := session.Values["token"].(string); ok && token != "" {
				return token
			}
		}
	}

	auth := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
