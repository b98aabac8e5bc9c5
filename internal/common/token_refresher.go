package common

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/api/discord"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Tokens within this window of expiry are refreshed eagerly so a forwarded
// request does not race the expiry mid-flight.
const tokenExpirySkew = 5 * time.Minute

type TokenRefresher struct {
	accountRepo     repository.AccountRepository
	discordEndpoint discord.IEndpoint
}

func NewTokenRefresher(
	accountRepo repository.AccountRepository,
	discordEndpoint discord.IEndpoint,
) *TokenRefresher {
	return &TokenRefresher{
		accountRepo:     accountRepo,
		discordEndpoint: discordEndpoint,
	}
}

// ValidAccessToken returns a usable discord access token and the discord user
// id for the given user, refreshing and persisting the rotation when the
// stored token is near expiry. Both values are empty when the user has no
// discord account linked; callers must treat that as "not linked", not as an
// error.
//
// A failed refresh does not fail the caller: the stored, possibly expired
// token is returned and the provider's 401 surfaces downstream. Concurrent
// callers near the expiry boundary may each trigger a refresh; every winner
// persists a token the provider just issued, so the races are benign.
func (r *TokenRefresher) ValidAccessToken(ctx context.Context, userID string) (string, string, error) {
	account, err := r.accountRepo.GetByUserProvider(ctx, userID, entity.ProviderDiscord)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", "", nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get discord account of user %s: %v", userID, err)
		return "", "", errorx.Unknown
	}

	// An unknown expiry cannot be judged stale; use the stored token as-is.
	if !account.AccessTokenExpiresAt.Valid {
		return account.AccessToken, account.AccountID, nil
	}

	if time.Until(account.AccessTokenExpiresAt.Time) >= tokenExpirySkew {
		return account.AccessToken, account.AccountID, nil
	}

	if !account.RefreshToken.Valid || account.RefreshToken.String == "" {
		xcontext.Logger(ctx).Warnf("No refresh token stored for account %s", account.ID)
		return account.AccessToken, account.AccountID, nil
	}

	grant, err := r.discordEndpoint.RefreshToken(ctx, account.RefreshToken.String)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot refresh discord token of account %s: %v", account.ID, err)
		return account.AccessToken, account.AccountID, nil
	}

	refreshToken := account.RefreshToken
	if grant.RefreshToken != "" {
		refreshToken = sql.NullString{Valid: true, String: grant.RefreshToken}
	}

	expiresAt := time.Now().Add(time.Duration(grant.ExpiresIn) * time.Second)
	err = r.accountRepo.UpdateTokens(ctx, account.ID, grant.AccessToken, refreshToken, expiresAt)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot persist refreshed discord token: %v", err)
		return "", "", errorx.Unknown
	}

	return grant.AccessToken, account.AccountID, nil
}
