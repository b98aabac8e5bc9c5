package common

import (
	"context"
	"testing"
	"time"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/api/discord"
	"github.com/harmonix-bot/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_TokenRefresher_NotLinked(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	refreshCalls := 0
	endpoint := &testutil.MockDiscordEndpoint{
		RefreshTokenFunc: func(context.Context, string) (discord.TokenGrant, error) {
			refreshCalls++
			return discord.TokenGrant{}, nil
		},
	}

	refresher := NewTokenRefresher(repository.NewAccountRepository(), endpoint)

	token, discordUserID, err := refresher.ValidAccessToken(ctx, "no-such-user")
	require.NoError(t, err)
	require.Empty(t, token)
	require.Empty(t, discordUserID)
	require.Zero(t, refreshCalls)
}

func Test_TokenRefresher_FreshToken(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	refreshCalls := 0
	endpoint := &testutil.MockDiscordEndpoint{
		RefreshTokenFunc: func(context.Context, string) (discord.TokenGrant, error) {
			refreshCalls++
			return discord.TokenGrant{}, nil
		},
	}

	refresher := NewTokenRefresher(repository.NewAccountRepository(), endpoint)

	token, discordUserID, err := refresher.ValidAccessToken(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1DiscordAccount.AccessToken, token)
	require.Equal(t, testutil.User1DiscordAccount.AccountID, discordUserID)
	require.Zero(t, refreshCalls)
}

func Test_TokenRefresher_NearExpiry(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()
	account, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)

	oldExpiry := time.Now().Add(time.Minute)
	err = accountRepo.UpdateTokens(ctx, account.ID, account.AccessToken, account.RefreshToken, oldExpiry)
	require.NoError(t, err)

	refreshCalls := 0
	endpoint := &testutil.MockDiscordEndpoint{
		RefreshTokenFunc: func(ctx context.Context, refreshToken string) (discord.TokenGrant, error) {
			refreshCalls++
			require.Equal(t, testutil.User1DiscordAccount.RefreshToken.String, refreshToken)
			return discord.TokenGrant{
				AccessToken:  "rotated-access-token",
				RefreshToken: "rotated-refresh-token",
				ExpiresIn:    3600,
			}, nil
		},
	}

	refresher := NewTokenRefresher(accountRepo, endpoint)

	token, discordUserID, err := refresher.ValidAccessToken(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, "rotated-access-token", token)
	require.Equal(t, testutil.User1DiscordAccount.AccountID, discordUserID)
	require.Equal(t, 1, refreshCalls)

	// The rotation must be persisted, with a later expiry.
	updated, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)
	require.Equal(t, "rotated-access-token", updated.AccessToken)
	require.Equal(t, "rotated-refresh-token", updated.RefreshToken.String)
	require.True(t, updated.AccessTokenExpiresAt.Valid)
	require.True(t, updated.AccessTokenExpiresAt.Time.After(oldExpiry))

	// A second call sees the fresh token and does not refresh again.
	token, _, err = refresher.ValidAccessToken(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, "rotated-access-token", token)
	require.Equal(t, 1, refreshCalls)
}

func Test_TokenRefresher_KeepsRefreshTokenWithoutRotation(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()
	account, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)

	err = accountRepo.UpdateTokens(
		ctx, account.ID, account.AccessToken, account.RefreshToken, time.Now().Add(time.Minute))
	require.NoError(t, err)

	endpoint := &testutil.MockDiscordEndpoint{
		RefreshTokenFunc: func(context.Context, string) (discord.TokenGrant, error) {
			return discord.TokenGrant{AccessToken: "rotated-access-token", ExpiresIn: 3600}, nil
		},
	}

	refresher := NewTokenRefresher(accountRepo, endpoint)

	_, _, err = refresher.ValidAccessToken(ctx, testutil.User1.ID)
	require.NoError(t, err)

	updated, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)
	require.Equal(t, testutil.User1DiscordAccount.RefreshToken.String, updated.RefreshToken.String)
}

func Test_TokenRefresher_RefreshFailureFallsBack(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()
	account, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)

	err = accountRepo.UpdateTokens(
		ctx, account.ID, account.AccessToken, account.RefreshToken, time.Now().Add(time.Minute))
	require.NoError(t, err)

	endpoint := &testutil.MockDiscordEndpoint{
		RefreshTokenFunc: func(context.Context, string) (discord.TokenGrant, error) {
			return discord.TokenGrant{}, &discord.StatusError{Code: 400, Body: "invalid_grant"}
		},
	}

	refresher := NewTokenRefresher(accountRepo, endpoint)

	// The stale token is still returned so the provider decides its fate.
	token, discordUserID, err := refresher.ValidAccessToken(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1DiscordAccount.AccessToken, token)
	require.Equal(t, testutil.User1DiscordAccount.AccountID, discordUserID)
}
