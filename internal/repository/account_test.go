package repository_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_accountRepository_GetByUserProvider(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()

	account, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)
	require.Equal(t, testutil.User1DiscordAccount.AccountID, account.AccountID)

	_, err = accountRepo.GetByUserProvider(ctx, testutil.User1.ID, "github")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_accountRepository_UpdateTokens(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()

	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)
	err := accountRepo.UpdateTokens(
		ctx,
		testutil.User1DiscordAccount.ID,
		"next-access",
		sql.NullString{String: "next-refresh", Valid: true},
		expiresAt,
	)
	require.NoError(t, err)

	account, err := accountRepo.GetByUserProvider(ctx, testutil.User1.ID, entity.ProviderDiscord)
	require.NoError(t, err)
	require.Equal(t, "next-access", account.AccessToken)
	require.Equal(t, "next-refresh", account.RefreshToken.String)
	require.True(t, account.AccessTokenExpiresAt.Valid)
	require.WithinDuration(t, expiresAt, account.AccessTokenExpiresAt.Time, time.Second)

	// Other columns are untouched.
	require.Equal(t, testutil.User1DiscordAccount.AccountID, account.AccountID)
}

func Test_accountRepository_HasCredentialAccount(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()

	has, err := accountRepo.HasCredentialAccount(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.True(t, has)

	has, err = accountRepo.HasCredentialAccount(ctx, testutil.User2.ID)
	require.NoError(t, err)
	require.False(t, has)

	has, err = accountRepo.HasCredentialAccount(ctx, "no-such-user")
	require.NoError(t, err)
	require.False(t, has)
}

func Test_accountRepository_DeleteByUserID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	accountRepo := repository.NewAccountRepository()

	extra := entity.Account{
		Base:       entity.Base{ID: uuid.NewString()},
		UserID:     testutil.User2.ID,
		ProviderID: "github",
		AccountID:  uuid.NewString(),
	}
	require.NoError(t, accountRepo.Create(ctx, &extra))

	require.NoError(t, accountRepo.DeleteByUserID(ctx, testutil.User2.ID))

	_, err := accountRepo.GetByUserProvider(ctx, testutil.User2.ID, entity.ProviderDiscord)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = accountRepo.GetByUserProvider(ctx, testutil.User2.ID, "github")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Deleting again is a no-op, not an error.
	require.NoError(t, accountRepo.DeleteByUserID(ctx, testutil.User2.ID))
}
