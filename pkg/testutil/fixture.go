package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/repository"
)

// User1 owns a credential account and a linked discord account. User2 was
// auto-provisioned by an OAuth sign-in and has no credential account.
var (
	User1 = entity.User{
		Base:  entity.Base{ID: "user1"},
		Name:  "melody#1337",
		Email: "melody@example.com",
	}
	User2 = entity.User{
		Base:  entity.Base{ID: "user2"},
		Name:  "drifter#0001",
		Email: "drifter@example.com",
	}

	User1DiscordAccount = entity.Account{
		Base:        entity.Base{ID: "account1-discord"},
		UserID:      User1.ID,
		ProviderID:  entity.ProviderDiscord,
		AccountID:   "100000000000000001",
		AccessToken: "user1-access-token",
		RefreshToken: sql.NullString{
			String: "user1-refresh-token", Valid: true,
		},
		AccessTokenExpiresAt: sql.NullTime{
			Time: time.Now().Add(time.Hour), Valid: true,
		},
	}
	User1CredentialAccount = entity.Account{
		Base:       entity.Base{ID: "account1-credential"},
		UserID:     User1.ID,
		ProviderID: entity.ProviderCredential,
		AccountID:  User1.Email,
		Password:   sql.NullString{String: "bcrypt-hash", Valid: true},
	}
	User2DiscordAccount = entity.Account{
		Base:        entity.Base{ID: "account2-discord"},
		UserID:      User2.ID,
		ProviderID:  entity.ProviderDiscord,
		AccountID:   "100000000000000002",
		AccessToken: "user2-access-token",
		RefreshToken: sql.NullString{
			String: "user2-refresh-token", Valid: true,
		},
		AccessTokenExpiresAt: sql.NullTime{
			Time: time.Now().Add(time.Hour), Valid: true,
		},
	}

	User1Session = entity.Session{
		Base:      entity.Base{ID: "session1"},
		Token:     "user1-session-token",
		UserID:    User1.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	User2Session = entity.Session{
		Base:      entity.Base{ID: "session2"},
		Token:     "user2-session-token",
		UserID:    User2.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertUsers(ctx)
	InsertAccounts(ctx)
	InsertSessions(ctx)
}

func InsertUsers(ctx context.Context) {
	userRepo := repository.NewUserRepository()

	for _, user := range []entity.User{User1, User2} {
		user := user
		if err := userRepo.Create(ctx, &user); err != nil {
			panic(err)
		}
	}
}

func InsertAccounts(ctx context.Context) {
	accountRepo := repository.NewAccountRepository()

	accounts := []entity.Account{
		User1DiscordAccount,
		User1CredentialAccount,
		User2DiscordAccount,
	}
	for _, account := range accounts {
		account := account
		if err := accountRepo.Create(ctx, &account); err != nil {
			panic(err)
		}
	}
}

func InsertSessions(ctx context.Context) {
	sessionRepo := repository.NewSessionRepository()

	for _, session := range []entity.Session{User1Session, User2Session} {
		session := session
		if err := sessionRepo.Create(ctx, &session); err != nil {
			panic(err)
		}
	}
}
