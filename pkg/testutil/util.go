package testutil

import (
	"context"
	"time"

	"github.com/gorilla/sessions"
	"github.com/harmonix-bot/backend/config"
	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/pkg/logger"
	"github.com/harmonix-bot/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	if err := entity.MigrateTable(db); err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "test",
		Session: config.SessionConfigs{
			Secret: "session-secret",
			Name:   "harmonix_session",
		},
		Auth: config.AuthConfigs{
			VerifyAttempts: 2,
			VerifyDelay:    time.Millisecond,
		},
		Discord: config.DiscordConfigs{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			BotToken:     "bot-token",
		},
		Bot: config.BotConfigs{
			BaseURL:       "http://bot.local",
			ReadTimeout:   time.Second,
			SubmitTimeout: time.Second,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.ParseLevel("ERROR")))
	ctx = xcontext.WithSessionStore(ctx, sessions.NewCookieStore([]byte(cfg.Session.Secret)))
	ctx = xcontext.WithDB(ctx, db)

	return ctx
}

func MockContextWithIdentity(identity model.Identity) context.Context {
	return xcontext.WithRequestIdentity(MockContext(), identity)
}
