package testutil

import (
	"context"
	"errors"

	"github.com/harmonix-bot/backend/pkg/api/discord"
)

type MockDiscordEndpoint struct {
	RefreshTokenFunc     func(context.Context, string) (discord.TokenGrant, error)
	GetMeFunc            func(context.Context, string) (discord.User, error)
	GetMyGuildsFunc      func(context.Context, string) ([]discord.Guild, error)
	GetGuildChannelsFunc func(context.Context, string) ([]discord.Channel, error)
}

func (e *MockDiscordEndpoint) RefreshToken(ctx context.Context, refreshToken string) (discord.TokenGrant, error) {
	if e.RefreshTokenFunc != nil {
		return e.RefreshTokenFunc(ctx, refreshToken)
	}

	return discord.TokenGrant{}, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) GetMe(ctx context.Context, token string) (discord.User, error) {
	if e.GetMeFunc != nil {
		return e.GetMeFunc(ctx, token)
	}

	return discord.User{}, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) GetMyGuilds(ctx context.Context, token string) ([]discord.Guild, error) {
	if e.GetMyGuildsFunc != nil {
		return e.GetMyGuildsFunc(ctx, token)
	}

	return nil, errors.New("not implemented")
}

func (e *MockDiscordEndpoint) GetGuildChannels(ctx context.Context, guildID string) ([]discord.Channel, error) {
	if e.GetGuildChannelsFunc != nil {
		return e.GetGuildChannelsFunc(ctx, guildID)
	}

	return nil, errors.New("not implemented")
}
