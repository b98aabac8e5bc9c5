package discord

import "context"

type IEndpoint interface {
	RefreshToken(ctx context.Context, refreshToken string) (TokenGrant, error)
	GetMe(ctx context.Context, token string) (User, error)
	GetMyGuilds(ctx context.Context, token string) ([]Guild, error)
	GetGuildChannels(ctx context.Context, guildID string) ([]Channel, error)
}
