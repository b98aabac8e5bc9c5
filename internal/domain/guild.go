package domain

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/harmonix-bot/backend/internal/client"
	"github.com/harmonix-bot/backend/internal/common"
	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/api/discord"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type GuildDomain interface {
	GetMine(ctx context.Context, req *model.GetGuildsRequest) (*model.GetGuildsResponse, error)
	GetChannels(ctx context.Context, req *model.GetGuildChannelsRequest) (*model.GetGuildChannelsResponse, error)
	CurrentVoice(ctx context.Context, req *model.GetCurrentVoiceRequest) (*model.GetCurrentVoiceResponse, error)
}

type guildDomain struct {
	accountRepo     repository.AccountRepository
	tokenRefresher  *common.TokenRefresher
	discordEndpoint discord.IEndpoint
	botClient       client.IBotClient
}

func NewGuildDomain(
	accountRepo repository.AccountRepository,
	tokenRefresher *common.TokenRefresher,
	discordEndpoint discord.IEndpoint,
	botClient client.IBotClient,
) GuildDomain {
	return &guildDomain{
		accountRepo:     accountRepo,
		tokenRefresher:  tokenRefresher,
		discordEndpoint: discordEndpoint,
		botClient:       botClient,
	}
}

// GetMine lists the guilds of the signed-in user through their own Discord
// grant, so the panel only ever shows servers the user actually belongs to.
func (d *guildDomain) GetMine(
	ctx context.Context, req *model.GetGuildsRequest,
) (*model.GetGuildsResponse, error) {
	identity := xcontext.RequestIdentity(ctx)

	accessToken, _, err := d.tokenRefresher.ValidAccessToken(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	if accessToken == "" {
		return nil, errorx.New(errorx.PermissionDenied,
			"Discord account not linked. Please sign in with Discord.")
	}

	guilds, err := d.discordEndpoint.GetMyGuilds(ctx, accessToken)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot list discord guilds: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot list guilds").
			WithDetail(err.Error())
	}

	resp := &model.GetGuildsResponse{OK: true, Guilds: []model.Guild{}}
	for _, g := range guilds {
		resp.Guilds = append(resp.Guilds, model.Guild{ID: g.ID, Name: g.Name, Icon: g.Icon})
	}

	return resp, nil
}

// GetChannels uses the bot token rather than the user grant. The bot sees
// channel objects in any guild it was invited to, which is exactly the set
// the panel can control.
func (d *guildDomain) GetChannels(
	ctx context.Context, req *model.GetGuildChannelsRequest,
) (*model.GetGuildChannelsResponse, error) {
	if req.GuildID == "" {
		return nil, errorx.New(errorx.BadRequest, "Guild id is required")
	}

	channels, err := d.discordEndpoint.GetGuildChannels(ctx, req.GuildID)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Cannot list guild channels: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Cannot list channels").
			WithDetail(err.Error())
	}

	resp := &model.GetGuildChannelsResponse{OK: true, Channels: []model.Channel{}}
	for _, c := range channels {
		if c.Type != discord.ChannelTypeVoice {
			continue
		}

		resp.Channels = append(resp.Channels, model.Channel{ID: c.ID, Name: c.Name})
	}

	return resp, nil
}

// CurrentVoice asks the bot which voice channel the user currently occupies,
// keyed by the Discord user id stored on the linked account.
func (d *guildDomain) CurrentVoice(
	ctx context.Context, req *model.GetCurrentVoiceRequest,
) (*model.GetCurrentVoiceResponse, error) {
	identity := xcontext.RequestIdentity(ctx)

	account, err := d.accountRepo.GetByUserProvider(ctx, identity.UserID, entity.ProviderDiscord)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.PermissionDenied,
				"Discord account not linked. Please sign in with Discord.")
		}

		xcontext.Logger(ctx).Errorf("Cannot get discord account: %v", err)
		return nil, errorx.Unknown
	}

	raw, err := d.botClient.Get(ctx, "/api/voice-channel", api.Parameter{
		"discord_user_id": account.AccountID,
	})
	if err != nil {
		return nil, err
	}

	var body struct {
		Channel json.RawMessage `json:"channel"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot parse voice channel response: %v", err)
		return nil, errorx.Unknown
	}

	if len(body.Channel) == 0 {
		body.Channel = json.RawMessage("null")
	}

	return &model.GetCurrentVoiceResponse{OK: true, Channel: body.Channel}, nil
}
