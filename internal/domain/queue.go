package domain

import (
	"context"

	"github.com/harmonix-bot/backend/internal/client"
	"github.com/harmonix-bot/backend/internal/common"
	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/api/discord"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/xcontext"
)

type QueueDomain interface {
	Get(ctx context.Context, req *model.GetQueueRequest) (model.GetQueueResponse, error)
	Add(ctx context.Context, req *model.AddToQueueRequest) (*model.AddToQueueResponse, error)
	Play(ctx context.Context, req *model.QueueActionRequest) (model.QueueActionResponse, error)
	Pause(ctx context.Context, req *model.QueueActionRequest) (model.QueueActionResponse, error)
	Skip(ctx context.Context, req *model.QueueActionRequest) (model.QueueActionResponse, error)
	Clear(ctx context.Context, req *model.QueueActionRequest) (model.QueueActionResponse, error)
	Remove(ctx context.Context, req *model.RemoveFromQueueRequest) (model.QueueActionResponse, error)
	Recent(ctx context.Context, req *model.GetRecentRequest) (model.GetRecentResponse, error)
}

type queueDomain struct {
	tokenRefresher  *common.TokenRefresher
	discordEndpoint discord.IEndpoint
	botClient       client.IBotClient
}

func NewQueueDomain(
	tokenRefresher *common.TokenRefresher,
	discordEndpoint discord.IEndpoint,
	botClient client.IBotClient,
) QueueDomain {
	return &queueDomain{
		tokenRefresher:  tokenRefresher,
		discordEndpoint: discordEndpoint,
		botClient:       botClient,
	}
}

func (d *queueDomain) Get(
	ctx context.Context, req *model.GetQueueRequest,
) (model.GetQueueResponse, error) {
	if req.VoiceChannelID == "" {
		return nil, errorx.New(errorx.BadRequest, "Voice channel id is required")
	}

	return d.botClient.Get(ctx, "/api/queue", api.Parameter{
		"voice_channel_id": req.VoiceChannelID,
	})
}

// Add enriches the request with the caller's Discord identity before handing
// it to the bot. The bot resolves and downloads the track synchronously, so
// this call goes through the long-deadline path.
func (d *queueDomain) Add(
	ctx context.Context, req *model.AddToQueueRequest,
) (*model.AddToQueueResponse, error) {
	if req.VoiceChannelID == "" {
		return nil, errorx.New(errorx.BadRequest, "Voice channel id is required")
	}

	if req.URL == "" {
		return nil, errorx.New(errorx.BadRequest, "Url is required")
	}

	identity := xcontext.RequestIdentity(ctx)

	accessToken, discordUserID, err := d.tokenRefresher.ValidAccessToken(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	if discordUserID == "" {
		return nil, errorx.New(errorx.PermissionDenied,
			"Discord account not linked. Please sign in with Discord.")
	}

	tag := identity.Name
	if tag == "" && accessToken != "" {
		if me, err := d.discordEndpoint.GetMe(ctx, accessToken); err == nil {
			tag = me.Username
		} else {
			xcontext.Logger(ctx).Warnf("Cannot resolve discord tag: %v", err)
		}
	}

	if tag == "" {
		tag = discordUserID
	}

	raw, err := d.botClient.Submit(ctx, "/api/queue", api.JSON{
		"discord_user_id":  discordUserID,
		"discord_tag":      tag,
		"voice_channel_id": req.VoiceChannelID,
		"url":              req.URL,
	})
	if err != nil {
		return nil, err
	}

	return &model.AddToQueueResponse{OK: true, Success: raw}, nil
}

func (d *queueDomain) Play(
	ctx context.Context, req *model.QueueActionRequest,
) (model.QueueActionResponse, error) {
	return d.botClient.Post(ctx, "/api/queue/play", api.JSON{})
}

func (d *queueDomain) Pause(
	ctx context.Context, req *model.QueueActionRequest,
) (model.QueueActionResponse, error) {
	return d.botClient.Post(ctx, "/api/queue/pause", api.JSON{})
}

func (d *queueDomain) Skip(
	ctx context.Context, req *model.QueueActionRequest,
) (model.QueueActionResponse, error) {
	return d.botClient.Post(ctx, "/api/queue/skip", api.JSON{})
}

func (d *queueDomain) Clear(
	ctx context.Context, req *model.QueueActionRequest,
) (model.QueueActionResponse, error) {
	return d.botClient.Post(ctx, "/api/queue/clear", api.JSON{})
}

func (d *queueDomain) Remove(
	ctx context.Context, req *model.RemoveFromQueueRequest,
) (model.QueueActionResponse, error) {
	if req.VoiceChannelID == "" {
		return nil, errorx.New(errorx.BadRequest, "Voice channel id is required")
	}

	if req.Position == nil || *req.Position < 0 {
		return nil, errorx.New(errorx.BadRequest, "Position must be a non-negative number")
	}

	return d.botClient.Post(ctx, "/api/queue/remove", api.JSON{
		"voice_channel_id": req.VoiceChannelID,
		"position":         *req.Position,
	})
}

func (d *queueDomain) Recent(
	ctx context.Context, req *model.GetRecentRequest,
) (model.GetRecentResponse, error) {
	if req.VoiceChannelID == "" {
		return nil, errorx.New(errorx.BadRequest, "Voice channel id is required")
	}

	return d.botClient.Get(ctx, "/api/queue/recent", api.Parameter{
		"voice_channel_id": req.VoiceChannelID,
	})
}
