package domain

import (
	"context"

	"github.com/harmonix-bot/backend/internal/client"
	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/errorx"
)

type WelcomeDomain interface {
	Get(ctx context.Context, req *model.GetWelcomeConfigRequest) (model.GetWelcomeConfigResponse, error)
	Update(ctx context.Context, req *model.UpdateWelcomeConfigRequest) (model.UpdateWelcomeConfigResponse, error)
}

type welcomeDomain struct {
	botClient client.IBotClient
}

func NewWelcomeDomain(botClient client.IBotClient) WelcomeDomain {
	return &welcomeDomain{botClient: botClient}
}

func (d *welcomeDomain) Get(
	ctx context.Context, req *model.GetWelcomeConfigRequest,
) (model.GetWelcomeConfigResponse, error) {
	return d.botClient.Get(ctx, "/api/welcome-config", nil)
}

func (d *welcomeDomain) Update(
	ctx context.Context, req *model.UpdateWelcomeConfigRequest,
) (model.UpdateWelcomeConfigResponse, error) {
	if req.ChannelID == "" {
		return nil, errorx.New(errorx.BadRequest, "Channel id is required")
	}

	return d.botClient.Put(ctx, "/api/welcome-config", api.JSON{
		"channel_id":  req.ChannelID,
		"message":     req.Message,
		"embed_title": req.EmbedTitle,
	})
}
