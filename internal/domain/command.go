package domain

import (
	"context"
	"fmt"

	"github.com/harmonix-bot/backend/internal/client"
	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/pkg/api"
	"github.com/harmonix-bot/backend/pkg/errorx"
)

type CommandDomain interface {
	List(ctx context.Context, req *model.ListCommandsRequest) (model.ListCommandsResponse, error)
	Create(ctx context.Context, req *model.CreateCommandRequest) (model.CreateCommandResponse, error)
	Update(ctx context.Context, req *model.UpdateCommandRequest) (model.UpdateCommandResponse, error)
	Delete(ctx context.Context, req *model.DeleteCommandRequest) (*model.DeleteCommandResponse, error)
}

type commandDomain struct {
	botClient client.IBotClient
}

func NewCommandDomain(botClient client.IBotClient) CommandDomain {
	return &commandDomain{botClient: botClient}
}

func (d *commandDomain) List(
	ctx context.Context, req *model.ListCommandsRequest,
) (model.ListCommandsResponse, error) {
	return d.botClient.Get(ctx, "/api/commands", nil)
}

func (d *commandDomain) Create(
	ctx context.Context, req *model.CreateCommandRequest,
) (model.CreateCommandResponse, error) {
	if req.Name == "" {
		return nil, errorx.New(errorx.BadRequest, "Name is required")
	}

	if req.Response == "" {
		return nil, errorx.New(errorx.BadRequest, "Response is required")
	}

	raw, err := d.botClient.Post(ctx, "/api/commands", api.JSON{
		"name":     req.Name,
		"response": req.Response,
	})
	if err != nil {
		return nil, err
	}

	return model.CreateCommandResponse(raw), nil
}

func (d *commandDomain) Update(
	ctx context.Context, req *model.UpdateCommandRequest,
) (model.UpdateCommandResponse, error) {
	if req.CommandID == "" {
		return nil, errorx.New(errorx.BadRequest, "Command id is required")
	}

	return d.botClient.Patch(ctx, fmt.Sprintf("/api/commands/%s", req.CommandID), api.JSON{
		"name":     req.Name,
		"response": req.Response,
	})
}

func (d *commandDomain) Delete(
	ctx context.Context, req *model.DeleteCommandRequest,
) (*model.DeleteCommandResponse, error) {
	if req.CommandID == "" {
		return nil, errorx.New(errorx.BadRequest, "Command id is required")
	}

	if _, err := d.botClient.Delete(ctx, fmt.Sprintf("/api/commands/%s", req.CommandID)); err != nil {
		return nil, err
	}

	return &model.DeleteCommandResponse{}, nil
}
