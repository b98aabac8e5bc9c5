package domain

import (
	"context"

	"github.com/harmonix-bot/backend/internal/model"
)

type HealthDomain interface {
	Healthz(ctx context.Context, req *model.HealthzRequest) (*model.HealthzResponse, error)
}

type healthDomain struct{}

func NewHealthDomain() HealthDomain {
	return &healthDomain{}
}

func (d *healthDomain) Healthz(
	ctx context.Context, req *model.HealthzRequest,
) (*model.HealthzResponse, error) {
	return &model.HealthzResponse{Status: "ok"}, nil
}
