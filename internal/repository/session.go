package repository

import (
	"context"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/pkg/xcontext"
)

type SessionRepository interface {
	Create(ctx context.Context, data *entity.Session) error
	GetByToken(ctx context.Context, token string) (*entity.Session, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type sessionRepository struct{}

func NewSessionRepository() *sessionRepository {
	return &sessionRepository{}
}

func (r *sessionRepository) Create(ctx context.Context, data *entity.Session) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*entity.Session, error) {
	var result entity.Session
	err := xcontext.DB(ctx).Joins("User").Take(&result, "sessions.token=?", token).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.Session{}, "user_id=?", userID).Error
}
