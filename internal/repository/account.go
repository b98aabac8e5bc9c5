package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/pkg/xcontext"
)

type AccountRepository interface {
	Create(ctx context.Context, data *entity.Account) error
	GetByUserProvider(ctx context.Context, userID, providerID string) (*entity.Account, error)
	UpdateTokens(ctx context.Context, id, accessToken string, refreshToken sql.NullString, expiresAt time.Time) error
	HasCredentialAccount(ctx context.Context, userID string) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type accountRepository struct{}

func NewAccountRepository() *accountRepository {
	return &accountRepository{}
}

func (r *accountRepository) Create(ctx context.Context, data *entity.Account) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *accountRepository) GetByUserProvider(
	ctx context.Context, userID, providerID string,
) (*entity.Account, error) {
	var result entity.Account
	err := xcontext.DB(ctx).Take(&result, "user_id=? AND provider_id=?", userID, providerID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// UpdateTokens is the only write path for token columns.
func (r *accountRepository) UpdateTokens(
	ctx context.Context, id, accessToken string, refreshToken sql.NullString, expiresAt time.Time,
) error {
	return xcontext.DB(ctx).Model(&entity.Account{}).
		Where("id=?", id).
		Updates(map[string]any{
			"access_token":            accessToken,
			"refresh_token":           refreshToken,
			"access_token_expires_at": expiresAt,
		}).Error
}

// HasCredentialAccount reports whether the user owns any password-bearing
// account row, i.e. whether the identity was ever created through direct
// credential signup.
func (r *accountRepository) HasCredentialAccount(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Account{}).
		Where("user_id=? AND password IS NOT NULL", userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *accountRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return xcontext.DB(ctx).Delete(&entity.Account{}, "user_id=?", userID).Error
}
