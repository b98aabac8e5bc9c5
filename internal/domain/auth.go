package domain

import (
	"context"
	"errors"
	"time"

	"github.com/harmonix-bot/backend/internal/entity"
	"github.com/harmonix-bot/backend/internal/model"
	"github.com/harmonix-bot/backend/internal/repository"
	"github.com/harmonix-bot/backend/pkg/errorx"
	"github.com/harmonix-bot/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type AuthDomain interface {
	HasDiscord(ctx context.Context, req *model.HasDiscordRequest) (*model.HasDiscordResponse, error)
	GetIdentity(ctx context.Context, req *model.GetIdentityRequest) (*model.GetIdentityResponse, error)
	VerifyLink(ctx context.Context, req *model.VerifyLinkRequest) (*model.VerifyLinkResponse, error)
}

type authDomain struct {
	accountRepo repository.AccountRepository
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
}

func NewAuthDomain(
	accountRepo repository.AccountRepository,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
) AuthDomain {
	return &authDomain{
		accountRepo: accountRepo,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
	}
}

func (d *authDomain) HasDiscord(
	ctx context.Context, req *model.HasDiscordRequest,
) (*model.HasDiscordResponse, error) {
	identity := xcontext.RequestIdentity(ctx)
	if identity.IsZero() {
		return &model.HasDiscordResponse{HasDiscord: false}, nil
	}

	_, err := d.accountRepo.GetByUserProvider(ctx, identity.UserID, entity.ProviderDiscord)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.HasDiscordResponse{HasDiscord: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get discord account: %v", err)
		return nil, errorx.Unknown
	}

	return &model.HasDiscordResponse{HasDiscord: true}, nil
}

func (d *authDomain) GetIdentity(
	ctx context.Context, req *model.GetIdentityRequest,
) (*model.GetIdentityResponse, error) {
	identity := xcontext.RequestIdentity(ctx)

	account, err := d.accountRepo.GetByUserProvider(ctx, identity.UserID, entity.ProviderDiscord)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetIdentityResponse{DiscordTag: nil}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get discord account: %v", err)
		return nil, errorx.Unknown
	}

	tag := identity.Name
	if tag == "" {
		tag = account.AccountID
	}

	return &model.GetIdentityResponse{DiscordTag: &tag}, nil
}

// VerifyLink runs once after an OAuth sign-in completes. An account is
// legitimate only if the user owns at least one credential-backed account row;
// otherwise the sign-in auto-provisioned a throwaway identity and the whole
// triad of sessions, accounts and user is rolled back.
//
// The account write from the OAuth callback may not be visible yet, so the
// check polls with a fixed budget before concluding the negative. Any
// ambiguity fails closed into rollback.
func (d *authDomain) VerifyLink(
	ctx context.Context, req *model.VerifyLinkRequest,
) (*model.VerifyLinkResponse, error) {
	identity := xcontext.RequestIdentity(ctx)
	cfg := xcontext.Configs(ctx).Auth

	attempts := cfg.VerifyAttempts
	if attempts < 1 {
		attempts = 1
	}

	for i := 0; i < attempts; i++ {
		hasCredential, err := d.accountRepo.HasCredentialAccount(ctx, identity.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check credential account: %v", err)
			break
		}

		if hasCredential {
			return &model.VerifyLinkResponse{Verified: true}, nil
		}

		if i+1 < attempts {
			time.Sleep(cfg.VerifyDelay)
		}
	}

	if err := d.rollback(ctx, identity.UserID); err != nil {
		return nil, err
	}

	d.clearSessionCookie(ctx)

	return &model.VerifyLinkResponse{
		Verified: false,
		Message:  "No account found. Please create an account first.",
	}, nil
}

// rollback removes sessions, linked accounts and the user row in one
// transaction, so a partial failure can never leave an orphaned row behind.
// Deleting an already-absent user is a no-op.
func (d *authDomain) rollback(ctx context.Context, userID string) error {
	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if err := d.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete sessions of user %s: %v", userID, err)
		return errorx.Unknown
	}

	if err := d.accountRepo.DeleteByUserID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete accounts of user %s: %v", userID, err)
		return errorx.Unknown
	}

	if err := d.userRepo.DeleteByID(ctx, userID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete user %s: %v", userID, err)
		return errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}

func (d *authDomain) clearSessionCookie(ctx context.Context) {
	store := xcontext.SessionStore(ctx)
	r := xcontext.HTTPRequest(ctx)
	w := xcontext.HTTPWriter(ctx)
	if store == nil || r == nil || w == nil {
		return
	}

	session, err := store.Get(r, xcontext.Configs(ctx).Session.Name)
	if err != nil {
		return
	}

	session.Options.MaxAge = -1
	if err := session.Save(r, w); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot expire session cookie: %v", err)
	}
}
