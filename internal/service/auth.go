package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rmaciel/atendimento/internal/auth"
	"github.com/rmaciel/atendimento/internal/config"
	"github.com/rmaciel/atendimento/internal/errors"
	"github.com/rmaciel/atendimento/internal/model"
	"github.com/rmaciel/atendimento/internal/repository"
	"github.com/rmaciel/atendimento/pkg/db/transactor"
)

// AuthService authenticates api users and maintains their sessions
type AuthService interface {
	Signup(ctx context.Context, email string, password string) (*model.User, error)
	Login(ctx context.Context, email string, password string, fingerprint string, now time.Time) (*auth.Jwt, *model.RefreshToken, error)
	Logout(ctx context.Context, tokenID string) error
	Refresh(ctx context.Context, tokenID string, fingerprint string, now time.Time) (*auth.Jwt, *model.RefreshToken, error)
}

type authService struct {
	jwtIssuer   *auth.JwtIssuer
	rfrTokenCfg *config.RefreshTokenCfg
	trx         transactor.Transactor
	userRepo    repository.UserRepository
	rfrTknRepo  repository.RefreshTokenRepository
}

// NewAuthService builds new AuthService
func NewAuthService(
	jwtIssuer *auth.JwtIssuer,
	rfrTokenCfg *config.RefreshTokenCfg,
	trx transactor.Transactor,
	userRepo repository.UserRepository,
	rfrTknRepo repository.RefreshTokenRepository,
) AuthService {
	return &authService{jwtIssuer: jwtIssuer, rfrTokenCfg: rfrTokenCfg, trx: trx, userRepo: userRepo, rfrTknRepo: rfrTknRepo}
}

func (s *authService) Signup(ctx context.Context, email string, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return nil, errors.NewBusinessErr("email", fmt.Sprintf("email %s is already taken", email))
	}

	hash, err := auth.GeneratePasswordHash(password)
	if err != nil {
		return nil, err
	}

	u := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *authService) Login(ctx context.Context, email string, password string, fingerprint string, now time.Time) (*auth.Jwt, *model.RefreshToken, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, nil, err
	}

	if user == nil {
		return nil, nil, fmt.Errorf("unknown user with email %s - %w", email, echo.ErrUnauthorized)
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, nil, fmt.Errorf("password is incorrect - %w", echo.ErrUnauthorized)
	}

	jwtToken, err := s.jwtIssuer.Sign(user.Email, now)
	if err != nil {
		return nil, nil, err
	}

	rfrToken := s.issueRefreshToken(user.ID, fingerprint, now)

	err = s.trx.WithinTransaction(ctx, func(txCtx context.Context) error {
		userTkns, err := s.rfrTknRepo.FindTokensByUserID(txCtx, user.ID)
		if err != nil {
			return err
		}

		// cap sessions per user, drop all of them when exceeded
		if len(userTkns) >= s.rfrTokenCfg.MaxCount {
			if err := s.rfrTknRepo.DeleteByUserID(txCtx, user.ID); err != nil {
				return err
			}
		}

		return s.rfrTknRepo.Create(txCtx, rfrToken)
	})
	if err != nil {
		return nil, nil, err
	}

	return jwtToken, rfrToken, nil
}

func (s *authService) Refresh(ctx context.Context, tokenID string, fingerprint string, now time.Time) (*auth.Jwt, *model.RefreshToken, error) {
	rfrToken, err := s.rfrTknRepo.FindByID(ctx, tokenID)
	if err != nil {
		return nil, nil, err
	}

	if rfrToken == nil {
		return nil, nil, fmt.Errorf("non-existent refresh token provided - %w", echo.ErrUnauthorized)
	}

	// token is rotated even when verification fails
	if err := s.rfrTknRepo.DeleteByID(ctx, rfrToken.ID); err != nil {
		return nil, nil, err
	}

	if rfrToken.Fingerprint != fingerprint {
		return nil, nil, fmt.Errorf("invalid fingerprint for refresh token provided - %w", echo.ErrUnauthorized)
	}

	if rfrToken.Expired(now) {
		return nil, nil, fmt.Errorf("refresh token already expired - %w", echo.ErrUnauthorized)
	}

	user, err := s.userRepo.FindByID(ctx, rfrToken.UserID)
	if err != nil {
		return nil, nil, err
	}

	jwtToken, err := s.jwtIssuer.Sign(user.Email, now)
	if err != nil {
		return nil, nil, err
	}

	newRfrToken := s.issueRefreshToken(user.ID, fingerprint, now)
	if err := s.rfrTknRepo.Create(ctx, newRfrToken); err != nil {
		return nil, nil, err
	}

	return jwtToken, newRfrToken, nil
}

func (s *authService) Logout(ctx context.Context, tokenID string) error {
	if err := s.rfrTknRepo.DeleteByID(ctx, tokenID); err != nil {
		return err
	}
	return nil
}

func (s *authService) issueRefreshToken(userID string, fingerprint string, now time.Time) *model.RefreshToken {
	return &model.RefreshToken{
		ID:          uuid.NewString(),
		UserID:      userID,
		Fingerprint: fingerprint,
		ExpiresIn:   int(s.rfrTokenCfg.TimeToLive.Seconds()),
		CreatedAt:   now,
	}
}
