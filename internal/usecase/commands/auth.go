package commands

import (
	"context"
	"log/slog"
	"strings"

	"storent/internal/pkg/clock"
	"storent/internal/pkg/errs"
	"storent/internal/pkg/jwt"
	"storent/internal/pkg/password"
	"storent/internal/usecase/queries"
	"storent/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errs.New("invalid credentials")
	ErrTokenGeneration    = errs.New("token generation failed")
	ErrTokenValidation    = errs.New("token validation failed")
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type LoginResult struct {
	AdminID   uuid.UUID
	TokenPair *TokenPair
}

type AuthCommands interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	readStore  queries.AdminReadStore
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(uow shared.UnitOfWork, readStore queries.AdminReadStore, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		readStore:  readStore,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	creds, err := a.readStore.FindCredentialsByEmail(ctx, email)
	if err != nil {
		// Unknown email and bad password look identical to the caller.
		return nil, ErrInvalidCredentials
	}

	if err := password.Compare(creds.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	pair, err := a.issueTokens(creds.ID)
	if err != nil {
		return nil, err
	}

	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Admins().UpdateLastLogin(ctx, creds.ID, a.clock.Now())
	})
	if err != nil {
		// Login already succeeded; losing the timestamp is acceptable.
		slog.Warn("failed to update last login", "admin_id", creds.ID, "error", err.Error())
	}

	return &LoginResult{AdminID: creds.ID, TokenPair: pair}, nil
}

func (a *authCommandsImpl) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := a.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenValidation)
	}
	if claims.TokenType != jwt.TokenTypeRefresh {
		return nil, ErrTokenValidation
	}

	// The admin must still exist for the rotation to go through.
	if _, err := a.readStore.FindByID(ctx, claims.AdminID); err != nil {
		return nil, ErrTokenValidation
	}

	return a.issueTokens(claims.AdminID)
}

func (a *authCommandsImpl) issueTokens(adminID uuid.UUID) (*TokenPair, error) {
	accessToken, err := a.jwtService.GenerateAccessToken(adminID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	refreshToken, err := a.jwtService.GenerateRefreshToken(adminID)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
