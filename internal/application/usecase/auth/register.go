package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devconnect/devconnect-api/internal/domain/user"
	"github.com/devconnect/devconnect-api/pkg/apperror"
	"github.com/devconnect/devconnect-api/pkg/auth"
	"github.com/devconnect/devconnect-api/pkg/gravatar"
	"github.com/devconnect/devconnect-api/pkg/logger"
)

type RegisterUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewRegisterUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type RegisterOutput struct {
	AccessToken string
	User        *user.User
}

// Execute creates an account with a gravatar-derived avatar and signs
// the user straight in. Duplicate emails surface as a conflict.
func (uc *RegisterUseCase) Execute(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {

	ctx, span := tracer.Start(ctx, "Register")
	defer span.End()

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal("failed to hash password", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Name:         input.Name,
		Email:        input.Email,
		Avatar:       gravatar.URL(input.Email, 200),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := uc.userRepo.Save(ctx, u); err != nil {
		span.RecordError(err)
		return nil, err
	}

	token, err := uc.jwtSvc.GenerateToken(u.ID)
	if err != nil {
		uc.logger.Error("Failed to generate token", err, zap.String("user_id", u.ID.String()))
		err = apperror.NewInternal("failed to generate token", err)
		span.RecordError(err)
		return nil, err
	}

	return &RegisterOutput{AccessToken: token, User: u}, nil
}

type GetCurrentUserUseCase struct {
	userRepo user.Repository
}

func NewGetCurrentUserUseCase(repo user.Repository) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: repo}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, userID uuid.UUID) (*user.User, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, apperror.NewNotFound("user", userID.String())
		}
		return nil, err
	}
	return u, nil
}
