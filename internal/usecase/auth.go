package usecase

import (
	"context"
	"errors"

	"storefront-api/internal/domain/user"
	"storefront-api/internal/pkg/jwt"
	"storefront-api/internal/pkg/password"
	"storefront-api/internal/usecase/queries"

	"github.com/google/uuid"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrTokenGeneration    = errors.New("token generation failed")
	ErrTokenValidation    = errors.New("token validation failed")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email user.Email) (*user.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	UpdateLastLogin(ctx context.Context, userID uuid.UUID) error
}

type AuthUseCase interface {
	Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error)
	ValidateToken(tokenString string) (uuid.UUID, user.Role, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (a *authUseCaseImpl) Login(ctx context.Context, credentials user.Credentials) (string, *queries.AuthorizedUserView, error) {
	u, err := a.validateUser(ctx, credentials)
	if err != nil {
		return "", nil, err
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return "", nil, ErrTokenGeneration
	}

	if err := a.userRepo.UpdateLastLogin(ctx, u.ID()); err != nil {
		return "", nil, err
	}

	return token, authorizedUserView(u), nil
}

func (a *authUseCaseImpl) validateUser(ctx context.Context, credentials user.Credentials) (*user.User, error) {
	u, err := a.userRepo.FindByEmail(ctx, credentials.Email())
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	if err := password.ComparePassword(u.PasswordHash(), credentials.Password().Value()); err != nil {
		return nil, ErrInvalidCredentials
	}

	return u, nil
}

func (a *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*queries.AuthorizedUserView, error) {
	u, err := a.userRepo.FindByID(ctx, userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}

	if !u.IsActive() {
		return nil, ErrUserInactive
	}

	return authorizedUserView(u), nil
}

func (a *authUseCaseImpl) ValidateToken(tokenString string) (uuid.UUID, user.Role, error) {
	claims, err := a.jwtService.ValidateToken(tokenString)
	if err != nil {
		return uuid.Nil, "", ErrTokenValidation
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return uuid.Nil, "", ErrTokenValidation
	}

	return claims.UserID, role, nil
}

func authorizedUserView(u *user.User) *queries.AuthorizedUserView {
	return &queries.AuthorizedUserView{
		ID:       u.ID(),
		Email:    u.Email().String(),
		Role:     u.Role().String(),
		IsActive: u.IsActive(),
	}
}
