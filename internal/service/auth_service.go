package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/fixpoint-labs/repair-shop-service/internal/auth"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/repository"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// AuthService handles staff login and account administration.
type AuthService struct {
	users      repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewAuthService constructs the service.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, tokens: tokens, bcryptCost: bcryptCost}
}

// LoginResult carries the signed session token the handler puts in the cookie.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// Login verifies credentials and issues a session token. Invalid email,
// wrong password and deactivated account all surface as the same
// UNAUTHORIZED so the response does not reveal which one failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, err
	}
	if !user.Active {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// CreateUserInput is the admin account-creation payload.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// CreateUser registers a staff account. Admin only; the handler enforces the
// role gate.
func (s *AuthService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email are required", nil)
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if input.Role != domain.RoleAdmin && input.Role != domain.RoleTechnician {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

// UpdateUserInput carries editable account fields.
type UpdateUserInput struct {
	Name   string
	Email  string
	Role   domain.Role
	Active bool
}

// UpdateUser edits an account. Deactivating a user invalidates future logins
// immediately; sessions already issued fail at the middleware active check.
func (s *AuthService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		user.Name = name
	}
	if email := strings.ToLower(strings.TrimSpace(input.Email)); email != "" {
		user.Email = email
	}
	if input.Role != "" {
		if input.Role != domain.RoleAdmin && input.Role != domain.RoleTechnician {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": input.Role})
		}
		user.Role = input.Role
	}
	user.Active = input.Active

	if err := s.users.Update(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
		}
		return nil, err
	}
	return user, nil
}

// ChangePassword lets a signed-in user rotate their own password.
func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(user.PasswordHash, current); err != nil {
		return apperrors.NewUnauthorized("current password does not match")
	}
	if len(next) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}

	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// ResetPassword lets an admin set a new password for any account.
func (s *AuthService) ResetPassword(ctx context.Context, userID, next string) error {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(next) < 8 {
		return apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	hash, err := auth.HashPassword(next, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// ListUsers returns all staff accounts.
func (s *AuthService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// ListTechnicians returns active technicians for the assignment dropdown.
func (s *AuthService) ListTechnicians(ctx context.Context) ([]domain.User, error) {
	return s.users.ListTechnicians(ctx)
}

func (s *AuthService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}
