package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Mateodiet/Project-Tool-Management/internal/logger"
	"github.com/Mateodiet/Project-Tool-Management/internal/models"
	"github.com/Mateodiet/Project-Tool-Management/internal/repository"
)

type UserService struct {
	users UserRepository
}

func NewUserService(users UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*UserDTO, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		logger.Warn("Service: email already registered", zap.String("email", req.Email))
		return nil, NewConflict("Email already registered")
	}

	user := &models.User{
		UserID:        uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		Password:      req.Password,
		ContactNumber: req.ContactNumber,
		CreatedAt:     time.Now(),
		IsActive:      true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	logger.Info("Service: user registered", zap.String("email", req.Email))
	return userToDTO(user), nil
}

// Login is a plain stateless credential check. Passwords are compared by
// exact equality; there is no hashing and no session state.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*UserDTO, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if user.Password != req.Password {
		logger.Warn("Service: invalid password", zap.String("email", req.Email))
		return nil, NewUnauthorized("Invalid password")
	}

	if !user.IsActive {
		logger.Warn("Service: login on deactivated account", zap.String("email", req.Email))
		return nil, NewForbidden("Account is deactivated")
	}

	logger.Info("Service: user logged in", zap.String("email", req.Email))
	return userToDTO(user), nil
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]UserDTO, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching users: %w", err)
	}

	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = *userToDTO(u)
	}
	return dtos, nil
}

func (s *UserService) GetUserByID(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return userToDTO(user), nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*UserDTO, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	return userToDTO(user), nil
}

// UpdateUser merges only the fields present in the request. Email is
// immutable through this path; password changes only when non-empty.
func (s *UserService) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) (*UserDTO, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.ContactNumber != nil {
		user.ContactNumber = *req.ContactNumber
	}
	if req.Password != nil && *req.Password != "" {
		user.Password = *req.Password
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	logger.Info("Service: user updated", zap.String("email", user.Email))
	return userToDTO(user), nil
}

func (s *UserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return NewNotFound("User not found")
		}
		return fmt.Errorf("fetching user: %w", err)
	}

	// Hard delete. Memberships and tasks referencing this user are left as
	// dangling soft references and resolved to null at read time.
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}

	logger.Info("Service: user deleted", zap.String("user_id", userID.String()))
	return nil
}

// DeactivateUser is idempotent: deactivating an already inactive account
// succeeds with the same end state.
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NewNotFound("User not found")
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	user.IsActive = false
	if err := s.users.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	logger.Info("Service: user deactivated", zap.String("user_id", userID.String()))
	return userToDTO(user), nil
}
