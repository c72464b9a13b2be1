package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
)

// UserService manages the local user references.
type UserService struct {
	users     repositories.UserRepository
	validator Validator
}

func NewUserService(users repositories.UserRepository, v Validator) *UserService {
	return &UserService{users: users, validator: v}
}

// Identity is what the authentication subsystem knows about a user.
type Identity struct {
	FirebaseUID string
	Email       string
	Name        string
}

// ResolveFirebaseUser returns the user linked to id, creating it with
// username on first login.
func (s *UserService) ResolveFirebaseUser(ctx context.Context, id Identity, username string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, id.FirebaseUID)
	if err == nil {
		return user, nil
	}
	if !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("load user by firebase uid: %w", err)
	}

	req := models.FirebaseLoginRequest{Username: username}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if req.Username == "" {
		return nil, apperrors.NewValidation(map[string]string{"username": "This field is required."})
	}

	uid := id.FirebaseUID
	user = &models.User{
		Username:    req.Username,
		Name:        id.Name,
		Email:       id.Email,
		FirebaseUID: &uid,
	}
	err = s.users.CreateUser(ctx, user)
	if repositories.IsUniqueViolation(err) {
		return nil, apperrors.NewValidation(map[string]string{"username": "A user with that username already exists."})
	}
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the user and everything that references it.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.DeleteUser(ctx, id); err != nil {
		return wrapLookup(err, "user", strconv.FormatUint(uint64(id), 10))
	}
	return nil
}

// DeleteUserByUsername is DeleteUser addressed by username.
func (s *UserService) DeleteUserByUsername(ctx context.Context, username string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return wrapLookup(err, "user", username)
	}
	return s.DeleteUser(ctx, user.ID)
}
