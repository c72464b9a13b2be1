package services

import (
	"context"
	"fmt"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
)

// FollowService manages follow edges between users.
type FollowService struct {
	follows repositories.FollowRepository
	users   repositories.UserRepository
}

func NewFollowService(follows repositories.FollowRepository, users repositories.UserRepository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Follow makes viewer follow username. It reports whether a new edge was
// created; following yourself or someone already followed is a no-op.
func (s *FollowService) Follow(ctx context.Context, viewer *models.User, username string) (bool, error) {
	if viewer.Username == username {
		return false, nil
	}
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return false, wrapLookup(err, "user", username)
	}

	following, err := s.follows.IsFollowing(ctx, viewer.ID, author.ID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}
	if following {
		return false, nil
	}

	err = s.follows.CreateFollow(ctx, &models.Follow{UserID: viewer.ID, AuthorID: author.ID})
	if repositories.IsUniqueViolation(err) {
		// lost a race with a concurrent follow of the same author
		return false, nil
	}
	if err != nil {
		return false, wrapWrite(err, "create follow", "user", username)
	}
	return true, nil
}

// Unfollow removes the edge viewerID -> username.
func (s *FollowService) Unfollow(ctx context.Context, viewerID uint, username string) error {
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return wrapLookup(err, "user", username)
	}

	err = s.follows.DeleteFollow(ctx, viewerID, author.ID)
	if repositories.IsNotFound(err) {
		return apperrors.NewNotFound("follow", username, err)
	}
	if err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}
