package services

import (
	"context"
	"fmt"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
)

// GroupService administers groups.
type GroupService struct {
	groups    repositories.GroupRepository
	validator Validator
}

func NewGroupService(groups repositories.GroupRepository, v Validator) *GroupService {
	return &GroupService{groups: groups, validator: v}
}

func (s *GroupService) CreateGroup(ctx context.Context, req models.CreateGroupRequest) (*models.Group, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	group := &models.Group{
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		Rules:       req.Rules,
	}
	err := s.groups.CreateGroup(ctx, group)
	if repositories.IsUniqueViolation(err) {
		return nil, apperrors.NewValidation(map[string]string{"slug": "Group with this Slug already exists."})
	}
	if err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (s *GroupService) ListGroups(ctx context.Context) ([]models.Group, error) {
	groups, err := s.groups.GetGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	if groups == nil {
		groups = []models.Group{}
	}
	return groups, nil
}

// DeleteGroup removes the group and every post filed under it.
func (s *GroupService) DeleteGroup(ctx context.Context, slug string) error {
	if err := s.groups.DeleteGroup(ctx, slug); err != nil {
		return wrapLookup(err, "group", slug)
	}
	return nil
}
