package services

import (
	"context"
	"fmt"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/pkg/pagination"
)

// PostPage is one page of a feed.
type PostPage = pagination.Page[models.Post]

// GroupFeed is the listing of a single group.
type GroupFeed struct {
	Group *models.Group `json:"group"`
	Page  *PostPage     `json:"page"`
}

// ProfileFeed is an author's listing as seen by a viewer.
type ProfileFeed struct {
	Author         models.UserCompact `json:"author"`
	Page           *PostPage          `json:"page"`
	IsFollowing    bool               `json:"is_following"`
	FollowersCount int64              `json:"followers_count"`
	FollowingCount int64              `json:"following_count"`
}

// FeedService builds paginated post listings, newest first.
type FeedService struct {
	posts   repositories.PostRepository
	groups  repositories.GroupRepository
	users   repositories.UserRepository
	follows repositories.FollowRepository
	perPage int
}

func NewFeedService(
	posts repositories.PostRepository,
	groups repositories.GroupRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
) *FeedService {
	return &FeedService{
		posts:   posts,
		groups:  groups,
		users:   users,
		follows: follows,
		perPage: pagination.DefaultPerPage,
	}
}

// ListAll is the global feed.
func (s *FeedService) ListAll(ctx context.Context, page string) (*PostPage, error) {
	return s.list(ctx, repositories.PostFilter{}, page)
}

// ListByGroup lists the posts filed under slug.
func (s *FeedService) ListByGroup(ctx context.Context, slug, page string) (*GroupFeed, error) {
	group, err := s.groups.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, wrapLookup(err, "group", slug)
	}

	posts, err := s.list(ctx, repositories.PostFilter{GroupID: group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupFeed{Group: group, Page: posts}, nil
}

// ListByAuthor lists username's posts. viewerID is 0 for anonymous viewers,
// who never follow anyone.
func (s *FeedService) ListByAuthor(ctx context.Context, username string, viewerID uint, page string) (*ProfileFeed, error) {
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, wrapLookup(err, "user", username)
	}

	posts, err := s.list(ctx, repositories.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}

	feed := &ProfileFeed{Author: author.ToCompact(), Page: posts}
	if viewerID != 0 {
		if feed.IsFollowing, err = s.follows.IsFollowing(ctx, viewerID, author.ID); err != nil {
			return nil, fmt.Errorf("check follow: %w", err)
		}
	}
	if feed.FollowersCount, err = s.follows.GetFollowersCount(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count followers: %w", err)
	}
	if feed.FollowingCount, err = s.follows.GetFollowingCount(ctx, author.ID); err != nil {
		return nil, fmt.Errorf("count following: %w", err)
	}
	return feed, nil
}

// ListFollowed merges the posts of every author viewerID follows.
func (s *FeedService) ListFollowed(ctx context.Context, viewerID uint, page string) (*PostPage, error) {
	if viewerID == 0 {
		p := pagination.New(0, s.perPage)
		return pagination.NewPage[models.Post](p, 1, nil), nil
	}
	return s.list(ctx, repositories.PostFilter{FollowedBy: viewerID}, page)
}

func (s *FeedService) list(ctx context.Context, filter repositories.PostFilter, page string) (*PostPage, error) {
	count, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	p := pagination.New(count, s.perPage)
	number := p.PageNumber(page)
	if count == 0 {
		return pagination.NewPage[models.Post](p, number, nil), nil
	}

	posts, err := s.posts.ListPosts(ctx, filter, p.Offset(number), p.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return pagination.NewPage(p, number, posts), nil
}
