package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
)

// CommentService attaches comments to posts.
type CommentService struct {
	comments  repositories.CommentRepository
	posts     repositories.PostRepository
	validator Validator
}

func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, v Validator) *CommentService {
	return &CommentService{comments: comments, posts: posts, validator: v}
}

// AddComment stores a comment by authorID on postID.
func (s *CommentService) AddComment(ctx context.Context, postID, authorID uint, text string) (*models.Comment, error) {
	if _, err := s.posts.GetPostByID(ctx, postID); err != nil {
		return nil, wrapLookup(err, "post", strconv.FormatUint(uint64(postID), 10))
	}

	req := models.CreateCommentRequest{Text: strings.TrimSpace(text)}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     req.Text,
		AuthorID: authorID,
		PostID:   &postID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, wrapWrite(err, "create comment", "user", strconv.FormatUint(uint64(authorID), 10))
	}
	return comment, nil
}

// ListComments returns the comments on postID, oldest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}
