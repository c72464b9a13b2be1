package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/storage"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
)

// PostDetail is the single-post view.
type PostDetail struct {
	Post             *models.Post     `json:"post"`
	Comments         []models.Comment `json:"comments"`
	AuthorPostsCount int64            `json:"author_posts_count"`
}

// ErrImagesDisabled is returned when an upload arrives but no image store
// is configured.
var ErrImagesDisabled = errors.New("image uploads are disabled")

// ImageUpload is an image attached to a create or edit request.
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// PostService creates, edits and shows posts.
type PostService struct {
	posts     repositories.PostRepository
	groups    repositories.GroupRepository
	users     repositories.UserRepository
	comments  repositories.CommentRepository
	images    storage.ImageStore // nil when uploads are disabled
	validator Validator
}

func NewPostService(
	posts repositories.PostRepository,
	groups repositories.GroupRepository,
	users repositories.UserRepository,
	comments repositories.CommentRepository,
	images storage.ImageStore,
	v Validator,
) *PostService {
	return &PostService{posts: posts, groups: groups, users: users, comments: comments, images: images, validator: v}
}

// CreatePost publishes a post by authorID. The image, if any, is stored only
// once the request has been accepted.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, req models.CreatePostRequest, image *ImageUpload) (*models.Post, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, err
	}
	if err := s.checkImage(image); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     req.Text,
		AuthorID: authorID,
		GroupID:  req.GroupID,
	}
	err := s.withImage(ctx, image, func(ref string) error {
		post.Image = ref
		return s.posts.CreatePost(ctx, post)
	})
	if err != nil {
		return nil, wrapWrite(err, "create post", "user", strconv.FormatUint(uint64(authorID), 10))
	}
	return s.posts.GetPostByID(ctx, post.ID)
}

// EditPost updates postID on behalf of editorID. When editorID is not the
// author nothing changes and applied is false; this is not an error.
func (s *PostService) EditPost(ctx context.Context, postID, editorID uint, req models.UpdatePostRequest, image *ImageUpload) (post *models.Post, applied bool, err error) {
	key := strconv.FormatUint(uint64(postID), 10)
	post, err = s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, false, wrapLookup(err, "post", key)
	}
	if post.AuthorID != editorID {
		return post, false, nil
	}

	req.Text = strings.TrimSpace(req.Text)
	if err := s.validator.Validate(req); err != nil {
		return nil, false, err
	}
	if err := s.checkGroup(ctx, req.GroupID); err != nil {
		return nil, false, err
	}
	if image != nil && req.ClearImage {
		return nil, false, apperrors.NewValidation(map[string]string{
			"image": "Please either submit a file or check the clear checkbox, not both.",
		})
	}
	if err := s.checkImage(image); err != nil {
		return nil, false, err
	}

	post.Text = req.Text
	post.GroupID = req.GroupID
	if req.ClearImage {
		post.Image = ""
	}
	err = s.withImage(ctx, image, func(ref string) error {
		if ref != "" {
			post.Image = ref
		}
		return s.posts.UpdatePost(ctx, post)
	})
	if repositories.IsNotFound(err) {
		return nil, false, apperrors.NewNotFound("post", key, err)
	}
	if err != nil {
		return nil, false, wrapWrite(err, "update post", "group", key)
	}

	post, err = s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, false, fmt.Errorf("reload post: %w", err)
	}
	return post, true, nil
}

func (s *PostService) checkImage(image *ImageUpload) error {
	if image == nil {
		return nil
	}
	if s.images == nil {
		return ErrImagesDisabled
	}
	if !strings.HasPrefix(image.ContentType, "image/") {
		return apperrors.NewValidation(map[string]string{"image": "Upload a valid image."})
	}
	return nil
}

// withImage stores image and runs write with its reference (empty without an
// image). A stored image is removed again when write fails.
func (s *PostService) withImage(ctx context.Context, image *ImageUpload, write func(ref string) error) error {
	if image == nil {
		return write("")
	}

	ref, err := s.images.Save(ctx, image.Filename, image.ContentType, image.Body)
	if err != nil {
		return fmt.Errorf("save image: %w", err)
	}
	if err := write(ref); err != nil {
		if derr := s.images.Delete(ctx, ref); derr != nil {
			return errors.Join(err, fmt.Errorf("remove orphaned image %s: %w", ref, derr))
		}
		return err
	}
	return nil
}

// GetPost loads postID only if it was written by username.
func (s *PostService) GetPost(ctx context.Context, username string, postID uint) (*PostDetail, error) {
	key := strconv.FormatUint(uint64(postID), 10)

	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, wrapLookup(err, "user", username)
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, wrapLookup(err, "post", key)
	}
	if post.AuthorID != author.ID {
		return nil, apperrors.NewNotFound("post", key, nil)
	}

	comments, err := s.comments.GetCommentsByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	count, err := s.posts.CountPosts(ctx, repositories.PostFilter{AuthorID: author.ID})
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	if comments == nil {
		comments = []models.Comment{}
	}
	return &PostDetail{Post: post, Comments: comments, AuthorPostsCount: count}, nil
}

func (s *PostService) checkGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	_, err := s.groups.GetGroupByID(ctx, *groupID)
	if repositories.IsNotFound(err) {
		return apperrors.NewValidation(map[string]string{
			"group_id": "Select a valid choice. That choice is not one of the available choices.",
		})
	}
	if err != nil {
		return fmt.Errorf("load group: %w", err)
	}
	return nil
}
