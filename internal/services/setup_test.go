package services_test

import (
	"testing"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/anonto42/yatube/backend/internal/testutil"
	"github.com/anonto42/yatube/backend/internal/validators"
	"gorm.io/gorm"
)

type fixture struct {
	db       *gorm.DB
	feed     *services.FeedService
	follows  *services.FollowService
	comments *services.CommentService
	posts    *services.PostService
	groups   *services.GroupService
	users    *services.UserService
	images   *testutil.MemoryImages
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewDB(t)
	v := validators.NewValidator()
	userRepo := repositories.NewPostgresUserRepository(db)
	groupRepo := repositories.NewPostgresGroupRepository(db)
	postRepo := repositories.NewPostgresPostRepository(db)
	commentRepo := repositories.NewPostgresCommentRepository(db)
	followRepo := repositories.NewPostgresFollowRepository(db)
	images := testutil.NewMemoryImages()

	return &fixture{
		db:       db,
		feed:     services.NewFeedService(postRepo, groupRepo, userRepo, followRepo),
		follows:  services.NewFollowService(followRepo, userRepo),
		comments: services.NewCommentService(commentRepo, postRepo, v),
		posts:    services.NewPostService(postRepo, groupRepo, userRepo, commentRepo, images, v),
		groups:   services.NewGroupService(groupRepo, v),
		users:    services.NewUserService(userRepo, v),
		images:   images,
	}
}

func (f *fixture) followCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := f.db.Model(&models.Follow{}).Count(&n).Error; err != nil {
		t.Fatalf("count follows: %v", err)
	}
	return n
}

func postIDs(posts []models.Post) []uint {
	out := make([]uint, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}
