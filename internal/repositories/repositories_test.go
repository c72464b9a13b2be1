package repositories_test

import (
	"context"
	"testing"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/repositories"
	"github.com/anonto42/yatube/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestListPostsOrderAndFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresPostRepository(db)
	now := testutil.Clock()

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	news := testutil.CreateGroup(t, db, "news")

	first := testutil.CreatePost(t, db, leo, news, "first", now())
	second := testutil.CreatePost(t, db, ann, nil, "second", now())
	third := testutil.CreatePost(t, db, leo, nil, "third", now())

	all, err := repo.ListPosts(ctx, repositories.PostFilter{}, 0, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []uint{third.ID, second.ID, first.ID}, ids(all))
	assert.Equal(t, "leo", all[0].Author.Username)

	byGroup, err := repo.ListPosts(ctx, repositories.PostFilter{GroupID: news.ID}, 0, 10)
	require.NoError(t, err)
	require.Len(t, byGroup, 1)
	assert.Equal(t, "news", byGroup[0].Group.Slug)

	count, err := repo.CountPosts(ctx, repositories.PostFilter{AuthorID: leo.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	window, err := repo.ListPosts(ctx, repositories.PostFilter{}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{second.ID}, ids(window))
}

func TestListPostsFollowedBy(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresPostRepository(db)
	now := testutil.Clock()

	viewer := testutil.CreateUser(t, db, "viewer")
	x := testutil.CreateUser(t, db, "x")
	y := testutil.CreateUser(t, db, "y")
	z := testutil.CreateUser(t, db, "z")
	testutil.CreateFollow(t, db, viewer, x)
	testutil.CreateFollow(t, db, viewer, y)

	px := testutil.CreatePost(t, db, x, nil, "from x", now())
	testutil.CreatePost(t, db, z, nil, "from z", now())
	py := testutil.CreatePost(t, db, y, nil, "from y", now())

	posts, err := repo.ListPosts(ctx, repositories.PostFilter{FollowedBy: viewer.ID}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{py.ID, px.ID}, ids(posts))
}

func TestUpdatePostKeepsAuthorAndDate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresPostRepository(db)

	leo := testutil.CreateUser(t, db, "leo")
	news := testutil.CreateGroup(t, db, "news")
	post := testutil.CreatePost(t, db, leo, news, "draft", testutil.Clock()())

	post.Text = "final"
	post.GroupID = nil
	post.Image = "posts/cat.png"
	require.NoError(t, repo.UpdatePost(ctx, post))

	got, err := repo.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Text)
	assert.Nil(t, got.GroupID)
	assert.Equal(t, "posts/cat.png", got.Image)
	assert.Equal(t, leo.ID, got.AuthorID)
	assert.True(t, post.PubDate.Equal(got.PubDate))

	missing := &models.Post{ID: 999, Text: "x"}
	assert.ErrorIs(t, repo.UpdatePost(ctx, missing), gorm.ErrRecordNotFound)
}

func TestFollowUniqueAndSelf(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repositories.NewPostgresFollowRepository(db)

	ann := testutil.CreateUser(t, db, "ann")
	bob := testutil.CreateUser(t, db, "bob")

	require.NoError(t, repo.CreateFollow(ctx, &models.Follow{UserID: ann.ID, AuthorID: bob.ID}))
	err := repo.CreateFollow(ctx, &models.Follow{UserID: ann.ID, AuthorID: bob.ID})
	assert.True(t, repositories.IsUniqueViolation(err))

	assert.ErrorIs(t, repo.CreateFollow(ctx, &models.Follow{UserID: ann.ID, AuthorID: ann.ID}), repositories.ErrSelfFollow)

	// The CHECK constraint backs the repository guard.
	err = db.Create(&models.Follow{UserID: bob.ID, AuthorID: bob.ID}).Error
	assert.Error(t, err)

	following, err := repo.IsFollowing(ctx, ann.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	followers, err := repo.GetFollowersCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), followers)

	require.NoError(t, repo.DeleteFollow(ctx, ann.ID, bob.ID))
	assert.ErrorIs(t, repo.DeleteFollow(ctx, ann.ID, bob.ID), gorm.ErrRecordNotFound)
}

func TestDeleteGroupCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	groups := repositories.NewPostgresGroupRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	now := testutil.Clock()

	leo := testutil.CreateUser(t, db, "leo")
	news := testutil.CreateGroup(t, db, "news")
	misc := testutil.CreateGroup(t, db, "misc")
	inNews := testutil.CreatePost(t, db, leo, news, "in news", now())
	inMisc := testutil.CreatePost(t, db, leo, misc, "in misc", now())
	loose := testutil.CreatePost(t, db, leo, nil, "no group", now())
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "hi", AuthorID: leo.ID, PostID: &inNews.ID}))

	require.NoError(t, groups.DeleteGroup(ctx, "news"))

	var remaining []models.Post
	require.NoError(t, db.Order("id").Find(&remaining).Error)
	assert.Equal(t, []uint{inMisc.ID, loose.ID}, ids(remaining))

	var commentCount int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&commentCount).Error)
	assert.Zero(t, commentCount)

	_, err := groups.GetGroupBySlug(ctx, "news")
	assert.True(t, repositories.IsNotFound(err))
	assert.True(t, repositories.IsNotFound(groups.DeleteGroup(ctx, "news")))
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repositories.NewPostgresUserRepository(db)
	comments := repositories.NewPostgresCommentRepository(db)
	now := testutil.Clock()

	leo := testutil.CreateUser(t, db, "leo")
	ann := testutil.CreateUser(t, db, "ann")
	leoPost := testutil.CreatePost(t, db, leo, nil, "leo writes", now())
	annPost := testutil.CreatePost(t, db, ann, nil, "ann writes", now())
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "ann on leo", AuthorID: ann.ID, PostID: &leoPost.ID}))
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "leo on ann", AuthorID: leo.ID, PostID: &annPost.ID}))
	require.NoError(t, comments.CreateComment(ctx, &models.Comment{Text: "ann on ann", AuthorID: ann.ID, PostID: &annPost.ID}))
	testutil.CreateFollow(t, db, leo, ann)
	testutil.CreateFollow(t, db, ann, leo)

	require.NoError(t, users.DeleteUser(ctx, leo.ID))

	var posts []models.Post
	require.NoError(t, db.Find(&posts).Error)
	assert.Equal(t, []uint{annPost.ID}, ids(posts))

	left, err := comments.GetCommentsByPostID(ctx, annPost.ID)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "ann on ann", left[0].Text)

	var follows int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&follows).Error)
	assert.Zero(t, follows)

	_, err = users.GetUserByUsername(ctx, "leo")
	assert.True(t, repositories.IsNotFound(err))
}

func ids(posts []models.Post) []uint {
	out := make([]uint, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestWriteForMissingAuthorIsForeignKeyViolation(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	users := repositories.NewPostgresUserRepository(db)
	posts := repositories.NewPostgresPostRepository(db)

	leo := testutil.CreateUser(t, db, "leo")
	got, err := users.GetUserByID(ctx, leo.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", got.Username)

	require.NoError(t, users.DeleteUser(ctx, leo.ID))
	_, err = users.GetUserByID(ctx, leo.ID)
	assert.True(t, repositories.IsNotFound(err))

	err = posts.CreatePost(ctx, &models.Post{Text: "ghost writer", AuthorID: leo.ID})
	require.Error(t, err)
	assert.True(t, repositories.IsForeignKeyViolation(err))
	assert.False(t, repositories.IsUniqueViolation(err))
}
