package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/internal/services"
	"github.com/anonto42/yatube/backend/internal/testutil"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leo := testutil.CreateUser(t, f.db, "leo")

	req := models.CreateGroupRequest{Title: "News", Slug: "news", Description: "daily news"}
	group, err := f.groups.CreateGroup(ctx, req)
	require.NoError(t, err)

	_, err = f.groups.CreateGroup(ctx, req)
	assert.True(t, apperrors.IsValidation(err), "duplicate slug")

	_, err = f.posts.CreatePost(ctx, leo.ID, models.CreatePostRequest{Text: "in news", GroupID: &group.ID}, nil)
	require.NoError(t, err)
	_, err = f.posts.CreatePost(ctx, leo.ID, models.CreatePostRequest{Text: "elsewhere"}, nil)
	require.NoError(t, err)

	groups, err := f.groups.ListGroups(ctx)
	require.NoError(t, err)
	assert.Len(t, groups, 1)

	require.NoError(t, f.groups.DeleteGroup(ctx, "news"))

	page, err := f.feed.ListAll(ctx, "1")
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "elsewhere", page.Items[0].Text)

	assert.True(t, apperrors.IsNotFound(f.groups.DeleteGroup(ctx, "news")))
}

func TestResolveFirebaseUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := services.Identity{FirebaseUID: "fb-123", Email: "leo@example.com", Name: "Leo"}

	_, err := f.users.ResolveFirebaseUser(ctx, id, "")
	assert.True(t, apperrors.IsValidation(err), "first login needs a username")

	user, err := f.users.ResolveFirebaseUser(ctx, id, "leo")
	require.NoError(t, err)
	assert.Equal(t, "leo", user.Username)
	assert.Equal(t, "leo@example.com", user.Email)

	again, err := f.users.ResolveFirebaseUser(ctx, id, "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	_, err = f.users.ResolveFirebaseUser(ctx, services.Identity{FirebaseUID: "fb-456"}, "leo")
	assert.True(t, apperrors.IsValidation(err), "username taken")
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	leo := testutil.CreateUser(t, f.db, "leo")
	ann := testutil.CreateUser(t, f.db, "ann")
	testutil.CreatePost(t, f.db, leo, nil, "bye", testutil.Clock()())
	testutil.CreateFollow(t, f.db, ann, leo)

	require.NoError(t, f.users.DeleteUserByUsername(ctx, "leo"))

	page, err := f.feed.ListAll(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Zero(t, f.followCount(t))

	assert.True(t, apperrors.IsNotFound(f.users.DeleteUser(ctx, leo.ID)))
	assert.True(t, apperrors.IsNotFound(f.users.DeleteUserByUsername(ctx, "leo")))
}
