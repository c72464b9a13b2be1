package validators

import (
	"errors"
	"strings"
	"testing"

	"github.com/anonto42/yatube/backend/internal/models"
	"github.com/anonto42/yatube/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentText(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(models.CreateCommentRequest{Text: "nice"}))
	assert.NoError(t, v.Validate(models.CreateCommentRequest{Text: strings.Repeat("ж", 300)}))

	err := v.Validate(models.CreateCommentRequest{Text: strings.Repeat("a", 301)})
	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Ensure this value has at most 300 characters.", verr.Fields["text"])

	err = v.Validate(models.CreateCommentRequest{})
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "This field is required.", verr.Fields["text"])
}

func TestGroupSlug(t *testing.T) {
	v := NewValidator()

	ok := models.CreateGroupRequest{Title: "News", Slug: "news_2024", Description: "daily"}
	assert.NoError(t, v.Validate(ok))

	bad := ok
	bad.Slug = "no spaces"
	err := v.Validate(bad)
	assert.True(t, apperrors.IsValidation(err))

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "slug")
}
