package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goforum/internal/config"
)

// End-to-end rule checks across the services sharing one store.

func TestPostOwnershipLifecycle(t *testing.T) {
	users := newFakeUserStore()
	posts := newFakePostStore()
	auth := NewAuthService(users, testSecret, time.Hour)
	postSvc := NewPostService(posts, users, newFakeFeedCache(), &recordingPublisher{})

	a, err := auth.Register(RegisterInput{Username: "user-a", Password: "password1"})
	require.NoError(t, err)

	post, err := postSvc.Create(CreatePostInput{Title: "a's post", UserID: a.User.ID})
	require.NoError(t, err)

	b, err := auth.Register(RegisterInput{Username: "user-b", Password: "password1"})
	require.NoError(t, err)

	assert.ErrorIs(t, postSvc.Delete(post.ID, b.User.ID), ErrForbidden)

	require.NoError(t, postSvc.Delete(post.ID, a.User.ID))

	gone, err := posts.GetByID(post.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSeededAdminCannotDeleteItself(t *testing.T) {
	users := newFakeUserStore()
	auth := NewAuthService(users, testSecret, time.Hour)
	userSvc := NewUserService(users, &recordingPublisher{})

	require.NoError(t, auth.SeedAdmin(config.AdminConfig{Username: "admin", Password: "admin123"}))
	admin, err := users.GetByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, admin)

	assert.ErrorIs(t, userSvc.Delete(admin.ID, admin.ID), ErrForbidden)
}
