package mdb

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "vidhive/Models"
)

func TestCreateUserRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.CreateUser(ctx, &models.User{Email: "a@x.com"}))
	err := store.CreateUser(ctx, &models.User{Email: "a@x.com"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestSubscribeIncrementsOnce(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	follower := &models.User{Email: "f@x.com"}
	channel := &models.User{Email: "c@x.com"}
	require.NoError(t, store.CreateUser(ctx, follower))
	require.NoError(t, store.CreateUser(ctx, channel))

	require.NoError(t, store.Subscribe(ctx, follower.ID, channel.ID))
	require.NoError(t, store.Subscribe(ctx, follower.ID, channel.ID))

	got, err := store.UserByID(ctx, channel.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Subscribers)

	gotFollower, err := store.UserByID(ctx, follower.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{channel.ID}, gotFollower.SubscribedChannels)
}

func TestSubscribeUnknownChannel(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	follower := &models.User{Email: "f@x.com"}
	require.NoError(t, store.CreateUser(ctx, follower))

	err := store.Subscribe(ctx, follower.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikeDislikeMutualExclusion(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	v := &models.Video{Title: "t", UserID: "owner"}
	require.NoError(t, store.CreateVideo(ctx, v))

	require.NoError(t, store.Like(ctx, v.ID, "u1"))
	require.NoError(t, store.Dislike(ctx, v.ID, "u1"))

	got, err := store.VideoByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Likes)
	assert.Equal(t, []string{"u1"}, got.Dislikes)

	// Repeats are idempotent.
	require.NoError(t, store.Dislike(ctx, v.ID, "u1"))
	got, err = store.VideoByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Len(t, got.Dislikes, 1)

	require.NoError(t, store.Like(ctx, v.ID, "u1"))
	got, err = store.VideoByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, got.Likes)
	assert.Empty(t, got.Dislikes)
}

func TestRecordViewIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	v := &models.Video{Title: "t", UserID: "owner"}
	require.NoError(t, store.CreateVideo(ctx, v))

	_, err := store.RecordView(ctx, v.ID, "viewer")
	require.NoError(t, err)
	got, err := store.RecordView(ctx, v.ID, "viewer")
	require.NoError(t, err)
	assert.Equal(t, []string{"viewer"}, got.ViewedBy)
}

func TestUpdateVideoCoalescesEmptyFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	v := &models.Video{Title: "old title", Description: "old desc", Category: "music", Tags: []string{"a"}, UserID: "owner"}
	require.NoError(t, store.CreateVideo(ctx, v))

	got, err := store.UpdateVideo(ctx, v.ID, models.VideoUpdate{Title: "new title"})
	require.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, "old desc", got.Description)
	assert.Equal(t, "music", got.Category)
	assert.Equal(t, []string{"a"}, got.Tags)
}

func TestListVideosNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	first := &models.Video{Title: "first", UserID: "o", Category: "music", Tags: []string{"go"}}
	second := &models.Video{Title: "second", UserID: "o", Category: "music"}
	third := &models.Video{Title: "third", UserID: "other", Tags: []string{"go"}}
	require.NoError(t, store.CreateVideo(ctx, first))
	require.NoError(t, store.CreateVideo(ctx, second))
	require.NoError(t, store.CreateVideo(ctx, third))

	all, err := store.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "third", all[0].Title)
	assert.Equal(t, "second", all[1].Title)
	assert.Equal(t, "first", all[2].Title)

	byCategory, err := store.ListByCategory(ctx, "music")
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "second", byCategory[0].Title)

	byTag, err := store.ListByTag(ctx, "go")
	require.NoError(t, err)
	require.Len(t, byTag, 2)
	assert.Equal(t, "third", byTag[0].Title)

	byOwner, err := store.ListByOwner(ctx, "o")
	require.NoError(t, err)
	require.Len(t, byOwner, 2)
	assert.Equal(t, "second", byOwner[0].Title)
}
