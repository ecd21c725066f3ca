package mdb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "vidhive/Models"
)

var (
	// ErrNotFound is returned when no document matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when a signup email is already taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// UserStore is the persistence contract for user documents. Single-document
// mutations are atomic; Subscribe touches two documents and must keep the
// subscriber count consistent with set membership.
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error)
	Subscribe(ctx context.Context, userID, channelID string) error
}

// VideoStore is the persistence contract for video documents. All listings
// return newest first.
type VideoStore interface {
	CreateVideo(ctx context.Context, v *models.Video) error
	VideoByID(ctx context.Context, id string) (*models.Video, error)
	UpdateVideo(ctx context.Context, id string, upd models.VideoUpdate) (*models.Video, error)
	DeleteVideo(ctx context.Context, id string) error
	ListVideos(ctx context.Context) ([]models.Video, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Video, error)
	ListByCategory(ctx context.Context, category string) ([]models.Video, error)
	ListByTag(ctx context.Context, tag string) ([]models.Video, error)
	RecordView(ctx context.Context, videoID, userID string) (*models.Video, error)
	Like(ctx context.Context, videoID, userID string) error
	Dislike(ctx context.Context, videoID, userID string) error
}

// Store bundles both document collections behind one handle.
type Store interface {
	UserStore
	VideoStore
}

// Connect dials MongoDB and verifies the connection.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return client, nil
}
