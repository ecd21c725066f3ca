package mdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "vidhive/Models"
)

// MongoStore implements Store on top of a MongoDB database. Set mutations
// rely on the server-side $addToSet / $pull / $inc operators so each
// single-document update is atomic.
type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	videos *mongo.Collection
}

func NewMongoStore(ctx context.Context, client *mongo.Client, database string) (*MongoStore, error) {
	db := client.Database(database)
	s := &MongoStore{
		client: client,
		users:  db.Collection("users"),
		videos: db.Collection("videos"),
	}

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create email index: %w", err)
	}

	return s, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, u *models.User) error {
	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.SubscribedChannels == nil {
		u.SubscribedChannels = []string{}
	}

	_, err := s.users.InsertOne(ctx, u)
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *MongoStore) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.ChannelName != "" {
		set["channelName"] = upd.ChannelName
	}
	if upd.Phone != "" {
		set["phone"] = upd.Phone
	}
	if upd.Logo != nil {
		set["logoUrl"] = upd.Logo.URL
		set["logoId"] = upd.Logo.AssetID
	}

	var u models.User
	err := s.users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Subscribe adds channelID to the caller's subscribedChannels set and bumps
// the channel's subscriber count inside one transaction. The count is only
// incremented when the set membership actually changed, so repeated
// subscribes are no-ops.
func (s *MongoStore) Subscribe(ctx context.Context, userID, channelID string) error {
	session, err := s.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := s.users.CountDocuments(sc, bson.M{"_id": channelID})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNotFound
		}

		res, err := s.users.UpdateByID(sc, userID,
			bson.M{"$addToSet": bson.M{"subscribedChannels": channelID}})
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		if res.ModifiedCount == 0 {
			// Already subscribed.
			return nil, nil
		}

		_, err = s.users.UpdateByID(sc, channelID,
			bson.M{"$inc": bson.M{"subscribers": 1}})
		return nil, err
	})
	return err
}

func (s *MongoStore) CreateVideo(ctx context.Context, v *models.Video) error {
	if v.ID == "" {
		v.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if v.Likes == nil {
		v.Likes = []string{}
	}
	if v.Dislikes == nil {
		v.Dislikes = []string{}
	}
	if v.ViewedBy == nil {
		v.ViewedBy = []string{}
	}

	_, err := s.videos.InsertOne(ctx, v)
	return err
}

func (s *MongoStore) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	var v models.Video
	err := s.videos.FindOne(ctx, bson.M{"_id": id}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoStore) UpdateVideo(ctx context.Context, id string, upd models.VideoUpdate) (*models.Video, error) {
	set := bson.M{"updatedAt": time.Now()}
	if upd.Title != "" {
		set["title"] = upd.Title
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if upd.Category != "" {
		set["category"] = upd.Category
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}
	if upd.Thumbnail != nil {
		set["thumbnailUrl"] = upd.Thumbnail.URL
		set["thumbnailId"] = upd.Thumbnail.AssetID
	}

	var v models.Video
	err := s.videos.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *MongoStore) DeleteVideo(ctx context.Context, id string) error {
	res, err := s.videos.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.findVideos(ctx, bson.M{})
}

func (s *MongoStore) ListByOwner(ctx context.Context, userID string) ([]models.Video, error) {
	return s.findVideos(ctx, bson.M{"userId": userID})
}

func (s *MongoStore) ListByCategory(ctx context.Context, category string) ([]models.Video, error) {
	return s.findVideos(ctx, bson.M{"category": category})
}

func (s *MongoStore) ListByTag(ctx context.Context, tag string) ([]models.Video, error) {
	return s.findVideos(ctx, bson.M{"tags": tag})
}

func (s *MongoStore) findVideos(ctx context.Context, filter bson.M) ([]models.Video, error) {
	cursor, err := s.videos.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	videos := []models.Video{}
	if err := cursor.All(ctx, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// RecordView adds the viewer to the viewedBy set and returns the updated
// document. Set semantics make repeated views by the same user idempotent.
func (s *MongoStore) RecordView(ctx context.Context, videoID, userID string) (*models.Video, error) {
	var v models.Video
	err := s.videos.FindOneAndUpdate(ctx,
		bson.M{"_id": videoID},
		bson.M{"$addToSet": bson.M{"viewedBy": userID}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Like adds the user to likes and removes them from dislikes in a single
// atomic update, so a user id can never end up in both sets.
func (s *MongoStore) Like(ctx context.Context, videoID, userID string) error {
	return s.vote(ctx, videoID, userID, "likes", "dislikes")
}

// Dislike is symmetric to Like.
func (s *MongoStore) Dislike(ctx context.Context, videoID, userID string) error {
	return s.vote(ctx, videoID, userID, "dislikes", "likes")
}

func (s *MongoStore) vote(ctx context.Context, videoID, userID, add, remove string) error {
	res, err := s.videos.UpdateByID(ctx, videoID, bson.M{
		"$addToSet": bson.M{add: userID},
		"$pull":     bson.M{remove: userID},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
