package mdb

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	models "vidhive/Models"
)

// MemoryStore is an in-memory Store used by the test suite and as a
// fallback when no MongoDB is configured. It mirrors the Mongo
// implementation's semantics, including set behavior and ordering.
type MemoryStore struct {
	mu      sync.Mutex
	users   map[string]*models.User
	videos  map[string]*models.Video
	seq     map[string]int
	nextSeq int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*models.User),
		videos: make(map[string]*models.Video),
		seq:    make(map[string]int),
	}
}

func (s *MemoryStore) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicateEmail
		}
	}

	if u.ID == "" {
		u.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	if u.SubscribedChannels == nil {
		u.SubscribedChannels = []string{}
	}

	clone := *u
	clone.SubscribedChannels = append([]string{}, u.SubscribedChannels...)
	s.users[u.ID] = &clone
	return nil
}

func (s *MemoryStore) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, id string, upd models.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.ChannelName != "" {
		u.ChannelName = upd.ChannelName
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	if upd.Logo != nil {
		u.LogoURL = upd.Logo.URL
		u.LogoID = upd.Logo.AssetID
	}
	u.UpdatedAt = time.Now()

	return copyUser(u), nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, userID, channelID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	channel, ok := s.users[channelID]
	if !ok {
		return ErrNotFound
	}
	u, ok := s.users[userID]
	if !ok {
		return ErrNotFound
	}

	for _, id := range u.SubscribedChannels {
		if id == channelID {
			// Already subscribed.
			return nil
		}
	}
	u.SubscribedChannels = append(u.SubscribedChannels, channelID)
	channel.Subscribers++
	return nil
}

func (s *MemoryStore) CreateVideo(ctx context.Context, v *models.Video) error {
	s.mu.Lock()
	defer s.mu.Unlock()

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

	s.videos[v.ID] = copyVideo(v)
	s.nextSeq++
	s.seq[v.ID] = s.nextSeq
	return nil
}

func (s *MemoryStore) VideoByID(ctx context.Context, id string) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyVideo(v), nil
}

func (s *MemoryStore) UpdateVideo(ctx context.Context, id string, upd models.VideoUpdate) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[id]
	if !ok {
		return nil, ErrNotFound
	}

	if upd.Title != "" {
		v.Title = upd.Title
	}
	if upd.Description != "" {
		v.Description = upd.Description
	}
	if upd.Category != "" {
		v.Category = upd.Category
	}
	if upd.Tags != nil {
		v.Tags = append([]string{}, upd.Tags...)
	}
	if upd.Thumbnail != nil {
		v.ThumbnailURL = upd.Thumbnail.URL
		v.ThumbnailAssetID = upd.Thumbnail.AssetID
	}
	v.UpdatedAt = time.Now()

	return copyVideo(v), nil
}

func (s *MemoryStore) DeleteVideo(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.videos[id]; !ok {
		return ErrNotFound
	}
	delete(s.videos, id)
	delete(s.seq, id)
	return nil
}

func (s *MemoryStore) ListVideos(ctx context.Context) ([]models.Video, error) {
	return s.filterVideos(func(v *models.Video) bool { return true }), nil
}

func (s *MemoryStore) ListByOwner(ctx context.Context, userID string) ([]models.Video, error) {
	return s.filterVideos(func(v *models.Video) bool { return v.UserID == userID }), nil
}

func (s *MemoryStore) ListByCategory(ctx context.Context, category string) ([]models.Video, error) {
	return s.filterVideos(func(v *models.Video) bool { return v.Category == category }), nil
}

func (s *MemoryStore) ListByTag(ctx context.Context, tag string) ([]models.Video, error) {
	return s.filterVideos(func(v *models.Video) bool {
		for _, t := range v.Tags {
			if t == tag {
				return true
			}
		}
		return false
	}), nil
}

func (s *MemoryStore) filterVideos(match func(*models.Video) bool) []models.Video {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []models.Video{}
	for _, v := range s.videos {
		if match(v) {
			out = append(out, *copyVideo(v))
		}
	}
	// Newest first; insertion order breaks ties on equal timestamps.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return s.seq[out[i].ID] > s.seq[out[j].ID]
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *MemoryStore) RecordView(ctx context.Context, videoID, userID string) (*models.Video, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[videoID]
	if !ok {
		return nil, ErrNotFound
	}
	v.ViewedBy = addToSet(v.ViewedBy, userID)
	return copyVideo(v), nil
}

func (s *MemoryStore) Like(ctx context.Context, videoID, userID string) error {
	return s.vote(videoID, userID, true)
}

func (s *MemoryStore) Dislike(ctx context.Context, videoID, userID string) error {
	return s.vote(videoID, userID, false)
}

func (s *MemoryStore) vote(videoID, userID string, like bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.videos[videoID]
	if !ok {
		return ErrNotFound
	}
	if like {
		v.Likes = addToSet(v.Likes, userID)
		v.Dislikes = pull(v.Dislikes, userID)
	} else {
		v.Dislikes = addToSet(v.Dislikes, userID)
		v.Likes = pull(v.Likes, userID)
	}
	return nil
}

func addToSet(set []string, id string) []string {
	for _, s := range set {
		if s == id {
			return set
		}
	}
	return append(set, id)
}

func pull(set []string, id string) []string {
	out := set[:0]
	for _, s := range set {
		if s != id {
			out = append(out, s)
		}
	}
	return out
}

func copyUser(u *models.User) *models.User {
	clone := *u
	clone.SubscribedChannels = append([]string{}, u.SubscribedChannels...)
	return &clone
}

func copyVideo(v *models.Video) *models.Video {
	clone := *v
	clone.Tags = append([]string{}, v.Tags...)
	clone.Likes = append([]string{}, v.Likes...)
	clone.Dislikes = append([]string{}, v.Dislikes...)
	clone.ViewedBy = append([]string{}, v.ViewedBy...)
	return &clone
}
