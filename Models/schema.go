package models

import "time"

// User represents a channel owner. The password hash is persisted but never
// serialized into API responses.
type User struct {
	ID                 string    `bson:"_id" json:"id"`
	Email              string    `bson:"email" json:"email"`
	Password           string    `bson:"password" json:"-"`
	ChannelName        string    `bson:"channelName" json:"channelName"`
	Phone              string    `bson:"phone" json:"phone"`
	LogoURL            string    `bson:"logoUrl" json:"logoUrl"`
	LogoID             string    `bson:"logoId" json:"logoId"`
	Subscribers        int64     `bson:"subscribers" json:"subscribers"`
	SubscribedChannels []string  `bson:"subscribedChannels" json:"subscribedChannels"`
	CreatedAt          time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt          time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Video is a video document. Likes, Dislikes and ViewedBy are sets of user
// ids; a user id never appears in both Likes and Dislikes.
type Video struct {
	ID               string    `bson:"_id" json:"id"`
	Title            string    `bson:"title" json:"title"`
	Description      string    `bson:"description" json:"description"`
	Category         string    `bson:"category" json:"category"`
	Tags             []string  `bson:"tags" json:"tags"`
	UserID           string    `bson:"userId" json:"userId"`
	VideoURL         string    `bson:"videoUrl" json:"videoUrl"`
	VideoAssetID     string    `bson:"videoId" json:"videoId"`
	ThumbnailURL     string    `bson:"thumbnailUrl" json:"thumbnailUrl"`
	ThumbnailAssetID string    `bson:"thumbnailId" json:"thumbnailId"`
	Likes            []string  `bson:"likes" json:"likes"`
	Dislikes         []string  `bson:"dislikes" json:"dislikes"`
	ViewedBy         []string  `bson:"viewedBy" json:"viewedBy"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ProfileUpdate carries the mutable profile fields. Empty strings mean
// "keep the current value". Logo is non-nil only when a new avatar was
// uploaded.
type ProfileUpdate struct {
	ChannelName string
	Phone       string
	Logo        *MediaRef
}

// VideoUpdate carries the mutable video metadata. Empty strings and a nil
// Tags slice keep the current values. Thumbnail is non-nil only when a new
// thumbnail was uploaded.
type VideoUpdate struct {
	Title       string
	Description string
	Category    string
	Tags        []string
	Thumbnail   *MediaRef
}

// MediaRef is a stored media reference: public URL plus the opaque asset
// handle used to destroy the binary later.
type MediaRef struct {
	URL     string
	AssetID string
}
