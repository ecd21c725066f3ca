package users

import models "vidhive/Models"

// SignupResponse wraps the created account. The password hash is excluded
// by the model's json tags.
type SignupResponse struct {
	User *models.User `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the profile plus a fresh bearer token.
type LoginResponse struct {
	ID                 string   `json:"id"`
	ChannelName        string   `json:"channelName"`
	Email              string   `json:"email"`
	Phone              string   `json:"phone"`
	LogoID             string   `json:"logoId"`
	LogoURL            string   `json:"logoUrl"`
	Token              string   `json:"token"`
	Subscribers        int64    `json:"subscribers"`
	SubscribedChannels []string `json:"subscribedChannels"`
}

type UpdateProfileResponse struct {
	Message     string       `json:"message"`
	UpdatedUser *models.User `json:"updatedUser"`
}

type SubscribeRequest struct {
	ChannelID string `json:"channelId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
