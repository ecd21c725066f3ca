package users

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	models "vidhive/Models"
	Auth "vidhive/Services/Auth"
	Mdb "vidhive/Services/Mdb"
	storage "vidhive/Services/Storage"
	Tasks "vidhive/Services/Tasks"
	Utils "vidhive/Utils"
)

const maxAvatarMemory = 32 << 20

// Handler serves the account endpoints: signup, login, profile update and
// channel subscription.
type Handler struct {
	Auth  *Auth.Service
	Store Mdb.UserStore
	Media storage.Gateway
	Tasks Tasks.Enqueuer
}

func NewHandler(authSvc *Auth.Service, store Mdb.UserStore, media storage.Gateway, enqueuer Tasks.Enqueuer) *Handler {
	return &Handler{Auth: authSvc, Store: store, Media: media, Tasks: enqueuer}
}

func (h *Handler) Handle(r chi.Router) {
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.CheckAuth)
		r.Put("/update-profile", h.UpdateProfile)
		r.Post("/subscribe", h.Subscribe)
	})
}

// Signup creates an account: hashes the password, uploads the avatar and
// persists the user. The response never contains the password hash.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	email := strings.TrimSpace(strings.ToLower(r.FormValue("email")))
	password := r.FormValue("password")
	channelName := strings.TrimSpace(r.FormValue("channelName"))
	phone := strings.TrimSpace(r.FormValue("phone"))

	if email == "" || password == "" {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	file, header, err := r.FormFile("logoUrl")
	if err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Avatar file is required")
		return
	}
	defer file.Close()

	hashed, err := Auth.HashPassword(password)
	if err != nil {
		log.Printf("Signup: failed to hash password: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	uploaded, err := h.Media.Upload(ctx, file, storage.UploadOptions{
		Kind:        storage.KindLogo,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		log.Printf("Signup: failed to upload avatar: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	user := &models.User{
		Email:       email,
		Password:    hashed,
		ChannelName: channelName,
		Phone:       phone,
		LogoURL:     uploaded.URL,
		LogoID:      uploaded.AssetID,
	}
	if err := h.Store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, Mdb.ErrDuplicateEmail) {
			Utils.SendErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		log.Printf("Signup: failed to create user: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, SignupResponse{User: user})
}

// Login checks credentials and issues a bearer token. Unknown emails map to
// 404, wrong passwords to 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	defer r.Body.Close()
	var input LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	email := strings.TrimSpace(strings.ToLower(input.Email))
	user, err := h.Store.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("Login: failed to fetch user: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if !Auth.CheckPasswordHash(input.Password, user.Password) {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.Auth.GenerateToken(user)
	if err != nil {
		log.Printf("Login: failed to generate token: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, LoginResponse{
		ID:                 user.ID,
		ChannelName:        user.ChannelName,
		Email:              user.Email,
		Phone:              user.Phone,
		LogoID:             user.LogoID,
		LogoURL:            user.LogoURL,
		Token:              token,
		Subscribers:        user.Subscribers,
		SubscribedChannels: user.SubscribedChannels,
	})
}

// UpdateProfile applies the supplied profile fields. Channel name and phone
// persist whether or not a new avatar accompanies them; a new avatar
// replaces the old asset in the media gateway.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		if err := r.ParseForm(); err != nil {
			Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
	}

	upd := models.ProfileUpdate{
		ChannelName: strings.TrimSpace(r.FormValue("channelName")),
		Phone:       strings.TrimSpace(r.FormValue("phone")),
	}

	if file, header, err := r.FormFile("logoUrl"); err == nil {
		defer file.Close()

		// Replace the old asset first so its handle is not lost once the
		// record points at the new one.
		current, err := h.Store.UserByID(ctx, claims.ID)
		if err != nil {
			log.Printf("UpdateProfile: failed to fetch user: %v", err)
			Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		if current.LogoID != "" {
			Tasks.CleanupAsset(ctx, h.Media, h.Tasks, current.LogoID)
		}

		uploaded, err := h.Media.Upload(ctx, file, storage.UploadOptions{
			Kind:        storage.KindLogo,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		})
		if err != nil {
			log.Printf("UpdateProfile: failed to upload avatar: %v", err)
			Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		upd.Logo = &models.MediaRef{URL: uploaded.URL, AssetID: uploaded.AssetID}
	}

	updated, err := h.Store.UpdateProfile(ctx, claims.ID, upd)
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "User not found")
			return
		}
		log.Printf("UpdateProfile: failed to update user: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, UpdateProfileResponse{
		Message:     "Profile updated successfully",
		UpdatedUser: updated,
	})
}

// Subscribe adds the target channel to the caller's subscriptions and bumps
// the target's subscriber count. Subscribing to yourself is rejected.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	defer r.Body.Close()
	var input SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.ChannelID == "" {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Channel ID is required")
		return
	}
	if input.ChannelID == claims.ID {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "You cannot subscribe to yourself")
		return
	}

	if err := h.Store.Subscribe(ctx, claims.ID, input.ChannelID); err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Channel not found")
			return
		}
		log.Printf("Subscribe: failed to subscribe: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, MessageResponse{Message: "Subscribed successfully"})
}
