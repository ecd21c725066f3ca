package videos

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

const maxUploadMemory = 512 << 20

// Handler serves the video endpoints: upload, metadata update, delete,
// listings, view tracking and like/dislike.
type Handler struct {
	Auth  *Auth.Service
	Store Mdb.VideoStore
	Media storage.Gateway
	Tasks Tasks.Enqueuer
}

func NewHandler(authSvc *Auth.Service, store Mdb.VideoStore, media storage.Gateway, enqueuer Tasks.Enqueuer) *Handler {
	return &Handler{Auth: authSvc, Store: store, Media: media, Tasks: enqueuer}
}

func (h *Handler) Handle(r chi.Router) {
	r.Get("/all", h.ListAll)
	r.Get("/category/{category}", h.ListByCategory)
	r.Get("/tags/{tag}", h.ListByTag)

	r.Group(func(r chi.Router) {
		r.Use(h.Auth.CheckAuth)
		r.Post("/upload", h.Upload)
		r.Put("/update/{id}", h.Update)
		r.Delete("/delete/{id}", h.Delete)
		r.Get("/my-videos", h.MyVideos)
		r.Get("/{id}", h.GetVideo)
		r.Post("/like", h.Like)
		r.Post("/dislike", h.Dislike)
	})
}

// Upload stores the video and thumbnail binaries in the media gateway and
// persists the metadata record. Both files are required.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	videoFile, videoHeader, err := r.FormFile("video")
	if err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Video and thumbnail are required")
		return
	}
	defer videoFile.Close()

	thumbFile, thumbHeader, err := r.FormFile("thumbnail")
	if err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Video and thumbnail are required")
		return
	}
	defer thumbFile.Close()

	videoUpload, err := h.Media.Upload(ctx, videoFile, storage.UploadOptions{
		Kind:        storage.KindVideo,
		Filename:    videoHeader.Filename,
		ContentType: videoHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		log.Printf("Upload: failed to upload video: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	thumbUpload, err := h.Media.Upload(ctx, thumbFile, storage.UploadOptions{
		Kind:        storage.KindThumbnail,
		Filename:    thumbHeader.Filename,
		ContentType: thumbHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		log.Printf("Upload: failed to upload thumbnail: %v", err)
		// The video binary is already stored; reclaim it.
		Tasks.CleanupAsset(ctx, h.Media, h.Tasks, videoUpload.AssetID)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	video := &models.Video{
		Title:            r.FormValue("title"),
		Description:      r.FormValue("description"),
		Category:         r.FormValue("category"),
		Tags:             parseTags(r.FormValue("tags")),
		UserID:           claims.ID,
		VideoURL:         videoUpload.URL,
		VideoAssetID:     videoUpload.AssetID,
		ThumbnailURL:     thumbUpload.URL,
		ThumbnailAssetID: thumbUpload.AssetID,
	}
	if err := h.Store.CreateVideo(ctx, video); err != nil {
		log.Printf("Upload: failed to insert video: %v", err)
		Tasks.CleanupAsset(ctx, h.Media, h.Tasks, videoUpload.AssetID)
		Tasks.CleanupAsset(ctx, h.Media, h.Tasks, thumbUpload.AssetID)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusCreated, UploadResponse{
		Message: "Video uploaded successfully",
		Video:   video,
	})
}

// Update applies new metadata to an owned video. Empty fields keep their
// previous values; a new thumbnail replaces the old asset.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videoID := chi.URLParam(r, "id")
	video, err := h.Store.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Update: failed to fetch video: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if video.UserID != claims.ID {
		Utils.SendErrorResponse(w, http.StatusForbidden, "You do not own this video")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		if err := r.ParseForm(); err != nil {
			Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
	}

	upd := models.VideoUpdate{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
		Tags:        parseTags(r.FormValue("tags")),
	}

	if file, header, err := r.FormFile("thumbnail"); err == nil {
		defer file.Close()

		Tasks.CleanupAsset(ctx, h.Media, h.Tasks, video.ThumbnailAssetID)

		uploaded, err := h.Media.Upload(ctx, file, storage.UploadOptions{
			Kind:        storage.KindThumbnail,
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
		})
		if err != nil {
			log.Printf("Update: failed to upload thumbnail: %v", err)
			Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
			return
		}
		upd.Thumbnail = &models.MediaRef{URL: uploaded.URL, AssetID: uploaded.AssetID}
	}

	updated, err := h.Store.UpdateVideo(ctx, videoID, upd)
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Update: failed to update video: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, UpdateResponse{
		Message: "Video updated successfully",
		Video:   updated,
	})
}

// Delete destroys both media assets and then removes the record. The record
// is the source of truth; asset destroys that fail are retried by the
// cleanup worker.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videoID := chi.URLParam(r, "id")
	video, err := h.Store.VideoByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Delete: failed to fetch video: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if video.UserID != claims.ID {
		Utils.SendErrorResponse(w, http.StatusForbidden, "You do not own this video")
		return
	}

	Tasks.CleanupAsset(ctx, h.Media, h.Tasks, video.VideoAssetID)
	Tasks.CleanupAsset(ctx, h.Media, h.Tasks, video.ThumbnailAssetID)

	if err := h.Store.DeleteVideo(ctx, videoID); err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Delete: failed to delete video: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, MessageResponse{Message: "Video deleted successfully"})
}

// ListAll returns every video, newest first.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	videos, err := h.Store.ListVideos(r.Context())
	if err != nil {
		log.Printf("ListAll: failed to list videos: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	Utils.SendJSONResponse(w, http.StatusOK, videos)
}

// MyVideos returns the caller's videos, newest first.
func (h *Handler) MyVideos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	videos, err := h.Store.ListByOwner(ctx, claims.ID)
	if err != nil {
		log.Printf("MyVideos: failed to list videos: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	Utils.SendJSONResponse(w, http.StatusOK, videos)
}

func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	videos, err := h.Store.ListByCategory(r.Context(), chi.URLParam(r, "category"))
	if err != nil {
		log.Printf("ListByCategory: failed to list videos: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	Utils.SendJSONResponse(w, http.StatusOK, videos)
}

func (h *Handler) ListByTag(w http.ResponseWriter, r *http.Request) {
	videos, err := h.Store.ListByTag(r.Context(), chi.URLParam(r, "tag"))
	if err != nil {
		log.Printf("ListByTag: failed to list videos: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	Utils.SendJSONResponse(w, http.StatusOK, videos)
}

// GetVideo records the caller as a viewer and returns the video. Set
// semantics keep repeat views by the same user from duplicating.
func (h *Handler) GetVideo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	video, err := h.Store.RecordView(ctx, chi.URLParam(r, "id"), claims.ID)
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("GetVideo: failed to record view: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	Utils.SendJSONResponse(w, http.StatusOK, video)
}

// Like adds the caller to the video's likes and removes them from dislikes.
func (h *Handler) Like(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, true)
}

// Dislike adds the caller to the video's dislikes and removes them from
// likes.
func (h *Handler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.vote(w, r, false)
}

func (h *Handler) vote(w http.ResponseWriter, r *http.Request, like bool) {
	ctx := r.Context()
	claims, ok := Auth.ClaimsFromContext(ctx)
	if !ok {
		Utils.SendErrorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	defer r.Body.Close()
	var input VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if input.VideoID == "" {
		Utils.SendErrorResponse(w, http.StatusBadRequest, "Video ID is required")
		return
	}

	var err error
	var message string
	if like {
		err = h.Store.Like(ctx, input.VideoID, claims.ID)
		message = "Liked the video"
	} else {
		err = h.Store.Dislike(ctx, input.VideoID, claims.ID)
		message = "Disliked the video"
	}
	if err != nil {
		if errors.Is(err, Mdb.ErrNotFound) {
			Utils.SendErrorResponse(w, http.StatusNotFound, "Video not found")
			return
		}
		log.Printf("Vote: failed to update video: %v", err)
		Utils.SendErrorResponse(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	Utils.SendJSONResponse(w, http.StatusOK, MessageResponse{Message: message})
}

// parseTags splits a comma-separated tag string into a set. Empty input
// yields nil so callers can distinguish "no tags supplied".
func parseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		tag := strings.TrimSpace(p)
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
	}
	return tags
}
