package tasks

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"

	storage "vidhive/Services/Storage"
)

// Handler processes background tasks against the media gateway.
type Handler struct {
	Media storage.Gateway
}

func NewHandler(media storage.Gateway) *Handler {
	return &Handler{Media: media}
}

// HandleDestroyAssetTask destroys an orphaned media asset. Errors are
// returned so asynq retries with backoff.
func (h *Handler) HandleDestroyAssetTask(ctx context.Context, t *asynq.Task) error {
	var payload DestroyAssetPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		log.Printf("HandleDestroyAssetTask: invalid payload: %v", err)
		return err
	}

	if err := h.Media.Destroy(ctx, payload.AssetID); err != nil {
		log.Printf("HandleDestroyAssetTask: destroy %s failed: %v", payload.AssetID, err)
		return err
	}
	return nil
}
