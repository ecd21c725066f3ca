package tasks

import (
	"context"
	"log"

	storage "vidhive/Services/Storage"
)

// CleanupAsset destroys a media asset best-effort. A failed destroy is
// handed to the task queue for retry; without a queue it is only logged.
// Callers proceed either way: the document store stays the source of truth
// and an orphaned binary is preferable to a failed request.
func CleanupAsset(ctx context.Context, media storage.Gateway, enqueuer Enqueuer, assetID string) {
	if assetID == "" {
		return
	}

	err := media.Destroy(ctx, assetID)
	if err == nil {
		return
	}
	log.Printf("CleanupAsset: inline destroy of %s failed: %v", assetID, err)

	if enqueuer == nil {
		log.Printf("CleanupAsset: no task queue configured, asset %s may be orphaned", assetID)
		return
	}

	task, err := NewDestroyAssetTask(assetID)
	if err != nil {
		log.Printf("CleanupAsset: failed to build destroy task for %s: %v", assetID, err)
		return
	}
	if _, err := enqueuer.Enqueue(task); err != nil {
		log.Printf("CleanupAsset: failed to enqueue destroy of %s: %v", assetID, err)
	}
}
