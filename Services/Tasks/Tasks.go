package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// TypeDestroyAsset retries a media-gateway destroy that failed inline. The
// persisted record is the source of truth; orphaned binaries are cleaned up
// here rather than blocking the request that dropped the reference.
const TypeDestroyAsset = "asset:destroy"

type DestroyAssetPayload struct {
	AssetID string
}

func NewDestroyAssetTask(assetID string) (*asynq.Task, error) {
	payload, err := json.Marshal(DestroyAssetPayload{AssetID: assetID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDestroyAsset, payload, asynq.MaxRetry(10)), nil
}

// Enqueuer is the interface for enqueuing tasks. It's implemented by
// asynq.Client, and can be mocked for testing.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}
