package videos

import models "vidhive/Models"

type UploadResponse struct {
	Message string        `json:"message"`
	Video   *models.Video `json:"video"`
}

type UpdateResponse struct {
	Message string        `json:"message"`
	Video   *models.Video `json:"video"`
}

type VoteRequest struct {
	VideoID string `json:"videoId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
