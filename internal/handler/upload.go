package handler

import (
	"net/http"

	"github.com/osse101/Mivy_Go/internal/logger"
	"github.com/osse101/Mivy_Go/internal/storage"
)

// UploadHandlers proxy content to the storage gateway
type UploadHandlers struct {
	uploader storage.Uploader
}

// NewUploadHandlers creates upload handlers
func NewUploadHandlers(uploader storage.Uploader) *UploadHandlers {
	return &UploadHandlers{uploader: uploader}
}

// UploadRequest is markdown content to store
type UploadRequest struct {
	Content string `json:"content"`
	Title   string `json:"title,omitempty" validate:"max=200"`
}

// HandleUpload stores markdown content and returns its content ids
// @Summary Upload content
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body UploadRequest true "Markdown content"
// @Success 201 {object} DataResponse{data=storage.UploadResult}
// @Failure 400 {object} ErrorResponse "No content provided"
// @Failure 502 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Security ApiKeyAuth
// @Security BearerAuth
// @Router /api/v1/uploads [post]
func (h *UploadHandlers) HandleUpload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UploadRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Upload"); err != nil {
			return
		}

		res, err := h.uploader.Upload(r.Context(), storage.UploadInput{Content: req.Content, Title: req.Title})
		if err != nil {
			respondServiceError(w, r, ErrMsgUploadFailed, err)
			return
		}

		logger.FromContext(r.Context()).Info("Content uploaded", "cid", res.CID, "size", res.Size)
		respondJSON(w, http.StatusCreated, DataResponse{Message: MsgUploadComplete, Data: res})
	}
}
