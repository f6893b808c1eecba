package v1

import (
	"net/http"
	"path/filepath"
	"staynest-backend/pkg/logger"
	"staynest-backend/pkg/storage"
	"staynest-backend/pkg/utils"
	"strings"

	"github.com/goccy/go-json"
)

var (
	allowedMimeTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/webp": true,
		"image/gif":  true,
	}
	allowedExtensions = map[string]bool{
		".jpg":  true,
		".jpeg": true,
		".png":  true,
		".webp": true,
		".gif":  true,
	}
)

// UploadHandler accepts catalog photos, normalizes them to WebP and
// stores them in object storage.
type UploadHandler struct {
	storage       *storage.R2Storage
	maxUploadSize int64
}

func NewUploadHandler(s *storage.R2Storage, maxUploadSizeMB int64) *UploadHandler {
	return &UploadHandler{
		storage:       s,
		maxUploadSize: maxUploadSizeMB << 20, // Convert MB to bytes
	}
}

func (h *UploadHandler) UploadFile(w http.ResponseWriter, r *http.Request) {
	// 1. Parse Multipart Form with configurable limit
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		logger.Warn().Err(err).Msg("Upload: ParseMultipartForm failed")
		utils.WriteError(w, http.StatusBadRequest, "File too large or invalid format")
		return
	}

	// 2. Get File
	file, header, err := r.FormFile("file")
	if err != nil {
		logger.Warn().Err(err).Msg("Upload: FormFile failed")
		utils.WriteError(w, http.StatusBadRequest, "Invalid file")
		return
	}
	defer file.Close()

	// 3. Validate MIME Type
	contentType := header.Header.Get("Content-Type")
	if !allowedMimeTypes[contentType] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file type. Allowed: JPEG, PNG, WebP, GIF")
		return
	}

	// 4. Validate File Extension
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		utils.WriteError(w, http.StatusBadRequest, "Invalid file extension")
		return
	}

	// 5. Process Image (Resize + WebP)
	processedData, newContentType, err := utils.ProcessImage(file, header.Filename)
	if err != nil {
		logger.Error().Err(err).Str("file", header.Filename).Msg("Image processing failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to process image")
		return
	}

	// 6. Upload Processed Buffer
	url, err := h.storage.UploadBuffer(r.Context(), processedData, newContentType)
	if err != nil {
		logger.Error().Err(err).Msg("Media upload failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to upload file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"url": url,
	})
}

type DeleteFileRequest struct {
	URL string `json:"url"`
}

// DeleteFile removes a previously uploaded object by its public URL.
// Used when replacing catalog media.
func (h *UploadHandler) DeleteFile(w http.ResponseWriter, r *http.Request) {
	var req DeleteFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		utils.WriteError(w, http.StatusBadRequest, "A file url is required")
		return
	}

	if err := h.storage.DeleteFile(r.Context(), req.URL); err != nil {
		logger.Error().Err(err).Str("url", req.URL).Msg("Media deletion failed")
		utils.WriteError(w, http.StatusInternalServerError, "Failed to delete file")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "File deleted",
	})
}
