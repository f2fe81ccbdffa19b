package controllers

import (
	"encoding/json"
	"net/http"

	"cozyconnect_server/apperror"
	"cozyconnect_server/services"
	"cozyconnect_server/utils"
)

// uploads are profile pictures; anything bigger is rejected outright
const maxUploadBytes = 10 << 20

// UploadController stores profile pictures through the S3 service.
type UploadController struct {
	S3Service *services.S3Service
}

// NewUploadController initializes the controller
func NewUploadController(s3Service *services.S3Service) *UploadController {
	return &UploadController{S3Service: s3Service}
}

// HandleUpload - POST /api/upload accepts a multipart file and
// returns its public URL and object key.
func (c *UploadController) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid multipart payload", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("no file provided", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	url, key, err := c.S3Service.UploadImage(r.Context(), header.Filename, contentType, file)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"url":     url,
		"key":     key,
	})
}

// HandleGeneratePresignedURL - POST /api/generate-presigned-url
func (c *UploadController) HandleGeneratePresignedURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		FileName string `json:"fileName"`
		FileType string `json:"fileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request payload", err))
		return
	}
	if payload.FileName == "" || payload.FileType == "" {
		utils.WriteError(w, apperror.NewInvalidInput("missing required fields", nil))
		return
	}

	url, key, err := c.S3Service.GenerateUploadURL(r.Context(), payload.FileName, payload.FileType)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url, "fileName": key})
}

// HandleGetPresignedReadURL - POST /api/get-presigned-read-url
func (c *UploadController) HandleGetPresignedReadURL(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Key string `json:"key"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil || payload.Key == "" {
		utils.WriteError(w, apperror.NewInvalidInput("invalid request payload", err))
		return
	}

	url, err := c.S3Service.GenerateReadURL(r.Context(), payload.Key)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"url": url})
}
