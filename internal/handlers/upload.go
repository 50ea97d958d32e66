package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"emkaan/api/internal/service"
)

func (h HandlerSet) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Please upload a file")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(c.Request.Context(), file, header)
	if err != nil {
		var rejected *service.UploadRejectedError
		switch {
		case errors.Is(err, service.ErrFileTooLarge), errors.Is(err, service.ErrNotAnImage):
			respondError(c, http.StatusBadRequest, err.Error())
		case errors.As(err, &rejected):
			respondError(c, http.StatusBadRequest, rejected.Error())
		default:
			h.log.Error().Err(err).Msg("upload failed")
			respondError(c, http.StatusInternalServerError, "Server Error")
		}
		return
	}

	respondMessage(c, http.StatusOK, "File uploaded successfully", gin.H{"url": url})
}
