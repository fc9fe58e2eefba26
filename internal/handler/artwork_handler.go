package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/podhaven/podhaven-backend/internal/common"
	"github.com/podhaven/podhaven-backend/internal/domain"
	"github.com/podhaven/podhaven-backend/internal/service"
	pkgstorage "github.com/podhaven/podhaven-backend/pkg/storage"
)

const maxArtworkSize = 5 << 20 // 5 MiB

// ArtworkHandler uploads podcast artwork to S3-compatible storage
type ArtworkHandler struct {
	podcastService service.PodcastService
	storage        *pkgstorage.S3Client // nil when storage is disabled
}

// NewArtworkHandler creates a new ArtworkHandler
func NewArtworkHandler(podcastService service.PodcastService, storage *pkgstorage.S3Client) *ArtworkHandler {
	return &ArtworkHandler{podcastService: podcastService, storage: storage}
}

// Upload handles POST /podcasts/:id/artwork
// @Summary Upload podcast artwork
// @Tags podcasts
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Podcast ID"
// @Param file formData file true "Image file"
// @Success 200 {object} common.APIResponse{data=domain.Podcast}
// @Security BearerAuth
// @Router /podcasts/{id}/artwork [post]
func (h *ArtworkHandler) Upload(c *gin.Context) {
	if h.storage == nil {
		common.ErrorResponse(c, http.StatusServiceUnavailable, "Artwork storage is not configured", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "An image file must be provided", err)
		return
	}
	if fileHeader.Size > maxArtworkSize {
		common.ErrorResponse(c, http.StatusBadRequest, "Image exceeds the 5MB limit", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		common.ErrorResponse(c, http.StatusBadRequest, "Only image uploads are accepted", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to read upload", err)
		return
	}
	defer file.Close()

	key := pkgstorage.GenerateKey("artwork", fileHeader.Filename)
	result, err := h.storage.Upload(c.Request.Context(), key, file, contentType, fileHeader.Size)
	if err != nil {
		common.ErrorResponse(c, http.StatusInternalServerError, "Artwork upload failed", err)
		return
	}

	imageURL := result.URL
	if result.CDNURL != "" {
		imageURL = result.CDNURL
	}

	podcast, err := h.podcastService.Update(c.Request.Context(), c.Param("id"), &domain.UpdatePodcastRequest{
		ImageURL: &imageURL,
	})
	if err != nil {
		if errors.Is(err, common.ErrPodcastNotFound) {
			common.ErrorResponse(c, http.StatusNotFound, "Podcast not found", err)
			return
		}
		common.ErrorResponse(c, http.StatusInternalServerError, "Failed to save artwork URL", err)
		return
	}

	common.SuccessResponse(c, podcast, nil)
}
