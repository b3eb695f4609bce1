// media.go implements the image upload endpoint. Files land in the configured
// storage backend; the returned path and size are what the content create
// endpoints expect in image_path / image_size_bytes.
package admin

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/churchsite/church-backend/internal/storage"
)

// allowedImageExtensions are the upload types the site serves.
var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// maxUploadSize caps a single image upload at 10 MiB.
const maxUploadSize = 10 << 20

// MediaHandlers handles image uploads
type MediaHandlers struct {
	storage storage.Storage
	baseURL string
}

// NewMediaHandlers creates a new MediaHandlers instance
func NewMediaHandlers(backend storage.Storage, baseURL string) *MediaHandlers {
	return &MediaHandlers{
		storage: backend,
		baseURL: baseURL,
	}
}

// @Summary      Upload image
// @Description  Upload an image file (jpg, png, gif, webp; max 10 MiB). The returned path is passed as image_path when creating content.
// @Tags         Media
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file    formData  file    true   "Image file"
// @Param        folder  formData  string  false  "Target folder, e.g. sermons (default uploads)"
// @Success      201  {object}  map[string]interface{}  "path, url, size, checksum"
// @Failure      400  {object}  map[string]interface{}  "Missing file or unsupported type"
// @Router       /api/v1/admin/media [post]
// UploadImage stores an uploaded image file
// POST /api/v1/admin/media
func (h *MediaHandlers) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing file field",
		})
		return
	}

	if fileHeader.Size > maxUploadSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "File exceeds the 10 MiB upload limit",
		})
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !allowedImageExtensions[ext] {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unsupported file type %q: allowed types are jpg, jpeg, png, gif, webp", ext),
		})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "uploads"
	}
	// The folder becomes part of a storage path; keep it a single flat
	// segment so clients cannot traverse outside the media root.
	folder = strings.Trim(filepath.ToSlash(filepath.Clean(folder)), "/")
	if folder == "" || folder == "." || strings.Contains(folder, "/") || strings.Contains(folder, "..") {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid folder name",
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to read uploaded file",
		})
		return
	}
	defer file.Close()

	path := fmt.Sprintf("%s/%s%s", folder, uuid.New().String(), ext)

	result, err := h.storage.Upload(c.Request.Context(), path, file, fileHeader.Size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store file",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path":     result.Path,
		"url":      fmt.Sprintf("%s/media/%s", h.baseURL, result.Path),
		"size":     result.Size,
		"checksum": result.Checksum,
	})
}
