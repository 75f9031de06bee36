package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kaanaktas/campushub/internal/app/models"
	"github.com/kaanaktas/campushub/internal/app/models/dto"
	"github.com/kaanaktas/campushub/internal/app/repositories"
	"github.com/kaanaktas/campushub/internal/middleware"
	"github.com/kaanaktas/campushub/internal/pkg/apperrors"
	"github.com/kaanaktas/campushub/internal/pkg/filestorage"
)

// UploadController handles file uploads
type UploadController struct {
	storage  *filestorage.LocalStorage
	fileRepo *repositories.FileRepository
}

// NewUploadController creates a new upload controller
func NewUploadController(storage *filestorage.LocalStorage, fileRepo *repositories.FileRepository) *UploadController {
	return &UploadController{storage: storage, fileRepo: fileRepo}
}

// Upload godoc
// @Summary Upload a file
// @Description Stores a file (max 10MB, allow-listed extensions) and returns its URL
// @Tags uploads
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=models.UploadedFile}
// @Failure 400 {object} dto.ErrorResponse
// @Router /uploads [post]
func (uc *UploadController) Upload(c *gin.Context) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrPrincipalNotFound)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("missing file field"))
		return
	}

	if fileHeader.Size > filestorage.MaxUploadSize {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("file exceeds the 10MB upload limit"))
		return
	}
	if !filestorage.AllowedExtension(fileHeader.Filename) {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("file type not allowed"))
		return
	}

	url, err := uc.storage.SaveFile(fileHeader)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	record := &models.UploadedFile{
		FileName:   fileHeader.Filename,
		FileURL:    url,
		FileSize:   fileHeader.Size,
		FileType:   fileHeader.Header.Get("Content-Type"),
		UploadedBy: user.ID,
	}
	if err := uc.fileRepo.Create(c.Request.Context(), record); err != nil {
		// Roll the stored file back so the disk doesn't accumulate orphans
		_ = uc.storage.DeleteFile(url)
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.Success(record))
}
