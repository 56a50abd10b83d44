package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"fieldserv/internal/model"
	"fieldserv/internal/service"
)

// PhotoHandler handles photo attachment endpoints.
type PhotoHandler struct {
	photoService service.PhotoService
}

// NewPhotoHandler creates a new photo handler.
func NewPhotoHandler(photoService service.PhotoService) *PhotoHandler {
	return &PhotoHandler{photoService: photoService}
}

// AttachPhotos godoc
// @Summary Attach one or more photos to a record
// @Tags photos
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Param phase formData string true "BEFORE or AFTER"
// @Param files formData file true "Photo files"
// @Success 201 {array} model.Photo
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 422 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /records/{id}/photos [post]
func (h *PhotoHandler) AttachPhotos(c echo.Context) error {
	recordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return validationError("record id must be an integer")
	}

	phase := model.PhotoPhase(strings.ToUpper(c.FormValue("phase")))

	form, err := c.MultipartForm()
	if err != nil {
		return validationError("expected multipart form data")
	}
	headers := form.File["files"]

	uploads := make([]service.Upload, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return validationError("unreadable file " + fh.Filename)
		}
		defer f.Close()
		uploads = append(uploads, service.Upload{
			Filename: fh.Filename,
			Size:     fh.Size,
			Content:  f,
		})
	}

	photos, err := h.photoService.AttachPhotos(c.Request().Context(), uint(recordID), phase, uploads)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusCreated, photos)
}

// ListPhotos godoc
// @Summary List photos attached to a record
// @Tags photos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Record ID"
// @Success 200 {array} model.Photo
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /records/{id}/photos [get]
func (h *PhotoHandler) ListPhotos(c echo.Context) error {
	recordID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return validationError("record id must be an integer")
	}

	photos, err := h.photoService.ListPhotos(c.Request().Context(), uint(recordID))
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, photos)
}
