package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/fixpoint-labs/repair-shop-service/internal/api/dto"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
	"github.com/fixpoint-labs/repair-shop-service/internal/service"
	apperrors "github.com/fixpoint-labs/repair-shop-service/pkg/util"
)

// PhotosHandler manages ticket photo uploads.
type PhotosHandler struct {
	photos *service.PhotoService
}

// NewPhotosHandler constructs handler.
func NewPhotosHandler(photos *service.PhotoService) *PhotosHandler {
	return &PhotosHandler{photos: photos}
}

// Upload POST /tickets/:id/photos. The photo type travels as a form field
// next to the file.
func (h *PhotosHandler) Upload(c *fiber.Ctx) error {
	photoType := domain.PhotoType(c.FormValue("type", string(domain.PhotoTypeInitial)))

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return apperrors.NewValidationError("file required", nil)
	}
	data, err := readUploadedFile(c, "file")
	if err != nil {
		return err
	}

	photo, err := h.photos.AttachPhoto(c.UserContext(), c.Params("id"), photoType, fileHeader.Filename, data)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.PhotoResponse{
		ID:        photo.ID,
		Type:      photo.Type,
		URL:       photo.URL,
		CreatedAt: photo.CreatedAt,
	}})
}

// List GET /tickets/:id/photos.
func (h *PhotosHandler) List(c *fiber.Ctx) error {
	photos, err := h.photos.ListPhotos(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.PhotoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, dto.PhotoResponse{
			ID:        photo.ID,
			Type:      photo.Type,
			URL:       photo.URL,
			CreatedAt: photo.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Delete DELETE /photos/:id.
func (h *PhotosHandler) Delete(c *fiber.Ctx) error {
	if err := h.photos.RemovePhoto(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
