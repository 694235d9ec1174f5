package handlers

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	fiber "github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/db/repos"
	"github.com/facewatch/facewatch/internal/face"
	"github.com/facewatch/facewatch/internal/media"
	"github.com/facewatch/facewatch/internal/services"
	"github.com/facewatch/facewatch/internal/types"
)

// RecognitionHandler handles HTTP requests for face recognition
type RecognitionHandler struct {
	service *services.Recognition
}

// NewRecognitionHandler creates a new recognition handler instance
func NewRecognitionHandler(service *services.Recognition) *RecognitionHandler {
	return &RecognitionHandler{
		service: service,
	}
}

// CreateRecognition accepts a multipart upload under the "image" field and
// runs recognition on it
func (h *RecognitionHandler) CreateRecognition(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(ErrMsgImageRequired))
	}
	if fileHeader.Size > media.DefaultMaxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).
			JSON(types.ErrInvalidInput(fmt.Sprintf("image exceeds the %d byte limit", media.DefaultMaxImageBytes)))
	}

	path := filepath.Join(os.TempDir(), uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := c.SaveFile(fileHeader, path); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to save uploaded image: %v", err)))
	}
	defer func() { _ = os.Remove(path) }()

	if err := media.ValidateJPEG(path); err != nil {
		return c.Status(fiber.StatusUnsupportedMediaType).
			JSON(types.ErrInvalidInput(ErrMsgUnsupportedFile))
	}

	recognition, err := h.service.RecognizeFile(c.Context(), path, models.SourceAPI, 0)
	if err != nil {
		switch {
		case errors.Is(err, face.ErrNoFace):
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(types.ErrInvalidInput(ErrMsgNoFace))
		case errors.Is(err, face.ErrMultipleFaces):
			return c.Status(fiber.StatusUnprocessableEntity).
				JSON(types.ErrInvalidInput(ErrMsgMultipleFaces))
		case errors.Is(err, repos.ErrDuplicateVector):
			return c.Status(fiber.StatusConflict).
				JSON(types.ErrInvalidInput(ErrMsgDuplicateFace))
		default:
			return c.Status(fiber.StatusInternalServerError).
				JSON(types.ErrServer(fmt.Sprintf("recognition failed: %v", err)))
		}
	}

	return c.JSON(recognition)
}
