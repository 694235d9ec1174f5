package handlers

import (
	"errors"
	"fmt"
	"strings"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/services"
	"github.com/facewatch/facewatch/internal/types"
)

// PersonHandler handles HTTP requests for person operations
type PersonHandler struct {
	service *services.Person
}

// NewPersonHandler creates a new person handler instance
func NewPersonHandler(service *services.Person) *PersonHandler {
	return &PersonHandler{
		service: service,
	}
}

// ListPeople handles the request to list all known people
func (h *PersonHandler) ListPeople(c *fiber.Ctx) error {
	opts := getListOptions(c)

	people, err := h.service.List(c.Context(), opts)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to list people: %v", err)))
	}
	total, err := h.service.Count(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to count people: %v", err)))
	}

	return c.JSON(types.ListResponse[models.Person]{
		Rows:       people,
		Pagination: paginationFor(opts, total),
	})
}

// GetPerson returns details of a specific person
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	personID, err := parsePersonID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(ErrMsgInvalidPersonID))
	}

	person, err := h.service.Get(c.Context(), personID)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound(ErrMsgPersonNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to get person: %v", err)))
	}

	return c.JSON(person)
}

// UpdatePersonLabel handles the request to rename a person
func (h *PersonHandler) UpdatePersonLabel(c *fiber.Ctx) error {
	personID, err := parsePersonID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(ErrMsgInvalidPersonID))
	}

	var req types.UpdateLabelRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(ErrMsgInvalidReqBody))
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(err.Error()))
	}

	person, err := h.service.Rename(c.Context(), personID, strings.TrimSpace(req.Label))
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound(ErrMsgPersonNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to rename person: %v", err)))
	}

	return c.JSON(types.Success(person))
}

// DeletePerson handles the request to delete a person and everything stored
// about them
func (h *PersonHandler) DeletePerson(c *fiber.Ctx) error {
	personID, err := parsePersonID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(ErrMsgInvalidPersonID))
	}

	if err := h.service.Delete(c.Context(), personID); err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound(ErrMsgPersonNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to delete person: %v", err)))
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ClearPeople handles the request to wipe the whole face database
func (h *PersonHandler) ClearPeople(c *fiber.Ctx) error {
	if err := h.service.DeleteAll(c.Context()); err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to clear people: %v", err)))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPersonSightings handles the request to list the sightings of a person,
// newest first
func (h *PersonHandler) GetPersonSightings(c *fiber.Ctx) error {
	personID, err := parsePersonID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(types.ErrInvalidInput(ErrMsgInvalidPersonID))
	}

	opts := getListOptions(c)
	sightings, total, err := h.service.Sightings(c.Context(), personID, opts)
	if err != nil {
		if errors.Is(err, services.ErrPersonNotFound) {
			return c.Status(fiber.StatusNotFound).
				JSON(types.ErrNotFound(ErrMsgPersonNotFound))
		}
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to list sightings: %v", err)))
	}

	return c.JSON(types.ListResponse[models.Sighting]{
		Rows:       sightings,
		Pagination: paginationFor(opts, total),
	})
}

// GetStats returns database-wide counters
func (h *PersonHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).
			JSON(types.ErrServer(fmt.Sprintf("failed to get stats: %v", err)))
	}
	return c.JSON(stats)
}

// parsePersonID extracts and validates the :id route parameter
func parsePersonID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("person id must be positive")
	}
	return uint(id), nil
}
