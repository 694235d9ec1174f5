package handlers

import (
	fiber "github.com/gofiber/fiber/v2"

	"github.com/facewatch/facewatch/internal/db/models"
	"github.com/facewatch/facewatch/internal/types"
)

const (
	// DefaultPageSize is the default number of items per page
	DefaultPageSize = models.DefaultLimit
	// MaxPageSize is the maximum allowed page size
	MaxPageSize = 1000
)

// getListOptions builds ListOptions from the list query parameters, clamping
// out-of-range limit and offset values
func getListOptions(c *fiber.Ctx) *models.ListOptions {
	limit := c.QueryInt("limit", DefaultPageSize)
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	offset := c.QueryInt("offset", 0)
	if offset < 0 {
		offset = 0
	}

	return &models.ListOptions{
		Limit:          limit,
		Offset:         offset,
		IncludeDeleted: c.QueryBool("include_deleted", false),
	}
}

// paginationFor derives the pagination block for a list response
func paginationFor(opts *models.ListOptions, total int64) types.PaginationResponse {
	page := 1
	if opts.Limit > 0 {
		page = opts.Offset/opts.Limit + 1
	}
	return types.PaginationResponse{
		Total:  int(total),
		Page:   page,
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
}
