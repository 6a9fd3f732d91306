package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/davez1000/dbo-stats/internal/model"
	"github.com/davez1000/dbo-stats/internal/service"
)

type StatsController interface {
	GetStats(c *fiber.Ctx) error
	GetContentStats(c *fiber.Ctx) error
	GetRoles(c *fiber.Ctx) error
}

// statsController exposes HTTP handlers for the stats query endpoints.
type statsController struct {
	statsService service.StatsService
	log          zerolog.Logger
}

// NewStatsController builds a StatsController.
func NewStatsController(svc service.StatsService, log zerolog.Logger) StatsController {
	return &statsController{statsService: svc, log: log}
}

// GetStats serves the parameterized query endpoint. Storage failure
// detail is logged server-side only; clients get a bare error marker.
func (h *statsController) GetStats(c *fiber.Ctx) error {
	q := buildStatsQuery(c)

	data, err := h.statsService.GetStats(c.Context(), q)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": vErr.Message,
				"error":   true,
			})
		}
		h.log.Warn().Err(err).Str("type", q.Type).Msg("stats query failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true})
	}

	return c.JSON(data)
}

// GetContentStats serves the legacy content endpoint, which wraps every
// response body in a data/method envelope.
func (h *statsController) GetContentStats(c *fiber.Ctx) error {
	q := buildStatsQuery(c)

	data, err := h.statsService.GetContentStats(c.Context(), q)
	if err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"data":   fiber.Map{"message": vErr.Message, "error": true},
				"method": fiber.MethodGet,
			})
		}
		h.log.Warn().Err(err).Str("type", q.Type).Msg("content stats query failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"data":   fiber.Map{"error": true},
			"method": fiber.MethodGet,
		})
	}

	return c.JSON(fiber.Map{
		"data":   data,
		"method": fiber.MethodGet,
	})
}

// GetRoles returns the non-excluded role directory.
func (h *statsController) GetRoles(c *fiber.Ctx) error {
	rs, err := h.statsService.GetRoles(c.Context())
	if err != nil {
		h.log.Warn().Err(err).Msg("role listing failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": true})
	}
	return c.JSON(fiber.Map{"data": rs})
}

func buildStatsQuery(c *fiber.Ctx) model.StatsQuery {
	// Absent or malformed limit stays 0 and falls back to the per-endpoint
	// default downstream.
	limit, _ := strconv.Atoi(c.Params("limit"))

	return model.StatsQuery{
		Type:  c.Params("type"),
		Date:  c.Params("date"),
		Role:  c.Params("role"),
		Limit: limit,
		Sort:  c.Params("sort"),
	}
}
