package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/shinuoyan888/HuXuYan/internal/planner"
	"github.com/shinuoyan888/HuXuYan/internal/planner/backend"
	"github.com/shinuoyan888/HuXuYan/internal/session"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *planner.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		sess := service.CreateSession()
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"session_id": sess.ID(),
		})
	})

	v1.Get("/sessions/:id", func(c *fiber.Ctx) error {
		vm, err := service.View(c.Params("id"))
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(vm)
	})

	v1.Post("/sessions/:id/search", func(c *fiber.Ctx) error {
		var req searchBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		vm, err := service.Search(c.Context(), c.Params("id"), req.toSearchRequest())
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(vm)
	})

	v1.Post("/sessions/:id/selection", func(c *fiber.Ctx) error {
		var req selectionBody
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		vm, err := service.SelectRoute(c.Params("id"), req.RouteID)
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(vm)
	})

	v1.Delete("/sessions/:id/results", func(c *fiber.Ctx) error {
		vm, err := service.ClearResults(c.Params("id"))
		if err != nil {
			return mapServiceError(err)
		}
		return c.JSON(vm)
	})

	v1.Delete("/sessions/:id", func(c *fiber.Ctx) error {
		service.CloseSession(c.Params("id"))
		return c.SendStatus(fiber.StatusNoContent)
	})
}

// searchBody is the JSON body for the search endpoint. Coordinates are passed
// through as-is; the backend owns their semantics. Preferences defaults to
// "balanced" when omitted.
type searchBody struct {
	Origin      planner.Coordinate `json:"origin"`
	Destination planner.Coordinate `json:"destination"`
	Preferences string             `json:"preferences" validate:"omitempty,oneof=safety_first shortest balanced"`
}

func (b searchBody) toSearchRequest() planner.SearchRequest {
	prefs := planner.Preference(b.Preferences)
	if prefs == "" {
		prefs = planner.PreferenceBalanced
	}
	return planner.SearchRequest{
		Origin:      b.Origin,
		Destination: b.Destination,
		Preferences: prefs,
	}
}

// selectionBody is the JSON body for the selection endpoint.
type selectionBody struct {
	RouteID string `json:"route_id" validate:"required"`
}

// mapServiceError translates planner errors into HTTP responses. Backend
// error messages pass through verbatim.
func mapServiceError(err error) error {
	var statusErr *backend.StatusError
	switch {
	case errors.Is(err, session.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "unknown planner session")
	case errors.As(err, &statusErr):
		return fiber.NewError(fiber.StatusBadGateway, statusErr.Message)
	case errors.Is(err, backend.ErrUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "route search failed")
	}
}
