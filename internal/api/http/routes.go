package httpapi

import (
	"context"
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/i474232898/weather-bot/internal/domain"
	"github.com/i474232898/weather-bot/internal/metrics"
)

var validate = validator.New()

// PreferenceReader is the read side of the preference store.
type PreferenceReader interface {
	GetPreferences(ctx context.Context, userID int64) (domain.UserPreferences, error)
}

// RegisterRoutes wires the ops handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, prefs PreferenceReader, m *metrics.Metrics) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": ServiceName,
		})
	})

	app.Get("/metrics", adaptor.HTTPHandler(m.Handler()))

	v1 := app.Group("/api/v1")

	v1.Get("/users/:id/preferences", func(c *fiber.Ctx) error {
		p, err := parseUserParam(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		record, err := prefs.GetPreferences(c.UserContext(), p.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no preferences for requested user")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch preferences")
		}

		return c.JSON(record)
	})
}

// userParam holds the path parameters identifying a user.
type userParam struct {
	ID int64 `validate:"required,gt=0"`
}

func parseUserParam(c *fiber.Ctx) (userParam, error) {
	var p userParam

	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return p, errors.New("id must be a numeric user id")
	}
	p.ID = id

	if err := validate.Struct(p); err != nil {
		return p, err
	}
	return p, nil
}
