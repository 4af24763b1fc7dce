package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vhenriksson/wind-monitor/internal/store"
	"github.com/vhenriksson/wind-monitor/internal/wind"
)

var validate = validator.New()

// Trigger requests one out-of-band acquisition cycle. Implemented by
// scheduler.Scheduler.
type Trigger interface {
	TriggerNow()
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
//
// Failed acquisition cycles are not distinguishable here: consumers see the
// same "no wind data" answer whether the last cycle timed out, got a 500 or
// returned garbage. The full error taxonomy stays in the logs.
func RegisterRoutes(app *fiber.App, latest *store.LatestStore, trigger Trigger) {
	v1 := app.Group("/api/v1")

	v1.Get("/wind/current", func(c *fiber.Ctx) error {
		obs, err := latest.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNoObservation) {
				return fiber.NewError(fiber.StatusNotFound, "no wind data available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read wind data")
		}

		return c.JSON(obs)
	})

	v1.Get("/wind/summary", func(c *fiber.Ctx) error {
		var req summaryQuery
		req.bind(c)

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		obs, err := latest.Latest()
		if err != nil {
			if errors.Is(err, store.ErrNoObservation) {
				return fiber.NewError(fiber.StatusNotFound, "no wind data available")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read wind data")
		}

		return c.JSON(buildSummary(obs, req, latest.UpdatedAt()))
	})

	v1.Post("/wind/refresh", func(c *fiber.Ctx) error {
		trigger.TriggerNow()
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"status": "accepted",
		})
	})
}

// summaryQuery holds query parameters for the summary endpoint.
type summaryQuery struct {
	Direction string `validate:"oneof=compass degrees"`
	Unit      string `validate:"oneof=ms kmh mph kn"`
}

func (q *summaryQuery) bind(c *fiber.Ctx) {
	q.Direction = c.Query("direction", "compass")
	q.Unit = c.Query("unit", "ms")
}

// windSummary is the presentation view of an observation: the raw values
// plus the classified terms and the speed converted to the requested unit.
type windSummary struct {
	WindSpeed     float64              `json:"windSpeed"`
	WindDirection float64              `json:"windDirection"`
	Speed         float64              `json:"speed"`
	SpeedUnit     string               `json:"speedUnit"`
	Descriptive   wind.DescriptiveTerm `json:"descriptive"`
	Beaufort      int                  `json:"beaufort"`
	Icon          wind.IconBucket      `json:"icon"`
	Direction     string               `json:"direction"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

func buildSummary(obs wind.Observation, req summaryQuery, updatedAt time.Time) windSummary {
	speed := obs.WindSpeed
	switch req.Unit {
	case "kmh":
		speed = wind.KilometersPerHour(obs.WindSpeed)
	case "mph":
		speed = wind.MilesPerHour(obs.WindSpeed)
	case "kn":
		speed = wind.Knots(obs.WindSpeed)
	}

	mode := wind.DirectionCompass
	if req.Direction == "degrees" {
		mode = wind.DirectionDegrees
	}

	return windSummary{
		WindSpeed:     obs.WindSpeed,
		WindDirection: obs.WindDirection,
		Speed:         speed,
		SpeedUnit:     req.Unit,
		Descriptive:   wind.ClassifyDescriptive(obs.WindSpeed),
		Beaufort:      wind.ClassifyBeaufort(obs.WindSpeed),
		Icon:          wind.ClassifyIcon(obs.WindSpeed),
		Direction:     wind.ClassifyDirection(obs.WindDirection, mode),
		UpdatedAt:     updatedAt,
	}
}
