package httpapi

import (
	"bytes"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/weather-report/internal/report"
	"github.com/i474232898/weather-report/internal/source"
	"github.com/i474232898/weather-report/internal/store"
	"github.com/i474232898/weather-report/internal/weather"
)

var validate = validator.New()

// uploadSource names reports rendered from request bodies.
const uploadSource = "upload"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *report.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/summary", func(c *fiber.Ctx) error {
		records, err := bindRecords(c)
		if err != nil {
			return err
		}

		summary, err := weather.GenerateSummary(records)
		if err != nil {
			return toHTTPError(err)
		}
		return sendText(c, summary)
	})

	v1.Post("/summary/daily", func(c *fiber.Ctx) error {
		records, err := bindRecords(c)
		if err != nil {
			return err
		}

		daily, err := weather.GenerateDailySummary(records)
		if err != nil {
			return toHTTPError(err)
		}
		return sendText(c, daily)
	})

	v1.Post("/summary/csv", func(c *fiber.Ctx) error {
		records, err := source.ParseCSV(bytes.NewReader(c.Body()))
		if err != nil {
			return toHTTPError(err)
		}

		r, err := report.Render(uploadSource, records, time.Now().UTC())
		if err != nil {
			return toHTTPError(err)
		}
		return sendText(c, r.Text())
	})

	v1.Get("/reports/latest", func(c *fiber.Ctx) error {
		q, err := parseReportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		r, err := service.Latest(q.Source)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(r)
	})

	v1.Get("/reports", func(c *fiber.Ctx) error {
		q, err := parseReportQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		reports, err := service.History(q.Source)
		if err != nil {
			return toHTTPError(err)
		}
		return c.JSON(fiber.Map{
			"source":  q.Source,
			"reports": reports,
		})
	})
}

// RegisterMetrics exposes the Prometheus registry at /metrics.
func RegisterMetrics(app *fiber.App, gatherer prometheus.Gatherer) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
}

// ErrorHandler renders every error as a JSON body with the matching status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toHTTPError maps domain errors onto HTTP status codes.
func toHTTPError(err error) error {
	switch {
	case errors.Is(err, weather.ErrEmptyInput):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, weather.ErrInvalidDate), errors.Is(err, weather.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no report for requested source")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to render report")
	}
}

func sendText(c *fiber.Ctx, s string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(s)
}

// recordRequest is one day of observations in a JSON request body.
// Pointers let a reading of 0°F pass the required check.
type recordRequest struct {
	Date string `json:"date" validate:"required"`
	Low  *int   `json:"low" validate:"required"`
	High *int   `json:"high" validate:"required"`
}

// summaryRequest is the JSON body accepted by the summary endpoints.
type summaryRequest struct {
	Records []recordRequest `json:"records" validate:"dive"`
}

func (r summaryRequest) toRecords() []weather.WeatherRecord {
	out := make([]weather.WeatherRecord, 0, len(r.Records))
	for _, rec := range r.Records {
		out = append(out, weather.WeatherRecord{
			Date:  rec.Date,
			LowF:  *rec.Low,
			HighF: *rec.High,
		})
	}
	return out
}

func bindRecords(c *fiber.Ctx) ([]weather.WeatherRecord, error) {
	var req summaryRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "invalid request body: "+err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return req.toRecords(), nil
}

// reportQuery holds query parameters for the report endpoints.
type reportQuery struct {
	Source string `validate:"required"`
}

func parseReportQuery(c *fiber.Ctx) (reportQuery, error) {
	q := reportQuery{Source: c.Query("source")}
	if err := validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}
