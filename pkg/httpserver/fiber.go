package httpserver

import (
	"time"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"city-weather/pkg/logger"
)

type Options struct {
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// Ready backs the readiness probe; nil means always ready.
	Ready func(c *fiber.Ctx) bool
}

func InitFiberServer(opts Options, l *logger.Logger) *fiber.App {
	s := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		JSONEncoder:           json.Marshal,
		JSONDecoder:           json.Unmarshal,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		UnescapePath:          true,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(l),
	})

	s.Use(recover.New(recover.Config{
		EnableStackTrace: true,
	}))
	s.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	s.Use(RequestLogger(l))
	s.Use(cors.New())

	health := healthcheck.Config{
		LivenessEndpoint:  "/manage/health",
		ReadinessEndpoint: "/manage/ready",
	}
	if opts.Ready != nil {
		health.ReadinessProbe = opts.Ready
	}
	s.Use(healthcheck.New(health))

	return s
}

// RequestLogger logs one line per request.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		l.Info("http request", map[string]any{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		})

		return err
	}
}

// errorHandler answers errors that escaped the handlers with the API's failure envelope.
func errorHandler(l *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"
		if fe, ok := err.(*fiber.Error); ok {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			l.Error(err, map[string]any{"path": c.Path(), "method": c.Method()})
		}

		return c.Status(code).JSON(fiber.Map{
			"result": false,
			"error":  message,
		})
	}
}
