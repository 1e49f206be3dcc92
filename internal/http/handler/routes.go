package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/service"
)

const healthTimeout = 2 * time.Second

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// runner may be nil, in which case the manual trigger is not exposed.
func RegisterRoutes(app *fiber.App, db *sql.DB, log *logging.Logger, docSvc service.DocumentService, noteSvc service.NotificationService, runner CycleRunner) {
	if log == nil {
		log = logging.Default()
	}
	log = log.With("http")

	app.Get("/health", HealthCheck(db, log))
	app.Get("/healthz", LivenessProbe())

	app.Get("/documents/:id", GetDocument(docSvc, log))
	app.Get("/employees/:id/documents", ListEmployeeDocuments(docSvc, log))
	app.Get("/employees/:id/dependency-alerts", ListDependencyAlerts(docSvc, log))

	app.Get("/notifications", ListNotifications(noteSvc, log))
	app.Patch("/notifications/:id/read", MarkNotificationRead(noteSvc, log))

	if runner != nil {
		app.Post("/notifier/run", RunNotifier(runner, log))
	}
}

// HealthCheck godoc
// @Summary Readiness probe
// @Description Checks database connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(db *sql.DB, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db == nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			logRequestError(c, log, "SERVICE_UNAVAILABLE", err)
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary Liveness probe
// @Tags health
// @Success 200
// @Router /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
