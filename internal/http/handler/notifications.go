package handler

import (
	"context"
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/notifier"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/service"
)

// UserIDHeader carries the caller's user id. Authentication happens upstream.
const UserIDHeader = "X-User-ID"

// CycleRunner triggers one notification cycle.
type CycleRunner interface {
	RunOnce(ctx context.Context) (notifier.CycleResult, error)
}

// ListNotifications godoc
// @Summary List the caller's notifications
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "User ID (UUID)"
// @Param unread query bool false "Only unread notifications"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} service.NotificationListResult
// @Failure 400 {object} errorPayload
// @Router /notifications [get]
func ListNotifications(noteSvc service.NotificationService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}
		unread, err := strconv.ParseBool(c.Query("unread", "false"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_UNREAD", "unread must be a boolean")
		}

		res, err := noteSvc.List(c.UserContext(), c.Get(UserIDHeader), unread, limit, offset)
		if err != nil {
			return notificationError(c, log, err)
		}
		return c.JSON(res)
	}
}

// MarkNotificationRead godoc
// @Summary Mark one of the caller's notifications as read
// @Tags notifications
// @Param X-User-ID header string true "User ID (UUID)"
// @Param id path string true "Notification ID (UUID)"
// @Success 204
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /notifications/{id}/read [patch]
func MarkNotificationRead(noteSvc service.NotificationService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := noteSvc.MarkRead(c.UserContext(), c.Get(UserIDHeader), c.Params("id")); err != nil {
			return notificationError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RunNotifier godoc
// @Summary Run one notification cycle now
// @Description Runs synchronously and returns the cycle counts.
// @Tags notifier
// @Produce json
// @Success 200 {object} notifier.CycleResult
// @Failure 409 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /notifier/run [post]
func RunNotifier(runner CycleRunner, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := runner.RunOnce(c.UserContext())
		switch {
		case err == nil:
			return c.JSON(res)
		case errors.Is(err, notifier.ErrCycleInProgress), errors.Is(err, notifier.ErrLockHeld):
			return writeError(c, fiber.StatusConflict, "CYCLE_IN_PROGRESS", "a notification cycle is already running")
		default:
			return serverError(c, log, "CYCLE_ABORTED", "notification cycle aborted", err)
		}
	}
}

func notificationError(c *fiber.Ctx, log *logging.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrUserRequired):
		return writeError(c, fiber.StatusBadRequest, "USER_REQUIRED", UserIDHeader+" header is required")
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotificationNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "notification not found")
	default:
		return serverError(c, log, "INTERNAL_ERROR", "internal server error", err)
	}
}
