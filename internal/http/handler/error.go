package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/http/middleware"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
)

// errorPayload is the body of every non-2xx response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// frameworkErrors maps statuses raised by Fiber itself (unknown route, wrong
// method, oversized body) onto the response codes clients see.
var frameworkErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:            {"BAD_REQUEST", "bad request"},
	fiber.StatusNotFound:              {"NOT_FOUND", "resource not found"},
	fiber.StatusMethodNotAllowed:      {"METHOD_NOT_ALLOWED", "method not allowed"},
	fiber.StatusRequestTimeout:        {"REQUEST_TIMEOUT", "request timed out"},
	fiber.StatusRequestEntityTooLarge: {"PAYLOAD_TOO_LARGE", "request body too large"},
}

var internalEnvelope = errorEnvelope{"INTERNAL_ERROR", "internal server error"}

func requestIDFromCtx(c *fiber.Ctx) string {
	if s, ok := c.Locals(middleware.RequestIDLocalKey).(string); ok {
		return s
	}
	return ""
}

// writeError writes the error envelope. message goes to the client verbatim,
// so it must never carry an internal error's text.
func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(errorPayload{
		RequestID: requestIDFromCtx(c),
		Error:     errorEnvelope{Code: code, Message: message},
	})
}

// serverError logs err against the request id and answers with a 500 envelope
// that hides it.
func serverError(c *fiber.Ctx, log *logging.Logger, code, message string, err error) error {
	logRequestError(c, log, code, err)
	return writeError(c, fiber.StatusInternalServerError, code, message)
}

func logRequestError(c *fiber.Ctx, log *logging.Logger, code string, err error) {
	if log == nil {
		return
	}
	log.Error("request_failed", err, map[string]any{
		"request_id": requestIDFromCtx(c),
		"method":     c.Method(),
		"path":       c.Path(),
		"code":       code,
	})
}

// ErrorHandler returns the Fiber error handler. Errors that reach it without a
// client status are logged before the generic 500 is written.
func ErrorHandler(log *logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			if env, ok := frameworkErrors[fe.Code]; ok {
				return writeError(c, fe.Code, env.Code, env.Message)
			}
			if fe.Code < fiber.StatusInternalServerError {
				return writeError(c, fe.Code, "BAD_REQUEST", "bad request")
			}
		}
		logRequestError(c, log, internalEnvelope.Code, err)
		return writeError(c, fiber.StatusInternalServerError, internalEnvelope.Code, internalEnvelope.Message)
	}
}
