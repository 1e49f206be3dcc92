package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/service"
)

// GetDocument godoc
// @Summary Get a document with its compliance status
// @Tags documents
// @Produce json
// @Param id path string true "Document ID (UUID)"
// @Success 200 {object} model.DocumentView
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Router /documents/{id} [get]
func GetDocument(docSvc service.DocumentService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		doc, err := docSvc.Get(c.UserContext(), c.Params("id"))
		if err != nil {
			return documentError(c, log, err)
		}
		return c.JSON(doc)
	}
}

// ListEmployeeDocuments godoc
// @Summary List an employee's documents with a compliance summary
// @Tags documents
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Success 200 {object} service.EmployeeDocuments
// @Failure 400 {object} errorPayload
// @Router /employees/{id}/documents [get]
func ListEmployeeDocuments(docSvc service.DocumentService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := docSvc.ListByEmployee(c.UserContext(), c.Params("id"))
		if err != nil {
			return documentError(c, log, err)
		}
		return c.JSON(res)
	}
}

// ListDependencyAlerts godoc
// @Summary Check document dependencies for an employee
// @Tags documents
// @Produce json
// @Param id path string true "Employee ID (UUID)"
// @Success 200 {object} map[string][]model.DependencyAlert
// @Failure 400 {object} errorPayload
// @Router /employees/{id}/dependency-alerts [get]
func ListDependencyAlerts(docSvc service.DocumentService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		alerts, err := docSvc.DependencyAlerts(c.UserContext(), c.Params("id"))
		if err != nil {
			return documentError(c, log, err)
		}
		return c.JSON(fiber.Map{"data": alerts})
	}
}

func documentError(c *fiber.Ctx, log *logging.Logger, err error) error {
	switch {
	case errors.Is(err, service.ErrIDRequired), errors.Is(err, service.ErrInvalidID):
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	case errors.Is(err, service.ErrNotFound):
		return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
	default:
		return serverError(c, log, "INTERNAL_ERROR", "internal server error", err)
	}
}
