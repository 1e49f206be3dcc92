package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/compliance"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/http/middleware"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/logging"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/model"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/notifier"
	"github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/service"
	serviceMocks "github.com/kumar-gautam24/Manpower-Management-System-sub001/internal/service/mocks"
)

type stubRunner struct {
	res notifier.CycleResult
	err error
}

func (r stubRunner) RunOnce(context.Context) (notifier.CycleResult, error) {
	return r.res, r.err
}

var quietLog = logging.New(io.Discard, time.UTC)

// bufferLog returns a logger whose lines can be inspected after the request.
func bufferLog() (*logging.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return logging.New(&buf, time.UTC), &buf
}

// loggedLines decodes every JSON line written to buf.
func loggedLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		out = append(out, entry)
	}
	return out
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	log, logs := bufferLog()
	app := fiber.New()
	app.Get("/health", HealthCheck(db, log))

	t.Run("healthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(nil)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		dbMock.ExpectPing().WillReturnError(errors.New("db error"))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
		assert.Contains(t, logs.String(), "db error")
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	log, logs := bufferLog()
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/documents/:id", GetDocument(mockSvc, log))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		days := 12
		view := &model.DocumentView{
			Document: model.Document{ID: id, DocumentType: "visa"},
			Computed: model.Computed{
				Status:        model.StatusExpiringSoon,
				EstimatedFine: decimal.Zero,
				DaysRemaining: &days,
			},
		}
		mockSvc.On("Get", mock.Anything, id).Return(view, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, id, result["id"])
		bundle, ok := result["compliance"].(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "expiring_soon", bundle["status"])
		assert.Equal(t, float64(12), bundle["days_remaining"])
		assert.Nil(t, bundle["grace_days_remaining"])
		assert.Nil(t, bundle["days_in_penalty"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		assert.Equal(t, "rid-1", body.RequestID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, "invalid-uuid").Return(nil, service.ErrInvalidID).Once()

		req := httptest.NewRequest(http.MethodGet, "/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, errors.New("db error")).Once()
		logs.Reset()

		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-500")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "internal server error", body.Error.Message)
		assert.NotContains(t, body.Error.Message, "db error")

		lines := loggedLines(t, logs)
		require.Len(t, lines, 1)
		assert.Equal(t, "request_failed", lines[0]["event"])
		assert.Equal(t, "error", lines[0]["level"])
		assert.Equal(t, "db error", lines[0]["error_message"])
		assert.Equal(t, "rid-500", lines[0]["request_id"])
		assert.Equal(t, "/documents/"+id, lines[0]["path"])
		assert.Equal(t, "INTERNAL_ERROR", lines[0]["code"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("client errors are not logged", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrNotFound).Once()
		logs.Reset()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/documents/"+id, nil))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Empty(t, logs.String())
	})
}

func TestListEmployeeDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/employees/:id/documents", ListEmployeeDocuments(mockSvc, quietLog))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		res := &service.EmployeeDocuments{
			Items: []model.DocumentView{{Document: model.Document{ID: "d1"}}},
			Summary: compliance.Summarize([]model.Computed{
				{Status: model.StatusPenaltyActive, EstimatedFine: decimal.NewFromInt(250)},
			}),
		}
		mockSvc.On("ListByEmployee", mock.Anything, id).Return(res, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/employees/"+id+"/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var body struct {
			Data    []map[string]any `json:"data"`
			Summary struct {
				Total      int            `json:"total"`
				ByStatus   map[string]int `json:"by_status"`
				TotalFines string         `json:"total_fines"`
			} `json:"summary"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Len(t, body.Data, 1)
		assert.Equal(t, 1, body.Summary.Total)
		assert.Equal(t, 1, body.Summary.ByStatus["penalty_active"])
		assert.Equal(t, "250", body.Summary.TotalFines)
		mockSvc.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("ListByEmployee", mock.Anything, id).Return(nil, errors.New("db error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/employees/"+id+"/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestListDependencyAlerts(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/employees/:id/dependency-alerts", ListDependencyAlerts(mockSvc, quietLog))

	id := uuid.New().String()
	mockSvc.On("DependencyAlerts", mock.Anything, id).Return([]model.DependencyAlert{
		{BlockingType: "passport", BlockedType: "visa", Severity: model.SeverityCritical},
	}, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/employees/"+id+"/dependency-alerts", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Data []model.DependencyAlert `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, model.SeverityCritical, body.Data[0].Severity)
	mockSvc.AssertExpectations(t)
}

func TestListNotifications(t *testing.T) {
	mockSvc := new(serviceMocks.MockNotificationService)
	app := fiber.New()
	app.Get("/notifications", ListNotifications(mockSvc, quietLog))
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, userID, true, 5, 10).Return(&service.NotificationListResult{
			Items: []model.Notification{{ID: "n1", Category: model.CategoryPenalty}},
			Total: 1,
		}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/notifications?unread=true&limit=5&offset=10", nil)
		req.Header.Set(UserIDHeader, userID)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result service.NotificationListResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
		assert.Equal(t, 1, result.Total)
		assert.Equal(t, model.CategoryPenalty, result.Items[0].Category)
		mockSvc.AssertExpectations(t)
	})

	t.Run("defaults", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, userID, false, 20, 0).Return(&service.NotificationListResult{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		req.Header.Set(UserIDHeader, userID)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid query", func(t *testing.T) {
		for query, code := range map[string]string{
			"limit=abc":  "INVALID_LIMIT",
			"offset=x":   "INVALID_OFFSET",
			"unread=nah": "INVALID_UNREAD",
		} {
			req := httptest.NewRequest(http.MethodGet, "/notifications?"+query, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, query)
			assert.Equal(t, code, decodeError(t, resp).Error.Code, query)
		}
	})

	t.Run("missing user", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, "", false, 20, 0).Return(nil, service.ErrUserRequired).Once()

		req := httptest.NewRequest(http.MethodGet, "/notifications", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "USER_REQUIRED", decodeError(t, resp).Error.Code)
	})
}

func TestMarkNotificationRead(t *testing.T) {
	mockSvc := new(serviceMocks.MockNotificationService)
	log, logs := bufferLog()
	app := fiber.New()
	app.Patch("/notifications/:id/read", MarkNotificationRead(mockSvc, log))
	userID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("MarkRead", mock.Anything, userID, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id+"/read", nil)
		req.Header.Set(UserIDHeader, userID)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("MarkRead", mock.Anything, userID, id).Return(service.ErrNotificationNotFound).Once()

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id+"/read", nil)
		req.Header.Set(UserIDHeader, userID)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("store failure is logged", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("MarkRead", mock.Anything, userID, id).Return(errors.New("connection reset")).Once()

		req := httptest.NewRequest(http.MethodPatch, "/notifications/"+id+"/read", nil)
		req.Header.Set(UserIDHeader, userID)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
		assert.Contains(t, logs.String(), "connection reset")
	})
}

func TestRunNotifier(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		app := fiber.New()
		app.Post("/notifier/run", RunNotifier(stubRunner{res: notifier.CycleResult{Scanned: 4, Inserted: 3, Skipped: 1}}, quietLog))

		req := httptest.NewRequest(http.MethodPost, "/notifier/run", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var res notifier.CycleResult
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
		assert.Equal(t, 4, res.Scanned)
		assert.Equal(t, 3, res.Inserted)
	})

	t.Run("already running", func(t *testing.T) {
		app := fiber.New()
		app.Post("/notifier/run", RunNotifier(stubRunner{err: notifier.ErrCycleInProgress}, quietLog))

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/notifier/run", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CYCLE_IN_PROGRESS", decodeError(t, resp).Error.Code)
	})

	t.Run("aborted", func(t *testing.T) {
		log, logs := bufferLog()
		app := fiber.New()
		app.Use(middleware.RequestID())
		app.Post("/notifier/run", RunNotifier(stubRunner{err: errors.New("query candidates: boom")}, log))

		req := httptest.NewRequest(http.MethodPost, "/notifier/run", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-run")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "CYCLE_ABORTED", decodeError(t, resp).Error.Code)

		lines := loggedLines(t, logs)
		require.Len(t, lines, 1)
		assert.Equal(t, "query candidates: boom", lines[0]["error_message"])
		assert.Equal(t, "rid-run", lines[0]["request_id"])
		assert.Equal(t, "CYCLE_ABORTED", lines[0]["code"])
	})

	t.Run("lock held elsewhere", func(t *testing.T) {
		log, logs := bufferLog()
		app := fiber.New()
		app.Post("/notifier/run", RunNotifier(stubRunner{err: notifier.ErrLockHeld}, log))

		resp, _ := app.Test(httptest.NewRequest(http.MethodPost, "/notifier/run", nil))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Empty(t, logs.String())
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(quietLog),
	})

	RegisterRoutes(app, nil, quietLog, new(serviceMocks.MockDocumentService), new(serviceMocks.MockNotificationService), nil)

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		assert.Equal(t, "METHOD_NOT_ALLOWED", decodeError(t, resp).Error.Code)
	})

	t.Run("manual trigger absent without runner", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/notifier/run", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("health without db is unavailable", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestErrorHandler(t *testing.T) {
	log, logs := bufferLog()
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(log)})
	app.Use(middleware.RequestID())
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("nil map write") })
	app.Get("/large", func(c *fiber.Ctx) error { return fiber.ErrRequestEntityTooLarge })
	app.Get("/teapot", func(c *fiber.Ctx) error { return fiber.ErrTeapot })

	t.Run("unhandled error is logged and hidden", func(t *testing.T) {
		logs.Reset()
		req := httptest.NewRequest(http.MethodGet, "/boom", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-boom")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
		assert.Equal(t, "rid-boom", body.RequestID)

		lines := loggedLines(t, logs)
		require.Len(t, lines, 1)
		assert.Equal(t, "nil map write", lines[0]["error_message"])
		assert.Equal(t, "rid-boom", lines[0]["request_id"])
	})

	t.Run("known framework status keeps its code", func(t *testing.T) {
		logs.Reset()
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/large", nil))

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		assert.Equal(t, "PAYLOAD_TOO_LARGE", decodeError(t, resp).Error.Code)
		assert.Empty(t, logs.String())
	})

	t.Run("other client status passes through", func(t *testing.T) {
		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/teapot", nil))

		assert.Equal(t, http.StatusTeapot, resp.StatusCode)
		assert.Equal(t, "BAD_REQUEST", decodeError(t, resp).Error.Code)
	})
}
