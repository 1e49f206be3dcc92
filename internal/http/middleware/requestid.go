package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	// RequestIDHeader carries the request id in both directions.
	RequestIDHeader = "X-Request-ID"
	// RequestIDLocalKey is the Fiber locals key holding the request id.
	RequestIDLocalKey = "request_id"

	// maxRequestIDLen bounds ids accepted from clients; longer ones are replaced.
	maxRequestIDLen = 128
)

// requestIDAttr is recorded on the request's server span.
var requestIDAttr = attribute.Key("http.request_id")

// RequestID assigns every request an id. A client-supplied X-Request-ID is kept
// when it is short and made of token characters; anything else is replaced
// with a fresh UUID. The id is echoed in the response and recorded on the
// active span.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(RequestIDHeader)
		if validRequestID(id) {
			// c.Get aliases the request buffer, which fasthttp reuses.
			id = strings.Clone(id)
		} else {
			id = uuid.NewString()
		}

		c.Locals(RequestIDLocalKey, id)
		c.Set(RequestIDHeader, id)
		trace.SpanFromContext(c.UserContext()).SetAttributes(requestIDAttr.String(id))

		return c.Next()
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		ch := id[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '-', ch == '_', ch == '.', ch == ':', ch == '/', ch == '+', ch == '=':
		default:
			return false
		}
	}
	return true
}
