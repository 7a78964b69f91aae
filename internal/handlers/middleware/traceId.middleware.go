package middleware

import (
	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	TraceIDHeader   = "X-Trace-ID"
	TraceIDLocalKey = "traceID"

	MAX_TRACE_ID_LENGTH = 128
)

// TraceID echoes the caller's X-Trace-ID, or a fresh uuid when it is missing or
// unusable, and stores it on the request context for logger.TraceFromContext.
func (m *Middleware) TraceID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		traceID := c.Get(TraceIDHeader)
		if !validTraceID(traceID) {
			traceID = uuid.NewString()
		}

		c.Set(TraceIDHeader, traceID)
		c.Locals(TraceIDLocalKey, traceID)
		c.SetUserContext(logger.ContextWithTraceID(c.UserContext(), traceID))

		return c.Next()
	}
}

// validTraceID accepts printable ASCII up to MAX_TRACE_ID_LENGTH so a client
// cannot inject control characters into log lines.
func validTraceID(traceID string) bool {
	if traceID == "" || len(traceID) > MAX_TRACE_ID_LENGTH {
		return false
	}
	for i := 0; i < len(traceID); i++ {
		if traceID[i] < 0x21 || traceID[i] > 0x7e {
			return false
		}
	}
	return true
}

func GetTraceID(c *fiber.Ctx) string {
	traceID, _ := c.Locals(TraceIDLocalKey).(string)
	return traceID
}
