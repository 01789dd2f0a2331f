package utils

import (
	"log"
	"strings"

	"github.com/google/uuid"
)

// LogEvent prints a standardized log line with module/action/request_id.
// Avoid logging tokens or credentials; message should be summarized.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// NewRequestID returns a fresh id to correlate one outbound call across
// client logs and backend logs (sent as X-Request-ID).
func NewRequestID() string {
	return uuid.NewString()
}
