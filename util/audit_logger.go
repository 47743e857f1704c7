package util

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ariebrainware/percepta/model"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditEventType represents different types of operational events
type AuditEventType string

const (
	EventFetchSuccess   AuditEventType = "FETCH_SUCCESS"
	EventFetchFailure   AuditEventType = "FETCH_FAILURE"
	EventFallbackServed AuditEventType = "FALLBACK_SERVED"
	EventStaleDiscarded AuditEventType = "STALE_FETCH_DISCARDED"
	EventManualRefresh  AuditEventType = "MANUAL_REFRESH"
	EventSettingsSaved  AuditEventType = "SETTINGS_SAVED"
	EventSettingsReset  AuditEventType = "SETTINGS_RESET"
	EventExportCSV      AuditEventType = "EXPORT_CSV"
	EventRateLimited    AuditEventType = "RATE_LIMIT_EXCEEDED"
	EventEndpointCall   AuditEventType = "ENDPOINT_CALL"
)

// AuditEvent represents an operational event to be logged
type AuditEvent struct {
	EventType AuditEventType
	IP        string
	Message   string
	Details   map[string]interface{}
}

var auditLogger *log.Logger
var auditDB *gorm.DB

// SetAuditLoggerDB sets a gorm DB instance used by the audit logger.
// Call this during application startup (e.g. in main) after DB initialization.
func SetAuditLoggerDB(db *gorm.DB) {
	auditDB = db
}

func init() {
	// Initialize audit logger - in production, this could write to a separate file
	auditLogger = log.New(os.Stdout, "[AUDIT] ", log.LstdFlags|log.Lmsgprefix)
}

// sanitizeLogValue removes newlines and other characters that could break log parsing
func sanitizeLogValue(value string) string {
	// Replace newlines, carriage returns, and tabs with spaces
	value = strings.ReplaceAll(value, "\n", " ")
	value = strings.ReplaceAll(value, "\r", " ")
	value = strings.ReplaceAll(value, "\t", " ")
	// Truncate very long values to prevent log flooding
	if len(value) > 200 {
		value = value[:200] + "..."
	}
	return value
}

// LogAuditEvent logs an operational event and persists it best-effort.
func LogAuditEvent(event AuditEvent) {
	// Sanitize all string fields to prevent log injection
	msg := fmt.Sprintf("Event=%s IP=%s Message=%s",
		sanitizeLogValue(string(event.EventType)),
		sanitizeLogValue(event.IP),
		sanitizeLogValue(event.Message),
	)

	if len(event.Details) > 0 {
		// Don't log Details map directly to avoid injection
		// Instead, log the count of details
		msg = fmt.Sprintf("%s DetailsCount=%d", msg, len(event.Details))
	}

	auditLogger.Println(msg)

	// Persist to DB if available (best-effort, do not fail operation)
	if auditDB != nil {
		var details datatypes.JSON
		if event.Details != nil {
			if b, err := json.Marshal(event.Details); err == nil {
				details = datatypes.JSON(b)
			}
		}

		entry := model.AuditLog{
			EventType: string(event.EventType),
			IP:        sanitizeLogValue(event.IP),
			Message:   sanitizeLogValue(event.Message),
			Details:   details,
		}

		// best-effort write; ignore errors but log them
		if err := auditDB.Create(&entry).Error; err != nil {
			auditLogger.Printf("Failed to persist audit event: %v", err)
		}
	}
}

// LogFetchFailure logs an upstream fetch failure and the fallback activation.
func LogFetchFailure(apiURL string, err error) {
	LogAuditEvent(AuditEvent{
		EventType: EventFetchFailure,
		Message:   fmt.Sprintf("Fetch from %s failed: %v", apiURL, err),
	})
	LogAuditEvent(AuditEvent{
		EventType: EventFallbackServed,
		Message:   "Demonstration dataset substituted for unreachable API",
	})
}

// LogFetchSuccess logs a completed fetch.
func LogFetchSuccess(count int, applied bool) {
	event := AuditEvent{
		EventType: EventFetchSuccess,
		Message:   fmt.Sprintf("Fetched %d anomalies", count),
	}
	if !applied {
		event.EventType = EventStaleDiscarded
		event.Message = fmt.Sprintf("Discarded stale fetch of %d anomalies", count)
	}
	LogAuditEvent(event)
}

// LogRateLimitExceeded logs when rate limit is exceeded
func LogRateLimitExceeded(ip, endpoint string) {
	LogAuditEvent(AuditEvent{
		EventType: EventRateLimited,
		IP:        ip,
		Message:   fmt.Sprintf("Rate limit exceeded for endpoint: %s", endpoint),
	})
}

// GetAuditLoggerForTest returns the current audit logger for testing purposes
func GetAuditLoggerForTest() *log.Logger {
	return auditLogger
}

// SetAuditLoggerForTest sets a custom logger for testing purposes
func SetAuditLoggerForTest(logger *log.Logger) {
	auditLogger = logger
}
