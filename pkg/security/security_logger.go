package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventUnauthenticated    EventType = "unauthenticated"
	EventRoleDenied         EventType = "role_denied"
	EventScopeViolation     EventType = "scope_violation"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventDataExport         EventType = "data_export"
)

// Severity is derived from EventType, never from the caller
type Severity string

const (
	SeverityINFO   Severity = "INFO"
	SeverityMEDIUM Severity = "MEDIUM"
	SeverityHIGH   Severity = "HIGH"
)

var eventSeverity = map[EventType]Severity{
	EventDataExport:         SeverityINFO,
	EventUnauthenticated:    SeverityMEDIUM,
	EventRateLimitTriggered: SeverityMEDIUM,
	EventRoleDenied:         SeverityHIGH,
	EventScopeViolation:     SeverityHIGH,
}

// SeverityOf returns the fixed severity of an event type
func SeverityOf(event EventType) Severity {
	if s, ok := eventSeverity[event]; ok {
		return s
	}
	return SeverityMEDIUM
}

// SecurityEvent represents a security-related event to be logged
type SecurityEvent struct {
	Timestamp time.Time
	Event     EventType
	UserID    string // hashed before logging
	Role      string
	IP        string
	UserAgent string
	RequestID string
	Path      string
	Details   map[string]interface{}
}

// SecurityLogger writes audit events through a dedicated zap logger
type SecurityLogger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persist     PersistFunc
}

// PersistFunc stores an event somewhere durable. It runs off the request path.
type PersistFunc func(ctx context.Context, event SecurityEvent) error

const persistTimeout = 3 * time.Second

// NewSecurityLogger builds a production zap logger. outputPath may be a file
// path; stdout is always written.
func NewSecurityLogger(serviceName, outputPath string) *SecurityLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	if outputPath != "" {
		config.OutputPaths = append(config.OutputPaths, outputPath)
	}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddCaller())
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewSecurityLoggerWithZap(logger, serviceName)
}

// NewSecurityLoggerWithZap wraps an existing zap logger
func NewSecurityLoggerWithZap(logger *zap.Logger, serviceName string) *SecurityLogger {
	return &SecurityLogger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: getEnvironment(),
	}
}

// WithPersistence returns a copy of sl that also hands every event to fn.
func (sl *SecurityLogger) WithPersistence(fn PersistFunc) *SecurityLogger {
	out := *sl
	out.persist = fn
	return &out
}

// Log logs a security event
func (sl *SecurityLogger) Log(ctx context.Context, event SecurityEvent) {
	if sl == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	severity := SeverityOf(event.Event)
	level := zapcore.WarnLevel
	switch severity {
	case SeverityINFO:
		level = zapcore.InfoLevel
	case SeverityHIGH:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("service", sl.serviceName),
		zap.String("env", sl.environment),
		zap.String("event", string(event.Event)),
		zap.String("severity", string(severity)),
		zap.Time("occurred_at", event.Timestamp),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user", HashValue(event.UserID)))
	}
	if event.Role != "" {
		fields = append(fields, zap.String("role", event.Role))
	}
	if event.IP != "" {
		fields = append(fields, zap.String("ip", event.IP))
	}
	if event.UserAgent != "" {
		fields = append(fields, zap.String("user_agent", event.UserAgent))
	}
	if event.RequestID != "" {
		fields = append(fields, zap.String("request_id", event.RequestID))
	}
	if event.Path != "" {
		fields = append(fields, zap.String("path", event.Path))
	}
	if len(event.Details) > 0 {
		fields = append(fields, zap.Any("details", event.Details))
	}

	sl.zapLogger.Log(level, string(event.Event), fields...)

	if sl.persist != nil {
		go func(event SecurityEvent) {
			ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
			defer cancel()
			if err := sl.persist(ctx, event); err != nil {
				sl.zapLogger.Warn("security event not persisted", zap.String("event", string(event.Event)), zap.Error(err))
			}
		}(event)
	}
}

// Sync flushes any buffered log entries
func (sl *SecurityLogger) Sync() error {
	return sl.zapLogger.Sync()
}

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	if len(email) < 3 {
		return "***"
	}
	atIndex := -1
	for i, c := range email {
		if c == '@' {
			atIndex = i
			break
		}
	}
	if atIndex <= 1 {
		return "***" + email[1:]
	}
	return string(email[0]) + "***" + email[atIndex:]
}

// HashValue creates a short SHA256 digest of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
