package constants

import "time"

type ContextKey string

const TraceIDKey ContextKey = "trace_id"

const (
	NameMinLength     = 1
	NameMaxLength     = 100
	PasswordMinLength = 6
	PasswordMaxLength = 128

	DefaultMaxRequestSize int64 = 25 * 1024 * 1024

	DBPoolMetricsInterval = 30 * time.Second

	AccessTokenTTL = 48 * time.Hour
)
