package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Meeting consistency levels
const (
	MeetingConsistencyStrict  = "strict"
	MeetingConsistencyRelaxed = "relaxed"
)

// Notification stores
const (
	NotificationStorePostgres = "postgres"
	NotificationStoreMongo    = "mongo"
)

// Email providers
const (
	EmailProviderSMTP     = "smtp"
	EmailProviderSendGrid = "sendgrid"
)

type Config struct {
	Port           string
	LogLevel       string
	DBUrl          string
	JWTSecret      string
	JWKSURL        string
	AppURL         string
	AllowedOrigins []string
	Location       *time.Location
	// Workflow
	MeetingConsistency   string
	SweepsEnabled        bool
	MeetingSweepInterval time.Duration
	JobSweepInterval     time.Duration
	// Notifications
	NotificationStore       string
	MongoURL                string
	MongoDatabase           string
	FirebaseCredentialsFile string
	// Email
	EmailProvider  string
	EmailFrom      string
	EmailFromName  string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string
	SendGridAPIKey string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Security
	SecurityLogFile       string
	SecurityEventsPersist bool
}

func LoadConfig() (*Config, error) {
	// .env is only present locally
	_ = godotenv.Load()

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		DBUrl:          getEnv("DATABASE_URL", ""),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWKSURL:        getEnv("JWKS_URL", ""),
		AppURL:         strings.TrimRight(getEnv("APP_URL", "http://localhost:3000"), "/"),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		Location:       loadLocation(getEnv("TIMEZONE", "Local")),

		MeetingConsistency:   strings.ToLower(getEnv("MEETING_CONSISTENCY", MeetingConsistencyStrict)),
		SweepsEnabled:        getEnvBool("SWEEPS_ENABLED", true),
		MeetingSweepInterval: getEnvDuration("MEETING_SWEEP_INTERVAL", 15*time.Minute),
		JobSweepInterval:     getEnvDuration("JOB_SWEEP_INTERVAL", 12*time.Hour),

		NotificationStore:       strings.ToLower(getEnv("NOTIFICATION_STORE", NotificationStorePostgres)),
		MongoURL:                getEnv("MONGO_URL", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "job_portal"),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),

		EmailProvider:  strings.ToLower(getEnv("EMAIL_PROVIDER", EmailProviderSMTP)),
		EmailFrom:      getEnv("EMAIL_FROM", "noreply@jobportal.local"),
		EmailFromName:  getEnv("EMAIL_FROM_NAME", "Job Portal"),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),

		SecurityLogFile:       getEnv("SECURITY_LOG_FILE", ""),
		SecurityEventsPersist: getEnvBool("SECURITY_EVENTS_PERSIST", false),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.JWTSecret == "" && cfg.JWKSURL == "" {
		log.Println("WARNING: neither JWT_SECRET nor JWKS_URL is set. Every authenticated request will be rejected.")
	}
	if cfg.MeetingConsistency != MeetingConsistencyStrict && cfg.MeetingConsistency != MeetingConsistencyRelaxed {
		log.Printf("WARNING: unknown MEETING_CONSISTENCY %q, using %q", cfg.MeetingConsistency, MeetingConsistencyStrict)
		cfg.MeetingConsistency = MeetingConsistencyStrict
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// StrictMeetings reports whether meeting booking serializes per participant.
func (c *Config) StrictMeetings() bool {
	return c.MeetingConsistency == MeetingConsistencyStrict
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go duration strings such as "15m" or "12h"
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func loadLocation(name string) *time.Location {
	if name == "" || name == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("WARNING: unknown TIMEZONE %q, using local time", name)
		return time.Local
	}
	return loc
}
