package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendSupabase = "supabase"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
	BackendMemory   = "memory"

	defaultAddr      = ":5000"
	defaultSecret    = "fallback-secret-key"
	defaultBucket    = "worker-documents"
	defaultOrigin    = "*"
	defaultTTL       = 12 * time.Hour
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

type Env struct {
	AppAddr   string
	GinMode   string
	LogLevel  string
	LogFormat string

	SecretKey  string
	SessionTTL time.Duration

	AdminUser     string
	AdminPass     string
	AdminPassHash string

	AllowedOrigins []string

	DataBackend     string
	SupabaseURL     string
	SupabaseKey     string
	DatabaseURL     string
	StorageBackend  string
	StorageBucket   string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	S3Region        string
	S3UseSSL        bool
	S3PublicURL     string
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	LoginRatePerMin int
	CookieSecure    bool
}

// LoadEnv reads .env (when present) and then the process environment.
func LoadEnv() Env {
	_ = godotenv.Load()

	return Env{
		AppAddr:   read("APP_ADDR", defaultAddr),
		GinMode:   read("GIN_MODE", ""),
		LogLevel:  strings.ToLower(read("LOG_LEVEL", defaultLogLevel)),
		LogFormat: strings.ToLower(read("LOG_FORMAT", defaultLogFormat)),

		SecretKey:  read("SECRET_KEY", defaultSecret),
		SessionTTL: readDuration("SESSION_TTL", defaultTTL),

		AdminUser:     read("ADMIN_USER", ""),
		AdminPass:     read("ADMIN_PASS", ""),
		AdminPassHash: read("ADMIN_PASS_HASH", ""),

		AllowedOrigins: readList("ALLOWED_ORIGIN", defaultOrigin),

		DataBackend:     strings.ToLower(read("DATA_BACKEND", BackendSupabase)),
		SupabaseURL:     read("SUPABASE_URL", ""),
		SupabaseKey:     read("SUPABASE_SERVICE_ROLE_KEY", ""),
		DatabaseURL:     read("DATABASE_URL", ""),
		StorageBackend:  strings.ToLower(read("STORAGE_BACKEND", BackendSupabase)),
		StorageBucket:   read("STORAGE_BUCKET", defaultBucket),
		S3Endpoint:      read("S3_ENDPOINT", ""),
		S3AccessKey:     read("S3_ACCESS_KEY", ""),
		S3SecretKey:     read("S3_SECRET_KEY", ""),
		S3Region:        read("S3_REGION", ""),
		S3UseSSL:        readBool("S3_USE_SSL", true),
		S3PublicURL:     read("S3_PUBLIC_URL", ""),
		RedisAddr:       read("REDIS_ADDR", ""),
		RedisPassword:   read("REDIS_PASSWORD", ""),
		RedisDB:         readInt("REDIS_DB", 0),
		LoginRatePerMin: readInt("LOGIN_RATE_PER_MINUTE", 0),
		CookieSecure:    readBool("COOKIE_SECURE", false),
	}
}

// AllowsAnyOrigin reports whether CORS is open to every origin.
func (e Env) AllowsAnyOrigin() bool {
	for _, o := range e.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

func read(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func readList(key, def string) []string {
	out := []string{}
	for _, p := range strings.Split(read(key, def), ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func readInt(key string, def int) int {
	if v, err := strconv.Atoi(read(key, "")); err == nil {
		return v
	}
	return def
}

func readBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(read(key, "")); err == nil {
		return v
	}
	return def
}

func readDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(read(key, "")); err == nil && v > 0 {
		return v
	}
	return def
}
