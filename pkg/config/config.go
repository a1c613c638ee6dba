package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Firebase  FirebaseConfig
	Storage   StorageConfig
	Access    AccessConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	// Dev mode runs against the in-memory store and fake identity provider.
	DevMode bool
}

type FirebaseConfig struct {
	ProjectID       string
	APIKey          string
	CredentialsPath string
	CredentialsJSON string

	FirestoreEmulatorHost string
	AuthEmulatorHost      string
}

// UseEmulator is true when both emulators are configured.
func (f FirebaseConfig) UseEmulator() bool {
	return f.FirestoreEmulatorHost != "" && f.AuthEmulatorHost != ""
}

type StorageConfig struct {
	Backend string // gcs or s3
	Bucket  string

	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

type AccessConfig struct {
	AdminEmails []string
	PolicyFile  string
}

type RateLimitConfig struct {
	AuthPerMinute     int
	MessagesPerMinute int
}

var defaultAdminEmails = []string{
	"admin@admin.com",
	"admin@moversconnect.com",
	"beastkee@example.com",
}

func Load() (*Config, error) {
	env := getEnv("ENVIRONMENT", "development")
	// .env.<environment> wins over .env; godotenv never overrides real env vars.
	_ = godotenv.Load(".env." + env)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			Environment: env,
			DevMode:     getEnvAsBool("DEV_MODE", false),
		},
		Firebase: FirebaseConfig{
			ProjectID:             getEnv("FIREBASE_PROJECT_ID", ""),
			APIKey:                getEnv("FIREBASE_API_KEY", ""),
			CredentialsPath:       getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),
			CredentialsJSON:       getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
			FirestoreEmulatorHost: getEnv("FIRESTORE_EMULATOR_HOST", ""),
			AuthEmulatorHost:      getEnv("FIREBASE_AUTH_EMULATOR_HOST", ""),
		},
		Storage: StorageConfig{
			Backend:            strings.ToLower(getEnv("STORAGE_BACKEND", "gcs")),
			Bucket:             getEnv("STORAGE_BUCKET", ""),
			AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
			AWSAccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			AWSSecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Access: AccessConfig{
			AdminEmails: getEnvAsList("ADMIN_EMAILS", defaultAdminEmails),
			PolicyFile:  getEnv("ACCESS_POLICY_FILE", ""),
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute:     int(getEnvAsInt64("RATE_LIMIT_AUTH_PER_MINUTE", 10)),
			MessagesPerMinute: int(getEnvAsInt64("RATE_LIMIT_MESSAGES_PER_MINUTE", 30)),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.Server.DevMode {
		return nil
	}
	if c.Firebase.ProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	if c.Firebase.APIKey == "" && !c.Firebase.UseEmulator() {
		return fmt.Errorf("FIREBASE_API_KEY is required")
	}
	switch c.Storage.Backend {
	case "gcs", "s3":
	default:
		return fmt.Errorf("STORAGE_BACKEND must be gcs or s3, got %q", c.Storage.Backend)
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
