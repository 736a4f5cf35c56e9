package common

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

func PrintHelp() {
	fmt.Println("HealthMate " + Version + " - medical report upload and analysis backend")
	fmt.Println("Usage: healthmate [--port <port>] [--log-dir <log directory>] [--version] [--help]")
	flag.PrintDefaults()
}

// LoadEnvFiles loads .env, falling back to .env.local. Variables already set
// in the process environment are never overridden.
func LoadEnvFiles() string {
	for _, path := range []string{".env", ".env.local"} {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			SysError("failed to load env file", "path", path, "err", err)
			continue
		}
		return path
	}
	return ""
}

// InitConfig resolves configuration. Precedence, highest first: process
// environment, .env file, INI config file.
func InitConfig() error {
	if path := LoadEnvFiles(); path != "" {
		SysLog("loaded environment", "path", path)
	} else {
		SysLog("no .env or .env.local found, using process environment")
	}
	if err := loadConfigFile(); err != nil {
		SysError("failed to load config file", "err", err)
	}
	return ApplyEnv()
}

// ApplyEnv copies recognised environment variables into the package settings.
func ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" && !flagPassed("port") {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid value for PORT: %w", err)
		}
		*Port = port
	}
	ServerAddress = getEnv("SERVER_ADDRESS", fmt.Sprintf("http://localhost:%d", *Port))

	JWTSecret = getEnv("JWT_SECRET", JWTSecret)
	JWTRefreshSecret = getEnv("JWT_REFRESH_SECRET", JWTRefreshSecret)
	if JWTRefreshSecret == "" {
		JWTRefreshSecret = JWTSecret
	}

	SQLDSN = getEnv("SQL_DSN", SQLDSN)
	SQLitePath = getEnv("SQLITE_PATH", SQLitePath)
	MongoURI = getEnv("MONGO_URI", MongoURI)
	MongoDB = getEnv("MONGO_DB", MongoDB)

	RedisConnString = getEnv("REDIS_CONN_STRING", RedisConnString)

	CloudinaryCloudName = getEnv("CLOUDINARY_CLOUD_NAME", CloudinaryCloudName)
	CloudinaryAPIKey = getEnv("CLOUDINARY_API_KEY", CloudinaryAPIKey)
	CloudinaryAPISecret = getEnv("CLOUDINARY_API_SECRET", CloudinaryAPISecret)
	CloudinaryFolder = getEnv("CLOUDINARY_FOLDER", CloudinaryFolder)
	UploadPath = getEnv("UPLOAD_PATH", UploadPath)
	if v := os.Getenv("MAX_UPLOAD_SIZE_MB"); v != "" {
		mb, err := strconv.ParseInt(v, 10, 64)
		if err != nil || mb <= 0 {
			return fmt.Errorf("invalid value for MAX_UPLOAD_SIZE_MB: %q", v)
		}
		MaxUploadSize = mb << 20
	}

	AIEndpoint = getEnv("AI_ENDPOINT", AIEndpoint)
	AIAPIKey = getEnv("AI_API_KEY", AIAPIKey)
	AIModel = getEnv("AI_MODEL", AIModel)
	if v := os.Getenv("AI_TIMEOUT_SECONDS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil || secs <= 0 {
			return fmt.Errorf("invalid value for AI_TIMEOUT_SECONDS: %q", v)
		}
		AITimeout = time.Duration(secs) * time.Second
	}

	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		CORSOrigins = splitList(v)
	}

	return ValidateConfig()
}

// ValidateConfig reports missing required settings.
func ValidateConfig() error {
	var missing []string
	if JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return errors.New("missing required environment variables: " + strings.Join(missing, ", "))
	}
	return nil
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func CloudinaryEnabled() bool {
	return CloudinaryCloudName != "" && CloudinaryAPIKey != "" && CloudinaryAPISecret != ""
}

func getEnv(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func flagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
