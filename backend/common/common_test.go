package common

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisConnection(t *testing.T) {
	conn := os.Getenv("REDIS_CONN_STRING")
	if conn == "" {
		t.Skip("REDIS_CONN_STRING not set, skipping test")
	}
	RedisConnString = conn
	err := InitRedisClient()
	if !RedisEnabled {
		t.Skip("Redis not reachable, skipping test")
	}
	require.NoError(t, err)
	t.Cleanup(func() { _ = CloseRedis() })

	ctx := context.Background()
	require.NoError(t, RedisSet(ctx, "healthmate:test-key", "test-value", time.Minute))
	val, err := RedisGet(ctx, "healthmate:test-key")
	assert.NoError(t, err)
	assert.Equal(t, "test-value", val)
	exists, err := RedisExists(ctx, "healthmate:test-key")
	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestInitRedisClientDisabledWithoutConnString(t *testing.T) {
	prev := RedisConnString
	RedisConnString = ""
	t.Cleanup(func() { RedisConnString = prev })

	assert.NoError(t, InitRedisClient())
	assert.False(t, RedisEnabled)
}

func TestPasswordHash(t *testing.T) {
	hash, err := Password2Hash("testpass")
	assert.NoError(t, err)
	assert.NotEqual(t, "testpass", hash)
	assert.True(t, ValidatePasswordAndHash("testpass", hash))
	assert.False(t, ValidatePasswordAndHash("wrongpass", hash))
}

func TestApplyEnv(t *testing.T) {
	prevSecret, prevRefresh, prevSize, prevOrigins := JWTSecret, JWTRefreshSecret, MaxUploadSize, CORSOrigins
	prevTimeout, prevMongo := AITimeout, MongoURI
	t.Cleanup(func() {
		JWTSecret, JWTRefreshSecret, MaxUploadSize, CORSOrigins = prevSecret, prevRefresh, prevSize, prevOrigins
		AITimeout, MongoURI = prevTimeout, prevMongo
	})

	JWTSecret, JWTRefreshSecret = "", ""
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_REFRESH_SECRET", "")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "5")
	t.Setenv("AI_TIMEOUT_SECONDS", "15")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://healthmate-two.vercel.app ,")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	require.NoError(t, ApplyEnv())
	assert.Equal(t, "env-secret", JWTSecret)
	assert.Equal(t, "env-secret", JWTRefreshSecret)
	assert.Equal(t, int64(5<<20), MaxUploadSize)
	assert.Equal(t, 15*time.Second, AITimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://healthmate-two.vercel.app"}, CORSOrigins)
	assert.Equal(t, "mongodb://localhost:27017", MongoURI)
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	prevSecret, prevSize, prevTimeout := JWTSecret, MaxUploadSize, AITimeout
	t.Cleanup(func() { JWTSecret, MaxUploadSize, AITimeout = prevSecret, prevSize, prevTimeout })
	t.Setenv("JWT_SECRET", "env-secret")

	t.Setenv("MAX_UPLOAD_SIZE_MB", "-1")
	assert.Error(t, ApplyEnv())

	t.Setenv("MAX_UPLOAD_SIZE_MB", "")
	t.Setenv("AI_TIMEOUT_SECONDS", "soon")
	assert.Error(t, ApplyEnv())
}

func TestValidateConfig(t *testing.T) {
	prev := JWTSecret
	t.Cleanup(func() { JWTSecret = prev })

	JWTSecret = ""
	err := ValidateConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	JWTSecret = "set"
	assert.NoError(t, ValidateConfig())
}

func TestEnsureConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "healthmate", "config.ini")
	require.NoError(t, ensureConfigFile(path))

	first, err := parseIniConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "5000", first["PORT"])
	assert.Equal(t, "healthmate_uploads", first["CLOUDINARY_FOLDER"])
	assert.NotEmpty(t, first["JWT_SECRET"])

	// 已存在的配置文件不会被覆盖
	require.NoError(t, ensureConfigFile(path))
	second, err := parseIniConfig(path)
	require.NoError(t, err)
	assert.Equal(t, first["JWT_SECRET"], second["JWT_SECRET"])
}

func TestParseIniConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	content := "port = 8080\n\n[cloudinary]\ncloudinary_cloud_name = demo\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := parseIniConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg["PORT"])
	assert.Equal(t, "demo", cfg["CLOUDINARY_CLOUD_NAME"])
}

// isolateConfig points HOME at a temp dir and clears the keys the INI file
// may set, restoring them afterwards.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, key := range []string{"JWT_SECRET", "JWT_REFRESH_SECRET", "PORT", "SQLITE_PATH", "CLOUDINARY_FOLDER"} {
		prev, ok := os.LookupEnv(key)
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() {
			if ok {
				_ = os.Setenv(key, prev)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
	prevSecret, prevRefresh, prevSQLite := JWTSecret, JWTRefreshSecret, SQLitePath
	t.Cleanup(func() { JWTSecret, JWTRefreshSecret, SQLitePath = prevSecret, prevRefresh, prevSQLite })
	JWTSecret, JWTRefreshSecret = "", ""
	return home
}

func TestInitConfigFirstRunGeneratesSecret(t *testing.T) {
	home := isolateConfig(t)

	require.NoError(t, InitConfig())
	assert.NotEmpty(t, JWTSecret)
	assert.FileExists(t, filepath.Join(home, ".config", "healthmate", "config.ini"))
}

func TestInitConfigFailsWithEmptySecret(t *testing.T) {
	home := isolateConfig(t)
	dir := filepath.Join(home, ".config", "healthmate")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.ini"), []byte("PORT=5000\nJWT_SECRET=\n"), 0o600))

	err := InitConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}
