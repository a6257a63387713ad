package initializers

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/Kariqs/amexan-commerce/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("JWT_TTL", "2h")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 3, cfg.CheckoutMaxAttempts)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.False(t, cfg.MailEnabled())
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadEnvToleratesMissingFile(t *testing.T) {
	assert.NoError(t, LoadEnv(filepath.Join(t.TempDir(), "missing.env")))
}

func TestConnectAndSyncSqlite(t *testing.T) {
	cfg := &Config{DBDriver: "sqlite", DBURL: filepath.Join(t.TempDir(), "shop.db")}
	db, err := ConnectToDB(cfg, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, SyncDatabase(db, zap.NewNop()))

	for _, model := range models.All() {
		assert.True(t, db.Migrator().HasTable(model), "%T", model)
	}
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}

func TestConnectRejectsUnknownDriver(t *testing.T) {
	_, err := ConnectToDB(&Config{DBDriver: "oracle", DBURL: "x"}, zap.NewNop())
	assert.Error(t, err)
	_, err = ConnectToDB(&Config{DBDriver: "postgres"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewLoggerLevel(t *testing.T) {
	log, err := NewLogger("warn")
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	log, err = NewLogger("loud")
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.InfoLevel))
}
