package configs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"foodorder/entity"
	"foodorder/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
)

func TestWithDefaults(t *testing.T) {
	cases := map[string]string{
		"app.db":                          "app.db?_busy_timeout=5000&_txlock=immediate",
		"app.db?_busy_timeout=100":        "app.db?_busy_timeout=100&_txlock=immediate",
		"app.db?_txlock=exclusive":        "app.db?_txlock=exclusive&_busy_timeout=5000",
		"file:x?mode=memory&cache=shared": "file:x?mode=memory&cache=shared&_busy_timeout=5000&_txlock=immediate",
	}
	for in, want := range cases {
		assert.Equal(t, want, withDefaults(in), in)
	}
}

func openFileDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := ConnectionDB(filepath.Join(t.TempDir(), "seed.db"), zap.NewNop())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, SetupDatabase(db))
	return db
}

func TestGormLogsGoThroughZap(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	db, err := ConnectionDB(filepath.Join(t.TempDir(), "log.db"), zap.New(core))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, SetupDatabase(db))

	_, err = repository.NewUserRepository(db).FindByEmail(context.Background(), "nobody@test.local")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	require.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	entries := logs.Filter(func(e observer.LoggedEntry) bool { return e.LoggerName == "gorm" }).All()
	require.NotEmpty(t, entries)
	assert.Contains(t, entries[0].Message, "no_such_table")
}

func TestSeedDemoFallsBackToDemoRider(t *testing.T) {
	db := openFileDB(t)
	ctx := context.Background()
	cfg := &Config{JWTSecret: "s", JWTTTL: time.Hour}

	require.NoError(t, SeedDemo(ctx, db, cfg, zap.NewNop()))
	rider, err := repository.NewUserRepository(db).FindByEmail(ctx, demoRiderEmail)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleRider, rider.Role)
	assert.Equal(t, rider.ID, cfg.DeliveryPartnerID)

	// a second start finds the data and still picks the rider
	again := &Config{JWTSecret: "s", JWTTTL: time.Hour}
	require.NoError(t, SeedDemo(ctx, db, again, zap.NewNop()))
	assert.Equal(t, rider.ID, again.DeliveryPartnerID)

	var restaurants int64
	require.NoError(t, db.Model(&entity.Restaurant{}).Count(&restaurants).Error)
	assert.Equal(t, int64(1), restaurants)
}

func TestSeedDemoKeepsConfiguredPartner(t *testing.T) {
	db := openFileDB(t)
	cfg := &Config{JWTSecret: "s", JWTTTL: time.Hour, DeliveryPartnerID: 42}

	require.NoError(t, SeedDemo(context.Background(), db, cfg, zap.NewNop()))
	assert.Equal(t, uint(42), cfg.DeliveryPartnerID)
}
