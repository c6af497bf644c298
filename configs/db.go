package configs

import (
	"strings"
	"time"

	"foodorder/entity"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlite upgrades a deferred read lock to a write lock without waiting on the
// busy timeout, so every transaction takes the write lock at BEGIN.
var dsnDefaults = []string{"_busy_timeout=5000", "_txlock=immediate"}

// ConnectionDB opens the sqlite database at dsn. gorm warnings and slow
// queries go to log.
func ConnectionDB(dsn string, log *zap.Logger) (*gorm.DB, error) {
	database, err := gorm.Open(sqlite.Open(withDefaults(dsn)), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(zap.NewStdLog(log.Named("gorm")), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	})
	if err != nil {
		return nil, err
	}
	return database, nil
}

// withDefaults appends the connection options dsn does not set itself.
func withDefaults(dsn string) string {
	for _, opt := range dsnDefaults {
		key := opt[:strings.IndexByte(opt, '=')+1]
		if strings.Contains(dsn, key) {
			continue
		}
		if strings.Contains(dsn, "?") {
			dsn += "&" + opt
		} else {
			dsn += "?" + opt
		}
	}
	return dsn
}

// SetupDatabase migrates the schema.
func SetupDatabase(database *gorm.DB) error {
	return database.AutoMigrate(
		&entity.User{},
		&entity.Restaurant{}, &entity.FoodItem{},
		&entity.Cart{}, &entity.CartLine{},
		&entity.Order{}, &entity.OrderLine{},
		&entity.Favourite{},
	)
}
