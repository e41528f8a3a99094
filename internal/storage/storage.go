package storage

import (
	"sync"
	"time"

	"agencyops/internal/config"
	"agencyops/internal/util/logger"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var (
	db     *gorm.DB
	dbOnce sync.Once
	dbMu   sync.RWMutex
)

func GetDb() *gorm.DB {
	dbOnce.Do(func() {
		dbMu.RLock()
		isSet := db != nil
		dbMu.RUnlock()

		if isSet {
			return
		}

		connection, err := OpenDb(config.GetEnv().DatabaseDsn)
		if err != nil {
			logger.GetLogger().Error("Failed to connect to database", "error", err)
			panic(err)
		}

		dbMu.Lock()
		db = connection
		dbMu.Unlock()
	})

	dbMu.RLock()
	defer dbMu.RUnlock()

	return db
}

// UseDb replaces the shared connection. Used by e2e tests that start
// their own database.
func UseDb(connection *gorm.DB) {
	dbMu.Lock()
	defer dbMu.Unlock()

	db = connection
}

func OpenDb(dsn string) (*gorm.DB, error) {
	connection, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return connection, nil
}

func Ping() error {
	sqlDB, err := GetDb().DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
