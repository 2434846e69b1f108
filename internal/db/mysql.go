package db

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// NewMySQL returns a connected GORM DB instance. The connection is
// probed with a bounded number of retries so the server never starts
// accepting traffic against an unreachable database.
func NewMySQL(dsn string) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
		if err == nil {
			if sqlDB, pingErr := db.DB(); pingErr == nil {
				if pingErr = sqlDB.Ping(); pingErr == nil {
					return db, nil
				}
				err = pingErr
			} else {
				err = pingErr
			}
		}
		lastErr = err
		if attempt < connectAttempts {
			log.Printf("database unreachable (attempt %d/%d): %v", attempt, connectAttempts, err)
			time.Sleep(connectBackoff)
		}
	}
	return nil, fmt.Errorf("connect mysql after %d attempts: %w", connectAttempts, lastErr)
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
