package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

func MigrateEventsTable(db *gorm.DB) error {
	configslog.SLog.Info("migrating events table...")
	if err := db.AutoMigrate(&models.Event{}); err != nil {
		errMsg := "events table migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
