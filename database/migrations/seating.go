package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

func MigrateSeatingTable(db *gorm.DB) error {
	configslog.SLog.Info("migrating seating configs table...")
	if err := db.AutoMigrate(&models.SeatingConfig{}); err != nil {
		errMsg := "seating configs table migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
