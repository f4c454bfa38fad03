package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

func MigrateMediaTable(db *gorm.DB) error {
	configslog.SLog.Info("migrating client media table...")
	if err := db.AutoMigrate(&models.ClientMedia{}); err != nil {
		errMsg := "client media table migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
