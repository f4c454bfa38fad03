package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

func MigrateTemplatesTable(db *gorm.DB) error {
	configslog.SLog.Info("migrating templates table...")
	if err := db.AutoMigrate(&models.Template{}); err != nil {
		errMsg := "templates table migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
