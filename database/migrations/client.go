package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

func MigrateClientsTable(db *gorm.DB) error {
	configslog.SLog.Info("migrating clients table...")
	if err := db.AutoMigrate(&models.Client{}); err != nil {
		errMsg := "clients table migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
