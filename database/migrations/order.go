package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

// MigrateOrderTables creates orders before registrations: a registration
// points back at the order that provisioned it.
func MigrateOrderTables(db *gorm.DB) error {
	configslog.SLog.Info("migrating order tables...")
	if err := db.AutoMigrate(&models.Order{}, &models.Registration{}); err != nil {
		errMsg := "order tables migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
