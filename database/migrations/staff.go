package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

// MigrateStaffTables creates the staff accounts table and their
// append-only audit log.
func MigrateStaffTables(db *gorm.DB) error {
	configslog.SLog.Info("migrating staff tables...")
	if err := db.AutoMigrate(&models.Staff{}, &models.StaffLog{}); err != nil {
		errMsg := "staff tables migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
