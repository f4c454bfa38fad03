package migrations

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"gorm.io/gorm"
)

// MigrateGuestTables creates guest types before guests: guests carry a
// foreign key into guest types.
func MigrateGuestTables(db *gorm.DB) error {
	configslog.SLog.Info("migrating guest tables...")
	if err := db.AutoMigrate(&models.GuestType{}, &models.EventGuest{}); err != nil {
		errMsg := "guest tables migration failed: " + err.Error()
		configslog.Log.Error(errMsg)
		return errors.New(errMsg)
	}
	return nil
}
