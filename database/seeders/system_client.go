package seeders

import (
	"errors"
	"os"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSystemClient ensures the platform admin account exists. The account
// verifies orders and provisions tenants; it never serves an invitation.
func SeedSystemClient(db *gorm.DB) error {
	username := os.Getenv("SYSTEM_ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SYSTEM_ADMIN_PASSWORD")
	if password == "" {
		password = "change-me-immediately"
		configslog.SLog.Warn("SYSTEM_ADMIN_PASSWORD not set, seeding admin with the default password")
	}

	var existing models.Client
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		if !existing.IsSystem {
			configslog.SLog.Infof("promoting existing client %q to system account", username)
			return db.Model(&existing).Update("is_system", true).Error
		}
		configslog.SLog.Debugf("system client %q already present", username)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		configslog.Log.Error("system client lookup failed", zap.String("username", username), zap.Error(err))
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.Client{
		Username:     username,
		PasswordHash: string(hash),
		Name:         "Platform Administrator",
		Slug:         "system-admin",
		IsSystem:     true,
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		configslog.Log.Error("system client seed failed", zap.String("username", username), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("system client %q created (id=%d)", username, admin.ID)
	return nil
}
