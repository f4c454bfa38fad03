package database

import (
	"undangan.digital/configs/configslog"
	"undangan.digital/database/migrations"
	"undangan.digital/database/seeders"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Initialize runs migrations and seeders inside one transaction. A
// failure in either step rolls everything back.
func Initialize(db *gorm.DB, migrate bool, seed bool) {
	if !migrate && !seed {
		configslog.SLog.Info("neither -migrate nor -seed given, nothing to do")
		return
	}

	tx := db.Begin()
	if tx.Error != nil {
		configslog.Log.Fatal("could not begin database transaction", zap.Error(tx.Error))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			configslog.Log.Fatal("database initialization panicked", zap.Any("panic_info", r))
		} else if err := tx.Error; err != nil && err != gorm.ErrInvalidTransaction {
			configslog.Log.Warn("rolling back after initialization error", zap.Error(err))
			rbErr := tx.Rollback().Error
			if rbErr != nil && rbErr != gorm.ErrInvalidTransaction {
				configslog.Log.Error("rollback itself failed", zap.Error(rbErr))
			}
		}
	}()

	configslog.SLog.Info("database initialization starting...")

	if migrate {
		if err := RunMigrationsInOrder(tx); err != nil {
			configslog.Log.Error("migration failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("migrations complete")
	}

	if seed {
		if err := CheckAndRunSeeders(tx); err != nil {
			configslog.Log.Error("seeding failed", zap.Error(err))
			return
		}
		configslog.SLog.Info("seeders complete")
	}

	if err := tx.Commit().Error; err != nil {
		tx.Error = err
		configslog.Log.Error("commit failed", zap.Error(err))
		return
	}

	configslog.SLog.Info("database initialization finished")
}

// RunMigrationsInOrder migrates tables parents-first so foreign keys
// always have a target.
func RunMigrationsInOrder(db *gorm.DB) error {
	steps := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"clients", migrations.MigrateClientsTable},
		{"templates", migrations.MigrateTemplatesTable},
		{"events", migrations.MigrateEventsTable},
		{"staff", migrations.MigrateStaffTables},
		{"guests", migrations.MigrateGuestTables},
		{"seating", migrations.MigrateSeatingTable},
		{"media", migrations.MigrateMediaTable},
		{"orders", migrations.MigrateOrderTables},
	}
	for _, step := range steps {
		if err := step.run(db); err != nil {
			configslog.Log.Error("migration step failed", zap.String("step", step.name), zap.Error(err))
			return err
		}
	}
	return nil
}

// CheckAndRunSeeders runs every idempotent seeder.
func CheckAndRunSeeders(db *gorm.DB) error {
	if err := seeders.SeedSystemClient(db); err != nil {
		return err
	}
	if err := seeders.SeedTemplates(db); err != nil {
		return err
	}
	return nil
}
