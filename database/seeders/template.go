package seeders

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SeedTemplates fills the invitation template catalog. Existing rows are
// left untouched so price edits made in production survive reseeding.
func SeedTemplates(db *gorm.DB) error {
	catalog := []models.Template{
		{Name: "classic-gold", DisplayName: "Classic Gold", Description: "Timeless serif layout with gold accents", Price: 150000, IsActive: true},
		{Name: "rustic-garden", DisplayName: "Rustic Garden", Description: "Botanical frames and warm paper texture", Price: 175000, IsActive: true},
		{Name: "modern-minimal", DisplayName: "Modern Minimal", Description: "Clean typography on a single column", Price: 125000, IsActive: true},
		{Name: "royal-ornament", DisplayName: "Royal Ornament", Description: "Ornate borders with a dark palette", Price: 200000, IsActive: true},
	}

	var created int
	for _, template := range catalog {
		var existing models.Template
		result := db.Where("name = ?", template.Name).First(&existing)
		if result.Error == nil {
			continue
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			configslog.Log.Error("template lookup failed", zap.String("name", template.Name), zap.Error(result.Error))
			return result.Error
		}
		if err := db.Create(&template).Error; err != nil {
			configslog.Log.Error("template seed failed", zap.String("name", template.Name), zap.Error(err))
			return err
		}
		created++
	}

	if created > 0 {
		configslog.SLog.Infof("%d invitation templates seeded", created)
	} else {
		configslog.SLog.Debug("template catalog already complete")
	}
	return nil
}
