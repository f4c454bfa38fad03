package repositories

import (
	"context"
	"errors"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ITemplateRepository reads the invitation template catalog. The catalog
// is seed-managed, so there is no create or update here.
type ITemplateRepository interface {
	FindAllActive(ctx context.Context) ([]models.Template, error)
	FindActiveByName(ctx context.Context, name string) (*models.Template, error)
}

type TemplateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository() ITemplateRepository {
	return &TemplateRepository{db: configs.GetDB()}
}

func NewTemplateRepositoryTx(tx *gorm.DB) ITemplateRepository {
	return &TemplateRepository{db: tx}
}

func (r *TemplateRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *TemplateRepository) FindAllActive(ctx context.Context) ([]models.Template, error) {
	var rows []models.Template
	err := r.getDB(ctx).Where("is_active = ?", true).Order("id asc").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("TemplateRepository.FindAllActive: DB error", zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *TemplateRepository) FindActiveByName(ctx context.Context, name string) (*models.Template, error) {
	if name == "" {
		return nil, ErrNotFound
	}
	var template models.Template
	err := r.getDB(ctx).Where("name = ? AND is_active = ?", name, true).First(&template).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("TemplateRepository.FindActiveByName: DB error", zap.String("name", name), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &template, nil
}

var _ ITemplateRepository = (*TemplateRepository)(nil)
