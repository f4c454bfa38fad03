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

// ISeatingRepository covers seating-config persistence under an event.
type ISeatingRepository interface {
	Create(ctx context.Context, config *models.SeatingConfig) error
	CreateBatch(ctx context.Context, configs []*models.SeatingConfig) error
	FindByID(ctx context.Context, id uint) (*models.SeatingConfig, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.SeatingConfig, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, config *models.SeatingConfig, deletedByUserID uint) error
}

type SeatingRepository struct {
	db *gorm.DB
}

func NewSeatingRepository() ISeatingRepository {
	return &SeatingRepository{db: configs.GetDB()}
}

func NewSeatingRepositoryTx(tx *gorm.DB) ISeatingRepository {
	return &SeatingRepository{db: tx}
}

func (r *SeatingRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *SeatingRepository) Create(ctx context.Context, config *models.SeatingConfig) error {
	if config == nil || config.EventID == 0 {
		return errors.New("seating config must carry its owning event")
	}
	return translateError(r.getDB(ctx).Create(config).Error)
}

// CreateBatch inserts a bulk seating layout in one statement.
func (r *SeatingRepository) CreateBatch(ctx context.Context, configs []*models.SeatingConfig) error {
	if len(configs) == 0 {
		return errors.New("no seating configs to create")
	}
	for _, c := range configs {
		if c == nil || c.EventID == 0 {
			return errors.New("seating config must carry its owning event")
		}
	}
	return translateError(r.getDB(ctx).Create(configs).Error)
}

func (r *SeatingRepository) FindByID(ctx context.Context, id uint) (*models.SeatingConfig, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var config models.SeatingConfig
	if err := r.getDB(ctx).First(&config, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("SeatingRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &config, nil
}

// FindAllByEventID returns configs in creation order; auto-assign walks
// them in this order.
func (r *SeatingRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.SeatingConfig, error) {
	if eventID == 0 {
		return nil, errors.New("invalid event id")
	}
	var rows []models.SeatingConfig
	err := r.getDB(ctx).Where("event_id = ?", eventID).Order("id asc").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("SeatingRepository.FindAllByEventID: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *SeatingRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.SeatingConfig{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SeatingRepository) Delete(ctx context.Context, config *models.SeatingConfig, deletedByUserID uint) error {
	if config == nil || config.ID == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Unscoped().Where("id = ?", config.ID).Delete(&models.SeatingConfig{})
	if result.Error != nil {
		configslog.Log.Error("SeatingRepository.Delete: DB error", zap.Uint("id", config.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ ISeatingRepository = (*SeatingRepository)(nil)
