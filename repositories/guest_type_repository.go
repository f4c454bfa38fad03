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

// IGuestTypeRepository covers guest-type persistence under an event.
type IGuestTypeRepository interface {
	Create(ctx context.Context, guestType *models.GuestType) error
	FindByID(ctx context.Context, id uint) (*models.GuestType, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.GuestType, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, guestType *models.GuestType, deletedByUserID uint) error
}

type GuestTypeRepository struct {
	db *gorm.DB
}

func NewGuestTypeRepository() IGuestTypeRepository {
	return &GuestTypeRepository{db: configs.GetDB()}
}

func NewGuestTypeRepositoryTx(tx *gorm.DB) IGuestTypeRepository {
	return &GuestTypeRepository{db: tx}
}

func (r *GuestTypeRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *GuestTypeRepository) Create(ctx context.Context, guestType *models.GuestType) error {
	if guestType == nil || guestType.EventID == 0 {
		return errors.New("guest type must carry its owning event")
	}
	return translateError(r.getDB(ctx).Create(guestType).Error)
}

func (r *GuestTypeRepository) FindByID(ctx context.Context, id uint) (*models.GuestType, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var guestType models.GuestType
	if err := r.getDB(ctx).First(&guestType, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("GuestTypeRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &guestType, nil
}

func (r *GuestTypeRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.GuestType, error) {
	if eventID == 0 {
		return nil, errors.New("invalid event id")
	}
	var rows []models.GuestType
	err := r.getDB(ctx).Where("event_id = ?", eventID).Order("id asc").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestTypeRepository.FindAllByEventID: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *GuestTypeRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.GuestType{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestTypeRepository) Delete(ctx context.Context, guestType *models.GuestType, deletedByUserID uint) error {
	if guestType == nil || guestType.ID == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Unscoped().Where("id = ?", guestType.ID).Delete(&models.GuestType{})
	if result.Error != nil {
		configslog.Log.Error("GuestTypeRepository.Delete: DB error", zap.Uint("id", guestType.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IGuestTypeRepository = (*GuestTypeRepository)(nil)
