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

// IRegistrationRepository covers invitation-content persistence.
type IRegistrationRepository interface {
	Create(ctx context.Context, registration *models.Registration) error
	FindByID(ctx context.Context, id uint) (*models.Registration, error)
	FindByClientID(ctx context.Context, clientID uint) (*models.Registration, error)
	FindActiveBySlug(ctx context.Context, slug string) (*models.Registration, error)
	FindByOrderID(ctx context.Context, orderID uint) (*models.Registration, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
}

type RegistrationRepository struct {
	db *gorm.DB
}

func NewRegistrationRepository() IRegistrationRepository {
	return &RegistrationRepository{db: configs.GetDB()}
}

func NewRegistrationRepositoryTx(tx *gorm.DB) IRegistrationRepository {
	return &RegistrationRepository{db: tx}
}

func (r *RegistrationRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *RegistrationRepository) Create(ctx context.Context, registration *models.Registration) error {
	if registration == nil || registration.ClientID == 0 || registration.Slug == "" {
		return errors.New("registration must carry its client and slug")
	}
	return translateError(r.getDB(ctx).Create(registration).Error)
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (*models.Registration, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var registration models.Registration
	if err := r.getDB(ctx).First(&registration, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("RegistrationRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &registration, nil
}

func (r *RegistrationRepository) FindByClientID(ctx context.Context, clientID uint) (*models.Registration, error) {
	if clientID == 0 {
		return nil, ErrNotFound
	}
	var registration models.Registration
	err := r.getDB(ctx).Where("client_id = ?", clientID).First(&registration).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &registration, nil
}

// FindActiveBySlug is the public lookup: unpublished registrations are
// indistinguishable from missing ones.
func (r *RegistrationRepository) FindActiveBySlug(ctx context.Context, slug string) (*models.Registration, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var registration models.Registration
	err := r.getDB(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&registration).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &registration, nil
}

func (r *RegistrationRepository) FindByOrderID(ctx context.Context, orderID uint) (*models.Registration, error) {
	if orderID == 0 {
		return nil, ErrNotFound
	}
	var registration models.Registration
	err := r.getDB(ctx).Where("order_id = ?", orderID).First(&registration).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &registration, nil
}

func (r *RegistrationRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.Registration{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IRegistrationRepository = (*RegistrationRepository)(nil)
