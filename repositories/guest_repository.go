package repositories

import (
	"context"
	"errors"
	"strings"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IGuestRepository covers guest persistence under an event.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.EventGuest) error
	FindByID(ctx context.Context, id uint) (*models.EventGuest, error)
	FindByQRToken(ctx context.Context, token string) (*models.EventGuest, error)
	FindAllByEventIDPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.EventGuest, int64, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.EventGuest, error)
	FindUnassignedByEventID(ctx context.Context, eventID uint) ([]models.EventGuest, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, guest *models.EventGuest, deletedByUserID uint) error
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	CountCheckedInByEventID(ctx context.Context, eventID uint) (int64, error)
	CountWalkinsByEventID(ctx context.Context, eventID uint) (int64, error)
	CountAssignedBySeatingConfig(ctx context.Context, eventID uint) (map[uint]int, error)
}

type GuestRepository struct {
	db *gorm.DB
}

func NewGuestRepository() IGuestRepository {
	return &GuestRepository{db: configs.GetDB()}
}

func NewGuestRepositoryTx(tx *gorm.DB) IGuestRepository {
	return &GuestRepository{db: tx}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *GuestRepository) Create(ctx context.Context, guest *models.EventGuest) error {
	if guest == nil || guest.EventID == 0 {
		return errors.New("guest must carry its owning event")
	}
	if err := r.getDB(ctx).Create(guest).Error; err != nil {
		if isDuplicateError(err) {
			return ErrDuplicate
		}
		configslog.Log.Error("GuestRepository.Create: DB error", zap.Uint("eventID", guest.EventID), zap.Error(err))
		return err
	}
	return nil
}

func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.EventGuest, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var guest models.EventGuest
	if err := r.getDB(ctx).Preload("GuestType").First(&guest, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("GuestRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &guest, nil
}

// FindByQRToken resolves an opaque QR payload to exactly one guest.
func (r *GuestRepository) FindByQRToken(ctx context.Context, token string) (*models.EventGuest, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var guest models.EventGuest
	err := r.getDB(ctx).Preload("GuestType").Where("qr_token = ?", token).First(&guest).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &guest, nil
}

var guestSortColumns = map[string]string{
	"id":            "id",
	"created_at":    "created_at",
	"name":          "name",
	"source":        "source",
	"is_checked_in": "is_checked_in",
	"checked_in_at": "checked_in_at",
}

func (r *GuestRepository) FindAllByEventIDPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.EventGuest, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("invalid event id")
	}
	var rows []models.EventGuest
	var totalCount int64

	query := r.getDB(ctx).Model(&models.EventGuest{}).Where("event_id = ?", eventID)
	if params.Name != "" {
		pattern := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where("LOWER(name) LIKE ? OR phone LIKE ?", pattern, "%"+params.Name+"%")
	}
	if params.Status != "" {
		query = query.Where("is_checked_in = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("GuestRepository.Count: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return rows, 0, nil
	}

	orderColumn, ok := guestSortColumns[params.SortBy]
	if !ok {
		orderColumn = "created_at"
	}
	err := query.Preload("GuestType").
		Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.Find: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, totalCount, err
	}
	return rows, totalCount, nil
}

// FindAllByEventID loads the full guest list in insertion order (export).
func (r *GuestRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.EventGuest, error) {
	if eventID == 0 {
		return nil, errors.New("invalid event id")
	}
	var rows []models.EventGuest
	err := r.getDB(ctx).Preload("GuestType").
		Where("event_id = ?", eventID).Order("id asc").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.FindAllByEventID: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// FindUnassignedByEventID loads guests without a seating assignment in
// insertion order. Auto-assign depends on this order being stable.
func (r *GuestRepository) FindUnassignedByEventID(ctx context.Context, eventID uint) ([]models.EventGuest, error) {
	if eventID == 0 {
		return nil, errors.New("invalid event id")
	}
	var rows []models.EventGuest
	err := r.getDB(ctx).
		Where("event_id = ? AND seating_config_id IS NULL", eventID).
		Order("id asc").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.FindUnassigned: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

func (r *GuestRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.EventGuest{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		if isDuplicateError(result.Error) {
			return ErrDuplicate
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) Delete(ctx context.Context, guest *models.EventGuest, deletedByUserID uint) error {
	if guest == nil || guest.ID == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Unscoped().Where("id = ?", guest.ID).Delete(&models.EventGuest{})
	if result.Error != nil {
		configslog.Log.Error("GuestRepository.Delete: DB error", zap.Uint("id", guest.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *GuestRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.EventGuest{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *GuestRepository) CountCheckedInByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.EventGuest{}).
		Where("event_id = ? AND is_checked_in = ?", eventID, true).Count(&count).Error
	return count, err
}

func (r *GuestRepository) CountWalkinsByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.EventGuest{}).
		Where("event_id = ? AND source = ?", eventID, models.GuestSourceWalkin).Count(&count).Error
	return count, err
}

// CountAssignedBySeatingConfig returns occupied capacity per seating config.
func (r *GuestRepository) CountAssignedBySeatingConfig(ctx context.Context, eventID uint) (map[uint]int, error) {
	type row struct {
		SeatingConfigID uint
		N               int
	}
	var rows []row
	err := r.getDB(ctx).Model(&models.EventGuest{}).
		Select("seating_config_id, count(*) as n").
		Where("event_id = ? AND seating_config_id IS NOT NULL", eventID).
		Group("seating_config_id").
		Scan(&rows).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.CountAssigned: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	counts := make(map[uint]int, len(rows))
	for _, r := range rows {
		counts[r.SeatingConfigID] = r.N
	}
	return counts, nil
}

var _ IGuestRepository = (*GuestRepository)(nil)
