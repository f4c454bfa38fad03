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

// IStaffRepository covers staff persistence under an event. Username
// uniqueness is enforced by the composite unique index; Create translates
// the constraint violation to ErrDuplicate instead of pre-checking.
type IStaffRepository interface {
	Create(ctx context.Context, staff *models.Staff) error
	FindByID(ctx context.Context, id uint) (*models.Staff, error)
	FindByEventAndUsername(ctx context.Context, eventID uint, username string) (*models.Staff, error)
	FindAllByEventIDPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.Staff, int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, staff *models.Staff, deletedByUserID uint) error
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
}

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository() IStaffRepository {
	return &StaffRepository{db: configs.GetDB()}
}

func NewStaffRepositoryTx(tx *gorm.DB) IStaffRepository {
	return &StaffRepository{db: tx}
}

func (r *StaffRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if staff == nil || staff.EventID == 0 {
		return errors.New("staff must carry its owning event")
	}
	if err := r.getDB(ctx).Create(staff).Error; err != nil {
		if isDuplicateError(err) {
			return ErrDuplicate
		}
		configslog.Log.Error("StaffRepository.Create: DB error", zap.Uint("eventID", staff.EventID), zap.Error(err))
		return err
	}
	return nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id uint) (*models.Staff, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var staff models.Staff
	if err := r.getDB(ctx).First(&staff, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("StaffRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &staff, nil
}

func (r *StaffRepository) FindByEventAndUsername(ctx context.Context, eventID uint, username string) (*models.Staff, error) {
	if eventID == 0 || username == "" {
		return nil, ErrNotFound
	}
	var staff models.Staff
	err := r.getDB(ctx).Where("event_id = ? AND username = ?", eventID, username).First(&staff).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &staff, nil
}

var staffSortColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"username":   "username",
	"full_name":  "full_name",
	"is_active":  "is_active",
}

func (r *StaffRepository) FindAllByEventIDPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.Staff, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("invalid event id")
	}
	var rows []models.Staff
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Staff{}).Where("event_id = ?", eventID)
	if params.Name != "" {
		pattern := "%" + strings.ToLower(params.Name) + "%"
		query = query.Where("LOWER(full_name) LIKE ? OR LOWER(username) LIKE ?", pattern, pattern)
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("StaffRepository.Count: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return rows, 0, nil
	}

	orderColumn, ok := staffSortColumns[params.SortBy]
	if !ok {
		orderColumn = "created_at"
	}
	err := query.Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("StaffRepository.Find: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, totalCount, err
	}
	return rows, totalCount, nil
}

func (r *StaffRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.Staff{}).Where("id = ?", id).Updates(data)
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

// Delete removes the row permanently. Staff usernames must become reusable
// after deletion, so no tombstone is kept.
func (r *StaffRepository) Delete(ctx context.Context, staff *models.Staff, deletedByUserID uint) error {
	if staff == nil || staff.ID == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Unscoped().Where("id = ?", staff.ID).Delete(&models.Staff{})
	if result.Error != nil {
		configslog.Log.Error("StaffRepository.Delete: DB error", zap.Uint("id", staff.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *StaffRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Staff{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

var _ IStaffRepository = (*StaffRepository)(nil)
