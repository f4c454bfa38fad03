package repositories

import (
	"context"
	"errors"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IStaffLogRepository covers the append-only staff audit trail. There is
// deliberately no update or delete.
type IStaffLogRepository interface {
	Create(ctx context.Context, entry *models.StaffLog) error
	FindAllByEventIDPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.StaffLog, int64, error)
	FindAllByGuestID(ctx context.Context, guestID uint) ([]models.StaffLog, error)
}

type StaffLogRepository struct {
	db *gorm.DB
}

func NewStaffLogRepository() IStaffLogRepository {
	return &StaffLogRepository{db: configs.GetDB()}
}

func NewStaffLogRepositoryTx(tx *gorm.DB) IStaffLogRepository {
	return &StaffLogRepository{db: tx}
}

func (r *StaffLogRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *StaffLogRepository) Create(ctx context.Context, entry *models.StaffLog) error {
	if entry == nil || entry.EventID == 0 || entry.StaffID == 0 || entry.GuestID == 0 {
		return errors.New("staff log entry must reference event, staff and guest")
	}
	if err := r.getDB(ctx).Create(entry).Error; err != nil {
		configslog.Log.Error("StaffLogRepository.Create: DB error", zap.Uint("eventID", entry.EventID), zap.Error(err))
		return err
	}
	return nil
}

func (r *StaffLogRepository) FindAllByEventIDPaginated(ctx context.Context, eventID uint, params queryparams.ListParams) ([]models.StaffLog, int64, error) {
	if eventID == 0 {
		return nil, 0, errors.New("invalid event id")
	}
	var rows []models.StaffLog
	var totalCount int64

	query := r.getDB(ctx).Model(&models.StaffLog{}).Where("event_id = ?", eventID)
	if params.Status != "" {
		query = query.Where("action = ?", params.Status)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("StaffLogRepository.Count: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return rows, 0, nil
	}

	err := query.Order("created_at " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("StaffLogRepository.Find: DB error", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, totalCount, err
	}
	return rows, totalCount, nil
}

func (r *StaffLogRepository) FindAllByGuestID(ctx context.Context, guestID uint) ([]models.StaffLog, error) {
	if guestID == 0 {
		return nil, errors.New("invalid guest id")
	}
	var rows []models.StaffLog
	err := r.getDB(ctx).Where("guest_id = ?", guestID).Order("created_at asc").Find(&rows).Error
	if err != nil {
		configslog.Log.Error("StaffLogRepository.FindAllByGuestID: DB error", zap.Uint("guestID", guestID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

var _ IStaffLogRepository = (*StaffLogRepository)(nil)
