package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventRepository covers event persistence. Every read is scoped to the
// owning client; there is no unscoped listing.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindAllByClientIDPaginated(ctx context.Context, clientID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error
	CountByClientID(ctx context.Context, clientID uint) (int64, error)
}

type EventRepository struct {
	db *gorm.DB
}

func NewEventRepository() IEventRepository {
	return &EventRepository{db: configs.GetDB()}
}

func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return &EventRepository{db: tx}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil || event.ClientID == 0 {
		return errors.New("event must carry its owning client")
	}
	return translateError(r.getDB(ctx).Create(event).Error)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var event models.Event
	if err := r.getDB(ctx).First(&event, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &event, nil
}

// allowed sort columns for event listings
var eventSortColumns = map[string]string{
	"id":         "id",
	"created_at": "created_at",
	"name":       "name",
	"date":       "date",
	"is_active":  "is_active",
}

func (r *EventRepository) FindAllByClientIDPaginated(ctx context.Context, clientID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	if clientID == 0 {
		return nil, 0, errors.New("invalid client id")
	}
	var events []models.Event
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Event{}).Where("client_id = ?", clientID)
	if params.Name != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(params.Name)+"%")
	}
	if params.Status != "" {
		query = query.Where("is_active = ?", params.Status == "true")
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository.Count: DB error", zap.Uint("clientID", clientID), zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return events, 0, nil
	}

	orderColumn, ok := eventSortColumns[params.SortBy]
	if !ok {
		orderColumn = "created_at"
	}
	query = query.Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset())

	if err := query.Find(&events).Error; err != nil {
		configslog.Log.Error("EventRepository.Find: DB error", zap.Uint("clientID", clientID), zap.Error(err))
		return nil, totalCount, err
	}
	return events, totalCount, nil
}

func (r *EventRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.Event{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return ErrNotFound
	}
	return r.getDB(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		updateData := map[string]interface{}{"deleted_at": now, "deleted_by": &deletedByUserID}
		result := tx.Model(event).Where("id = ? AND deleted_at IS NULL", event.ID).Updates(updateData)
		if result.Error != nil {
			configslog.Log.Error("EventRepository.Delete: DB error", zap.Uint("id", event.ID), zap.Error(result.Error))
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *EventRepository) CountByClientID(ctx context.Context, clientID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Event{}).Where("client_id = ?", clientID).Count(&count).Error
	return count, err
}

var _ IEventRepository = (*EventRepository)(nil)
