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
	"gorm.io/gorm/clause"
)

// IOrderRepository covers order persistence. Orders are admin-visible
// platform-wide; client scoping happens at the service layer.
type IOrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	FindByIDLocked(ctx context.Context, id uint) (*models.Order, error)
	FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Order, int64, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository() IOrderRepository {
	return &OrderRepository{db: configs.GetDB()}
}

func NewOrderRepositoryTx(tx *gorm.DB) IOrderRepository {
	return &OrderRepository{db: tx}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return errors.New("order cannot be nil")
	}
	return translateError(r.getDB(ctx).Create(order).Error)
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var order models.Order
	if err := r.getDB(ctx).First(&order, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("OrderRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &order, nil
}

// FindByIDLocked loads the order under FOR UPDATE so status transitions
// cannot interleave.
func (r *OrderRepository) FindByIDLocked(ctx context.Context, id uint) (*models.Order, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var order models.Order
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&order, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &order, nil
}

var orderSortColumns = map[string]string{
	"id":             "id",
	"created_at":     "created_at",
	"amount":         "amount",
	"payment_status": "payment_status",
	"order_status":   "order_status",
}

func (r *OrderRepository) FindAllPaginated(ctx context.Context, params queryparams.ListParams) ([]models.Order, int64, error) {
	var rows []models.Order
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Order{})
	if params.Status != "" {
		query = query.Where("payment_status = ?", params.Status)
	}
	if params.Name != "" {
		query = query.Where("slug = ?", params.Name)
	}

	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("OrderRepository.Count: DB error", zap.Error(err))
		return nil, 0, err
	}
	if totalCount == 0 {
		return rows, 0, nil
	}

	orderColumn, ok := orderSortColumns[params.SortBy]
	if !ok {
		orderColumn = "created_at"
	}
	err := query.Order(orderColumn + " " + params.OrderBy).
		Limit(params.PerPage).Offset(params.CalculateOffset()).
		Find(&rows).Error
	if err != nil {
		configslog.Log.Error("OrderRepository.Find: DB error", zap.Error(err))
		return nil, totalCount, err
	}
	return rows, totalCount, nil
}

func (r *OrderRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.Order{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SlugExists checks both live orders and provisioned registrations so a
// slug can never be sold twice.
func (r *OrderRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, errors.New("slug cannot be empty")
	}
	var count int64
	err := r.getDB(ctx).Model(&models.Order{}).
		Where("slug = ? AND order_status <> ?", slug, models.OrderStatusCancelled).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	err = r.getDB(ctx).Model(&models.Registration{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ IOrderRepository = (*OrderRepository)(nil)
