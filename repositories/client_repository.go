package repositories

import (
	"context"
	"errors"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IClientRepository covers tenant account persistence.
type IClientRepository interface {
	Create(ctx context.Context, client *models.Client) error
	FindByID(ctx context.Context, id uint) (*models.Client, error)
	FindByIDLocked(ctx context.Context, id uint) (*models.Client, error)
	FindByUsername(ctx context.Context, username string) (*models.Client, error)
	FindBySlug(ctx context.Context, slug string) (*models.Client, error)
	Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error
	SlugExists(ctx context.Context, slug string) (bool, error)
}

type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository() IClientRepository {
	return &ClientRepository{db: configs.GetDB()}
}

// NewClientRepositoryTx binds the repository to an open transaction.
func NewClientRepositoryTx(tx *gorm.DB) IClientRepository {
	return &ClientRepository{db: tx}
}

func (r *ClientRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *ClientRepository) Create(ctx context.Context, client *models.Client) error {
	if client == nil {
		return errors.New("client cannot be nil")
	}
	return translateError(r.getDB(ctx).Create(client).Error)
}

func (r *ClientRepository) FindByID(ctx context.Context, id uint) (*models.Client, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var client models.Client
	if err := r.getDB(ctx).First(&client, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("ClientRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &client, nil
}

// FindByIDLocked loads the client row under FOR UPDATE. Quota checks run
// against a locked row so concurrent uploads serialize.
func (r *ClientRepository) FindByIDLocked(ctx context.Context, id uint) (*models.Client, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var client models.Client
	err := r.getDB(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&client, id).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

func (r *ClientRepository) FindByUsername(ctx context.Context, username string) (*models.Client, error) {
	if username == "" {
		return nil, ErrNotFound
	}
	var client models.Client
	err := r.getDB(ctx).Where("username = ?", username).First(&client).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("ClientRepository.FindByUsername: DB error", zap.String("username", username), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &client, nil
}

func (r *ClientRepository) FindBySlug(ctx context.Context, slug string) (*models.Client, error) {
	if slug == "" {
		return nil, ErrNotFound
	}
	var client models.Client
	err := r.getDB(ctx).Where("slug = ?", slug).First(&client).Error
	if err != nil {
		return nil, translateError(err)
	}
	return &client, nil
}

// Update writes only the keys present in data; absent fields stay untouched.
func (r *ClientRepository) Update(ctx context.Context, id uint, data map[string]interface{}, updatedByUserID uint) error {
	if id == 0 {
		return ErrNotFound
	}
	if len(data) == 0 {
		return errors.New("update data cannot be empty")
	}
	ctxWithUser := models.ContextWithUserID(ctx, updatedByUserID)
	result := r.getDB(ctxWithUser).Model(&models.Client{}).Where("id = ?", id).Updates(data)
	if result.Error != nil {
		configslog.Log.Error("ClientRepository.Update: DB error", zap.Uint("id", id), zap.Error(result.Error))
		return translateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ClientRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Client{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ IClientRepository = (*ClientRepository)(nil)
