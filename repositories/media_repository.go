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

// IMediaRepository covers uploaded-media metadata rows.
type IMediaRepository interface {
	Create(ctx context.Context, media *models.ClientMedia) error
	FindByID(ctx context.Context, id uint) (*models.ClientMedia, error)
	FindAllByClientID(ctx context.Context, clientID uint, mediaType models.MediaType) ([]models.ClientMedia, error)
	CountByClientAndType(ctx context.Context, clientID uint, mediaType models.MediaType) (int64, error)
	Delete(ctx context.Context, media *models.ClientMedia, deletedByUserID uint) error
}

type MediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository() IMediaRepository {
	return &MediaRepository{db: configs.GetDB()}
}

func NewMediaRepositoryTx(tx *gorm.DB) IMediaRepository {
	return &MediaRepository{db: tx}
}

func (r *MediaRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *MediaRepository) Create(ctx context.Context, media *models.ClientMedia) error {
	if media == nil || media.ClientID == 0 {
		return errors.New("media must carry its owning client")
	}
	return translateError(r.getDB(ctx).Create(media).Error)
}

func (r *MediaRepository) FindByID(ctx context.Context, id uint) (*models.ClientMedia, error) {
	if id == 0 {
		return nil, ErrNotFound
	}
	var media models.ClientMedia
	if err := r.getDB(ctx).First(&media, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			configslog.Log.Error("MediaRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		}
		return nil, translateError(err)
	}
	return &media, nil
}

// FindAllByClientID lists a client's media, newest first, optionally
// filtered by type.
func (r *MediaRepository) FindAllByClientID(ctx context.Context, clientID uint, mediaType models.MediaType) ([]models.ClientMedia, error) {
	if clientID == 0 {
		return nil, errors.New("invalid client id")
	}
	query := r.getDB(ctx).Where("client_id = ?", clientID)
	if mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}
	var rows []models.ClientMedia
	if err := query.Order("created_at desc").Find(&rows).Error; err != nil {
		configslog.Log.Error("MediaRepository.FindAllByClientID: DB error", zap.Uint("clientID", clientID), zap.Error(err))
		return nil, err
	}
	return rows, nil
}

// CountByClientAndType returns current quota usage for one bucket.
func (r *MediaRepository) CountByClientAndType(ctx context.Context, clientID uint, mediaType models.MediaType) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.ClientMedia{}).
		Where("client_id = ? AND media_type = ?", clientID, mediaType).Count(&count).Error
	return count, err
}

func (r *MediaRepository) Delete(ctx context.Context, media *models.ClientMedia, deletedByUserID uint) error {
	if media == nil || media.ID == 0 {
		return ErrNotFound
	}
	result := r.getDB(ctx).Unscoped().Where("id = ?", media.ID).Delete(&models.ClientMedia{})
	if result.Error != nil {
		configslog.Log.Error("MediaRepository.Delete: DB error", zap.Uint("id", media.ID), zap.Error(result.Error))
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

var _ IMediaRepository = (*MediaRepository)(nil)
