package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/blobstore"
	"undangan.digital/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MediaServiceError string

func (e MediaServiceError) Error() string { return string(e) }

const (
	ErrMediaNotFound      MediaServiceError = "media not found"
	ErrMediaInvalidInput  MediaServiceError = "invalid input"
	ErrMediaQuotaExceeded MediaServiceError = "media quota exceeded for this type"
)

// MaxUploadBytes caps a single upload at 25 MiB.
const MaxUploadBytes = 25 << 20

type UploadMediaInput struct {
	EventID   *uint
	MediaType models.MediaType
	FileName  string
	MimeType  string
	SizeBytes int64
	Body      io.Reader
}

// IMediaService manages a client's uploaded media under per-type quotas.
type IMediaService interface {
	ListMedia(ctx context.Context, clientID uint, mediaType models.MediaType) ([]models.ClientMedia, error)
	UploadMedia(ctx context.Context, clientID uint, input UploadMediaInput) (*models.ClientMedia, error)
	DeleteMedia(ctx context.Context, clientID, mediaID uint) error
}

type MediaService struct {
	mediaRepo  repositories.IMediaRepository
	clientRepo repositories.IClientRepository
	store      blobstore.BlobStore
}

func NewMediaService(store blobstore.BlobStore) IMediaService {
	return &MediaService{
		mediaRepo:  repositories.NewMediaRepository(),
		clientRepo: repositories.NewClientRepository(),
		store:      store,
	}
}

func (s *MediaService) ListMedia(ctx context.Context, clientID uint, mediaType models.MediaType) ([]models.ClientMedia, error) {
	if mediaType != "" && !models.ValidMediaType(mediaType) {
		return nil, fmt.Errorf("%w: unknown media type %q", ErrMediaInvalidInput, mediaType)
	}
	return s.mediaRepo.FindAllByClientID(ctx, clientID, mediaType)
}

// UploadMedia stores the blob and its metadata row. The quota check runs
// with the client row locked, so two concurrent uploads cannot both slip
// under the limit.
func (s *MediaService) UploadMedia(ctx context.Context, clientID uint, input UploadMediaInput) (*models.ClientMedia, error) {
	if !models.ValidMediaType(input.MediaType) {
		return nil, fmt.Errorf("%w: unknown media type %q", ErrMediaInvalidInput, input.MediaType)
	}
	if input.FileName == "" || input.Body == nil {
		return nil, fmt.Errorf("%w: file is required", ErrMediaInvalidInput)
	}
	if input.SizeBytes <= 0 || input.SizeBytes > MaxUploadBytes {
		return nil, fmt.Errorf("%w: file size must be between 1 byte and %d bytes", ErrMediaInvalidInput, MaxUploadBytes)
	}

	ext := strings.ToLower(filepath.Ext(input.FileName))
	storedName := uuid.NewString() + ext

	var media *models.ClientMedia
	err := configs.GetDB().Transaction(func(tx *gorm.DB) error {
		clientRepo := repositories.NewClientRepositoryTx(tx)
		mediaRepo := repositories.NewMediaRepositoryTx(tx)

		client, err := clientRepo.FindByIDLocked(ctx, clientID)
		if err != nil {
			return err
		}
		quota := client.QuotaFor(input.MediaType)
		if quota < 0 {
			return fmt.Errorf("%w: unknown media type %q", ErrMediaInvalidInput, input.MediaType)
		}
		used, err := mediaRepo.CountByClientAndType(ctx, clientID, input.MediaType)
		if err != nil {
			return err
		}
		if used >= int64(quota) {
			return ErrMediaQuotaExceeded
		}

		url, err := s.store.Put(storedName, io.LimitReader(input.Body, MaxUploadBytes))
		if err != nil {
			return err
		}
		media = &models.ClientMedia{
			ClientID:   clientID,
			EventID:    input.EventID,
			MediaType:  input.MediaType,
			FileName:   input.FileName,
			StoredName: storedName,
			MimeType:   input.MimeType,
			SizeBytes:  input.SizeBytes,
			URL:        url,
		}
		ctxWithUser := models.ContextWithUserID(ctx, clientID)
		if err := mediaRepo.Create(ctxWithUser, media); err != nil {
			// the row rolled back, the blob must not outlive it
			_ = s.store.Remove(storedName)
			return err
		}
		return nil
	})
	if err != nil {
		if err == ErrMediaQuotaExceeded {
			return nil, ErrMediaQuotaExceeded
		}
		configslog.Log.Error("UploadMedia: transaction failed", zap.Uint("clientID", clientID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("media uploaded: id=%d client=%d type=%s", media.ID, clientID, media.MediaType)
	return media, nil
}

func (s *MediaService) DeleteMedia(ctx context.Context, clientID, mediaID uint) error {
	media, err := s.mediaRepo.FindByID(ctx, mediaID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrMediaNotFound
		}
		return err
	}
	if media.ClientID != clientID {
		return ErrMediaNotFound
	}
	if err := s.mediaRepo.Delete(ctx, media, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return ErrMediaNotFound
		}
		return err
	}
	if err := s.store.Remove(media.StoredName); err != nil {
		configslog.Log.Warn("DeleteMedia: blob removal failed", zap.String("storedName", media.StoredName), zap.Error(err))
	}
	configslog.SLog.Infof("media deleted: id=%d client=%d", media.ID, clientID)
	return nil
}

var _ IMediaService = (*MediaService)(nil)
