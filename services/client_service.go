package services

import (
	"context"
	"fmt"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type ClientServiceError string

func (e ClientServiceError) Error() string { return string(e) }

const (
	ErrClientNotFound     ClientServiceError = "client not found"
	ErrClientInvalidInput ClientServiceError = "invalid input"
	ErrWrongPassword      ClientServiceError = "current password is incorrect"
)

var clientUpdatableFields = map[string]bool{
	"name":             true,
	"email":            true,
	"message_template": true,
}

// IClientService exposes the authenticated client's own profile.
type IClientService interface {
	GetProfile(ctx context.Context, clientID uint) (*models.Client, error)
	UpdateProfile(ctx context.Context, clientID uint, data map[string]interface{}) (*models.Client, error)
	ChangePassword(ctx context.Context, clientID uint, current, next string) error
}

type ClientService struct {
	clientRepo repositories.IClientRepository
}

func NewClientService() IClientService {
	return &ClientService{clientRepo: repositories.NewClientRepository()}
}

func (s *ClientService) GetProfile(ctx context.Context, clientID uint) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return client, nil
}

func (s *ClientService) UpdateProfile(ctx context.Context, clientID uint, data map[string]interface{}) (*models.Client, error) {
	patch := make(map[string]interface{}, len(data))
	for key, value := range data {
		if clientUpdatableFields[key] {
			patch[key] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrClientInvalidInput)
	}
	if name, ok := patch["name"]; ok {
		if str, isStr := name.(string); !isStr || str == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrClientInvalidInput)
		}
	}
	if err := s.clientRepo.Update(ctx, clientID, patch, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrClientNotFound
		}
		configslog.Log.Error("UpdateProfile: update failed", zap.Uint("clientID", clientID), zap.Error(err))
		return nil, err
	}
	return s.clientRepo.FindByID(ctx, clientID)
}

func (s *ClientService) ChangePassword(ctx context.Context, clientID uint, current, next string) error {
	if len(next) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", ErrClientInvalidInput)
	}
	client, err := s.clientRepo.FindByID(ctx, clientID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrClientNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(client.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}
	hash, err := HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.clientRepo.Update(ctx, clientID, map[string]interface{}{"password_hash": hash}, clientID); err != nil {
		configslog.Log.Error("ChangePassword: update failed", zap.Uint("clientID", clientID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("password changed: client=%d", clientID)
	return nil
}

var _ IClientService = (*ClientService)(nil)
