package services

import (
	"context"
	"fmt"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/repositories"

	"go.uber.org/zap"
)

type RegistrationServiceError string

func (e RegistrationServiceError) Error() string { return string(e) }

const (
	ErrRegistrationNotFound     RegistrationServiceError = "registration not found"
	ErrRegistrationInvalidInput RegistrationServiceError = "invalid input"
)

var registrationUpdatableFields = map[string]bool{
	"groom_name":  true,
	"bride_name":  true,
	"event_date":  true,
	"venues":      true,
	"love_story":  true,
	"gallery_url": true,
	"gift_info":   true,
}

// IRegistrationService manages the invitation content behind a client's
// public slug.
type IRegistrationService interface {
	GetMyRegistration(ctx context.Context, clientID uint) (*models.Registration, error)
	UpdateRegistration(ctx context.Context, clientID uint, data map[string]interface{}) (*models.Registration, error)
	Publish(ctx context.Context, clientID uint) (*models.Registration, error)
	Unpublish(ctx context.Context, clientID uint) (*models.Registration, error)
	PublicBySlug(ctx context.Context, slug string) (*models.Registration, error)
}

type RegistrationService struct {
	registrationRepo repositories.IRegistrationRepository
}

func NewRegistrationService() IRegistrationService {
	return &RegistrationService{registrationRepo: repositories.NewRegistrationRepository()}
}

func (s *RegistrationService) GetMyRegistration(ctx context.Context, clientID uint) (*models.Registration, error) {
	registration, err := s.registrationRepo.FindByClientID(ctx, clientID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

func (s *RegistrationService) UpdateRegistration(ctx context.Context, clientID uint, data map[string]interface{}) (*models.Registration, error) {
	registration, err := s.GetMyRegistration(ctx, clientID)
	if err != nil {
		return nil, err
	}
	patch := make(map[string]interface{}, len(data))
	for key, value := range data {
		if registrationUpdatableFields[key] {
			patch[key] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrRegistrationInvalidInput)
	}
	if err := s.registrationRepo.Update(ctx, registration.ID, patch, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrRegistrationNotFound
		}
		configslog.Log.Error("UpdateRegistration: update failed", zap.Uint("registrationID", registration.ID), zap.Error(err))
		return nil, err
	}
	return s.registrationRepo.FindByID(ctx, registration.ID)
}

func (s *RegistrationService) setActive(ctx context.Context, clientID uint, active bool) (*models.Registration, error) {
	registration, err := s.GetMyRegistration(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if registration.IsActive == active {
		return registration, nil
	}
	if err := s.registrationRepo.Update(ctx, registration.ID, map[string]interface{}{"is_active": active}, clientID); err != nil {
		return nil, err
	}
	configslog.SLog.Infof("registration visibility changed: id=%d active=%t", registration.ID, active)
	return s.registrationRepo.FindByID(ctx, registration.ID)
}

func (s *RegistrationService) Publish(ctx context.Context, clientID uint) (*models.Registration, error) {
	return s.setActive(ctx, clientID, true)
}

func (s *RegistrationService) Unpublish(ctx context.Context, clientID uint) (*models.Registration, error) {
	return s.setActive(ctx, clientID, false)
}

// PublicBySlug serves the public invitation page. Unpublished content is
// reported as missing.
func (s *RegistrationService) PublicBySlug(ctx context.Context, slug string) (*models.Registration, error) {
	registration, err := s.registrationRepo.FindActiveBySlug(ctx, slug)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrRegistrationNotFound
		}
		return nil, err
	}
	return registration, nil
}

var _ IRegistrationService = (*RegistrationService)(nil)
