package services

import (
	"context"
	"fmt"
	"time"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/repositories"

	"go.uber.org/zap"
)

type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	// ErrEventNotFound covers both missing events and events owned by a
	// different client. Callers cannot distinguish the two cases.
	ErrEventNotFound     EventServiceError = "event not found"
	ErrEventInvalidInput EventServiceError = "invalid input"
)

// fields a client may patch on an event
var eventUpdatableFields = map[string]bool{
	"name":               true,
	"date":               true,
	"location":           true,
	"use_invitation":     true,
	"use_guestbook":      true,
	"allow_walkin":       true,
	"require_invitation": true,
	"auto_generate_qr":   true,
	"is_active":          true,
}

type CreateEventInput struct {
	Name              string     `json:"name"`
	Date              *time.Time `json:"date"`
	Location          string     `json:"location"`
	UseInvitation     bool       `json:"use_invitation"`
	UseGuestbook      bool       `json:"use_guestbook"`
	AllowWalkin       bool       `json:"allow_walkin"`
	RequireInvitation bool       `json:"require_invitation"`
	AutoGenerateQR    bool       `json:"auto_generate_qr"`
}

// IEventService manages a client's events. Every operation is scoped to
// the authenticated client.
type IEventService interface {
	CreateEvent(ctx context.Context, clientID uint, input CreateEventInput) (*models.Event, error)
	GetEvent(ctx context.Context, clientID, eventID uint) (*models.Event, error)
	ListEvents(ctx context.Context, clientID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateEvent(ctx context.Context, clientID, eventID uint, data map[string]interface{}) (*models.Event, error)
	DeleteEvent(ctx context.Context, clientID, eventID uint) error
}

type EventService struct {
	eventRepo repositories.IEventRepository
}

func NewEventService() IEventService {
	return &EventService{eventRepo: repositories.NewEventRepository()}
}

// resolveOwnedEvent loads an event and verifies the client owns it. A
// foreign event reads the same as a missing one.
func resolveOwnedEvent(ctx context.Context, repo repositories.IEventRepository, clientID, eventID uint) (*models.Event, error) {
	event, err := repo.FindByID(ctx, eventID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.ClientID != clientID {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (s *EventService) CreateEvent(ctx context.Context, clientID uint, input CreateEventInput) (*models.Event, error) {
	if clientID == 0 {
		return nil, ErrEventNotFound
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrEventInvalidInput)
	}
	event := &models.Event{
		ClientID:          clientID,
		Name:              input.Name,
		Location:          input.Location,
		UseInvitation:     input.UseInvitation,
		UseGuestbook:      input.UseGuestbook,
		AllowWalkin:       input.AllowWalkin,
		RequireInvitation: input.RequireInvitation,
		AutoGenerateQR:    input.AutoGenerateQR,
		IsActive:          true,
	}
	if input.Date != nil {
		event.Date = *input.Date
	}
	ctxWithUser := models.ContextWithUserID(ctx, clientID)
	if err := s.eventRepo.Create(ctxWithUser, event); err != nil {
		configslog.Log.Error("CreateEvent: create failed", zap.Uint("clientID", clientID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("event created: id=%d client=%d name=%s", event.ID, clientID, event.Name)
	return event, nil
}

func (s *EventService) GetEvent(ctx context.Context, clientID, eventID uint) (*models.Event, error) {
	return resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
}

func (s *EventService) ListEvents(ctx context.Context, clientID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	events, total, err := s.eventRepo.FindAllByClientIDPaginated(ctx, clientID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, clientID, eventID uint, data map[string]interface{}) (*models.Event, error) {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		return nil, err
	}
	patch := make(map[string]interface{}, len(data))
	for key, value := range data {
		if eventUpdatableFields[key] {
			patch[key] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrEventInvalidInput)
	}
	if name, ok := patch["name"]; ok {
		if str, isStr := name.(string); !isStr || str == "" {
			return nil, fmt.Errorf("%w: event name cannot be empty", ErrEventInvalidInput)
		}
	}
	if err := s.eventRepo.Update(ctx, event.ID, patch, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrEventNotFound
		}
		configslog.Log.Error("UpdateEvent: update failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	return s.eventRepo.FindByID(ctx, event.ID)
}

func (s *EventService) DeleteEvent(ctx context.Context, clientID, eventID uint) error {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		return err
	}
	if err := s.eventRepo.Delete(ctx, event, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return ErrEventNotFound
		}
		configslog.Log.Error("DeleteEvent: delete failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("event deleted: id=%d client=%d", event.ID, clientID)
	return nil
}

var _ IEventService = (*EventService)(nil)
