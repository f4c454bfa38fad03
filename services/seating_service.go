package services

import (
	"context"
	"fmt"
	"sort"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SeatingServiceError string

func (e SeatingServiceError) Error() string { return string(e) }

const (
	ErrSeatingNotFound     SeatingServiceError = "seating config not found"
	ErrSeatingInvalidInput SeatingServiceError = "invalid input"
	ErrSeatingFull         SeatingServiceError = "seating config is at capacity"
	ErrSeatingTypeRejected SeatingServiceError = "guest type is not allowed at this seating"
)

var seatingUpdatableFields = map[string]bool{
	"name":                true,
	"kind":                true,
	"capacity":            true,
	"allowed_guest_types": true,
}

type CreateSeatingInput struct {
	Name              string             `json:"name"`
	Kind              models.SeatingKind `json:"kind"`
	Capacity          int                `json:"capacity"`
	AllowedGuestTypes models.UintList    `json:"allowed_guest_types"`
}

// SeatingView is a config plus its current occupancy.
type SeatingView struct {
	models.SeatingConfig
	Occupied int `json:"occupied"`
}

// AutoAssignResult summarizes one auto-assignment run.
type AutoAssignResult struct {
	Assigned   int `json:"assigned"`
	Unassigned int `json:"unassigned"`
}

// ISeatingService manages seating layouts and guest placement for an event.
type ISeatingService interface {
	CreateSeating(ctx context.Context, clientID, eventID uint, input CreateSeatingInput) (*models.SeatingConfig, error)
	CreateSeatingBatch(ctx context.Context, clientID, eventID uint, inputs []CreateSeatingInput) ([]models.SeatingConfig, error)
	ListSeating(ctx context.Context, clientID, eventID uint) ([]SeatingView, error)
	UpdateSeating(ctx context.Context, clientID, eventID, seatingID uint, data map[string]interface{}) (*models.SeatingConfig, error)
	DeleteSeating(ctx context.Context, clientID, eventID, seatingID uint) error

	AssignGuest(ctx context.Context, clientID, eventID, guestID, seatingID uint) (*models.EventGuest, error)
	UnassignGuest(ctx context.Context, clientID, eventID, guestID uint) (*models.EventGuest, error)
	AutoAssign(ctx context.Context, clientID, eventID uint) (*AutoAssignResult, error)
}

type SeatingService struct {
	seatingRepo repositories.ISeatingRepository
	guestRepo   repositories.IGuestRepository
	eventRepo   repositories.IEventRepository
}

func NewSeatingService() ISeatingService {
	return &SeatingService{
		seatingRepo: repositories.NewSeatingRepository(),
		guestRepo:   repositories.NewGuestRepository(),
		eventRepo:   repositories.NewEventRepository(),
	}
}

func (s *SeatingService) ownedEvent(ctx context.Context, clientID, eventID uint) (*models.Event, error) {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		if err == ErrEventNotFound {
			return nil, ErrSeatingNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *SeatingService) resolveOwnedSeating(ctx context.Context, clientID, eventID, seatingID uint) (*models.SeatingConfig, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		return nil, err
	}
	config, err := s.seatingRepo.FindByID(ctx, seatingID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrSeatingNotFound
		}
		return nil, err
	}
	if config.EventID != eventID {
		return nil, ErrSeatingNotFound
	}
	return config, nil
}

func validateSeatingInput(input CreateSeatingInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: seating name is required", ErrSeatingInvalidInput)
	}
	if !models.ValidSeatingKind(input.Kind) {
		return fmt.Errorf("%w: unknown seating kind %q", ErrSeatingInvalidInput, input.Kind)
	}
	if input.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", ErrSeatingInvalidInput)
	}
	return nil
}

func (s *SeatingService) CreateSeating(ctx context.Context, clientID, eventID uint, input CreateSeatingInput) (*models.SeatingConfig, error) {
	event, err := s.ownedEvent(ctx, clientID, eventID)
	if err != nil {
		return nil, err
	}
	if err := validateSeatingInput(input); err != nil {
		return nil, err
	}
	config := &models.SeatingConfig{
		EventID:           event.ID,
		Name:              input.Name,
		Kind:              input.Kind,
		Capacity:          input.Capacity,
		AllowedGuestTypes: input.AllowedGuestTypes,
	}
	ctxWithUser := models.ContextWithUserID(ctx, clientID)
	if err := s.seatingRepo.Create(ctxWithUser, config); err != nil {
		configslog.Log.Error("CreateSeating: create failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	return config, nil
}

func (s *SeatingService) CreateSeatingBatch(ctx context.Context, clientID, eventID uint, inputs []CreateSeatingInput) ([]models.SeatingConfig, error) {
	event, err := s.ownedEvent(ctx, clientID, eventID)
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: empty seating batch", ErrSeatingInvalidInput)
	}
	configsBatch := make([]*models.SeatingConfig, 0, len(inputs))
	for _, input := range inputs {
		if err := validateSeatingInput(input); err != nil {
			return nil, err
		}
		configsBatch = append(configsBatch, &models.SeatingConfig{
			EventID:           event.ID,
			Name:              input.Name,
			Kind:              input.Kind,
			Capacity:          input.Capacity,
			AllowedGuestTypes: input.AllowedGuestTypes,
		})
	}
	ctxWithUser := models.ContextWithUserID(ctx, clientID)
	if err := s.seatingRepo.CreateBatch(ctxWithUser, configsBatch); err != nil {
		configslog.Log.Error("CreateSeatingBatch: create failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	out := make([]models.SeatingConfig, len(configsBatch))
	for i, c := range configsBatch {
		out[i] = *c
	}
	return out, nil
}

func (s *SeatingService) ListSeating(ctx context.Context, clientID, eventID uint) ([]SeatingView, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		return nil, err
	}
	rows, err := s.seatingRepo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	counts, err := s.guestRepo.CountAssignedBySeatingConfig(ctx, eventID)
	if err != nil {
		return nil, err
	}
	views := make([]SeatingView, len(rows))
	for i, row := range rows {
		views[i] = SeatingView{SeatingConfig: row, Occupied: counts[row.ID]}
	}
	return views, nil
}

func (s *SeatingService) UpdateSeating(ctx context.Context, clientID, eventID, seatingID uint, data map[string]interface{}) (*models.SeatingConfig, error) {
	config, err := s.resolveOwnedSeating(ctx, clientID, eventID, seatingID)
	if err != nil {
		return nil, err
	}
	patch := make(map[string]interface{}, len(data))
	for key, value := range data {
		if seatingUpdatableFields[key] {
			patch[key] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrSeatingInvalidInput)
	}
	if kind, ok := patch["kind"]; ok {
		str, isStr := kind.(string)
		if !isStr || !models.ValidSeatingKind(models.SeatingKind(str)) {
			return nil, fmt.Errorf("%w: unknown seating kind", ErrSeatingInvalidInput)
		}
	}
	if capRaw, ok := patch["capacity"]; ok {
		capVal, convErr := toUint(capRaw)
		if convErr != nil || capVal == 0 {
			return nil, fmt.Errorf("%w: capacity must be positive", ErrSeatingInvalidInput)
		}
		patch["capacity"] = int(capVal)
	}
	if err := s.seatingRepo.Update(ctx, config.ID, patch, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrSeatingNotFound
		}
		return nil, err
	}
	return s.seatingRepo.FindByID(ctx, config.ID)
}

// DeleteSeating removes the config and releases its guests back to the
// unassigned pool in the same transaction.
func (s *SeatingService) DeleteSeating(ctx context.Context, clientID, eventID, seatingID uint) error {
	config, err := s.resolveOwnedSeating(ctx, clientID, eventID, seatingID)
	if err != nil {
		return err
	}
	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.WithContext(ctx).Model(&models.EventGuest{}).
			Where("seating_config_id = ?", config.ID).
			Update("seating_config_id", nil).Error; err != nil {
			return err
		}
		return repositories.NewSeatingRepositoryTx(tx).Delete(ctx, config, clientID)
	})
	if err != nil {
		if err == repositories.ErrNotFound {
			return ErrSeatingNotFound
		}
		configslog.Log.Error("DeleteSeating: delete failed", zap.Uint("seatingID", config.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *SeatingService) AssignGuest(ctx context.Context, clientID, eventID, guestID, seatingID uint) (*models.EventGuest, error) {
	config, err := s.resolveOwnedSeating(ctx, clientID, eventID, seatingID)
	if err != nil {
		return nil, err
	}
	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if guest.EventID != eventID {
		return nil, ErrGuestNotFound
	}
	if !config.Accepts(guest.GuestTypeID) {
		return nil, ErrSeatingTypeRejected
	}

	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		var occupied int64
		if err := tx.WithContext(ctx).Model(&models.EventGuest{}).
			Where("seating_config_id = ? AND id <> ?", config.ID, guest.ID).
			Count(&occupied).Error; err != nil {
			return err
		}
		if occupied >= int64(config.Capacity) {
			return ErrSeatingFull
		}
		return repositories.NewGuestRepositoryTx(tx).
			Update(ctx, guest.ID, map[string]interface{}{"seating_config_id": config.ID}, clientID)
	})
	if err != nil {
		if err == ErrSeatingFull {
			return nil, ErrSeatingFull
		}
		configslog.Log.Error("AssignGuest: transaction failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, err
	}
	return s.guestRepo.FindByID(ctx, guest.ID)
}

func (s *SeatingService) UnassignGuest(ctx context.Context, clientID, eventID, guestID uint) (*models.EventGuest, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		if err == ErrSeatingNotFound {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if guest.EventID != eventID {
		return nil, ErrGuestNotFound
	}
	if guest.SeatingConfigID == nil {
		return guest, nil
	}
	if err := s.guestRepo.Update(ctx, guest.ID, map[string]interface{}{"seating_config_id": nil}, clientID); err != nil {
		return nil, err
	}
	return s.guestRepo.FindByID(ctx, guest.ID)
}

// AutoAssign places every unassigned guest greedily. Restricted configs
// are tried before unrestricted ones so open seating is not consumed by
// guests who have a reserved section; within each band configs keep
// creation order, and guests are walked in creation order. Re-running
// after a full pass is a no-op.
func (s *SeatingService) AutoAssign(ctx context.Context, clientID, eventID uint) (*AutoAssignResult, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		return nil, err
	}

	result := &AutoAssignResult{}
	err := configs.GetDB().Transaction(func(tx *gorm.DB) error {
		guestRepo := repositories.NewGuestRepositoryTx(tx)
		seatingRepo := repositories.NewSeatingRepositoryTx(tx)

		seatings, err := seatingRepo.FindAllByEventID(ctx, eventID)
		if err != nil {
			return err
		}
		counts, err := guestRepo.CountAssignedBySeatingConfig(ctx, eventID)
		if err != nil {
			return err
		}
		guests, err := guestRepo.FindUnassignedByEventID(ctx, eventID)
		if err != nil {
			return err
		}

		ordered := make([]models.SeatingConfig, len(seatings))
		copy(ordered, seatings)
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Restricted() && !ordered[j].Restricted()
		})

		for _, guest := range guests {
			placed := false
			for i := range ordered {
				config := &ordered[i]
				if counts[config.ID] >= config.Capacity {
					continue
				}
				if !config.Accepts(guest.GuestTypeID) {
					continue
				}
				if err := guestRepo.Update(ctx, guest.ID, map[string]interface{}{"seating_config_id": config.ID}, clientID); err != nil {
					return err
				}
				counts[config.ID]++
				result.Assigned++
				placed = true
				break
			}
			if !placed {
				result.Unassigned++
			}
		}
		return nil
	})
	if err != nil {
		configslog.Log.Error("AutoAssign: transaction failed", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("auto-assign complete: event=%d assigned=%d unassigned=%d", eventID, result.Assigned, result.Unassigned)
	return result, nil
}

var _ ISeatingService = (*SeatingService)(nil)
