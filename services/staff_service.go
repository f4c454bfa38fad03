package services

import (
	"context"
	"fmt"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/repositories"

	"go.uber.org/zap"
)

type StaffServiceError string

func (e StaffServiceError) Error() string { return string(e) }

const (
	ErrStaffNotFound      StaffServiceError = "staff not found"
	ErrStaffUsernameTaken StaffServiceError = "username already in use"
	ErrStaffInvalidInput  StaffServiceError = "invalid input"
)

var staffUpdatableFields = map[string]bool{
	"full_name":             true,
	"username":              true,
	"phone":                 true,
	"can_checkin":           true,
	"can_redeem_souvenir":   true,
	"can_redeem_snack":      true,
	"can_access_vip_lounge": true,
	"is_active":             true,
}

type CreateStaffInput struct {
	Username           string `json:"username"`
	Password           string `json:"password"`
	FullName           string `json:"full_name"`
	Phone              string `json:"phone"`
	CanCheckin         bool   `json:"can_checkin"`
	CanRedeemSouvenir  bool   `json:"can_redeem_souvenir"`
	CanRedeemSnack     bool   `json:"can_redeem_snack"`
	CanAccessVIPLounge bool   `json:"can_access_vip_lounge"`
}

// IStaffService manages guestbook staff accounts under a client's event.
type IStaffService interface {
	CreateStaff(ctx context.Context, clientID, eventID uint, input CreateStaffInput) (*models.Staff, error)
	GetStaff(ctx context.Context, clientID, eventID, staffID uint) (*models.Staff, error)
	ListStaff(ctx context.Context, clientID, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateStaff(ctx context.Context, clientID, eventID, staffID uint, data map[string]interface{}) (*models.Staff, error)
	DeleteStaff(ctx context.Context, clientID, eventID, staffID uint) error
	ListStaffLogs(ctx context.Context, clientID, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
}

type StaffService struct {
	staffRepo    repositories.IStaffRepository
	staffLogRepo repositories.IStaffLogRepository
	eventRepo    repositories.IEventRepository
}

func NewStaffService() IStaffService {
	return &StaffService{
		staffRepo:    repositories.NewStaffRepository(),
		staffLogRepo: repositories.NewStaffLogRepository(),
		eventRepo:    repositories.NewEventRepository(),
	}
}

// resolveOwnedStaff loads a staff row and verifies it belongs to an event
// the client owns.
func (s *StaffService) resolveOwnedStaff(ctx context.Context, clientID, eventID, staffID uint) (*models.Staff, error) {
	if _, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID); err != nil {
		if err == ErrEventNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if staff.EventID != eventID {
		return nil, ErrStaffNotFound
	}
	return staff, nil
}

func (s *StaffService) CreateStaff(ctx context.Context, clientID, eventID uint, input CreateStaffInput) (*models.Staff, error) {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		if err == ErrEventNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	if input.Username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrStaffInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrStaffInvalidInput)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	staff := &models.Staff{
		EventID:            event.ID,
		Username:           input.Username,
		PasswordHash:       hash,
		FullName:           input.FullName,
		Phone:              input.Phone,
		CanCheckin:         input.CanCheckin,
		CanRedeemSouvenir:  input.CanRedeemSouvenir,
		CanRedeemSnack:     input.CanRedeemSnack,
		CanAccessVIPLounge: input.CanAccessVIPLounge,
		IsActive:           true,
	}
	ctxWithUser := models.ContextWithUserID(ctx, clientID)
	if err := s.staffRepo.Create(ctxWithUser, staff); err != nil {
		// The composite index on (event_id, username) is the only source
		// of truth for uniqueness; no pre-check races against it.
		if err == repositories.ErrDuplicate {
			return nil, ErrStaffUsernameTaken
		}
		configslog.Log.Error("CreateStaff: create failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("staff created: id=%d event=%d username=%s", staff.ID, event.ID, staff.Username)
	return staff, nil
}

func (s *StaffService) GetStaff(ctx context.Context, clientID, eventID, staffID uint) (*models.Staff, error) {
	return s.resolveOwnedStaff(ctx, clientID, eventID, staffID)
}

func (s *StaffService) ListStaff(ctx context.Context, clientID, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		if err == ErrEventNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	params.Validate()
	rows, total, err := s.staffRepo.FindAllByEventIDPaginated(ctx, event.ID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: rows,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

func (s *StaffService) UpdateStaff(ctx context.Context, clientID, eventID, staffID uint, data map[string]interface{}) (*models.Staff, error) {
	staff, err := s.resolveOwnedStaff(ctx, clientID, eventID, staffID)
	if err != nil {
		return nil, err
	}
	patch := make(map[string]interface{}, len(data))
	for key, value := range data {
		if staffUpdatableFields[key] {
			patch[key] = value
		}
	}
	// password travels as plain text and is stored hashed
	if raw, ok := data["password"]; ok {
		plain, isStr := raw.(string)
		if !isStr || len(plain) < 8 {
			return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrStaffInvalidInput)
		}
		hash, hashErr := HashPassword(plain)
		if hashErr != nil {
			return nil, hashErr
		}
		patch["password_hash"] = hash
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrStaffInvalidInput)
	}
	if username, ok := patch["username"]; ok {
		if str, isStr := username.(string); !isStr || str == "" {
			return nil, fmt.Errorf("%w: username cannot be empty", ErrStaffInvalidInput)
		}
	}
	if err := s.staffRepo.Update(ctx, staff.ID, patch, clientID); err != nil {
		if err == repositories.ErrDuplicate {
			return nil, ErrStaffUsernameTaken
		}
		if err == repositories.ErrNotFound {
			return nil, ErrStaffNotFound
		}
		configslog.Log.Error("UpdateStaff: update failed", zap.Uint("staffID", staff.ID), zap.Error(err))
		return nil, err
	}
	return s.staffRepo.FindByID(ctx, staff.ID)
}

func (s *StaffService) DeleteStaff(ctx context.Context, clientID, eventID, staffID uint) error {
	staff, err := s.resolveOwnedStaff(ctx, clientID, eventID, staffID)
	if err != nil {
		return err
	}
	if err := s.staffRepo.Delete(ctx, staff, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return ErrStaffNotFound
		}
		configslog.Log.Error("DeleteStaff: delete failed", zap.Uint("staffID", staff.ID), zap.Error(err))
		return err
	}
	configslog.SLog.Infof("staff deleted: id=%d event=%d", staff.ID, eventID)
	return nil
}

func (s *StaffService) ListStaffLogs(ctx context.Context, clientID, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		if err == ErrEventNotFound {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	params.Validate()
	rows, total, err := s.staffLogRepo.FindAllByEventIDPaginated(ctx, event.ID, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: rows,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

var _ IStaffService = (*StaffService)(nil)
