package services

import (
	"context"
	"fmt"
	"time"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckinServiceError string

func (e CheckinServiceError) Error() string { return string(e) }

const (
	ErrCheckinGuestNotFound CheckinServiceError = "guest not found"
	ErrCheckinForbidden     CheckinServiceError = "staff account lacks permission for this action"
	ErrCheckinStaffInvalid  CheckinServiceError = "staff account is not valid for this event"
	ErrCheckinInvalidInput  CheckinServiceError = "invalid input"
)

type CheckinInput struct {
	ActualCompanions *int   `json:"actual_companions"`
	Notes            string `json:"notes"`
}

type RedeemInput struct {
	Action models.StaffLogAction `json:"action"`
	Notes  string                `json:"notes"`
}

// EventStats is the live counter block shown on the staff dashboard.
type EventStats struct {
	TotalGuests    int64 `json:"total_guests"`
	CheckedIn      int64 `json:"checked_in"`
	NotCheckedIn   int64 `json:"not_checked_in"`
	Walkins        int64 `json:"walkins"`
	TotalStaff     int64 `json:"total_staff"`
	TotalCompanion int64 `json:"total_companions"`
}

// ICheckinService is the staff-side guestbook surface: look up guests,
// check them in, redeem benefits and read event stats. Every call is
// scoped to the staff token's event.
type ICheckinService interface {
	CheckinByID(ctx context.Context, staffID, eventID, guestID uint, input CheckinInput) (*models.EventGuest, error)
	CheckinByQR(ctx context.Context, staffID, eventID uint, qrToken string, input CheckinInput) (*models.EventGuest, error)
	Redeem(ctx context.Context, staffID, eventID, guestID uint, input RedeemInput) (*models.StaffLog, error)
	SearchGuests(ctx context.Context, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GuestHistory(ctx context.Context, eventID, guestID uint) ([]models.StaffLog, error)
	Stats(ctx context.Context, eventID uint) (*EventStats, error)
}

type CheckinService struct {
	guestRepo    repositories.IGuestRepository
	staffRepo    repositories.IStaffRepository
	staffLogRepo repositories.IStaffLogRepository
}

func NewCheckinService() ICheckinService {
	return &CheckinService{
		guestRepo:    repositories.NewGuestRepository(),
		staffRepo:    repositories.NewStaffRepository(),
		staffLogRepo: repositories.NewStaffLogRepository(),
	}
}

// activeStaff re-validates the acting staff row on every call. A token
// outlives deactivation; the database does not.
func (s *CheckinService) activeStaff(ctx context.Context, staffID, eventID uint) (*models.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrCheckinStaffInvalid
		}
		return nil, err
	}
	if staff.EventID != eventID || !staff.IsActive {
		return nil, ErrCheckinStaffInvalid
	}
	return staff, nil
}

func (s *CheckinService) eventGuest(ctx context.Context, eventID, guestID uint) (*models.EventGuest, error) {
	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrCheckinGuestNotFound
		}
		return nil, err
	}
	if guest.EventID != eventID {
		return nil, ErrCheckinGuestNotFound
	}
	return guest, nil
}

// checkin records arrival. Repeat check-ins overwrite the timestamp and
// acting staff instead of failing, so a double scan at the door is harmless.
func (s *CheckinService) checkin(ctx context.Context, staff *models.Staff, guest *models.EventGuest, input CheckinInput) (*models.EventGuest, error) {
	if !staff.CanCheckin {
		return nil, ErrCheckinForbidden
	}
	if input.ActualCompanions != nil && *input.ActualCompanions < 0 {
		return nil, fmt.Errorf("%w: actual companions cannot be negative", ErrCheckinInvalidInput)
	}

	now := time.Now().UTC()
	patch := map[string]interface{}{
		"is_checked_in": true,
		"checked_in_at": now,
		"checked_in_by": staff.ID,
	}
	if input.ActualCompanions != nil {
		patch["actual_companions"] = *input.ActualCompanions
	}

	err := configs.GetDB().Transaction(func(tx *gorm.DB) error {
		guestRepo := repositories.NewGuestRepositoryTx(tx)
		logRepo := repositories.NewStaffLogRepositoryTx(tx)
		if err := guestRepo.Update(ctx, guest.ID, patch, staff.ID); err != nil {
			return err
		}
		return logRepo.Create(ctx, &models.StaffLog{
			EventID: guest.EventID,
			StaffID: staff.ID,
			GuestID: guest.ID,
			Action:  models.StaffActionCheckin,
			Notes:   input.Notes,
		})
	})
	if err != nil {
		configslog.Log.Error("checkin: transaction failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("guest checked in: guest=%d event=%d staff=%d", guest.ID, guest.EventID, staff.ID)
	return s.guestRepo.FindByID(ctx, guest.ID)
}

func (s *CheckinService) CheckinByID(ctx context.Context, staffID, eventID, guestID uint, input CheckinInput) (*models.EventGuest, error) {
	staff, err := s.activeStaff(ctx, staffID, eventID)
	if err != nil {
		return nil, err
	}
	guest, err := s.eventGuest(ctx, eventID, guestID)
	if err != nil {
		return nil, err
	}
	return s.checkin(ctx, staff, guest, input)
}

func (s *CheckinService) CheckinByQR(ctx context.Context, staffID, eventID uint, qrToken string, input CheckinInput) (*models.EventGuest, error) {
	staff, err := s.activeStaff(ctx, staffID, eventID)
	if err != nil {
		return nil, err
	}
	if qrToken == "" {
		return nil, fmt.Errorf("%w: qr token is required", ErrCheckinInvalidInput)
	}
	guest, err := s.guestRepo.FindByQRToken(ctx, qrToken)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrCheckinGuestNotFound
		}
		return nil, err
	}
	// a token from another event's guest must read as unknown
	if guest.EventID != eventID {
		return nil, ErrCheckinGuestNotFound
	}
	return s.checkin(ctx, staff, guest, input)
}

// permissionFor maps an audit action to the staff flag that gates it.
// StaffActionOther is open to any active staff.
func permissionFor(staff *models.Staff, action models.StaffLogAction) bool {
	switch action {
	case models.StaffActionCheckin:
		return staff.CanCheckin
	case models.StaffActionSouvenir:
		return staff.CanRedeemSouvenir
	case models.StaffActionSnack, models.StaffActionMeal:
		return staff.CanRedeemSnack
	case models.StaffActionVIP:
		return staff.CanAccessVIPLounge
	case models.StaffActionOther:
		return true
	default:
		return false
	}
}

func validRedeemAction(action models.StaffLogAction) bool {
	switch action {
	case models.StaffActionSouvenir, models.StaffActionSnack, models.StaffActionMeal,
		models.StaffActionVIP, models.StaffActionOther:
		return true
	}
	return false
}

func (s *CheckinService) Redeem(ctx context.Context, staffID, eventID, guestID uint, input RedeemInput) (*models.StaffLog, error) {
	staff, err := s.activeStaff(ctx, staffID, eventID)
	if err != nil {
		return nil, err
	}
	if !validRedeemAction(input.Action) {
		return nil, fmt.Errorf("%w: unknown action %q", ErrCheckinInvalidInput, input.Action)
	}
	if !permissionFor(staff, input.Action) {
		return nil, ErrCheckinForbidden
	}
	guest, err := s.eventGuest(ctx, eventID, guestID)
	if err != nil {
		return nil, err
	}

	entry := &models.StaffLog{
		EventID: eventID,
		StaffID: staff.ID,
		GuestID: guest.ID,
		Action:  input.Action,
		Notes:   input.Notes,
	}
	if err := s.staffLogRepo.Create(ctx, entry); err != nil {
		configslog.Log.Error("Redeem: log append failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("benefit redeemed: action=%s guest=%d staff=%d", input.Action, guest.ID, staff.ID)
	return entry, nil
}

func (s *CheckinService) SearchGuests(ctx context.Context, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	params.Validate()
	rows, total, err := s.guestRepo.FindAllByEventIDPaginated(ctx, eventID, params)
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

func (s *CheckinService) GuestHistory(ctx context.Context, eventID, guestID uint) ([]models.StaffLog, error) {
	if _, err := s.eventGuest(ctx, eventID, guestID); err != nil {
		return nil, err
	}
	return s.staffLogRepo.FindAllByGuestID(ctx, guestID)
}

func (s *CheckinService) Stats(ctx context.Context, eventID uint) (*EventStats, error) {
	total, err := s.guestRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	checkedIn, err := s.guestRepo.CountCheckedInByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	walkins, err := s.guestRepo.CountWalkinsByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	staffCount, err := s.staffRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	var companions int64
	guests, err := s.guestRepo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	for _, g := range guests {
		if g.IsCheckedIn {
			companions += int64(g.ActualCompanions)
		}
	}
	return &EventStats{
		TotalGuests:    total,
		CheckedIn:      checkedIn,
		NotCheckedIn:   total - checkedIn,
		Walkins:        walkins,
		TotalStaff:     staffCount,
		TotalCompanion: companions,
	}, nil
}

var _ ICheckinService = (*CheckinService)(nil)
