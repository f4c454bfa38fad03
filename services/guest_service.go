package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/qrpass"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/repositories"

	"go.uber.org/zap"
)

type GuestServiceError string

func (e GuestServiceError) Error() string { return string(e) }

const (
	ErrGuestNotFound      GuestServiceError = "guest not found"
	ErrGuestTypeNotFound  GuestServiceError = "guest type not found"
	ErrGuestInvalidInput  GuestServiceError = "invalid input"
	ErrWalkinClosed       GuestServiceError = "walk-in registration is closed for this event"
	ErrInvitationRequired GuestServiceError = "this event only admits invited guests"
)

var guestUpdatableFields = map[string]bool{
	"name":                true,
	"phone":               true,
	"email":               true,
	"guest_type_id":       true,
	"is_invited":          true,
	"expected_companions": true,
	"actual_companions":   true,
	"notes":               true,
}

type CreateGuestInput struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	GuestTypeID        *uint  `json:"guest_type_id"`
	IsInvited          bool   `json:"is_invited"`
	ExpectedCompanions int    `json:"expected_companions"`
	Notes              string `json:"notes"`
}

type WalkinRegisterInput struct {
	Name               string `json:"name"`
	Phone              string `json:"phone"`
	Email              string `json:"email"`
	ExpectedCompanions int    `json:"expected_companions"`
}

type CreateGuestTypeInput struct {
	Name     string              `json:"name"`
	Benefits models.KeyValueList `json:"benefits"`
}

// IGuestService manages the guest list of an event: types, invited
// guests, QR passes, walk-in self registration and CSV export.
type IGuestService interface {
	CreateGuestType(ctx context.Context, clientID, eventID uint, input CreateGuestTypeInput) (*models.GuestType, error)
	ListGuestTypes(ctx context.Context, clientID, eventID uint) ([]models.GuestType, error)
	UpdateGuestType(ctx context.Context, clientID, eventID, typeID uint, data map[string]interface{}) (*models.GuestType, error)
	DeleteGuestType(ctx context.Context, clientID, eventID, typeID uint) error

	CreateGuest(ctx context.Context, clientID, eventID uint, input CreateGuestInput) (*models.EventGuest, error)
	GetGuest(ctx context.Context, clientID, eventID, guestID uint) (*models.EventGuest, error)
	ListGuests(ctx context.Context, clientID, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateGuest(ctx context.Context, clientID, eventID, guestID uint, data map[string]interface{}) (*models.EventGuest, error)
	DeleteGuest(ctx context.Context, clientID, eventID, guestID uint) error

	GuestQRCodePNG(ctx context.Context, clientID, eventID, guestID uint) ([]byte, error)
	ExportGuestsCSV(ctx context.Context, clientID, eventID uint) ([]byte, error)
	RegisterWalkin(ctx context.Context, eventID uint, input WalkinRegisterInput) (*models.EventGuest, error)
}

type GuestService struct {
	guestRepo     repositories.IGuestRepository
	guestTypeRepo repositories.IGuestTypeRepository
	eventRepo     repositories.IEventRepository
}

func NewGuestService() IGuestService {
	return &GuestService{
		guestRepo:     repositories.NewGuestRepository(),
		guestTypeRepo: repositories.NewGuestTypeRepository(),
		eventRepo:     repositories.NewEventRepository(),
	}
}

func (s *GuestService) ownedEvent(ctx context.Context, clientID, eventID uint) (*models.Event, error) {
	event, err := resolveOwnedEvent(ctx, s.eventRepo, clientID, eventID)
	if err != nil {
		if err == ErrEventNotFound {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return event, nil
}

func (s *GuestService) resolveOwnedGuest(ctx context.Context, clientID, eventID, guestID uint) (*models.EventGuest, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
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
	return guest, nil
}

func (s *GuestService) resolveOwnedGuestType(ctx context.Context, clientID, eventID, typeID uint) (*models.GuestType, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		if err == ErrGuestNotFound {
			return nil, ErrGuestTypeNotFound
		}
		return nil, err
	}
	guestType, err := s.guestTypeRepo.FindByID(ctx, typeID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGuestTypeNotFound
		}
		return nil, err
	}
	if guestType.EventID != eventID {
		return nil, ErrGuestTypeNotFound
	}
	return guestType, nil
}

func (s *GuestService) CreateGuestType(ctx context.Context, clientID, eventID uint, input CreateGuestTypeInput) (*models.GuestType, error) {
	event, err := s.ownedEvent(ctx, clientID, eventID)
	if err != nil {
		if err == ErrGuestNotFound {
			return nil, ErrGuestTypeNotFound
		}
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: guest type name is required", ErrGuestInvalidInput)
	}
	guestType := &models.GuestType{
		EventID:  event.ID,
		Name:     input.Name,
		Benefits: input.Benefits,
	}
	ctxWithUser := models.ContextWithUserID(ctx, clientID)
	if err := s.guestTypeRepo.Create(ctxWithUser, guestType); err != nil {
		configslog.Log.Error("CreateGuestType: create failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	return guestType, nil
}

func (s *GuestService) ListGuestTypes(ctx context.Context, clientID, eventID uint) ([]models.GuestType, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		if err == ErrGuestNotFound {
			return nil, ErrGuestTypeNotFound
		}
		return nil, err
	}
	return s.guestTypeRepo.FindAllByEventID(ctx, eventID)
}

func (s *GuestService) UpdateGuestType(ctx context.Context, clientID, eventID, typeID uint, data map[string]interface{}) (*models.GuestType, error) {
	guestType, err := s.resolveOwnedGuestType(ctx, clientID, eventID, typeID)
	if err != nil {
		return nil, err
	}
	patch := make(map[string]interface{}, 2)
	if name, ok := data["name"]; ok {
		str, isStr := name.(string)
		if !isStr || str == "" {
			return nil, fmt.Errorf("%w: guest type name cannot be empty", ErrGuestInvalidInput)
		}
		patch["name"] = str
	}
	if benefits, ok := data["benefits"]; ok {
		patch["benefits"] = benefits
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrGuestInvalidInput)
	}
	if err := s.guestTypeRepo.Update(ctx, guestType.ID, patch, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGuestTypeNotFound
		}
		return nil, err
	}
	return s.guestTypeRepo.FindByID(ctx, guestType.ID)
}

func (s *GuestService) DeleteGuestType(ctx context.Context, clientID, eventID, typeID uint) error {
	guestType, err := s.resolveOwnedGuestType(ctx, clientID, eventID, typeID)
	if err != nil {
		return err
	}
	if err := s.guestTypeRepo.Delete(ctx, guestType, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return ErrGuestTypeNotFound
		}
		return err
	}
	return nil
}

func (s *GuestService) CreateGuest(ctx context.Context, clientID, eventID uint, input CreateGuestInput) (*models.EventGuest, error) {
	event, err := s.ownedEvent(ctx, clientID, eventID)
	if err != nil {
		return nil, err
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: guest name is required", ErrGuestInvalidInput)
	}
	if input.ExpectedCompanions < 0 {
		return nil, fmt.Errorf("%w: expected companions cannot be negative", ErrGuestInvalidInput)
	}
	if input.GuestTypeID != nil {
		if _, err := s.resolveOwnedGuestType(ctx, clientID, eventID, *input.GuestTypeID); err != nil {
			return nil, err
		}
	}

	guest := &models.EventGuest{
		EventID:            event.ID,
		Source:             models.GuestSourceRegistered,
		Name:               input.Name,
		Phone:              input.Phone,
		Email:              input.Email,
		GuestTypeID:        input.GuestTypeID,
		IsInvited:          input.IsInvited,
		ExpectedCompanions: input.ExpectedCompanions,
		Notes:              input.Notes,
	}
	if event.AutoGenerateQR {
		token := qrpass.NewToken()
		guest.QRToken = &token
	}
	ctxWithUser := models.ContextWithUserID(ctx, clientID)
	if err := s.guestRepo.Create(ctxWithUser, guest); err != nil {
		configslog.Log.Error("CreateGuest: create failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("guest created: id=%d event=%d name=%s", guest.ID, event.ID, guest.Name)
	return guest, nil
}

func (s *GuestService) GetGuest(ctx context.Context, clientID, eventID, guestID uint) (*models.EventGuest, error) {
	return s.resolveOwnedGuest(ctx, clientID, eventID, guestID)
}

func (s *GuestService) ListGuests(ctx context.Context, clientID, eventID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		return nil, err
	}
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

func (s *GuestService) UpdateGuest(ctx context.Context, clientID, eventID, guestID uint, data map[string]interface{}) (*models.EventGuest, error) {
	guest, err := s.resolveOwnedGuest(ctx, clientID, eventID, guestID)
	if err != nil {
		return nil, err
	}
	patch := make(map[string]interface{}, len(data))
	for key, value := range data {
		if guestUpdatableFields[key] {
			patch[key] = value
		}
	}
	if len(patch) == 0 {
		return nil, fmt.Errorf("%w: no updatable fields in request", ErrGuestInvalidInput)
	}
	if name, ok := patch["name"]; ok {
		if str, isStr := name.(string); !isStr || str == "" {
			return nil, fmt.Errorf("%w: guest name cannot be empty", ErrGuestInvalidInput)
		}
	}
	if raw, ok := patch["guest_type_id"]; ok && raw != nil {
		id, convErr := toUint(raw)
		if convErr != nil || id == 0 {
			return nil, fmt.Errorf("%w: invalid guest type", ErrGuestInvalidInput)
		}
		if _, err := s.resolveOwnedGuestType(ctx, clientID, eventID, id); err != nil {
			return nil, err
		}
		patch["guest_type_id"] = id
	}
	if err := s.guestRepo.Update(ctx, guest.ID, patch, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGuestNotFound
		}
		configslog.Log.Error("UpdateGuest: update failed", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, err
	}
	return s.guestRepo.FindByID(ctx, guest.ID)
}

func (s *GuestService) DeleteGuest(ctx context.Context, clientID, eventID, guestID uint) error {
	guest, err := s.resolveOwnedGuest(ctx, clientID, eventID, guestID)
	if err != nil {
		return err
	}
	if err := s.guestRepo.Delete(ctx, guest, clientID); err != nil {
		if err == repositories.ErrNotFound {
			return ErrGuestNotFound
		}
		return err
	}
	configslog.SLog.Infof("guest deleted: id=%d event=%d", guest.ID, eventID)
	return nil
}

// GuestQRCodePNG renders the guest's pass. A guest without a token gets
// one minted and persisted first, so the printed pass stays stable.
func (s *GuestService) GuestQRCodePNG(ctx context.Context, clientID, eventID, guestID uint) ([]byte, error) {
	guest, err := s.resolveOwnedGuest(ctx, clientID, eventID, guestID)
	if err != nil {
		return nil, err
	}
	if guest.QRToken == nil || *guest.QRToken == "" {
		token := qrpass.NewToken()
		if err := s.guestRepo.Update(ctx, guest.ID, map[string]interface{}{"qr_token": token}, clientID); err != nil {
			return nil, err
		}
		guest.QRToken = &token
	}
	return qrpass.EncodePNG(*guest.QRToken)
}

// ExportGuestsCSV renders the full guest list for offline use at the door.
func (s *GuestService) ExportGuestsCSV(ctx context.Context, clientID, eventID uint) ([]byte, error) {
	if _, err := s.ownedEvent(ctx, clientID, eventID); err != nil {
		return nil, err
	}
	guests, err := s.guestRepo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"id", "name", "phone", "email", "guest_type", "source", "invited", "checked_in", "checked_in_at", "expected_companions", "actual_companions", "notes"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, g := range guests {
		typeName := ""
		if g.GuestType != nil {
			typeName = g.GuestType.Name
		}
		checkedInAt := ""
		if g.CheckedInAt != nil {
			checkedInAt = g.CheckedInAt.UTC().Format(time.RFC3339)
		}
		record := []string{
			strconv.FormatUint(uint64(g.ID), 10),
			g.Name,
			g.Phone,
			g.Email,
			typeName,
			string(g.Source),
			strconv.FormatBool(g.IsInvited),
			strconv.FormatBool(g.IsCheckedIn),
			checkedInAt,
			strconv.Itoa(g.ExpectedCompanions),
			strconv.Itoa(g.ActualCompanions),
			g.Notes,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RegisterWalkin handles on-site self registration. It is reachable
// without authentication, so it leaks nothing about foreign events beyond
// their walk-in policy.
func (s *GuestService) RegisterWalkin(ctx context.Context, eventID uint, input WalkinRegisterInput) (*models.EventGuest, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if !event.IsActive || !event.UseGuestbook {
		return nil, ErrGuestNotFound
	}
	if event.RequireInvitation {
		return nil, ErrInvitationRequired
	}
	if !event.AllowWalkin {
		return nil, ErrWalkinClosed
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: guest name is required", ErrGuestInvalidInput)
	}
	if input.ExpectedCompanions < 0 {
		return nil, fmt.Errorf("%w: expected companions cannot be negative", ErrGuestInvalidInput)
	}

	guest := &models.EventGuest{
		EventID:            event.ID,
		Source:             models.GuestSourceWalkin,
		Name:               input.Name,
		Phone:              input.Phone,
		Email:              input.Email,
		ExpectedCompanions: input.ExpectedCompanions,
	}
	if event.AutoGenerateQR {
		token := qrpass.NewToken()
		guest.QRToken = &token
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		configslog.Log.Error("RegisterWalkin: create failed", zap.Uint("eventID", event.ID), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("walk-in registered: id=%d event=%d", guest.ID, event.ID)
	return guest, nil
}

// toUint normalizes numeric JSON values, which decode as float64.
func toUint(raw interface{}) (uint, error) {
	switch v := raw.(type) {
	case float64:
		if v < 0 || v != float64(uint(v)) {
			return 0, fmt.Errorf("not a valid id: %v", raw)
		}
		return uint(v), nil
	case int:
		if v < 0 {
			return 0, fmt.Errorf("not a valid id: %v", raw)
		}
		return uint(v), nil
	case uint:
		return v, nil
	default:
		return 0, fmt.Errorf("not a valid id: %v", raw)
	}
}

var _ IGuestService = (*GuestService)(nil)
