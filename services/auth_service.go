package services

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/legacycrypt"
	"undangan.digital/pkg/token"
	"undangan.digital/repositories"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthServiceError enumerates authentication failures.
type AuthServiceError string

func (e AuthServiceError) Error() string { return string(e) }

const (
	ErrInvalidCredentials AuthServiceError = "invalid username or password"
	ErrAccountDisabled    AuthServiceError = "account is disabled"
	ErrUsernameTaken      AuthServiceError = "username already in use"
	ErrSlugTaken          AuthServiceError = "slug already in use"
	ErrAuthInvalidInput   AuthServiceError = "invalid input"
)

// Token lifetimes. Staff tokens are shorter: they only need to last one
// event day.
const (
	clientTokenTTL = 24 * time.Hour
	staffTokenTTL  = 12 * time.Hour
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// RegisterClientInput is the payload for tenant self-registration.
type RegisterClientInput struct {
	Username string
	Password string
	Email    string
	Name     string
	Slug     string
}

// LoginResult carries the signed token plus the principal it represents.
type LoginResult struct {
	Token  string         `json:"token"`
	Client *models.Client `json:"client,omitempty"`
	Staff  *models.Staff  `json:"staff,omitempty"`
}

// IAuthService issues principals for tenant owners and event staff.
type IAuthService interface {
	RegisterClient(ctx context.Context, input RegisterClientInput) (*models.Client, error)
	LoginClient(ctx context.Context, username, password string) (*LoginResult, error)
	LoginStaff(ctx context.Context, eventID uint, username, password string) (*LoginResult, error)
}

// AuthService verifies bcrypt credentials, with a fallback through the
// legacy AES codec for accounts imported from the previous system. A
// successful legacy login upgrades the stored value to bcrypt.
type AuthService struct {
	clientRepo repositories.IClientRepository
	staffRepo  repositories.IStaffRepository
	eventRepo  repositories.IEventRepository
	jwtSecret  string
	legacy     *legacycrypt.Codec
}

// NewAuthService wires the service. The legacy codec is optional: without
// ENCRYPTION_KEY only bcrypt credentials verify.
func NewAuthService(cfg configs.App) IAuthService {
	var codec *legacycrypt.Codec
	if cfg.EncryptionKey != "" {
		c, err := legacycrypt.NewCodec(cfg.EncryptionKey)
		if err != nil {
			configslog.Log.Warn("legacy encryption key rejected, legacy logins disabled", zap.Error(err))
		} else {
			codec = c
		}
	}
	return &AuthService{
		clientRepo: repositories.NewClientRepository(),
		staffRepo:  repositories.NewStaffRepository(),
		eventRepo:  repositories.NewEventRepository(),
		jwtSecret:  cfg.JWTSecret,
		legacy:     codec,
	}
}

// HashPassword returns the bcrypt hash stored for new credentials.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// verifyPassword checks plain against stored, trying bcrypt first and the
// legacy codec second. It reports whether the stored value should be
// upgraded to bcrypt.
func (s *AuthService) verifyPassword(stored, plain string) (ok bool, upgrade bool) {
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain)) == nil {
		return true, false
	}
	if s.legacy != nil && legacycrypt.IsLegacyValue(stored) && s.legacy.Compare(stored, plain) {
		return true, true
	}
	return false, false
}

func (s *AuthService) RegisterClient(ctx context.Context, input RegisterClientInput) (*models.Client, error) {
	if input.Username == "" || input.Password == "" || input.Name == "" || input.Slug == "" {
		return nil, fmt.Errorf("%w: username, password, name and slug are required", ErrAuthInvalidInput)
	}
	if !slugPattern.MatchString(input.Slug) {
		return nil, fmt.Errorf("%w: slug may only contain lowercase letters, digits and dashes", ErrAuthInvalidInput)
	}
	if len(input.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrAuthInvalidInput)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	client := &models.Client{
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
		Name:         input.Name,
		Slug:         input.Slug,
		PhotoQuota:   models.DefaultPhotoQuota,
		MusicQuota:   models.DefaultMusicQuota,
		VideoQuota:   models.DefaultVideoQuota,
		IsActive:     true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		if err == repositories.ErrDuplicate {
			// The unique indexes cover username and slug; report the one
			// the caller can act on.
			if exists, _ := s.clientRepo.SlugExists(ctx, input.Slug); exists {
				return nil, ErrSlugTaken
			}
			return nil, ErrUsernameTaken
		}
		configslog.Log.Error("RegisterClient: create failed", zap.String("username", input.Username), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("client registered: id=%d username=%s", client.ID, client.Username)
	return client, nil
}

func (s *AuthService) LoginClient(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	client, err := s.clientRepo.FindByUsername(ctx, username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, upgrade := s.verifyPassword(client.PasswordHash, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !client.IsActive {
		return nil, ErrAccountDisabled
	}
	if upgrade {
		if hash, hashErr := HashPassword(password); hashErr == nil {
			if updErr := s.clientRepo.Update(ctx, client.ID, map[string]interface{}{"password_hash": hash}, client.ID); updErr != nil {
				configslog.Log.Warn("legacy hash upgrade failed", zap.Uint("clientID", client.ID), zap.Error(updErr))
			} else {
				configslog.SLog.Infof("legacy credential upgraded to bcrypt: client=%d", client.ID)
			}
		}
	}

	signed, err := token.NewClientToken(s.jwtSecret, client.ID, clientTokenTTL)
	if err != nil {
		configslog.Log.Error("LoginClient: token signing failed", zap.Uint("clientID", client.ID), zap.Error(err))
		return nil, err
	}
	return &LoginResult{Token: signed, Client: client}, nil
}

func (s *AuthService) LoginStaff(ctx context.Context, eventID uint, username, password string) (*LoginResult, error) {
	if eventID == 0 || username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	staff, err := s.staffRepo.FindByEventAndUsername(ctx, eventID, username)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, upgrade := s.verifyPassword(staff.PasswordHash, password)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if !staff.IsActive {
		return nil, ErrAccountDisabled
	}

	event, err := s.eventRepo.FindByID(ctx, staff.EventID)
	if err != nil {
		return nil, err
	}
	if !event.IsActive {
		return nil, ErrAccountDisabled
	}

	if upgrade {
		if hash, hashErr := HashPassword(password); hashErr == nil {
			if updErr := s.staffRepo.Update(ctx, staff.ID, map[string]interface{}{"password_hash": hash}, staff.ID); updErr != nil {
				configslog.Log.Warn("legacy hash upgrade failed", zap.Uint("staffID", staff.ID), zap.Error(updErr))
			}
		}
	}

	signed, err := token.NewStaffToken(s.jwtSecret, staff.ID, event.ID, event.ClientID, staffTokenTTL)
	if err != nil {
		configslog.Log.Error("LoginStaff: token signing failed", zap.Uint("staffID", staff.ID), zap.Error(err))
		return nil, err
	}
	return &LoginResult{Token: signed, Staff: staff}, nil
}

var _ IAuthService = (*AuthService)(nil)
