package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/models"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type OrderServiceError string

func (e OrderServiceError) Error() string { return string(e) }

const (
	ErrOrderNotFound          OrderServiceError = "order not found"
	ErrOrderInvalidInput      OrderServiceError = "invalid input"
	ErrOrderSlugTaken         OrderServiceError = "slug already in use"
	ErrOrderIllegalTransition OrderServiceError = "order is not in a state that allows this action"
	ErrOrderForbidden         OrderServiceError = "this action requires an administrator account"
)

type CreateOrderInput struct {
	Slug          string            `json:"slug"`
	TemplateName  string            `json:"template_name"`
	Addons        models.StringList `json:"addons"`
	Amount        int64             `json:"amount"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	CustomerPhone string            `json:"customer_phone"`
}

// VerifyOrderResult is returned once: the generated password is not
// recoverable afterwards.
type VerifyOrderResult struct {
	Order        *models.Order        `json:"order"`
	Registration *models.Registration `json:"registration"`
	Client       *models.Client       `json:"client"`
	Password     string               `json:"password"`
}

// IOrderService handles the purchase flow: public order intake, slug
// availability, payment proof, and the admin-side verification that
// provisions the tenant.
type IOrderService interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	SlugAvailable(ctx context.Context, slug string) (bool, error)
	SubmitPaymentProof(ctx context.Context, orderID uint, proofURL string) (*models.Order, error)

	GetOrder(ctx context.Context, actingClientID, orderID uint) (*models.Order, error)
	ListOrders(ctx context.Context, actingClientID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	VerifyOrder(ctx context.Context, actingClientID, orderID uint) (*VerifyOrderResult, error)
	RejectOrder(ctx context.Context, actingClientID, orderID uint, reason string) (*models.Order, error)
	CancelOrder(ctx context.Context, actingClientID, orderID uint) (*models.Order, error)
	ExpireOrder(ctx context.Context, actingClientID, orderID uint) (*models.Order, error)
}

type OrderService struct {
	orderRepo        repositories.IOrderRepository
	registrationRepo repositories.IRegistrationRepository
	clientRepo       repositories.IClientRepository
	templateRepo     repositories.ITemplateRepository
}

func NewOrderService() IOrderService {
	return &OrderService{
		orderRepo:        repositories.NewOrderRepository(),
		registrationRepo: repositories.NewRegistrationRepository(),
		clientRepo:       repositories.NewClientRepository(),
		templateRepo:     repositories.NewTemplateRepository(),
	}
}

// ListTemplates returns the purchasable catalog.
func (s *OrderService) ListTemplates(ctx context.Context) ([]models.Template, error) {
	return s.templateRepo.FindAllActive(ctx)
}

// requireAdmin loads the acting client and checks the system flag.
func (s *OrderService) requireAdmin(ctx context.Context, actingClientID uint) (*models.Client, error) {
	client, err := s.clientRepo.FindByID(ctx, actingClientID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrOrderForbidden
		}
		return nil, err
	}
	if !client.IsSystem || !client.IsActive {
		return nil, ErrOrderForbidden
	}
	return client, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.Slug == "" || input.TemplateName == "" || input.CustomerName == "" || input.CustomerEmail == "" {
		return nil, fmt.Errorf("%w: slug, template, customer name and email are required", ErrOrderInvalidInput)
	}
	if !slugPattern.MatchString(input.Slug) {
		return nil, fmt.Errorf("%w: slug may only contain lowercase letters, digits and dashes", ErrOrderInvalidInput)
	}
	if input.Amount < 0 {
		return nil, fmt.Errorf("%w: amount cannot be negative", ErrOrderInvalidInput)
	}
	if _, err := s.templateRepo.FindActiveByName(ctx, input.TemplateName); err != nil {
		if err == repositories.ErrNotFound {
			return nil, fmt.Errorf("%w: unknown template %q", ErrOrderInvalidInput, input.TemplateName)
		}
		return nil, err
	}
	taken, err := s.slugTaken(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrOrderSlugTaken
	}
	order := &models.Order{
		Slug:          input.Slug,
		TemplateName:  input.TemplateName,
		Addons:        input.Addons,
		Amount:        input.Amount,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		PaymentStatus: models.PaymentStatusUnpaid,
		OrderStatus:   models.OrderStatusPending,
	}
	if err := s.orderRepo.Create(ctx, order); err != nil {
		configslog.Log.Error("CreateOrder: create failed", zap.String("slug", input.Slug), zap.Error(err))
		return nil, err
	}
	configslog.SLog.Infof("order created: id=%d slug=%s", order.ID, order.Slug)
	return order, nil
}

func (s *OrderService) SlugAvailable(ctx context.Context, slug string) (bool, error) {
	if !slugPattern.MatchString(slug) {
		return false, fmt.Errorf("%w: slug may only contain lowercase letters, digits and dashes", ErrOrderInvalidInput)
	}
	taken, err := s.slugTaken(ctx, slug)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// slugTaken checks every slug owner: live orders and registrations, plus
// client accounts, so a self-registered tenant's slug cannot be sold.
func (s *OrderService) slugTaken(ctx context.Context, slug string) (bool, error) {
	taken, err := s.orderRepo.SlugExists(ctx, slug)
	if err != nil || taken {
		return taken, err
	}
	return s.clientRepo.SlugExists(ctx, slug)
}

func (s *OrderService) SubmitPaymentProof(ctx context.Context, orderID uint, proofURL string) (*models.Order, error) {
	if proofURL == "" {
		return nil, fmt.Errorf("%w: payment proof url is required", ErrOrderInvalidInput)
	}
	err := configs.GetDB().Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepositoryTx(tx)
		order, err := orderRepo.FindByIDLocked(ctx, orderID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus != models.PaymentStatusUnpaid && order.PaymentStatus != models.PaymentStatusRejected {
			return ErrOrderIllegalTransition
		}
		return orderRepo.Update(ctx, order.ID, map[string]interface{}{
			"payment_status":    models.PaymentStatusPendingVerification,
			"payment_proof_url": proofURL,
			"reject_reason":     "",
		}, 0)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *OrderService) GetOrder(ctx context.Context, actingClientID, orderID uint) (*models.Order, error) {
	if _, err := s.requireAdmin(ctx, actingClientID); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, actingClientID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if _, err := s.requireAdmin(ctx, actingClientID); err != nil {
		return nil, err
	}
	params.Validate()
	rows, total, err := s.orderRepo.FindAllPaginated(ctx, params)
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

// VerifyOrder confirms payment and provisions the tenant: a client account
// and an inactive registration, exactly once per order. The order row is
// locked for the whole transition so a double verify cannot provision twice.
func (s *OrderService) VerifyOrder(ctx context.Context, actingClientID, orderID uint) (*VerifyOrderResult, error) {
	admin, err := s.requireAdmin(ctx, actingClientID)
	if err != nil {
		return nil, err
	}

	result := &VerifyOrderResult{}
	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepositoryTx(tx)
		clientRepo := repositories.NewClientRepositoryTx(tx)
		registrationRepo := repositories.NewRegistrationRepositoryTx(tx)

		order, err := orderRepo.FindByIDLocked(ctx, orderID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus != models.PaymentStatusPendingVerification || order.OrderStatus != models.OrderStatusPending {
			return ErrOrderIllegalTransition
		}

		password := strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		hash, err := HashPassword(password)
		if err != nil {
			return err
		}
		client := &models.Client{
			Username:     order.Slug,
			PasswordHash: hash,
			Email:        order.CustomerEmail,
			Name:         order.CustomerName,
			Slug:         order.Slug,
			PhotoQuota:   models.DefaultPhotoQuota,
			MusicQuota:   models.DefaultMusicQuota,
			VideoQuota:   models.DefaultVideoQuota,
			IsActive:     true,
		}
		ctxWithUser := models.ContextWithUserID(ctx, admin.ID)
		if err := clientRepo.Create(ctxWithUser, client); err != nil {
			// A client slug or username registered after intake collides
			// here; surface it as a conflict, not an internal error.
			if err == repositories.ErrDuplicate {
				return ErrOrderSlugTaken
			}
			return err
		}

		registration := &models.Registration{
			OrderID:  &order.ID,
			ClientID: client.ID,
			Slug:     order.Slug,
			IsActive: false,
		}
		if err := registrationRepo.Create(ctxWithUser, registration); err != nil {
			if err == repositories.ErrDuplicate {
				return ErrOrderSlugTaken
			}
			return err
		}

		now := time.Now().UTC()
		if err := orderRepo.Update(ctx, order.ID, map[string]interface{}{
			"payment_status": models.PaymentStatusPaid,
			"order_status":   models.OrderStatusVerified,
			"client_id":      client.ID,
			"verified_at":    now,
			"verified_by":    admin.ID,
		}, admin.ID); err != nil {
			return err
		}

		result.Registration = registration
		result.Client = client
		result.Password = password
		return nil
	})
	if err != nil {
		if err != ErrOrderNotFound && err != ErrOrderIllegalTransition && err != ErrOrderSlugTaken {
			configslog.Log.Error("VerifyOrder: transaction failed", zap.Uint("orderID", orderID), zap.Error(err))
		}
		return nil, err
	}
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	result.Order = order
	configslog.SLog.Infof("order verified: id=%d client=%d slug=%s", order.ID, result.Client.ID, order.Slug)
	return result, nil
}

func (s *OrderService) RejectOrder(ctx context.Context, actingClientID, orderID uint, reason string) (*models.Order, error) {
	admin, err := s.requireAdmin(ctx, actingClientID)
	if err != nil {
		return nil, err
	}
	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepositoryTx(tx)
		order, err := orderRepo.FindByIDLocked(ctx, orderID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus != models.PaymentStatusPendingVerification {
			return ErrOrderIllegalTransition
		}
		return orderRepo.Update(ctx, order.ID, map[string]interface{}{
			"payment_status": models.PaymentStatusRejected,
			"reject_reason":  reason,
		}, admin.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

func (s *OrderService) CancelOrder(ctx context.Context, actingClientID, orderID uint) (*models.Order, error) {
	admin, err := s.requireAdmin(ctx, actingClientID)
	if err != nil {
		return nil, err
	}
	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepositoryTx(tx)
		order, err := orderRepo.FindByIDLocked(ctx, orderID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.OrderStatus != models.OrderStatusPending {
			return ErrOrderIllegalTransition
		}
		return orderRepo.Update(ctx, order.ID, map[string]interface{}{
			"payment_status": models.PaymentStatusCancelled,
			"order_status":   models.OrderStatusCancelled,
		}, admin.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

// ExpireOrder marks an unpaid order as expired; its slug becomes available
// again only through cancellation, so expiry keeps the reservation.
func (s *OrderService) ExpireOrder(ctx context.Context, actingClientID, orderID uint) (*models.Order, error) {
	admin, err := s.requireAdmin(ctx, actingClientID)
	if err != nil {
		return nil, err
	}
	err = configs.GetDB().Transaction(func(tx *gorm.DB) error {
		orderRepo := repositories.NewOrderRepositoryTx(tx)
		order, err := orderRepo.FindByIDLocked(ctx, orderID)
		if err != nil {
			if err == repositories.ErrNotFound {
				return ErrOrderNotFound
			}
			return err
		}
		if order.PaymentStatus != models.PaymentStatusUnpaid || order.OrderStatus != models.OrderStatusPending {
			return ErrOrderIllegalTransition
		}
		return orderRepo.Update(ctx, order.ID, map[string]interface{}{
			"payment_status": models.PaymentStatusExpired,
		}, admin.ID)
	})
	if err != nil {
		return nil, err
	}
	return s.orderRepo.FindByID(ctx, orderID)
}

var _ IOrderService = (*OrderService)(nil)
