// Package orders exposes the purchase flow: public order intake and the
// admin verification endpoints that provision new tenants.
package orders

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/middlewares"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func paramID(c *fiber.Ctx, name string) uint {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}

type OrderHandler struct {
	service services.IOrderService
}

func NewOrderHandler() *OrderHandler {
	return &OrderHandler{service: services.NewOrderService()}
}

func (h *OrderHandler) orderError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		return respond.NotFound(c, err.Error())
	case errors.Is(err, services.ErrOrderForbidden):
		return respond.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrOrderInvalidInput), errors.Is(err, services.ErrOrderSlugTaken),
		errors.Is(err, services.ErrOrderIllegalTransition):
		return respond.BadRequest(c, err.Error())
	}
	configslog.Log.Error(op+" failed", zap.Error(err))
	return respond.Internal(c)
}

// ListTemplates serves the public template catalog.
func (h *OrderHandler) ListTemplates(c *fiber.Ctx) error {
	rows, err := h.service.ListTemplates(c.UserContext())
	if err != nil {
		return h.orderError(c, "ListTemplates", err)
	}
	return respond.OK(c, rows)
}

// CreateOrder is the public purchase endpoint.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var input services.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	order, err := h.service.CreateOrder(c.UserContext(), input)
	if err != nil {
		return h.orderError(c, "CreateOrder", err)
	}
	return respond.Created(c, order)
}

// CheckSlug reports whether a public slug is still available.
func (h *OrderHandler) CheckSlug(c *fiber.Ctx) error {
	available, err := h.service.SlugAvailable(c.UserContext(), c.Query("slug"))
	if err != nil {
		return h.orderError(c, "CheckSlug", err)
	}
	return respond.OK(c, fiber.Map{"available": available})
}

type paymentProofRequest struct {
	ProofURL string `json:"proof_url"`
}

// SubmitPaymentProof attaches the transfer receipt and queues the order
// for verification.
func (h *OrderHandler) SubmitPaymentProof(c *fiber.Ctx) error {
	var req paymentProofRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	order, err := h.service.SubmitPaymentProof(c.UserContext(), paramID(c, "orderID"), req.ProofURL)
	if err != nil {
		return h.orderError(c, "SubmitPaymentProof", err)
	}
	return respond.OK(c, order)
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	order, err := h.service.GetOrder(c.UserContext(), middlewares.ClientID(c), paramID(c, "orderID"))
	if err != nil {
		return h.orderError(c, "GetOrder", err)
	}
	return respond.OK(c, order)
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams(queryparams.DefaultSortBy)
	}
	params.Validate()
	result, err := h.service.ListOrders(c.UserContext(), middlewares.ClientID(c), params)
	if err != nil {
		return h.orderError(c, "ListOrders", err)
	}
	return respond.OK(c, result)
}

func (h *OrderHandler) VerifyOrder(c *fiber.Ctx) error {
	result, err := h.service.VerifyOrder(c.UserContext(), middlewares.ClientID(c), paramID(c, "orderID"))
	if err != nil {
		return h.orderError(c, "VerifyOrder", err)
	}
	return respond.OK(c, result)
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (h *OrderHandler) RejectOrder(c *fiber.Ctx) error {
	var req rejectRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	order, err := h.service.RejectOrder(c.UserContext(), middlewares.ClientID(c), paramID(c, "orderID"), req.Reason)
	if err != nil {
		return h.orderError(c, "RejectOrder", err)
	}
	return respond.OK(c, order)
}

func (h *OrderHandler) CancelOrder(c *fiber.Ctx) error {
	order, err := h.service.CancelOrder(c.UserContext(), middlewares.ClientID(c), paramID(c, "orderID"))
	if err != nil {
		return h.orderError(c, "CancelOrder", err)
	}
	return respond.OK(c, order)
}

func (h *OrderHandler) ExpireOrder(c *fiber.Ctx) error {
	order, err := h.service.ExpireOrder(c.UserContext(), middlewares.ClientID(c), paramID(c, "orderID"))
	if err != nil {
		return h.orderError(c, "ExpireOrder", err)
	}
	return respond.OK(c, order)
}
