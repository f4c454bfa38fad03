package services

import (
	"context"
	"testing"

	"undangan.digital/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newPendingOrder(t *testing.T, svc IOrderService, slug string) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), CreateOrderInput{
		Slug:          slug,
		TemplateName:  "classic-gold",
		Amount:        150000,
		CustomerName:  "Dewi",
		CustomerEmail: "dewi@example.com",
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderAndSlugAvailability(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")

	available, err := svc.SlugAvailable(ctx, "dewi-raka")
	require.NoError(t, err)
	assert.True(t, available)

	order := newPendingOrder(t, svc, "dewi-raka")
	assert.Equal(t, models.PaymentStatusUnpaid, order.PaymentStatus)
	assert.Equal(t, models.OrderStatusPending, order.OrderStatus)

	available, err = svc.SlugAvailable(ctx, "dewi-raka")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		Slug: "dewi-raka", TemplateName: "classic-gold",
		CustomerName: "X", CustomerEmail: "x@example.com",
	})
	assert.ErrorIs(t, err, ErrOrderSlugTaken)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		Slug: "other-slug", TemplateName: "no-such-template",
		CustomerName: "X", CustomerEmail: "x@example.com",
	})
	assert.ErrorIs(t, err, ErrOrderInvalidInput)

	_, err = svc.SlugAvailable(ctx, "Not Valid")
	assert.ErrorIs(t, err, ErrOrderInvalidInput)
}

func TestListTemplatesOnlyActive(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	retired := seedTemplate(t, db, "retired-style")
	require.NoError(t, db.Model(retired).Update("is_active", false).Error)

	templates, err := svc.ListTemplates(ctx)
	require.NoError(t, err)
	require.Len(t, templates, 1)
	assert.Equal(t, "classic-gold", templates[0].Name)
}

func TestSubmitPaymentProofTransitions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	admin := seedAdmin(t, db)
	order := newPendingOrder(t, svc, "dewi-raka")

	updated, err := svc.SubmitPaymentProof(ctx, order.ID, "http://bank/proof-1.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPendingVerification, updated.PaymentStatus)

	// a second submission in the same state is illegal
	_, err = svc.SubmitPaymentProof(ctx, order.ID, "http://bank/proof-2.jpg")
	assert.ErrorIs(t, err, ErrOrderIllegalTransition)

	// after a rejection the customer may try again, clearing the reason
	_, err = svc.RejectOrder(ctx, admin.ID, order.ID, "blurry photo")
	require.NoError(t, err)
	resubmitted, err := svc.SubmitPaymentProof(ctx, order.ID, "http://bank/proof-3.jpg")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPendingVerification, resubmitted.PaymentStatus)
	assert.Empty(t, resubmitted.RejectReason)

	_, err = svc.SubmitPaymentProof(ctx, order.ID, "")
	assert.ErrorIs(t, err, ErrOrderInvalidInput)
	_, err = svc.SubmitPaymentProof(ctx, 9999, "http://bank/proof.jpg")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestVerifyOrderProvisionsTenantOnce(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	admin := seedAdmin(t, db)
	order := newPendingOrder(t, svc, "dewi-raka")
	_, err := svc.SubmitPaymentProof(ctx, order.ID, "http://bank/proof.jpg")
	require.NoError(t, err)

	result, err := svc.VerifyOrder(ctx, admin.ID, order.ID)
	require.NoError(t, err)

	assert.Equal(t, models.PaymentStatusPaid, result.Order.PaymentStatus)
	assert.Equal(t, models.OrderStatusVerified, result.Order.OrderStatus)
	require.NotNil(t, result.Order.VerifiedBy)
	assert.Equal(t, admin.ID, *result.Order.VerifiedBy)

	require.NotNil(t, result.Client)
	assert.Equal(t, "dewi-raka", result.Client.Username)
	assert.Equal(t, "dewi-raka", result.Client.Slug)
	assert.Len(t, result.Password, 16)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(result.Client.PasswordHash), []byte(result.Password)))

	require.NotNil(t, result.Registration)
	assert.Equal(t, "dewi-raka", result.Registration.Slug)
	assert.False(t, result.Registration.IsActive)

	// the second verify provisions nothing
	_, err = svc.VerifyOrder(ctx, admin.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderIllegalTransition)

	var clients int64
	require.NoError(t, db.Model(&models.Client{}).Where("slug = ?", "dewi-raka").Count(&clients).Error)
	assert.Equal(t, int64(1), clients)
	var registrations int64
	require.NoError(t, db.Model(&models.Registration{}).Where("slug = ?", "dewi-raka").Count(&registrations).Error)
	assert.Equal(t, int64(1), registrations)
}

func TestAdminGateOnOrderOperations(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	regular := seedClient(t, db, "regular", "regular")
	admin := seedAdmin(t, db)
	order := newPendingOrder(t, svc, "dewi-raka")

	_, err := svc.GetOrder(ctx, regular.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderForbidden)
	_, err = svc.VerifyOrder(ctx, regular.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderForbidden)
	_, err = svc.CancelOrder(ctx, regular.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderForbidden)

	// a deactivated admin loses the gate too
	require.NoError(t, db.Model(admin).Update("is_active", false).Error)
	_, err = svc.GetOrder(ctx, admin.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderForbidden)
}

func TestCancelAndExpireOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	admin := seedAdmin(t, db)

	cancelled := newPendingOrder(t, svc, "cancel-me")
	got, err := svc.CancelOrder(ctx, admin.ID, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, got.OrderStatus)
	assert.Equal(t, models.PaymentStatusCancelled, got.PaymentStatus)
	_, err = svc.CancelOrder(ctx, admin.ID, cancelled.ID)
	assert.ErrorIs(t, err, ErrOrderIllegalTransition)
	// cancellation releases the slug back to the pool
	available, err := svc.SlugAvailable(ctx, "cancel-me")
	require.NoError(t, err)
	assert.True(t, available)

	expired := newPendingOrder(t, svc, "expire-me")
	got, err = svc.ExpireOrder(ctx, admin.ID, expired.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusExpired, got.PaymentStatus)
	// expiry keeps the slug reserved
	available, err = svc.SlugAvailable(ctx, "expire-me")
	require.NoError(t, err)
	assert.False(t, available)

	// an order with proof submitted cannot expire
	proofed := newPendingOrder(t, svc, "proofed")
	_, err = svc.SubmitPaymentProof(ctx, proofed.ID, "http://bank/proof.jpg")
	require.NoError(t, err)
	_, err = svc.ExpireOrder(ctx, admin.ID, proofed.ID)
	assert.ErrorIs(t, err, ErrOrderIllegalTransition)
}

func TestOrderSlugCollidesWithClientAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	seedClient(t, db, "taken", "taken-slug")

	available, err := svc.SlugAvailable(ctx, "taken-slug")
	require.NoError(t, err)
	assert.False(t, available)

	_, err = svc.CreateOrder(ctx, CreateOrderInput{
		Slug: "taken-slug", TemplateName: "classic-gold",
		CustomerName: "Dewi", CustomerEmail: "dewi@example.com",
	})
	assert.ErrorIs(t, err, ErrOrderSlugTaken)
}

func TestVerifyOrderReportsSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := NewOrderService()
	ctx := context.Background()

	seedTemplate(t, db, "classic-gold")
	admin := seedAdmin(t, db)
	order := newPendingOrder(t, svc, "late-claim")
	_, err := svc.SubmitPaymentProof(ctx, order.ID, "http://bank/proof.jpg")
	require.NoError(t, err)

	// the slug gets self-registered between intake and verification
	seedClient(t, db, "late-claim", "late-claim")

	_, err = svc.VerifyOrder(ctx, admin.ID, order.ID)
	assert.ErrorIs(t, err, ErrOrderSlugTaken)

	// the order is left pending so the admin can reject or cancel it
	reloaded, err := svc.GetOrder(ctx, admin.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reloaded.OrderStatus)
	assert.Equal(t, models.PaymentStatusPendingVerification, reloaded.PaymentStatus)
}
