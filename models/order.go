package models

import "time"

// PaymentStatus tracks the money side of an order.
// unpaid -> pending_verification -> paid|rejected; pending orders can be
// cancelled, unpaid ones expired. "verified" only appears on rows imported
// from the previous system, which split proof approval and settlement.
type PaymentStatus string

const (
	PaymentStatusUnpaid              PaymentStatus = "unpaid"
	PaymentStatusPendingVerification PaymentStatus = "pending_verification"
	PaymentStatusVerified            PaymentStatus = "verified"
	PaymentStatusRejected            PaymentStatus = "rejected"
	PaymentStatusPaid                PaymentStatus = "paid"
	PaymentStatusCancelled           PaymentStatus = "cancelled"
	PaymentStatusExpired             PaymentStatus = "expired"
)

// OrderStatus tracks order fulfilment. pending -> verified|cancelled
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusVerified  OrderStatus = "verified"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order is a purchase of an invitation template plus add-ons. Verifying an
// order is the trigger that provisions the underlying registration.
type Order struct {
	BaseModel
	ClientID      *uint      `gorm:"index" json:"client_id,omitempty"`
	Slug          string     `gorm:"type:varchar(100);not null;index" json:"slug"`
	TemplateName  string     `gorm:"type:varchar(100);not null" json:"template_name"`
	Addons        StringList `gorm:"type:text" json:"addons"`
	Amount        int64      `gorm:"not null" json:"amount"`
	CustomerName  string     `gorm:"type:varchar(150);not null" json:"customer_name"`
	CustomerEmail string     `gorm:"type:varchar(150);not null" json:"customer_email"`
	CustomerPhone string     `gorm:"type:varchar(30)" json:"customer_phone"`

	PaymentStatus PaymentStatus `gorm:"type:varchar(25);not null;default:'unpaid';index" json:"payment_status"`
	OrderStatus   OrderStatus   `gorm:"type:varchar(15);not null;default:'pending';index" json:"order_status"`

	PaymentProofURL string     `gorm:"type:varchar(500)" json:"payment_proof_url"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	VerifiedBy      *uint      `json:"verified_by,omitempty"`
	RejectReason    string     `gorm:"type:text" json:"reject_reason,omitempty"`
}
