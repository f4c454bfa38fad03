package models

import "time"

// GuestSource records how a guest entered the list.
type GuestSource string

const (
	GuestSourceRegistered GuestSource = "registered"
	GuestSourceWalkin     GuestSource = "walkin"
)

// GuestType categorizes guests within an event and carries its benefit list
// (souvenir, snack, VIP lounge portions and the like).
type GuestType struct {
	BaseModel
	EventID  uint         `gorm:"index;not null" json:"event_id"`
	Name     string       `gorm:"type:varchar(100);not null" json:"name"`
	Benefits KeyValueList `gorm:"type:text" json:"benefits"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// EventGuest is one guest row under an event. The QR token is an opaque
// value minted once and stable afterwards; check-in fields are overwritten
// on repeat check-ins rather than erroring.
type EventGuest struct {
	BaseModel
	EventID     uint        `gorm:"index;not null" json:"event_id"`
	Source      GuestSource `gorm:"type:varchar(20);not null;default:'registered';index" json:"source"`
	Name        string      `gorm:"type:varchar(150);not null" json:"name"`
	Phone       string      `gorm:"type:varchar(30)" json:"phone"`
	Email       string      `gorm:"type:varchar(150)" json:"email"`
	GuestTypeID *uint       `gorm:"index" json:"guest_type_id"`
	IsInvited   bool        `json:"is_invited"`

	QRToken *string `gorm:"type:varchar(64);uniqueIndex" json:"qr_token,omitempty"`

	IsCheckedIn bool       `gorm:"default:false;index" json:"is_checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
	CheckedInBy *uint      `json:"checked_in_by,omitempty"`

	ExpectedCompanions int `gorm:"default:0" json:"expected_companions"`
	ActualCompanions   int `gorm:"default:0" json:"actual_companions"`

	SeatingConfigID *uint  `gorm:"index" json:"seating_config_id"`
	Notes           string `gorm:"type:text" json:"notes"`

	Event     Event      `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	GuestType *GuestType `gorm:"foreignKey:GuestTypeID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"guest_type,omitempty"`
}
