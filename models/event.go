package models

import "time"

// Event is one wedding/occasion instance. Its staff, guests and seating rows
// are visible only to the owning client.
type Event struct {
	BaseModel
	ClientID uint      `gorm:"index;not null" json:"client_id"`
	Name     string    `gorm:"type:varchar(200);not null" json:"name"`
	Date     time.Time `gorm:"index" json:"date"`
	Location string    `gorm:"type:varchar(255)" json:"location"`

	// No DB defaults on the feature flags: a default tag makes GORM omit
	// false values on insert, silently flipping them to the column default.
	UseInvitation     bool `json:"use_invitation"`
	UseGuestbook      bool `json:"use_guestbook"`
	AllowWalkin       bool `json:"allow_walkin"`
	RequireInvitation bool `json:"require_invitation"`
	AutoGenerateQR    bool `json:"auto_generate_qr"`
	IsActive          bool `gorm:"index" json:"is_active"`

	Client Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
