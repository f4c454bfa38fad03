package models

// SeatingKind distinguishes tables, numbered seats and free-standing zones.
type SeatingKind string

const (
	SeatingKindTable SeatingKind = "table"
	SeatingKindSeat  SeatingKind = "seat"
	SeatingKindZone  SeatingKind = "zone"
)

// ValidSeatingKind reports whether k is one of the known kinds.
func ValidSeatingKind(k SeatingKind) bool {
	switch k {
	case SeatingKindTable, SeatingKindSeat, SeatingKindZone:
		return true
	}
	return false
}

// SeatingConfig is one assignable unit of seating capacity under an event.
// An empty AllowedGuestTypes list means any guest type may sit here.
type SeatingConfig struct {
	BaseModel
	EventID           uint        `gorm:"index;not null" json:"event_id"`
	Name              string      `gorm:"type:varchar(100);not null" json:"name"`
	Kind              SeatingKind `gorm:"type:varchar(10);not null;default:'table'" json:"kind"`
	Capacity          int         `gorm:"not null" json:"capacity"`
	AllowedGuestTypes UintList    `gorm:"type:text" json:"allowed_guest_types"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Accepts reports whether a guest with the given type may be seated here.
// Guests without a type only fit unrestricted configs.
func (s *SeatingConfig) Accepts(guestTypeID *uint) bool {
	if len(s.AllowedGuestTypes) == 0 {
		return true
	}
	if guestTypeID == nil {
		return false
	}
	return s.AllowedGuestTypes.Contains(*guestTypeID)
}

// Restricted reports whether this config carries a type allow-list.
func (s *SeatingConfig) Restricted() bool {
	return len(s.AllowedGuestTypes) > 0
}
