package models

// Staff is a check-in operator account under one event. Username is unique
// within its event, enforced by the composite unique index (not by a
// pre-insert existence check, which would race).
type Staff struct {
	BaseModel
	EventID      uint   `gorm:"not null;uniqueIndex:idx_staff_event_username" json:"event_id"`
	Username     string `gorm:"type:varchar(100);not null;uniqueIndex:idx_staff_event_username" json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FullName     string `gorm:"type:varchar(150);not null" json:"full_name"`
	Phone        string `gorm:"type:varchar(30)" json:"phone"`

	CanCheckin         bool `json:"can_checkin"`
	CanRedeemSouvenir  bool `json:"can_redeem_souvenir"`
	CanRedeemSnack     bool `json:"can_redeem_snack"`
	CanAccessVIPLounge bool `json:"can_access_vip_lounge"`
	IsActive           bool `gorm:"index" json:"is_active"`

	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// StaffLogAction enumerates the audit actions staff record against a guest.
type StaffLogAction string

const (
	StaffActionCheckin  StaffLogAction = "checkin"
	StaffActionSouvenir StaffLogAction = "souvenir"
	StaffActionSnack    StaffLogAction = "snack"
	StaffActionMeal     StaffLogAction = "meal"
	StaffActionVIP      StaffLogAction = "vip_lounge"
	StaffActionOther    StaffLogAction = "other"
)

// StaffLog links a staff action to a guest. Rows are append-only: the
// repository exposes no update or delete for them.
type StaffLog struct {
	BaseModel
	EventID uint           `gorm:"index;not null" json:"event_id"`
	StaffID uint           `gorm:"index;not null" json:"staff_id"`
	GuestID uint           `gorm:"index;not null" json:"guest_id"`
	Action  StaffLogAction `gorm:"type:varchar(20);not null;index" json:"action"`
	Notes   string         `gorm:"type:text" json:"notes"`
}
