package models

import "time"

// Registration is the published invitation content behind a public slug.
// It is provisioned when its order is verified; IsActive gates public
// visibility.
type Registration struct {
	BaseModel
	OrderID  *uint  `gorm:"uniqueIndex" json:"order_id,omitempty"`
	ClientID uint   `gorm:"index;not null" json:"client_id"`
	Slug     string `gorm:"type:varchar(100);uniqueIndex;not null" json:"slug"`

	GroomName  string     `gorm:"type:varchar(150)" json:"groom_name"`
	BrideName  string     `gorm:"type:varchar(150)" json:"bride_name"`
	EventDate  *time.Time `json:"event_date,omitempty"`
	Venues     StringList `gorm:"type:text" json:"venues"`
	LoveStory  string     `gorm:"type:text" json:"love_story"`
	GalleryURL string     `gorm:"type:varchar(500)" json:"gallery_url"`
	GiftInfo   string     `gorm:"type:text" json:"gift_info"`

	IsActive bool `gorm:"default:false;index" json:"is_active"`

	Client Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
