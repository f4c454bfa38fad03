package models

// Template is a purchasable invitation design from the catalog. Orders
// reference templates by name; the catalog is maintained by seeding.
type Template struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	DisplayName string `gorm:"type:varchar(150);not null" json:"display_name"`
	Description string `gorm:"type:text" json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	PreviewURL  string `gorm:"type:varchar(500)" json:"preview_url"`
	IsActive    bool   `gorm:"index" json:"is_active"`
}
