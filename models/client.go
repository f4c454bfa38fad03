package models

// Default per-tenant upload quotas.
const (
	DefaultPhotoQuota = 20
	DefaultMusicQuota = 3
	DefaultVideoQuota = 3
)

// Client is the tenant: the paying account that owns events, staff, guests
// and media. Clients are never hard-deleted; IsActive gates access instead.
type Client struct {
	BaseModel
	Username        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	PasswordHash    string `gorm:"type:varchar(255);not null" json:"-"`
	Email           string `gorm:"type:varchar(150);index" json:"email"`
	Name            string `gorm:"type:varchar(150);not null" json:"name"`
	Slug            string `gorm:"type:varchar(100);uniqueIndex" json:"slug"`
	PhotoQuota      int    `gorm:"default:20" json:"photo_quota"`
	MusicQuota      int    `gorm:"default:3" json:"music_quota"`
	VideoQuota      int    `gorm:"default:3" json:"video_quota"`
	MessageTemplate string `gorm:"type:text" json:"message_template"`
	IsSystem        bool   `gorm:"default:false;index" json:"-"`
	IsActive        bool   `gorm:"index" json:"is_active"`

	Events []Event `gorm:"foreignKey:ClientID" json:"-"`
}

// QuotaFor returns the upload limit for a media type, -1 when unknown.
func (c *Client) QuotaFor(mediaType MediaType) int {
	switch mediaType {
	case MediaTypePhoto:
		return c.PhotoQuota
	case MediaTypeMusic:
		return c.MusicQuota
	case MediaTypeVideo:
		return c.VideoQuota
	}
	return -1
}
