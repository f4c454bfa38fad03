package models

// MediaType is the quota bucket an upload counts against.
type MediaType string

const (
	MediaTypePhoto MediaType = "photo"
	MediaTypeMusic MediaType = "music"
	MediaTypeVideo MediaType = "video"
)

// ValidMediaType reports whether t is a known quota bucket.
func ValidMediaType(t MediaType) bool {
	return t == MediaTypePhoto || t == MediaTypeMusic || t == MediaTypeVideo
}

// ClientMedia is one uploaded file owned by a client, optionally pinned to
// an event. The blob itself lives behind the storage interface; this row
// carries the metadata and the public URL.
type ClientMedia struct {
	BaseModel
	ClientID   uint      `gorm:"index;not null" json:"client_id"`
	EventID    *uint     `gorm:"index" json:"event_id,omitempty"`
	MediaType  MediaType `gorm:"type:varchar(10);not null;index" json:"media_type"`
	FileName   string    `gorm:"type:varchar(255);not null" json:"file_name"`
	StoredName string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"-"`
	MimeType   string    `gorm:"type:varchar(100)" json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	URL        string    `gorm:"type:varchar(500)" json:"url"`

	Client Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
