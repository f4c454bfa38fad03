package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey carries the acting user id through context so the audit
// hooks can stamp created_by/updated_by/deleted_by.
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID returns ctx annotated with the acting user id.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext extracts the acting user id, 0 if absent.
func UserIDFromContext(ctx context.Context) uint {
	if id, ok := ctx.Value(ContextUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// BaseModel is embedded by every persisted entity. Deletes are soft;
// the audit columns record who touched the row, filled from context.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if id := UserIDFromContext(tx.Statement.Context); id != 0 {
		b.CreatedBy = &id
	}
	return nil
}

// BeforeUpdate stamps updated_by through SetColumn, which reaches both
// struct updates and the map-based Updates the repositories use.
func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if id := UserIDFromContext(tx.Statement.Context); id != 0 {
		tx.Statement.SetColumn("updated_by", id)
	}
	return nil
}
