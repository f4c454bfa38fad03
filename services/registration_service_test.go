package services

import (
	"context"
	"testing"

	"undangan.digital/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRegistration(t *testing.T, db *gorm.DB, clientID uint, slug string) *models.Registration {
	t.Helper()
	registration := &models.Registration{ClientID: clientID, Slug: slug}
	require.NoError(t, db.Create(registration).Error)
	return registration
}

func TestRegistrationUpdateAndPublish(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService()
	ctx := context.Background()

	owner := seedClient(t, db, "dewi", "dewi-raka")
	seedRegistration(t, db, owner.ID, "dewi-raka")

	updated, err := svc.UpdateRegistration(ctx, owner.ID, map[string]interface{}{
		"groom_name": "Raka",
		"bride_name": "Dewi",
		"love_story": "We met at a wedding.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Raka", updated.GroomName)
	assert.Equal(t, "Dewi", updated.BrideName)

	// slug and ownership are not client-editable
	_, err = svc.UpdateRegistration(ctx, owner.ID, map[string]interface{}{"slug": "stolen"})
	assert.ErrorIs(t, err, ErrRegistrationInvalidInput)

	// invisible until published
	_, err = svc.PublicBySlug(ctx, "dewi-raka")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)

	published, err := svc.Publish(ctx, owner.ID)
	require.NoError(t, err)
	assert.True(t, published.IsActive)

	visible, err := svc.PublicBySlug(ctx, "dewi-raka")
	require.NoError(t, err)
	assert.Equal(t, "Raka", visible.GroomName)

	// publishing twice is a harmless no-op
	_, err = svc.Publish(ctx, owner.ID)
	assert.NoError(t, err)

	_, err = svc.Unpublish(ctx, owner.ID)
	require.NoError(t, err)
	_, err = svc.PublicBySlug(ctx, "dewi-raka")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestRegistrationMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewRegistrationService()
	ctx := context.Background()

	owner := seedClient(t, db, "fresh", "fresh")
	_, err := svc.GetMyRegistration(ctx, owner.ID)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
	_, err = svc.Publish(ctx, owner.ID)
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
	_, err = svc.PublicBySlug(ctx, "no-such-slug")
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
}

func TestChangePassword(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClientService()
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")

	err := svc.ChangePassword(ctx, client.ID, "wrong-current", "new-password-1")
	assert.ErrorIs(t, err, ErrWrongPassword)

	err = svc.ChangePassword(ctx, client.ID, "hunter2secret", "short")
	assert.ErrorIs(t, err, ErrClientInvalidInput)

	require.NoError(t, svc.ChangePassword(ctx, client.ID, "hunter2secret", "new-password-1"))

	// the old password no longer works
	err = svc.ChangePassword(ctx, client.ID, "hunter2secret", "another-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
	assert.NoError(t, svc.ChangePassword(ctx, client.ID, "new-password-1", "another-password"))
}

func TestUpdateProfileAllowList(t *testing.T) {
	db := setupTestDB(t)
	svc := NewClientService()
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")

	updated, err := svc.UpdateProfile(ctx, client.ID, map[string]interface{}{
		"name":  "New Name",
		"email": "new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)

	// quotas and flags cannot be self-served
	_, err = svc.UpdateProfile(ctx, client.ID, map[string]interface{}{"photo_quota": 9999})
	assert.ErrorIs(t, err, ErrClientInvalidInput)
	_, err = svc.UpdateProfile(ctx, client.ID, map[string]interface{}{"is_system": true})
	assert.ErrorIs(t, err, ErrClientInvalidInput)
}
