package services

import (
	"context"
	"testing"

	"undangan.digital/configs"
	"undangan.digital/models"
	"undangan.digital/pkg/legacycrypt"
	"undangan.digital/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testJWTSecret = "unit-test-secret"

// 64 hex chars, the shape ENCRYPTION_KEY arrives in.
const testLegacyKey = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

func newTestAuthService(t *testing.T) IAuthService {
	t.Helper()
	return NewAuthService(configs.App{JWTSecret: testJWTSecret, EncryptionKey: testLegacyKey})
}

func TestRegisterClientAndLogin(t *testing.T) {
	setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	client, err := svc.RegisterClient(ctx, RegisterClientInput{
		Username: "andi",
		Password: "rahasia-besar",
		Name:     "Andi & Sari",
		Slug:     "andi-sari",
	})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultPhotoQuota, client.PhotoQuota)
	assert.True(t, client.IsActive)
	assert.NotEqual(t, "rahasia-besar", client.PasswordHash)

	result, err := svc.LoginClient(ctx, "andi", "rahasia-besar")
	require.NoError(t, err)
	require.NotNil(t, result.Client)

	claims, err := token.Parse(testJWTSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, token.KindClient, claims.Kind)
	assert.Equal(t, client.ID, claims.ClientID)

	_, err = svc.LoginClient(ctx, "andi", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.LoginClient(ctx, "nobody", "rahasia-besar")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterClientValidation(t *testing.T) {
	setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterClient(ctx, RegisterClientInput{Username: "x", Password: "longenough", Name: "X", Slug: "Not A Slug"})
	assert.ErrorIs(t, err, ErrAuthInvalidInput)

	_, err = svc.RegisterClient(ctx, RegisterClientInput{Username: "x", Password: "short", Name: "X", Slug: "x"})
	assert.ErrorIs(t, err, ErrAuthInvalidInput)

	_, err = svc.RegisterClient(ctx, RegisterClientInput{Password: "longenough", Name: "X", Slug: "x"})
	assert.ErrorIs(t, err, ErrAuthInvalidInput)
}

func TestRegisterClientTakenIdentifiers(t *testing.T) {
	setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.RegisterClient(ctx, RegisterClientInput{Username: "first", Password: "longenough", Name: "First", Slug: "first"})
	require.NoError(t, err)

	_, err = svc.RegisterClient(ctx, RegisterClientInput{Username: "second", Password: "longenough", Name: "Second", Slug: "first"})
	assert.ErrorIs(t, err, ErrSlugTaken)

	_, err = svc.RegisterClient(ctx, RegisterClientInput{Username: "first", Password: "longenough", Name: "Second", Slug: "second"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestLoginClientDisabled(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	client := seedClient(t, db, "sleepy", "sleepy")
	require.NoError(t, db.Model(client).Update("is_active", false).Error)

	_, err := svc.LoginClient(ctx, "sleepy", "hunter2secret")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

func TestLoginClientLegacyUpgrade(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	codec, err := legacycrypt.NewCodec(testLegacyKey)
	require.NoError(t, err)
	legacyValue, err := codec.Encrypt("imported-password")
	require.NoError(t, err)

	client := seedClient(t, db, "imported", "imported")
	require.NoError(t, db.Model(client).Update("password_hash", legacyValue).Error)

	result, err := svc.LoginClient(ctx, "imported", "imported-password")
	require.NoError(t, err)
	require.NotNil(t, result.Client)

	// the stored value is bcrypt now
	var reloaded models.Client
	require.NoError(t, db.First(&reloaded, client.ID).Error)
	assert.False(t, legacycrypt.IsLegacyValue(reloaded.PasswordHash))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(reloaded.PasswordHash), []byte("imported-password")))

	// second login takes the bcrypt path
	_, err = svc.LoginClient(ctx, "imported", "imported-password")
	assert.NoError(t, err)
}

func TestLoginStaffScopedToEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, client.ID)
	other := seedEvent(t, db, client.ID)
	staff := seedStaff(t, db, event.ID, "door-crew")

	result, err := svc.LoginStaff(ctx, event.ID, "door-crew", "hunter2secret")
	require.NoError(t, err)
	require.NotNil(t, result.Staff)

	claims, err := token.Parse(testJWTSecret, result.Token)
	require.NoError(t, err)
	assert.Equal(t, token.KindStaff, claims.Kind)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, event.ID, claims.EventID)
	assert.Equal(t, client.ID, claims.ClientID)

	// same username against the wrong event fails
	_, err = svc.LoginStaff(ctx, other.ID, "door-crew", "hunter2secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginStaffInactiveEvent(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestAuthService(t)
	ctx := context.Background()

	client := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, client.ID)
	seedStaff(t, db, event.ID, "door-crew")
	require.NoError(t, db.Model(event).Update("is_active", false).Error)

	_, err := svc.LoginStaff(ctx, event.ID, "door-crew", "hunter2secret")
	assert.ErrorIs(t, err, ErrAccountDisabled)
}
