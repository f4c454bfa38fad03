package services

import (
	"context"
	"testing"

	"undangan.digital/models"
	"undangan.digital/pkg/qrpass"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckinIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckinService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	first := seedStaff(t, db, event.ID, "crew-a")
	second := seedStaff(t, db, event.ID, "crew-b")
	guest := seedGuest(t, db, event.ID, "Guest A")

	companions := 2
	checked, err := svc.CheckinByID(ctx, first.ID, event.ID, guest.ID, CheckinInput{ActualCompanions: &companions})
	require.NoError(t, err)
	assert.True(t, checked.IsCheckedIn)
	require.NotNil(t, checked.CheckedInAt)
	require.NotNil(t, checked.CheckedInBy)
	assert.Equal(t, first.ID, *checked.CheckedInBy)
	assert.Equal(t, 2, checked.ActualCompanions)
	firstAt := *checked.CheckedInAt

	// a second scan overwrites timestamp and actor instead of failing
	again, err := svc.CheckinByID(ctx, second.ID, event.ID, guest.ID, CheckinInput{})
	require.NoError(t, err)
	assert.True(t, again.IsCheckedIn)
	assert.Equal(t, second.ID, *again.CheckedInBy)
	assert.False(t, again.CheckedInAt.Before(firstAt))

	// both scans left an audit row
	logs, err := svc.GuestHistory(ctx, event.ID, guest.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	for _, entry := range logs {
		assert.Equal(t, models.StaffActionCheckin, entry.Action)
	}
}

func TestCheckinByQR(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckinService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	foreign := seedEvent(t, db, owner.ID)
	staff := seedStaff(t, db, event.ID, "crew")

	guest := seedGuest(t, db, event.ID, "Guest A")
	tokenValue := qrpass.NewToken()
	require.NoError(t, db.Model(guest).Update("qr_token", tokenValue).Error)

	outsider := seedGuest(t, db, foreign.ID, "Guest B")
	foreignToken := qrpass.NewToken()
	require.NoError(t, db.Model(outsider).Update("qr_token", foreignToken).Error)

	checked, err := svc.CheckinByQR(ctx, staff.ID, event.ID, tokenValue, CheckinInput{})
	require.NoError(t, err)
	assert.Equal(t, guest.ID, checked.ID)

	// tokens from another event read as unknown
	_, err = svc.CheckinByQR(ctx, staff.ID, event.ID, foreignToken, CheckinInput{})
	assert.ErrorIs(t, err, ErrCheckinGuestNotFound)

	_, err = svc.CheckinByQR(ctx, staff.ID, event.ID, "no-such-token", CheckinInput{})
	assert.ErrorIs(t, err, ErrCheckinGuestNotFound)
	_, err = svc.CheckinByQR(ctx, staff.ID, event.ID, "", CheckinInput{})
	assert.ErrorIs(t, err, ErrCheckinInvalidInput)
}

func TestCheckinPermissionAndStaffValidity(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckinService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	other := seedEvent(t, db, owner.ID)
	guest := seedGuest(t, db, event.ID, "Guest A")

	noCheckin := seedStaff(t, db, event.ID, "greeter")
	require.NoError(t, db.Model(noCheckin).Update("can_checkin", false).Error)
	_, err := svc.CheckinByID(ctx, noCheckin.ID, event.ID, guest.ID, CheckinInput{})
	assert.ErrorIs(t, err, ErrCheckinForbidden)

	// a token minted before deactivation stops working immediately
	disabled := seedStaff(t, db, event.ID, "fired")
	require.NoError(t, db.Model(disabled).Update("is_active", false).Error)
	_, err = svc.CheckinByID(ctx, disabled.ID, event.ID, guest.ID, CheckinInput{})
	assert.ErrorIs(t, err, ErrCheckinStaffInvalid)

	// staff of one event cannot act inside another
	outsider := seedStaff(t, db, other.ID, "outsider")
	_, err = svc.CheckinByID(ctx, outsider.ID, event.ID, guest.ID, CheckinInput{})
	assert.ErrorIs(t, err, ErrCheckinStaffInvalid)

	negative := -1
	crew := seedStaff(t, db, event.ID, "crew")
	_, err = svc.CheckinByID(ctx, crew.ID, event.ID, guest.ID, CheckinInput{ActualCompanions: &negative})
	assert.ErrorIs(t, err, ErrCheckinInvalidInput)
}

func TestRedeemPermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckinService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	guest := seedGuest(t, db, event.ID, "Guest A")

	staff := seedStaff(t, db, event.ID, "crew")
	require.NoError(t, db.Model(staff).Update("can_redeem_snack", true).Error)

	entry, err := svc.Redeem(ctx, staff.ID, event.ID, guest.ID, RedeemInput{Action: models.StaffActionSnack, Notes: "2 boxes"})
	require.NoError(t, err)
	assert.Equal(t, models.StaffActionSnack, entry.Action)

	// meal rides on the snack flag
	_, err = svc.Redeem(ctx, staff.ID, event.ID, guest.ID, RedeemInput{Action: models.StaffActionMeal})
	assert.NoError(t, err)

	_, err = svc.Redeem(ctx, staff.ID, event.ID, guest.ID, RedeemInput{Action: models.StaffActionSouvenir})
	assert.ErrorIs(t, err, ErrCheckinForbidden)
	_, err = svc.Redeem(ctx, staff.ID, event.ID, guest.ID, RedeemInput{Action: models.StaffActionVIP})
	assert.ErrorIs(t, err, ErrCheckinForbidden)

	// "other" is open to any active staff
	_, err = svc.Redeem(ctx, staff.ID, event.ID, guest.ID, RedeemInput{Action: models.StaffActionOther})
	assert.NoError(t, err)

	_, err = svc.Redeem(ctx, staff.ID, event.ID, guest.ID, RedeemInput{Action: "dance"})
	assert.ErrorIs(t, err, ErrCheckinInvalidInput)
}

func TestEventStats(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCheckinService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	staff := seedStaff(t, db, event.ID, "crew")

	arrived := seedGuest(t, db, event.ID, "Arrived")
	seedGuest(t, db, event.ID, "Still Home")
	walkin := seedGuest(t, db, event.ID, "Walkin")
	require.NoError(t, db.Model(walkin).Update("source", models.GuestSourceWalkin).Error)

	two := 2
	_, err := svc.CheckinByID(ctx, staff.ID, event.ID, arrived.ID, CheckinInput{ActualCompanions: &two})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx, event.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalGuests)
	assert.Equal(t, int64(1), stats.CheckedIn)
	assert.Equal(t, int64(2), stats.NotCheckedIn)
	assert.Equal(t, int64(1), stats.Walkins)
	assert.Equal(t, int64(1), stats.TotalStaff)
	assert.Equal(t, int64(2), stats.TotalCompanion)
}
