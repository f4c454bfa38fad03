package services

import (
	"context"
	"testing"

	"undangan.digital/pkg/queryparams"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventLifecycle(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")

	event, err := svc.CreateEvent(ctx, owner.ID, CreateEventInput{Name: "Akad", UseGuestbook: true})
	require.NoError(t, err)
	assert.True(t, event.IsActive)

	got, err := svc.GetEvent(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, "Akad", got.Name)

	updated, err := svc.UpdateEvent(ctx, owner.ID, event.ID, map[string]interface{}{
		"name":         "Resepsi",
		"allow_walkin": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "Resepsi", updated.Name)
	assert.False(t, updated.AllowWalkin)
	// untouched fields survive a partial update
	assert.True(t, updated.UseGuestbook)

	require.NoError(t, svc.DeleteEvent(ctx, owner.ID, event.ID))
	_, err = svc.GetEvent(ctx, owner.ID, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventForeignOwnerReadsAsMissing(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	intruder := seedClient(t, db, "intruder", "intruder")
	event := seedEvent(t, db, owner.ID)

	_, err := svc.GetEvent(ctx, intruder.ID, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
	_, err = svc.UpdateEvent(ctx, intruder.ID, event.ID, map[string]interface{}{"name": "hijacked"})
	assert.ErrorIs(t, err, ErrEventNotFound)
	err = svc.DeleteEvent(ctx, intruder.ID, event.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	// the legitimate owner is unaffected
	_, err = svc.GetEvent(ctx, owner.ID, event.ID)
	assert.NoError(t, err)
}

func TestEventUpdateRejectsUnknownFields(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)

	_, err := svc.UpdateEvent(ctx, owner.ID, event.ID, map[string]interface{}{"client_id": 999})
	assert.ErrorIs(t, err, ErrEventInvalidInput)

	_, err = svc.UpdateEvent(ctx, owner.ID, event.ID, map[string]interface{}{"name": ""})
	assert.ErrorIs(t, err, ErrEventInvalidInput)
}

func TestListEventsPagination(t *testing.T) {
	db := setupTestDB(t)
	svc := NewEventService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	other := seedClient(t, db, "other", "other")
	for i := 0; i < 3; i++ {
		seedEvent(t, db, owner.ID)
	}
	seedEvent(t, db, other.ID)

	params := queryparams.DefaultListParams("id")
	params.PerPage = 2
	result, err := svc.ListEvents(ctx, owner.ID, params)
	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)
}
