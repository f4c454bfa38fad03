package services

import (
	"context"
	"testing"

	"undangan.digital/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatingCRUDAndValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeatingService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)

	table, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "Table 1", Kind: models.SeatingKindTable, Capacity: 8,
	})
	require.NoError(t, err)

	_, err = svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{Name: "Bad", Kind: "booth", Capacity: 4})
	assert.ErrorIs(t, err, ErrSeatingInvalidInput)
	_, err = svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{Name: "Bad", Kind: models.SeatingKindTable, Capacity: 0})
	assert.ErrorIs(t, err, ErrSeatingInvalidInput)

	updated, err := svc.UpdateSeating(ctx, owner.ID, event.ID, table.ID, map[string]interface{}{"capacity": float64(10)})
	require.NoError(t, err)
	assert.Equal(t, 10, updated.Capacity)

	batch, err := svc.CreateSeatingBatch(ctx, owner.ID, event.ID, []CreateSeatingInput{
		{Name: "Zone A", Kind: models.SeatingKindZone, Capacity: 30},
		{Name: "Zone B", Kind: models.SeatingKindZone, Capacity: 30},
	})
	require.NoError(t, err)
	assert.Len(t, batch, 2)

	views, err := svc.ListSeating(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Len(t, views, 3)
}

func TestAssignGuestCapacityAndType(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeatingService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	vip := seedGuestType(t, db, event.ID, "VIP")

	small, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "Small", Kind: models.SeatingKindTable, Capacity: 1,
	})
	require.NoError(t, err)
	vipOnly, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "VIP Only", Kind: models.SeatingKindTable, Capacity: 4,
		AllowedGuestTypes: models.UintList{vip.ID},
	})
	require.NoError(t, err)

	regular := seedGuest(t, db, event.ID, "Regular")
	second := seedGuest(t, db, event.ID, "Second")

	assigned, err := svc.AssignGuest(ctx, owner.ID, event.ID, regular.ID, small.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.SeatingConfigID)
	assert.Equal(t, small.ID, *assigned.SeatingConfigID)

	// re-assigning the same guest to the same spot is not "full"
	_, err = svc.AssignGuest(ctx, owner.ID, event.ID, regular.ID, small.ID)
	assert.NoError(t, err)

	_, err = svc.AssignGuest(ctx, owner.ID, event.ID, second.ID, small.ID)
	assert.ErrorIs(t, err, ErrSeatingFull)

	// a guest without a type cannot take a restricted spot
	_, err = svc.AssignGuest(ctx, owner.ID, event.ID, second.ID, vipOnly.ID)
	assert.ErrorIs(t, err, ErrSeatingTypeRejected)

	released, err := svc.UnassignGuest(ctx, owner.ID, event.ID, regular.ID)
	require.NoError(t, err)
	assert.Nil(t, released.SeatingConfigID)
}

func TestAutoAssignRestrictedFirst(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeatingService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)
	vip := seedGuestType(t, db, event.ID, "VIP")

	// creation order: unrestricted open zone first, then the VIP table.
	// Auto-assign must still try the VIP table first for VIP guests.
	open, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "Open Zone", Kind: models.SeatingKindZone, Capacity: 10,
	})
	require.NoError(t, err)
	vipTable, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "VIP Table", Kind: models.SeatingKindTable, Capacity: 2,
		AllowedGuestTypes: models.UintList{vip.ID},
	})
	require.NoError(t, err)

	g1 := seedGuest(t, db, event.ID, "G1")
	require.NoError(t, db.Model(g1).Update("guest_type_id", vip.ID).Error)
	g2 := seedGuest(t, db, event.ID, "G2")
	g3 := seedGuest(t, db, event.ID, "G3")
	require.NoError(t, db.Model(g3).Update("guest_type_id", vip.ID).Error)

	result, err := svc.AutoAssign(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Assigned)
	assert.Equal(t, 0, result.Unassigned)

	placement := func(id uint) uint {
		var g models.EventGuest
		require.NoError(t, db.First(&g, id).Error)
		require.NotNil(t, g.SeatingConfigID)
		return *g.SeatingConfigID
	}
	assert.Equal(t, vipTable.ID, placement(g1.ID))
	assert.Equal(t, open.ID, placement(g2.ID))
	assert.Equal(t, vipTable.ID, placement(g3.ID))

	// re-running is a no-op
	again, err := svc.AutoAssign(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, again.Assigned)
	assert.Equal(t, 0, again.Unassigned)
}

func TestAutoAssignReportsOverflow(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeatingService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)

	_, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "Tiny", Kind: models.SeatingKindTable, Capacity: 1,
	})
	require.NoError(t, err)
	seedGuest(t, db, event.ID, "A")
	seedGuest(t, db, event.ID, "B")

	result, err := svc.AutoAssign(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Assigned)
	assert.Equal(t, 1, result.Unassigned)
}

func TestDeleteSeatingReleasesGuests(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeatingService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	event := seedEvent(t, db, owner.ID)

	table, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "Table", Kind: models.SeatingKindTable, Capacity: 4,
	})
	require.NoError(t, err)
	guest := seedGuest(t, db, event.ID, "Budi")
	_, err = svc.AssignGuest(ctx, owner.ID, event.ID, guest.ID, table.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSeating(ctx, owner.ID, event.ID, table.ID))

	var reloaded models.EventGuest
	require.NoError(t, db.First(&reloaded, guest.ID).Error)
	assert.Nil(t, reloaded.SeatingConfigID)

	views, err := svc.ListSeating(ctx, owner.ID, event.ID)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestSeatingScopedToOwner(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSeatingService()
	ctx := context.Background()

	owner := seedClient(t, db, "owner", "owner")
	intruder := seedClient(t, db, "intruder", "intruder")
	event := seedEvent(t, db, owner.ID)

	table, err := svc.CreateSeating(ctx, owner.ID, event.ID, CreateSeatingInput{
		Name: "Table", Kind: models.SeatingKindTable, Capacity: 4,
	})
	require.NoError(t, err)

	_, err = svc.UpdateSeating(ctx, intruder.ID, event.ID, table.ID, map[string]interface{}{"name": "hijacked"})
	assert.ErrorIs(t, err, ErrSeatingNotFound)
	err = svc.DeleteSeating(ctx, intruder.ID, event.ID, table.ID)
	assert.ErrorIs(t, err, ErrSeatingNotFound)
}
