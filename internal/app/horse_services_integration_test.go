//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/rolfovo/gpx-analyzer/internal/domain/horses"
	"github.com/rolfovo/gpx-analyzer/internal/infrastructure/persistence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHorseService_Create_Success(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	notes := "calm on trails"
	horse, err := services.HorseService.Create(ctx, "Luna", &notes)
	require.NoError(t, err)
	assert.NotEmpty(t, horse.ID)
	assert.Equal(t, "Luna", horse.Name)
	require.NotNil(t, horse.Notes)
	assert.Equal(t, notes, *horse.Notes)
}

func TestHorseService_Create_Fail_DuplicateName(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	_, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)

	horse, err := services.HorseService.Create(ctx, "Luna", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, horses.ErrHorseExists)
	assert.Nil(t, horse)
}

func TestHorseService_List_IncludesRideCounts(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	luna, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)
	_, err = services.HorseService.Create(ctx, "Bella", nil)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		ride := persistence.CreateTestRide(t, "", &luna.ID)
		require.NoError(t, services.DBContext.RideRepo.Create(ctx, ride))
	}

	summaries, err := services.HorseService.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	// Ordered by name.
	assert.Equal(t, "Bella", summaries[0].Horse.Name)
	assert.Equal(t, int64(0), summaries[0].RideCount)
	assert.Equal(t, "Luna", summaries[1].Horse.Name)
	assert.Equal(t, int64(2), summaries[1].RideCount)
}

func TestHorseService_UpdateByID_Success(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	horse, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)

	walkTrot := 9.5
	trotCanter := 16.0
	updated, err := services.HorseService.UpdateByID(ctx, horse.ID, horses.HorseUpdate{
		Name:          "Luna II",
		WalkTrotKmh:   &walkTrot,
		TrotCanterKmh: &trotCanter,
	})
	require.NoError(t, err)
	assert.Equal(t, "Luna II", updated.Name)
	require.NotNil(t, updated.WalkTrotKmh)
	assert.Equal(t, walkTrot, *updated.WalkTrotKmh)
}

func TestHorseService_UpdateByID_Fail_InvalidThresholds(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	horse, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)

	walkTrot := 18.0
	trotCanter := 12.0
	updated, err := services.HorseService.UpdateByID(ctx, horse.ID, horses.HorseUpdate{
		Name:          "Luna",
		WalkTrotKmh:   &walkTrot,
		TrotCanterKmh: &trotCanter,
	})
	require.Error(t, err)
	assert.Nil(t, updated)
}

func TestHorseService_DeleteByID_DetachesRides(t *testing.T) {
	services := SetupTestServices(t)
	ctx := context.Background()

	horse, err := services.HorseService.Create(ctx, "Luna", nil)
	require.NoError(t, err)

	ride := persistence.CreateTestRide(t, "", &horse.ID)
	require.NoError(t, services.DBContext.RideRepo.Create(ctx, ride))

	require.NoError(t, services.HorseService.DeleteByID(ctx, horse.ID))

	_, err = services.HorseService.GetByID(ctx, horse.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, horses.ErrHorseNotFound)

	kept, err := services.DBContext.RideRepo.GetByID(ctx, ride.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.HorseID)
}

func TestHorseService_DeleteByID_Fail_Unknown(t *testing.T) {
	services := SetupTestServices(t)

	err := services.HorseService.DeleteByID(context.Background(), "00000000-0000-0000-0000-000000000000")
	require.Error(t, err)
	assert.ErrorIs(t, err, horses.ErrHorseNotFound)
}
