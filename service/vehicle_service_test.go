package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/models"
)

func TestVehicleAssignAndUnassignDriver(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc := NewVehicleService(stg, testLogger())

	driver, err := stg.drivers.Create(ctx, &models.Driver{Name: "Maria", Active: true})
	require.NoError(t, err)
	vehicle, err := svc.Create(ctx, &models.Vehicle{Plate: "ABC-1234"})
	require.NoError(t, err)
	require.Nil(t, vehicle.DriverID)

	assigned, err := svc.AssignDriver(ctx, vehicle.ID, driver.ID)
	require.NoError(t, err)
	require.NotNil(t, assigned.DriverID)
	assert.Equal(t, driver.ID, *assigned.DriverID)

	unassigned, err := svc.UnassignDriver(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Nil(t, unassigned.DriverID)
}

func TestVehicleAssignUnknownDriver(t *testing.T) {
	ctx := context.Background()
	stg := newMemStorage()
	svc := NewVehicleService(stg, testLogger())

	vehicle, err := svc.Create(ctx, &models.Vehicle{Plate: "ABC-1234"})
	require.NoError(t, err)

	_, err = svc.AssignDriver(ctx, vehicle.ID, uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// the vehicle stays unassigned
	stored, err := svc.GetByID(ctx, vehicle.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.DriverID)
}

func TestVehicleCreateRequiresPlate(t *testing.T) {
	stg := newMemStorage()
	svc := NewVehicleService(stg, testLogger())

	_, err := svc.Create(context.Background(), &models.Vehicle{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestVehicleGetMissing(t *testing.T) {
	stg := newMemStorage()
	svc := NewVehicleService(stg, testLogger())

	_, err := svc.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
