package postgres

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"safetrack/pkg/models"
)

func boolPtr(b bool) *bool { return &b }

func TestWhereBuilderEmptyIsMatchAll(t *testing.T) {
	b := &whereBuilder{}
	assert.Equal(t, "", b.clause())
	assert.Empty(t, b.args)
}

func TestWhereBuilderNumbersArgsInOrder(t *testing.T) {
	b := &whereBuilder{}
	b.add("a = $%d", 1)
	b.addRaw("b IS NULL")
	b.add("c = $%d", "x")

	assert.Equal(t, " WHERE a = $1 AND b IS NULL AND c = $2", b.clause())
	assert.Equal(t, []any{1, "x"}, b.args)
}

func TestDriverFilterWhereEmpty(t *testing.T) {
	b := driverFilterWhere(models.DriverFilter{})
	assert.Equal(t, "", b.clause())
}

func TestDriverFilterWhereAllFields(t *testing.T) {
	b := driverFilterWhere(models.DriverFilter{
		Name:     "  Maria ",
		License:  " B123 ",
		Active:   boolPtr(true),
		Assigned: boolPtr(false),
	})

	assert.Equal(t,
		" WHERE LOWER(d.name) LIKE $1 AND d.license = $2 AND d.active = $3"+
			" AND NOT EXISTS (SELECT 1 FROM vehicles v WHERE v.driver_id = d.id)",
		b.clause())
	assert.Equal(t, []any{"%maria%", "B123", true}, b.args)
}

func TestDriverFilterWhereAssignedUsesExists(t *testing.T) {
	b := driverFilterWhere(models.DriverFilter{Assigned: boolPtr(true)})
	assert.Equal(t, " WHERE EXISTS (SELECT 1 FROM vehicles v WHERE v.driver_id = d.id)", b.clause())
	assert.Empty(t, b.args)
}

func TestVehicleFilterWherePlateIsExactCaseInsensitive(t *testing.T) {
	b := vehicleFilterWhere(models.VehicleFilter{Plate: "ABC-1234"})
	assert.Equal(t, " WHERE LOWER(v.plate) = $1", b.clause())
	assert.Equal(t, []any{"abc-1234"}, b.args)
}

func TestVehicleFilterWhereAssignedIsNullCheck(t *testing.T) {
	assigned := vehicleFilterWhere(models.VehicleFilter{Assigned: boolPtr(true)})
	assert.Equal(t, " WHERE v.driver_id IS NOT NULL", assigned.clause())

	unassigned := vehicleFilterWhere(models.VehicleFilter{Assigned: boolPtr(false)})
	assert.Equal(t, " WHERE v.driver_id IS NULL", unassigned.clause())
}

func TestVehicleFilterWhereAllFields(t *testing.T) {
	year := 2022
	driverID := uuid.New()
	b := vehicleFilterWhere(models.VehicleFilter{
		Plate:    "abc-1234",
		Make:     "Volvo",
		Model:    "FH",
		Year:     &year,
		DriverID: &driverID,
		Active:   boolPtr(true),
	})

	assert.Equal(t,
		" WHERE LOWER(v.plate) = $1 AND LOWER(v.make) LIKE $2 AND LOWER(v.model) LIKE $3"+
			" AND v.year = $4 AND v.driver_id = $5 AND v.active = $6",
		b.clause())
	assert.Equal(t, []any{"abc-1234", "%volvo%", "%fh%", 2022, driverID, true}, b.args)
}

func TestEventFilterWhereDateBoundsAreInclusive(t *testing.T) {
	day := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)
	b := eventFilterWhere(models.EventFilter{StartDate: &day, EndDate: &day})

	assert.Equal(t, " WHERE e.ts >= $1 AND e.ts <= $2", b.clause())
	assert.Equal(t, time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC), b.args[0])
	assert.Equal(t, time.Date(2025, 3, 14, 23, 59, 59, 999999999, time.UTC), b.args[1])
}

func TestEventFilterWhereEnumAndJoinPredicates(t *testing.T) {
	level := models.FatigueHigh
	ftype := models.TypeMicrosleep
	b := eventFilterWhere(models.EventFilter{
		DriverID:     "drv-1",
		VehicleID:    "veh-1",
		FatigueLevel: &level,
		FatigueType:  &ftype,
		DriverName:   "Maria",
		VehiclePlate: "ABC",
	})

	assert.Equal(t,
		" WHERE e.driver_id = $1 AND e.vehicle_id = $2 AND e.fatigue_level = $3"+
			" AND e.fatigue_type = $4 AND LOWER(d.name) LIKE $5 AND LOWER(v.plate) LIKE $6",
		b.clause())
	assert.Equal(t, []any{"drv-1", "veh-1", models.FatigueHigh, models.TypeMicrosleep, "%maria%", "%abc%"}, b.args)
}

func TestUserFilterWhere(t *testing.T) {
	role := models.RoleAuditor
	b := userFilterWhere(models.UserFilter{
		Name:   "ana",
		Email:  "EXAMPLE.com",
		Role:   &role,
		Active: boolPtr(false),
	})

	assert.Equal(t,
		" WHERE LOWER(u.name) LIKE $1 AND LOWER(u.email) LIKE $2 AND u.role = $3 AND u.active = $4",
		b.clause())
	assert.Equal(t, []any{"%ana%", "%example.com%", models.RoleAuditor, false}, b.args)
}

func TestPaginateContinuesArgNumbering(t *testing.T) {
	b := driverFilterWhere(models.DriverFilter{Name: "maria"})
	page := models.PageRequest{Page: 2, Size: 10}

	suffix, args := paginate(b, "d.created_at DESC", page)

	assert.Equal(t, " ORDER BY d.created_at DESC LIMIT $2 OFFSET $3", suffix)
	assert.Equal(t, []any{"%maria%", 10, 20}, args)
}

func TestPaginateOnEmptyFilter(t *testing.T) {
	suffix, args := paginate(&whereBuilder{}, "u.name ASC", models.PageRequest{Page: 0, Size: 20})

	assert.Equal(t, " ORDER BY u.name ASC LIMIT $1 OFFSET $2", suffix)
	assert.Equal(t, []any{20, 0}, args)
}
