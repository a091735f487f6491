package postgres

import (
	"fmt"
	"strings"

	"safetrack/pkg/models"
	"safetrack/pkg/timeutil"
)

// whereBuilder collects optional predicates and positional arguments for a
// single query. Every predicate is AND-ed; no predicates means no WHERE
// clause at all, so an empty filter is a match-all.
type whereBuilder struct {
	conds []string
	args  []any
}

// add appends a condition. expr must contain one "$%d" verb, which gets the
// position of arg in the final argument list.
func (b *whereBuilder) add(expr string, arg any) {
	b.args = append(b.args, arg)
	b.conds = append(b.conds, fmt.Sprintf(expr, len(b.args)))
}

// addRaw appends a condition that binds no argument (IS NULL checks,
// EXISTS subqueries against correlated columns).
func (b *whereBuilder) addRaw(cond string) {
	b.conds = append(b.conds, cond)
}

// clause renders the WHERE clause with a leading space, or "" when no
// condition was added.
func (b *whereBuilder) clause() string {
	if len(b.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(b.conds, " AND ")
}

func likePattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}

func hasText(s string) bool {
	return strings.TrimSpace(s) != ""
}

// driverFilterWhere translates a DriverFilter into predicates against
// drivers d. Assigned checks vehicle existence via a correlated subquery.
func driverFilterWhere(f models.DriverFilter) *whereBuilder {
	b := &whereBuilder{}

	if hasText(f.Name) {
		b.add("LOWER(d.name) LIKE $%d", likePattern(f.Name))
	}
	if hasText(f.License) {
		b.add("d.license = $%d", strings.TrimSpace(f.License))
	}
	if f.Active != nil {
		b.add("d.active = $%d", *f.Active)
	}
	if f.Assigned != nil {
		if *f.Assigned {
			b.addRaw("EXISTS (SELECT 1 FROM vehicles v WHERE v.driver_id = d.id)")
		} else {
			b.addRaw("NOT EXISTS (SELECT 1 FROM vehicles v WHERE v.driver_id = d.id)")
		}
	}
	return b
}

// vehicleFilterWhere translates a VehicleFilter into predicates against
// vehicles v. Assigned maps to the nullability of the driver reference.
func vehicleFilterWhere(f models.VehicleFilter) *whereBuilder {
	b := &whereBuilder{}

	if hasText(f.Plate) {
		b.add("LOWER(v.plate) = $%d", strings.ToLower(strings.TrimSpace(f.Plate)))
	}
	if hasText(f.Make) {
		b.add("LOWER(v.make) LIKE $%d", likePattern(f.Make))
	}
	if hasText(f.Model) {
		b.add("LOWER(v.model) LIKE $%d", likePattern(f.Model))
	}
	if f.Year != nil {
		b.add("v.year = $%d", *f.Year)
	}
	if f.DriverID != nil {
		b.add("v.driver_id = $%d", *f.DriverID)
	}
	if f.Assigned != nil {
		if *f.Assigned {
			b.addRaw("v.driver_id IS NOT NULL")
		} else {
			b.addRaw("v.driver_id IS NULL")
		}
	}
	if f.Active != nil {
		b.add("v.active = $%d", *f.Active)
	}
	return b
}

// eventFilterWhere translates an EventFilter into predicates against
// vehicle_events e, left-joined to drivers d and vehicles v (the joins are
// unconditional in the event queries; the denormalized text ids are matched
// against the entity uuids by cast). Date bounds are inclusive:
// start-of-day UTC to end-of-day UTC.
func eventFilterWhere(f models.EventFilter) *whereBuilder {
	b := &whereBuilder{}

	if f.StartDate != nil {
		b.add("e.ts >= $%d", timeutil.StartOfDayUTC(*f.StartDate))
	}
	if f.EndDate != nil {
		b.add("e.ts <= $%d", timeutil.EndOfDayUTC(*f.EndDate))
	}
	if hasText(f.DriverID) {
		b.add("e.driver_id = $%d", strings.TrimSpace(f.DriverID))
	}
	if hasText(f.VehicleID) {
		b.add("e.vehicle_id = $%d", strings.TrimSpace(f.VehicleID))
	}
	if f.FatigueLevel != nil {
		b.add("e.fatigue_level = $%d", *f.FatigueLevel)
	}
	if f.FatigueType != nil {
		b.add("e.fatigue_type = $%d", *f.FatigueType)
	}
	if hasText(f.DriverName) {
		b.add("LOWER(d.name) LIKE $%d", likePattern(f.DriverName))
	}
	if hasText(f.VehiclePlate) {
		b.add("LOWER(v.plate) LIKE $%d", likePattern(f.VehiclePlate))
	}
	return b
}

// userFilterWhere translates a UserFilter into predicates against users u.
func userFilterWhere(f models.UserFilter) *whereBuilder {
	b := &whereBuilder{}

	if hasText(f.Name) {
		b.add("LOWER(u.name) LIKE $%d", likePattern(f.Name))
	}
	if hasText(f.Email) {
		b.add("LOWER(u.email) LIKE $%d", likePattern(f.Email))
	}
	if f.Role != nil {
		b.add("u.role = $%d", *f.Role)
	}
	if f.Active != nil {
		b.add("u.active = $%d", *f.Active)
	}
	return b
}

// paginate appends ORDER BY / LIMIT / OFFSET after the WHERE arguments.
func paginate(b *whereBuilder, orderBy string, page models.PageRequest) (string, []any) {
	args := append(b.args, page.Size, page.Offset())
	suffix := fmt.Sprintf(" ORDER BY %s LIMIT $%d OFFSET $%d", orderBy, len(args)-1, len(args))
	return suffix, args
}
