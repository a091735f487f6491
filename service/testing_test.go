package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"safetrack/pkg/apperrors"
	"safetrack/pkg/logger"
	"safetrack/pkg/models"
	"safetrack/storage"
)

// In-memory stand-ins for the postgres repos. Each fake keeps rows in a
// map and mirrors the repo contract: getters return (nil, nil) when the
// row does not exist, Create enforces the unique constraints.

type memStorage struct {
	drivers       *memDriverStorage
	vehicles      *memVehicleStorage
	events        *memEventStorage
	rules         *memRuleStorage
	users         *memUserStorage
	notifications *memNotificationStorage
}

func newMemStorage() *memStorage {
	return &memStorage{
		drivers:       &memDriverStorage{rows: map[uuid.UUID]*models.Driver{}},
		vehicles:      &memVehicleStorage{rows: map[uuid.UUID]*models.Vehicle{}},
		events:        &memEventStorage{},
		rules:         &memRuleStorage{rows: map[string]*models.Rule{}},
		users:         &memUserStorage{rows: map[uuid.UUID]*models.User{}},
		notifications: &memNotificationStorage{rows: map[int64]*models.Notification{}},
	}
}

func (m *memStorage) Driver() storage.IDriverStorage             { return m.drivers }
func (m *memStorage) Vehicle() storage.IVehicleStorage           { return m.vehicles }
func (m *memStorage) Event() storage.IEventStorage               { return m.events }
func (m *memStorage) Rule() storage.IRuleStorage                 { return m.rules }
func (m *memStorage) User() storage.IUserStorage                 { return m.users }
func (m *memStorage) Notification() storage.INotificationStorage { return m.notifications }
func (m *memStorage) Close()                                     {}
func (m *memStorage) GetPool() *pgxpool.Pool                     { return nil }

func testLogger() logger.ILogger { return logger.New("test") }

type memDriverStorage struct {
	rows map[uuid.UUID]*models.Driver
}

func (m *memDriverStorage) Create(_ context.Context, d *models.Driver) (*models.Driver, error) {
	cp := *d
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	m.rows[cp.ID] = &cp
	return &cp, nil
}

func (m *memDriverStorage) GetByID(_ context.Context, id uuid.UUID) (*models.Driver, error) {
	d, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *d
	return &cp, nil
}

func (m *memDriverStorage) List(_ context.Context, _ models.DriverFilter, _ models.PageRequest) ([]*models.Driver, int64, error) {
	var out []*models.Driver
	for _, d := range m.rows {
		out = append(out, d)
	}
	return out, int64(len(out)), nil
}

func (m *memDriverStorage) Update(_ context.Context, d *models.Driver) (*models.Driver, error) {
	if _, ok := m.rows[d.ID]; !ok {
		return nil, nil
	}
	cp := *d
	m.rows[d.ID] = &cp
	return &cp, nil
}

func (m *memDriverStorage) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

type memVehicleStorage struct {
	rows map[uuid.UUID]*models.Vehicle
}

func (m *memVehicleStorage) Create(_ context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	cp := *v
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	m.rows[cp.ID] = &cp
	return &cp, nil
}

func (m *memVehicleStorage) GetByID(_ context.Context, id uuid.UUID) (*models.Vehicle, error) {
	v, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (m *memVehicleStorage) List(_ context.Context, _ models.VehicleFilter, _ models.PageRequest) ([]*models.Vehicle, int64, error) {
	var out []*models.Vehicle
	for _, v := range m.rows {
		out = append(out, v)
	}
	return out, int64(len(out)), nil
}

func (m *memVehicleStorage) Update(_ context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	if _, ok := m.rows[v.ID]; !ok {
		return nil, nil
	}
	cp := *v
	m.rows[v.ID] = &cp
	return &cp, nil
}

func (m *memVehicleStorage) SetDriver(_ context.Context, vehicleID uuid.UUID, driverID *uuid.UUID) error {
	v, ok := m.rows[vehicleID]
	if !ok {
		return apperrors.NotFound("vehicle %s", vehicleID)
	}
	v.DriverID = driverID
	return nil
}

func (m *memVehicleStorage) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

type memEventStorage struct {
	rows      []*models.VehicleEvent
	createErr error
}

func (m *memEventStorage) Create(_ context.Context, e *models.VehicleEvent) (*models.VehicleEvent, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	cp := *e
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	m.rows = append(m.rows, &cp)
	return &cp, nil
}

func (m *memEventStorage) GetByID(_ context.Context, id uuid.UUID) (*models.VehicleEvent, error) {
	for _, e := range m.rows {
		if e.ID == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memEventStorage) List(_ context.Context, _ models.EventFilter, _ models.PageRequest) ([]*models.VehicleEvent, int64, error) {
	return m.rows, int64(len(m.rows)), nil
}

func (m *memEventStorage) CountByType(_ context.Context, start, end time.Time) (map[models.FatigueType]int64, error) {
	out := map[models.FatigueType]int64{}
	for _, e := range m.rows {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		out[e.FatigueType]++
	}
	return out, nil
}

func (m *memEventStorage) TopDriversByCount(_ context.Context, start, end time.Time, limit int) ([]*models.TopDriver, error) {
	counts := map[string]int64{}
	for _, e := range m.rows {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		counts[e.DriverID]++
	}
	var out []*models.TopDriver
	for id, n := range counts {
		out = append(out, &models.TopDriver{DriverID: id, Count: n})
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Count > out[i].Count {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memEventStorage) CountByDay(_ context.Context, level models.FatigueLevel, start, end time.Time) ([]*models.TimelinePoint, error) {
	buckets := map[time.Time]int64{}
	for _, e := range m.rows {
		if e.FatigueLevel != level || e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		day := time.Date(e.Timestamp.Year(), e.Timestamp.Month(), e.Timestamp.Day(), 0, 0, 0, 0, time.UTC)
		buckets[day]++
	}
	var out []*models.TimelinePoint
	for day, n := range buckets {
		out = append(out, &models.TimelinePoint{Date: day, Count: n})
	}
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].Date.Before(out[i].Date) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

type memRuleStorage struct {
	rows   map[string]*models.Rule
	nextID int64
}

func (m *memRuleStorage) Create(_ context.Context, r *models.Rule) (*models.Rule, error) {
	if _, ok := m.rows[r.Name]; ok {
		return nil, apperrors.Duplicate("rule %s already exists", r.Name)
	}
	m.nextID++
	cp := *r
	cp.ID = m.nextID
	m.rows[cp.Name] = &cp
	return &cp, nil
}

func (m *memRuleStorage) GetByName(_ context.Context, name string) (*models.Rule, error) {
	return m.rows[name], nil
}

func (m *memRuleStorage) GetAll(_ context.Context) ([]*models.Rule, error) {
	var out []*models.Rule
	for _, r := range m.rows {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRuleStorage) Update(_ context.Context, r *models.Rule) (*models.Rule, error) {
	if _, ok := m.rows[r.Name]; !ok {
		return nil, nil
	}
	cp := *r
	m.rows[r.Name] = &cp
	return &cp, nil
}

func (m *memRuleStorage) Delete(_ context.Context, name string) error {
	delete(m.rows, name)
	return nil
}

type memUserStorage struct {
	rows map[uuid.UUID]*models.User
}

func (m *memUserStorage) Create(_ context.Context, u *models.User) (*models.User, error) {
	for _, existing := range m.rows {
		if existing.Email == u.Email {
			return nil, apperrors.Duplicate("user with email %s already exists", u.Email)
		}
	}
	cp := *u
	if cp.ID == uuid.Nil {
		cp.ID = uuid.New()
	}
	m.rows[cp.ID] = &cp
	return &cp, nil
}

func (m *memUserStorage) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *memUserStorage) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.rows {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserStorage) GetByResetToken(_ context.Context, resetToken string) (*models.User, error) {
	for _, u := range m.rows {
		if u.ResetToken != nil && *u.ResetToken == resetToken {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memUserStorage) GetByRoles(_ context.Context, roles []models.Role) ([]*models.User, error) {
	var out []*models.User
	for _, u := range m.rows {
		if !u.Active {
			continue
		}
		for _, r := range roles {
			if u.Role == r {
				cp := *u
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (m *memUserStorage) List(_ context.Context, _ models.UserFilter, _ models.PageRequest) ([]*models.User, int64, error) {
	var out []*models.User
	for _, u := range m.rows {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

func (m *memUserStorage) Update(_ context.Context, u *models.User) (*models.User, error) {
	if _, ok := m.rows[u.ID]; !ok {
		return nil, nil
	}
	cp := *u
	m.rows[u.ID] = &cp
	return &cp, nil
}

func (m *memUserStorage) UpdatePassword(_ context.Context, id uuid.UUID, passwordHash string) error {
	u, ok := m.rows[id]
	if !ok {
		return apperrors.NotFound("user %s", id)
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *memUserStorage) SetResetToken(_ context.Context, id uuid.UUID, resetToken string, expiry time.Time) error {
	u, ok := m.rows[id]
	if !ok {
		return apperrors.NotFound("user %s", id)
	}
	u.ResetToken = &resetToken
	u.ResetExpiry = &expiry
	return nil
}

func (m *memUserStorage) ClearResetToken(_ context.Context, id uuid.UUID) error {
	u, ok := m.rows[id]
	if !ok {
		return apperrors.NotFound("user %s", id)
	}
	u.ResetToken = nil
	u.ResetExpiry = nil
	return nil
}

func (m *memUserStorage) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.rows, id)
	return nil
}

type memNotificationStorage struct {
	rows   map[int64]*models.Notification
	nextID int64
}

func (m *memNotificationStorage) Create(_ context.Context, userID uuid.UUID, message string) (*models.Notification, error) {
	m.nextID++
	n := &models.Notification{
		ID:        m.nextID,
		UserID:    userID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	m.rows[n.ID] = n
	return n, nil
}

func (m *memNotificationStorage) GetByID(_ context.Context, id int64) (*models.Notification, error) {
	n, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (m *memNotificationStorage) ListByUser(_ context.Context, userID uuid.UUID, _ models.PageRequest) ([]*models.Notification, int64, error) {
	var out []*models.Notification
	for _, n := range m.rows {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (m *memNotificationStorage) CountUnread(_ context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range m.rows {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (m *memNotificationStorage) MarkRead(_ context.Context, id int64) error {
	n, ok := m.rows[id]
	if !ok {
		return apperrors.NotFound("notification %d", id)
	}
	n.Read = true
	return nil
}

func (m *memNotificationStorage) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	var flipped int64
	for _, n := range m.rows {
		if n.UserID == userID && !n.Read {
			n.Read = true
			flipped++
		}
	}
	return flipped, nil
}
