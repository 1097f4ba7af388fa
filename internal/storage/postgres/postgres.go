package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"eventGate/internal/config"
	"eventGate/internal/models"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

//go:embed schema.sql
var schema string

type Storage struct {
	DB *sql.DB
}

func InitDB(dbCfg *config.Database) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := &Storage{DB: db}
	if err = s.Migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate creates missing tables. It is safe to run on every start.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

// Every upsert below only overwrites a row with a strictly newer version, so
// writes that arrive out of order never roll a record back.

func (s *Storage) SaveEvent(ctx context.Context, ev models.Event) error {
	query := `
		INSERT INTO events (id, title, description, category, location, starts_at, ends_at,
			capacity, ticket_types, seats, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			location = EXCLUDED.location,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			capacity = EXCLUDED.capacity,
			ticket_types = EXCLUDED.ticket_types,
			seats = EXCLUDED.seats,
			version = EXCLUDED.version
		WHERE events.version < EXCLUDED.version`

	ticketTypes, err := json.Marshal(ev.TicketTypes)
	if err != nil {
		return fmt.Errorf("failed to encode ticket types: %w", err)
	}
	seats, err := json.Marshal(nonNil(ev.Seats))
	if err != nil {
		return fmt.Errorf("failed to encode seats: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, query,
		ev.ID, ev.Title, ev.Description, ev.Category, ev.Location, ev.StartsAt, nullTime(ev.EndsAt),
		ev.Capacity, ticketTypes, seats, ev.Version, ev.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save event: %w", err)
	}

	return nil
}

func (s *Storage) SaveReservation(ctx context.Context, r models.Reservation) error {
	query := `
		INSERT INTO reservations (id, event_id, ticket_type, seat_ids, quantity, unit_price,
			owner_id, status, expires_at, ticket_ids, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			status = EXCLUDED.status,
			ticket_ids = EXCLUDED.ticket_ids,
			version = EXCLUDED.version
		WHERE reservations.version < EXCLUDED.version`

	seatIDs, err := json.Marshal(nonNil(r.SeatIDs))
	if err != nil {
		return fmt.Errorf("failed to encode seat ids: %w", err)
	}
	ticketIDs, err := json.Marshal(nonNil(r.TicketIDs))
	if err != nil {
		return fmt.Errorf("failed to encode ticket ids: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, query,
		r.ID, r.EventID, r.TicketType, seatIDs, r.Quantity, int64(r.UnitPrice),
		r.OwnerID, string(r.Status), r.ExpiresAt, ticketIDs, r.Version, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save reservation: %w", err)
	}

	return nil
}

func (s *Storage) SaveTicket(ctx context.Context, t models.Ticket) error {
	query := `
		INSERT INTO tickets (id, event_id, reservation_id, owner_id, seat_id, ticket_type, price,
			status, code_hash, checked_in_at, gate_id, staff_id, version, issued_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			checked_in_at = EXCLUDED.checked_in_at,
			gate_id = EXCLUDED.gate_id,
			staff_id = EXCLUDED.staff_id,
			version = EXCLUDED.version
		WHERE tickets.version < EXCLUDED.version`

	var checkedInAt sql.NullTime
	if t.CheckedInAt != nil {
		checkedInAt = sql.NullTime{Time: *t.CheckedInAt, Valid: true}
	}

	_, err := s.DB.ExecContext(ctx, query,
		t.ID, t.EventID, t.ReservationID, t.OwnerID, t.SeatID, t.TicketType, int64(t.Price),
		string(t.Status), t.CodeHash, checkedInAt, t.GateID, t.StaffID, t.Version, t.IssuedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return nil
}

func (s *Storage) SaveGate(ctx context.Context, g models.Gate) error {
	query := `
		INSERT INTO gates (id, event_id, number, location, status, staff_count, total_checkins, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			location = EXCLUDED.location,
			status = EXCLUDED.status,
			staff_count = EXCLUDED.staff_count,
			total_checkins = EXCLUDED.total_checkins,
			version = EXCLUDED.version
		WHERE gates.version < EXCLUDED.version`

	_, err := s.DB.ExecContext(ctx, query,
		g.ID, g.EventID, g.Number, g.Location, string(g.Status), g.StaffCount, g.TotalCheckins, g.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to save gate: %w", err)
	}

	return nil
}

func (s *Storage) SaveCheckin(ctx context.Context, rec models.CheckinRecord) error {
	query := `
		INSERT INTO checkins (ticket_id, event_id, gate_id, staff_id, outcome, reason, at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.DB.ExecContext(ctx, query,
		rec.TicketID, rec.EventID, rec.GateID, rec.StaffID, string(rec.Outcome), rec.Reason, rec.At,
	)
	if err != nil {
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
