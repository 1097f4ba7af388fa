package checkin

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"eventGate/internal/lib/logger/sl"
	"eventGate/internal/models"
)

type CreateGateInput struct {
	EventID    string
	Number     int
	Location   string
	Status     models.GateStatus
	StaffCount int
}

// CreateGate opens a gate for an existing event. Gates are numbered in
// creation order unless a number is given.
func (v *Validator) CreateGate(ctx context.Context, in CreateGateInput) (models.Gate, error) {
	const op = "checkin.CreateGate"

	if _, err := v.inventory.Event(in.EventID); err != nil {
		return models.Gate{}, fmt.Errorf("%s: %w", op, err)
	}

	status := in.Status
	if status == "" {
		status = models.GateOpen
	}
	if !status.Valid() || in.StaffCount < 0 {
		return models.Gate{}, fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	}

	v.mu.Lock()
	number := in.Number
	if number <= 0 {
		number = len(v.byEvent[in.EventID]) + 1
	}
	ge := &gateEntry{gate: models.Gate{
		ID:         v.newID(),
		EventID:    in.EventID,
		Number:     number,
		Location:   in.Location,
		Status:     status,
		StaffCount: in.StaffCount,
		Version:    1,
	}}
	v.gates[ge.gate.ID] = ge
	v.byEvent[in.EventID] = append(v.byEvent[in.EventID], ge)
	g := ge.gate
	v.mu.Unlock()

	v.recorder.RecordGate(g)
	v.log.Info("gate created", slog.String("gate_id", g.ID), slog.String("event_id", g.EventID), slog.Int("number", g.Number))

	return g, nil
}

type UpdateGateInput struct {
	Status     *models.GateStatus
	StaffCount *int
}

func (v *Validator) UpdateGate(ctx context.Context, gateID string, in UpdateGateInput) (models.Gate, error) {
	const op = "checkin.UpdateGate"

	if in.Status != nil && !in.Status.Valid() {
		return models.Gate{}, fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	}
	if in.StaffCount != nil && *in.StaffCount < 0 {
		return models.Gate{}, fmt.Errorf("%s: %w", op, models.ErrInvalidState)
	}

	v.mu.RLock()
	ge := v.gates[gateID]
	v.mu.RUnlock()

	if ge == nil {
		return models.Gate{}, fmt.Errorf("%s: %w", op, models.ErrGateNotFound)
	}

	ge.mu.Lock()
	if in.Status != nil {
		ge.gate.Status = *in.Status
	}
	if in.StaffCount != nil {
		ge.gate.StaffCount = *in.StaffCount
	}
	ge.gate.Version++
	g := ge.gate
	ge.mu.Unlock()

	v.recorder.RecordGate(g)
	v.log.Info("gate updated", slog.String("gate_id", g.ID), slog.String("status", string(g.Status)))

	return v.withRate(ctx, g), nil
}

func (v *Validator) Gate(ctx context.Context, gateID string) (models.Gate, error) {
	v.mu.RLock()
	ge := v.gates[gateID]
	v.mu.RUnlock()

	if ge == nil {
		return models.Gate{}, fmt.Errorf("checkin.Gate: %w", models.ErrGateNotFound)
	}

	ge.mu.Lock()
	g := ge.gate
	ge.mu.Unlock()

	return v.withRate(ctx, g), nil
}

// Gates lists an event's gates ordered by number.
func (v *Validator) Gates(ctx context.Context, eventID string) []models.Gate {
	v.mu.RLock()
	entries := append([]*gateEntry(nil), v.byEvent[eventID]...)
	v.mu.RUnlock()

	gates := make([]models.Gate, 0, len(entries))
	for _, ge := range entries {
		ge.mu.Lock()
		g := ge.gate
		ge.mu.Unlock()
		gates = append(gates, v.withRate(ctx, g))
	}

	sort.SliceStable(gates, func(i, j int) bool { return gates[i].Number < gates[j].Number })

	return gates
}

// CurrentRate counts successful check-ins at the gate over the rate window
// ending now.
func (v *Validator) CurrentRate(ctx context.Context, gateID string) (int64, error) {
	const op = "checkin.CurrentRate"

	v.mu.RLock()
	_, ok := v.gates[gateID]
	v.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("%s: %w", op, models.ErrGateNotFound)
	}

	n, err := v.window.Count(ctx, gateID, v.clock.Now().Add(-v.rateWindow))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return n, nil
}

func (v *Validator) withRate(ctx context.Context, g models.Gate) models.Gate {
	rate, err := v.window.Count(ctx, g.ID, v.clock.Now().Add(-v.rateWindow))
	if err != nil {
		v.log.Warn("failed to read gate rate", slog.String("gate_id", g.ID), sl.Err(err))
		return g
	}
	g.CurrentRate = rate

	return g
}

// Metrics aggregates gate activity and remaining inventory for an event.
func (v *Validator) Metrics(ctx context.Context, eventID string) (models.EventMetrics, error) {
	const op = "checkin.Metrics"

	ev, err := v.inventory.Event(eventID)
	if err != nil {
		return models.EventMetrics{}, fmt.Errorf("%s: %w", op, err)
	}

	m := models.EventMetrics{
		EventID: eventID,
		Gates:   v.Gates(ctx, eventID),
	}
	for _, tt := range ev.TicketTypes {
		m.AvailableTickets += tt.Available()
		m.SoldTickets += tt.Sold
	}
	for _, g := range m.Gates {
		m.Checkins += g.TotalCheckins
		m.Rate += g.CurrentRate
	}

	return m, nil
}

// Restore loads persisted gates and tickets on startup.
func (v *Validator) Restore(gates []models.Gate, tickets []models.Ticket) {
	v.mu.Lock()
	defer v.mu.Unlock()

	for _, g := range gates {
		if _, ok := v.gates[g.ID]; ok {
			continue
		}
		ge := &gateEntry{gate: g}
		v.gates[g.ID] = ge
		v.byEvent[g.EventID] = append(v.byEvent[g.EventID], ge)
	}

	for _, t := range tickets {
		v.addLocked(t)
	}
}
