package models

type GateStatus string

const (
	GateOpen    GateStatus = "open"
	GateLimited GateStatus = "limited"
	GateClosed  GateStatus = "closed"
)

func (s GateStatus) Valid() bool {
	switch s {
	case GateOpen, GateLimited, GateClosed:
		return true
	}

	return false
}

type Gate struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	Number        int        `json:"number"`
	Location      string     `json:"location"`
	Status        GateStatus `json:"status"`
	StaffCount    int        `json:"staff_count"`
	TotalCheckins int64      `json:"total_checkins"`
	// CurrentRate is check-ins during the last hour, filled in on read.
	CurrentRate int64 `json:"current_rate"`
	Version     int64 `json:"version"`
}

type EventMetrics struct {
	EventID          string `json:"event_id"`
	Checkins         int64  `json:"checkins"`
	Rate             int64  `json:"rate"`
	AvailableTickets int    `json:"available_tickets"`
	SoldTickets      int    `json:"sold_tickets"`
	Gates            []Gate `json:"gates"`
}
