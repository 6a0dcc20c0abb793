package model

const (
	SessionStatusActive = "active"
	SessionStatusClosed = "closed"
)

// Session is a timed service window. The embedded snapshot is frozen at start
// time; only an explicit refresh while the session is active replaces it.
// At most one session is active at any time.
type Session struct {
	ID            string       `db:"id" json:"id"`
	Name          string       `db:"name" json:"name"`
	Status        string       `db:"status" json:"status"`
	StartedAt     int64        `db:"started_at" json:"startedAt"`
	EndedAt       *int64       `db:"ended_at" json:"endedAt,omitempty"`
	CustomerCount *int         `db:"customer_count" json:"customerCount,omitempty"`
	Notes         string       `db:"notes" json:"notes"`
	MenuSnapshot  MenuSnapshot `db:"menu_snapshot" json:"menuSnapshot"`
}

func (s *Session) Active() bool {
	return s.Status == SessionStatusActive
}
