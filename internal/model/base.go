package model

import "time"

// BaseModel holds the fields shared by all menu entities. Timestamps are
// epoch milliseconds, matching the persisted snapshot shape.
type BaseModel struct {
	ID        string `db:"id" json:"id"`
	CreatedAt int64  `db:"created_at" json:"createdAt"`
	UpdatedAt int64  `db:"updated_at" json:"updatedAt"`
}

// NowMillis returns the current time as epoch milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
