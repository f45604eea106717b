package models

import (
	"time"
)

// TimeLayout is the textual timestamp form used across all emitted records.
// Absent timestamps are represented as an empty string, never a null sentinel.
const TimeLayout = "2006-01-02 15:04:05"

// FormatTime renders a timestamp in the record layout.
func FormatTime(t time.Time) string {
	return t.Format(TimeLayout)
}

// User is one row of the users output. Field order matches the tabular
// contract: user_id, first_name, last_name, email, country, signup_at.
type User struct {
	UserID    int    `db:"user_id"`
	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`
	Email     string `db:"email"`     // empty when the null-email anomaly fired
	Country   string `db:"country"`
	SignupAt  string `db:"signup_at"` // empty when the null-signup anomaly fired
}

// UserMeta is the internal per-user side entity consumed by the transaction
// generator and the auditor. It is never emitted. SignupAt is nil when the
// signup is unknown, which is distinct from the record's empty string: parsing
// the emitted field back would lose that typing.
type UserMeta struct {
	SignupAt  *time.Time
	Country   string
	IsAdopter bool
}
