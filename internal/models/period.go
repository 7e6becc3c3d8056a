package models

import "time"

// Period is the persistence shape of a fiscal period row.
type Period struct {
	PeriodID  string    `db:"period_id"`
	Code      string    `db:"code"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	Closed    bool      `db:"closed"`
	AuditFields
}
