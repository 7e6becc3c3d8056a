package domain

import "time"

// Period is a fiscal sub-period gating postable dates. Once Closed flips to
// true the period is immutable: no entry may target it and no entry inside it
// may be changed or removed. Closing is terminal, there is no reopen.
type Period struct {
	PeriodID  string    `json:"periodID"` // Primary Key (UUID)
	Code      string    `json:"code"`     // e.g. "2025-09"
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"` // Inclusive; StartDate <= EndDate
	Closed    bool      `json:"closed"`
	AuditFields
}

// Contains reports whether date falls inside the period's inclusive range.
// Comparison is on calendar dates, times are normalized to UTC midnight on
// the way in.
func (p Period) Contains(date time.Time) bool {
	d := date.Truncate(24 * time.Hour)
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// Overlaps reports whether the period's range intersects [start, end].
func (p Period) Overlaps(start, end time.Time) bool {
	return !start.After(p.EndDate) && !end.Before(p.StartDate)
}
