package dto

import (
	"time"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// DateLayout is the wire format for calendar dates (ISO-8601 date only).
const DateLayout = "2006-01-02"

// CreatePeriodRequest defines the data needed to create a fiscal period.
// Dates are ISO calendar dates; the range is inclusive.
type CreatePeriodRequest struct {
	Code      string `json:"code" binding:"required,periodcode"`
	StartDate string `json:"startDate" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required,datetime=2006-01-02"`
}

// PeriodResponse defines the data returned for a period.
type PeriodResponse struct {
	PeriodID  string    `json:"periodID"`
	Code      string    `json:"code"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Closed    bool      `json:"closed"`
	CreatedAt time.Time `json:"createdAt"`
}

// ToPeriodResponse converts a domain.Period to its response DTO.
func ToPeriodResponse(p *domain.Period) PeriodResponse {
	return PeriodResponse{
		PeriodID:  p.PeriodID,
		Code:      p.Code,
		StartDate: p.StartDate.Format(DateLayout),
		EndDate:   p.EndDate.Format(DateLayout),
		Closed:    p.Closed,
		CreatedAt: p.CreatedAt,
	}
}

// ListPeriodsResponse wraps the period listing.
type ListPeriodsResponse struct {
	Periods []PeriodResponse `json:"periods"`
}

// ToListPeriodsResponse converts domain periods to the listing DTO.
func ToListPeriodsResponse(periods []domain.Period) ListPeriodsResponse {
	res := make([]PeriodResponse, len(periods))
	for i, p := range periods {
		res[i] = ToPeriodResponse(&p)
	}
	return ListPeriodsResponse{Periods: res}
}
