package dto

import (
	"time"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/utils"
)

// EntryLineRequest is one debit or credit posting inside an entry payload.
// Amounts are integer minor units; exactly one side must be nonzero, which
// the ledger validator enforces beyond what binding can express.
type EntryLineRequest struct {
	AccountID string `json:"accountID" binding:"required,uuid"`
	Label     string `json:"label"`
	Debit     int64  `json:"debit" binding:"gte=0"`
	Credit    int64  `json:"credit" binding:"gte=0"`
}

// CreateEntryRequest defines the data needed to create a draft ledger entry.
type CreateEntryRequest struct {
	Label             string             `json:"label" binding:"required"`
	Date              string             `json:"date" binding:"required,datetime=2006-01-02"`
	JournalID         string             `json:"journalID" binding:"required,uuid"`
	PeriodID          string             `json:"periodID" binding:"required,uuid"`
	Lines             []EntryLineRequest `json:"lines" binding:"required,min=2,dive"`
	ExternalReference string             `json:"externalReference"`
	Notes             string             `json:"notes"`
}

// UpdateEntryRequest rewrites a draft entry in full. Validated entries refuse
// any update.
type UpdateEntryRequest = CreateEntryRequest

// EntryLineResponse defines the data returned for one ledger line.
type EntryLineResponse struct {
	LineID    string `json:"lineID"`
	AccountID string `json:"accountID"`
	Label     string `json:"label"`
	Debit     int64  `json:"debit"`
	Credit    int64  `json:"credit"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID           string              `json:"entryID"`
	Label             string              `json:"label"`
	Date              string              `json:"date"`
	JournalID         string              `json:"journalID"`
	PeriodID          string              `json:"periodID"`
	Lines             []EntryLineResponse `json:"lines,omitempty"`
	Validated         bool                `json:"validated"`
	TotalDebit        int64               `json:"totalDebit"`
	TotalCredit       int64               `json:"totalCredit"`
	TotalFormatted    string              `json:"totalFormatted"`
	ExternalReference string              `json:"externalReference,omitempty"`
	Notes             string              `json:"notes,omitempty"`
	CreatedAt         time.Time           `json:"createdAt"`
	CreatedBy         string              `json:"createdBy"`
}

// ToEntryLineResponse converts a domain.EntryLine to its response DTO.
func ToEntryLineResponse(l domain.EntryLine) EntryLineResponse {
	return EntryLineResponse{
		LineID:    l.LineID,
		AccountID: l.AccountID,
		Label:     l.Label,
		Debit:     l.Debit,
		Credit:    l.Credit,
	}
}

// ToEntryResponse converts a domain.Entry to its response DTO.
func ToEntryResponse(e *domain.Entry) EntryResponse {
	lines := make([]EntryLineResponse, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = ToEntryLineResponse(l)
	}
	totalDebit := e.TotalDebit()
	return EntryResponse{
		EntryID:           e.EntryID,
		Label:             e.Label,
		Date:              e.Date.Format(DateLayout),
		JournalID:         e.JournalID,
		PeriodID:          e.PeriodID,
		Lines:             lines,
		Validated:         e.Validated,
		TotalDebit:        totalDebit,
		TotalCredit:       e.TotalCredit(),
		TotalFormatted:    utils.FormatBalance(totalDebit),
		ExternalReference: e.ExternalReference,
		Notes:             e.Notes,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	JournalID string  `form:"journalID" binding:"omitempty,uuid"`
	From      string  `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To        string  `form:"to" binding:"omitempty,datetime=2006-01-02"`
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps one page of the entry listing.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}
