package dto

import (
	"time"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a journal.
type CreateJournalRequest struct {
	Code  string `json:"code" binding:"required,uppercase,max=16"`
	Label string `json:"label" binding:"required"`
}

// UpdateJournalRequest defines the patch allowed on a journal.
type UpdateJournalRequest struct {
	Label *string `json:"label"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID     string    `json:"journalID"`
	Code          string    `json:"code"`
	Label         string    `json:"label"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// ToJournalResponse converts a domain.Journal to its response DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:     j.JournalID,
		Code:          j.Code,
		Label:         j.Label,
		Active:        j.Active,
		CreatedAt:     j.CreatedAt,
		LastUpdatedAt: j.LastUpdatedAt,
	}
}

// ListJournalsResponse wraps the journal listing.
type ListJournalsResponse struct {
	Journals []JournalResponse `json:"journals"`
}

// ToListJournalsResponse converts domain journals to the listing DTO.
func ToListJournalsResponse(journals []domain.Journal) ListJournalsResponse {
	res := make([]JournalResponse, len(journals))
	for i, j := range journals {
		res[i] = ToJournalResponse(&j)
	}
	return ListJournalsResponse{Journals: res}
}
