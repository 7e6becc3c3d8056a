package mapping

import (
	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/models"
)

// ToModelEntry converts a domain Entry header to its persistence shape.
// Lines are mapped separately because they live in their own table.
func ToModelEntry(d domain.Entry) models.Entry {
	return models.Entry{
		EntryID:           d.EntryID,
		Label:             d.Label,
		EntryDate:         d.Date,
		JournalID:         d.JournalID,
		PeriodID:          d.PeriodID,
		Validated:         d.Validated,
		ExternalReference: d.ExternalReference,
		Notes:             d.Notes,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainEntry converts a model Entry header to its domain shape.
func ToDomainEntry(m models.Entry) domain.Entry {
	return domain.Entry{
		EntryID:           m.EntryID,
		Label:             m.Label,
		Date:              m.EntryDate,
		JournalID:         m.JournalID,
		PeriodID:          m.PeriodID,
		Validated:         m.Validated,
		ExternalReference: m.ExternalReference,
		Notes:             m.Notes,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelEntryLine converts a domain EntryLine to its persistence shape.
func ToModelEntryLine(d domain.EntryLine) models.EntryLine {
	return models.EntryLine{
		LineID:    d.LineID,
		EntryID:   d.EntryID,
		AccountID: d.AccountID,
		Label:     d.Label,
		Debit:     d.Debit,
		Credit:    d.Credit,
	}
}

// ToDomainEntryLine converts a model EntryLine to its domain shape.
func ToDomainEntryLine(m models.EntryLine) domain.EntryLine {
	return domain.EntryLine{
		LineID:    m.LineID,
		EntryID:   m.EntryID,
		AccountID: m.AccountID,
		Label:     m.Label,
		Debit:     m.Debit,
		Credit:    m.Credit,
	}
}

// ToDomainEntryLineSlice converts model EntryLines to domain EntryLines.
func ToDomainEntryLineSlice(ms []models.EntryLine) []domain.EntryLine {
	ds := make([]domain.EntryLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainEntryLine(m)
	}
	return ds
}
