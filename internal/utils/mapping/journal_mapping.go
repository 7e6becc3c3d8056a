package mapping

import (
	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/models"
)

// ToModelJournal converts a domain Journal to its persistence shape.
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		Code:        d.Code,
		Label:       d.Label,
		Active:      d.Active,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to its domain shape.
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		Code:        m.Code,
		Label:       m.Label,
		Active:      m.Active,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPeriod converts a domain Period to its persistence shape.
func ToModelPeriod(d domain.Period) models.Period {
	return models.Period{
		PeriodID:    d.PeriodID,
		Code:        d.Code,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Closed:      d.Closed,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPeriod converts a model Period to its domain shape.
func ToDomainPeriod(m models.Period) domain.Period {
	return domain.Period{
		PeriodID:    m.PeriodID,
		Code:        m.Code,
		StartDate:   m.StartDate,
		EndDate:     m.EndDate,
		Closed:      m.Closed,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
