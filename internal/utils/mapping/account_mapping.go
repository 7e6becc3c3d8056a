package mapping

import (
	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/models"
)

// ToModelAccount converts a domain Account to its persistence shape.
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:   d.AccountID,
		Code:        d.Code,
		Label:       d.Label,
		AccountType: models.AccountType(d.AccountType),
		AllowEntry:  d.AllowEntry,
		IsStatic:    d.IsStatic,
		Active:      d.Active,
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainAccount converts a model Account to its domain shape.
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		AccountID:   m.AccountID,
		Code:        m.Code,
		Label:       m.Label,
		AccountType: domain.AccountType(m.AccountType),
		AllowEntry:  m.AllowEntry,
		IsStatic:    m.IsStatic,
		Active:      m.Active,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
