package accounting

import (
	"fmt"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// SignedDelta applies the double-entry sign convention to one line and returns
// the balance change for its account in minor units.
// DEBIT to ASSET/EXPENSE -> positive, CREDIT to ASSET/EXPENSE -> negative.
// DEBIT to LIABILITY/EQUITY/REVENUE -> negative, CREDIT -> positive.
func SignedDelta(line domain.EntryLine, accountType domain.AccountType) (int64, error) {
	amount := line.Debit - line.Credit
	switch accountType {
	case domain.Asset, domain.Expense:
		return amount, nil
	case domain.Liability, domain.Equity, domain.Revenue:
		return -amount, nil
	default:
		return 0, fmt.Errorf("unknown account type '%s' for account ID %s", accountType, line.AccountID)
	}
}

// BalanceChanges folds an entry's lines into per-account signed balance deltas.
// Accounts missing from the map are reported as non-postable.
func BalanceChanges(lines []domain.EntryLine, accounts map[string]domain.Account) (map[string]int64, error) {
	changes := make(map[string]int64, len(lines))
	for _, line := range lines {
		acc, ok := accounts[line.AccountID]
		if !ok {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNonPostableAccount, line.AccountID)
		}
		delta, err := SignedDelta(line, acc.AccountType)
		if err != nil {
			return nil, err
		}
		changes[line.AccountID] += delta
	}
	return changes, nil
}

// ValidateEntry runs the full legality check for a ledger entry against the
// current registry state. Checks run in a fixed order and the first failure is
// returned:
//
//  1. the journal is active
//  2. the period is open
//  3. the entry date falls inside the period range
//  4. every line targets an existing, postable leaf account
//  5. every line carries exactly one nonzero side
//  6. debits equal credits and the total is positive
//
// All sums are int64 minor units. The function is pure: it never mutates its
// arguments and has no side effects, so the posting engine can re-run it at
// validation time against fresher state than the draft was created under.
func ValidateEntry(entry domain.Entry, journal *domain.Journal, period *domain.Period, accounts map[string]domain.Account) error {
	if journal == nil || !journal.Active {
		return fmt.Errorf("%w: journal %s", apperrors.ErrInactiveJournal, entry.JournalID)
	}
	if period == nil {
		return fmt.Errorf("%w: period %s", apperrors.ErrNotFound, entry.PeriodID)
	}
	if period.Closed {
		return fmt.Errorf("%w: period %s", apperrors.ErrClosedPeriod, period.Code)
	}
	if !period.Contains(entry.Date) {
		return fmt.Errorf("%w: %s not in %s..%s", apperrors.ErrDateOutOfPeriod,
			entry.Date.Format("2006-01-02"), period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02"))
	}

	for _, line := range entry.Lines {
		acc, ok := accounts[line.AccountID]
		if !ok || !acc.AllowEntry {
			return fmt.Errorf("%w: account %s", apperrors.ErrNonPostableAccount, line.AccountID)
		}
	}

	var totalDebit, totalCredit int64
	for _, line := range entry.Lines {
		if line.Debit < 0 || line.Credit < 0 {
			return fmt.Errorf("%w: negative amount on account %s", apperrors.ErrMixedLine, line.AccountID)
		}
		if (line.Debit > 0) == (line.Credit > 0) {
			return fmt.Errorf("%w: account %s", apperrors.ErrMixedLine, line.AccountID)
		}
		totalDebit += line.Debit
		totalCredit += line.Credit
	}

	if totalDebit != totalCredit {
		return fmt.Errorf("%w: debit %d, credit %d", apperrors.ErrUnbalancedEntry, totalDebit, totalCredit)
	}
	if totalDebit == 0 {
		return apperrors.ErrEmptyEntry
	}
	return nil
}
