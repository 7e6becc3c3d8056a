package dto

import (
	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/utils"
)

// AccountBalanceResponse is one row of the account balance snapshot.
type AccountBalanceResponse struct {
	Code             string             `json:"code"`
	Label            string             `json:"label"`
	AccountType      domain.AccountType `json:"accountType"`
	CurrentBalance   int64              `json:"currentBalance"`
	BalanceFormatted string             `json:"balanceFormatted"`
}

// AccountBalancesResponse wraps the balance snapshot.
type AccountBalancesResponse struct {
	Balances []AccountBalanceResponse `json:"balances"`
}

// ToAccountBalancesResponse converts snapshot rows to the response DTO.
func ToAccountBalancesResponse(rows []domain.AccountBalanceRow) AccountBalancesResponse {
	res := make([]AccountBalanceResponse, len(rows))
	for i, r := range rows {
		res[i] = AccountBalanceResponse{
			Code:             r.Code,
			Label:            r.Label,
			AccountType:      r.AccountType,
			CurrentBalance:   r.CurrentBalance,
			BalanceFormatted: utils.FormatBalance(r.CurrentBalance),
		}
	}
	return AccountBalancesResponse{Balances: res}
}

// TrialBalanceRowResponse is one row of a trial balance report.
type TrialBalanceRowResponse struct {
	Code            string             `json:"code"`
	Label           string             `json:"label"`
	AccountType     domain.AccountType `json:"accountType"`
	Debit           int64              `json:"debit"`
	Credit          int64              `json:"credit"`
	DebitFormatted  string             `json:"debitFormatted"`
	CreditFormatted string             `json:"creditFormatted"`
}

// TrialBalanceResponse wraps a trial balance with its control totals. For a
// consistent ledger TotalDebit always equals TotalCredit.
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRowResponse `json:"rows"`
	TotalDebit  int64                     `json:"totalDebit"`
	TotalCredit int64                     `json:"totalCredit"`
}

// ToTrialBalanceResponse converts trial balance rows to the response DTO.
func ToTrialBalanceResponse(rows []domain.TrialBalanceRow) TrialBalanceResponse {
	res := TrialBalanceResponse{Rows: make([]TrialBalanceRowResponse, len(rows))}
	for i, r := range rows {
		res.Rows[i] = TrialBalanceRowResponse{
			Code:            r.Code,
			Label:           r.Label,
			AccountType:     r.AccountType,
			Debit:           r.Debit,
			Credit:          r.Credit,
			DebitFormatted:  utils.FormatBalance(r.Debit),
			CreditFormatted: utils.FormatBalance(r.Credit),
		}
		res.TotalDebit += r.Debit
		res.TotalCredit += r.Credit
	}
	return res
}

// EntrySnapshotResponse is one denormalized entry view for ledger reports.
type EntrySnapshotResponse struct {
	EntryID     string              `json:"entryID"`
	Date        string              `json:"date"`
	Label       string              `json:"label"`
	JournalCode string              `json:"journalCode"`
	PeriodCode  string              `json:"periodCode"`
	Validated   bool                `json:"validated"`
	Lines       []EntryLineResponse `json:"lines"`
}

// EntrySnapshotsResponse wraps the entry snapshot listing.
type EntrySnapshotsResponse struct {
	Entries []EntrySnapshotResponse `json:"entries"`
}

// ToEntrySnapshotsResponse converts snapshot rows to the response DTO.
func ToEntrySnapshotsResponse(rows []domain.EntrySnapshotRow) EntrySnapshotsResponse {
	res := make([]EntrySnapshotResponse, len(rows))
	for i, r := range rows {
		lines := make([]EntryLineResponse, len(r.Lines))
		for j, l := range r.Lines {
			lines[j] = ToEntryLineResponse(l)
		}
		res[i] = EntrySnapshotResponse{
			EntryID:     r.EntryID,
			Date:        r.Date.Format(DateLayout),
			Label:       r.Label,
			JournalCode: r.JournalCode,
			PeriodCode:  r.PeriodCode,
			Validated:   r.Validated,
			Lines:       lines,
		}
	}
	return EntrySnapshotsResponse{Entries: res}
}
