package dto

import (
	"time"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/utils"
)

// CreateAccountRequest defines the data needed to create a chart-of-accounts
// entry. Code uniqueness is enforced by the service.
type CreateAccountRequest struct {
	Code        string             `json:"code" binding:"required,accountcode"`
	Label       string             `json:"label" binding:"required"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	AllowEntry  bool               `json:"allowEntry"`
	IsStatic    bool               `json:"isStatic"`
}

// UpdateAccountRequest defines the patch allowed on an account. Pointers
// distinguish omitted fields from zero values. Changing Code is refused once
// the account is referenced by a validated entry.
type UpdateAccountRequest struct {
	Code       *string `json:"code" binding:"omitempty,accountcode"`
	Label      *string `json:"label"`
	AllowEntry *bool   `json:"allowEntry"`
	IsStatic   *bool   `json:"isStatic"`
	Active     *bool   `json:"active"`
}

// AccountResponse defines the data returned for an account. Balance is in
// integer minor units; BalanceFormatted is a display convenience.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	Code             string             `json:"code"`
	Label            string             `json:"label"`
	AccountType      domain.AccountType `json:"accountType"`
	AllowEntry       bool               `json:"allowEntry"`
	IsStatic         bool               `json:"isStatic"`
	Active           bool               `json:"active"`
	Balance          int64              `json:"balance"`
	BalanceFormatted string             `json:"balanceFormatted"`
	CreatedAt        time.Time          `json:"createdAt"`
	LastUpdatedAt    time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Code:             acc.Code,
		Label:            acc.Label,
		AccountType:      acc.AccountType,
		AllowEntry:       acc.AllowEntry,
		IsStatic:         acc.IsStatic,
		Active:           acc.Active,
		Balance:          acc.Balance,
		BalanceFormatted: utils.FormatBalance(acc.Balance),
		CreatedAt:        acc.CreatedAt,
		LastUpdatedAt:    acc.LastUpdatedAt,
	}
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	ClassPrefix   string  `form:"classPrefix"`
	LabelContains string  `form:"labelContains"`
	Limit         int     `form:"limit,default=50"`
	NextToken     *string `form:"nextToken"`
}

// ListAccountsResponse wraps one page of the account listing.
type ListAccountsResponse struct {
	Accounts  []AccountResponse `json:"accounts"`
	NextToken *string           `json:"nextToken,omitempty"`
}
