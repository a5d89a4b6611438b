package dto

import (
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string                 `json:"name" binding:"required"`
	Category       domain.AccountCategory `json:"category" binding:"required,oneof=SUPPLIER CUSTOMER CASH BANK BRANCH EXPENSE OTHER_REVENUE"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	CreditLimit    decimal.Decimal        `json:"creditLimit"`
	Phone          string                 `json:"phone"`
	Address        string                 `json:"address"`
	TaxID          string                 `json:"taxID"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateAccountRequest struct {
	Name        *string          `json:"name"`
	Phone       *string          `json:"phone"`
	Address     *string          `json:"address"`
	TaxID       *string          `json:"taxID"`
	CreditLimit *decimal.Decimal `json:"creditLimit"`
	IsActive    *bool            `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID      string                 `json:"accountID"`
	Code           string                 `json:"code"`
	Name           string                 `json:"name"`
	Category       domain.AccountCategory `json:"category"`
	OpeningBalance decimal.Decimal        `json:"openingBalance"`
	CurrentBalance decimal.Decimal        `json:"currentBalance"`
	CreditLimit    decimal.Decimal        `json:"creditLimit"`
	Phone          string                 `json:"phone"`
	Address        string                 `json:"address"`
	TaxID          string                 `json:"taxID"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      acc.AccountID,
		Code:           acc.Code,
		Name:           acc.Name,
		Category:       acc.Category,
		OpeningBalance: acc.OpeningBalance,
		CurrentBalance: acc.CurrentBalance,
		CreditLimit:    acc.CreditLimit,
		Phone:          acc.Phone,
		Address:        acc.Address,
		TaxID:          acc.TaxID,
		IsActive:       acc.IsActive,
		CreatedAt:      acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to response DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i, acc := range accounts {
		res[i] = ToAccountResponse(&acc)
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Search string `form:"search"`
	Limit  int    `form:"limit,default=50"`
	Offset int    `form:"offset,default=0"`
}
