package domain

import (
	"github.com/shopspring/decimal"
)

// AccountCategory classifies an account within the flat chart used by the business.
type AccountCategory string

const (
	CategorySupplier     AccountCategory = "SUPPLIER"
	CategoryCustomer     AccountCategory = "CUSTOMER"
	CategoryCash         AccountCategory = "CASH"
	CategoryBank         AccountCategory = "BANK"
	CategoryBranch       AccountCategory = "BRANCH"
	CategoryExpense      AccountCategory = "EXPENSE"
	CategoryOtherRevenue AccountCategory = "OTHER_REVENUE"
)

// codePrefixes maps each category to the prefix used in generated account codes.
// Unknown categories fall back to the generic ACC prefix.
var codePrefixes = map[AccountCategory]string{
	CategorySupplier:     "SUP",
	CategoryCustomer:     "CUS",
	CategoryCash:         "CSH",
	CategoryBank:         "BNK",
	CategoryBranch:       "BRN",
	CategoryExpense:      "EXP",
	CategoryOtherRevenue: "REV",
}

// CodePrefix returns the account-code prefix for the category.
func (c AccountCategory) CodePrefix() string {
	if p, ok := codePrefixes[c]; ok {
		return p
	}
	return "ACC"
}

// IsValid reports whether the category is one of the closed set.
func (c AccountCategory) IsValid() bool {
	_, ok := codePrefixes[c]
	return ok
}

// Account represents a party or money location the business keeps a balance for:
// suppliers, customers, cash boxes, banks, branches, expense heads.
//
// CurrentBalance is a cached derivation. The invariant is
//
//	CurrentBalance == OpeningBalance + Σdebit − Σcredit
//
// over all journal entries referencing the account. Posting keeps it current
// incrementally; the reconciler restores it from source data.
type Account struct {
	AccountID      string          `json:"accountID"`      // Primary key (UUID)
	Code           string          `json:"code"`           // Generated, e.g. SUP2026-0001
	Name           string          `json:"name"`           // Unique display name (UI vocabulary)
	Category       AccountCategory `json:"category"`       //
	OpeningBalance decimal.Decimal `json:"openingBalance"` // Signed
	CurrentBalance decimal.Decimal `json:"currentBalance"` // Cached, derived
	CreditLimit    decimal.Decimal `json:"creditLimit"`    // Advisory only, never enforced
	Phone          string          `json:"phone"`
	Address        string          `json:"address"`
	TaxID          string          `json:"taxID"`
	IsActive       bool            `json:"isActive"`
	AuditFields
}
