package models

import (
	"github.com/shopspring/decimal"
)

// Account is the persisted shape of an account row.
type Account struct {
	AccountID      string          `db:"account_id"`
	Code           string          `db:"acc_code"`
	Name           string          `db:"acc_name"`
	Category       string          `db:"category"`
	OpeningBalance decimal.Decimal `db:"opening_balance"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	CreditLimit    decimal.Decimal `db:"credit_limit"`
	Phone          string          `db:"phone"`
	Address        string          `db:"address"`
	TaxID          string          `db:"tax_id"`
	IsActive       bool            `db:"is_active"`
	AuditFields
}
