package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Side indicates which way an operation moves value for the primary account.
type Side string

const (
	SideRevenue Side = "REVENUE" // credits the primary account
	SideExpense Side = "EXPENSE" // debits the primary account
)

// OperationType is the closed vocabulary of business operations.
// Classification is a lookup against static metadata, never an inspection
// of free-text labels.
type OperationType string

const (
	OpCreditSale     OperationType = "CREDIT_SALE"
	OpCashSale       OperationType = "CASH_SALE"
	OpCreditPurchase OperationType = "CREDIT_PURCHASE"
	OpCashPurchase   OperationType = "CASH_PURCHASE"
	OpReceiptVoucher OperationType = "RECEIPT_VOUCHER" // customer collection
	OpPaymentVoucher OperationType = "PAYMENT_VOUCHER" // supplier settlement
	OpPurchaseReturn OperationType = "PURCHASE_RETURN"
	OpGeneralExpense OperationType = "GENERAL_EXPENSE"
	OpOtherRevenue   OperationType = "OTHER_REVENUE"
)

type opMeta struct {
	side     Side
	deferred bool // carries a due date
	sale     bool // sale semantics, drives the INV reference prefix
}

var operationTypes = map[OperationType]opMeta{
	OpCreditSale:     {side: SideRevenue, deferred: true, sale: true},
	OpCashSale:       {side: SideRevenue, sale: true},
	OpCreditPurchase: {side: SideExpense, deferred: true},
	OpCashPurchase:   {side: SideExpense},
	OpReceiptVoucher: {side: SideRevenue},
	OpPaymentVoucher: {side: SideExpense},
	OpPurchaseReturn: {side: SideExpense},
	OpGeneralExpense: {side: SideExpense},
	OpOtherRevenue:   {side: SideRevenue},
}

// IsValid reports whether the operation type is part of the closed vocabulary.
func (t OperationType) IsValid() bool {
	_, ok := operationTypes[t]
	return ok
}

// Side returns which way the operation moves value for the primary account.
func (t OperationType) Side() Side {
	return operationTypes[t].side
}

// IsDeferred reports whether entries of this type carry a due date.
func (t OperationType) IsDeferred() bool {
	return operationTypes[t].deferred
}

// IsSale reports whether the operation carries sale semantics.
func (t OperationType) IsSale() bool {
	return operationTypes[t].sale
}

// ReferencePrefix returns the prefix used for generated journal references.
func (t OperationType) ReferencePrefix() string {
	if operationTypes[t].sale {
		return "INV"
	}
	return "VCH"
}

// TaxRate is the fixed VAT rate applied when a posting requests tax.
var TaxRate = decimal.NewFromFloat(0.15)

// DefaultDueDays is the grace period applied to deferred operations posted
// without an explicit due date, and the width of the critical aging bucket.
const DefaultDueDays = 30

// JournalEntry is a single row in the journal. One row carries both parties;
// the mirrored effect on the offset account is derived by swapping the legs,
// never stored as a second row.
//
// Exactly one of Debit/Credit is positive, and Debit+Credit == TotalAmount.
type JournalEntry struct {
	ID              int64           `json:"id"` // Store-assigned, monotonic; same-day tie-break
	EntryDate       time.Time       `json:"entryDate"`
	AccountID       string          `json:"accountID"`
	AccountName     string          `json:"accountName"` // Denormalized display field
	OffsetAccountID string          `json:"offsetAccountID,omitempty"`
	OffsetAccount   string          `json:"offsetAccount,omitempty"`
	OperationType   OperationType   `json:"operationType"`
	Description     string          `json:"description"`
	Reference       string          `json:"reference"`
	BaseAmount      decimal.Decimal `json:"baseAmount"`
	TaxAmount       decimal.Decimal `json:"taxAmount"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Debit           decimal.Decimal `json:"debit"`
	Credit          decimal.Decimal `json:"credit"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	PostedBy        string          `json:"postedBy"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// EffectiveDueDate resolves the due date for aging: the stored date when
// present, else entry date plus the default grace period. Legacy rows
// imported without a due date are covered by the fallback.
func (e JournalEntry) EffectiveDueDate() time.Time {
	if e.DueDate != nil {
		return *e.DueDate
	}
	return e.EntryDate.AddDate(0, 0, DefaultDueDays)
}
