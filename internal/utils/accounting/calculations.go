package accounting

import (
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ComputeAmounts derives the tax and total for a posting.
// Tax is a fixed 15% of the base when requested, zero otherwise.
func ComputeAmounts(base decimal.Decimal, applyTax bool) (tax, total decimal.Decimal) {
	tax = decimal.Zero
	if applyTax {
		tax = base.Mul(domain.TaxRate)
	}
	return tax, base.Add(tax)
}

// DeriveLegs splits a total into the debit/credit pair for the primary
// account of an operation. Revenue-side operations credit the primary
// account; everything else debits it. Exactly one leg is non-zero.
func DeriveLegs(op domain.OperationType, total decimal.Decimal) (debit, credit decimal.Decimal) {
	if op.Side() == domain.SideRevenue {
		return decimal.Zero, total
	}
	return total, decimal.Zero
}

// NetChange is the balance effect of one (debit, credit) pair:
// debit increases the balance in the caller's favor, credit decreases it.
func NetChange(debit, credit decimal.Decimal) decimal.Decimal {
	return debit.Sub(credit)
}

// GenerateReference builds a journal reference: INV-YYMMDDHHmm for sale
// operations, VCH-YYMMDDHHmm for everything else.
func GenerateReference(op domain.OperationType, at time.Time) string {
	return op.ReferencePrefix() + "-" + at.Format("0601021504")
}
