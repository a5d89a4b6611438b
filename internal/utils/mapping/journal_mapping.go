package mapping

import (
	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopbooks/shopbooks/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry to a model JournalEntry
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		ID:              d.ID,
		EntryDate:       d.EntryDate,
		AccountID:       d.AccountID,
		AccountName:     d.AccountName,
		OffsetAccountID: d.OffsetAccountID,
		OffsetAccount:   d.OffsetAccount,
		OperationType:   string(d.OperationType),
		Description:     d.Description,
		Reference:       d.Reference,
		BaseAmount:      d.BaseAmount,
		TaxAmount:       d.TaxAmount,
		TotalAmount:     d.TotalAmount,
		Debit:           d.Debit,
		Credit:          d.Credit,
		DueDate:         d.DueDate,
		PostedBy:        d.PostedBy,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDomainJournalEntry converts a model JournalEntry to a domain JournalEntry
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		ID:              m.ID,
		EntryDate:       m.EntryDate,
		AccountID:       m.AccountID,
		AccountName:     m.AccountName,
		OffsetAccountID: m.OffsetAccountID,
		OffsetAccount:   m.OffsetAccount,
		OperationType:   domain.OperationType(m.OperationType),
		Description:     m.Description,
		Reference:       m.Reference,
		BaseAmount:      m.BaseAmount,
		TaxAmount:       m.TaxAmount,
		TotalAmount:     m.TotalAmount,
		Debit:           m.Debit,
		Credit:          m.Credit,
		DueDate:         m.DueDate,
		PostedBy:        m.PostedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// ToDomainJournalEntrySlice converts a slice of model entries to domain entries
func ToDomainJournalEntrySlice(ms []models.JournalEntry) []domain.JournalEntry {
	ds := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalEntry(m)
	}
	return ds
}
