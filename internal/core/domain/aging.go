package domain

// AgedEntry is a deferred journal entry annotated with how overdue it is
// relative to the analysis date. Negative DaysOverdue means not yet due.
type AgedEntry struct {
	Entry       JournalEntry `json:"entry"`
	DaysOverdue int          `json:"daysOverdue"`
}

// DuesReport partitions unsettled deferred purchases by how overdue they are.
// Critical is a subset of Due: everything more than DefaultDueDays past due.
type DuesReport struct {
	Due      []AgedEntry `json:"due"`
	Critical []AgedEntry `json:"critical"`
}
