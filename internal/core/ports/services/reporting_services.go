package services

import (
	"context"
	"time"

	"github.com/shopbooks/shopbooks/internal/core/domain"
	"github.com/shopbooks/shopbooks/internal/dto"
	"github.com/shopspring/decimal"
)

// ReconcilerSvc restores cached balances from source data.
type ReconcilerSvc interface {
	// RecomputeBalance recalculates one account's balance from its opening
	// balance and full journal history, persists it, and returns it.
	RecomputeBalance(ctx context.Context, accountName string) (decimal.Decimal, error)

	// RecomputeAll recalculates every account independently and returns the
	// number of accounts processed.
	RecomputeAll(ctx context.Context) (int, error)
}

// StatementSvc builds account statements.
type StatementSvc interface {
	// BuildStatement produces the carried-forward row plus every entry in
	// [from, to] annotated with a running balance.
	BuildStatement(ctx context.Context, accountName string, from, to time.Time) (*domain.Statement, error)
}

// AgingSvc classifies unsettled deferred purchases by overdueness.
type AgingSvc interface {
	// ComputeDues partitions deferred purchases into due and critical sets
	// relative to asOf.
	ComputeDues(ctx context.Context, asOf time.Time) (*domain.DuesReport, error)
}

// DashboardSvc assembles the landing-page summary.
type DashboardSvc interface {
	Dashboard(ctx context.Context, asOf time.Time) (*dto.DashboardResponse, error)
}
