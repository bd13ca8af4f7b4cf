package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vslakit/vsla_ledger_app/internal/core/ports/services"
	"github.com/vslakit/vsla_ledger_app/internal/dto"
	"github.com/vslakit/vsla_ledger_app/internal/middleware"
)

const defaultEntryPageSize = 20

// balanceService derives balances and breakdowns from the entry log and runs
// the cache reconciliation sweep.
type balanceService struct {
	ledgerRepo portsrepo.LedgerRepositoryWithTx
	memberRepo portsrepo.MemberRepositoryFacade
	groupRepo  portsrepo.GroupRepositoryFacade
}

// NewBalanceService creates a new BalanceService.
func NewBalanceService(
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	memberRepo portsrepo.MemberRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
) portssvc.BalanceSvcFacade {
	return &balanceService{
		ledgerRepo: ledgerRepo,
		memberRepo: memberRepo,
		groupRepo:  groupRepo,
	}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

// GetBalances computes the owner's breakdown from the entry log. The result
// is a pure function of the log; no cached column is consulted.
func (s *balanceService) GetBalances(ctx context.Context, owner domain.Owner, projectID *string) (*domain.BalanceBreakdown, error) {
	if err := s.checkOwnerExists(ctx, owner); err != nil {
		return nil, err
	}

	sums, err := s.ledgerRepo.SumSignedByAccountType(ctx, owner, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum entries for %s: %w", owner, err)
	}
	breakdown := domain.NewBalanceBreakdown(sums)
	return &breakdown, nil
}

// ListEntries returns a page of the owner's entries, newest first.
func (s *balanceService) ListEntries(ctx context.Context, owner domain.Owner, limit int, nextToken *string) (*dto.ListEntriesResponse, error) {
	if err := s.checkOwnerExists(ctx, owner); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultEntryPageSize
	}

	entries, token, err := s.ledgerRepo.ListRecentEntries(ctx, owner, limit, nextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries for %s: %w", owner, err)
	}

	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: token,
	}, nil
}

func (s *balanceService) checkOwnerExists(ctx context.Context, owner domain.Owner) error {
	switch owner.Type {
	case domain.OwnerUser:
		_, err := s.memberRepo.FindMemberByID(ctx, owner.ID)
		return err
	case domain.OwnerGroup:
		_, err := s.groupRepo.FindGroupByID(ctx, owner.ID)
		return err
	default:
		return fmt.Errorf("%w: unknown owner type %q", apperrors.ErrValidation, owner.Type)
	}
}

// Reconcile recomputes every owner's cached balances from the entry log and
// reports before/after deltas. Entries are never rewritten; with apply set,
// drifted cache columns are overwritten under the same row lock the ledger
// operations take.
func (s *balanceService) Reconcile(ctx context.Context, apply bool, actorUserID string) (*dto.ReconciliationReport, error) {
	if actorUserID == "" {
		return nil, fmt.Errorf("%w: actor user ID is required", apperrors.ErrValidation)
	}
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now().UTC()

	report := &dto.ReconciliationReport{
		RanAt:   now,
		Applied: apply,
		Deltas:  []dto.ReconciliationDelta{},
	}

	memberIDs, err := s.memberRepo.ListMemberIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for reconciliation: %w", err)
	}
	for _, id := range memberIDs {
		if err := s.reconcileOwner(ctx, domain.UserOwner(id), apply, actorUserID, now, report); err != nil {
			return nil, err
		}
	}

	groupIDs, err := s.groupRepo.ListGroupIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups for reconciliation: %w", err)
	}
	for _, id := range groupIDs {
		if err := s.reconcileOwner(ctx, domain.GroupOwner(id), apply, actorUserID, now, report); err != nil {
			return nil, err
		}
	}

	logger.Info("Reconciliation sweep finished",
		slog.Int("checked_owners", report.CheckedOwners),
		slog.Int("drifted_owners", report.DriftedOwners),
		slog.Bool("applied", apply))
	return report, nil
}

// reconcileOwner checks one owner's cached columns against the recomputed
// truth. Each owner gets its own short transaction so a long sweep never
// holds locks across the whole table.
func (s *balanceService) reconcileOwner(ctx context.Context, owner domain.Owner, apply bool, actorUserID string, now time.Time, report *dto.ReconciliationReport) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin reconciliation transaction for %s: %w", owner, err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	var cachedBalance, cachedLoanBalance decimal.Decimal
	switch owner.Type {
	case domain.OwnerUser:
		member, err := s.memberRepo.FindMemberByIDForUpdate(ctx, tx, owner.ID)
		if err != nil {
			return fmt.Errorf("failed to lock member %s: %w", owner.ID, err)
		}
		cachedBalance, cachedLoanBalance = member.Balance, member.LoanBalance
	case domain.OwnerGroup:
		group, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, owner.ID)
		if err != nil {
			return fmt.Errorf("failed to lock group %s: %w", owner.ID, err)
		}
		cachedBalance, cachedLoanBalance = group.Balance, group.LoanBalance
	}

	sums, err := s.ledgerRepo.SumSignedByAccountTypeInTx(ctx, tx, owner, nil)
	if err != nil {
		return fmt.Errorf("failed to recompute balances for %s: %w", owner, err)
	}
	truth := domain.NewBalanceBreakdown(sums)
	computedBalance := truth.CachedBalance()
	computedLoanBalance := truth.CachedLoanBalance()

	report.CheckedOwners++
	drifted := !cachedBalance.Equal(computedBalance) || !cachedLoanBalance.Equal(computedLoanBalance)
	if !drifted {
		return s.ledgerRepo.Commit(ctx, tx)
	}

	report.DriftedOwners++
	delta := dto.ReconciliationDelta{
		OwnerType:           string(owner.Type),
		OwnerID:             owner.ID,
		CachedBalance:       cachedBalance,
		ComputedBalance:     computedBalance,
		CachedLoanBalance:   cachedLoanBalance,
		ComputedLoanBalance: computedLoanBalance,
	}

	if apply {
		switch owner.Type {
		case domain.OwnerUser:
			err = s.memberRepo.UpdateMemberBalancesInTx(ctx, tx, owner.ID, computedBalance, computedLoanBalance, actorUserID, now)
		case domain.OwnerGroup:
			err = s.groupRepo.UpdateGroupBalancesInTx(ctx, tx, owner.ID, computedBalance, computedLoanBalance, actorUserID, now)
		}
		if err != nil {
			return fmt.Errorf("failed to repair cached balances for %s: %w", owner, err)
		}
		delta.Repaired = true
	}

	logger.Warn("Cached balance drift detected",
		slog.String("owner", owner.String()),
		slog.String("cached_balance", cachedBalance.String()),
		slog.String("computed_balance", computedBalance.String()),
		slog.String("cached_loan_balance", cachedLoanBalance.String()),
		slog.String("computed_loan_balance", computedLoanBalance.String()),
		slog.Bool("repaired", delta.Repaired))

	report.Deltas = append(report.Deltas, delta)
	return s.ledgerRepo.Commit(ctx, tx)
}
