package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vslakit/vsla_ledger_app/internal/core/ports/services"
	"github.com/vslakit/vsla_ledger_app/internal/dto"
	"github.com/vslakit/vsla_ledger_app/internal/middleware"
	"github.com/vslakit/vsla_ledger_app/internal/utils/accounting"
)

// ledgerService implements the four ledger operations on top of the contra
// pair builder and the pgx-backed stores.
type ledgerService struct {
	ledgerRepo  portsrepo.LedgerRepositoryWithTx
	memberRepo  portsrepo.MemberRepositoryFacade
	groupRepo   portsrepo.GroupRepositoryFacade
	projectRepo portsrepo.ProjectReader

	// defaultLoanMultiplier applies to projects without their own multiplier.
	defaultLoanMultiplier decimal.Decimal
}

// NewLedgerService creates a new LedgerService.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryWithTx,
	memberRepo portsrepo.MemberRepositoryFacade,
	groupRepo portsrepo.GroupRepositoryFacade,
	projectRepo portsrepo.ProjectReader,
	defaultLoanMultiplier decimal.Decimal,
) portssvc.LedgerSvcFacade {
	if defaultLoanMultiplier.LessThanOrEqual(decimal.Zero) {
		defaultLoanMultiplier = domain.DefaultLoanMaxMultiplier
	}
	return &ledgerService{
		ledgerRepo:            ledgerRepo,
		memberRepo:            memberRepo,
		groupRepo:             groupRepo,
		projectRepo:           projectRepo,
		defaultLoanMultiplier: defaultLoanMultiplier,
	}
}

// loanMultiplier resolves the ceiling multiplier for a project, preferring the
// project's own setting over the configured default.
func (s *ledgerService) loanMultiplier(project *domain.Project) decimal.Decimal {
	if project.LoanMaxMultiplier.GreaterThan(decimal.Zero) {
		return project.LoanMaxMultiplier
	}
	return s.defaultLoanMultiplier
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// operationRequest is the normalized input shared by all four operations.
type operationRequest struct {
	kind            domain.OperationKind
	userID          string
	projectID       string
	amount          decimal.Decimal
	description     string
	transactionDate *time.Time
	actorUserID     string
}

// lockedState is what an operation's constraint check sees: the locked owner
// rows plus their balance breakdowns read inside the open transaction.
type lockedState struct {
	member        *domain.Member
	group         *domain.Group
	project       *domain.Project
	userBalances  domain.BalanceBreakdown
	groupBalances domain.BalanceBreakdown
}

// constraintCheck validates operation-specific business rules against the
// locked in-transaction state. Returning an error aborts the whole operation.
type constraintCheck func(st *lockedState) error

func noConstraints(*lockedState) error { return nil }

// RecordSaving records a member's share purchase: user savings up, group cash up.
func (s *ledgerService) RecordSaving(ctx context.Context, req dto.SavingRequest, actorUserID string) (*dto.OperationData, error) {
	return s.run(ctx, operationRequest{
		kind:            domain.OpSaving,
		userID:          req.UserID,
		projectID:       req.ProjectID,
		amount:          req.Amount,
		description:     req.Description,
		transactionDate: req.TransactionDate,
		actorUserID:     actorUserID,
	}, noConstraints)
}

// DisburseLoan issues a loan out of group cash, subject to the savings-tied
// loan ceiling, cash availability, and the single-outstanding-loan rule.
func (s *ledgerService) DisburseLoan(ctx context.Context, req dto.LoanDisbursementRequest, actorUserID string) (*dto.OperationData, error) {
	description := req.Description
	if req.InterestRate != nil {
		// Interest is metadata only; it never compounds the loan balance.
		description = fmt.Sprintf("%s (interest rate %s%%)", description, req.InterestRate.String())
	}

	return s.run(ctx, operationRequest{
		kind:            domain.OpLoanDisbursement,
		userID:          req.UserID,
		projectID:       req.ProjectID,
		amount:          req.Amount,
		description:     description,
		transactionDate: req.TransactionDate,
		actorUserID:     actorUserID,
	}, func(st *lockedState) error {
		maxLoan := st.userBalances.Savings.Mul(s.loanMultiplier(st.project))
		if req.Amount.GreaterThan(maxLoan) {
			return fmt.Errorf("%w: requested %s, ceiling %s", apperrors.ErrLoanLimitExceeded, req.Amount, maxLoan)
		}
		if req.Amount.GreaterThan(st.groupBalances.Cash) {
			return fmt.Errorf("%w: requested %s, group cash %s", apperrors.ErrInsufficientGroupFunds, req.Amount, st.groupBalances.Cash)
		}
		if st.userBalances.Loans.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: outstanding balance %s", apperrors.ErrOutstandingLoanExists, st.userBalances.Loans)
		}
		return nil
	})
}

// RecordLoanRepayment pays down an outstanding loan: user loan down, group cash up.
func (s *ledgerService) RecordLoanRepayment(ctx context.Context, req dto.LoanRepaymentRequest, actorUserID string) (*dto.OperationData, error) {
	return s.run(ctx, operationRequest{
		kind:            domain.OpLoanRepayment,
		userID:          req.UserID,
		projectID:       req.ProjectID,
		amount:          req.Amount,
		description:     req.Description,
		transactionDate: req.TransactionDate,
		actorUserID:     actorUserID,
	}, func(st *lockedState) error {
		if st.userBalances.Loans.LessThanOrEqual(decimal.Zero) {
			return apperrors.ErrNoOutstandingLoan
		}
		if req.Amount.GreaterThan(st.userBalances.Loans) {
			return fmt.Errorf("%w: repaying %s, outstanding %s", apperrors.ErrRepaymentExceedsLoan, req.Amount, st.userBalances.Loans)
		}
		return nil
	})
}

// RecordFine records a fine against a member; the description carries the reason.
func (s *ledgerService) RecordFine(ctx context.Context, req dto.FineRequest, actorUserID string) (*dto.OperationData, error) {
	if req.Description == "" {
		return nil, fmt.Errorf("%w: fine reason (description) is required", apperrors.ErrValidation)
	}

	return s.run(ctx, operationRequest{
		kind:            domain.OpFine,
		userID:          req.UserID,
		projectID:       req.ProjectID,
		amount:          req.Amount,
		description:     req.Description,
		transactionDate: req.TransactionDate,
		actorUserID:     actorUserID,
	}, noConstraints)
}

// run executes the shared operation pipeline: validate input, resolve
// references, then inside a single database transaction lock the owner rows,
// check constraints against in-transaction balances, append the contra pair,
// and recompute the cached balance projections from the entry log.
func (s *ledgerService) run(ctx context.Context, req operationRequest, check constraintCheck) (*dto.OperationData, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.validate(req); err != nil {
		logger.Warn("Ledger operation rejected",
			slog.String("operation", string(req.kind)),
			slog.String("user_id", req.userID),
			slog.String("project_id", req.projectID),
			slog.String("amount", req.amount.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	member, project, groupID, err := s.resolveReferences(ctx, req)
	if err != nil {
		logger.Warn("Ledger operation references could not be resolved",
			slog.String("operation", string(req.kind)),
			slog.String("user_id", req.userID),
			slog.String("project_id", req.projectID),
			slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	transactionDate := now
	if req.transactionDate != nil {
		transactionDate = *req.transactionDate
	}

	tx, err := s.ledgerRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", apperrors.ErrLedgerWrite, err)
	}
	defer s.ledgerRepo.Rollback(ctx, tx)

	// Lock in fixed user-then-group order so concurrent operations on the
	// same owners serialize instead of deadlocking.
	st, err := s.lockAndRead(ctx, tx, member, project, groupID)
	if err != nil {
		return nil, err
	}

	if err := check(st); err != nil {
		logger.Warn("Ledger operation failed business constraints",
			slog.String("operation", string(req.kind)),
			slog.String("user_id", req.userID),
			slog.String("group_id", groupID),
			slog.String("project_id", req.projectID),
			slog.String("amount", req.amount.String()),
			slog.String("error", err.Error()))
		return nil, err
	}

	primary, contra, err := accounting.BuildPair(accounting.PairInput{
		Operation:       req.kind,
		UserID:          req.userID,
		GroupID:         groupID,
		ProjectID:       req.projectID,
		Amount:          req.amount,
		Description:     req.description,
		TransactionDate: transactionDate,
		ActorUserID:     req.actorUserID,
		Now:             now,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if err := s.ledgerRepo.AppendPair(ctx, tx, primary, contra); err != nil {
		logger.Error("Failed to append contra pair",
			slog.String("operation", string(req.kind)),
			slog.String("user_id", req.userID),
			slog.String("group_id", groupID),
			slog.String("error", err.Error()))
		return nil, err
	}

	userBalances, groupBalances, err := s.recomputeCaches(ctx, tx, req, groupID, now)
	if err != nil {
		logger.Error("Failed to recompute cached balances",
			slog.String("operation", string(req.kind)),
			slog.String("user_id", req.userID),
			slog.String("group_id", groupID),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.ledgerRepo.Commit(ctx, tx); err != nil {
		return nil, fmt.Errorf("%w: commit: %v", apperrors.ErrLedgerWrite, err)
	}

	userEntry, groupEntry := splitByOwner(primary, contra)
	logger.Info("Ledger operation recorded",
		slog.String("operation", string(req.kind)),
		slog.String("user_id", req.userID),
		slog.String("group_id", groupID),
		slog.String("project_id", req.projectID),
		slog.String("amount", req.amount.String()),
		slog.String("entry_id", primary.EntryID),
		slog.String("contra_entry_id", contra.EntryID))

	return &dto.OperationData{
		UserTransaction:  dto.ToEntryResponse(userEntry),
		GroupTransaction: dto.ToEntryResponse(groupEntry),
		UserBalances:     userBalances,
		GroupBalances:    groupBalances,
	}, nil
}

func (s *ledgerService) validate(req operationRequest) error {
	if req.actorUserID == "" {
		return fmt.Errorf("%w: actor user ID is required", apperrors.ErrValidation)
	}
	if req.userID == "" {
		return fmt.Errorf("%w: user ID is required", apperrors.ErrValidation)
	}
	if req.projectID == "" {
		return fmt.Errorf("%w: project ID is required", apperrors.ErrValidation)
	}
	if req.amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, req.amount)
	}
	return nil
}

// resolveReferences loads the member and project and determines the group the
// operation settles against: the project's group, or the member's own group
// for cycles not tied to one.
func (s *ledgerService) resolveReferences(ctx context.Context, req operationRequest) (*domain.Member, *domain.Project, string, error) {
	member, err := s.memberRepo.FindMemberByID(ctx, req.userID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("member %s: %w", req.userID, err)
	}
	if !member.IsActive {
		return nil, nil, "", fmt.Errorf("%w: member %s is inactive", apperrors.ErrValidation, req.userID)
	}

	project, err := s.projectRepo.FindProjectByID(ctx, req.projectID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("project %s: %w", req.projectID, err)
	}
	if !project.IsActive {
		return nil, nil, "", fmt.Errorf("%w: project %s is inactive", apperrors.ErrValidation, req.projectID)
	}

	groupID := project.GroupID
	if groupID == "" {
		groupID = member.GroupID
	} else if member.GroupID != groupID {
		return nil, nil, "", fmt.Errorf("%w: member %s does not belong to the project's group", apperrors.ErrValidation, req.userID)
	}
	if groupID == "" {
		return nil, nil, "", fmt.Errorf("%w: member %s has no group to settle against", apperrors.ErrValidation, req.userID)
	}

	return member, project, groupID, nil
}

func (s *ledgerService) lockAndRead(ctx context.Context, tx pgx.Tx, member *domain.Member, project *domain.Project, groupID string) (*lockedState, error) {
	lockedMember, err := s.memberRepo.FindMemberByIDForUpdate(ctx, tx, member.UserID)
	if err != nil {
		return nil, fmt.Errorf("lock member %s: %w", member.UserID, err)
	}
	lockedGroup, err := s.groupRepo.FindGroupByIDForUpdate(ctx, tx, groupID)
	if err != nil {
		return nil, fmt.Errorf("lock group %s: %w", groupID, err)
	}
	if !lockedGroup.IsActive {
		return nil, fmt.Errorf("%w: group %s is inactive", apperrors.ErrValidation, groupID)
	}

	// Constraint checks read balances from the entry log under the row locks,
	// so a concurrent writer on the same owners cannot race them.
	userSums, err := s.ledgerRepo.SumSignedByAccountTypeInTx(ctx, tx, domain.UserOwner(member.UserID), nil)
	if err != nil {
		return nil, err
	}
	groupSums, err := s.ledgerRepo.SumSignedByAccountTypeInTx(ctx, tx, domain.GroupOwner(groupID), nil)
	if err != nil {
		return nil, err
	}

	return &lockedState{
		member:        lockedMember,
		group:         lockedGroup,
		project:       project,
		userBalances:  domain.NewBalanceBreakdown(userSums),
		groupBalances: domain.NewBalanceBreakdown(groupSums),
	}, nil
}

// recomputeCaches rereads both owners' balances from the entry log, now
// including the freshly appended pair, and writes the projections back.
// Recompute-from-log rather than increment-in-place keeps the caches from
// drifting on missed updates.
func (s *ledgerService) recomputeCaches(ctx context.Context, tx pgx.Tx, req operationRequest, groupID string, now time.Time) (domain.BalanceBreakdown, domain.BalanceBreakdown, error) {
	userSums, err := s.ledgerRepo.SumSignedByAccountTypeInTx(ctx, tx, domain.UserOwner(req.userID), nil)
	if err != nil {
		return domain.BalanceBreakdown{}, domain.BalanceBreakdown{}, err
	}
	groupSums, err := s.ledgerRepo.SumSignedByAccountTypeInTx(ctx, tx, domain.GroupOwner(groupID), nil)
	if err != nil {
		return domain.BalanceBreakdown{}, domain.BalanceBreakdown{}, err
	}

	userBalances := domain.NewBalanceBreakdown(userSums)
	groupBalances := domain.NewBalanceBreakdown(groupSums)

	if err := s.memberRepo.UpdateMemberBalancesInTx(ctx, tx, req.userID,
		userBalances.CachedBalance(), userBalances.CachedLoanBalance(), req.actorUserID, now); err != nil {
		return domain.BalanceBreakdown{}, domain.BalanceBreakdown{}, err
	}
	if err := s.groupRepo.UpdateGroupBalancesInTx(ctx, tx, groupID,
		groupBalances.CachedBalance(), groupBalances.CachedLoanBalance(), req.actorUserID, now); err != nil {
		return domain.BalanceBreakdown{}, domain.BalanceBreakdown{}, err
	}

	return userBalances, groupBalances, nil
}

// splitByOwner returns the user-owned and group-owned halves of a pair in
// that order, regardless of which side was primary for the operation.
func splitByOwner(primary, contra domain.LedgerEntry) (domain.LedgerEntry, domain.LedgerEntry) {
	if primary.Owner.Type == domain.OwnerUser {
		return primary, contra
	}
	return contra, primary
}
