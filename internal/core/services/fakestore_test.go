package services_test

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
)

// fakeStore is an in-memory stand-in for the whole persistence layer, used by
// the multi-operation scenario tests where wiring expectation mocks for every
// intermediate read would obscure what is being exercised. Transactions are a
// no-op: every write is immediately visible, which matches what a single
// serialized operation observes.
type fakeStore struct {
	entries  []domain.LedgerEntry
	members  map[string]*domain.Member
	groups   map[string]*domain.Group
	projects map[string]*domain.Project
}

var (
	_ portsrepo.LedgerRepositoryWithTx  = (*fakeStore)(nil)
	_ portsrepo.MemberRepositoryFacade  = (*fakeStore)(nil)
	_ portsrepo.GroupRepositoryFacade   = (*fakeStore)(nil)
	_ portsrepo.ProjectReader           = (*fakeStore)(nil)
)

func newFakeStore() *fakeStore {
	return &fakeStore{
		members:  map[string]*domain.Member{},
		groups:   map[string]*domain.Group{},
		projects: map[string]*domain.Project{},
	}
}

func (f *fakeStore) provider() *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepo:  f,
		MemberRepo:  f,
		GroupRepo:   f,
		ProjectRepo: f,
	}
}

func (f *fakeStore) Begin(ctx context.Context) (pgx.Tx, error)      { return nil, nil }
func (f *fakeStore) Commit(ctx context.Context, tx pgx.Tx) error    { return nil }
func (f *fakeStore) Rollback(ctx context.Context, tx pgx.Tx) error  { return nil }

func (f *fakeStore) AppendPair(ctx context.Context, tx pgx.Tx, primary, contra domain.LedgerEntry) error {
	f.entries = append(f.entries, primary, contra)
	return nil
}

func (f *fakeStore) FindEntryByID(ctx context.Context, entryID string) (*domain.LedgerEntry, error) {
	for i := range f.entries {
		if f.entries[i].EntryID == entryID {
			e := f.entries[i]
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeStore) sum(owner domain.Owner, projectID *string) map[domain.AccountType]decimal.Decimal {
	sums := map[domain.AccountType]decimal.Decimal{}
	for _, e := range f.entries {
		if e.Owner != owner {
			continue
		}
		if projectID != nil && e.ProjectID != *projectID {
			continue
		}
		sums[e.AccountType] = sums[e.AccountType].Add(e.SignedAmount)
	}
	return sums
}

func (f *fakeStore) SumSigned(ctx context.Context, owner domain.Owner, accountType domain.AccountType, projectID *string) (decimal.Decimal, error) {
	return f.sum(owner, projectID)[accountType], nil
}

func (f *fakeStore) SumSignedByAccountType(ctx context.Context, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error) {
	return f.sum(owner, projectID), nil
}

func (f *fakeStore) SumSignedByAccountTypeInTx(ctx context.Context, tx pgx.Tx, owner domain.Owner, projectID *string) (map[domain.AccountType]decimal.Decimal, error) {
	return f.sum(owner, projectID), nil
}

func (f *fakeStore) ListRecentEntries(ctx context.Context, owner domain.Owner, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	var out []domain.LedgerEntry
	for _, e := range f.entries {
		if e.Owner == owner {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TransactionDate.Equal(out[j].TransactionDate) {
			return out[i].TransactionDate.After(out[j].TransactionDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil, nil
}

func (f *fakeStore) FindMemberByID(ctx context.Context, userID string) (*domain.Member, error) {
	m, ok := f.members[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (f *fakeStore) ListMemberIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.members))
	for id := range f.members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeStore) FindMemberByIDForUpdate(ctx context.Context, tx pgx.Tx, userID string) (*domain.Member, error) {
	return f.FindMemberByID(ctx, userID)
}

func (f *fakeStore) UpdateMemberBalancesInTx(ctx context.Context, tx pgx.Tx, userID string, balance, loanBalance decimal.Decimal, updatedBy string, now time.Time) error {
	m, ok := f.members[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	m.Balance = balance
	m.LoanBalance = loanBalance
	m.LastUpdatedBy = updatedBy
	m.LastUpdatedAt = now
	return nil
}

func (f *fakeStore) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	g, ok := f.groups[groupID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeStore) ListGroupIDs(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(f.groups))
	for id := range f.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

func (f *fakeStore) FindGroupByIDForUpdate(ctx context.Context, tx pgx.Tx, groupID string) (*domain.Group, error) {
	return f.FindGroupByID(ctx, groupID)
}

func (f *fakeStore) UpdateGroupBalancesInTx(ctx context.Context, tx pgx.Tx, groupID string, balance, loanBalance decimal.Decimal, updatedBy string, now time.Time) error {
	g, ok := f.groups[groupID]
	if !ok {
		return apperrors.ErrNotFound
	}
	g.Balance = balance
	g.LoanBalance = loanBalance
	g.LastUpdatedBy = updatedBy
	g.LastUpdatedAt = now
	return nil
}

func (f *fakeStore) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	p, ok := f.projects[projectID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	cp := *p
	return &cp, nil
}
