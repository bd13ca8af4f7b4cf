package accounting

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
)

// PairInput is the semantic description of a business operation: who pays,
// who receives, how much, and under which cycle. BuildPair turns it into the
// two linked entries of a double-entry pair.
type PairInput struct {
	Operation       domain.OperationKind
	UserID          string
	GroupID         string
	ProjectID       string
	Amount          decimal.Decimal // Positive magnitude
	Description     string
	TransactionDate time.Time
	ActorUserID     string
	Now             time.Time
}

// side describes one half of the rule table: which party, which sub-ledger,
// and the sign applied to the amount from that party's perspective.
type side struct {
	owner       func(PairInput) domain.Owner
	accountType domain.AccountType
	negative    bool
}

func userSide(accountType domain.AccountType, negative bool) side {
	return side{
		owner:       func(in PairInput) domain.Owner { return domain.UserOwner(in.UserID) },
		accountType: accountType,
		negative:    negative,
	}
}

func groupSide(accountType domain.AccountType, negative bool) side {
	return side{
		owner:       func(in PairInput) domain.Owner { return domain.GroupOwner(in.GroupID) },
		accountType: accountType,
		negative:    negative,
	}
}

// pairRule fixes, per operation, both sides of the double-entry pair and the
// business-event tag recorded on the entries.
type pairRule struct {
	primary side
	contra  side
	source  domain.EntrySource
}

// Rule table. Both sides are recorded as positive or negative from each
// party's own perspective, so balance aggregation stays a plain signed sum.
//
//	Saving:           user savings (+) / group cash (+)
//	LoanDisbursement: group cash  (-) / user  loan (+)
//	LoanRepayment:    user loan   (-) / group cash (+)
//	Fine:             user fine   (-) / group cash (+)
var pairRules = map[domain.OperationKind]pairRule{
	domain.OpSaving: {
		primary: userSide(domain.Savings, false),
		contra:  groupSide(domain.Cash, false),
		source:  domain.SourceSharePurchase,
	},
	domain.OpLoanDisbursement: {
		primary: groupSide(domain.Cash, true),
		contra:  userSide(domain.Loan, false),
		source:  domain.SourceLoanDisbursement,
	},
	domain.OpLoanRepayment: {
		primary: userSide(domain.Loan, true),
		contra:  groupSide(domain.Cash, false),
		source:  domain.SourceLoanRepayment,
	},
	domain.OpFine: {
		primary: userSide(domain.Fine, true),
		contra:  groupSide(domain.Cash, false),
		source:  domain.SourceFine,
	},
}

func buildEntry(in PairInput, s side, source domain.EntrySource, isContra bool) domain.LedgerEntry {
	signed := in.Amount
	if s.negative {
		signed = signed.Neg()
	}
	return domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		ProjectID:       in.ProjectID,
		Amount:          in.Amount,
		SignedAmount:    signed,
		Owner:           s.owner(in),
		AccountType:     s.accountType,
		TransactionType: domain.TransactionTypeForSign(signed),
		Source:          source,
		IsContraEntry:   isContra,
		Description:     in.Description,
		TransactionDate: in.TransactionDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     in.Now,
			CreatedBy:     in.ActorUserID,
			LastUpdatedAt: in.Now,
			LastUpdatedBy: in.ActorUserID,
		},
	}
}

// BuildPair constructs the primary and contra entries for an operation and
// links them through their ContraEntryID back-references. The pair must then
// be persisted atomically; neither entry may exist without the other.
func BuildPair(in PairInput) (domain.LedgerEntry, domain.LedgerEntry, error) {
	if in.Amount.LessThanOrEqual(decimal.Zero) {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, fmt.Errorf("pair amount must be positive, got %s", in.Amount.String())
	}
	rule, ok := pairRules[in.Operation]
	if !ok {
		return domain.LedgerEntry{}, domain.LedgerEntry{}, fmt.Errorf("unknown operation kind %q", in.Operation)
	}

	primary := buildEntry(in, rule.primary, rule.source, false)
	contra := buildEntry(in, rule.contra, rule.source, true)
	primary.ContraEntryID = &contra.EntryID
	contra.ContraEntryID = &primary.EntryID
	return primary, contra, nil
}

// CashDelta reports the net change in group cash produced by a pair. Transfer
// operations (saving, repayment, fine) move cash into the group; disbursement
// moves it out. Used to assert conservation in tests and reconciliation.
func CashDelta(entries ...domain.LedgerEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		if e.Owner.Type == domain.OwnerGroup && e.AccountType == domain.Cash {
			total = total.Add(e.SignedAmount)
		}
	}
	return total
}
