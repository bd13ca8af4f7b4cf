package accounting

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
)

func pairInput(op domain.OperationKind, amount string) PairInput {
	return PairInput{
		Operation:       op,
		UserID:          "user-1",
		GroupID:         "group-1",
		ProjectID:       "project-1",
		Amount:          decimal.RequireFromString(amount),
		Description:     "test entry",
		TransactionDate: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		ActorUserID:     "admin-1",
		Now:             time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestBuildPair_RuleTable(t *testing.T) {
	tests := []struct {
		name            string
		operation       domain.OperationKind
		primaryOwner    domain.OwnerType
		primaryAccount  domain.AccountType
		primaryNegative bool
		contraOwner     domain.OwnerType
		contraAccount   domain.AccountType
		contraNegative  bool
		source          domain.EntrySource
	}{
		{
			name:           "saving credits user savings and group cash",
			operation:      domain.OpSaving,
			primaryOwner:   domain.OwnerUser,
			primaryAccount: domain.Savings,
			contraOwner:    domain.OwnerGroup,
			contraAccount:  domain.Cash,
			source:         domain.SourceSharePurchase,
		},
		{
			name:            "disbursement debits group cash and credits user loan",
			operation:       domain.OpLoanDisbursement,
			primaryOwner:    domain.OwnerGroup,
			primaryAccount:  domain.Cash,
			primaryNegative: true,
			contraOwner:     domain.OwnerUser,
			contraAccount:   domain.Loan,
			source:          domain.SourceLoanDisbursement,
		},
		{
			name:            "repayment debits user loan and credits group cash",
			operation:       domain.OpLoanRepayment,
			primaryOwner:    domain.OwnerUser,
			primaryAccount:  domain.Loan,
			primaryNegative: true,
			contraOwner:     domain.OwnerGroup,
			contraAccount:   domain.Cash,
			source:          domain.SourceLoanRepayment,
		},
		{
			name:            "fine debits user fine and credits group cash",
			operation:       domain.OpFine,
			primaryOwner:    domain.OwnerUser,
			primaryAccount:  domain.Fine,
			primaryNegative: true,
			contraOwner:     domain.OwnerGroup,
			contraAccount:   domain.Cash,
			source:          domain.SourceFine,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := pairInput(tt.operation, "250.00")
			primary, contra, err := BuildPair(in)
			require.NoError(t, err)

			assert.Equal(t, tt.primaryOwner, primary.Owner.Type)
			assert.Equal(t, tt.primaryAccount, primary.AccountType)
			assert.Equal(t, tt.contraOwner, contra.Owner.Type)
			assert.Equal(t, tt.contraAccount, contra.AccountType)
			assert.Equal(t, tt.source, primary.Source)
			assert.Equal(t, tt.source, contra.Source)

			// Both halves carry the same positive magnitude.
			assert.True(t, primary.Amount.Equal(in.Amount))
			assert.True(t, contra.Amount.Equal(in.Amount))

			wantPrimary := in.Amount
			if tt.primaryNegative {
				wantPrimary = wantPrimary.Neg()
			}
			wantContra := in.Amount
			if tt.contraNegative {
				wantContra = wantContra.Neg()
			}
			assert.True(t, primary.SignedAmount.Equal(wantPrimary), "primary signed amount %s", primary.SignedAmount)
			assert.True(t, contra.SignedAmount.Equal(wantContra), "contra signed amount %s", contra.SignedAmount)

			// Direction tag follows the sign.
			assert.Equal(t, domain.TransactionTypeForSign(primary.SignedAmount), primary.TransactionType)
			assert.Equal(t, domain.TransactionTypeForSign(contra.SignedAmount), contra.TransactionType)
		})
	}
}

func TestBuildPair_LinksBothSides(t *testing.T) {
	primary, contra, err := BuildPair(pairInput(domain.OpSaving, "100.00"))
	require.NoError(t, err)

	require.NotNil(t, primary.ContraEntryID)
	require.NotNil(t, contra.ContraEntryID)
	assert.Equal(t, contra.EntryID, *primary.ContraEntryID)
	assert.Equal(t, primary.EntryID, *contra.ContraEntryID)
	assert.False(t, primary.IsContraEntry)
	assert.True(t, contra.IsContraEntry)
	assert.NotEqual(t, primary.EntryID, contra.EntryID)
}

func TestBuildPair_RejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []string{"0", "-10.00"} {
		_, _, err := BuildPair(pairInput(domain.OpSaving, amount))
		assert.Error(t, err, "amount %s should be rejected", amount)
	}
}

func TestBuildPair_UnknownOperation(t *testing.T) {
	in := pairInput(domain.OperationKind("DIVIDEND"), "10.00")
	_, _, err := BuildPair(in)
	assert.Error(t, err)
}

func TestCashDelta_Conservation(t *testing.T) {
	// Transfer-type operations move cash into the group by exactly the
	// operation amount; disbursement moves it out.
	tests := []struct {
		operation domain.OperationKind
		want      string
	}{
		{domain.OpSaving, "500.00"},
		{domain.OpLoanRepayment, "500.00"},
		{domain.OpFine, "500.00"},
		{domain.OpLoanDisbursement, "-500.00"},
	}

	for _, tt := range tests {
		primary, contra, err := BuildPair(pairInput(tt.operation, "500.00"))
		require.NoError(t, err)
		delta := CashDelta(primary, contra)
		assert.True(t, delta.Equal(decimal.RequireFromString(tt.want)),
			"%s cash delta = %s, want %s", tt.operation, delta, tt.want)
	}
}
