package domain

// OperationKind enumerates the business operations the ledger records. Each
// kind maps to a fixed primary/contra pair of entries (see utils/accounting).
type OperationKind string

const (
	OpSaving           OperationKind = "SAVING"
	OpLoanDisbursement OperationKind = "LOAN_DISBURSEMENT"
	OpLoanRepayment    OperationKind = "LOAN_REPAYMENT"
	OpFine             OperationKind = "FINE"
)
