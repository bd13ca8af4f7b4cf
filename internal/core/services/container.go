package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/vslakit/vsla_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/vslakit/vsla_ledger_app/internal/core/ports/services"
)

// NewContainer creates the service container with properly wired dependencies.
func NewContainer(repos *portsrepo.RepositoryProvider, defaultLoanMultiplier decimal.Decimal) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:  NewLedgerService(repos.LedgerRepo, repos.MemberRepo, repos.GroupRepo, repos.ProjectRepo, defaultLoanMultiplier),
		Balance: NewBalanceService(repos.LedgerRepo, repos.MemberRepo, repos.GroupRepo),
	}
}

// Compile-time interface checks.
var (
	_ portssvc.LedgerSvcFacade  = (*ledgerService)(nil)
	_ portssvc.BalanceSvcFacade = (*balanceService)(nil)
)
