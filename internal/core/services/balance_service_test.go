package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vslakit/vsla_ledger_app/internal/apperrors"
	"github.com/vslakit/vsla_ledger_app/internal/core/domain"
	portssvc "github.com/vslakit/vsla_ledger_app/internal/core/ports/services"
	"github.com/vslakit/vsla_ledger_app/internal/core/services"
)

type BalanceServiceTestSuite struct {
	suite.Suite
	mockLedgerRepo *MockLedgerRepository
	mockMemberRepo *MockMemberRepository
	mockGroupRepo  *MockGroupRepository
	service        portssvc.BalanceSvcFacade

	userID  string
	groupID string
	member  domain.Member
	group   domain.Group
}

func (suite *BalanceServiceTestSuite) SetupTest() {
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.mockMemberRepo = new(MockMemberRepository)
	suite.mockGroupRepo = new(MockGroupRepository)
	suite.service = services.NewBalanceService(suite.mockLedgerRepo, suite.mockMemberRepo, suite.mockGroupRepo)

	suite.userID = uuid.NewString()
	suite.groupID = uuid.NewString()
	suite.member = domain.Member{UserID: suite.userID, GroupID: suite.groupID, IsActive: true}
	suite.group = domain.Group{GroupID: suite.groupID, IsActive: true}
}

func (suite *BalanceServiceTestSuite) TestGetBalances_MemberBreakdown() {
	ctx := context.Background()
	member := suite.member
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.userID).Return(&member, nil).Once()
	suite.mockLedgerRepo.On("SumSignedByAccountType", mock.Anything, domain.UserOwner(suite.userID), (*string)(nil)).Return(sums{
		domain.Savings: decimal.NewFromInt(1500),
		domain.Loan:    decimal.NewFromInt(600),
		domain.Fine:    decimal.NewFromInt(-75),
	}, nil).Once()

	breakdown, err := suite.service.GetBalances(ctx, domain.UserOwner(suite.userID), nil)

	suite.Require().NoError(err)
	suite.True(breakdown.Savings.Equal(decimal.NewFromInt(1500)))
	suite.True(breakdown.Loans.Equal(decimal.NewFromInt(600)))
	// Fines are stored negative in the log but reported as a magnitude.
	suite.True(breakdown.Fines.Equal(decimal.NewFromInt(75)))
	suite.True(breakdown.NetPosition.Equal(decimal.NewFromInt(1425)))

	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalances_ProjectScoped() {
	ctx := context.Background()
	projectID := uuid.NewString()
	member := suite.member
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.userID).Return(&member, nil).Once()
	suite.mockLedgerRepo.On("SumSignedByAccountType", mock.Anything, domain.UserOwner(suite.userID), &projectID).Return(sums{
		domain.Savings: decimal.NewFromInt(200),
	}, nil).Once()

	breakdown, err := suite.service.GetBalances(ctx, domain.UserOwner(suite.userID), &projectID)

	suite.Require().NoError(err)
	suite.True(breakdown.Savings.Equal(decimal.NewFromInt(200)))
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestGetBalances_OwnerNotFound() {
	ctx := context.Background()
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.userID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetBalances(ctx, domain.UserOwner(suite.userID), nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "SumSignedByAccountType", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestGetBalances_UnknownOwnerType() {
	ctx := context.Background()

	_, err := suite.service.GetBalances(ctx, domain.Owner{Type: "VENDOR", ID: "x"}, nil)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BalanceServiceTestSuite) TestListEntries_DefaultLimit() {
	ctx := context.Background()
	group := suite.group
	owner := domain.GroupOwner(suite.groupID)
	suite.mockGroupRepo.On("FindGroupByID", mock.Anything, suite.groupID).Return(&group, nil).Once()
	suite.mockLedgerRepo.On("ListRecentEntries", mock.Anything, owner, 20, (*string)(nil)).Return([]domain.LedgerEntry{
		{EntryID: uuid.NewString(), Owner: owner, AccountType: domain.Cash, TransactionDate: time.Now()},
	}, nil, nil).Once()

	page, err := suite.service.ListEntries(ctx, owner, 0, nil)

	suite.Require().NoError(err)
	suite.Len(page.Entries, 1)
	suite.Nil(page.NextToken)
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BalanceServiceTestSuite) TestListEntries_PassesToken() {
	ctx := context.Background()
	member := suite.member
	owner := domain.UserOwner(suite.userID)
	token := "opaque-cursor"
	next := "next-cursor"
	suite.mockMemberRepo.On("FindMemberByID", mock.Anything, suite.userID).Return(&member, nil).Once()
	suite.mockLedgerRepo.On("ListRecentEntries", mock.Anything, owner, 5, &token).Return([]domain.LedgerEntry{}, next, nil).Once()

	page, err := suite.service.ListEntries(ctx, owner, 5, &token)

	suite.Require().NoError(err)
	suite.Require().NotNil(page.NextToken)
	suite.Equal(next, *page.NextToken)
}

func (suite *BalanceServiceTestSuite) TestReconcile_RequiresActor() {
	ctx := context.Background()

	_, err := suite.service.Reconcile(ctx, true, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "ListMemberIDs", mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestReconcile_NoDrift() {
	ctx := context.Background()
	savings := decimal.NewFromInt(300)
	member := suite.member
	member.Balance = savings
	group := suite.group
	group.Balance = savings

	suite.mockMemberRepo.On("ListMemberIDs", mock.Anything).Return([]string{suite.userID}, nil).Once()
	suite.mockGroupRepo.On("ListGroupIDs", mock.Anything).Return([]string{suite.groupID}, nil).Once()
	suite.mockLedgerRepo.On("Begin", mock.Anything).Return(nil, nil).Twice()
	suite.mockLedgerRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLedgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Twice()
	suite.mockMemberRepo.On("FindMemberByIDForUpdate", mock.Anything, mock.Anything, suite.userID).Return(&member, nil).Once()
	suite.mockGroupRepo.On("FindGroupByIDForUpdate", mock.Anything, mock.Anything, suite.groupID).Return(&group, nil).Once()
	suite.mockLedgerRepo.On("SumSignedByAccountTypeInTx", mock.Anything, mock.Anything, domain.UserOwner(suite.userID), (*string)(nil)).Return(sums{domain.Savings: savings}, nil).Once()
	suite.mockLedgerRepo.On("SumSignedByAccountTypeInTx", mock.Anything, mock.Anything, domain.GroupOwner(suite.groupID), (*string)(nil)).Return(sums{domain.Cash: savings}, nil).Once()

	report, err := suite.service.Reconcile(ctx, true, "auditor-1")

	suite.Require().NoError(err)
	suite.Equal(2, report.CheckedOwners)
	suite.Equal(0, report.DriftedOwners)
	suite.Empty(report.Deltas)
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateMemberBalancesInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockGroupRepo.AssertNotCalled(suite.T(), "UpdateGroupBalancesInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestReconcile_ReportsDriftWithoutApply() {
	ctx := context.Background()
	member := suite.member
	member.Balance = decimal.NewFromInt(100) // log says 300

	suite.mockMemberRepo.On("ListMemberIDs", mock.Anything).Return([]string{suite.userID}, nil).Once()
	suite.mockGroupRepo.On("ListGroupIDs", mock.Anything).Return([]string{}, nil).Once()
	suite.mockLedgerRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLedgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockMemberRepo.On("FindMemberByIDForUpdate", mock.Anything, mock.Anything, suite.userID).Return(&member, nil).Once()
	suite.mockLedgerRepo.On("SumSignedByAccountTypeInTx", mock.Anything, mock.Anything, domain.UserOwner(suite.userID), (*string)(nil)).Return(sums{domain.Savings: decimal.NewFromInt(300)}, nil).Once()

	report, err := suite.service.Reconcile(ctx, false, "auditor-1")

	suite.Require().NoError(err)
	suite.Equal(1, report.DriftedOwners)
	suite.Require().Len(report.Deltas, 1)
	delta := report.Deltas[0]
	suite.False(delta.Repaired)
	suite.True(delta.CachedBalance.Equal(decimal.NewFromInt(100)))
	suite.True(delta.ComputedBalance.Equal(decimal.NewFromInt(300)))
	suite.mockMemberRepo.AssertNotCalled(suite.T(), "UpdateMemberBalancesInTx",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BalanceServiceTestSuite) TestReconcile_AppliesRepair() {
	ctx := context.Background()
	member := suite.member
	member.Balance = decimal.NewFromInt(100)
	computed := decimal.NewFromInt(300)

	suite.mockMemberRepo.On("ListMemberIDs", mock.Anything).Return([]string{suite.userID}, nil).Once()
	suite.mockGroupRepo.On("ListGroupIDs", mock.Anything).Return([]string{}, nil).Once()
	suite.mockLedgerRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockLedgerRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil)
	suite.mockLedgerRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockMemberRepo.On("FindMemberByIDForUpdate", mock.Anything, mock.Anything, suite.userID).Return(&member, nil).Once()
	suite.mockLedgerRepo.On("SumSignedByAccountTypeInTx", mock.Anything, mock.Anything, domain.UserOwner(suite.userID), (*string)(nil)).Return(sums{domain.Savings: computed}, nil).Once()
	suite.mockMemberRepo.On("UpdateMemberBalancesInTx", mock.Anything, mock.Anything, suite.userID, computed, decimal.Decimal{}, "auditor-1", mock.Anything).Return(nil).Once()

	report, err := suite.service.Reconcile(ctx, true, "auditor-1")

	suite.Require().NoError(err)
	suite.Equal(1, report.DriftedOwners)
	suite.Require().Len(report.Deltas, 1)
	suite.True(report.Deltas[0].Repaired)
	suite.mockMemberRepo.AssertExpectations(suite.T())
}

func TestBalanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceServiceTestSuite))
}
