// internal/services/ledger_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
)

type LedgerServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	ledger *LedgerService
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.ledger = NewLedgerService(suite.db)
}

func (suite *LedgerServiceTestSuite) TestGetOrCreateAccountIsIdempotent() {
	user := createTestUser(suite.T(), suite.db, models.UserTypeReader)

	first, err := suite.ledger.GetOrCreateAccount(nil, user.ID, models.AccountKindUser)
	suite.Require().NoError(err)

	second, err := suite.ledger.GetOrCreateAccount(nil, user.ID, models.AccountKindUser)
	suite.Require().NoError(err)
	suite.Equal(first.ID, second.ID)
	suite.Equal(uint64(0), second.Balance)
}

func (suite *LedgerServiceTestSuite) TestAccountKindsAreSeparate() {
	user := createTestUser(suite.T(), suite.db, models.UserTypeOperator)

	userAcct, err := suite.ledger.GetOrCreateAccount(nil, user.ID, models.AccountKindUser)
	suite.Require().NoError(err)
	escrowAcct, err := suite.ledger.GetOrCreateAccount(nil, user.ID, models.AccountKindEscrow)
	suite.Require().NoError(err)

	suite.NotEqual(userAcct.ID, escrowAcct.ID)
}

func (suite *LedgerServiceTestSuite) TestTransferMovesFunds() {
	alice := createTestUser(suite.T(), suite.db, models.UserTypeReader)
	bob := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)

	aliceAcct := fundUser(suite.T(), suite.db, suite.ledger, alice.ID, 1_000)
	bobAcct := fundUser(suite.T(), suite.db, suite.ledger, bob.ID, 0)

	err := suite.ledger.Transfer(suite.db, aliceAcct.ID, bobAcct.ID, 400)
	suite.Require().NoError(err)

	suite.Equal(uint64(600), accountBalance(suite.T(), suite.db, aliceAcct.ID))
	suite.Equal(uint64(400), accountBalance(suite.T(), suite.db, bobAcct.ID))
}

func (suite *LedgerServiceTestSuite) TestTransferAllowsExactBalance() {
	alice := createTestUser(suite.T(), suite.db, models.UserTypeReader)
	bob := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)

	aliceAcct := fundUser(suite.T(), suite.db, suite.ledger, alice.ID, 500)
	bobAcct := fundUser(suite.T(), suite.db, suite.ledger, bob.ID, 0)

	err := suite.ledger.Transfer(suite.db, aliceAcct.ID, bobAcct.ID, 500)
	suite.Require().NoError(err)
	suite.Equal(uint64(0), accountBalance(suite.T(), suite.db, aliceAcct.ID))
}

func (suite *LedgerServiceTestSuite) TestTransferRejectsOverdraft() {
	alice := createTestUser(suite.T(), suite.db, models.UserTypeReader)
	bob := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)

	aliceAcct := fundUser(suite.T(), suite.db, suite.ledger, alice.ID, 100)
	bobAcct := fundUser(suite.T(), suite.db, suite.ledger, bob.ID, 0)

	err := suite.ledger.Transfer(suite.db, aliceAcct.ID, bobAcct.ID, 101)
	suite.ErrorIs(err, ErrInsufficientFunds)

	suite.Equal(uint64(100), accountBalance(suite.T(), suite.db, aliceAcct.ID))
	suite.Equal(uint64(0), accountBalance(suite.T(), suite.db, bobAcct.ID))
}

func (suite *LedgerServiceTestSuite) TestTransferStrictRequiresMoreThanAmount() {
	alice := createTestUser(suite.T(), suite.db, models.UserTypeReader)
	bob := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)

	aliceAcct := fundUser(suite.T(), suite.db, suite.ledger, alice.ID, 500)
	bobAcct := fundUser(suite.T(), suite.db, suite.ledger, bob.ID, 0)

	err := suite.ledger.TransferStrict(suite.db, aliceAcct.ID, bobAcct.ID, 500)
	suite.ErrorIs(err, ErrInsufficientFunds)

	err = suite.ledger.TransferStrict(suite.db, aliceAcct.ID, bobAcct.ID, 499)
	suite.Require().NoError(err)
	suite.Equal(uint64(1), accountBalance(suite.T(), suite.db, aliceAcct.ID))
}

func (suite *LedgerServiceTestSuite) TestZeroTransferIsNoop() {
	alice := createTestUser(suite.T(), suite.db, models.UserTypeReader)
	bob := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)

	aliceAcct := fundUser(suite.T(), suite.db, suite.ledger, alice.ID, 0)
	bobAcct := fundUser(suite.T(), suite.db, suite.ledger, bob.ID, 0)

	suite.Require().NoError(suite.ledger.Transfer(suite.db, aliceAcct.ID, bobAcct.ID, 0))
}

func (suite *LedgerServiceTestSuite) TestCreditUnknownAccountFails() {
	alice := createTestUser(suite.T(), suite.db, models.UserTypeReader)
	err := suite.ledger.Credit(suite.db, alice.ID, 100) // user id, not an account id
	suite.ErrorIs(err, ErrAccountNotFound)
}

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}
