// internal/services/marketplace_flow_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
)

// Exercises the whole lifecycle: platform setup, listing, purchase,
// credential mint, treasury withdrawal.
type MarketplaceFlowTestSuite struct {
	suite.Suite
	db          *gorm.DB
	ledger      *LedgerService
	platforms   *PlatformService
	papers      *PaperService
	passes      *PassService
	credentials *CredentialService
}

func (suite *MarketplaceFlowTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.ledger = NewLedgerService(suite.db)
	notifier := NewNotificationService(suite.db)
	suite.platforms = NewPlatformService(suite.db, testPlatformConfig(), suite.ledger, notifier)
	suite.papers = NewPaperService(suite.db, suite.ledger, notifier)
	suite.passes = NewPassService(suite.db, suite.ledger, notifier)
	suite.credentials = NewCredentialService(suite.db, NewMintService(suite.db), notifier)
}

func (suite *MarketplaceFlowTestSuite) TestFullLifecycle() {
	operator := createTestUser(suite.T(), suite.db, models.UserTypeOperator)
	researcher := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)
	reader := createTestUser(suite.T(), suite.db, models.UserTypeReader)

	platform, err := suite.platforms.InitializePlatform(operator.ID, InitializePlatformInput{
		Name:   "deserhub",
		FeeBps: 500,
	})
	suite.Require().NoError(err)

	// Researcher lists a paper priced at 1 unit with 9 decimals
	fundUser(suite.T(), suite.db, suite.ledger, researcher.ID, 1_000_000_000_000)
	paper, err := suite.papers.CreatePaper(researcher.ID, platform.ID, CreatePaperInput{
		Title:       "Deterministic Replay for Distributed Systems",
		Description: "Record and replay of nondeterministic executions",
		URI:         "papers/20260830_feedface.pdf",
		Price:       1_000_000_000_000,
		OpenAccess:  false,
	})
	suite.Require().NoError(err)
	suite.Equal(uint64(50_000_000_000), paper.ListingFee)

	// Reader buys a pass; price goes straight to the researcher
	fundUser(suite.T(), suite.db, suite.ledger, reader.ID, 1_500_000_000_000)
	pass, err := suite.passes.PayPass(reader.ID, PayPassInput{
		PaperEntryID: paper.ID,
		ResearcherID: researcher.ID,
	})
	suite.Require().NoError(err)

	researcherAcct, err := suite.ledger.Account(nil, researcher.ID, models.AccountKindUser)
	suite.Require().NoError(err)
	// funded 1T, paid 50B listing fee, earned 1T back
	suite.Equal(uint64(1_950_000_000_000), researcherAcct.Balance)

	// Reader mints the access credential
	credential, err := suite.credentials.MintCredential(reader.ID, MintCredentialInput{
		PassID: pass.ID,
	})
	suite.Require().NoError(err)
	suite.True(credential.SupplyLocked)

	// Operator drains the accumulated listing fees
	account, err := suite.platforms.Withdraw(operator.ID, platform.ID, 50_000_000_000)
	suite.Require().NoError(err)
	suite.Equal(uint64(50_000_000_000), account.Balance)
	suite.Equal(uint64(0), accountBalance(suite.T(), suite.db, platform.EscrowAccountID))

	// Every step left its event
	var count int64
	suite.Require().NoError(suite.db.Model(&models.PlatformEvent{}).Count(&count).Error)
	suite.Equal(int64(4), count)
}

func TestMarketplaceFlowTestSuite(t *testing.T) {
	suite.Run(t, new(MarketplaceFlowTestSuite))
}
