// internal/services/credential_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
)

type CredentialServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	ledger     *LedgerService
	service    *CredentialService
	pass       *models.PaperAccessPass
	paper      *models.PaperEntry
	reader     *models.User
	researcher *models.User
}

func (suite *CredentialServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.ledger = NewLedgerService(suite.db)
	notifier := NewNotificationService(suite.db)
	mint := NewMintService(suite.db)
	suite.service = NewCredentialService(suite.db, mint, notifier)

	operator := createTestUser(suite.T(), suite.db, models.UserTypeOperator)
	platformService := NewPlatformService(suite.db, testPlatformConfig(), suite.ledger, notifier)
	platform, err := platformService.InitializePlatform(operator.ID, InitializePlatformInput{
		Name:   "deserhub",
		FeeBps: 500,
	})
	suite.Require().NoError(err)

	suite.researcher = createTestUser(suite.T(), suite.db, models.UserTypeResearcher)
	suite.reader = createTestUser(suite.T(), suite.db, models.UserTypeReader)

	paperService := NewPaperService(suite.db, suite.ledger, notifier)
	suite.paper, err = paperService.CreatePaper(suite.researcher.ID, platform.ID, CreatePaperInput{
		Title:       "Consensus Without Clocks",
		Description: "Ordering events in asynchronous systems",
		URI:         "papers/20260830_0badf00d.pdf",
		Price:       0,
		OpenAccess:  true,
	})
	suite.Require().NoError(err)

	passService := NewPassService(suite.db, suite.ledger, notifier)
	suite.pass, err = passService.PayPass(suite.reader.ID, PayPassInput{
		PaperEntryID: suite.paper.ID,
		ResearcherID: suite.researcher.ID,
	})
	suite.Require().NoError(err)
}

func (suite *CredentialServiceTestSuite) TestMintCredential() {
	credential, err := suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.pass.ID,
		Name:   "Proof of Access",
		Symbol: "POA",
		URI:    "ipfs://QmAccessProof",
	})
	suite.Require().NoError(err)

	suite.Equal(suite.pass.ID, credential.PassID)
	suite.Equal(suite.reader.ID, credential.OwnerID)
	suite.Equal("Proof of Access", credential.Name)
	suite.Equal("POA", credential.Symbol)
	suite.Equal("ipfs://QmAccessProof", credential.URI)
	suite.Equal(uint32(1), credential.Supply)
	suite.Equal(uint16(0), credential.RoyaltyBps)
	suite.True(credential.NonTransferable)
	suite.True(credential.SupplyLocked)

	var pass models.PaperAccessPass
	suite.Require().NoError(suite.db.First(&pass, "id = ?", suite.pass.ID).Error)
	suite.Require().NotNil(pass.CredentialID)
	suite.Equal(credential.ID, *pass.CredentialID)
}

func (suite *CredentialServiceTestSuite) TestMintCredentialDefaults() {
	credential, err := suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.pass.ID,
	})
	suite.Require().NoError(err)

	suite.Equal(suite.paper.Title, credential.Name)
	suite.Equal("DESER", credential.Symbol)
	suite.Equal(suite.paper.URI, credential.URI)
}

func (suite *CredentialServiceTestSuite) TestMintCredentialDerivedAddressIsStable() {
	credential, err := suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.pass.ID,
	})
	suite.Require().NoError(err)
	suite.Equal(MintAddress(suite.pass.ID, suite.reader.ID), credential.MintAddress)
}

func (suite *CredentialServiceTestSuite) TestMintCredentialExactlyOnce() {
	_, err := suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.pass.ID,
	})
	suite.Require().NoError(err)

	_, err = suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.pass.ID,
	})
	suite.ErrorIs(err, ErrCredentialAlreadyIssued)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.Credential{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func (suite *CredentialServiceTestSuite) TestMintCredentialWrongOwner() {
	stranger := createTestUser(suite.T(), suite.db, models.UserTypeReader)

	_, err := suite.service.MintCredential(stranger.ID, MintCredentialInput{
		PassID: suite.pass.ID,
	})
	suite.ErrorIs(err, ErrInvalidOwnerForCredential)
}

func (suite *CredentialServiceTestSuite) TestMintCredentialUnknownPass() {
	_, err := suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.reader.ID, // not a pass
	})
	suite.ErrorIs(err, ErrPassNotFound)
}

func (suite *CredentialServiceTestSuite) TestMintCredentialFailsClosedOnOrphanMint() {
	// An existing mint without the pass backlink (interrupted earlier attempt)
	// still blocks a re-mint.
	orphan := &models.Credential{
		PassID:      suite.pass.ID,
		OwnerID:     suite.reader.ID,
		AuthorityID: suite.paper.PlatformID,
		MintAddress: MintAddress(suite.pass.ID, suite.reader.ID),
		URI:         suite.paper.URI,
		Supply:      1,
	}
	suite.Require().NoError(suite.db.Create(orphan).Error)

	_, err := suite.service.MintCredential(suite.reader.ID, MintCredentialInput{
		PassID: suite.pass.ID,
	})
	suite.ErrorIs(err, ErrCredentialAlreadyIssued)
}

func TestCredentialServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CredentialServiceTestSuite))
}
