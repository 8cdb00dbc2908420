// internal/services/paper_service_test.go
package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/jenny07007/deserhub-backend/internal/models"
	"github.com/jenny07007/deserhub-backend/internal/utils"
)

type PaperServiceTestSuite struct {
	suite.Suite
	db         *gorm.DB
	ledger     *LedgerService
	service    *PaperService
	platform   *models.Platform
	researcher *models.User
}

func (suite *PaperServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.ledger = NewLedgerService(suite.db)
	notifier := NewNotificationService(suite.db)
	suite.service = NewPaperService(suite.db, suite.ledger, notifier)

	operator := createTestUser(suite.T(), suite.db, models.UserTypeOperator)
	platformService := NewPlatformService(suite.db, testPlatformConfig(), suite.ledger, notifier)
	platform, err := platformService.InitializePlatform(operator.ID, InitializePlatformInput{
		Name:   "deserhub",
		FeeBps: 500,
	})
	suite.Require().NoError(err)
	suite.platform = platform

	suite.researcher = createTestUser(suite.T(), suite.db, models.UserTypeResearcher)
}

func validPaperInput() CreatePaperInput {
	return CreatePaperInput{
		Title:       "Attention Is All You Need",
		Description: "A transformer architecture study",
		URI:         "papers/20260830_deadbeef.pdf",
		Price:       1_000_000,
		OpenAccess:  false,
		Tags:        []string{"ml", "transformers"},
	}
}

func (suite *PaperServiceTestSuite) TestCreatePaperChargesListingFee() {
	fundUser(suite.T(), suite.db, suite.ledger, suite.researcher.ID, 100_000)

	paper, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, validPaperInput())
	suite.Require().NoError(err)

	// 5% of 1_000_000
	suite.Equal(uint64(50_000), paper.ListingFee)
	suite.Equal(uint64(50_000), accountBalance(suite.T(), suite.db, suite.platform.EscrowAccountID))

	researcherAcct, err := suite.ledger.Account(nil, suite.researcher.ID, models.AccountKindUser)
	suite.Require().NoError(err)
	suite.Equal(uint64(50_000), researcherAcct.Balance)
}

func (suite *PaperServiceTestSuite) TestCreatePaperInsufficientListingBalance() {
	fundUser(suite.T(), suite.db, suite.ledger, suite.researcher.ID, 49_999)

	_, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, validPaperInput())
	suite.ErrorIs(err, ErrInsufficientBalanceForListing)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.PaperEntry{}).Count(&count).Error)
	suite.Equal(int64(0), count)
}

func (suite *PaperServiceTestSuite) TestCreateOpenAccessPaperIsFree() {
	input := validPaperInput()
	input.Price = 0
	input.OpenAccess = true

	// No funding needed
	paper, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, input)
	suite.Require().NoError(err)

	suite.True(paper.OpenAccess)
	suite.Equal(uint64(0), paper.ListingFee)
	suite.Equal(uint64(0), accountBalance(suite.T(), suite.db, suite.platform.EscrowAccountID))
}

func (suite *PaperServiceTestSuite) TestCreatePaperPriceFlagConsistency() {
	input := validPaperInput()
	input.OpenAccess = true // price stays nonzero
	_, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, input)
	suite.ErrorIs(err, ErrInvalidPrice)

	input = validPaperInput()
	input.Price = 0 // paywalled but free
	_, err = suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, input)
	suite.ErrorIs(err, ErrInvalidPrice)
}

func (suite *PaperServiceTestSuite) TestCreatePaperFieldBounds() {
	cases := []struct {
		name    string
		mutate  func(*CreatePaperInput)
		wantErr *DomainError
	}{
		{"empty title", func(in *CreatePaperInput) { in.Title = "" }, ErrEmptyTitle},
		{"long title", func(in *CreatePaperInput) { in.Title = strings.Repeat("a", 301) }, ErrTitleTooLong},
		{"empty description", func(in *CreatePaperInput) { in.Description = "" }, ErrEmptyDescription},
		{"long description", func(in *CreatePaperInput) { in.Description = strings.Repeat("a", 501) }, ErrDescriptionTooLong},
		{"empty uri", func(in *CreatePaperInput) { in.URI = "" }, ErrEmptyURI},
		{"long uri", func(in *CreatePaperInput) { in.URI = strings.Repeat("a", 67) }, ErrURITooLong},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			input := validPaperInput()
			tc.mutate(&input)
			_, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, input)
			suite.ErrorIs(err, tc.wantErr)
		})
	}
}

func (suite *PaperServiceTestSuite) TestCreatePaperBoundaryLengthsAccepted() {
	fundUser(suite.T(), suite.db, suite.ledger, suite.researcher.ID, 100_000)

	input := validPaperInput()
	input.Title = strings.Repeat("t", 300)
	input.Description = strings.Repeat("d", 500)
	input.URI = strings.Repeat("u", 66)

	_, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, input)
	suite.NoError(err)
}

func (suite *PaperServiceTestSuite) TestCreatePaperUnknownPlatform() {
	stranger := createTestUser(suite.T(), suite.db, models.UserTypeResearcher)
	_, err := suite.service.CreatePaper(stranger.ID, stranger.ID, validPaperInput())
	suite.ErrorIs(err, ErrPlatformNotFound)
}

func (suite *PaperServiceTestSuite) TestSearchPapers() {
	fundUser(suite.T(), suite.db, suite.ledger, suite.researcher.ID, 1_000_000)

	paywalled := validPaperInput()
	_, err := suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, paywalled)
	suite.Require().NoError(err)

	open := validPaperInput()
	open.Title = "Open Dataset Survey"
	open.Price = 0
	open.OpenAccess = true
	_, err = suite.service.CreatePaper(suite.researcher.ID, suite.platform.ID, open)
	suite.Require().NoError(err)

	params := utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}

	result, err := suite.service.SearchPapers(params, PaperFilters{})
	suite.Require().NoError(err)
	suite.Equal(int64(2), result.Total)

	openOnly := true
	result, err = suite.service.SearchPapers(params, PaperFilters{OpenAccess: &openOnly})
	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)

	params.Search = "Dataset"
	result, err = suite.service.SearchPapers(params, PaperFilters{})
	suite.Require().NoError(err)
	suite.Equal(int64(1), result.Total)
}

func TestPaperServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaperServiceTestSuite))
}
