// internal/services/testutil_test.go
package services

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jenny07007/deserhub-backend/internal/config"
	"github.com/jenny07007/deserhub-backend/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.User{},
		&models.Account{},
		&models.Deposit{},
		&models.Platform{},
		&models.PaperEntry{},
		&models.PaperAccessPass{},
		&models.Credential{},
		&models.PlatformEvent{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	return db
}

func testPlatformConfig() *config.PlatformConfig {
	return &config.PlatformConfig{
		FeeCapBps:   500,
		MinWithdraw: 50_000_000_000,
	}
}

var userSeq int

func createTestUser(t *testing.T, db *gorm.DB, userType models.UserType) *models.User {
	t.Helper()

	userSeq++
	user := &models.User{
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		UserType: userType,
		Status:   models.UserStatusActive,
	}
	require.NoError(t, user.SetPassword("TestPass123!"))
	require.NoError(t, db.Create(user).Error)
	return user
}

func fundUser(t *testing.T, db *gorm.DB, ledger *LedgerService, userID uuid.UUID, amount uint64) *models.Account {
	t.Helper()

	account, err := ledger.GetOrCreateAccount(db, userID, models.AccountKindUser)
	require.NoError(t, err)
	if amount > 0 {
		require.NoError(t, ledger.Credit(db, account.ID, amount))
	}
	account, err = ledger.AccountByID(db, account.ID)
	require.NoError(t, err)
	return account
}

func accountBalance(t *testing.T, db *gorm.DB, accountID uuid.UUID) uint64 {
	t.Helper()

	var account models.Account
	require.NoError(t, db.First(&account, "id = ?", accountID).Error)
	return account.Balance
}
