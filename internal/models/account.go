// internal/models/account.go
package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is a value-holding ledger entry denominated in the smallest unit.
// User accounts belong to a user; the escrow account belongs to a platform
// and only moves under the operator's authority.
type Account struct {
	BaseModel
	OwnerID uuid.UUID   `json:"owner_id" gorm:"type:uuid;not null;uniqueIndex:idx_accounts_owner_kind"`
	Kind    AccountKind `json:"kind" gorm:"type:varchar(20);not null;uniqueIndex:idx_accounts_owner_kind"`
	Balance uint64      `json:"balance" gorm:"not null;default:0"`
}

type Deposit struct {
	BaseModel
	UserID           uuid.UUID     `json:"user_id" gorm:"type:uuid;not null;index"`
	AccountID        uuid.UUID     `json:"account_id" gorm:"type:uuid;not null;index"`
	Amount           uint64        `json:"amount" gorm:"not null"`
	Currency         string        `json:"currency" gorm:"size:10;default:'usd'"`
	PaymentReference string        `json:"payment_reference" gorm:"size:255;index"`
	Status           DepositStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	ProcessedAt      *time.Time    `json:"processed_at"`

	// Relationships
	User    User    `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Account Account `json:"account,omitempty" gorm:"foreignKey:AccountID"`
}
