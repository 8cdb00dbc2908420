// internal/models/platform.go
package models

import (
	"github.com/google/uuid"
)

// Platform is the singleton marketplace configuration for one operator.
// The fee rate is fixed at creation; there is no update path.
type Platform struct {
	BaseModel
	OperatorID      uuid.UUID `json:"operator_id" gorm:"type:uuid;not null;uniqueIndex"`
	Name            string    `json:"name" gorm:"size:32;not null"`
	FeeBps          uint16    `json:"fee_bps" gorm:"not null"`
	EscrowAccountID uuid.UUID `json:"escrow_account_id" gorm:"type:uuid;not null"`

	// Relationships
	Operator      User    `json:"operator,omitempty" gorm:"foreignKey:OperatorID"`
	EscrowAccount Account `json:"escrow_account,omitempty" gorm:"foreignKey:EscrowAccountID"`
}
