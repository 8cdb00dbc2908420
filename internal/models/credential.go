// internal/models/credential.go
package models

import (
	"github.com/google/uuid"
)

// Credential is the non-transferable, supply-1 proof of access bound to
// exactly one PaperAccessPass. The unique index on PassID enforces
// one-mint-per-pass at the storage layer.
type Credential struct {
	BaseModel
	PassID          uuid.UUID `json:"pass_id" gorm:"type:uuid;not null;uniqueIndex"`
	OwnerID         uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	AuthorityID     uuid.UUID `json:"authority_id" gorm:"type:uuid;not null"` // minting platform
	MintAddress     string    `json:"mint_address" gorm:"size:66;not null;uniqueIndex"`
	Name            string    `json:"name" gorm:"size:255"`
	Symbol          string    `json:"symbol" gorm:"size:16"`
	URI             string    `json:"uri" gorm:"size:255;not null"`
	Supply          uint32    `json:"supply" gorm:"not null;default:1"`
	RoyaltyBps      uint16    `json:"royalty_bps" gorm:"not null;default:0"`
	NonTransferable bool      `json:"non_transferable" gorm:"not null;default:true"`
	SupplyLocked    bool      `json:"supply_locked" gorm:"not null;default:false"`

	// Relationships
	Owner     User     `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Authority Platform `json:"authority,omitempty" gorm:"foreignKey:AuthorityID"`
}
