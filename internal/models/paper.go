// internal/models/paper.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PaperEntry is a listed paper. Immutable after creation.
type PaperEntry struct {
	BaseModel
	ResearcherID  uuid.UUID      `json:"researcher_id" gorm:"type:uuid;not null;index"`
	PlatformID    uuid.UUID      `json:"platform_id" gorm:"type:uuid;not null;index"`
	Title         string         `json:"title" gorm:"size:300;not null"`
	Description   string         `json:"description" gorm:"size:500;not null"`
	URI           string         `json:"uri" gorm:"size:66;not null"` // encrypted pdf locator
	Price         uint64         `json:"price" gorm:"not null"`
	OpenAccess    bool           `json:"open_access" gorm:"not null;index"`
	ListingFee    uint64         `json:"listing_fee" gorm:"not null;default:0"`
	Tags          pq.StringArray `json:"tags" gorm:"type:text[]"`

	// Relationships
	Researcher User              `json:"researcher,omitempty" gorm:"foreignKey:ResearcherID"`
	Platform   Platform          `json:"platform,omitempty" gorm:"foreignKey:PlatformID"`
	Passes     []PaperAccessPass `json:"passes,omitempty" gorm:"foreignKey:PaperEntryID"`
}

// PaperAccessPass is the purchase receipt for one (reader, paper) pair.
// CredentialID is its only mutable field, written once at mint time.
type PaperAccessPass struct {
	BaseModel
	PaperEntryID uuid.UUID  `json:"paper_entry_id" gorm:"type:uuid;not null;uniqueIndex:idx_passes_reader_paper"`
	ReaderID     uuid.UUID  `json:"reader_id" gorm:"type:uuid;not null;uniqueIndex:idx_passes_reader_paper"`
	PricePaid    uint64     `json:"price_paid" gorm:"not null"`
	PurchasedAt  time.Time  `json:"purchased_at" gorm:"not null"`
	CredentialID *uuid.UUID `json:"credential_id" gorm:"type:uuid"`

	// Relationships
	PaperEntry PaperEntry  `json:"paper_entry,omitempty" gorm:"foreignKey:PaperEntryID"`
	Reader     User        `json:"reader,omitempty" gorm:"foreignKey:ReaderID"`
	Credential *Credential `json:"credential,omitempty" gorm:"foreignKey:CredentialID"`
}
