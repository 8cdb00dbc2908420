// internal/models/event.go
package models

import (
	"github.com/google/uuid"
)

// PlatformEvent records listing/pass/credential notifications. Informational
// only; never read back by the core rules.
type PlatformEvent struct {
	BaseModel
	Type       EventType  `json:"type" gorm:"type:varchar(40);not null;index"`
	PlatformID *uuid.UUID `json:"platform_id" gorm:"type:uuid;index"`
	ActorID    *uuid.UUID `json:"actor_id" gorm:"type:uuid;index"`
	ResourceID *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	Data       JSONB      `json:"data" gorm:"type:jsonb"`
}

type AuditLog struct {
	BaseModel
	UserID       *uuid.UUID `json:"user_id" gorm:"type:uuid;index"`
	Action       string     `json:"action" gorm:"size:100;not null;index"`
	ResourceType string     `json:"resource_type" gorm:"size:50;not null;index"`
	ResourceID   *uuid.UUID `json:"resource_id" gorm:"type:uuid;index"`
	NewValues    JSONB      `json:"new_values" gorm:"type:jsonb"`
	IPAddress    string     `json:"ip_address" gorm:"size:45"`
	UserAgent    string     `json:"user_agent" gorm:"type:text"`

	// Relationships
	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
