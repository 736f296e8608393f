package models

import (
	"time"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/google/uuid"
)

// AuditLogEntry is one append-only row in the catalog audit trail.
// ActorID and TargetID are plain columns, not foreign keys: the entry
// must outlive the referenced user or product, keeping the original
// ids renderable as fallback labels after a delete.
type AuditLogEntry struct {
	ID         uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ActorID    uuid.UUID         `gorm:"column:actor_id;type:uuid;not null;index"`
	Action     enums.AuditAction `gorm:"column:action;not null;index"`
	TargetKind enums.EntityKind  `gorm:"column:target_kind;not null"`
	TargetID   *uuid.UUID        `gorm:"column:target_id;type:uuid;index"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime;index"`
}
