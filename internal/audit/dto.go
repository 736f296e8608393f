package audit

import (
	"time"

	"github.com/Ivnfdzz/PickNPlay-sub000/pkg/enums"
	"github.com/google/uuid"
)

// RecordInput describes one action to append to the trail.
type RecordInput struct {
	ActorID    uuid.UUID
	Action     enums.AuditAction
	TargetKind enums.EntityKind
	TargetID   *uuid.UUID
}

// QueryFilters narrows the audit listing. Nil fields are ignored.
type QueryFilters struct {
	ActorID    *uuid.UUID
	Action     *enums.AuditAction
	TargetKind *enums.EntityKind
	TargetID   *uuid.UUID
	Since      *time.Time
	Limit      int
}

// EntryView is an audit entry with display labels resolved. When the
// referenced actor or target has been deleted since the entry was
// written, the label degrades to a fallback that keeps the original id.
type EntryView struct {
	ID          uuid.UUID         `json:"id"`
	ActorID     uuid.UUID         `json:"actor_id"`
	ActorLabel  string            `json:"actor_label"`
	Action      enums.AuditAction `json:"action"`
	TargetKind  enums.EntityKind  `json:"target_kind"`
	TargetID    *uuid.UUID        `json:"target_id,omitempty"`
	TargetLabel string            `json:"target_label,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// ActorCount is one row of the per-actor activity ranking.
type ActorCount struct {
	ActorID uuid.UUID `json:"actor_id"`
	Label   string    `json:"label"`
	Count   int       `json:"count"`
}

// Summary aggregates the most recent slice of the trail.
type Summary struct {
	Window       int            `json:"window"`
	TotalEntries int            `json:"total_entries"`
	ByAction     map[string]int `json:"by_action"`
	ByTargetKind map[string]int `json:"by_target_kind"`
	ByActor      []ActorCount   `json:"by_actor"`
	Recent       []EntryView    `json:"recent"`
}
