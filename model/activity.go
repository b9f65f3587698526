package model

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

// Activity actions; dotted <category>.<verb> notation.
const (
	ActionCreate       = "resource.create"
	ActionUpdate       = "resource.update"
	ActionDelete       = "resource.delete"
	ActionRestore      = "resource.restore"
	ActionStatusChange = "resource.status_change"
	ActionAccessGrant  = "access.grant"
	ActionAccessRevoke = "access.revoke"
	ActionBulkGrant    = "access.bulk_grant"
)

type ActivityCategory string

const (
	CategoryData   ActivityCategory = "data"
	CategoryAccess ActivityCategory = "access"
	CategoryAdmin  ActivityCategory = "admin"
)

type ActivitySeverity string

const (
	SeverityInfo     ActivitySeverity = "info"
	SeverityWarning  ActivitySeverity = "warning"
	SeverityCritical ActivitySeverity = "critical"
)

// ChangeSnapshot is an optional before/after pair attached to an entry.
type ChangeSnapshot struct {
	Before map[string]interface{} `json:"before,omitempty"`
	After  map[string]interface{} `json:"after,omitempty"`
}

// ActivityEntry is an append-only audit record, logically partitioned by
// organization. The core only writes entries; querying them is an external
// concern.
type ActivityEntry struct {
	memdb.ArchiveMark

	UUID         ActivityUUID     `json:"uuid"` // PK
	OrgUUID      OrgUUID          `json:"org_uuid"`
	UserUUID     UserUUID         `json:"user_uuid"`
	Action       string           `json:"action"`
	ResourceType string           `json:"resource_type"`
	ResourceUUID string           `json:"resource_uuid"`
	ResourceName string           `json:"resource_name"`
	Category     ActivityCategory `json:"category"`
	Severity     ActivitySeverity `json:"severity"`
	Details      string           `json:"details"`
	Changes      *ChangeSnapshot  `json:"changes,omitempty"`
	CreatedAt    UnixTime         `json:"created_at"`
}

func (a *ActivityEntry) ObjType() string {
	return ActivityType
}

func (a *ActivityEntry) ObjId() string {
	return a.UUID
}
