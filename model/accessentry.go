package model

import (
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

// AccessType records how a grant came to be: requested explicitly, or
// derived from a grant on the resource's immediate parent at creation time.
// The classification is one-time, it is never re-evaluated later.
type AccessType string

const (
	AccessDirect    AccessType = "direct"
	AccessInherited AccessType = "inherited"
)

// AccessEntry is a single permission grant. The natural identity is
// (org, user, resource type, resource id); it is enforced as a unique
// constraint among unarchived rows.
type AccessEntry struct {
	memdb.ArchiveMark

	UUID         AccessEntryUUID `json:"uuid"` // PK
	OrgUUID      OrgUUID         `json:"org_uuid"`
	UserUUID     UserUUID        `json:"user_uuid"`
	ResourceType string          `json:"resource_type"`
	ResourceUUID string          `json:"resource_uuid"`

	Permission PermissionLevel `json:"permission"`
	GrantedBy  UserUUID        `json:"granted_by"`
	GrantedAt  UnixTime        `json:"granted_at"`

	AccessType        AccessType `json:"access_type"`
	InheritedFromType string     `json:"inherited_from_type,omitempty"`
	InheritedFromUUID string     `json:"inherited_from_uuid,omitempty"`

	Active    bool     `json:"active"`
	ExpiresAt UnixTime `json:"expires_at"` // 0 means never

	RevokedBy        UserUUID `json:"revoked_by,omitempty"`
	RevokedAt        UnixTime `json:"revoked_at,omitempty"`
	RevocationReason string   `json:"revocation_reason,omitempty"`
}

func (e *AccessEntry) ObjType() string {
	return AccessEntryType
}

func (e *AccessEntry) ObjId() string {
	return e.UUID
}

// Expired reports whether the entry has an expiry in the past.
func (e *AccessEntry) Expired(now UnixTime) bool {
	return e.ExpiresAt != 0 && e.ExpiresAt <= now
}

// HasPermission reports whether the entry currently satisfies the required
// level: inactive or expired entries never do.
func (e *AccessEntry) HasPermission(required PermissionLevel) bool {
	if !e.Active || e.Archived() || e.Expired(time.Now().Unix()) {
		return false
	}
	return e.Permission.Covers(required)
}

// Revoke soft-disables the entry, keeping the row for audit.
func (e *AccessEntry) Revoke(revokedBy UserUUID, reason string) {
	e.Active = false
	e.RevokedBy = revokedBy
	e.RevokedAt = time.Now().Unix()
	e.RevocationReason = reason
}
