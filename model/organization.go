package model

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

// Organization is the tenant boundary: every other record carries a
// mandatory reference to exactly one organization.
type Organization struct {
	memdb.ArchiveMark

	UUID       OrgUUID `json:"uuid"` // PK
	Version    string  `json:"resource_version"`
	Identifier string  `json:"identifier"`
	Name       string  `json:"name"`
}

func (o *Organization) ObjType() string {
	return OrganizationType
}

func (o *Organization) ObjId() string {
	return o.UUID
}
