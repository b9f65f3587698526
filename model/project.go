package model

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

type Project struct {
	memdb.ArchiveMark
	Hierarchy

	UUID         ProjectUUID `json:"uuid"` // PK
	OrgUUID      OrgUUID     `json:"org_uuid"`
	Version      string      `json:"resource_version"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	SerialNumber string      `json:"serial_number"`

	OwnerUUID UserUUID `json:"owner_uuid"`
	Members   []Member `json:"members"`

	IsActive  bool     `json:"is_active"`
	DeletedBy UserUUID `json:"deleted_by"`

	Statistics ProjectStatistics `json:"statistics"`
}

func (p *Project) ObjType() string {
	return ProjectType
}

func (p *Project) ObjId() string {
	return p.UUID
}

func (p *Project) Org() OrgUUID {
	return p.OrgUUID
}

func (p *Project) Owner() UserUUID {
	return p.OwnerUUID
}

func (p *Project) AssignedMembers() []Member {
	return p.Members
}
