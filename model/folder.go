package model

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

// Folder hangs off exactly one container (project, phase or sprint) and may
// additionally nest under a parent folder.
type Folder struct {
	memdb.ArchiveMark
	Hierarchy

	UUID         FolderUUID  `json:"uuid"` // PK
	OrgUUID      OrgUUID     `json:"org_uuid"`
	ProjectUUID  ProjectUUID `json:"project_uuid"` // container, optional
	PhaseUUID    PhaseUUID   `json:"phase_uuid"`   // container, optional
	SprintUUID   SprintUUID  `json:"sprint_uuid"`  // container, optional
	Version      string      `json:"resource_version"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	SerialNumber string      `json:"serial_number"`

	OwnerUUID UserUUID `json:"owner_uuid"`
	Members   []Member `json:"members"`

	IsActive  bool     `json:"is_active"`
	DeletedBy UserUUID `json:"deleted_by"`

	Statistics FolderStatistics `json:"statistics"`
}

func (f *Folder) ObjType() string {
	return FolderType
}

func (f *Folder) ObjId() string {
	return f.UUID
}

func (f *Folder) Org() OrgUUID {
	return f.OrgUUID
}

func (f *Folder) Owner() UserUUID {
	return f.OwnerUUID
}

func (f *Folder) AssignedMembers() []Member {
	return f.Members
}

// HasContainer reports whether at least one container reference is set.
func (f *Folder) HasContainer() bool {
	return f.ProjectUUID != "" || f.PhaseUUID != "" || f.SprintUUID != ""
}
