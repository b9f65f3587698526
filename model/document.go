package model

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

type Document struct {
	memdb.ArchiveMark

	UUID         DocumentUUID `json:"uuid"` // PK
	OrgUUID      OrgUUID      `json:"org_uuid"`
	FolderUUID   FolderUUID   `json:"folder_uuid"`
	Version      string       `json:"resource_version"`
	Name         string       `json:"name"`
	Slug         string       `json:"slug"`
	SerialNumber string       `json:"serial_number"`
	Size         int64        `json:"size"`

	OwnerUUID UserUUID `json:"owner_uuid"`
	DeletedBy UserUUID `json:"deleted_by"`
}

func (d *Document) ObjType() string {
	return DocumentType
}

func (d *Document) ObjId() string {
	return d.UUID
}
