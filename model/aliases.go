package model

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

type (
	OrgUUID         = string
	ProjectUUID     = string
	PhaseUUID       = string
	SprintUUID      = string
	FolderUUID      = string
	DocumentUUID    = string
	UserUUID        = string
	AccessEntryUUID = string
	ActivityUUID    = string

	UnixTime = memdb.UnixTime
)

// ResourceType values double as memdb table names.
const (
	OrganizationType = "organization"
	ProjectType      = "project"
	PhaseType        = "phase"
	SprintType       = "sprint"
	FolderType       = "folder"
	DocumentType     = "document"
	AccessEntryType  = "access_entry"
	ActivityType     = "activity"
)
