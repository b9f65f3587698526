package repo

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/utils"
)

const (
	// PK is the alias for "id". Index "id" is required by all tables.
	PK = "id"

	// OrgForeignPK indexes records by their organization.
	OrgForeignPK = "org_uuid"

	// ParentIndex indexes hierarchical records by their same-type parent.
	ParentIndex = "parent_uuid"

	// Container foreign keys.
	ProjectForeignPK = "project_uuid"
	PhaseForeignPK   = "phase_uuid"
	SprintForeignPK  = "sprint_uuid"
	FolderForeignPK  = "folder_uuid"
)

// GetSchema merges the per-entity partial schemas into the store schema.
func GetSchema() (*memdb.DBSchema, error) {
	return memdb.MergeDBSchemas(
		OrganizationSchema(),
		ProjectSchema(),
		PhaseSchema(),
		SprintSchema(),
		FolderSchema(),
		DocumentSchema(),
		AccessEntrySchema(),
		ActivitySchema(),
	)
}

// NewResourceVersion issues the next value for optimistic-lock checks.
func NewResourceVersion() string {
	return utils.UUID()
}
