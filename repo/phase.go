package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func PhaseSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.PhaseType: {
				Name: model.PhaseType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					OrgForeignPK: {
						Name:    OrgForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{Field: "OrgUUID", Lowercase: true},
					},
					ProjectForeignPK: {
						Name:    ProjectForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{Field: "ProjectUUID", Lowercase: true},
					},
					ParentIndex: {
						Name:         ParentIndex,
						AllowMissing: true,
						Indexer:      &hcmemdb.StringFieldIndex{Field: "ParentUUID", Lowercase: true},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.PhaseType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "ProjectUUID", RelatedDataType: model.ProjectType, RelatedDataTypeFieldIndexName: PK},
			},
		},
	}
}

type PhaseRepository struct {
	db *io.MemoryStoreTxn
}

func NewPhaseRepository(tx *io.MemoryStoreTxn) *PhaseRepository {
	return &PhaseRepository{db: tx}
}

func (r *PhaseRepository) save(phase *model.Phase) error {
	return r.db.Insert(model.PhaseType, phase)
}

func (r *PhaseRepository) Create(phase *model.Phase) error {
	return r.save(phase)
}

func (r *PhaseRepository) GetByID(id model.PhaseUUID) (*model.Phase, error) {
	raw, err := r.db.First(model.PhaseType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.Phase), nil
}

func (r *PhaseRepository) Update(phase *model.Phase) error {
	stored, err := r.GetByID(phase.UUID)
	if err != nil {
		return err
	}
	if stored.OrgUUID != phase.OrgUUID {
		return consts.ErrWrongOrg
	}
	return r.save(phase)
}

func (r *PhaseRepository) Delete(id model.PhaseUUID, archiveMark memdb.ArchiveMark) error {
	phase, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if phase.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.Archive(model.PhaseType, phase, archiveMark)
}

func (r *PhaseRepository) Restore(id model.PhaseUUID) (*model.Phase, error) {
	phase, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if phase.NotArchived() {
		return nil, consts.ErrIsNotArchived
	}
	if err := r.db.Restore(model.PhaseType, phase); err != nil {
		return nil, err
	}
	return phase, nil
}

func (r *PhaseRepository) List(orgUUID model.OrgUUID, showArchived bool) ([]*model.Phase, error) {
	return r.listByIndex(OrgForeignPK, orgUUID, showArchived)
}

// ListByProject returns the phases attached to the given project.
func (r *PhaseRepository) ListByProject(projectUUID model.ProjectUUID, showArchived bool) ([]*model.Phase, error) {
	return r.listByIndex(ProjectForeignPK, projectUUID, showArchived)
}

// ListChildren returns the live sub-phases of the given phase.
func (r *PhaseRepository) ListChildren(parentUUID model.PhaseUUID) ([]*model.Phase, error) {
	return r.listByIndex(ParentIndex, parentUUID, false)
}

func (r *PhaseRepository) listByIndex(index, value string, showArchived bool) ([]*model.Phase, error) {
	iter, err := r.db.Get(model.PhaseType, index, value)
	if err != nil {
		return nil, err
	}
	list := []*model.Phase{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Phase)
		if showArchived || obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}

// NextSerialNumber allocates the phase serial within the project.
func (r *PhaseRepository) NextSerialNumber(projectUUID model.ProjectUUID) (string, error) {
	return nextSerialNumber(r.db, model.PhaseType, PhaseSerialPrefix, ProjectForeignPK, projectUUID)
}
