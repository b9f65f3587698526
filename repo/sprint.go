package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func SprintSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.SprintType: {
				Name: model.SprintType,
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
					PhaseForeignPK: {
						Name:         PhaseForeignPK,
						AllowMissing: true,
						Indexer:      &hcmemdb.StringFieldIndex{Field: "PhaseUUID", Lowercase: true},
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
			model.SprintType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "ProjectUUID", RelatedDataType: model.ProjectType, RelatedDataTypeFieldIndexName: PK},
			},
		},
	}
}

type SprintRepository struct {
	db *io.MemoryStoreTxn
}

func NewSprintRepository(tx *io.MemoryStoreTxn) *SprintRepository {
	return &SprintRepository{db: tx}
}

func (r *SprintRepository) save(sprint *model.Sprint) error {
	return r.db.Insert(model.SprintType, sprint)
}

func (r *SprintRepository) Create(sprint *model.Sprint) error {
	return r.save(sprint)
}

func (r *SprintRepository) GetByID(id model.SprintUUID) (*model.Sprint, error) {
	raw, err := r.db.First(model.SprintType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.Sprint), nil
}

func (r *SprintRepository) Update(sprint *model.Sprint) error {
	stored, err := r.GetByID(sprint.UUID)
	if err != nil {
		return err
	}
	if stored.OrgUUID != sprint.OrgUUID {
		return consts.ErrWrongOrg
	}
	return r.save(sprint)
}

func (r *SprintRepository) Delete(id model.SprintUUID, archiveMark memdb.ArchiveMark) error {
	sprint, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if sprint.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.Archive(model.SprintType, sprint, archiveMark)
}

func (r *SprintRepository) Restore(id model.SprintUUID) (*model.Sprint, error) {
	sprint, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sprint.NotArchived() {
		return nil, consts.ErrIsNotArchived
	}
	if err := r.db.Restore(model.SprintType, sprint); err != nil {
		return nil, err
	}
	return sprint, nil
}

func (r *SprintRepository) List(orgUUID model.OrgUUID, showArchived bool) ([]*model.Sprint, error) {
	return r.listByIndex(OrgForeignPK, orgUUID, showArchived)
}

func (r *SprintRepository) ListByProject(projectUUID model.ProjectUUID, showArchived bool) ([]*model.Sprint, error) {
	return r.listByIndex(ProjectForeignPK, projectUUID, showArchived)
}

func (r *SprintRepository) ListByPhase(phaseUUID model.PhaseUUID, showArchived bool) ([]*model.Sprint, error) {
	return r.listByIndex(PhaseForeignPK, phaseUUID, showArchived)
}

// ListChildren returns the live sub-sprints of the given sprint.
func (r *SprintRepository) ListChildren(parentUUID model.SprintUUID) ([]*model.Sprint, error) {
	return r.listByIndex(ParentIndex, parentUUID, false)
}

func (r *SprintRepository) listByIndex(index, value string, showArchived bool) ([]*model.Sprint, error) {
	iter, err := r.db.Get(model.SprintType, index, value)
	if err != nil {
		return nil, err
	}
	list := []*model.Sprint{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Sprint)
		if showArchived || obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}

// NextSerialNumber allocates the sprint serial within the project.
func (r *SprintRepository) NextSerialNumber(projectUUID model.ProjectUUID) (string, error) {
	return nextSerialNumber(r.db, model.SprintType, SprintSerialPrefix, ProjectForeignPK, projectUUID)
}
