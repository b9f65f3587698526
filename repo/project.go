package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const orgSlugIndex = "org_slug"

func ProjectSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.ProjectType: {
				Name: model.ProjectType,
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
					ParentIndex: {
						Name:         ParentIndex,
						AllowMissing: true,
						Indexer:      &hcmemdb.StringFieldIndex{Field: "ParentUUID", Lowercase: true},
					},
					orgSlugIndex: {
						Name: orgSlugIndex,
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "OrgUUID", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "Slug", Lowercase: true},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.ProjectType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.ProjectType: {orgSlugIndex},
		},
	}
}

type ProjectRepository struct {
	db *io.MemoryStoreTxn
}

func NewProjectRepository(tx *io.MemoryStoreTxn) *ProjectRepository {
	return &ProjectRepository{db: tx}
}

func (r *ProjectRepository) save(project *model.Project) error {
	return r.db.Insert(model.ProjectType, project)
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.save(project)
}

func (r *ProjectRepository) GetRawByID(id model.ProjectUUID) (interface{}, error) {
	raw, err := r.db.First(model.ProjectType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw, nil
}

func (r *ProjectRepository) GetByID(id model.ProjectUUID) (*model.Project, error) {
	raw, err := r.GetRawByID(id)
	if err != nil {
		return nil, err
	}
	return raw.(*model.Project), nil
}

func (r *ProjectRepository) Update(project *model.Project) error {
	stored, err := r.GetByID(project.UUID)
	if err != nil {
		return err
	}
	if stored.OrgUUID != project.OrgUUID {
		return consts.ErrWrongOrg
	}
	return r.save(project)
}

func (r *ProjectRepository) Delete(id model.ProjectUUID, archiveMark memdb.ArchiveMark) error {
	project, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if project.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.Archive(model.ProjectType, project, archiveMark)
}

func (r *ProjectRepository) Restore(id model.ProjectUUID) (*model.Project, error) {
	project, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.NotArchived() {
		return nil, consts.ErrIsNotArchived
	}
	if err := r.db.Restore(model.ProjectType, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (r *ProjectRepository) List(orgUUID model.OrgUUID, showArchived bool) ([]*model.Project, error) {
	iter, err := r.db.Get(model.ProjectType, OrgForeignPK, orgUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.Project{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Project)
		if showArchived || obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}

func (r *ProjectRepository) ListIDs(orgUUID model.OrgUUID, showArchived bool) ([]model.ProjectUUID, error) {
	objs, err := r.List(orgUUID, showArchived)
	if err != nil {
		return nil, err
	}
	ids := make([]model.ProjectUUID, 0, len(objs))
	for _, obj := range objs {
		ids = append(ids, obj.UUID)
	}
	return ids, nil
}

// ListChildren returns the live sub-projects of the given project.
func (r *ProjectRepository) ListChildren(parentUUID model.ProjectUUID) ([]*model.Project, error) {
	iter, err := r.db.Get(model.ProjectType, ParentIndex, parentUUID)
	if err != nil {
		return nil, err
	}
	list := []*model.Project{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Project)
		if obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}

// NextSerialNumber allocates the project serial within the organization.
func (r *ProjectRepository) NextSerialNumber(orgUUID model.OrgUUID) (string, error) {
	return nextSerialNumber(r.db, model.ProjectType, ProjectSerialPrefix, OrgForeignPK, orgUUID)
}

func (r *ProjectRepository) Iter(action func(*model.Project) (bool, error)) error {
	iter, err := r.db.Get(model.ProjectType, PK)
	if err != nil {
		return err
	}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		next, err := action(raw.(*model.Project))
		if err != nil {
			return err
		}
		if !next {
			break
		}
	}
	return nil
}
