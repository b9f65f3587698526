package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func FolderSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.FolderType: {
				Name: model.FolderType,
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
					// the container references are mutually exclusive, each optional
					ProjectForeignPK: {
						Name:         ProjectForeignPK,
						AllowMissing: true,
						Indexer:      &hcmemdb.StringFieldIndex{Field: "ProjectUUID", Lowercase: true},
					},
					PhaseForeignPK: {
						Name:         PhaseForeignPK,
						AllowMissing: true,
						Indexer:      &hcmemdb.StringFieldIndex{Field: "PhaseUUID", Lowercase: true},
					},
					SprintForeignPK: {
						Name:         SprintForeignPK,
						AllowMissing: true,
						Indexer:      &hcmemdb.StringFieldIndex{Field: "SprintUUID", Lowercase: true},
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
			model.FolderType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
			},
		},
	}
}

type FolderRepository struct {
	db *io.MemoryStoreTxn
}

func NewFolderRepository(tx *io.MemoryStoreTxn) *FolderRepository {
	return &FolderRepository{db: tx}
}

func (r *FolderRepository) save(folder *model.Folder) error {
	return r.db.Insert(model.FolderType, folder)
}

func (r *FolderRepository) Create(folder *model.Folder) error {
	return r.save(folder)
}

func (r *FolderRepository) GetByID(id model.FolderUUID) (*model.Folder, error) {
	raw, err := r.db.First(model.FolderType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.Folder), nil
}

func (r *FolderRepository) Update(folder *model.Folder) error {
	stored, err := r.GetByID(folder.UUID)
	if err != nil {
		return err
	}
	if stored.OrgUUID != folder.OrgUUID {
		return consts.ErrWrongOrg
	}
	return r.save(folder)
}

func (r *FolderRepository) Delete(id model.FolderUUID, archiveMark memdb.ArchiveMark) error {
	folder, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if folder.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.Archive(model.FolderType, folder, archiveMark)
}

func (r *FolderRepository) Restore(id model.FolderUUID) (*model.Folder, error) {
	folder, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if folder.NotArchived() {
		return nil, consts.ErrIsNotArchived
	}
	if err := r.db.Restore(model.FolderType, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (r *FolderRepository) List(orgUUID model.OrgUUID, showArchived bool) ([]*model.Folder, error) {
	return r.listByIndex(OrgForeignPK, orgUUID, showArchived)
}

func (r *FolderRepository) ListByProject(projectUUID model.ProjectUUID, showArchived bool) ([]*model.Folder, error) {
	return r.listByIndex(ProjectForeignPK, projectUUID, showArchived)
}

func (r *FolderRepository) ListByPhase(phaseUUID model.PhaseUUID, showArchived bool) ([]*model.Folder, error) {
	return r.listByIndex(PhaseForeignPK, phaseUUID, showArchived)
}

func (r *FolderRepository) ListBySprint(sprintUUID model.SprintUUID, showArchived bool) ([]*model.Folder, error) {
	return r.listByIndex(SprintForeignPK, sprintUUID, showArchived)
}

// ListChildren returns the live subfolders of the given folder.
func (r *FolderRepository) ListChildren(parentUUID model.FolderUUID) ([]*model.Folder, error) {
	return r.listByIndex(ParentIndex, parentUUID, false)
}

func (r *FolderRepository) listByIndex(index, value string, showArchived bool) ([]*model.Folder, error) {
	iter, err := r.db.Get(model.FolderType, index, value)
	if err != nil {
		return nil, err
	}
	list := []*model.Folder{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Folder)
		if showArchived || obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}

// NextSerialNumber allocates the folder serial within the organization.
func (r *FolderRepository) NextSerialNumber(orgUUID model.OrgUUID) (string, error) {
	return nextSerialNumber(r.db, model.FolderType, FolderSerialPrefix, OrgForeignPK, orgUUID)
}
