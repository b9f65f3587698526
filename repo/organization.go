package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func OrganizationSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.OrganizationType: {
				Name: model.OrganizationType,
				Indexes: map[string]*hcmemdb.IndexSchema{
					PK: {
						Name:    PK,
						Unique:  true,
						Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
					},
					"identifier": {
						Name:    "identifier",
						Indexer: &hcmemdb.StringFieldIndex{Field: "Identifier", Lowercase: true},
					},
				},
			},
		},
		// archiving an organization takes its whole content with it
		CascadeDeletes: map[string][]memdb.Relation{
			model.OrganizationType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.ProjectType, RelatedDataTypeFieldIndexName: OrgForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.PhaseType, RelatedDataTypeFieldIndexName: OrgForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.SprintType, RelatedDataTypeFieldIndexName: OrgForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.FolderType, RelatedDataTypeFieldIndexName: OrgForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.DocumentType, RelatedDataTypeFieldIndexName: OrgForeignPK},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: model.AccessEntryType, RelatedDataTypeFieldIndexName: OrgForeignPK},
			},
		},
		UniqueConstraints: map[string][]string{
			model.OrganizationType: {"identifier"},
		},
	}
}

type OrganizationRepository struct {
	db *io.MemoryStoreTxn // called "db" not to provoke transaction semantics
}

func NewOrganizationRepository(tx *io.MemoryStoreTxn) *OrganizationRepository {
	return &OrganizationRepository{db: tx}
}

func (r *OrganizationRepository) save(org *model.Organization) error {
	return r.db.Insert(model.OrganizationType, org)
}

func (r *OrganizationRepository) Create(org *model.Organization) error {
	return r.save(org)
}

func (r *OrganizationRepository) GetByID(id model.OrgUUID) (*model.Organization, error) {
	raw, err := r.db.First(model.OrganizationType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.Organization), nil
}

func (r *OrganizationRepository) Update(org *model.Organization) error {
	_, err := r.GetByID(org.UUID)
	if err != nil {
		return err
	}
	return r.save(org)
}

// Delete archives the organization together with every record under it.
func (r *OrganizationRepository) Delete(id model.OrgUUID, archiveMark memdb.ArchiveMark) error {
	org, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if org.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.CascadeArchive(model.OrganizationType, org, archiveMark)
}

// Restore revives the organization and the records archived with it.
func (r *OrganizationRepository) Restore(id model.OrgUUID) (*model.Organization, error) {
	org, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if org.NotArchived() {
		return nil, consts.ErrIsNotArchived
	}
	if err := r.db.CascadeRestore(model.OrganizationType, org); err != nil {
		return nil, err
	}
	return org, nil
}

func (r *OrganizationRepository) List(showArchived bool) ([]*model.Organization, error) {
	iter, err := r.db.Get(model.OrganizationType, PK)
	if err != nil {
		return nil, err
	}
	list := []*model.Organization{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Organization)
		if showArchived || obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}
