package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func DocumentSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.DocumentType: {
				Name: model.DocumentType,
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
					FolderForeignPK: {
						Name:    FolderForeignPK,
						Indexer: &hcmemdb.StringFieldIndex{Field: "FolderUUID", Lowercase: true},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.DocumentType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
				{OriginalDataTypeFieldName: "FolderUUID", RelatedDataType: model.FolderType, RelatedDataTypeFieldIndexName: PK},
			},
		},
	}
}

type DocumentRepository struct {
	db *io.MemoryStoreTxn
}

func NewDocumentRepository(tx *io.MemoryStoreTxn) *DocumentRepository {
	return &DocumentRepository{db: tx}
}

func (r *DocumentRepository) save(document *model.Document) error {
	return r.db.Insert(model.DocumentType, document)
}

func (r *DocumentRepository) Create(document *model.Document) error {
	return r.save(document)
}

func (r *DocumentRepository) GetByID(id model.DocumentUUID) (*model.Document, error) {
	raw, err := r.db.First(model.DocumentType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.Document), nil
}

func (r *DocumentRepository) Update(document *model.Document) error {
	stored, err := r.GetByID(document.UUID)
	if err != nil {
		return err
	}
	if stored.OrgUUID != document.OrgUUID {
		return consts.ErrWrongOrg
	}
	return r.save(document)
}

func (r *DocumentRepository) Delete(id model.DocumentUUID, archiveMark memdb.ArchiveMark) error {
	document, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if document.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.Archive(model.DocumentType, document, archiveMark)
}

func (r *DocumentRepository) Restore(id model.DocumentUUID) (*model.Document, error) {
	document, err := r.GetByID(id)
	if err != nil {
		return nil, err
	}
	if document.NotArchived() {
		return nil, consts.ErrIsNotArchived
	}
	if err := r.db.Restore(model.DocumentType, document); err != nil {
		return nil, err
	}
	return document, nil
}

func (r *DocumentRepository) List(orgUUID model.OrgUUID, showArchived bool) ([]*model.Document, error) {
	return r.listByIndex(OrgForeignPK, orgUUID, showArchived)
}

// ListByFolder returns the documents stored directly in the given folder.
func (r *DocumentRepository) ListByFolder(folderUUID model.FolderUUID, showArchived bool) ([]*model.Document, error) {
	return r.listByIndex(FolderForeignPK, folderUUID, showArchived)
}

func (r *DocumentRepository) listByIndex(index, value string, showArchived bool) ([]*model.Document, error) {
	iter, err := r.db.Get(model.DocumentType, index, value)
	if err != nil {
		return nil, err
	}
	list := []*model.Document{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		obj := raw.(*model.Document)
		if showArchived || obj.NotArchived() {
			list = append(list, obj)
		}
	}
	return list, nil
}

// NextSerialNumber allocates the document serial within the folder.
func (r *DocumentRepository) NextSerialNumber(folderUUID model.FolderUUID) (string, error) {
	return nextSerialNumber(r.db, model.DocumentType, DocumentSerialPrefix, FolderForeignPK, folderUUID)
}
