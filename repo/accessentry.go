package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	identityIndex = "identity"
	resourceIndex = "resource"
	userIndex     = "user"
)

func AccessEntrySchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.AccessEntryType: {
				Name: model.AccessEntryType,
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
					identityIndex: {
						Name: identityIndex,
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "OrgUUID", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "UserUUID", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "ResourceType", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "ResourceUUID", Lowercase: true},
							},
						},
					},
					resourceIndex: {
						Name: resourceIndex,
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "ResourceType", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "ResourceUUID", Lowercase: true},
							},
						},
					},
					userIndex: {
						Name: userIndex,
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "OrgUUID", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "UserUUID", Lowercase: true},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.AccessEntryType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
			},
		},
		// one live grant per (org, user, resource type, resource)
		UniqueConstraints: map[string][]string{
			model.AccessEntryType: {identityIndex},
		},
	}
}

type AccessEntryRepository struct {
	db *io.MemoryStoreTxn
}

func NewAccessEntryRepository(tx *io.MemoryStoreTxn) *AccessEntryRepository {
	return &AccessEntryRepository{db: tx}
}

func (r *AccessEntryRepository) save(entry *model.AccessEntry) error {
	return r.db.Insert(model.AccessEntryType, entry)
}

func (r *AccessEntryRepository) Create(entry *model.AccessEntry) error {
	return r.save(entry)
}

func (r *AccessEntryRepository) GetByID(id model.AccessEntryUUID) (*model.AccessEntry, error) {
	raw, err := r.db.First(model.AccessEntryType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.AccessEntry), nil
}

// GetByIdentity returns the live entry with the natural identity, or
// ErrNotFound when there is none.
func (r *AccessEntryRepository) GetByIdentity(orgUUID model.OrgUUID, userUUID model.UserUUID,
	resourceType, resourceUUID string) (*model.AccessEntry, error) {
	iter, err := r.db.Get(model.AccessEntryType, identityIndex, orgUUID, userUUID, resourceType, resourceUUID)
	if err != nil {
		return nil, err
	}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		entry := raw.(*model.AccessEntry)
		if entry.NotArchived() {
			return entry, nil
		}
	}
	return nil, consts.ErrNotFound
}

func (r *AccessEntryRepository) Update(entry *model.AccessEntry) error {
	stored, err := r.GetByID(entry.UUID)
	if err != nil {
		return err
	}
	if stored.OrgUUID != entry.OrgUUID {
		return consts.ErrWrongOrg
	}
	return r.save(entry)
}

func (r *AccessEntryRepository) Delete(id model.AccessEntryUUID, archiveMark memdb.ArchiveMark) error {
	entry, err := r.GetByID(id)
	if err != nil {
		return err
	}
	if entry.Archived() {
		return consts.ErrIsArchived
	}
	return r.db.Archive(model.AccessEntryType, entry, archiveMark)
}

// ListByResource returns the entries attached to one resource.
func (r *AccessEntryRepository) ListByResource(resourceType, resourceUUID string, showArchived bool) ([]*model.AccessEntry, error) {
	iter, err := r.db.Get(model.AccessEntryType, resourceIndex, resourceType, resourceUUID)
	if err != nil {
		return nil, err
	}
	return collectEntries(iter, showArchived), nil
}

// ListByUser returns the entries a user holds across the organization.
func (r *AccessEntryRepository) ListByUser(orgUUID model.OrgUUID, userUUID model.UserUUID, showArchived bool) ([]*model.AccessEntry, error) {
	iter, err := r.db.Get(model.AccessEntryType, userIndex, orgUUID, userUUID)
	if err != nil {
		return nil, err
	}
	return collectEntries(iter, showArchived), nil
}

func (r *AccessEntryRepository) List(orgUUID model.OrgUUID, showArchived bool) ([]*model.AccessEntry, error) {
	iter, err := r.db.Get(model.AccessEntryType, OrgForeignPK, orgUUID)
	if err != nil {
		return nil, err
	}
	return collectEntries(iter, showArchived), nil
}

func collectEntries(iter hcmemdb.ResultIterator, showArchived bool) []*model.AccessEntry {
	list := []*model.AccessEntry{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		entry := raw.(*model.AccessEntry)
		if showArchived || entry.NotArchived() {
			list = append(list, entry)
		}
	}
	return list
}
