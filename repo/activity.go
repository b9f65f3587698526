package repo

import (
	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func ActivitySchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*hcmemdb.TableSchema{
			model.ActivityType: {
				Name: model.ActivityType,
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
					resourceIndex: {
						Name: resourceIndex,
						Indexer: &hcmemdb.CompoundIndex{
							Indexes: []hcmemdb.Indexer{
								&hcmemdb.StringFieldIndex{Field: "ResourceType", Lowercase: true},
								&hcmemdb.StringFieldIndex{Field: "ResourceUUID", Lowercase: true},
							},
						},
					},
				},
			},
		},
		MandatoryForeignKeys: map[string][]memdb.Relation{
			model.ActivityType: {
				{OriginalDataTypeFieldName: "OrgUUID", RelatedDataType: model.OrganizationType, RelatedDataTypeFieldIndexName: PK},
			},
		},
	}
}

// ActivityRepository is append-only: entries are never updated or archived.
type ActivityRepository struct {
	db *io.MemoryStoreTxn
}

func NewActivityRepository(tx *io.MemoryStoreTxn) *ActivityRepository {
	return &ActivityRepository{db: tx}
}

func (r *ActivityRepository) Create(entry *model.ActivityEntry) error {
	return r.db.Insert(model.ActivityType, entry)
}

func (r *ActivityRepository) GetByID(id model.ActivityUUID) (*model.ActivityEntry, error) {
	raw, err := r.db.First(model.ActivityType, PK, id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, consts.ErrNotFound
	}
	return raw.(*model.ActivityEntry), nil
}

func (r *ActivityRepository) List(orgUUID model.OrgUUID) ([]*model.ActivityEntry, error) {
	iter, err := r.db.Get(model.ActivityType, OrgForeignPK, orgUUID)
	if err != nil {
		return nil, err
	}
	return collectActivities(iter), nil
}

// ListByResource returns the trail for one resource.
func (r *ActivityRepository) ListByResource(resourceType, resourceUUID string) ([]*model.ActivityEntry, error) {
	iter, err := r.db.Get(model.ActivityType, resourceIndex, resourceType, resourceUUID)
	if err != nil {
		return nil, err
	}
	return collectActivities(iter), nil
}

func collectActivities(iter hcmemdb.ResultIterator) []*model.ActivityEntry {
	list := []*model.ActivityEntry{}
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		list = append(list, raw.(*model.ActivityEntry))
	}
	return list
}
