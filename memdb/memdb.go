package memdb

import (
	"fmt"
	"reflect"

	hcmemdb "github.com/hashicorp/go-memdb"
	"github.com/hashicorp/go-multierror"
)

var (
	ErrForeignKey       = fmt.Errorf("foreign key error")
	ErrNotEmptyRelation = fmt.Errorf("not empty relation error")
	ErrNotArchivable    = fmt.Errorf("not archivable object")
	ErrInvalidSchema    = fmt.Errorf("invalid DBSchema")
	ErrMergeSchema      = fmt.Errorf("merging DBSchema")
	ErrNotPtr           = fmt.Errorf("not pointer passed")
	ErrUniqueConstraint = fmt.Errorf("fail unique constraint")
)

type MemDB struct {
	*hcmemdb.MemDB

	schema *DBSchema
}

type Txn struct {
	*hcmemdb.Txn

	schema *DBSchema
}

func NewMemDB(schema *DBSchema) (*MemDB, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	db, err := hcmemdb.NewMemDB(&hcmemdb.DBSchema{Tables: schema.Tables})
	if err != nil {
		return nil, err
	}
	return &MemDB{
		MemDB:  db,
		schema: schema,
	}, nil
}

func (m *MemDB) Txn(write bool) *Txn {
	mTxn := m.MemDB.Txn(write)
	if write {
		mTxn.TrackChanges()
	}
	return &Txn{Txn: mTxn, schema: m.schema}
}

func (t *Txn) Insert(table string, objPtr interface{}) error {
	return t.insert(table, objPtr, ActiveRecordMark)
}

// insert performs an Insert with unique-constraint and MandatoryForeignKeys
// checks; related records must exist and be active, or archived with the
// allowed mark.
func (t *Txn) insert(table string, objPtr interface{}, allowedArchiveMark ArchiveMark) error {
	err := t.checkUniqueConstraints(table, objPtr)
	if err != nil {
		return fmt.Errorf("insert %#v: %w", objPtr, err)
	}
	err = t.checkForeignKeys(table, objPtr, allowedArchiveMark)
	if err != nil {
		return fmt.Errorf("insert %#v: %w", objPtr, err)
	}
	return t.Txn.Insert(table, objPtr)
}

func (t *Txn) Delete(table string, objPtr interface{}) error {
	err := t.checkCascadeDeletesAndCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("delete:%w", err)
	}
	err = t.Txn.Delete(table, objPtr)
	if err != nil {
		return fmt.Errorf("delete:%w", err)
	}
	return nil
}

func (t *Txn) CascadeDelete(table string, objPtr interface{}) error {
	err := t.checkCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("cascadeDelete:%w", err)
	}
	err = t.processRelations(t.schema.CascadeDeletes[table], objPtr, t.deleteChildren, ErrNotEmptyRelation)
	if err != nil {
		return fmt.Errorf("cascadeDelete:%w", err)
	}
	err = t.Txn.Delete(table, objPtr)
	if err != nil {
		return fmt.Errorf("cascadeDelete:%w", err)
	}
	return nil
}

// Archive soft-deletes a record: the record stays in the table carrying the
// given mark. Fails while the record still has live child relations.
func (t *Txn) Archive(table string, objPtr interface{}, mark ArchiveMark) error {
	a, ok := objPtr.(Archivable)
	if !ok {
		return fmt.Errorf("%w:%#v", ErrNotArchivable, objPtr)
	}
	err := t.checkCascadeDeletesAndCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("archive:%w", err)
	}
	a.Archive(mark)
	err = t.insert(table, objPtr, mark)
	if err != nil {
		return fmt.Errorf("archive:%w", err)
	}
	return nil
}

// CascadeArchive soft-deletes a record together with all records reachable
// through the CascadeDeletes relations, stamping all of them with one mark.
func (t *Txn) CascadeArchive(table string, objPtr interface{}, mark ArchiveMark) error {
	a, ok := objPtr.(Archivable)
	if !ok {
		return fmt.Errorf("%w:%#v", ErrNotArchivable, objPtr)
	}
	err := t.checkCheckingRelations(table, objPtr)
	if err != nil {
		return fmt.Errorf("cascadeArchive:%w", err)
	}
	err = t.processRelations(t.schema.CascadeDeletes[table], objPtr, t.archiveChildren(mark), ErrNotEmptyRelation)
	if err != nil {
		return fmt.Errorf("cascadeArchive:%w", err)
	}
	a.Archive(mark)
	err = t.Insert(table, objPtr)
	if err != nil {
		return fmt.Errorf("cascadeArchive:%w", err)
	}
	return nil
}

func (t *Txn) Restore(table string, objPtr interface{}) error {
	a, ok := objPtr.(Archivable)
	if !ok {
		return fmt.Errorf("%w:%#v", ErrNotArchivable, objPtr)
	}
	a.Restore()
	err := t.Insert(table, objPtr)
	if err != nil {
		return fmt.Errorf("restore:%w", err)
	}
	return nil
}

// CascadeRestore restores a record and the children archived by the same
// cascade operation (same mark). Children archived separately stay archived.
func (t *Txn) CascadeRestore(table string, objPtr interface{}) error {
	a, ok := objPtr.(Archivable)
	if !ok {
		return fmt.Errorf("%w:%#v", ErrNotArchivable, objPtr)
	}
	mark := a.GetArchiveMark()
	a.Restore()
	err := t.insert(table, objPtr, mark)
	if err != nil {
		return fmt.Errorf("cascadeRestore:%w", err)
	}
	err = t.processRelations(t.schema.CascadeDeletes[table], objPtr, t.restoreChildren(mark), ErrNotEmptyRelation)
	if err != nil {
		return fmt.Errorf("cascadeRestore:%w", err)
	}
	return nil
}

func (t *Txn) checkForeignKeys(table string, objPtr interface{}, allowedArchiveMark ArchiveMark) error {
	keys := t.schema.MandatoryForeignKeys[table]
	return t.processRelations(keys, objPtr, t.checkForeignKey(allowedArchiveMark), ErrForeignKey)
}

// checkForeignKey supports a slice as the checked field type.
func (t *Txn) checkForeignKey(allowedArchiveMark ArchiveMark) func(checkedFieldValue interface{}, key Relation) error {
	return func(checkedFieldValue interface{}, key Relation) error {
		switch reflect.TypeOf(checkedFieldValue).Kind() {
		case reflect.Slice:
			s := reflect.ValueOf(checkedFieldValue)
			for i := 0; i < s.Len(); i++ {
				err := t.checkSingleValueOfForeignKey(s.Index(i).Interface(), key, allowedArchiveMark)
				if err != nil {
					return err
				}
			}
			return nil
		default:
			return t.checkSingleValueOfForeignKey(checkedFieldValue, key, allowedArchiveMark)
		}
	}
}

func (t *Txn) checkSingleValueOfForeignKey(singleCheckedFieldValue interface{}, key Relation,
	allowedArchiveMark ArchiveMark) error {
	relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, singleCheckedFieldValue)
	if err != nil {
		return fmt.Errorf("getting related record:%w", err)
	}
	if relatedRecord == nil {
		return fmt.Errorf("FK violation: %q not found at table %q at index %q",
			singleCheckedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
	}
	a, ok := relatedRecord.(Archivable)
	if !ok {
		if ActiveRecordMark.Equals(allowedArchiveMark) {
			return nil // related record is not archivable and exists, nothing more to check
		}
		return fmt.Errorf("%w: related record %#v is not archivable", ErrNotArchivable, relatedRecord)
	}
	if a.Archived() && !a.Equals(allowedArchiveMark) {
		return fmt.Errorf("FK violation: %q not found at table %q at index %q",
			singleCheckedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
	}
	return nil
}

func (t *Txn) checkCascadeDeletesAndCheckingRelations(table string, objPtr interface{}) error {
	rels := append(t.schema.CascadeDeletes[table], t.schema.CheckingRelations[table]...) //nolint:gocritic
	return t.processRelations(rels, objPtr, t.checkRelationShouldBeEmpty, ErrNotEmptyRelation)
}

func (t *Txn) checkCheckingRelations(table string, objPtr interface{}) error {
	rels := t.schema.CheckingRelations[table]
	return t.processRelations(rels, objPtr, t.checkRelationShouldBeEmpty, ErrNotEmptyRelation)
}

// processRelations runs relationHandler for each relation, collecting errors.
func (t *Txn) processRelations(relations []Relation, objPtr interface{},
	relationHandler func(originObjectFieldValue interface{}, key Relation) error,
	relationHandlerError error) error {
	valueIface := reflect.ValueOf(objPtr)
	if valueIface.Type().Kind() != reflect.Ptr {
		return fmt.Errorf("obj `%s` is not ptr", valueIface.Type())
	}
	var allErrs *multierror.Error
	for _, key := range relations {
		field := valueIface.Elem().FieldByName(key.OriginalDataTypeFieldName)
		if !field.IsValid() {
			return fmt.Errorf("obj `%s` does not have the field `%s`", valueIface.Type(), key.OriginalDataTypeFieldName)
		}
		checkedFieldValue := field.Interface()
		if err := relationHandler(checkedFieldValue, key); err != nil {
			allErrs = multierror.Append(allErrs, err)
		}
	}
	if allErrs != nil {
		return fmt.Errorf("%w:%s", relationHandlerError, allErrs.Error())
	}
	return nil
}

func (t *Txn) checkRelationShouldBeEmpty(checkedFieldValue interface{}, key Relation) error {
	relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, checkedFieldValue)
	if err != nil {
		return fmt.Errorf("getting related record:%w", err)
	}
	if relatedRecord == nil {
		return nil
	}
	a, ok := relatedRecord.(Archivable)
	if !ok {
		return fmt.Errorf("got not archivable object: by key value %q found at table %q by index %q",
			checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
	}
	if a.NotArchived() {
		return fmt.Errorf("relation should be empty: %q found at table %q by index %q",
			checkedFieldValue, key.RelatedDataType, key.RelatedDataTypeFieldIndexName)
	}
	return nil
}

func (t *Txn) deleteChildren(parentObjectFieldValue interface{}, key Relation) error {
	if key.indexIsSliceFieldIndex {
		return nil
	}
	for {
		relatedRecord, err := t.First(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
		if err != nil {
			return fmt.Errorf("getting related record:%w", err)
		}
		if relatedRecord == nil {
			break
		}
		err = t.CascadeDelete(key.RelatedDataType, relatedRecord)
		if err != nil {
			return fmt.Errorf("deleting related record: at table %q by index %q, value %q",
				key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
		}
	}
	return nil
}

func (t *Txn) archiveChildren(mark ArchiveMark) func(parentObjectFieldValue interface{}, key Relation) error {
	return func(parentObjectFieldValue interface{}, key Relation) error {
		if key.indexIsSliceFieldIndex {
			return nil
		}
		iter, err := t.Get(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
		if err != nil {
			return fmt.Errorf("getting related record:%w", err)
		}
		for {
			relatedRecord := iter.Next()
			if relatedRecord == nil {
				break
			}
			a, ok := relatedRecord.(Archivable)
			if !ok {
				return fmt.Errorf("%w: related record %#v is not archivable", ErrNotArchivable, relatedRecord)
			}
			if a.Archived() {
				continue
			}
			err = t.CascadeArchive(key.RelatedDataType, relatedRecord, mark)
			if err != nil {
				return fmt.Errorf("archiving related record: at table %q by index %q, value %q",
					key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
			}
		}
		return nil
	}
}

func (t *Txn) restoreChildren(allowedArchiveMark ArchiveMark) func(parentObjectFieldValue interface{}, key Relation) error {
	return func(parentObjectFieldValue interface{}, key Relation) error {
		if key.indexIsSliceFieldIndex {
			return nil
		}
		iter, err := t.Get(key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
		if err != nil {
			return fmt.Errorf("getting related record:%w", err)
		}
		for {
			relatedRecord := iter.Next()
			if relatedRecord == nil {
				break
			}
			a, ok := relatedRecord.(Archivable)
			if !ok {
				return fmt.Errorf("%w: related record %#v is not archivable", ErrNotArchivable, relatedRecord)
			}
			if !a.Equals(allowedArchiveMark) {
				continue
			}
			err = t.CascadeRestore(key.RelatedDataType, relatedRecord)
			if err != nil {
				return fmt.Errorf("restoring related record: at table %q by index %q, value %q",
					key.RelatedDataType, key.RelatedDataTypeFieldIndexName, parentObjectFieldValue)
			}
		}
		return nil
	}
}

type storable interface {
	ObjType() string
	ObjId() string
}

// checkUniqueConstraints verifies uniqueness among unarchived records.
func (t *Txn) checkUniqueConstraints(table string, objPtr interface{}) error {
	if a, isArchivable := objPtr.(Archivable); isArchivable && a.Archived() {
		return nil // only valid insertions are checked
	}
	objID := ""
	if s, isStorable := objPtr.(storable); isStorable {
		objID = s.ObjId()
	}
	for _, idxName := range t.schema.UniqueConstraints[table] {
		idx := t.schema.Tables[table].Indexes[idxName]
		vals, err := collectValsForIndexes(objPtr, idx.Indexer)
		if err != nil {
			return fmt.Errorf("collecting vals for index %s at table %s: %w", idx.Name, table, err)
		}
		if err := t.checkIdxIsEmpty(table, idx.Name, vals, objID); err != nil {
			return fmt.Errorf("checkUniqueConstraints: %w", err)
		}
	}
	return nil
}

func (t *Txn) checkIdxIsEmpty(table string, idxName string, vals []interface{}, savedObjID string) error {
	iter, err := t.Get(table, idxName, vals...)
	if err != nil {
		return fmt.Errorf("checkIdxIsEmpty, index: %q at table %q: %w", idxName, table, err)
	}
	for {
		raw := iter.Next()
		if raw == nil {
			break
		}
		if s, isStorable := raw.(storable); isStorable {
			if s.ObjId() == savedObjID { // it is the replaced obj, skip
				continue
			}
		}
		a, isArchivable := raw.(Archivable)
		if !isArchivable || a.NotArchived() {
			return fmt.Errorf("%w: %q at table %q", ErrUniqueConstraint, idxName, table)
		}
	}
	return nil
}

func collectValsForIndexes(objPtr interface{}, indexes ...hcmemdb.Indexer) ([]interface{}, error) {
	var vals []interface{}
	for _, idx := range indexes {
		singleFieldName := ""
		switch t := idx.(type) {
		case *hcmemdb.UUIDFieldIndex:
			singleFieldName = t.Field
		case *hcmemdb.StringFieldIndex:
			singleFieldName = t.Field
		case *hcmemdb.CompoundIndex:
			extraVals, err := collectValsForIndexes(objPtr, t.Indexes...)
			if err != nil {
				return nil, err
			}
			vals = append(vals, extraVals...)
		default:
			return nil, fmt.Errorf("index type %T is not supported for unique constraint", idx)
		}
		if singleFieldName != "" {
			valueIface := reflect.ValueOf(objPtr)
			fieldValue := valueIface.Elem().FieldByName(singleFieldName).Interface()
			vals = append(vals, fieldValue)
		}
	}
	return vals, nil
}
