package memdb

import (
	"testing"

	hcmemdb "github.com/hashicorp/go-memdb"
	"github.com/stretchr/testify/require"
)

const (
	u1 = "00000000-0000-0000-0000-000000000001"
	u2 = "00000000-0000-0000-0000-000000000002"
	u3 = "00000000-0000-0000-0000-000000000003"
	u4 = "00000000-0000-0000-0000-000000000004"
)

const (
	parentType           = "parent"
	childType1           = "child1"
	childType2           = "child2"
	childType3           = "child3"
	parentTypeForeignKey = "parent_uuid"
	parentsIndex         = "parents"
)

type parent struct {
	ArchiveMark
	UUID       string `json:"uuid"` // PK
	Identifier string `json:"identifier"`
}

type child1 struct {
	ArchiveMark
	UUID       string `json:"uuid"` // PK
	ParentUUID string `json:"parent_uuid"`
	Identifier string `json:"identifier"`
}

type child2 struct {
	ArchiveMark
	UUID       string `json:"uuid"` // PK
	ParentUUID string `json:"parent_uuid"`
	Identifier string `json:"identifier"`
}

type child3 struct {
	ArchiveMark
	UUID    string   `json:"uuid"` // PK
	Parents []string `json:"parents"`
}

func testTables() map[string]*hcmemdb.TableSchema {
	return map[string]*hcmemdb.TableSchema{
		parentType: {
			Name: parentType,
			Indexes: map[string]*hcmemdb.IndexSchema{
				PK: {
					Name:    PK,
					Unique:  true,
					Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
				},
			},
		},
		childType1: {
			Name: childType1,
			Indexes: map[string]*hcmemdb.IndexSchema{
				PK: {
					Name:    PK,
					Unique:  true,
					Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
				},
				parentTypeForeignKey: {
					Name:    parentTypeForeignKey,
					Indexer: &hcmemdb.StringFieldIndex{Field: "ParentUUID"},
				},
			},
		},
		childType2: {
			Name: childType2,
			Indexes: map[string]*hcmemdb.IndexSchema{
				PK: {
					Name:    PK,
					Unique:  true,
					Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
				},
				parentTypeForeignKey: {
					Name:    parentTypeForeignKey,
					Indexer: &hcmemdb.StringFieldIndex{Field: "ParentUUID"},
				},
			},
		},
		childType3: {
			Name: childType3,
			Indexes: map[string]*hcmemdb.IndexSchema{
				PK: {
					Name:    PK,
					Unique:  true,
					Indexer: &hcmemdb.UUIDFieldIndex{Field: "UUID"},
				},
				parentsIndex: {
					Name:    parentsIndex,
					Indexer: &hcmemdb.StringSliceFieldIndex{Field: "Parents"},
				},
			},
		},
	}
}

var testMark = ArchiveMark{ArchivingTimestamp: 99, ArchivingHash: 99}

func prepareTxn(t *testing.T) *Txn {
	schema := &DBSchema{
		Tables: testTables(),
		MandatoryForeignKeys: map[dataType][]Relation{
			childType1: {{
				OriginalDataTypeFieldName: "ParentUUID", RelatedDataType: parentType, RelatedDataTypeFieldIndexName: PK,
			}},
			childType2: {{
				OriginalDataTypeFieldName: "ParentUUID", RelatedDataType: parentType, RelatedDataTypeFieldIndexName: PK,
			}},
			childType3: {{
				OriginalDataTypeFieldName: "Parents", RelatedDataType: parentType, RelatedDataTypeFieldIndexName: PK,
			}},
		},
		CascadeDeletes: map[dataType][]Relation{
			parentType: {
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: childType2, RelatedDataTypeFieldIndexName: parentTypeForeignKey},
				{OriginalDataTypeFieldName: "UUID", RelatedDataType: childType3, RelatedDataTypeFieldIndexName: parentsIndex},
			},
		},
		CheckingRelations: map[dataType][]Relation{
			parentType: {{
				OriginalDataTypeFieldName: "UUID", RelatedDataType: childType1, RelatedDataTypeFieldIndexName: parentTypeForeignKey,
			}},
		},
	}
	db, err := NewMemDB(schema)
	require.NoError(t, err)
	return db.Txn(true)
}

func prepareTxnWithParent(t *testing.T) (*Txn, *parent) {
	txn := prepareTxn(t)
	p := sampleParent()
	err := txn.Insert(parentType, p)
	require.NoError(t, err)
	return txn, p
}

func sampleParent() *parent {
	return &parent{UUID: u1, Identifier: "parent1"}
}

func archivedParent() *parent {
	p := sampleParent()
	p.ArchiveMark = testMark
	return p
}

func sampleChild1(parentUUID string) *child1 {
	return &child1{UUID: u2, ParentUUID: parentUUID, Identifier: "child1"}
}

func sampleChild2(parentUUID string) *child2 {
	return &child2{UUID: u3, ParentUUID: parentUUID, Identifier: "child2"}
}

func archivedChild2(parentUUID string) *child2 {
	c := sampleChild2(parentUUID)
	c.ArchiveMark = testMark
	return c
}

func checkExistence(t *testing.T, txn *Txn, table, id string, expected interface{}, shouldExist bool) {
	raw, err := txn.First(table, PK, id)
	require.NoError(t, err)
	if shouldExist {
		require.NotEmpty(t, raw)
		require.Equal(t, expected, raw)
	} else {
		require.Empty(t, raw)
	}
}

func Test_InsertOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	ch := sampleChild1(p.UUID)

	err := txn.Insert(childType1, ch)

	require.NoError(t, err)
	checkExistence(t, txn, childType1, u2, sampleChild1(p.UUID), true)
}

func Test_InsertFailForeignKey(t *testing.T) {
	txn := prepareTxn(t)
	ch := sampleChild1(u1)

	err := txn.Insert(childType1, ch)

	require.ErrorIs(t, err, ErrForeignKey)
	checkExistence(t, txn, childType1, u2, nil, false)
}

func Test_InsertFailSliceForeignKey(t *testing.T) {
	txn, p := prepareTxnWithParent(t)

	err := txn.Insert(childType3, &child3{UUID: u4, Parents: []string{p.UUID, u2}})

	require.ErrorIs(t, err, ErrForeignKey)
}

func Test_DeleteOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)

	err := txn.Delete(parentType, p)

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, nil, false)
}

func Test_DeleteFailCheckingRelations(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType1, sampleChild1(p.UUID))
	require.NoError(t, err)

	err = txn.Delete(parentType, sampleParent())

	require.ErrorIs(t, err, ErrNotEmptyRelation)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
}

func Test_DeleteFailAtCascadeDeletes(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)

	err = txn.Delete(parentType, sampleParent())

	require.ErrorIs(t, err, ErrNotEmptyRelation)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
}

func Test_CascadeDeleteOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)

	err = txn.CascadeDelete(parentType, sampleParent())

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, nil, false)
	checkExistence(t, txn, childType2, u3, nil, false)
}

func Test_CascadeDeleteFailCheckingRelations(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)
	err = txn.Insert(childType1, sampleChild1(p.UUID))
	require.NoError(t, err)

	err = txn.CascadeDelete(parentType, sampleParent())

	require.ErrorIs(t, err, ErrNotEmptyRelation)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
	checkExistence(t, txn, childType1, u2, sampleChild1(p.UUID), true)
	checkExistence(t, txn, childType2, u3, sampleChild2(p.UUID), true)
}

func Test_ArchiveOK(t *testing.T) {
	txn, _ := prepareTxnWithParent(t)

	err := txn.Archive(parentType, sampleParent(), testMark)

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, archivedParent(), true)
}

func Test_ArchiveFailNotArchivableObject(t *testing.T) {
	txn := prepareTxn(t)
	x := 1

	err := txn.Archive(parentType, &x, testMark)

	require.ErrorIs(t, err, ErrNotArchivable)
}

func Test_ArchiveFailCheckingRelations(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType1, sampleChild1(p.UUID))
	require.NoError(t, err)

	err = txn.Archive(parentType, sampleParent(), testMark)

	require.ErrorIs(t, err, ErrNotEmptyRelation)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
}

func Test_CascadeArchiveOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)

	err = txn.CascadeArchive(parentType, sampleParent(), testMark)

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, archivedParent(), true)
	checkExistence(t, txn, childType2, u3, archivedChild2(p.UUID), true)
}

func Test_RestoreOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)
	err = txn.CascadeArchive(parentType, p, testMark)
	require.NoError(t, err)

	err = txn.Restore(parentType, sampleParent())

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
	// plain Restore does not revive children
	checkExistence(t, txn, childType2, u3, archivedChild2(p.UUID), true)
}

func Test_RestoreFailChildWithoutParent(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)
	err = txn.CascadeArchive(parentType, p, testMark)
	require.NoError(t, err)

	err = txn.Restore(childType2, sampleChild2(p.UUID))

	require.ErrorIs(t, err, ErrForeignKey)
	checkExistence(t, txn, parentType, u1, archivedParent(), true)
}

func Test_CascadeRestoreOK(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	err := txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)
	err = txn.CascadeArchive(parentType, p, testMark)
	require.NoError(t, err)

	err = txn.CascadeRestore(parentType, p)

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
	checkExistence(t, txn, childType2, u3, sampleChild2(p.UUID), true)
}

func Test_CascadeRestoreSkipsForeignMarks(t *testing.T) {
	txn, p := prepareTxnWithParent(t)
	ch22 := sampleChild2(p.UUID)
	ch22.UUID = u4
	err := txn.Insert(childType2, ch22)
	require.NoError(t, err)
	otherMark := ArchiveMark{ArchivingTimestamp: 999, ArchivingHash: 999}
	err = txn.Archive(childType2, ch22, otherMark)
	require.NoError(t, err)

	err = txn.Insert(childType2, sampleChild2(p.UUID))
	require.NoError(t, err)
	err = txn.CascadeArchive(parentType, p, testMark)
	require.NoError(t, err)

	err = txn.CascadeRestore(parentType, p)

	require.NoError(t, err)
	checkExistence(t, txn, parentType, u1, sampleParent(), true)
	checkExistence(t, txn, childType2, u3, sampleChild2(p.UUID), true)
	archivedCh22 := sampleChild2(p.UUID)
	archivedCh22.UUID = u4
	archivedCh22.ArchiveMark = otherMark
	checkExistence(t, txn, childType2, u4, archivedCh22, true)
}

func Test_validateCyclicOK(t *testing.T) {
	rels := map[dataType]map[Relation]struct{}{
		"t1": {Relation{RelatedDataType: "t2"}: {}},
		"t2": {Relation{RelatedDataType: "t3"}: {}, Relation{RelatedDataType: "t4"}: {}},
		"t3": {Relation{RelatedDataType: "t4"}: {}},
		"t4": {Relation{RelatedDataType: "t5"}: {}},
	}

	err := validateCyclic("t1", rels)

	require.NoError(t, err)
}

func Test_validateCyclicAllowsSelfLink(t *testing.T) {
	rels := map[dataType]map[Relation]struct{}{
		"t1": {Relation{RelatedDataType: "t1"}: {}},
	}

	err := validateCyclic("t1", rels)

	require.NoError(t, err)
}

func Test_validateCyclicFail(t *testing.T) {
	rels := map[dataType]map[Relation]struct{}{
		"t1": {Relation{RelatedDataType: "t2"}: {}},
		"t2": {Relation{RelatedDataType: "t3"}: {}, Relation{RelatedDataType: "t6"}: {}},
		"t3": {Relation{RelatedDataType: "t4"}: {}},
		"t4": {Relation{RelatedDataType: "t5"}: {}},
		"t5": {Relation{RelatedDataType: "t1"}: {}},
	}

	err := validateCyclic("t1", rels)

	require.Error(t, err)
	require.Equal(t, "dependencies chain:t1=>t2=>t3=>t4=>t5=>t1", err.Error())
}

func Test_validateForeignKeysFail(t *testing.T) {
	rels := map[dataType][]Relation{
		"t1": {{RelatedDataTypeFieldIndexName: "not_id"}},
	}

	err := validateForeignKeys(rels)

	require.Error(t, err)
}

func Test_validateUniquenessChildRelationsFail(t *testing.T) {
	schema := &DBSchema{
		Tables: testTables(),
		CascadeDeletes: map[dataType][]Relation{
			parentType: {{
				OriginalDataTypeFieldName: "UUID", RelatedDataType: childType2, RelatedDataTypeFieldIndexName: parentTypeForeignKey,
			}},
		},
		CheckingRelations: map[dataType][]Relation{
			parentType: {{
				OriginalDataTypeFieldName: "UUID", RelatedDataType: childType2, RelatedDataTypeFieldIndexName: parentTypeForeignKey,
			}},
		},
	}

	err := schema.Validate()

	require.ErrorIs(t, err, ErrInvalidSchema)
}

func Test_validateExistenceIndexesFail(t *testing.T) {
	rels := map[dataType][]Relation{
		"t1": {{
			OriginalDataTypeFieldName:     "ParentID",
			RelatedDataType:               parentType,
			RelatedDataTypeFieldIndexName: "no_index",
		}},
	}

	err := (&DBSchema{Tables: testTables(), MandatoryForeignKeys: rels}).validateExistenceIndexes()

	require.Error(t, err)
}
