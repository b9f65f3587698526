package memdb

import (
	"fmt"
	"strings"

	hcmemdb "github.com/hashicorp/go-memdb"
)

// PK is a mandatory index for all tables at hc/go-memdb.
const PK = "id"

type (
	// UnixTime is the timestamp type used by ArchiveMark.
	UnixTime = int64

	// TableSchema is a synonym to keep callers off the hc import.
	TableSchema = hcmemdb.TableSchema
)

type (
	dataType  = string
	fieldName = string
	indexName = string
)

// Relation links a field of one table to an index of another. The related
// index must be a StringFieldIndex, UUIDFieldIndex or StringSliceFieldIndex.
type Relation struct {
	OriginalDataTypeFieldName     fieldName
	RelatedDataType               dataType
	RelatedDataTypeFieldIndexName indexName

	// filled by schema validation
	indexIsSliceFieldIndex bool
}

type DBSchema struct {
	Tables map[string]*TableSchema

	// MandatoryForeignKeys are checked at Insert: the related record must
	// exist and be active (or archived with the allowed mark).
	MandatoryForeignKeys map[dataType][]Relation

	// CascadeDeletes drive CascadeDelete/CascadeArchive/CascadeRestore, and
	// make plain Delete/Archive fail while any child relation is not empty.
	CascadeDeletes map[dataType][]Relation

	// CheckingRelations make both plain and cascade deletion fail while the
	// relation is not empty.
	CheckingRelations map[dataType][]Relation

	// UniqueConstraints lists index names which must hold at most one
	// active record per value set. Archived records do not occupy a slot.
	UniqueConstraints map[dataType][]indexName
}

func (s *DBSchema) Validate() error {
	if err := (&hcmemdb.DBSchema{Tables: s.Tables}).Validate(); err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	if err := s.validateExistenceIndexes(); err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	if err := validateForeignKeys(s.MandatoryForeignKeys); err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	allChildRelations, err := s.validateUniquenessChildRelations()
	if err != nil {
		return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
	}
	for dt := range allChildRelations {
		if err := validateCyclic(dt, allChildRelations); err != nil {
			return fmt.Errorf("%w:%s", ErrInvalidSchema, err)
		}
	}
	return nil
}

// validateForeignKeys checks that every FK targets the PK index of the
// related table and that FKs do not form cycles between tables.
func validateForeignKeys(fks map[dataType][]Relation) error {
	rels := map[dataType]map[Relation]struct{}{}
	for d, keys := range fks {
		ks, ok := rels[d]
		if !ok {
			ks = map[Relation]struct{}{}
		}
		for _, key := range keys {
			if key.RelatedDataTypeFieldIndexName != PK {
				return fmt.Errorf("invalid RelatedDataTypeFieldIndexName:%s in FK:%#v of table %s",
					key.RelatedDataTypeFieldIndexName, key, d)
			}
			ks[key] = struct{}{}
		}
		rels[d] = ks
	}
	for d := range rels {
		if err := validateCyclic(d, rels); err != nil {
			return fmt.Errorf("cyclic dependency: %s", err.Error())
		}
	}
	return nil
}

// validateCyclic checks the absence of cyclic dependencies between tables.
// Self-links (a table related to itself, e.g. a parent pointer) are allowed.
func validateCyclic(topDataType dataType, rels map[dataType]map[Relation]struct{}) error {
	type dependency struct {
		parentType     dataType
		curIdx         int
		childDataTypes []dataType
	}
	childDataTypesFunc := func(parentDataType dataType) []dataType {
		mapResult := map[dataType]struct{}{}
		for r := range rels[parentDataType] {
			if r.RelatedDataType != parentDataType {
				mapResult[r.RelatedDataType] = struct{}{}
			}
		}
		result := make([]dataType, 0, len(mapResult))
		for r := range mapResult {
			result = append(result, r)
		}
		return result
	}
	deps := make([]dependency, len(rels)+1)
	deps[0] = dependency{
		parentType:     topDataType,
		curIdx:         0,
		childDataTypes: childDataTypesFunc(topDataType),
	}
	l := 0
loop:
	for deps[l].curIdx < len(deps[l].childDataTypes) || l != 0 {
		curIdx := deps[l].curIdx
		switch {
		case curIdx >= len(deps[l].childDataTypes):
			l--
			deps[l].curIdx++
			continue loop
		case deps[l].childDataTypes[curIdx] == topDataType:
			chainBuilder := strings.Builder{}
			for i := 0; i <= l; i++ {
				if chainBuilder.Len() != 0 {
					chainBuilder.WriteString("=>")
				}
				chainBuilder.WriteString(deps[i].parentType)
			}
			chainBuilder.WriteString("=>" + deps[0].parentType)
			return fmt.Errorf("dependencies chain:%s", chainBuilder.String())
		case len(rels[deps[l].childDataTypes[curIdx]]) > 0:
			curType := deps[l].childDataTypes[curIdx]
			l++
			deps[l] = dependency{
				parentType:     curType,
				curIdx:         0,
				childDataTypes: childDataTypesFunc(curType),
			}
		default:
			deps[l].curIdx++
		}
	}
	return nil
}

// validateExistenceIndexes checks that every relation points to an existing
// index of an allowed type, and marks slice-field indexes.
func (s *DBSchema) validateExistenceIndexes() error {
	checkRelation := func(mapRels *map[dataType][]Relation) error {
		tables := s.Tables
		for dt, rs := range *mapRels {
			for i := 0; i < len(rs); i++ {
				r := rs[i]
				ts, ok := tables[r.RelatedDataType]
				if !ok {
					return fmt.Errorf("table %s is absent in DBSchema", r.RelatedDataType)
				}
				index, ok := ts.Indexes[r.RelatedDataTypeFieldIndexName]
				if !ok {
					return fmt.Errorf("index named %q not found at table %q, passed as relation to field %q of table %q",
						r.RelatedDataTypeFieldIndexName, r.RelatedDataType, r.OriginalDataTypeFieldName, dt)
				}
				switch index.Indexer.(type) {
				case *hcmemdb.StringFieldIndex:
				case *hcmemdb.UUIDFieldIndex:
				case *hcmemdb.StringSliceFieldIndex:
					r.indexIsSliceFieldIndex = true
					rs[i] = r
				default:
					return fmt.Errorf("index named %q at table %q, passed as relation to field %q of table "+
						"%q has inappropriate type (allowed: StringFieldIndex, UUIDFieldIndex, StringSliceFieldIndex)",
						r.RelatedDataTypeFieldIndexName, r.RelatedDataType, r.OriginalDataTypeFieldName, dt)
				}
			}
			(*mapRels)[dt] = rs
		}
		return nil
	}
	for _, rs := range []*map[dataType][]Relation{&s.MandatoryForeignKeys, &s.CascadeDeletes, &s.CheckingRelations} {
		if err := checkRelation(rs); err != nil {
			return err
		}
	}
	return nil
}

// validateUniquenessChildRelations checks that CascadeDeletes and
// CheckingRelations do not repeat a relation, and returns the united map.
func (s *DBSchema) validateUniquenessChildRelations() (map[dataType]map[Relation]struct{}, error) {
	allRels := map[dataType]map[Relation]struct{}{}
	allRels, err := checkRelationsMapForRepeating(allRels, s.CascadeDeletes)
	if err != nil {
		return nil, fmt.Errorf("validateUniquenessChildRelations:%w", err)
	}
	allRels, err = checkRelationsMapForRepeating(allRels, s.CheckingRelations)
	if err != nil {
		return nil, fmt.Errorf("validateUniquenessChildRelations:%w", err)
	}
	return allRels, nil
}

func checkRelationsMapForRepeating(allRels map[dataType]map[Relation]struct{},
	rsMap map[dataType][]Relation) (map[dataType]map[Relation]struct{}, error) {
	for d, rs := range rsMap {
		if rels, ok := allRels[d]; ok {
			for _, r := range rs {
				if _, rep := rels[r]; rep {
					return nil, fmt.Errorf("relation %#v is repeated for %s dataType", r, d)
				}
				rels[r] = struct{}{}
			}
		} else {
			rels := map[Relation]struct{}{}
			for _, r := range rs {
				rels[r] = struct{}{}
			}
			allRels[d] = rels
		}
	}
	return allRels, nil
}

// MergeDBSchemas unites per-entity partial schemas into one, failing on
// repeated tables and validating the result.
func MergeDBSchemas(schemas ...*DBSchema) (*DBSchema, error) {
	tables := map[string]*hcmemdb.TableSchema{}

	for i := range schemas {
		for name, table := range schemas[i].Tables {
			if _, found := tables[name]; found {
				return nil, fmt.Errorf("%w:table %q already there", ErrMergeSchema, name)
			}
			tables[name] = table
		}
	}

	type mapRelations = map[dataType][]Relation

	mergeRelationsFunc := func(getRelationsFunc func(*DBSchema) mapRelations) mapRelations {
		allRels := map[dataType][]Relation{}
		for _, schema := range schemas {
			for name, rels := range getRelationsFunc(schema) {
				if prevRels, found := allRels[name]; found {
					rels = append(prevRels, rels...)
				}
				allRels[name] = rels
			}
		}
		return allRels
	}

	mergeConstraintsFunc := func() map[dataType][]indexName {
		all := map[dataType][]indexName{}
		for _, schema := range schemas {
			for name, idxs := range schema.UniqueConstraints {
				all[name] = append(all[name], idxs...)
			}
		}
		return all
	}

	result := DBSchema{
		Tables:               tables,
		MandatoryForeignKeys: mergeRelationsFunc(func(s *DBSchema) mapRelations { return s.MandatoryForeignKeys }),
		CascadeDeletes:       mergeRelationsFunc(func(s *DBSchema) mapRelations { return s.CascadeDeletes }),
		CheckingRelations:    mergeRelationsFunc(func(s *DBSchema) mapRelations { return s.CheckingRelations }),
		UniqueConstraints:    mergeConstraintsFunc(),
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("%w:%s", ErrMergeSchema, err.Error())
	}
	return &result, nil
}
