package repo

import (
	"fmt"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
)

// Serial number prefixes per resource type.
const (
	ProjectSerialPrefix  = "PRJ"
	PhaseSerialPrefix    = "PHS"
	SprintSerialPrefix   = "SPR"
	FolderSerialPrefix   = "FLD"
	DocumentSerialPrefix = "DOC"
)

// nextSerialNumber allocates a zero-padded, type-prefixed serial by counting
// existing rows (archived included) under the given index value. The count
// is a read in the current txn: two concurrent allocations can observe the
// same count and collide. Kept as-is deliberately; see DESIGN.md.
func nextSerialNumber(tx *io.MemoryStoreTxn, table, prefix, index string, indexValue string) (string, error) {
	iter, err := tx.Get(table, index, indexValue)
	if err != nil {
		return "", err
	}
	count := 0
	for raw := iter.Next(); raw != nil; raw = iter.Next() {
		count++
	}
	return fmt.Sprintf("%s-%06d", prefix, count+1), nil
}
