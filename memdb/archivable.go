package memdb

import (
	"math/rand"
	"time"
)

// Archivable is implemented by records supporting soft delete. Archived
// records stay in the table and keep their indexes, they are only marked.
type Archivable interface {
	Archive(mark ArchiveMark)
	Restore()
	Archived() bool
	NotArchived() bool
	GetArchiveMark() ArchiveMark
	Equals(other ArchiveMark) bool
}

// ArchiveMark is embedded into archivable records. A zero mark means the
// record is active. The hash groups records archived by one cascade
// operation, so CascadeRestore only revives its own victims.
type ArchiveMark struct {
	ArchivingTimestamp UnixTime `json:"archiving_timestamp"`
	ArchivingHash      int64    `json:"archiving_hash"`
}

func (a *ArchiveMark) Archive(mark ArchiveMark) {
	a.ArchivingTimestamp = mark.ArchivingTimestamp
	a.ArchivingHash = mark.ArchivingHash
}

func (a *ArchiveMark) Restore() {
	a.ArchivingTimestamp = 0
	a.ArchivingHash = 0
}

func (a *ArchiveMark) Archived() bool {
	return a.ArchivingTimestamp != 0
}

func (a *ArchiveMark) NotArchived() bool {
	return !a.Archived()
}

func (a *ArchiveMark) GetArchiveMark() ArchiveMark {
	if a == nil {
		return ArchiveMark{}
	}
	return *a
}

func (a *ArchiveMark) Equals(other ArchiveMark) bool {
	return a.ArchivingTimestamp == other.ArchivingTimestamp && a.ArchivingHash == other.ArchivingHash
}

func NewArchiveMark() ArchiveMark {
	archivingTime := time.Now().Unix()
	return ArchiveMark{
		ArchivingTimestamp: archivingTime,
		ArchivingHash:      rand.Int63n(archivingTime),
	}
}

// ActiveRecordMark is the zero mark carried by records which are not archived.
var ActiveRecordMark = ArchiveMark{}
