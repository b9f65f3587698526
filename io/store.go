package io

import (
	"fmt"
	"reflect"
	"sync"

	log "github.com/hashicorp/go-hclog"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

// MemoryStorableObject is implemented by every record kept in the store.
type MemoryStorableObject interface {
	ObjType() string
	ObjId() string
}

// Sink receives committed changes, e.g. to forward activity entries to an
// external notifier or audit pipeline. Delivery is best-effort: a failing
// sink never aborts the transaction.
type Sink interface {
	// ProcessObject is called for inserted or updated records.
	ProcessObject(obj MemoryStorableObject) error
	// ProcessObjectDelete is called for physically deleted records.
	ProcessObjectDelete(obj MemoryStorableObject) error
	// Name identifies the sink in logs and for removal.
	Name() string
}

type MemoryStore struct {
	*memdb.MemDB

	sinkMutex sync.RWMutex
	sinks     []Sink

	logger log.Logger
}

type MemoryStoreTxn struct {
	*memdb.Txn

	memstore *MemoryStore // crosslink
}

func NewMemoryStore(schema *memdb.DBSchema, logger log.Logger) (*MemoryStore, error) {
	db, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &MemoryStore{
		MemDB:  db,
		logger: logger.Named("MemoryStore"),
	}, nil
}

func (ms *MemoryStore) Txn(write bool) *MemoryStoreTxn {
	return &MemoryStoreTxn{ms.MemDB.Txn(write), ms}
}

func (ms *MemoryStore) AddSink(s Sink) {
	ms.sinkMutex.Lock()
	ms.sinks = append(ms.sinks, s)
	ms.sinkMutex.Unlock()
}

func (ms *MemoryStore) RemoveSink(name string) {
	ms.sinkMutex.Lock()
	defer ms.sinkMutex.Unlock()
	for i, s := range ms.sinks {
		if s.Name() == name {
			ms.sinks = append(ms.sinks[:i], ms.sinks[i+1:]...)
			return
		}
	}
}

// fanOut offers every tracked change to every registered sink. Sink errors
// are logged and swallowed: the store is the source of truth, sinks are not.
func (mst *MemoryStoreTxn) fanOut() {
	changes := mst.Txn.Changes()

	mst.memstore.sinkMutex.RLock()
	defer mst.memstore.sinkMutex.RUnlock()
	for _, change := range changes {
		for _, sink := range mst.memstore.sinks {
			var err error
			if change.After == nil {
				object, ok := change.Before.(MemoryStorableObject)
				if !ok {
					mst.memstore.logger.Error(fmt.Sprintf("object does not implement MemoryStorableObject: %s",
						reflect.TypeOf(change.Before)))
					continue
				}
				err = sink.ProcessObjectDelete(object)
			} else {
				object, ok := change.After.(MemoryStorableObject)
				if !ok {
					mst.memstore.logger.Error(fmt.Sprintf("object does not implement MemoryStorableObject: %s",
						reflect.TypeOf(change.After)))
					continue
				}
				err = sink.ProcessObject(object)
			}
			if err != nil {
				mst.memstore.logger.Warn("sink failed to process change", "sink", sink.Name(), "err", err)
			}
		}
	}
}

func (mst *MemoryStoreTxn) Commit() error {
	mst.fanOut()
	mst.Txn.Commit()
	return nil
}

func (mst *MemoryStoreTxn) Abort() {
	mst.Txn.Abort()
}
