package usecase

import (
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/utils"
)

// ActivityService appends audit entries. Entries are written in the same
// transaction as the operation they describe, so an aborted operation leaves
// no trail.
type ActivityService struct {
	repo *repo.ActivityRepository
}

func Activities(tx *io.MemoryStoreTxn) *ActivityService {
	return &ActivityService{repo: repo.NewActivityRepository(tx)}
}

// Record stamps and stores the entry. Category defaults to data, severity
// to info.
func (s *ActivityService) Record(entry *model.ActivityEntry) error {
	entry.UUID = utils.UUID()
	entry.CreatedAt = time.Now().Unix()
	if entry.Category == "" {
		entry.Category = model.CategoryData
	}
	if entry.Severity == "" {
		entry.Severity = model.SeverityInfo
	}
	return s.repo.Create(entry)
}

// RecordFor is the common case: a data action of an actor on a resource.
func (s *ActivityService) RecordFor(actor model.Actor, action, resourceType, resourceUUID, resourceName string) error {
	return s.Record(&model.ActivityEntry{
		OrgUUID:      actor.OrgUUID,
		UserUUID:     actor.UserUUID,
		Action:       action,
		ResourceType: resourceType,
		ResourceUUID: resourceUUID,
		ResourceName: resourceName,
	})
}

func (s *ActivityService) List(orgUUID model.OrgUUID) ([]*model.ActivityEntry, error) {
	return s.repo.List(orgUUID)
}

func (s *ActivityService) ListByResource(resourceType, resourceUUID string) ([]*model.ActivityEntry, error) {
	return s.repo.ListByResource(resourceType, resourceUUID)
}
