package usecase

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/utils"
)

// OrganizationService manages tenants. Deleting an organization archives its
// whole content in one cascade; restoring brings exactly that cascade back.
type OrganizationService struct {
	repo     *repo.OrganizationRepository
	activity *ActivityService
}

func Organizations(tx *io.MemoryStoreTxn) *OrganizationService {
	return &OrganizationService{
		repo:     repo.NewOrganizationRepository(tx),
		activity: Activities(tx),
	}
}

func (s *OrganizationService) Create(org *model.Organization) error {
	if org.Identifier == "" {
		return consts.ErrInvalidArg
	}
	if org.UUID == "" {
		org.UUID = utils.UUID()
	}
	org.Version = repo.NewResourceVersion()
	return s.repo.Create(org)
}

func (s *OrganizationService) GetByID(id model.OrgUUID) (*model.Organization, error) {
	return s.repo.GetByID(id)
}

func (s *OrganizationService) Update(updated *model.Organization) error {
	stored, err := s.repo.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.Archived() {
		return consts.ErrIsArchived
	}
	if stored.Version != updated.Version {
		return consts.ErrBadVersion
	}
	updated.Version = repo.NewResourceVersion()
	return s.repo.Update(updated)
}

// Delete requires a privileged actor of the organization itself.
func (s *OrganizationService) Delete(actor model.Actor, id model.OrgUUID) error {
	if actor.OrgUUID != id {
		return consts.ErrWrongOrg
	}
	if !actor.OrgRole.IsPrivileged() {
		return consts.ErrAccessForbidden
	}
	org, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.activity.Record(&model.ActivityEntry{
		OrgUUID:      id,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionDelete,
		ResourceType: model.OrganizationType,
		ResourceUUID: id,
		ResourceName: org.Name,
		Category:     model.CategoryAdmin,
		Severity:     model.SeverityCritical,
	}); err != nil {
		return err
	}
	return s.repo.Delete(id, memdb.NewArchiveMark())
}

func (s *OrganizationService) Restore(actor model.Actor, id model.OrgUUID) (*model.Organization, error) {
	if !actor.OrgRole.IsPrivileged() {
		return nil, consts.ErrAccessForbidden
	}
	org, err := s.repo.Restore(id)
	if err != nil {
		return nil, err
	}
	err = s.activity.Record(&model.ActivityEntry{
		OrgUUID:      id,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionRestore,
		ResourceType: model.OrganizationType,
		ResourceUUID: id,
		ResourceName: org.Name,
		Category:     model.CategoryAdmin,
	})
	return org, err
}

func (s *OrganizationService) List(showArchived bool) ([]*model.Organization, error) {
	return s.repo.List(showArchived)
}
