package usecase

import (
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/utils"
)

// ProjectService orchestrates project creation and deletion: hierarchy
// materialization, serials, the creator's admin grant and the audit trail all
// happen in one transaction.
type ProjectService struct {
	orgUUID model.OrgUUID

	repo     *repo.ProjectRepository
	orgRepo  *repo.OrganizationRepository
	access   *AccessService
	resolver *AccessResolver
	activity *ActivityService
}

func Projects(tx *io.MemoryStoreTxn, orgUUID model.OrgUUID) *ProjectService {
	return &ProjectService{
		orgUUID:  orgUUID,
		repo:     repo.NewProjectRepository(tx),
		orgRepo:  repo.NewOrganizationRepository(tx),
		access:   Access(tx, orgUUID),
		resolver: Resolver(tx),
		activity: Activities(tx),
	}
}

func (s *ProjectService) Create(actor model.Actor, project *model.Project) error {
	if project.Name == "" {
		return consts.ErrInvalidArg
	}
	if actor.OrgUUID != s.orgUUID {
		return consts.ErrWrongOrg
	}
	if actor.OrgRole == model.RoleViewer {
		return consts.ErrAccessForbidden
	}
	org, err := s.orgRepo.GetByID(s.orgUUID)
	if err != nil {
		return err
	}
	if org.Archived() {
		return consts.ErrIsArchived
	}

	if project.UUID == "" {
		project.UUID = utils.UUID()
	}
	project.OrgUUID = s.orgUUID
	project.Version = repo.NewResourceVersion()
	if project.Slug == "" {
		project.Slug = utils.Slugify(project.Name)
	}

	var parent *model.Project
	if project.ParentUUID != "" {
		parent, err = s.repo.GetByID(project.ParentUUID)
		if err != nil {
			return err
		}
		if parent.Archived() {
			return consts.ErrIsArchived
		}
		if parent.OrgUUID != s.orgUUID {
			return consts.ErrWrongOrg
		}
		if err := s.resolver.Require(actor, parent, model.PermissionEdit); err != nil {
			return err
		}
		if !parent.CanCreateChild() {
			return consts.ErrDepthLimit
		}
		project.MaterializeUnder(&parent.Hierarchy, parent.UUID, project.UUID)
	} else {
		project.MaterializeRoot(project.UUID)
	}
	project.ChildUUIDs = nil

	project.SerialNumber, err = s.repo.NextSerialNumber(s.orgUUID)
	if err != nil {
		return err
	}
	project.OwnerUUID = actor.UserUUID
	project.Members = []model.Member{model.NewMember(actor.UserUUID, model.MemberRoleOwner)}
	project.IsActive = true
	project.DeletedBy = ""
	project.Statistics = model.ProjectStatistics{LastUpdated: time.Now().Unix()}

	if err := s.repo.Create(project); err != nil {
		return err
	}
	if parent != nil {
		parent.LinkChild(project.UUID)
		if err := s.repo.Update(parent); err != nil {
			return err
		}
	}
	if err := s.access.grantOnCreate(actor, model.ProjectType, project.UUID,
		model.ProjectType, project.ParentUUID); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionCreate, model.ProjectType, project.UUID, project.Name)
}

func (s *ProjectService) GetByID(id model.ProjectUUID) (*model.Project, error) {
	return s.repo.GetByID(id)
}

// Update applies name and member changes under an optimistic version check.
// Organization, owner, serial and hierarchy placement are immutable here.
func (s *ProjectService) Update(actor model.Actor, updated *model.Project) error {
	stored, err := s.repo.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, stored, model.PermissionEdit); err != nil {
		return err
	}
	if stored.Version != updated.Version {
		return consts.ErrBadVersion
	}
	if updated.OrgUUID != "" && updated.OrgUUID != stored.OrgUUID {
		return consts.ErrWrongOrg
	}
	if updated.OwnerUUID != "" && updated.OwnerUUID != stored.OwnerUUID {
		return consts.ErrOwnerImmutable
	}
	updated.OrgUUID = stored.OrgUUID
	updated.OwnerUUID = stored.OwnerUUID
	updated.SerialNumber = stored.SerialNumber
	updated.Hierarchy = stored.Hierarchy
	updated.Statistics = stored.Statistics
	updated.IsActive = stored.IsActive
	updated.Version = repo.NewResourceVersion()
	if updated.Slug == "" {
		updated.Slug = utils.Slugify(updated.Name)
	}
	if err := s.repo.Update(updated); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionUpdate, model.ProjectType, updated.UUID, updated.Name)
}

// Delete archives the project only. Children, folders and access entries are
// left as they are; the parent's child list is the single link removed.
func (s *ProjectService) Delete(actor model.Actor, id model.ProjectUUID) error {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if project.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, project, model.PermissionAdmin); err != nil {
		return err
	}
	project.DeletedBy = actor.UserUUID
	project.IsActive = false
	if err := s.repo.Update(project); err != nil {
		return err
	}
	if err := s.activity.RecordFor(actor, model.ActionDelete, model.ProjectType, project.UUID, project.Name); err != nil {
		return err
	}
	if err := s.repo.Delete(id, memdb.NewArchiveMark()); err != nil {
		return err
	}
	if project.ParentUUID != "" {
		parent, err := s.repo.GetByID(project.ParentUUID)
		if err == nil && parent.NotArchived() && parent.UnlinkChild(id) {
			if err := s.repo.Update(parent); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *ProjectService) Restore(actor model.Actor, id model.ProjectUUID) (*model.Project, error) {
	if !actor.OrgRole.IsPrivileged() {
		return nil, consts.ErrAccessForbidden
	}
	project, err := s.repo.Restore(id)
	if err != nil {
		return nil, err
	}
	project.DeletedBy = ""
	project.IsActive = true
	if err := s.repo.Update(project); err != nil {
		return nil, err
	}
	if project.ParentUUID != "" {
		parent, err := s.repo.GetByID(project.ParentUUID)
		if err == nil && parent.NotArchived() && parent.LinkChild(id) {
			if err := s.repo.Update(parent); err != nil {
				return nil, err
			}
		}
	}
	err = s.activity.RecordFor(actor, model.ActionRestore, model.ProjectType, project.UUID, project.Name)
	return project, err
}

func (s *ProjectService) List(showArchived bool) ([]*model.Project, error) {
	return s.repo.List(s.orgUUID, showArchived)
}

// Ancestors returns the chain above the project, oldest-first.
func (s *ProjectService) Ancestors(id model.ProjectUUID) ([]model.ProjectUUID, error) {
	return AllAncestors(s.fetchNode, id)
}

// Descendants returns the live subtree below the project, breadth-first.
func (s *ProjectService) Descendants(id model.ProjectUUID) ([]model.ProjectUUID, error) {
	return AllDescendants(s.fetchNode, id)
}

func (s *ProjectService) fetchNode(id string) (*model.Hierarchy, error) {
	project, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if project.Archived() {
		return nil, consts.ErrNotFound
	}
	return &project.Hierarchy, nil
}
