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

// PhaseService manages phases inside a project. Creating a phase needs edit
// on the project; the project's counters move together with the phase.
type PhaseService struct {
	orgUUID model.OrgUUID

	repo        *repo.PhaseRepository
	projectRepo *repo.ProjectRepository
	access      *AccessService
	resolver    *AccessResolver
	activity    *ActivityService
}

func Phases(tx *io.MemoryStoreTxn, orgUUID model.OrgUUID) *PhaseService {
	return &PhaseService{
		orgUUID:     orgUUID,
		repo:        repo.NewPhaseRepository(tx),
		projectRepo: repo.NewProjectRepository(tx),
		access:      Access(tx, orgUUID),
		resolver:    Resolver(tx),
		activity:    Activities(tx),
	}
}

func (s *PhaseService) Create(actor model.Actor, phase *model.Phase) error {
	if phase.Name == "" || phase.ProjectUUID == "" {
		return consts.ErrInvalidArg
	}
	project, err := s.projectRepo.GetByID(phase.ProjectUUID)
	if err != nil {
		return err
	}
	if project.Archived() {
		return consts.ErrIsArchived
	}
	if project.OrgUUID != s.orgUUID {
		return consts.ErrWrongOrg
	}
	if err := s.resolver.Require(actor, project, model.PermissionEdit); err != nil {
		return err
	}

	if phase.UUID == "" {
		phase.UUID = utils.UUID()
	}
	phase.OrgUUID = s.orgUUID
	phase.Version = repo.NewResourceVersion()
	if phase.Slug == "" {
		phase.Slug = utils.Slugify(phase.Name)
	}

	var parent *model.Phase
	if phase.ParentUUID != "" {
		parent, err = s.repo.GetByID(phase.ParentUUID)
		if err != nil {
			return err
		}
		if parent.Archived() {
			return consts.ErrIsArchived
		}
		if parent.ProjectUUID != phase.ProjectUUID {
			return consts.ErrNoContainer
		}
		if !parent.CanCreateChild() {
			return consts.ErrDepthLimit
		}
		phase.MaterializeUnder(&parent.Hierarchy, parent.UUID, phase.UUID)
	} else {
		phase.MaterializeRoot(phase.UUID)
	}
	phase.ChildUUIDs = nil

	phase.SerialNumber, err = s.repo.NextSerialNumber(phase.ProjectUUID)
	if err != nil {
		return err
	}
	phase.OwnerUUID = actor.UserUUID
	phase.Members = []model.Member{model.NewMember(actor.UserUUID, model.MemberRoleOwner)}
	phase.Status = model.PhasePlanned
	phase.Progress = 0
	phase.IsActive = true
	phase.DeletedBy = ""
	phase.Statistics = model.PhaseStatistics{LastUpdated: time.Now().Unix()}

	if err := s.repo.Create(phase); err != nil {
		return err
	}
	if parent != nil {
		parent.LinkChild(phase.UUID)
		if err := s.repo.Update(parent); err != nil {
			return err
		}
	}
	project.Statistics.TotalPhases++
	project.Statistics.LastUpdated = time.Now().Unix()
	if err := s.projectRepo.Update(project); err != nil {
		return err
	}

	parentType, parentUUID := model.ProjectType, string(phase.ProjectUUID)
	if phase.ParentUUID != "" {
		parentType, parentUUID = model.PhaseType, phase.ParentUUID
	}
	if err := s.access.grantOnCreate(actor, model.PhaseType, phase.UUID, parentType, parentUUID); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionCreate, model.PhaseType, phase.UUID, phase.Name)
}

func (s *PhaseService) GetByID(id model.PhaseUUID) (*model.Phase, error) {
	return s.repo.GetByID(id)
}

func (s *PhaseService) Update(actor model.Actor, updated *model.Phase) error {
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
	updated.ProjectUUID = stored.ProjectUUID
	updated.OwnerUUID = stored.OwnerUUID
	updated.SerialNumber = stored.SerialNumber
	updated.Hierarchy = stored.Hierarchy
	updated.Statistics = stored.Statistics
	updated.Status = stored.Status
	updated.Version = repo.NewResourceVersion()
	if updated.Slug == "" {
		updated.Slug = utils.Slugify(updated.Name)
	}
	if err := s.repo.Update(updated); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionUpdate, model.PhaseType, updated.UUID, updated.Name)
}

// Delete archives the phase and decrements the project counter. Sprints and
// folders inside the phase are not touched.
func (s *PhaseService) Delete(actor model.Actor, id model.PhaseUUID) error {
	phase, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if phase.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, phase, model.PermissionAdmin); err != nil {
		return err
	}
	phase.DeletedBy = actor.UserUUID
	phase.IsActive = false
	if err := s.repo.Update(phase); err != nil {
		return err
	}
	if err := s.activity.RecordFor(actor, model.ActionDelete, model.PhaseType, phase.UUID, phase.Name); err != nil {
		return err
	}
	if err := s.repo.Delete(id, memdb.NewArchiveMark()); err != nil {
		return err
	}
	if phase.ParentUUID != "" {
		parent, err := s.repo.GetByID(phase.ParentUUID)
		if err == nil && parent.NotArchived() && parent.UnlinkChild(id) {
			if err := s.repo.Update(parent); err != nil {
				return err
			}
		}
	}
	project, err := s.projectRepo.GetByID(phase.ProjectUUID)
	if err == nil && project.NotArchived() {
		project.Statistics.DropPhase()
		project.Statistics.LastUpdated = time.Now().Unix()
		if err := s.projectRepo.Update(project); err != nil {
			return err
		}
	}
	return nil
}

// status transitions

func (s *PhaseService) Start(actor model.Actor, id model.PhaseUUID) error {
	return s.transition(actor, id, "started", (*model.Phase).Start)
}

func (s *PhaseService) Hold(actor model.Actor, id model.PhaseUUID) error {
	return s.transition(actor, id, "put on hold", (*model.Phase).Hold)
}

func (s *PhaseService) Resume(actor model.Actor, id model.PhaseUUID) error {
	return s.transition(actor, id, "resumed", (*model.Phase).Resume)
}

func (s *PhaseService) Complete(actor model.Actor, id model.PhaseUUID) error {
	return s.transition(actor, id, "completed", (*model.Phase).Complete)
}

func (s *PhaseService) Cancel(actor model.Actor, id model.PhaseUUID) error {
	return s.transition(actor, id, "cancelled", (*model.Phase).Cancel)
}

func (s *PhaseService) transition(actor model.Actor, id model.PhaseUUID, details string,
	move func(*model.Phase) bool) error {
	phase, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if phase.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, phase, model.PermissionEdit); err != nil {
		return err
	}
	if !move(phase) {
		return nil
	}
	phase.Version = repo.NewResourceVersion()
	if err := s.repo.Update(phase); err != nil {
		return err
	}
	return s.activity.Record(&model.ActivityEntry{
		OrgUUID:      s.orgUUID,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionStatusChange,
		ResourceType: model.PhaseType,
		ResourceUUID: phase.UUID,
		ResourceName: phase.Name,
		Details:      details,
	})
}

func (s *PhaseService) ListByProject(projectUUID model.ProjectUUID, showArchived bool) ([]*model.Phase, error) {
	return s.repo.ListByProject(projectUUID, showArchived)
}
