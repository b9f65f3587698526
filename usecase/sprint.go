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

// SprintService manages sprints. A sprint always belongs to a project and may
// additionally sit inside one of its phases; completion moves the counters on
// both.
type SprintService struct {
	orgUUID model.OrgUUID

	repo        *repo.SprintRepository
	projectRepo *repo.ProjectRepository
	phaseRepo   *repo.PhaseRepository
	access      *AccessService
	resolver    *AccessResolver
	activity    *ActivityService
}

func Sprints(tx *io.MemoryStoreTxn, orgUUID model.OrgUUID) *SprintService {
	return &SprintService{
		orgUUID:     orgUUID,
		repo:        repo.NewSprintRepository(tx),
		projectRepo: repo.NewProjectRepository(tx),
		phaseRepo:   repo.NewPhaseRepository(tx),
		access:      Access(tx, orgUUID),
		resolver:    Resolver(tx),
		activity:    Activities(tx),
	}
}

func (s *SprintService) Create(actor model.Actor, sprint *model.Sprint) error {
	if sprint.Name == "" || sprint.ProjectUUID == "" {
		return consts.ErrInvalidArg
	}
	project, err := s.projectRepo.GetByID(sprint.ProjectUUID)
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

	var phase *model.Phase
	if sprint.PhaseUUID != "" {
		phase, err = s.phaseRepo.GetByID(sprint.PhaseUUID)
		if err != nil {
			return err
		}
		if phase.Archived() {
			return consts.ErrIsArchived
		}
		if phase.ProjectUUID != sprint.ProjectUUID {
			return consts.ErrNoContainer
		}
	}

	if sprint.UUID == "" {
		sprint.UUID = utils.UUID()
	}
	sprint.OrgUUID = s.orgUUID
	sprint.Version = repo.NewResourceVersion()
	if sprint.Slug == "" {
		sprint.Slug = utils.Slugify(sprint.Name)
	}

	var parent *model.Sprint
	if sprint.ParentUUID != "" {
		parent, err = s.repo.GetByID(sprint.ParentUUID)
		if err != nil {
			return err
		}
		if parent.Archived() {
			return consts.ErrIsArchived
		}
		if parent.ProjectUUID != sprint.ProjectUUID {
			return consts.ErrNoContainer
		}
		if !parent.CanCreateChild() {
			return consts.ErrDepthLimit
		}
		sprint.MaterializeUnder(&parent.Hierarchy, parent.UUID, sprint.UUID)
	} else {
		sprint.MaterializeRoot(sprint.UUID)
	}
	sprint.ChildUUIDs = nil

	sprint.SerialNumber, err = s.repo.NextSerialNumber(sprint.ProjectUUID)
	if err != nil {
		return err
	}
	sprint.OwnerUUID = actor.UserUUID
	sprint.Members = []model.Member{model.NewMember(actor.UserUUID, model.MemberRoleOwner)}
	sprint.Status = model.SprintPlanning
	sprint.Progress = 0
	sprint.ActualStartDate = 0
	sprint.ActualEndDate = 0
	sprint.IsActive = true
	sprint.DeletedBy = ""
	sprint.Statistics = model.SprintStatistics{LastUpdated: time.Now().Unix()}

	if err := s.repo.Create(sprint); err != nil {
		return err
	}
	if parent != nil {
		parent.LinkChild(sprint.UUID)
		if err := s.repo.Update(parent); err != nil {
			return err
		}
	}
	project.Statistics.TotalSprints++
	project.Statistics.LastUpdated = time.Now().Unix()
	if err := s.projectRepo.Update(project); err != nil {
		return err
	}
	if phase != nil {
		phase.Statistics.TotalSprints++
		phase.Statistics.LastUpdated = time.Now().Unix()
		if err := s.phaseRepo.Update(phase); err != nil {
			return err
		}
	}

	parentType, parentUUID := model.ProjectType, string(sprint.ProjectUUID)
	switch {
	case sprint.ParentUUID != "":
		parentType, parentUUID = model.SprintType, sprint.ParentUUID
	case sprint.PhaseUUID != "":
		parentType, parentUUID = model.PhaseType, sprint.PhaseUUID
	}
	if err := s.access.grantOnCreate(actor, model.SprintType, sprint.UUID, parentType, parentUUID); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionCreate, model.SprintType, sprint.UUID, sprint.Name)
}

func (s *SprintService) GetByID(id model.SprintUUID) (*model.Sprint, error) {
	return s.repo.GetByID(id)
}

func (s *SprintService) Update(actor model.Actor, updated *model.Sprint) error {
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
	updated.PhaseUUID = stored.PhaseUUID
	updated.OwnerUUID = stored.OwnerUUID
	updated.SerialNumber = stored.SerialNumber
	updated.Hierarchy = stored.Hierarchy
	updated.Statistics = stored.Statistics
	updated.Status = stored.Status
	updated.ActualStartDate = stored.ActualStartDate
	updated.ActualEndDate = stored.ActualEndDate
	updated.Version = repo.NewResourceVersion()
	if updated.Slug == "" {
		updated.Slug = utils.Slugify(updated.Name)
	}
	if err := s.repo.Update(updated); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionUpdate, model.SprintType, updated.UUID, updated.Name)
}

// Delete archives the sprint and decrements the container counters. A
// completed sprint also leaves the completed counters.
func (s *SprintService) Delete(actor model.Actor, id model.SprintUUID) error {
	sprint, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sprint.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, sprint, model.PermissionAdmin); err != nil {
		return err
	}
	sprint.DeletedBy = actor.UserUUID
	sprint.IsActive = false
	if err := s.repo.Update(sprint); err != nil {
		return err
	}
	if err := s.activity.RecordFor(actor, model.ActionDelete, model.SprintType, sprint.UUID, sprint.Name); err != nil {
		return err
	}
	if err := s.repo.Delete(id, memdb.NewArchiveMark()); err != nil {
		return err
	}
	if sprint.ParentUUID != "" {
		parent, err := s.repo.GetByID(sprint.ParentUUID)
		if err == nil && parent.NotArchived() && parent.UnlinkChild(id) {
			if err := s.repo.Update(parent); err != nil {
				return err
			}
		}
	}
	completed := sprint.Status == model.SprintCompleted
	project, err := s.projectRepo.GetByID(sprint.ProjectUUID)
	if err == nil && project.NotArchived() {
		project.Statistics.DropSprint()
		if completed {
			project.Statistics.DropCompletedSprint()
		}
		project.Statistics.LastUpdated = time.Now().Unix()
		if err := s.projectRepo.Update(project); err != nil {
			return err
		}
	}
	if sprint.PhaseUUID != "" {
		phase, err := s.phaseRepo.GetByID(sprint.PhaseUUID)
		if err == nil && phase.NotArchived() {
			phase.Statistics.DropSprint()
			if completed {
				phase.Statistics.DropCompletedSprint()
			}
			phase.Statistics.LastUpdated = time.Now().Unix()
			if err := s.phaseRepo.Update(phase); err != nil {
				return err
			}
		}
	}
	return nil
}

// status transitions

func (s *SprintService) Start(actor model.Actor, id model.SprintUUID) error {
	return s.transition(actor, id, "started", (*model.Sprint).Start)
}

func (s *SprintService) Pause(actor model.Actor, id model.SprintUUID) error {
	return s.transition(actor, id, "paused", (*model.Sprint).Pause)
}

func (s *SprintService) Resume(actor model.Actor, id model.SprintUUID) error {
	return s.transition(actor, id, "resumed", (*model.Sprint).Resume)
}

func (s *SprintService) Cancel(actor model.Actor, id model.SprintUUID) error {
	return s.transition(actor, id, "cancelled", (*model.Sprint).Cancel)
}

// Complete finishes the sprint and moves the completed counters on its
// containers.
func (s *SprintService) Complete(actor model.Actor, id model.SprintUUID) error {
	sprint, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sprint.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, sprint, model.PermissionEdit); err != nil {
		return err
	}
	if !sprint.Complete() {
		return nil
	}
	sprint.Version = repo.NewResourceVersion()
	if err := s.repo.Update(sprint); err != nil {
		return err
	}
	project, err := s.projectRepo.GetByID(sprint.ProjectUUID)
	if err == nil && project.NotArchived() {
		project.Statistics.CompletedSprints++
		project.Statistics.LastUpdated = time.Now().Unix()
		if err := s.projectRepo.Update(project); err != nil {
			return err
		}
	}
	if sprint.PhaseUUID != "" {
		phase, err := s.phaseRepo.GetByID(sprint.PhaseUUID)
		if err == nil && phase.NotArchived() {
			phase.Statistics.CompletedSprints++
			phase.Statistics.LastUpdated = time.Now().Unix()
			if err := s.phaseRepo.Update(phase); err != nil {
				return err
			}
		}
	}
	return s.activity.Record(&model.ActivityEntry{
		OrgUUID:      s.orgUUID,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionStatusChange,
		ResourceType: model.SprintType,
		ResourceUUID: sprint.UUID,
		ResourceName: sprint.Name,
		Details:      "completed",
	})
}

func (s *SprintService) transition(actor model.Actor, id model.SprintUUID, details string,
	move func(*model.Sprint) bool) error {
	sprint, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if sprint.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, sprint, model.PermissionEdit); err != nil {
		return err
	}
	if !move(sprint) {
		return nil
	}
	sprint.Version = repo.NewResourceVersion()
	if err := s.repo.Update(sprint); err != nil {
		return err
	}
	return s.activity.Record(&model.ActivityEntry{
		OrgUUID:      s.orgUUID,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionStatusChange,
		ResourceType: model.SprintType,
		ResourceUUID: sprint.UUID,
		ResourceName: sprint.Name,
		Details:      details,
	})
}

func (s *SprintService) ListByProject(projectUUID model.ProjectUUID, showArchived bool) ([]*model.Sprint, error) {
	return s.repo.ListByProject(projectUUID, showArchived)
}

func (s *SprintService) ListByPhase(phaseUUID model.PhaseUUID, showArchived bool) ([]*model.Sprint, error) {
	return s.repo.ListByPhase(phaseUUID, showArchived)
}
