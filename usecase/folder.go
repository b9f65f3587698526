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

// FolderService manages folders. A root folder hangs off exactly one
// container (project, phase or sprint); a nested folder takes the container
// of its parent folder.
type FolderService struct {
	orgUUID model.OrgUUID

	repo        *repo.FolderRepository
	docRepo     *repo.DocumentRepository
	projectRepo *repo.ProjectRepository
	phaseRepo   *repo.PhaseRepository
	sprintRepo  *repo.SprintRepository
	access      *AccessService
	resolver    *AccessResolver
	activity    *ActivityService
}

func Folders(tx *io.MemoryStoreTxn, orgUUID model.OrgUUID) *FolderService {
	return &FolderService{
		orgUUID:     orgUUID,
		repo:        repo.NewFolderRepository(tx),
		docRepo:     repo.NewDocumentRepository(tx),
		projectRepo: repo.NewProjectRepository(tx),
		phaseRepo:   repo.NewPhaseRepository(tx),
		sprintRepo:  repo.NewSprintRepository(tx),
		access:      Access(tx, orgUUID),
		resolver:    Resolver(tx),
		activity:    Activities(tx),
	}
}

// container resolves the folder's container resource, whichever of the three
// references is set.
func (s *FolderService) container(folder *model.Folder) (model.Resource, error) {
	switch {
	case folder.ProjectUUID != "":
		return s.projectRepo.GetByID(folder.ProjectUUID)
	case folder.PhaseUUID != "":
		return s.phaseRepo.GetByID(folder.PhaseUUID)
	case folder.SprintUUID != "":
		return s.sprintRepo.GetByID(folder.SprintUUID)
	}
	return nil, consts.ErrNoContainer
}

func (s *FolderService) Create(actor model.Actor, folder *model.Folder) error {
	if folder.Name == "" {
		return consts.ErrInvalidArg
	}

	var parent *model.Folder
	var err error
	if folder.ParentUUID != "" {
		parent, err = s.repo.GetByID(folder.ParentUUID)
		if err != nil {
			return err
		}
		if parent.Archived() {
			return consts.ErrIsArchived
		}
		if parent.OrgUUID != s.orgUUID {
			return consts.ErrWrongOrg
		}
		if !parent.CanCreateChild() {
			return consts.ErrDepthLimit
		}
		// nested folders live in the container of their parent
		folder.ProjectUUID = parent.ProjectUUID
		folder.PhaseUUID = parent.PhaseUUID
		folder.SprintUUID = parent.SprintUUID
	}
	if !folder.HasContainer() {
		return consts.ErrNoContainer
	}

	container, err := s.container(folder)
	if err != nil {
		return err
	}
	if container.Org() != s.orgUUID {
		return consts.ErrWrongOrg
	}
	if err := s.resolver.Require(actor, container, model.PermissionEdit); err != nil {
		return err
	}

	if folder.UUID == "" {
		folder.UUID = utils.UUID()
	}
	folder.OrgUUID = s.orgUUID
	folder.Version = repo.NewResourceVersion()
	if folder.Slug == "" {
		folder.Slug = utils.Slugify(folder.Name)
	}
	if parent != nil {
		folder.MaterializeUnder(&parent.Hierarchy, parent.UUID, folder.UUID)
	} else {
		folder.MaterializeRoot(folder.UUID)
	}
	folder.ChildUUIDs = nil

	folder.SerialNumber, err = s.repo.NextSerialNumber(s.orgUUID)
	if err != nil {
		return err
	}
	folder.OwnerUUID = actor.UserUUID
	folder.Members = []model.Member{model.NewMember(actor.UserUUID, model.MemberRoleOwner)}
	folder.IsActive = true
	folder.DeletedBy = ""
	folder.Statistics = model.FolderStatistics{LastUpdated: time.Now().Unix()}

	if err := s.repo.Create(folder); err != nil {
		return err
	}
	if parent != nil {
		parent.LinkChild(folder.UUID)
		parent.Statistics.TotalSubfolders++
		parent.Statistics.LastUpdated = time.Now().Unix()
		if err := s.repo.Update(parent); err != nil {
			return err
		}
	}
	if err := s.bumpContainerFolders(folder, +1); err != nil {
		return err
	}

	parentType, parentUUID := container.ObjType(), container.ObjId()
	if parent != nil {
		parentType, parentUUID = model.FolderType, parent.UUID
	}
	if err := s.access.grantOnCreate(actor, model.FolderType, folder.UUID, parentType, parentUUID); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionCreate, model.FolderType, folder.UUID, folder.Name)
}

// bumpContainerFolders moves the container's folder counter by one in either
// direction; decrements are floored.
func (s *FolderService) bumpContainerFolders(folder *model.Folder, delta int) error {
	now := time.Now().Unix()
	switch {
	case folder.ProjectUUID != "":
		project, err := s.projectRepo.GetByID(folder.ProjectUUID)
		if err != nil || project.Archived() {
			return nil
		}
		if delta > 0 {
			project.Statistics.TotalFolders++
		} else {
			project.Statistics.DropFolder()
		}
		project.Statistics.LastUpdated = now
		return s.projectRepo.Update(project)
	case folder.PhaseUUID != "":
		phase, err := s.phaseRepo.GetByID(folder.PhaseUUID)
		if err != nil || phase.Archived() {
			return nil
		}
		if delta > 0 {
			phase.Statistics.TotalFolders++
		} else {
			phase.Statistics.DropFolder()
		}
		phase.Statistics.LastUpdated = now
		return s.phaseRepo.Update(phase)
	case folder.SprintUUID != "":
		sprint, err := s.sprintRepo.GetByID(folder.SprintUUID)
		if err != nil || sprint.Archived() {
			return nil
		}
		if delta > 0 {
			sprint.Statistics.TotalFolders++
		} else {
			sprint.Statistics.DropFolder()
		}
		sprint.Statistics.LastUpdated = now
		return s.sprintRepo.Update(sprint)
	}
	return nil
}

func (s *FolderService) GetByID(id model.FolderUUID) (*model.Folder, error) {
	return s.repo.GetByID(id)
}

func (s *FolderService) Update(actor model.Actor, updated *model.Folder) error {
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
	updated.SprintUUID = stored.SprintUUID
	updated.OwnerUUID = stored.OwnerUUID
	updated.SerialNumber = stored.SerialNumber
	updated.Hierarchy = stored.Hierarchy
	updated.Statistics = stored.Statistics
	updated.Version = repo.NewResourceVersion()
	if updated.Slug == "" {
		updated.Slug = utils.Slugify(updated.Name)
	}
	if err := s.repo.Update(updated); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionUpdate, model.FolderType, updated.UUID, updated.Name)
}

// Delete archives the folder and decrements the container and parent
// counters. Subfolders and documents inside stay as they are.
func (s *FolderService) Delete(actor model.Actor, id model.FolderUUID) error {
	folder, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if folder.Archived() {
		return consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, folder, model.PermissionAdmin); err != nil {
		return err
	}
	folder.DeletedBy = actor.UserUUID
	folder.IsActive = false
	if err := s.repo.Update(folder); err != nil {
		return err
	}
	if err := s.activity.RecordFor(actor, model.ActionDelete, model.FolderType, folder.UUID, folder.Name); err != nil {
		return err
	}
	if err := s.repo.Delete(id, memdb.NewArchiveMark()); err != nil {
		return err
	}
	if folder.ParentUUID != "" {
		parent, err := s.repo.GetByID(folder.ParentUUID)
		if err == nil && parent.NotArchived() {
			parent.UnlinkChild(id)
			parent.Statistics.DropSubfolder()
			parent.Statistics.LastUpdated = time.Now().Unix()
			if err := s.repo.Update(parent); err != nil {
				return err
			}
		}
	}
	return s.bumpContainerFolders(folder, -1)
}

// RecalculateSize walks the live subtree and sums up the document sizes; the
// result replaces the folder's stored total.
func (s *FolderService) RecalculateSize(id model.FolderUUID) (int64, error) {
	folder, err := s.repo.GetByID(id)
	if err != nil {
		return 0, err
	}
	subtree, err := AllDescendants(s.fetchNode, id)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, folderUUID := range append([]string{id}, subtree...) {
		docs, err := s.docRepo.ListByFolder(folderUUID, false)
		if err != nil {
			return 0, err
		}
		for _, doc := range docs {
			total += doc.Size
		}
	}
	folder.Statistics.TotalSize = total
	folder.Statistics.LastUpdated = time.Now().Unix()
	return total, s.repo.Update(folder)
}

func (s *FolderService) List(showArchived bool) ([]*model.Folder, error) {
	return s.repo.List(s.orgUUID, showArchived)
}

func (s *FolderService) fetchNode(id string) (*model.Hierarchy, error) {
	folder, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if folder.Archived() {
		return nil, consts.ErrNotFound
	}
	return &folder.Hierarchy, nil
}
