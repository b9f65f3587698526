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

// DocumentService manages documents. A document lives in exactly one folder;
// access is decided on that folder. The folder's counters and size move with
// every document operation, plus the document counter of the folder's
// project or sprint container.
type DocumentService struct {
	orgUUID model.OrgUUID

	repo        *repo.DocumentRepository
	folderRepo  *repo.FolderRepository
	projectRepo *repo.ProjectRepository
	sprintRepo  *repo.SprintRepository
	resolver    *AccessResolver
	activity    *ActivityService
}

func Documents(tx *io.MemoryStoreTxn, orgUUID model.OrgUUID) *DocumentService {
	return &DocumentService{
		orgUUID:     orgUUID,
		repo:        repo.NewDocumentRepository(tx),
		folderRepo:  repo.NewFolderRepository(tx),
		projectRepo: repo.NewProjectRepository(tx),
		sprintRepo:  repo.NewSprintRepository(tx),
		resolver:    Resolver(tx),
		activity:    Activities(tx),
	}
}

func (s *DocumentService) Create(actor model.Actor, document *model.Document) error {
	if document.Name == "" || document.FolderUUID == "" {
		return consts.ErrInvalidArg
	}
	if document.Size < 0 {
		return consts.ErrInvalidArg
	}
	folder, err := s.folderRepo.GetByID(document.FolderUUID)
	if err != nil {
		return err
	}
	if folder.Archived() {
		return consts.ErrIsArchived
	}
	if folder.OrgUUID != s.orgUUID {
		return consts.ErrWrongOrg
	}
	if err := s.resolver.Require(actor, folder, model.PermissionEdit); err != nil {
		return err
	}

	if document.UUID == "" {
		document.UUID = utils.UUID()
	}
	document.OrgUUID = s.orgUUID
	document.Version = repo.NewResourceVersion()
	if document.Slug == "" {
		document.Slug = utils.Slugify(document.Name)
	}
	document.SerialNumber, err = s.repo.NextSerialNumber(document.FolderUUID)
	if err != nil {
		return err
	}
	document.OwnerUUID = actor.UserUUID
	document.DeletedBy = ""

	if err := s.repo.Create(document); err != nil {
		return err
	}

	folder.Statistics.TotalDocuments++
	folder.Statistics.TotalSize += document.Size
	folder.Statistics.LastUpdated = time.Now().Unix()
	if err := s.folderRepo.Update(folder); err != nil {
		return err
	}
	if err := s.bumpContainerDocuments(folder, +1); err != nil {
		return err
	}
	return s.activity.RecordFor(actor, model.ActionCreate, model.DocumentType, document.UUID, document.Name)
}

// bumpContainerDocuments moves the document counter of the folder's project
// or sprint container; decrements are floored, missing and archived
// containers are skipped.
func (s *DocumentService) bumpContainerDocuments(folder *model.Folder, delta int) error {
	switch {
	case folder.ProjectUUID != "":
		project, err := s.projectRepo.GetByID(folder.ProjectUUID)
		if err != nil || project.Archived() {
			return nil
		}
		if delta > 0 {
			project.Statistics.TotalDocuments++
		} else {
			project.Statistics.DropDocument()
		}
		project.Statistics.LastUpdated = time.Now().Unix()
		return s.projectRepo.Update(project)
	case folder.SprintUUID != "":
		sprint, err := s.sprintRepo.GetByID(folder.SprintUUID)
		if err != nil || sprint.Archived() {
			return nil
		}
		if delta > 0 {
			sprint.Statistics.TotalDocuments++
		} else {
			sprint.Statistics.DropDocument()
		}
		sprint.Statistics.LastUpdated = time.Now().Unix()
		return s.sprintRepo.Update(sprint)
	}
	return nil
}

func (s *DocumentService) GetByID(id model.DocumentUUID) (*model.Document, error) {
	return s.repo.GetByID(id)
}

// Update renames or resizes the document under a version check; the folder's
// size total follows the size delta.
func (s *DocumentService) Update(actor model.Actor, updated *model.Document) error {
	stored, err := s.repo.GetByID(updated.UUID)
	if err != nil {
		return err
	}
	if stored.Archived() {
		return consts.ErrIsArchived
	}
	folder, err := s.folderRepo.GetByID(stored.FolderUUID)
	if err != nil {
		return err
	}
	if err := s.resolver.Require(actor, folder, model.PermissionEdit); err != nil {
		return err
	}
	if stored.Version != updated.Version {
		return consts.ErrBadVersion
	}
	if updated.OrgUUID != "" && updated.OrgUUID != stored.OrgUUID {
		return consts.ErrWrongOrg
	}
	if updated.Size < 0 {
		return consts.ErrInvalidArg
	}
	updated.OrgUUID = stored.OrgUUID
	updated.FolderUUID = stored.FolderUUID
	updated.OwnerUUID = stored.OwnerUUID
	updated.SerialNumber = stored.SerialNumber
	updated.Version = repo.NewResourceVersion()
	if updated.Slug == "" {
		updated.Slug = utils.Slugify(updated.Name)
	}
	if err := s.repo.Update(updated); err != nil {
		return err
	}
	if delta := updated.Size - stored.Size; delta != 0 {
		folder.Statistics.TotalSize += delta
		if folder.Statistics.TotalSize < 0 {
			folder.Statistics.TotalSize = 0
		}
		folder.Statistics.LastUpdated = time.Now().Unix()
		if err := s.folderRepo.Update(folder); err != nil {
			return err
		}
	}
	return s.activity.RecordFor(actor, model.ActionUpdate, model.DocumentType, updated.UUID, updated.Name)
}

// Delete archives the document and releases its size from the folder.
func (s *DocumentService) Delete(actor model.Actor, id model.DocumentUUID) error {
	document, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if document.Archived() {
		return consts.ErrIsArchived
	}
	folder, err := s.folderRepo.GetByID(document.FolderUUID)
	if err != nil {
		return err
	}
	if err := s.resolver.Require(actor, folder, model.PermissionEdit); err != nil {
		return err
	}
	document.DeletedBy = actor.UserUUID
	if err := s.repo.Update(document); err != nil {
		return err
	}
	if err := s.activity.RecordFor(actor, model.ActionDelete, model.DocumentType, document.UUID, document.Name); err != nil {
		return err
	}
	if err := s.repo.Delete(id, memdb.NewArchiveMark()); err != nil {
		return err
	}
	if folder.NotArchived() {
		folder.Statistics.DropDocument(document.Size)
		folder.Statistics.LastUpdated = time.Now().Unix()
		if err := s.folderRepo.Update(folder); err != nil {
			return err
		}
	}
	return s.bumpContainerDocuments(folder, -1)
}

func (s *DocumentService) ListByFolder(folderUUID model.FolderUUID, showArchived bool) ([]*model.Document, error) {
	return s.repo.ListByFolder(folderUUID, showArchived)
}
