package usecase

import (
	"fmt"
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/utils"
)

// AccessService manages permission grants on resources.
type AccessService struct {
	orgUUID model.OrgUUID

	tx       *io.MemoryStoreTxn
	repo     *repo.AccessEntryRepository
	resolver *AccessResolver
	activity *ActivityService
}

func Access(tx *io.MemoryStoreTxn, orgUUID model.OrgUUID) *AccessService {
	return &AccessService{
		orgUUID:  orgUUID,
		tx:       tx,
		repo:     repo.NewAccessEntryRepository(tx),
		resolver: Resolver(tx),
		activity: Activities(tx),
	}
}

// Grant gives userUUID the permission level on the resource; the actor needs
// admin on it. An existing live entry is updated in place, a revoked one is
// reactivated with its revocation fields cleared. The entry is classified
// inherited when the grantor holds a live entry on the resource's immediate
// parent, direct otherwise.
func (s *AccessService) Grant(actor model.Actor, resource model.Resource, userUUID model.UserUUID,
	level model.PermissionLevel) (*model.AccessEntry, error) {
	if !level.Valid() {
		return nil, consts.ErrInvalidArg
	}
	if err := s.resolver.Require(actor, resource, model.PermissionAdmin); err != nil {
		return nil, err
	}
	parentType, parentUUID, err := s.immediateParent(resource.ObjType(), resource.ObjId())
	if err != nil {
		return nil, err
	}
	accessType, inheritedFromType, inheritedFromUUID, err := s.classify(actor.UserUUID, parentType, parentUUID)
	if err != nil {
		return nil, err
	}
	entry, err := s.upsert(actor.UserUUID, userUUID, resource.ObjType(), resource.ObjId(),
		level, accessType, inheritedFromType, inheritedFromUUID)
	if err != nil {
		return nil, err
	}
	err = s.activity.Record(&model.ActivityEntry{
		OrgUUID:      s.orgUUID,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionAccessGrant,
		ResourceType: resource.ObjType(),
		ResourceUUID: resource.ObjId(),
		Category:     model.CategoryAccess,
		Details:      fmt.Sprintf("granted %s to %s", level, userUUID),
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Revoke disables the user's live entry on the resource, keeping the row for
// audit. The actor needs admin on the resource.
func (s *AccessService) Revoke(actor model.Actor, resource model.Resource, userUUID model.UserUUID, reason string) error {
	if err := s.resolver.Require(actor, resource, model.PermissionAdmin); err != nil {
		return err
	}
	entry, err := s.repo.GetByIdentity(s.orgUUID, userUUID, resource.ObjType(), resource.ObjId())
	if err != nil {
		return err
	}
	if !entry.Active {
		return consts.ErrAlreadyRevoked
	}
	entry.Revoke(actor.UserUUID, reason)
	if err := s.repo.Update(entry); err != nil {
		return err
	}
	return s.activity.Record(&model.ActivityEntry{
		OrgUUID:      s.orgUUID,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionAccessRevoke,
		ResourceType: resource.ObjType(),
		ResourceUUID: resource.ObjId(),
		Category:     model.CategoryAccess,
		Severity:     model.SeverityWarning,
		Details:      fmt.Sprintf("revoked access of %s: %s", userUUID, reason),
	})
}

// CascadeGrant gives userUUID the level on the project and, as inherited
// grants, on every live phase, sprint and folder inside it. The actor needs
// admin on the project.
func (s *AccessService) CascadeGrant(actor model.Actor, projectUUID model.ProjectUUID, userUUID model.UserUUID,
	level model.PermissionLevel) (int, error) {
	project, err := repo.NewProjectRepository(s.tx).GetByID(projectUUID)
	if err != nil {
		return 0, err
	}
	if project.Archived() {
		return 0, consts.ErrIsArchived
	}
	if err := s.resolver.Require(actor, project, model.PermissionAdmin); err != nil {
		return 0, err
	}

	if _, err := s.upsert(actor.UserUUID, userUUID, model.ProjectType, project.UUID,
		level, model.AccessDirect, "", ""); err != nil {
		return 0, err
	}
	granted := 1

	inherit := func(resourceType, resourceUUID string) error {
		_, err := s.upsert(actor.UserUUID, userUUID, resourceType, resourceUUID,
			level, model.AccessInherited, model.ProjectType, project.UUID)
		return err
	}

	phases, err := repo.NewPhaseRepository(s.tx).ListByProject(project.UUID, false)
	if err != nil {
		return granted, err
	}
	for _, phase := range phases {
		if err := inherit(model.PhaseType, phase.UUID); err != nil {
			return granted, err
		}
		granted++
	}

	sprints, err := repo.NewSprintRepository(s.tx).ListByProject(project.UUID, false)
	if err != nil {
		return granted, err
	}
	for _, sprint := range sprints {
		if err := inherit(model.SprintType, sprint.UUID); err != nil {
			return granted, err
		}
		granted++
	}

	folders, err := s.projectFolders(project.UUID)
	if err != nil {
		return granted, err
	}
	for _, folder := range folders {
		if err := inherit(model.FolderType, folder.UUID); err != nil {
			return granted, err
		}
		granted++
	}

	err = s.activity.Record(&model.ActivityEntry{
		OrgUUID:      s.orgUUID,
		UserUUID:     actor.UserUUID,
		Action:       model.ActionBulkGrant,
		ResourceType: model.ProjectType,
		ResourceUUID: project.UUID,
		ResourceName: project.Name,
		Category:     model.CategoryAccess,
		Details:      fmt.Sprintf("cascade granted %s to %s on %d resources", level, userUUID, granted),
	})
	return granted, err
}

// projectFolders collects every live folder anywhere under the project. The
// org-wide scan resolves each folder's project through its container record,
// so a live folder keeps its place in the project even after its phase or
// sprint has been archived.
func (s *AccessService) projectFolders(projectUUID model.ProjectUUID) ([]*model.Folder, error) {
	all, err := repo.NewFolderRepository(s.tx).List(s.orgUUID, false)
	if err != nil {
		return nil, err
	}
	phaseRepo := repo.NewPhaseRepository(s.tx)
	sprintRepo := repo.NewSprintRepository(s.tx)
	folders := []*model.Folder{}
	for _, folder := range all {
		var owner model.ProjectUUID
		switch {
		case folder.ProjectUUID != "":
			owner = folder.ProjectUUID
		case folder.PhaseUUID != "":
			phase, err := phaseRepo.GetByID(folder.PhaseUUID)
			if err == consts.ErrNotFound {
				continue
			}
			if err != nil {
				return nil, err
			}
			owner = phase.ProjectUUID
		case folder.SprintUUID != "":
			sprint, err := sprintRepo.GetByID(folder.SprintUUID)
			if err == consts.ErrNotFound {
				continue
			}
			if err != nil {
				return nil, err
			}
			owner = sprint.ProjectUUID
		}
		if owner == projectUUID {
			folders = append(folders, folder)
		}
	}
	return folders, nil
}

// upsert creates or refreshes the single live entry for the natural identity.
func (s *AccessService) upsert(grantedBy, userUUID model.UserUUID, resourceType, resourceUUID string,
	level model.PermissionLevel, accessType model.AccessType, inheritedFromType, inheritedFromUUID string) (*model.AccessEntry, error) {
	entry, err := s.repo.GetByIdentity(s.orgUUID, userUUID, resourceType, resourceUUID)
	switch err {
	case nil:
		entry.Permission = level
		entry.GrantedBy = grantedBy
		entry.GrantedAt = time.Now().Unix()
		entry.AccessType = accessType
		entry.InheritedFromType = inheritedFromType
		entry.InheritedFromUUID = inheritedFromUUID
		entry.Active = true
		entry.RevokedBy = ""
		entry.RevokedAt = 0
		entry.RevocationReason = ""
		return entry, s.repo.Update(entry)
	case consts.ErrNotFound:
		entry = &model.AccessEntry{
			UUID:              utils.UUID(),
			OrgUUID:           s.orgUUID,
			UserUUID:          userUUID,
			ResourceType:      resourceType,
			ResourceUUID:      resourceUUID,
			Permission:        level,
			GrantedBy:         grantedBy,
			GrantedAt:         time.Now().Unix(),
			AccessType:        accessType,
			InheritedFromType: inheritedFromType,
			InheritedFromUUID: inheritedFromUUID,
			Active:            true,
		}
		return entry, s.repo.Create(entry)
	default:
		return nil, err
	}
}

// grantOnCreate writes the creator's admin entry for a fresh resource, even
// for privileged creators whose role would cover the resource anyway: the
// entry is part of the resource's grant table, not only a resolution input.
// It is classified once: inherited when the creator holds a live entry on the
// immediate parent, direct otherwise.
func (s *AccessService) grantOnCreate(actor model.Actor, resourceType, resourceUUID string,
	parentType, parentUUID string) error {
	accessType, inheritedFromType, inheritedFromUUID, err := s.classify(actor.UserUUID, parentType, parentUUID)
	if err != nil {
		return err
	}
	_, err = s.upsert(actor.UserUUID, actor.UserUUID, resourceType, resourceUUID,
		model.PermissionAdmin, accessType, inheritedFromType, inheritedFromUUID)
	return err
}

// classify decides direct vs inherited for a new grant: inherited iff the
// grantor holds a live entry on the resource's immediate parent.
func (s *AccessService) classify(grantor model.UserUUID, parentType, parentUUID string) (
	model.AccessType, string, string, error) {
	if parentUUID == "" {
		return model.AccessDirect, "", "", nil
	}
	parentEntry, err := s.repo.GetByIdentity(s.orgUUID, grantor, parentType, parentUUID)
	switch {
	case err == nil && parentEntry.Active:
		return model.AccessInherited, parentType, parentUUID, nil
	case err != nil && err != consts.ErrNotFound:
		return model.AccessDirect, "", "", err
	}
	return model.AccessDirect, "", "", nil
}

// immediateParent resolves the grant parent of an existing resource: the
// same-type parent when the resource is nested, its container otherwise.
// Mirrors what the create paths pass to grantOnCreate.
func (s *AccessService) immediateParent(resourceType, resourceUUID string) (string, string, error) {
	switch resourceType {
	case model.ProjectType:
		project, err := repo.NewProjectRepository(s.tx).GetByID(resourceUUID)
		if err != nil {
			return "", "", err
		}
		if project.ParentUUID != "" {
			return model.ProjectType, project.ParentUUID, nil
		}
	case model.PhaseType:
		phase, err := repo.NewPhaseRepository(s.tx).GetByID(resourceUUID)
		if err != nil {
			return "", "", err
		}
		if phase.ParentUUID != "" {
			return model.PhaseType, phase.ParentUUID, nil
		}
		return model.ProjectType, phase.ProjectUUID, nil
	case model.SprintType:
		sprint, err := repo.NewSprintRepository(s.tx).GetByID(resourceUUID)
		if err != nil {
			return "", "", err
		}
		switch {
		case sprint.ParentUUID != "":
			return model.SprintType, sprint.ParentUUID, nil
		case sprint.PhaseUUID != "":
			return model.PhaseType, sprint.PhaseUUID, nil
		}
		return model.ProjectType, sprint.ProjectUUID, nil
	case model.FolderType:
		folder, err := repo.NewFolderRepository(s.tx).GetByID(resourceUUID)
		if err != nil {
			return "", "", err
		}
		switch {
		case folder.ParentUUID != "":
			return model.FolderType, folder.ParentUUID, nil
		case folder.ProjectUUID != "":
			return model.ProjectType, folder.ProjectUUID, nil
		case folder.PhaseUUID != "":
			return model.PhaseType, folder.PhaseUUID, nil
		case folder.SprintUUID != "":
			return model.SprintType, folder.SprintUUID, nil
		}
	case model.DocumentType:
		document, err := repo.NewDocumentRepository(s.tx).GetByID(resourceUUID)
		if err != nil {
			return "", "", err
		}
		return model.FolderType, document.FolderUUID, nil
	}
	return "", "", nil
}

// BulkCascadeGrant runs CascadeGrant for every user in one write transaction:
// either all grants land or none do.
func BulkCascadeGrant(store *io.MemoryStore, orgUUID model.OrgUUID, actor model.Actor,
	projectUUID model.ProjectUUID, userUUIDs []model.UserUUID, level model.PermissionLevel) (int, error) {
	tx := store.Txn(true)
	service := Access(tx, orgUUID)
	total := 0
	for _, userUUID := range userUUIDs {
		granted, err := service.CascadeGrant(actor, projectUUID, userUUID, level)
		if err != nil {
			tx.Abort()
			return 0, err
		}
		total += granted
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *AccessService) ListByResource(resource model.Resource) ([]*model.AccessEntry, error) {
	return s.repo.ListByResource(resource.ObjType(), resource.ObjId(), false)
}

func (s *AccessService) ListByUser(userUUID model.UserUUID) ([]*model.AccessEntry, error) {
	return s.repo.ListByUser(s.orgUUID, userUUID, false)
}
