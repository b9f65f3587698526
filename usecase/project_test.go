package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/fixtures"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
)

func Test_ProjectCreate(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	project := &model.Project{Name: "Website Redesign"}
	require.NoError(t, service.Create(actor, project))

	require.NotEmpty(t, project.UUID)
	require.Equal(t, "PRJ-000001", project.SerialNumber)
	require.Equal(t, "website-redesign", project.Slug)
	require.Equal(t, actor.UserUUID, project.OwnerUUID)
	require.Equal(t, 0, project.HierarchyLevel)
	require.Equal(t, project.UUID, project.HierarchyPath)
	require.True(t, project.IsActive)
	require.Len(t, project.Members, 1)
	require.Equal(t, model.MemberRoleOwner, project.Members[0].Role)
	require.Zero(t, project.Statistics.TotalPhases)

	// the creator got an admin grant, classified direct for a root resource
	entry, err := repo.NewAccessEntryRepository(tx).GetByIdentity(
		fixtures.OrgUUID1, actor.UserUUID, model.ProjectType, project.UUID)
	require.NoError(t, err)
	require.Equal(t, model.PermissionAdmin, entry.Permission)
	require.Equal(t, model.AccessDirect, entry.AccessType)

	activities, err := Activities(tx).ListByResource(model.ProjectType, project.UUID)
	require.NoError(t, err)
	require.Len(t, activities, 1)
	require.Equal(t, model.ActionCreate, activities[0].Action)
}

func Test_ProjectCreateForbiddenForViewer(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)

	err := service.Create(fixtures.ViewerActor(fixtures.OrgUUID1), &model.Project{Name: "Nope"})
	require.ErrorIs(t, err, consts.ErrAccessForbidden)
}

func Test_ProjectCreateChild(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	child := &model.Project{Name: "Child"}
	child.ParentUUID = fixtures.ProjectUUID1
	require.NoError(t, service.Create(actor, child))

	require.Equal(t, 1, child.HierarchyLevel)
	require.Equal(t, fixtures.ProjectUUID1+"/"+child.UUID, child.HierarchyPath)
	require.Equal(t, child.PathDepth(), child.HierarchyLevel+1)

	parent, err := service.GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Contains(t, parent.ChildUUIDs, child.UUID)

	// the creator already held admin on the parent, so the child entry is
	// classified inherited
	entry, err := repo.NewAccessEntryRepository(tx).GetByIdentity(
		fixtures.OrgUUID1, actor.UserUUID, model.ProjectType, child.UUID)
	require.NoError(t, err)
	require.Equal(t, model.AccessInherited, entry.AccessType)
	require.Equal(t, model.ProjectType, entry.InheritedFromType)
	require.Equal(t, fixtures.ProjectUUID1, entry.InheritedFromUUID)
}

func Test_ProjectCreateDepthLimit(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	root := &model.Project{Name: "Root"}
	require.NoError(t, service.Create(actor, root))

	// place a parent directly at the deepest allowed level
	deep := &model.Project{Name: "Deep"}
	deep.ParentUUID = root.UUID
	require.NoError(t, service.Create(actor, deep))
	deep.HierarchyLevel = consts.MaxHierarchyDepth - 1
	deep.Version = repo.NewResourceVersion()
	require.NoError(t, repo.NewProjectRepository(tx).Update(deep))

	blocked := &model.Project{Name: "Too Deep"}
	blocked.ParentUUID = deep.UUID
	require.ErrorIs(t, service.Create(actor, blocked), consts.ErrDepthLimit)
}

func Test_ProjectUpdateVersionCheck(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	stored, err := service.GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)

	stale := &model.Project{UUID: stored.UUID, Name: "Renamed", Version: "stale"}
	require.ErrorIs(t, service.Update(actor, stale), consts.ErrBadVersion)

	fresh := &model.Project{UUID: stored.UUID, Name: "Renamed", Version: stored.Version}
	require.NoError(t, service.Update(actor, fresh))
	require.NotEqual(t, stored.Version, fresh.Version)
	require.Equal(t, stored.SerialNumber, fresh.SerialNumber)
}

func Test_ProjectOrgImmutable(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	stored, err := service.GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)

	moved := &model.Project{UUID: stored.UUID, OrgUUID: fixtures.OrgUUID2, Name: "Moved", Version: stored.Version}
	require.ErrorIs(t, service.Update(actor, moved), consts.ErrWrongOrg)
}

func Test_ProjectOwnerImmutable(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	stored, err := service.GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)

	updated := &model.Project{UUID: stored.UUID, Name: "P", Version: stored.Version, OwnerUUID: fixtures.UserUUID4}
	require.ErrorIs(t, service.Update(actor, updated), consts.ErrOwnerImmutable)
}

func Test_ProjectDeleteKeepsChildrenAndEntries(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.NoError(t, service.Delete(actor, fixtures.ProjectUUID1))

	archived, err := service.GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.True(t, archived.Archived())
	require.Equal(t, actor.UserUUID, archived.DeletedBy)
	require.False(t, archived.IsActive)

	// phases inside the project stay live
	phase, err := Phases(tx, fixtures.OrgUUID1).GetByID(fixtures.PhaseUUID1)
	require.NoError(t, err)
	require.True(t, phase.NotArchived())

	// the creator's entry on the project stays as well
	entry, err := repo.NewAccessEntryRepository(tx).GetByIdentity(
		fixtures.OrgUUID1, actor.UserUUID, model.ProjectType, fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.True(t, entry.Active)

	require.ErrorIs(t, service.Delete(actor, fixtures.ProjectUUID1), consts.ErrIsArchived)
}

func Test_ProjectRestore(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	manager := fixtures.ManagerActor(fixtures.OrgUUID1)
	admin := fixtures.AdminActor(fixtures.OrgUUID1)

	require.NoError(t, service.Delete(manager, fixtures.ProjectUUID1))

	_, err := service.Restore(manager, fixtures.ProjectUUID1)
	require.ErrorIs(t, err, consts.ErrAccessForbidden)

	restored, err := service.Restore(admin, fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.True(t, restored.NotArchived())
	require.True(t, restored.IsActive)
	require.Empty(t, restored.DeletedBy)
}

func Test_ProjectDescendants(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	root := &model.Project{Name: "Root"}
	require.NoError(t, service.Create(actor, root))
	mid := &model.Project{Name: "Mid"}
	mid.ParentUUID = root.UUID
	require.NoError(t, service.Create(actor, mid))
	leaf := &model.Project{Name: "Leaf"}
	leaf.ParentUUID = mid.UUID
	require.NoError(t, service.Create(actor, leaf))

	descendants, err := service.Descendants(root.UUID)
	require.NoError(t, err)
	require.Equal(t, []string{mid.UUID, leaf.UUID}, descendants)

	ancestors, err := service.Ancestors(leaf.UUID)
	require.NoError(t, err)
	require.Equal(t, []string{root.UUID, mid.UUID}, ancestors)
}
