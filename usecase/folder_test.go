package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/fixtures"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func Test_FolderCreateNeedsContainer(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Folders(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.ErrorIs(t, service.Create(actor, &model.Folder{Name: "Loose"}), consts.ErrNoContainer)

	folder := &model.Folder{Name: "Docs", ProjectUUID: fixtures.ProjectUUID1}
	require.NoError(t, service.Create(actor, folder))
	require.Equal(t, "FLD-000001", folder.SerialNumber)

	project, err := Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, project.Statistics.TotalFolders)
}

func Test_NestedFolderInheritsContainer(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, FolderFixture)
	tx := store.Txn(true)
	service := Folders(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	nested := &model.Folder{Name: "Subfolder"}
	nested.ParentUUID = fixtures.FolderUUID1
	require.NoError(t, service.Create(actor, nested))

	require.Equal(t, fixtures.ProjectUUID1, nested.ProjectUUID)
	require.Equal(t, 1, nested.HierarchyLevel)

	parent, err := service.GetByID(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.Contains(t, parent.ChildUUIDs, nested.UUID)
	require.Equal(t, 1, parent.Statistics.TotalSubfolders)
}

func Test_FolderDeleteDecrements(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, FolderFixture)
	tx := store.Txn(true)
	service := Folders(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.NoError(t, service.Delete(actor, fixtures.FolderUUID1))

	project, err := Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Zero(t, project.Statistics.TotalFolders)

	folder, err := service.GetByID(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.True(t, folder.Archived())
}

func Test_FolderRecalculateSize(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, FolderFixture, DocumentFixture)
	tx := store.Txn(true)
	service := Folders(tx, fixtures.OrgUUID1)
	docService := Documents(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	// nested folder with one more document
	nested := &model.Folder{Name: "Sub"}
	nested.ParentUUID = fixtures.FolderUUID1
	require.NoError(t, service.Create(actor, nested))
	require.NoError(t, docService.Create(actor, &model.Document{
		Name: "Notes", FolderUUID: nested.UUID, Size: 100,
	}))

	total, err := service.RecalculateSize(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.Equal(t, int64(2048+512+100), total)

	folder, err := service.GetByID(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.Equal(t, total, folder.Statistics.TotalSize)
}

func Test_DocumentCreate(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, FolderFixture)
	tx := store.Txn(true)
	service := Documents(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	document := &model.Document{Name: "Spec Sheet", FolderUUID: fixtures.FolderUUID1, Size: 1024}
	require.NoError(t, service.Create(actor, document))
	require.Equal(t, "DOC-000001", document.SerialNumber)
	require.Equal(t, "spec-sheet", document.Slug)

	folder, err := Folders(tx, fixtures.OrgUUID1).GetByID(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, folder.Statistics.TotalDocuments)
	require.Equal(t, int64(1024), folder.Statistics.TotalSize)

	project, err := Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, project.Statistics.TotalDocuments)
}

func Test_DocumentDeleteReleasesSize(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, FolderFixture, DocumentFixture)
	tx := store.Txn(true)
	service := Documents(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.NoError(t, service.Delete(actor, fixtures.DocumentUUID1))

	folder, err := Folders(tx, fixtures.OrgUUID1).GetByID(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, folder.Statistics.TotalDocuments)
	require.Equal(t, int64(512), folder.Statistics.TotalSize)

	document, err := service.GetByID(fixtures.DocumentUUID1)
	require.NoError(t, err)
	require.True(t, document.Archived())
	require.Equal(t, actor.UserUUID, document.DeletedBy)
}

func Test_DocumentInSprintFolderCounts(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, SprintFixture)
	tx := store.Txn(true)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	folder := &model.Folder{Name: "Sprint Files", SprintUUID: fixtures.SprintUUID1}
	require.NoError(t, Folders(tx, fixtures.OrgUUID1).Create(actor, folder))

	service := Documents(tx, fixtures.OrgUUID1)
	document := &model.Document{Name: "Burndown", FolderUUID: folder.UUID, Size: 64}
	require.NoError(t, service.Create(actor, document))

	sprint, err := Sprints(tx, fixtures.OrgUUID1).GetByID(fixtures.SprintUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, sprint.Statistics.TotalDocuments)

	require.NoError(t, service.Delete(actor, document.UUID))
	sprint, err = Sprints(tx, fixtures.OrgUUID1).GetByID(fixtures.SprintUUID1)
	require.NoError(t, err)
	require.Zero(t, sprint.Statistics.TotalDocuments)
}

func Test_DocumentUpdateSizeDelta(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture, FolderFixture, DocumentFixture)
	tx := store.Txn(true)
	service := Documents(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	stored, err := service.GetByID(fixtures.DocumentUUID1)
	require.NoError(t, err)

	updated := &model.Document{UUID: stored.UUID, Name: stored.Name, Size: 4096, Version: stored.Version}
	require.NoError(t, service.Update(actor, updated))

	folder, err := Folders(tx, fixtures.OrgUUID1).GetByID(fixtures.FolderUUID1)
	require.NoError(t, err)
	require.Equal(t, int64(4096+512), folder.Statistics.TotalSize)
}
