package usecase

import (
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/fixtures"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
)

func RunFixtures(t *testing.T, fixtureFuncs ...func(t *testing.T, store *io.MemoryStore)) *io.MemoryStore {
	schema, err := repo.GetSchema()
	require.NoError(t, err)
	store, err := io.NewMemoryStore(schema, hclog.NewNullLogger())
	require.NoError(t, err)
	for _, fixture := range fixtureFuncs {
		fixture(t, store)
	}
	return store
}

func createOrganizations(t *testing.T, service *OrganizationService, orgs ...model.Organization) {
	for _, org := range orgs {
		tmp := org
		err := service.Create(&tmp)
		require.NoError(t, err)
	}
}

func OrganizationFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	createOrganizations(t, Organizations(tx), fixtures.Organizations()...)
	err := tx.Commit()
	require.NoError(t, err)
}

func createProjects(t *testing.T, service *ProjectService, actor model.Actor, projects ...model.Project) {
	for _, project := range projects {
		tmp := project
		err := service.Create(actor, &tmp)
		require.NoError(t, err)
	}
}

func ProjectFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	createProjects(t, service, fixtures.ManagerActor(fixtures.OrgUUID1), fixtures.Projects()...)
	err := tx.Commit()
	require.NoError(t, err)
}

func createPhases(t *testing.T, service *PhaseService, actor model.Actor, phases ...model.Phase) {
	for _, phase := range phases {
		tmp := phase
		err := service.Create(actor, &tmp)
		require.NoError(t, err)
	}
}

func PhaseFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	service := Phases(tx, fixtures.OrgUUID1)
	createPhases(t, service, fixtures.ManagerActor(fixtures.OrgUUID1), fixtures.Phases()...)
	err := tx.Commit()
	require.NoError(t, err)
}

func createSprints(t *testing.T, service *SprintService, actor model.Actor, sprints ...model.Sprint) {
	for _, sprint := range sprints {
		tmp := sprint
		err := service.Create(actor, &tmp)
		require.NoError(t, err)
	}
}

func SprintFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	service := Sprints(tx, fixtures.OrgUUID1)
	createSprints(t, service, fixtures.ManagerActor(fixtures.OrgUUID1), fixtures.Sprints()...)
	err := tx.Commit()
	require.NoError(t, err)
}

func createFolders(t *testing.T, service *FolderService, actor model.Actor, folders ...model.Folder) {
	for _, folder := range folders {
		tmp := folder
		err := service.Create(actor, &tmp)
		require.NoError(t, err)
	}
}

func FolderFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	service := Folders(tx, fixtures.OrgUUID1)
	createFolders(t, service, fixtures.ManagerActor(fixtures.OrgUUID1), fixtures.Folders()...)
	err := tx.Commit()
	require.NoError(t, err)
}

func createDocuments(t *testing.T, service *DocumentService, actor model.Actor, documents ...model.Document) {
	for _, document := range documents {
		tmp := document
		err := service.Create(actor, &tmp)
		require.NoError(t, err)
	}
}

func DocumentFixture(t *testing.T, store *io.MemoryStore) {
	tx := store.Txn(true)
	service := Documents(tx, fixtures.OrgUUID1)
	createDocuments(t, service, fixtures.ManagerActor(fixtures.OrgUUID1), fixtures.Documents()...)
	err := tx.Commit()
	require.NoError(t, err)
}
