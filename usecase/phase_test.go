package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/fixtures"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func Test_PhaseCreate(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Phases(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	phase := &model.Phase{Name: "Discovery", ProjectUUID: fixtures.ProjectUUID1}
	require.NoError(t, service.Create(actor, phase))

	require.Equal(t, "PHS-000001", phase.SerialNumber)
	require.Equal(t, model.PhasePlanned, phase.Status)
	require.Equal(t, 0, phase.HierarchyLevel)

	project, err := Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, project.Statistics.TotalPhases)
}

func Test_PhaseCreateNeedsLiveProject(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.NoError(t, Projects(tx, fixtures.OrgUUID1).Delete(actor, fixtures.ProjectUUID1))

	phase := &model.Phase{Name: "Late", ProjectUUID: fixtures.ProjectUUID1}
	err := Phases(tx, fixtures.OrgUUID1).Create(actor, phase)
	require.ErrorIs(t, err, consts.ErrIsArchived)
}

func Test_PhaseCreateInheritedClassification(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture)
	tx := store.Txn(true)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	// the creator holds admin on the project, so the phase entry is
	// classified inherited from it
	access := Access(tx, fixtures.OrgUUID1)
	entries, err := access.ListByUser(actor.UserUUID)
	require.NoError(t, err)

	var phaseEntry *model.AccessEntry
	for _, entry := range entries {
		if entry.ResourceType == model.PhaseType && entry.ResourceUUID == fixtures.PhaseUUID1 {
			phaseEntry = entry
		}
	}
	require.NotNil(t, phaseEntry)
	require.Equal(t, model.AccessInherited, phaseEntry.AccessType)
	require.Equal(t, model.ProjectType, phaseEntry.InheritedFromType)
	require.Equal(t, fixtures.ProjectUUID1, phaseEntry.InheritedFromUUID)
}

func Test_PhaseDeleteDecrementsProject(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture)
	tx := store.Txn(true)
	service := Phases(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.NoError(t, service.Delete(actor, fixtures.PhaseUUID1))

	project, err := Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Equal(t, 1, project.Statistics.TotalPhases)

	phase, err := service.GetByID(fixtures.PhaseUUID1)
	require.NoError(t, err)
	require.True(t, phase.Archived())
	require.Equal(t, actor.UserUUID, phase.DeletedBy)

	// deleting both never drives the counter below zero
	require.NoError(t, service.Delete(actor, fixtures.PhaseUUID2))
	project, err = Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.Zero(t, project.Statistics.TotalPhases)
}

func Test_PhaseStatusTransitions(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture)
	tx := store.Txn(true)
	service := Phases(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	require.NoError(t, service.Start(actor, fixtures.PhaseUUID1))
	phase, err := service.GetByID(fixtures.PhaseUUID1)
	require.NoError(t, err)
	require.Equal(t, model.PhaseInProgress, phase.Status)

	require.NoError(t, service.Hold(actor, fixtures.PhaseUUID1))
	require.NoError(t, service.Resume(actor, fixtures.PhaseUUID1))
	require.NoError(t, service.Complete(actor, fixtures.PhaseUUID1))

	phase, err = service.GetByID(fixtures.PhaseUUID1)
	require.NoError(t, err)
	require.Equal(t, model.PhaseCompleted, phase.Status)
	require.Equal(t, 100, phase.Progress)

	// each transition left a status_change entry
	activities, err := Activities(tx).ListByResource(model.PhaseType, fixtures.PhaseUUID1)
	require.NoError(t, err)
	statusChanges := 0
	for _, entry := range activities {
		if entry.Action == model.ActionStatusChange {
			statusChanges++
		}
	}
	require.Equal(t, 4, statusChanges)
}

func Test_PhaseNestedDepthAndProject(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture, PhaseFixture)
	tx := store.Txn(true)
	service := Phases(tx, fixtures.OrgUUID1)
	actor := fixtures.ManagerActor(fixtures.OrgUUID1)

	nested := &model.Phase{Name: "Nested", ProjectUUID: fixtures.ProjectUUID1}
	nested.ParentUUID = fixtures.PhaseUUID1
	require.NoError(t, service.Create(actor, nested))
	require.Equal(t, 1, nested.HierarchyLevel)

	// a parent phase from another project is rejected
	other := &model.Phase{Name: "Crossed", ProjectUUID: fixtures.ProjectUUID2}
	other.ParentUUID = fixtures.PhaseUUID1
	require.ErrorIs(t, service.Create(actor, other), consts.ErrNoContainer)
}
