package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/fixtures"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

func Test_OrganizationCreate(t *testing.T) {
	store := RunFixtures(t)
	tx := store.Txn(true)
	service := Organizations(tx)

	err := service.Create(&model.Organization{Name: "No Identifier"})
	require.ErrorIs(t, err, consts.ErrInvalidArg)

	org := &model.Organization{Identifier: "acme", Name: "Acme"}
	require.NoError(t, service.Create(org))
	require.NotEmpty(t, org.UUID)
	require.NotEmpty(t, org.Version)
}

func Test_OrganizationUpdateVersionCheck(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	tx := store.Txn(true)
	service := Organizations(tx)

	stored, err := service.GetByID(fixtures.OrgUUID1)
	require.NoError(t, err)

	stale := &model.Organization{UUID: stored.UUID, Identifier: stored.Identifier, Name: "Renamed", Version: "stale"}
	require.ErrorIs(t, service.Update(stale), consts.ErrBadVersion)

	fresh := &model.Organization{UUID: stored.UUID, Identifier: stored.Identifier, Name: "Renamed", Version: stored.Version}
	require.NoError(t, service.Update(fresh))
}

func Test_OrganizationDeleteCascades(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture, ProjectFixture)
	tx := store.Txn(true)
	service := Organizations(tx)

	err := service.Delete(fixtures.ManagerActor(fixtures.OrgUUID1), fixtures.OrgUUID1)
	require.ErrorIs(t, err, consts.ErrAccessForbidden)

	err = service.Delete(fixtures.AdminActor(fixtures.OrgUUID2), fixtures.OrgUUID1)
	require.ErrorIs(t, err, consts.ErrWrongOrg)

	require.NoError(t, service.Delete(fixtures.AdminActor(fixtures.OrgUUID1), fixtures.OrgUUID1))

	project, err := Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.True(t, project.Archived())

	// restore brings the cascade back
	_, err = Organizations(tx).Restore(fixtures.AdminActor(fixtures.OrgUUID1), fixtures.OrgUUID1)
	require.NoError(t, err)
	project, err = Projects(tx, fixtures.OrgUUID1).GetByID(fixtures.ProjectUUID1)
	require.NoError(t, err)
	require.True(t, project.NotArchived())
}
