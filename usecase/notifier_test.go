package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/fixtures"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

type recordingNotifier struct {
	entries []*model.ActivityEntry
}

func (n *recordingNotifier) Notify(entry *model.ActivityEntry) error {
	n.entries = append(n.entries, entry)
	return nil
}

func Test_ActivitySinkForwardsCommittedEntries(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	notifier := &recordingNotifier{}
	store.AddSink(NewActivitySink(notifier))

	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	project := &model.Project{Name: "Notify Me"}
	require.NoError(t, service.Create(fixtures.ManagerActor(fixtures.OrgUUID1), project))

	// nothing leaves the store before commit
	require.Empty(t, notifier.entries)

	require.NoError(t, tx.Commit())
	require.Len(t, notifier.entries, 1)
	require.Equal(t, model.ActionCreate, notifier.entries[0].Action)
	require.Equal(t, project.UUID, notifier.entries[0].ResourceUUID)
}

func Test_ActivitySinkIgnoresAbortedTxn(t *testing.T) {
	store := RunFixtures(t, OrganizationFixture)
	notifier := &recordingNotifier{}
	store.AddSink(NewActivitySink(notifier))

	tx := store.Txn(true)
	service := Projects(tx, fixtures.OrgUUID1)
	require.NoError(t, service.Create(fixtures.ManagerActor(fixtures.OrgUUID1), &model.Project{Name: "Dropped"}))
	tx.Abort()

	require.Empty(t, notifier.entries)
}
