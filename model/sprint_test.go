package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_SprintStatusMachine(t *testing.T) {
	s := &Sprint{Status: SprintPlanning}

	// pausing a planned sprint has no effect
	require.False(t, s.Pause())
	require.Equal(t, SprintPlanning, s.Status)

	require.True(t, s.Start())
	require.Equal(t, SprintActive, s.Status)
	require.NotZero(t, s.ActualStartDate)

	// starting twice is a no-op
	require.False(t, s.Start())
	require.Equal(t, SprintActive, s.Status)

	require.True(t, s.Pause())
	require.Equal(t, SprintPaused, s.Status)
	require.True(t, s.Resume())
	require.Equal(t, SprintActive, s.Status)

	require.True(t, s.Complete())
	require.Equal(t, SprintCompleted, s.Status)
	require.Equal(t, 100, s.Progress)
	require.NotZero(t, s.ActualEndDate)
	require.False(t, s.Complete())
}

func Test_SprintCancelFromAnyState(t *testing.T) {
	for _, status := range []SprintStatus{SprintPlanning, SprintActive, SprintPaused, SprintCompleted} {
		s := &Sprint{Status: status}
		require.True(t, s.Cancel(), "from %s", status)
		require.Equal(t, SprintCancelled, s.Status)
	}
}

func Test_PhaseStatusMachine(t *testing.T) {
	p := &Phase{Status: PhasePlanned}

	require.False(t, p.Hold())
	require.True(t, p.Start())
	require.Equal(t, PhaseInProgress, p.Status)
	require.True(t, p.Hold())
	require.Equal(t, PhaseOnHold, p.Status)
	require.True(t, p.Resume())
	require.True(t, p.Complete())
	require.Equal(t, 100, p.Progress)
	require.False(t, p.Complete())
}
