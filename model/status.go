package model

// SprintStatus lifecycle: planning -> active <-> paused -> completed.
// cancelled is reachable from any state.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "planning"
	SprintActive    SprintStatus = "active"
	SprintPaused    SprintStatus = "paused"
	SprintCompleted SprintStatus = "completed"
	SprintCancelled SprintStatus = "cancelled"
)

func (s SprintStatus) Valid() bool {
	switch s {
	case SprintPlanning, SprintActive, SprintPaused, SprintCompleted, SprintCancelled:
		return true
	}
	return false
}

// PhaseStatus lifecycle mirrors the sprint one under different names.
type PhaseStatus string

const (
	PhasePlanned    PhaseStatus = "planned"
	PhaseInProgress PhaseStatus = "in_progress"
	PhaseOnHold     PhaseStatus = "on_hold"
	PhaseCompleted  PhaseStatus = "completed"
	PhaseCancelled  PhaseStatus = "cancelled"
)

func (s PhaseStatus) Valid() bool {
	switch s {
	case PhasePlanned, PhaseInProgress, PhaseOnHold, PhaseCompleted, PhaseCancelled:
		return true
	}
	return false
}
