package model

import (
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

type Sprint struct {
	memdb.ArchiveMark
	Hierarchy

	UUID         SprintUUID  `json:"uuid"` // PK
	OrgUUID      OrgUUID     `json:"org_uuid"`
	ProjectUUID  ProjectUUID `json:"project_uuid"`
	PhaseUUID    PhaseUUID   `json:"phase_uuid"` // optional
	Version      string      `json:"resource_version"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	SerialNumber string      `json:"serial_number"`

	OwnerUUID UserUUID `json:"owner_uuid"`
	Members   []Member `json:"members"`

	Status          SprintStatus `json:"status"`
	Progress        int          `json:"progress"`
	StartDate       UnixTime     `json:"start_date"`
	EndDate         UnixTime     `json:"end_date"`
	ActualStartDate UnixTime     `json:"actual_start_date"`
	ActualEndDate   UnixTime     `json:"actual_end_date"`

	IsActive  bool     `json:"is_active"`
	DeletedBy UserUUID `json:"deleted_by"`

	Statistics SprintStatistics `json:"statistics"`
}

func (s *Sprint) ObjType() string {
	return SprintType
}

func (s *Sprint) ObjId() string {
	return s.UUID
}

func (s *Sprint) Org() OrgUUID {
	return s.OrgUUID
}

func (s *Sprint) Owner() UserUUID {
	return s.OwnerUUID
}

func (s *Sprint) AssignedMembers() []Member {
	return s.Members
}

// Start activates a planned sprint and stamps the actual start date; any
// other state is a no-op.
func (s *Sprint) Start() bool {
	if s.Status != SprintPlanning {
		return false
	}
	s.Status = SprintActive
	s.ActualStartDate = time.Now().Unix()
	return true
}

// Pause suspends an active sprint; any other state is a no-op.
func (s *Sprint) Pause() bool {
	if s.Status != SprintActive {
		return false
	}
	s.Status = SprintPaused
	return true
}

// Resume reverses Pause; any other state is a no-op.
func (s *Sprint) Resume() bool {
	if s.Status != SprintPaused {
		return false
	}
	s.Status = SprintActive
	return true
}

// Complete finishes the sprint, forcing progress to 100 and stamping the
// actual end date. Completing twice is a no-op.
func (s *Sprint) Complete() bool {
	if s.Status == SprintCompleted {
		return false
	}
	s.Status = SprintCompleted
	s.Progress = 100
	s.ActualEndDate = time.Now().Unix()
	return true
}

// Cancel is reachable from any state.
func (s *Sprint) Cancel() bool {
	if s.Status == SprintCancelled {
		return false
	}
	s.Status = SprintCancelled
	return true
}
