package model

import (
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/memdb"
)

type Phase struct {
	memdb.ArchiveMark
	Hierarchy

	UUID         PhaseUUID   `json:"uuid"` // PK
	OrgUUID      OrgUUID     `json:"org_uuid"`
	ProjectUUID  ProjectUUID `json:"project_uuid"`
	Version      string      `json:"resource_version"`
	Name         string      `json:"name"`
	Slug         string      `json:"slug"`
	SerialNumber string      `json:"serial_number"`

	OwnerUUID UserUUID `json:"owner_uuid"`
	Members   []Member `json:"members"`

	Status          PhaseStatus `json:"status"`
	Progress        int         `json:"progress"`
	ActualStartDate UnixTime    `json:"actual_start_date"`
	ActualEndDate   UnixTime    `json:"actual_end_date"`

	IsActive  bool     `json:"is_active"`
	DeletedBy UserUUID `json:"deleted_by"`

	Statistics PhaseStatistics `json:"statistics"`
}

func (p *Phase) ObjType() string {
	return PhaseType
}

func (p *Phase) ObjId() string {
	return p.UUID
}

func (p *Phase) Org() OrgUUID {
	return p.OrgUUID
}

func (p *Phase) Owner() UserUUID {
	return p.OwnerUUID
}

func (p *Phase) AssignedMembers() []Member {
	return p.Members
}

// Start moves a planned phase into progress; any other state is a no-op.
func (p *Phase) Start() bool {
	if p.Status != PhasePlanned {
		return false
	}
	p.Status = PhaseInProgress
	p.ActualStartDate = time.Now().Unix()
	return true
}

// Hold pauses an in-progress phase; any other state is a no-op.
func (p *Phase) Hold() bool {
	if p.Status != PhaseInProgress {
		return false
	}
	p.Status = PhaseOnHold
	return true
}

// Resume reverses Hold; any other state is a no-op.
func (p *Phase) Resume() bool {
	if p.Status != PhaseOnHold {
		return false
	}
	p.Status = PhaseInProgress
	return true
}

// Complete finishes the phase, forcing progress to 100 and stamping the
// actual end date. Completing twice is a no-op.
func (p *Phase) Complete() bool {
	if p.Status == PhaseCompleted {
		return false
	}
	p.Status = PhaseCompleted
	p.Progress = 100
	p.ActualEndDate = time.Now().Unix()
	return true
}

// Cancel is reachable from any state.
func (p *Phase) Cancel() bool {
	if p.Status == PhaseCancelled {
		return false
	}
	p.Status = PhaseCancelled
	return true
}
