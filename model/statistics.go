package model

import "math"

// CompletionRate derives a percentage from counters; it is never stored.
func CompletionRate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

// ProjectStatistics is maintained incrementally by cascade operations, never
// recomputed by a full rescan.
type ProjectStatistics struct {
	TotalPhases      int      `json:"total_phases"`
	TotalSprints     int      `json:"total_sprints"`
	CompletedSprints int      `json:"completed_sprints"`
	TotalFolders     int      `json:"total_folders"`
	TotalDocuments   int      `json:"total_documents"`
	LastUpdated      UnixTime `json:"last_updated"`
}

func (s *ProjectStatistics) SprintCompletionRate() int {
	return CompletionRate(s.CompletedSprints, s.TotalSprints)
}

type PhaseStatistics struct {
	TotalSprints     int      `json:"total_sprints"`
	CompletedSprints int      `json:"completed_sprints"`
	TotalFolders     int      `json:"total_folders"`
	LastUpdated      UnixTime `json:"last_updated"`
}

func (s *PhaseStatistics) SprintCompletionRate() int {
	return CompletionRate(s.CompletedSprints, s.TotalSprints)
}

type SprintStatistics struct {
	TotalTasks     int      `json:"total_tasks"`
	CompletedTasks int      `json:"completed_tasks"`
	TotalFolders   int      `json:"total_folders"`
	TotalDocuments int      `json:"total_documents"`
	LastUpdated    UnixTime `json:"last_updated"`
}

func (s *SprintStatistics) TaskCompletionRate() int {
	return CompletionRate(s.CompletedTasks, s.TotalTasks)
}

type FolderStatistics struct {
	TotalDocuments  int      `json:"total_documents"`
	TotalSubfolders int      `json:"total_subfolders"`
	TotalSize       int64    `json:"total_size"`
	LastUpdated     UnixTime `json:"last_updated"`
}

// decrement floors a counter at zero; removal never drives counters negative.
func decrement(counter *int) {
	if *counter > 0 {
		*counter--
	}
}

func decrementSize(counter *int64, delta int64) {
	*counter -= delta
	if *counter < 0 {
		*counter = 0
	}
}

func (s *ProjectStatistics) DropPhase()           { decrement(&s.TotalPhases) }
func (s *ProjectStatistics) DropSprint()          { decrement(&s.TotalSprints) }
func (s *ProjectStatistics) DropCompletedSprint() { decrement(&s.CompletedSprints) }
func (s *ProjectStatistics) DropFolder()          { decrement(&s.TotalFolders) }
func (s *ProjectStatistics) DropDocument()        { decrement(&s.TotalDocuments) }

func (s *PhaseStatistics) DropSprint()          { decrement(&s.TotalSprints) }
func (s *PhaseStatistics) DropCompletedSprint() { decrement(&s.CompletedSprints) }
func (s *PhaseStatistics) DropFolder()          { decrement(&s.TotalFolders) }

func (s *SprintStatistics) DropFolder()   { decrement(&s.TotalFolders) }
func (s *SprintStatistics) DropDocument() { decrement(&s.TotalDocuments) }

func (s *FolderStatistics) DropSubfolder() { decrement(&s.TotalSubfolders) }

func (s *FolderStatistics) DropDocument(size int64) {
	decrement(&s.TotalDocuments)
	decrementSize(&s.TotalSize, size)
}
