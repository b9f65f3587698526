package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	SprintUUID1 = "40000001-0000-0000-0000-000000000000"
	SprintUUID2 = "40000002-0000-0000-0000-000000000000"
)

func Sprints() []model.Sprint {
	return []model.Sprint{
		{
			UUID:        SprintUUID1,
			OrgUUID:     OrgUUID1,
			ProjectUUID: ProjectUUID1,
			PhaseUUID:   PhaseUUID1,
			Name:        "Sprint 1",
		},
		{
			UUID:        SprintUUID2,
			OrgUUID:     OrgUUID1,
			ProjectUUID: ProjectUUID1,
			Name:        "Sprint 2",
		},
	}
}
