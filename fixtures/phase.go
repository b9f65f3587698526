package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	PhaseUUID1 = "30000001-0000-0000-0000-000000000000"
	PhaseUUID2 = "30000002-0000-0000-0000-000000000000"
)

func Phases() []model.Phase {
	return []model.Phase{
		{
			UUID:        PhaseUUID1,
			OrgUUID:     OrgUUID1,
			ProjectUUID: ProjectUUID1,
			Name:        "Discovery",
		},
		{
			UUID:        PhaseUUID2,
			OrgUUID:     OrgUUID1,
			ProjectUUID: ProjectUUID1,
			Name:        "Implementation",
		},
	}
}
