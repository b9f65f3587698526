package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	ProjectUUID1 = "20000001-0000-0000-0000-000000000000"
	ProjectUUID2 = "20000002-0000-0000-0000-000000000000"
)

func Projects() []model.Project {
	return []model.Project{
		{
			UUID:    ProjectUUID1,
			OrgUUID: OrgUUID1,
			Name:    "Website Redesign",
		},
		{
			UUID:    ProjectUUID2,
			OrgUUID: OrgUUID1,
			Name:    "Mobile App",
		},
	}
}
