package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	OrgUUID1 = "00000001-0000-0000-0000-000000000000"
	OrgUUID2 = "00000002-0000-0000-0000-000000000000"
)

func Organizations() []model.Organization {
	return []model.Organization{
		{
			UUID:       OrgUUID1,
			Version:    "v1",
			Identifier: "org1",
			Name:       "First Org",
		},
		{
			UUID:       OrgUUID2,
			Version:    "v1",
			Identifier: "org2",
			Name:       "Second Org",
		},
	}
}
