package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	FolderUUID1 = "50000001-0000-0000-0000-000000000000"
	FolderUUID2 = "50000002-0000-0000-0000-000000000000"
)

func Folders() []model.Folder {
	return []model.Folder{
		{
			UUID:        FolderUUID1,
			OrgUUID:     OrgUUID1,
			ProjectUUID: ProjectUUID1,
			Name:        "Designs",
		},
		{
			UUID:      FolderUUID2,
			OrgUUID:   OrgUUID1,
			PhaseUUID: PhaseUUID1,
			Name:      "Research",
		},
	}
}
