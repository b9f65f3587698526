package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	DocumentUUID1 = "60000001-0000-0000-0000-000000000000"
	DocumentUUID2 = "60000002-0000-0000-0000-000000000000"
)

func Documents() []model.Document {
	return []model.Document{
		{
			UUID:       DocumentUUID1,
			OrgUUID:    OrgUUID1,
			FolderUUID: FolderUUID1,
			Name:       "Homepage Mockup",
			Size:       2048,
		},
		{
			UUID:       DocumentUUID2,
			OrgUUID:    OrgUUID1,
			FolderUUID: FolderUUID1,
			Name:       "Style Guide",
			Size:       512,
		},
	}
}
