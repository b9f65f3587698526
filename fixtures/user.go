package fixtures

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
)

const (
	UserUUID1 = "10000001-0000-0000-0000-000000000000"
	UserUUID2 = "10000002-0000-0000-0000-000000000000"
	UserUUID3 = "10000003-0000-0000-0000-000000000000"
	UserUUID4 = "10000004-0000-0000-0000-000000000000"
)

func AdminActor(orgUUID model.OrgUUID) model.Actor {
	return model.Actor{UserUUID: UserUUID1, OrgUUID: orgUUID, OrgRole: model.RoleAdmin}
}

func ManagerActor(orgUUID model.OrgUUID) model.Actor {
	return model.Actor{UserUUID: UserUUID2, OrgUUID: orgUUID, OrgRole: model.RoleManager}
}

func MemberActor(orgUUID model.OrgUUID) model.Actor {
	return model.Actor{UserUUID: UserUUID3, OrgUUID: orgUUID, OrgRole: model.RoleMember}
}

func ViewerActor(orgUUID model.OrgUUID) model.Actor {
	return model.Actor{UserUUID: UserUUID4, OrgUUID: orgUUID, OrgRole: model.RoleViewer}
}
