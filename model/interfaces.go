package model

// Resource is the common surface of access-controlled records, consumed by
// the access resolver.
type Resource interface {
	ObjType() string
	ObjId() string
	Org() OrgUUID
	Owner() UserUUID
	AssignedMembers() []Member
}
