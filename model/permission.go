package model

// PermissionLevel is a totally ordered set: view < edit < admin.
type PermissionLevel string

const (
	PermissionView  PermissionLevel = "view"
	PermissionEdit  PermissionLevel = "edit"
	PermissionAdmin PermissionLevel = "admin"
)

// permissionOrder maps each level to its index in the total order.
var permissionOrder = map[PermissionLevel]int{
	PermissionView:  0,
	PermissionEdit:  1,
	PermissionAdmin: 2,
}

func (p PermissionLevel) Valid() bool {
	_, ok := permissionOrder[p]
	return ok
}

// Covers reports whether p is at least as strong as required.
func (p PermissionLevel) Covers(required PermissionLevel) bool {
	pi, ok1 := permissionOrder[p]
	ri, ok2 := permissionOrder[required]
	return ok1 && ok2 && pi >= ri
}

// OrgRole is the organization-wide role carried by an authenticated actor.
// superadmin and admin bypass per-resource access entries entirely.
type OrgRole string

const (
	RoleSuperAdmin OrgRole = "superadmin"
	RoleAdmin      OrgRole = "admin"
	RoleManager    OrgRole = "manager"
	RoleMember     OrgRole = "member"
	RoleViewer     OrgRole = "viewer"
)

func (r OrgRole) IsPrivileged() bool {
	return r == RoleSuperAdmin || r == RoleAdmin
}
