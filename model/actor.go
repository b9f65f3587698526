package model

// Actor is the already-authenticated caller identity. Issued and validated
// outside the core; the core only consumes it.
type Actor struct {
	UserUUID UserUUID `json:"user_uuid"`
	OrgUUID  OrgUUID  `json:"org_uuid"`
	OrgRole  OrgRole  `json:"org_role"`
}
