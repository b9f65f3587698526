package consts

import "fmt"

var (
	ErrNotFound        = fmt.Errorf("not found")
	ErrAlreadyExists   = fmt.Errorf("already exists")
	ErrBadVersion      = fmt.Errorf("bad version")
	ErrIsArchived      = fmt.Errorf("entity is archived")
	ErrIsNotArchived   = fmt.Errorf("entity is not archived")
	ErrNoUUID          = fmt.Errorf("uuid is required")
	ErrNilPointer      = fmt.Errorf("nil pointer passed")
	ErrWrongType       = fmt.Errorf("wrong type")
	ErrInvalidArg      = fmt.Errorf("invalid value of argument")
	ErrAccessForbidden = fmt.Errorf("access forbidden")
	ErrDepthLimit      = fmt.Errorf("hierarchy depth limit exceeded")
	ErrHierarchyLoop   = fmt.Errorf("hierarchy loop detected")
	ErrNoContainer     = fmt.Errorf("container reference is required")
	ErrWrongOrg        = fmt.Errorf("entity belongs to another organization")
	ErrOwnerImmutable  = fmt.Errorf("owner cannot be removed")
	ErrAlreadyRevoked  = fmt.Errorf("access entry is already revoked")
)
