package model

import (
	"strings"
	"time"

	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
)

// Member is an assignment of a user to a resource. The owner is implicitly
// always a member with RoleOwner and cannot be removed.
type Member struct {
	UserUUID   UserUUID `json:"user_uuid"`
	Role       string   `json:"role"`
	AssignedAt UnixTime `json:"assigned_at"`
}

const (
	MemberRoleOwner    = "owner"
	MemberRoleAssignee = "assignee"
)

// Hierarchy is embedded into every resource type supporting same-type
// nesting. Level and path are materialized at creation or re-parenting and
// are never retroactively propagated to descendants when an ancestor moves.
type Hierarchy struct {
	ParentUUID     string   `json:"parent_uuid"`
	ChildUUIDs     []string `json:"child_uuids"`
	HierarchyLevel int      `json:"hierarchy_level"`
	HierarchyPath  string   `json:"hierarchy_path"`
}

// MaterializeRoot places the resource at the top of a tree.
func (h *Hierarchy) MaterializeRoot(selfUUID string) {
	h.ParentUUID = ""
	h.HierarchyLevel = 0
	h.HierarchyPath = selfUUID
}

// MaterializeUnder places the resource one level below parent.
func (h *Hierarchy) MaterializeUnder(parent *Hierarchy, parentUUID, selfUUID string) {
	h.ParentUUID = parentUUID
	h.HierarchyLevel = parent.HierarchyLevel + 1
	h.HierarchyPath = parent.HierarchyPath + "/" + selfUUID
}

// Parent returns the same-type parent id, empty for roots.
func (h *Hierarchy) Parent() string {
	return h.ParentUUID
}

// CanCreateChild reports whether a child may be nested under this resource
// without breaking the depth cap.
func (h *Hierarchy) CanCreateChild() bool {
	return h.HierarchyLevel < consts.MaxHierarchyDepth-1
}

// PathDepth returns the number of path segments; for a consistent record it
// equals HierarchyLevel+1.
func (h *Hierarchy) PathDepth() int {
	if h.HierarchyPath == "" {
		return 0
	}
	return len(strings.Split(h.HierarchyPath, "/"))
}

// LinkChild idempotently appends a child id; reports whether the list changed.
func (h *Hierarchy) LinkChild(childUUID string) bool {
	for _, id := range h.ChildUUIDs {
		if id == childUUID {
			return false
		}
	}
	h.ChildUUIDs = append(h.ChildUUIDs, childUUID)
	return true
}

// UnlinkChild removes a child id; reports whether the list changed.
func (h *Hierarchy) UnlinkChild(childUUID string) bool {
	for i, id := range h.ChildUUIDs {
		if id == childUUID {
			h.ChildUUIDs = append(h.ChildUUIDs[:i], h.ChildUUIDs[i+1:]...)
			return true
		}
	}
	return false
}

// NewMember stamps an assignment entry with the current time.
func NewMember(userUUID UserUUID, role string) Member {
	return Member{
		UserUUID:   userUUID,
		Role:       role,
		AssignedAt: time.Now().Unix(),
	}
}
