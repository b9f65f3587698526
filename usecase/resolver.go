package usecase

import (
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/consts"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/io"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/model"
	"github.com/GyanaprakashKhandual/Metronique-Issue-Web-sub001/repo"
)

// AccessResolver decides whether an actor may perform an operation of the
// required level on a resource. The policy is evaluated in order:
//
//  1. cross-organization access is always denied;
//  2. a privileged org role (superadmin, admin) is allowed everything;
//  3. the owner is allowed everything on their resource;
//  4. an assigned member may always view;
//  5. otherwise the live access entry for (user, resource) decides.
//
// Revoked, expired and archived entries never grant anything.
type AccessResolver struct {
	entries *repo.AccessEntryRepository
}

func Resolver(tx *io.MemoryStoreTxn) *AccessResolver {
	return &AccessResolver{entries: repo.NewAccessEntryRepository(tx)}
}

func (r *AccessResolver) Resolve(actor model.Actor, resource model.Resource, required model.PermissionLevel) (bool, error) {
	if actor.OrgUUID != resource.Org() {
		return false, nil
	}
	if actor.OrgRole.IsPrivileged() {
		return true, nil
	}
	if resource.Owner() == actor.UserUUID {
		return true, nil
	}
	if required == model.PermissionView {
		for _, member := range resource.AssignedMembers() {
			if member.UserUUID == actor.UserUUID {
				return true, nil
			}
		}
	}
	entry, err := r.entries.GetByIdentity(actor.OrgUUID, actor.UserUUID, resource.ObjType(), resource.ObjId())
	if err == consts.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return entry.HasPermission(required), nil
}

// Require is Resolve folded into the error convention of the services.
func (r *AccessResolver) Require(actor model.Actor, resource model.Resource, required model.PermissionLevel) error {
	allowed, err := r.Resolve(actor, resource, required)
	if err != nil {
		return err
	}
	if !allowed {
		return consts.ErrAccessForbidden
	}
	return nil
}
