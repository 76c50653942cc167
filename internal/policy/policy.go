// Package policy holds the pure authorization rules. No I/O happens here;
// callers pass the acting identity and the relevant resource attributes.
package policy

import "dgdorm/server/internal/models"

// Actor is the authenticated identity attached to a request.
type Actor struct {
	ID   uint
	Role models.Role
}

type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// CanMutateProperty allows admins, and owners acting on their own property.
func CanMutateProperty(actor *Actor, propertyOwnerID uint) Decision {
	if actor == nil {
		return deny("authentication required")
	}
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	if actor.Role == models.RoleOwner && actor.ID == propertyOwnerID {
		return allow()
	}
	return deny("not the property owner")
}

// CanCreateProperty allows owners and admins.
func CanCreateProperty(actor *Actor) Decision {
	if actor == nil {
		return deny("authentication required")
	}
	if actor.Role == models.RoleOwner || actor.Role == models.RoleAdmin {
		return allow()
	}
	return deny("owner role required")
}

// CanModerate gates approve/reject/ban actions to admins.
func CanModerate(actor *Actor) Decision {
	if actor == nil {
		return deny("authentication required")
	}
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	return deny("admin role required")
}

// CanManageFavorites restricts favorites to the account holder.
// Admins are exempt so support staff can act on a user's behalf.
func CanManageFavorites(actor *Actor, targetUserID uint) Decision {
	if actor == nil {
		return deny("authentication required")
	}
	if actor.Role == models.RoleAdmin {
		return allow()
	}
	if actor.ID == targetUserID {
		return allow()
	}
	return deny("favorites are self-service")
}

// CanAccessUser allows self-access and admins.
func CanAccessUser(actor *Actor, targetUserID uint) Decision {
	if actor == nil {
		return deny("authentication required")
	}
	if actor.Role == models.RoleAdmin || actor.ID == targetUserID {
		return allow()
	}
	return deny("cannot access another user")
}
