// Package policy contains the access control rules for every user, group,
// membership and message operation. All predicates are pure functions: they
// perform no I/O and decide only from the entities the caller has already
// loaded. Callers must resolve an authenticated identity and check that the
// target resources exist before consulting a predicate, so a missing resource
// is reported as not-found rather than as a denial.
package policy

// Identity is the authenticated caller as seen by the policy.
type Identity struct {
	ID      uint
	IsAdmin bool
}

// Group is the view of a group the policy needs for group-scoped decisions.
type Group struct {
	ID      uint
	OwnerID uint
}

// isAdminOrOwner is the shared tie-break: admins override every group-scoped
// predicate, and owning a group grants the same powers over that group only.
func isAdminOrOwner(identity Identity, ownerID uint) bool {
	return identity.IsAdmin || identity.ID == ownerID
}

// CanListUsers reports whether the identity may read the full user roster.
// Every authenticated identity may.
func CanListUsers(identity Identity) bool {
	return true
}

// CanModifyUser reports whether the identity may update another user's
// name, email, password or admin flag. Admin only; a user changing their
// own password goes through CanChangeOwnPassword instead.
func CanModifyUser(identity Identity, targetUserID uint) bool {
	return identity.IsAdmin
}

// CanDeleteUser reports whether the identity may delete the target user.
func CanDeleteUser(identity Identity, targetUserID uint) bool {
	return identity.IsAdmin
}

// CanChangeOwnPassword reports whether the identity may change its own
// password. The target is always the identity itself, never another user.
func CanChangeOwnPassword(identity Identity) bool {
	return true
}

// CanCreateGroup reports whether the identity may create a group.
// The creator is recorded as the group's owner.
func CanCreateGroup(identity Identity) bool {
	return true
}

// OwnedGroupsScope returns the owner filter for listing owned groups:
// admins see every group, everyone else only the groups they own.
func OwnedGroupsScope(identity Identity) (ownerID uint, all bool) {
	if identity.IsAdmin {
		return 0, true
	}
	return identity.ID, false
}

// CanListMemberGroups reports whether the identity may list the groups it
// is a member of. Always allowed; use MemberGroupsScope for the filter.
func CanListMemberGroups(identity Identity) bool {
	return true
}

// MemberGroupsScope returns the user filter for listing memberships.
// Deliberately self-scoped for everyone: the admin override does not apply
// here, admins see only their own memberships.
func MemberGroupsScope(identity Identity) uint {
	return identity.ID
}

// CanListGroupMembers reports whether the identity may read the member
// roster of the group. isMember is whether the identity holds a membership
// row for the group.
func CanListGroupMembers(identity Identity, group Group, isMember bool) bool {
	return isAdminOrOwner(identity, group.OwnerID) || isMember
}

// CanDeleteGroup reports whether the identity may delete the group.
func CanDeleteGroup(identity Identity, group Group) bool {
	return isAdminOrOwner(identity, group.OwnerID)
}

// CanAddMember reports whether the identity may add targetUserID to the
// group. Owner and admin may add anyone; any user may add themselves.
// Whether the target is already a member is a conflict for the caller to
// detect, not an authorization decision.
func CanAddMember(identity Identity, group Group, targetUserID uint) bool {
	return isAdminOrOwner(identity, group.OwnerID) || identity.ID == targetUserID
}

// CanRemoveMember reports whether the identity may remove targetUserID from
// the group. Owner and admin may remove anyone; any user may remove
// themselves. A plain member may not remove a third party.
func CanRemoveMember(identity Identity, group Group, targetUserID uint) bool {
	return isAdminOrOwner(identity, group.OwnerID) || identity.ID == targetUserID
}

// CanAccessGroupMessages reports whether the identity may list or post
// messages in the group. Owners and admins have access even without an
// explicit membership row.
func CanAccessGroupMessages(identity Identity, group Group, isMember bool) bool {
	return isAdminOrOwner(identity, group.OwnerID) || isMember
}
