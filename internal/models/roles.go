package models

// GlobalRole is the account-level default role assigned at registration.
// It shares lexical values with ProjectRole but the two scopes are
// independent: per-project authorization always reads the membership row,
// never the account role.
type GlobalRole string

const (
	GlobalRoleOwner     GlobalRole = "owner"
	GlobalRoleAdmin     GlobalRole = "admin"
	GlobalRoleReviewer  GlobalRole = "reviewer"
	GlobalRoleSubmitter GlobalRole = "submitter"
)

func (r GlobalRole) Valid() bool {
	switch r {
	case GlobalRoleOwner, GlobalRoleAdmin, GlobalRoleReviewer, GlobalRoleSubmitter:
		return true
	}
	return false
}

// ProjectRole is a user's role within a single project and is authoritative
// for all in-project authorization checks.
type ProjectRole string

const (
	ProjectRoleOwner     ProjectRole = "owner"
	ProjectRoleAdmin     ProjectRole = "admin"
	ProjectRoleReviewer  ProjectRole = "reviewer"
	ProjectRoleSubmitter ProjectRole = "submitter"
)

func (r ProjectRole) Valid() bool {
	switch r {
	case ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleReviewer, ProjectRoleSubmitter:
		return true
	}
	return false
}

// CanManageMembers reports whether the role may add or remove project members.
func (r ProjectRole) CanManageMembers() bool {
	return r == ProjectRoleAdmin || r == ProjectRoleOwner
}

// CanReview reports whether the role may change submission status.
func (r ProjectRole) CanReview() bool {
	return r == ProjectRoleAdmin || r == ProjectRoleReviewer
}
