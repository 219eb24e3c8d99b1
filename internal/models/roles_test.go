package models

import "testing"

func TestProjectRole_Valid(t *testing.T) {
	valid := []ProjectRole{ProjectRoleOwner, ProjectRoleAdmin, ProjectRoleReviewer, ProjectRoleSubmitter}
	for _, r := range valid {
		if !r.Valid() {
			t.Errorf("role %q should be valid", r)
		}
	}

	invalid := []ProjectRole{"", "superadmin", "Owner", "ADMIN"}
	for _, r := range invalid {
		if r.Valid() {
			t.Errorf("role %q should be invalid", r)
		}
	}
}

func TestProjectRole_CanManageMembers(t *testing.T) {
	cases := map[ProjectRole]bool{
		ProjectRoleOwner:     true,
		ProjectRoleAdmin:     true,
		ProjectRoleReviewer:  false,
		ProjectRoleSubmitter: false,
	}
	for role, want := range cases {
		if got := role.CanManageMembers(); got != want {
			t.Errorf("%s.CanManageMembers() = %v, expected %v", role, got, want)
		}
	}
}

func TestProjectRole_CanReview(t *testing.T) {
	cases := map[ProjectRole]bool{
		ProjectRoleOwner:     false,
		ProjectRoleAdmin:     true,
		ProjectRoleReviewer:  true,
		ProjectRoleSubmitter: false,
	}
	for role, want := range cases {
		if got := role.CanReview(); got != want {
			t.Errorf("%s.CanReview() = %v, expected %v", role, got, want)
		}
	}
}

func TestSubmissionStatus_Valid(t *testing.T) {
	valid := []SubmissionStatus{StatusPending, StatusInReview, StatusApproved, StatusChangesRequested}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("status %q should be valid", s)
		}
	}

	invalid := []SubmissionStatus{"", "rejected", "Pending", "done"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}
