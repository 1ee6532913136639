package tenant_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pulseboard/pulseboard"
	icontext "github.com/pulseboard/pulseboard/context"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
	"github.com/pulseboard/pulseboard/tenant"
)

func newUserFixture(t *testing.T) (*tenant.Service, *pulseboard.Organization) {
	t.Helper()

	svc, tn := newOrgFixture(t)
	o := &pulseboard.Organization{TenantID: tn.ID, Name: "engineering"}
	if err := svc.CreateOrganization(context.Background(), o); err != nil {
		t.Fatal(err)
	}
	return svc, o
}

func TestCreateUser(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	u := &pulseboard.User{
		Email:          "dev@acme.example.com",
		Name:           "Dev",
		OrganizationID: o.ID,
	}
	if err := svc.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	if !u.ID.Valid() {
		t.Fatal("expected user ID to be set")
	}
	if u.Role != pulseboard.RoleViewer {
		t.Fatalf("expected viewer role default, got %q", u.Role)
	}
	if u.Status != pulseboard.UserActive {
		t.Fatalf("expected active status default, got %q", u.Status)
	}
	if diff := cmp.Diff(pulseboard.RolePermissions(pulseboard.RoleViewer), u.Permissions); diff != "" {
		t.Fatalf("unexpected permissions (-want/+got):\n%s", diff)
	}
}

func TestCreateUser_Validation(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	if err := svc.CreateUser(ctx, &pulseboard.User{Name: "No Email"}); err != tenant.ErrUserEmailEmpty {
		t.Fatalf("expected empty email error, got %v", err)
	}
	if err := svc.CreateUser(ctx, &pulseboard.User{Email: "a@b.c"}); err != tenant.ErrUserNameEmpty {
		t.Fatalf("expected empty name error, got %v", err)
	}
	err := svc.CreateUser(ctx, &pulseboard.User{Email: "a@b.c", Name: "A", Role: "superuser", OrganizationID: o.ID})
	if err != tenant.ErrInvalidRole {
		t.Fatalf("expected invalid role error, got %v", err)
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	if err := svc.CreateUser(ctx, &pulseboard.User{Email: "dup@acme.example.com", Name: "One", OrganizationID: o.ID}); err != nil {
		t.Fatal(err)
	}
	err := svc.CreateUser(ctx, &pulseboard.User{Email: "dup@acme.example.com", Name: "Two", OrganizationID: o.ID})
	if errors.ErrorCode(err) != errors.EConflict {
		t.Fatalf("expected email conflict, got %v", err)
	}
}

func TestRolePermissions(t *testing.T) {
	admin := pulseboard.RolePermissions(pulseboard.RoleAdmin)
	editor := pulseboard.RolePermissions(pulseboard.RoleEditor)
	viewer := pulseboard.RolePermissions(pulseboard.RoleViewer)

	for _, tc := range []struct {
		name       string
		perms      pulseboard.UserPermissions
		capability string
		want       bool
	}{
		{"admin manages users", admin, pulseboard.CapManageUsers, true},
		{"admin inherits editing", admin, pulseboard.CapEditDashboards, true},
		{"admin inherits viewing", admin, pulseboard.CapViewDashboards, true},
		{"editor edits", editor, pulseboard.CapEditDashboards, true},
		{"editor cannot manage users", editor, pulseboard.CapManageUsers, false},
		{"editor inherits viewing", editor, pulseboard.CapViewDashboards, true},
		{"viewer views", viewer, pulseboard.CapViewDashboards, true},
		{"viewer cannot edit", viewer, pulseboard.CapEditDashboards, false},
		{"unknown capability denied", admin, "canLaunchRockets", false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.perms.Allowed(tc.capability); got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}

	if got := pulseboard.RolePermissions("superuser"); got != (pulseboard.UserPermissions{}) {
		t.Fatalf("expected unknown role to map to the empty set, got %+v", got)
	}
}

func TestUpdateUserRole_RecomputesPermissions(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	u := &pulseboard.User{Email: "dev@acme.example.com", Name: "Dev", OrganizationID: o.ID}
	if err := svc.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	got, err := svc.UpdateUserRole(ctx, u.ID, pulseboard.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(pulseboard.RolePermissions(pulseboard.RoleAdmin), got.Permissions); diff != "" {
		t.Fatalf("unexpected permissions (-want/+got):\n%s", diff)
	}

	if _, err := svc.UpdateUserRole(ctx, u.ID, "superuser"); err != tenant.ErrInvalidRole {
		t.Fatalf("expected invalid role error, got %v", err)
	}
}

func TestDeleteUser_DropsMembership(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	u := &pulseboard.User{Email: "dev@acme.example.com", Name: "Dev", OrganizationID: o.ID}
	if err := svc.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := svc.AddMember(ctx, o.ID, u.ID); err != nil {
		t.Fatal(err)
	}

	if err := svc.DeleteUser(ctx, u.ID); err != nil {
		t.Fatal(err)
	}

	got, err := svc.FindOrganizationByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Members) != 0 {
		t.Fatalf("expected membership removed, got %v", got.Members)
	}
	if _, err := svc.FindUserByID(ctx, u.ID); err != tenant.ErrUserNotFound {
		t.Fatalf("expected user not found, got %v", err)
	}
}

func TestSetLastLogin(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	u := &pulseboard.User{Email: "dev@acme.example.com", Name: "Dev", OrganizationID: o.ID}
	if err := svc.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	if err := svc.SetLastLogin(ctx, u.ID); err != nil {
		t.Fatal(err)
	}
	got, err := svc.FindUserByID(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.LastLogin == nil {
		t.Fatal("expected last login to be stamped")
	}
}

func TestHasPermission(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	u := &pulseboard.User{
		Email:          "editor@acme.example.com",
		Name:           "Editor",
		Role:           pulseboard.RoleEditor,
		OrganizationID: o.ID,
	}
	if err := svc.CreateUser(ctx, u); err != nil {
		t.Fatal(err)
	}

	sess := pulseboard.Session{TenantID: o.TenantID, OrganizationID: o.ID, UserID: u.ID}
	sessCtx := icontext.SetSession(ctx, sess)

	ok, err := svc.HasPermission(sessCtx, pulseboard.CapEditDashboards)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected editor to edit dashboards")
	}

	ok, err = svc.HasPermission(sessCtx, pulseboard.CapManageUsers)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected editor to be denied user management")
	}

	// no session on context
	ok, err = svc.HasPermission(ctx, pulseboard.CapViewDashboards)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected denial without a session")
	}

	// session pointing at a deleted user
	ghost := pulseboard.Session{TenantID: o.TenantID, OrganizationID: o.ID, UserID: platformID(t, "00000000000000fe")}
	ok, err = svc.HasPermission(icontext.SetSession(ctx, ghost), pulseboard.CapViewDashboards)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("expected denial for an unknown user")
	}
}
