package tenant_test

import (
	"context"
	"testing"

	"github.com/pulseboard/pulseboard"
	"github.com/pulseboard/pulseboard/tenant"
)

func TestCreateInvitation(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	inv := &pulseboard.UserInvitation{
		Email:          "new@acme.example.com",
		OrganizationID: o.ID,
	}
	if err := svc.CreateInvitation(ctx, inv); err != nil {
		t.Fatal(err)
	}

	if !inv.ID.Valid() {
		t.Fatal("expected invitation ID to be set")
	}
	if inv.Token == "" {
		t.Fatal("expected a token to be issued")
	}
	if inv.Status != pulseboard.InvitationPending {
		t.Fatalf("expected pending status, got %q", inv.Status)
	}
	if inv.Role != pulseboard.RoleViewer {
		t.Fatalf("expected viewer role default, got %q", inv.Role)
	}
	if want := inv.InvitedAt.Add(pulseboard.InvitationTTL); !inv.ExpiresAt.Equal(want) {
		t.Fatalf("expected expiry %v, got %v", want, inv.ExpiresAt)
	}
}

func TestCreateInvitation_UnknownOrg(t *testing.T) {
	svc, _ := newUserFixture(t)

	inv := &pulseboard.UserInvitation{
		Email:          "new@acme.example.com",
		OrganizationID: platformID(t, "00000000000000fd"),
	}
	if err := svc.CreateInvitation(context.Background(), inv); err != tenant.ErrOrgNotFound {
		t.Fatalf("expected org not found, got %v", err)
	}
}

func TestAcceptInvitation(t *testing.T) {
	svc, o := newUserFixture(t)
	ctx := context.Background()

	inviter := &pulseboard.User{
		Email:          "admin@acme.example.com",
		Name:           "Admin",
		Role:           pulseboard.RoleAdmin,
		OrganizationID: o.ID,
	}
	if err := svc.CreateUser(ctx, inviter); err != nil {
		t.Fatal(err)
	}

	inv := &pulseboard.UserInvitation{
		Email:          "new@acme.example.com",
		Role:           pulseboard.RoleEditor,
		OrganizationID: o.ID,
		InvitedBy:      inviter.ID,
	}
	if err := svc.CreateInvitation(ctx, inv); err != nil {
		t.Fatal(err)
	}

	u, err := svc.AcceptInvitation(ctx, inv.Token, "New Person")
	if err != nil {
		t.Fatal(err)
	}

	if u.Email != inv.Email {
		t.Fatalf("expected email %q, got %q", inv.Email, u.Email)
	}
	if u.Role != pulseboard.RoleEditor {
		t.Fatalf("expected editor role, got %q", u.Role)
	}
	if u.Status != pulseboard.UserActive {
		t.Fatalf("expected active status, got %q", u.Status)
	}
	if u.InvitedBy == nil || *u.InvitedBy != inviter.ID {
		t.Fatalf("expected invitedBy %v, got %v", inviter.ID, u.InvitedBy)
	}

	got, err := svc.FindOrganizationByID(ctx, o.ID)
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, m := range got.Members {
		if m == u.ID {
			found = true
		}
	}
	if !found {
		t.Fatal("expected the new user to be an organization member")
	}

	// the token is single use
	if _, err := svc.AcceptInvitation(ctx, inv.Token, "Another Person"); err != tenant.ErrInvitationNotPending {
		t.Fatalf("expected re-accept to fail, got %v", err)
	}
}

func TestAcceptInvitation_Expired(t *testing.T) {
	svc, mock := newTestService(t)
	ctx := context.Background()

	tn := &pulseboard.Tenant{Name: "acme", Status: pulseboard.TenantActive}
	if err := svc.CreateTenant(ctx, tn); err != nil {
		t.Fatal(err)
	}
	o := &pulseboard.Organization{TenantID: tn.ID, Name: "engineering"}
	if err := svc.CreateOrganization(ctx, o); err != nil {
		t.Fatal(err)
	}

	inv := &pulseboard.UserInvitation{Email: "late@acme.example.com", OrganizationID: o.ID}
	if err := svc.CreateInvitation(ctx, inv); err != nil {
		t.Fatal(err)
	}

	mock.Add(pulseboard.InvitationTTL + 1)

	if _, err := svc.AcceptInvitation(ctx, inv.Token, "Late Person"); err != tenant.ErrInvitationExpired {
		t.Fatalf("expected expired invitation error, got %v", err)
	}

	// expiry is recorded on the invitation itself
	status := pulseboard.InvitationExpired
	invs, n, err := svc.FindInvitations(ctx, pulseboard.InvitationFilter{Status: &status})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 || invs[0].ID != inv.ID {
		t.Fatalf("expected the invitation to be marked expired, got %d results", n)
	}

	// a second accept sees the recorded expiry, not a pending invitation
	if _, err := svc.AcceptInvitation(ctx, inv.Token, "Late Person"); err != tenant.ErrInvitationNotPending {
		t.Fatalf("expected not pending error, got %v", err)
	}
}

func TestAcceptInvitation_UnknownToken(t *testing.T) {
	svc, _ := newUserFixture(t)

	if _, err := svc.AcceptInvitation(context.Background(), "no-such-token", "Someone"); err != tenant.ErrInvitationNotFound {
		t.Fatalf("expected unknown token to fail, got %v", err)
	}
}

func TestAcceptInvitation_EmptyName(t *testing.T) {
	svc, _ := newUserFixture(t)

	if _, err := svc.AcceptInvitation(context.Background(), "any-token", ""); err != tenant.ErrUserNameEmpty {
		t.Fatalf("expected empty name error, got %v", err)
	}
}
