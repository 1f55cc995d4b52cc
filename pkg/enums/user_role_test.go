package enums

import "testing"

func TestUserRoleIsValid(t *testing.T) {
	if !UserRoleCustomer.IsValid() || !UserRoleAdmin.IsValid() {
		t.Fatalf("expected canonical roles to be valid")
	}
	if UserRole("superuser").IsValid() {
		t.Fatalf("unknown role should be invalid")
	}
}

func TestParseUserRole(t *testing.T) {
	role, err := ParseUserRole("admin")
	if err != nil {
		t.Fatalf("parse admin: %v", err)
	}
	if role != UserRoleAdmin {
		t.Fatalf("got %s", role)
	}
	if _, err := ParseUserRole("Admin"); err == nil {
		t.Fatalf("expected case-sensitive rejection")
	}
}
