package models

import "testing"

func TestUserIsAdmin(t *testing.T) {
	tests := []struct {
		name string
		role Role
		want bool
	}{
		{"admin role", RoleAdmin, true},
		{"member role", RoleMember, false},
		{"unknown role", Role("superuser"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{Role: tt.role}
			if got := u.IsAdmin(); got != tt.want {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestUserNeeds2FASetup(t *testing.T) {
	secret := "JBSWY3DPEHPK3PXP"

	u := &User{TOTPSecret: nil, TOTPEnabled: false}
	if !u.Needs2FASetup() {
		t.Error("user without 2FA should need setup")
	}

	u = &User{TOTPSecret: &secret, TOTPEnabled: false}
	if !u.Needs2FASetup() {
		t.Error("user with a secret but unverified 2FA should still need setup")
	}

	u = &User{TOTPSecret: &secret, TOTPEnabled: true}
	if u.Needs2FASetup() {
		t.Error("user with enabled 2FA should not need setup")
	}
}
