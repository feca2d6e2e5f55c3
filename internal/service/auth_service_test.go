package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/fixpoint-labs/repair-shop-service/internal/auth"
	"github.com/fixpoint-labs/repair-shop-service/internal/domain"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(users, tokens, bcrypt.MinCost), users
}

func seedAccount(t *testing.T, users *fakeUserRepo, email, password string, role domain.Role, active bool) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	user := &domain.User{Name: "Staff", Email: email, PasswordHash: string(hash), Role: role, Active: active}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatal(err)
	}
	return user
}

func TestLogin(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedAccount(t, users, "ana@shop.test", "correct-horse", domain.RoleAdmin, true)

	result, err := svc.Login(context.Background(), "  Ana@Shop.Test ", "correct-horse")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.Token == "" {
		t.Error("empty session token")
	}
	if result.User.Email != "ana@shop.test" {
		t.Errorf("user email = %s", result.User.Email)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, users := newAuthFixture(t)
	seedAccount(t, users, "ana@shop.test", "correct-horse", domain.RoleAdmin, true)
	seedAccount(t, users, "inactive@shop.test", "correct-horse", domain.RoleTechnician, false)

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@shop.test", "correct-horse"},
		{"wrong password", "ana@shop.test", "wrong"},
		{"inactive account", "inactive@shop.test", "correct-horse"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), tc.email, tc.password)
			if code := domainErrCode(t, err); code != "UNAUTHORIZED" {
				t.Errorf("error code = %s, want UNAUTHORIZED", code)
			}
			if err.Error() != "invalid credentials" {
				t.Errorf("error message = %q, want the uniform message", err.Error())
			}
		})
	}
}

func TestCreateUser(t *testing.T) {
	svc, _ := newAuthFixture(t)

	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Name:     "Pablo Sanz",
		Email:    "Pablo@Shop.Test",
		Password: "long-enough-pass",
		Role:     domain.RoleTechnician,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Email != "pablo@shop.test" {
		t.Errorf("email = %s, want lowercased", user.Email)
	}
	if !user.Active {
		t.Error("new user should start active")
	}
	if user.PasswordHash == "long-enough-pass" {
		t.Error("password stored in plain text")
	}
}

func TestCreateUserValidation(t *testing.T) {
	svc, _ := newAuthFixture(t)

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{"short password", CreateUserInput{Name: "A", Email: "a@shop.test", Password: "short", Role: domain.RoleAdmin}},
		{"bad role", CreateUserInput{Name: "A", Email: "a@shop.test", Password: "long-enough-pass", Role: domain.Role("INTERN")}},
		{"missing email", CreateUserInput{Name: "A", Password: "long-enough-pass", Role: domain.RoleAdmin}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tc.input)
			if code := domainErrCode(t, err); code != "VALIDATION_FAILED" {
				t.Errorf("error code = %s, want VALIDATION_FAILED", code)
			}
		})
	}
}

func TestChangePassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := seedAccount(t, users, "ana@shop.test", "correct-horse", domain.RoleAdmin, true)

	if err := svc.ChangePassword(context.Background(), user.ID, "wrong", "next-password-1"); err == nil {
		t.Error("expected wrong current password to be rejected")
	}
	if err := svc.ChangePassword(context.Background(), user.ID, "correct-horse", "next-password-1"); err != nil {
		t.Fatalf("ChangePassword: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ana@shop.test", "next-password-1"); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ana@shop.test", "correct-horse"); err == nil {
		t.Error("old password still accepted")
	}
}

func TestResetPassword(t *testing.T) {
	svc, users := newAuthFixture(t)
	user := seedAccount(t, users, "ana@shop.test", "correct-horse", domain.RoleAdmin, true)

	if err := svc.ResetPassword(context.Background(), user.ID, "admin-set-pass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Login(context.Background(), "ana@shop.test", "admin-set-pass"); err != nil {
		t.Errorf("login after reset: %v", err)
	}
}
