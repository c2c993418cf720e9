package service

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"go-jobboard/internal/domain"
)

func TestSignupValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	cases := []struct {
		name string
		in   SignupInput
	}{
		{"short name", SignupInput{Name: "A", Email: "a@example.com", Password: "password123", Role: domain.RoleJobSeeker}},
		{"bad email", SignupInput{Name: "Alice", Email: "not-an-email", Password: "password123", Role: domain.RoleJobSeeker}},
		{"short password", SignupInput{Name: "Alice", Email: "a@example.com", Password: "short", Role: domain.RoleJobSeeker}},
		{"bad role", SignupInput{Name: "Alice", Email: "a@example.com", Password: "password123", Role: "manager"}},
		{"admin role rejected", SignupInput{Name: "Alice", Email: "a@example.com", Password: "password123", Role: domain.RoleAdmin}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, tc.in)
			wantCode(t, err, http.StatusBadRequest)
		})
	}
}

func TestSignupStoresHashNotPassword(t *testing.T) {
	db := setupTestDB(t)
	u := signupUser(t, db, "Alice", "alice@example.com", domain.RoleJobSeeker)

	if u.PasswordHash == "" || u.PasswordHash == "password123" {
		t.Fatalf("password stored without hashing: %q", u.PasswordHash)
	}
	if !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Fatalf("expected bcrypt hash, got %q", u.PasswordHash)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	signupUser(t, db, "Alice", "alice@example.com", domain.RoleJobSeeker)

	_, err := svc.Signup(ctx, SignupInput{
		Name: "Other Alice", Email: "Alice@Example.com", Password: "password123", Role: domain.RoleEmployer,
	})
	wantCode(t, err, http.StatusBadRequest)
	if !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestSignupEmployerCompanyDefaultsToName(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)

	u, err := svc.Signup(context.Background(), SignupInput{
		Name: "Acme Recruiter", Email: "hr@acme.com", Password: "password123", Role: domain.RoleEmployer,
	})
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if u.Company != "Acme Recruiter" {
		t.Fatalf("company = %q, want account name", u.Company)
	}
}

func TestSignIn(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	signupUser(t, db, "Alice", "alice@example.com", domain.RoleJobSeeker)

	if _, err := svc.SignIn(ctx, "alice@example.com", "password123"); err != nil {
		t.Fatalf("signin: %v", err)
	}
	// Email lookup is case-insensitive.
	if _, err := svc.SignIn(ctx, "ALICE@example.com", "password123"); err != nil {
		t.Fatalf("signin with upper-cased email: %v", err)
	}

	_, err := svc.SignIn(ctx, "alice@example.com", "wrong-password")
	wantCode(t, err, http.StatusUnauthorized)
	_, err = svc.SignIn(ctx, "nobody@example.com", "password123")
	wantCode(t, err, http.StatusUnauthorized)
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)
	_, err := NewUserService(db).Get(context.Background(), "missing")
	wantCode(t, err, http.StatusNotFound)
}

func TestUpdateProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	u := signupUser(t, db, "Alice", "alice@example.com", domain.RoleJobSeeker)

	bio := "Gopher"
	skills := domain.StringList{"Go", "SQL"}
	got, err := svc.UpdateProfile(ctx, asActor(u), u.ID, UpdateProfileInput{Bio: &bio, Skills: &skills})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if got.Bio != "Gopher" || len(got.Skills) != 2 {
		t.Fatalf("profile not updated: %+v", got)
	}
}

func TestUpdateProfileOnlySelf(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	alice := signupUser(t, db, "Alice", "alice@example.com", domain.RoleJobSeeker)
	bob := signupUser(t, db, "Bob", "bob@example.com", domain.RoleJobSeeker)

	bio := "hijacked"
	_, err := svc.UpdateProfile(ctx, asActor(bob), alice.ID, UpdateProfileInput{Bio: &bio})
	wantCode(t, err, http.StatusForbidden)
}

func TestUpdateProfileCannotTouchCredentials(t *testing.T) {
	db := setupTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()

	u := signupUser(t, db, "Alice", "alice@example.com", domain.RoleJobSeeker)
	origHash := u.PasswordHash

	name := "Alice Updated"
	got, err := svc.UpdateProfile(ctx, asActor(u), u.ID, UpdateProfileInput{Name: &name})
	if err != nil {
		t.Fatalf("update profile: %v", err)
	}
	if got.Role != domain.RoleJobSeeker || got.Email != "alice@example.com" {
		t.Fatalf("role or email changed: %+v", got)
	}

	var stored domain.User
	if err := db.First(&stored, "id = ?", u.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.PasswordHash != origHash {
		t.Fatal("password hash changed by a profile update")
	}
}
