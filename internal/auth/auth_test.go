package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/airlink-admin/internal/models"
)

type fakeUsers struct{ users map[string]*models.User }

func (f *fakeUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.users[email]; ok {
		return u, nil
	}
	return nil, errors.New("no such user")
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	return string(h)
}

func TestAuthenticateHashedCredential(t *testing.T) {
	hash := mustHash(t, "correcthorse")
	svc := NewService(&fakeUsers{users: map[string]*models.User{
		"ana@airlink.cl": {ID: 4, Name: "Ana", Email: "ana@airlink.cl", PasswordHash: hash, Role: models.RoleAdministrator},
	}}, nil)

	u, ok := svc.Authenticate(context.Background(), "ana@airlink.cl", "correcthorse")
	if !ok {
		t.Fatal("expected success")
	}
	if u.ID != 4 || u.Role != models.RoleAdministrator {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.PasswordHash != "" {
		t.Fatal("credential leaked in result")
	}

	if _, ok := svc.Authenticate(context.Background(), "ana@airlink.cl", "wrongpass"); ok {
		t.Fatal("wrong password accepted")
	}
	// submitting the stored digest itself must not pass either
	if _, ok := svc.Authenticate(context.Background(), "ana@airlink.cl", hash); ok {
		t.Fatal("stored digest accepted as password")
	}
}

func TestAuthenticateLegacyPlaintext(t *testing.T) {
	svc := NewService(&fakeUsers{users: map[string]*models.User{
		"legacy@airlink.cl": {ID: 9, Name: "Luis", Email: "legacy@airlink.cl", PasswordHash: "abc123", Role: models.RoleCustomer},
	}}, nil)

	if _, ok := svc.Authenticate(context.Background(), "legacy@airlink.cl", "abc123"); !ok {
		t.Fatal("legacy plaintext login rejected")
	}
	// comparison is exact, not case-folded
	if _, ok := svc.Authenticate(context.Background(), "legacy@airlink.cl", "ABC123"); ok {
		t.Fatal("case-mismatched plaintext accepted")
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	svc := NewService(&fakeUsers{users: map[string]*models.User{}}, nil)
	if _, ok := svc.Authenticate(context.Background(), "nobody@airlink.cl", "x"); ok {
		t.Fatal("unknown email accepted")
	}
}

func TestLooksHashed(t *testing.T) {
	if !LooksHashed("$2a$10$abcdefghijklmnopqrstuv") {
		t.Fatal("bcrypt digest not recognized")
	}
	if LooksHashed("plaintext") || LooksHashed("") {
		t.Fatal("plaintext recognized as digest")
	}
}

func TestHashPasswordRoundTrip(t *testing.T) {
	h, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatal(err)
	}
	if !LooksHashed(h) {
		t.Fatalf("digest missing prefix: %q", h)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h), []byte("s3cret")); err != nil {
		t.Fatalf("digest does not verify: %v", err)
	}
}
