package auth

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/example/airlink-admin/internal/models"
)

// hashPrefix marks credentials already stored as bcrypt digests. All bcrypt
// variants ($2a$, $2b$, $2y$) share it; anything else is a legacy plaintext
// row kept alive during the hash migration.
const hashPrefix = "$2"

// LooksHashed reports whether a stored credential carries the bcrypt prefix.
func LooksHashed(credential string) bool {
	return strings.HasPrefix(credential, hashPrefix)
}

// HashPassword digests a plaintext credential for storage. cost <= 0 falls
// back to the bcrypt default.
func HashPassword(plain string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// UserFinder is the single lookup Authenticate needs.
type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type Service struct {
	users  UserFinder
	logger *slog.Logger
}

func NewService(users UserFinder, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, logger: logger}
}

// Authenticate verifies a submitted credential against the stored one for
// the user with this exact email. The stored value decides the comparison:
// bcrypt-prefixed values are verified with bcrypt, anything else is treated
// as legacy plaintext and compared byte for byte. The prefix check runs
// first; that precedence is part of the migration contract.
//
// Callers get the same answer for "no such user" and "wrong password": no
// user. The distinction only shows up in the debug log.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*models.User, bool) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		s.logger.Debug("login lookup failed", "email", email, "error", err)
		return nil, false
	}

	stored := u.PasswordHash
	var match bool
	if LooksHashed(stored) {
		match = bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	} else {
		match = password == stored
	}
	if !match {
		s.logger.Debug("wrong password", "email", email)
		return nil, false
	}

	// Never hand the stored credential back out.
	return &models.User{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}, true
}
