package storage

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/airlink-admin/internal/auth"
	"github.com/example/airlink-admin/internal/models"
)

// bcryptOf matches any bcrypt digest of the expected plaintext.
type bcryptOf struct{ plain string }

func (b bcryptOf) Match(v driver.Value) bool {
	s, ok := v.(string)
	if !ok || !auth.LooksHashed(s) {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s), []byte(b.plain)) == nil
}

func TestUserAddHashesPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("INSERT INTO usuario").
		WithArgs("Ana", "ana@airlink.cl", bcryptOf{plain: "plaintext-pw"}, 3).
		WillReturnRows(sqlmock.NewRows([]string{"idUsuario"}).AddRow(7))

	repo := NewUserRepository(db, nil, bcrypt.MinCost)
	u := models.User{Name: "Ana", Email: "ana@airlink.cl", PasswordHash: "plaintext-pw", Role: models.RoleAdministrator}
	if err := repo.Add(context.Background(), &u); err != nil {
		t.Fatalf("add: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("generated id not captured: %d", u.ID)
	}
	if !auth.LooksHashed(u.PasswordHash) {
		t.Fatal("entity still carries plaintext after add")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserUpdateKeepsExistingDigest(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// a re-submitted digest goes through verbatim, no double hash
	digest := "$2a$04$N9qo8uLOickgx2ZMRZoMye.IjqkXW0zW8BGiDpJyC5n4mYF6FyFhe"
	mock.ExpectExec("UPDATE usuario SET").
		WithArgs("Ana", "ana@airlink.cl", digest, 3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db, nil, bcrypt.MinCost)
	u := models.User{ID: 7, Name: "Ana", Email: "ana@airlink.cl", PasswordHash: digest, Role: models.RoleAdministrator}
	if err := repo.Update(context.Background(), &u); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserUpdateHashesNewPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE usuario SET").
		WithArgs("Ana", "ana@airlink.cl", bcryptOf{plain: "fresh-pw"}, 3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewUserRepository(db, nil, bcrypt.MinCost)
	u := models.User{ID: 7, Name: "Ana", Email: "ana@airlink.cl", PasswordHash: "fresh-pw", Role: models.RoleAdministrator}
	if err := repo.Update(context.Background(), &u); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestUserGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT idUsuario, nombreUsuario, email, contrasena, idRol FROM usuario WHERE idUsuario").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"idUsuario", "nombreUsuario", "email", "contrasena", "idRol"}))

	repo := NewUserRepository(db, nil, bcrypt.MinCost)
	if _, err := repo.GetByID(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserListMapsRoles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	rows := sqlmock.NewRows([]string{"idUsuario", "nombreUsuario", "email", "contrasena", "idRol"}).
		AddRow(1, "Ana", "ana@airlink.cl", "$2a$04$x", 3).
		AddRow(2, "Luis", "luis@airlink.cl", "abc123", 1)
	mock.ExpectQuery("SELECT idUsuario, nombreUsuario, email, contrasena, idRol FROM usuario ORDER BY idUsuario").
		WillReturnRows(rows)

	repo := NewUserRepository(db, nil, bcrypt.MinCost)
	users, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0].Role != models.RoleAdministrator || users[1].Role != models.RoleCustomer {
		t.Fatalf("role mapping wrong: %v %v", users[0].Role, users[1].Role)
	}
}
