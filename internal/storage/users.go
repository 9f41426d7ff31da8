package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/auth"
	"github.com/example/airlink-admin/internal/models"
)

// UserRepository owns CRUD access for usuario rows. Passwords are hashed at
// this boundary: Add always hashes the submitted plaintext, Update hashes
// only values that do not already look like a stored digest, so an edit that
// re-submits the stored hash does not double-hash it.
type UserRepository struct {
	db     *sql.DB
	logger *slog.Logger
	cost   int
}

func NewUserRepository(db *sql.DB, logger *slog.Logger, bcryptCost int) *UserRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserRepository{db: db, logger: logger, cost: bcryptCost}
}

func scanUser(s interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	var role int
	if err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role); err != nil {
		return models.User{}, err
	}
	u.Role = models.Role(role)
	return u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idUsuario, nombreUsuario, email, contrasena, idRol FROM usuario ORDER BY idUsuario`)
	if err != nil {
		r.logger.Error("list usuarios", "error", err)
		record("usuario", "list", err)
		return nil, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			r.logger.Error("scan usuario", "error", err)
			record("usuario", "list", err)
			return nil, fmt.Errorf("scan usuario: %w", err)
		}
		out = append(out, u)
	}
	err = rows.Err()
	record("usuario", "list", err)
	return out, err
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT idUsuario, nombreUsuario, email, contrasena, idRol FROM usuario WHERE idUsuario = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("usuario", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get usuario", "id", id, "error", err)
		record("usuario", "get", err)
		return nil, fmt.Errorf("get usuario %d: %w", id, err)
	}
	record("usuario", "get", nil)
	return &u, nil
}

// FindByEmail backs the authentication service. The stored credential is
// included; callers must not leak it.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT idUsuario, nombreUsuario, email, contrasena, idRol FROM usuario WHERE email = $1`, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("usuario", "find_by_email", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("find usuario by email", "error", err)
		record("usuario", "find_by_email", err)
		return nil, fmt.Errorf("find usuario by email: %w", err)
	}
	record("usuario", "find_by_email", nil)
	return &u, nil
}

func (r *UserRepository) Add(ctx context.Context, u *models.User) error {
	hash, err := auth.HashPassword(u.PasswordHash, r.cost)
	if err != nil {
		record("usuario", "add", err)
		return fmt.Errorf("hash password: %w", err)
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO usuario (nombreUsuario, email, contrasena, idRol) VALUES ($1, $2, $3, $4) RETURNING idUsuario`,
		u.Name, u.Email, hash, int(u.Role)).Scan(&u.ID)
	if err != nil {
		r.logger.Error("add usuario", "error", err)
		record("usuario", "add", err)
		return fmt.Errorf("add usuario: %w", err)
	}
	u.PasswordHash = hash
	record("usuario", "add", nil)
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *models.User) error {
	credential := u.PasswordHash
	if !auth.LooksHashed(credential) {
		hash, err := auth.HashPassword(credential, r.cost)
		if err != nil {
			record("usuario", "update", err)
			return fmt.Errorf("hash password: %w", err)
		}
		credential = hash
	}
	_, err := r.db.ExecContext(ctx,
		`UPDATE usuario SET nombreUsuario = $1, email = $2, contrasena = $3, idRol = $4 WHERE idUsuario = $5`,
		u.Name, u.Email, credential, int(u.Role), u.ID)
	if err != nil {
		r.logger.Error("update usuario", "id", u.ID, "error", err)
		record("usuario", "update", err)
		return fmt.Errorf("update usuario %d: %w", u.ID, err)
	}
	u.PasswordHash = credential
	record("usuario", "update", nil)
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM usuario WHERE idUsuario = $1`, id)
	if err != nil {
		r.logger.Error("delete usuario", "id", id, "error", err)
		record("usuario", "delete", err)
		return fmt.Errorf("delete usuario %d: %w", id, err)
	}
	record("usuario", "delete", nil)
	return nil
}
