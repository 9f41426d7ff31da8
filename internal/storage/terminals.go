package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/models"
)

// TerminalRepository owns CRUD access for terminal rows.
type TerminalRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTerminalRepository(db *sql.DB, logger *slog.Logger) *TerminalRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &TerminalRepository{db: db, logger: logger}
}

func (r *TerminalRepository) List(ctx context.Context) ([]models.Terminal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT idTerminal, nombre, ciudad FROM terminal`)
	if err != nil {
		r.logger.Error("list terminales", "error", err)
		record("terminal", "list", err)
		return nil, fmt.Errorf("list terminales: %w", err)
	}
	defer rows.Close()

	var out []models.Terminal
	for rows.Next() {
		var t models.Terminal
		if err := rows.Scan(&t.ID, &t.Name, &t.City); err != nil {
			r.logger.Error("scan terminal", "error", err)
			record("terminal", "list", err)
			return nil, fmt.Errorf("scan terminal: %w", err)
		}
		out = append(out, t)
	}
	err = rows.Err()
	record("terminal", "list", err)
	return out, err
}

func (r *TerminalRepository) GetByID(ctx context.Context, id int) (*models.Terminal, error) {
	var t models.Terminal
	err := r.db.QueryRowContext(ctx,
		`SELECT idTerminal, nombre, ciudad FROM terminal WHERE idTerminal = $1`, id).
		Scan(&t.ID, &t.Name, &t.City)
	if errors.Is(err, sql.ErrNoRows) {
		record("terminal", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get terminal", "id", id, "error", err)
		record("terminal", "get", err)
		return nil, fmt.Errorf("get terminal %d: %w", id, err)
	}
	record("terminal", "get", nil)
	return &t, nil
}

func (r *TerminalRepository) Add(ctx context.Context, t *models.Terminal) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO terminal (nombre, ciudad) VALUES ($1, $2) RETURNING idTerminal`,
		t.Name, t.City).Scan(&t.ID)
	if err != nil {
		r.logger.Error("add terminal", "error", err)
		record("terminal", "add", err)
		return fmt.Errorf("add terminal: %w", err)
	}
	record("terminal", "add", nil)
	return nil
}

func (r *TerminalRepository) Update(ctx context.Context, t *models.Terminal) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE terminal SET nombre = $1, ciudad = $2 WHERE idTerminal = $3`,
		t.Name, t.City, t.ID)
	if err != nil {
		r.logger.Error("update terminal", "id", t.ID, "error", err)
		record("terminal", "update", err)
		return fmt.Errorf("update terminal %d: %w", t.ID, err)
	}
	record("terminal", "update", nil)
	return nil
}

func (r *TerminalRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM terminal WHERE idTerminal = $1`, id)
	if err != nil {
		r.logger.Error("delete terminal", "id", id, "error", err)
		record("terminal", "delete", err)
		return fmt.Errorf("delete terminal %d: %w", id, err)
	}
	record("terminal", "delete", nil)
	return nil
}
