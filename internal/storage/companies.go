package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/models"
)

// CompanyRepository owns CRUD access for empresa rows.
type CompanyRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewCompanyRepository(db *sql.DB, logger *slog.Logger) *CompanyRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CompanyRepository{db: db, logger: logger}
}

func scanCompany(s interface{ Scan(...any) error }) (models.Company, error) {
	var c models.Company
	err := s.Scan(&c.ID, &c.Name, &c.Type, &c.Logo, &c.Description, &c.Website, &c.Active)
	return c, err
}

// List returns companies newest first, matching the admin screen's order.
func (r *CompanyRepository) List(ctx context.Context) ([]models.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idEmpresa, nombreEmpresa, tipoEmpresa, logo, descripcion, sitio_web, activo
		 FROM empresa ORDER BY idEmpresa DESC`)
	if err != nil {
		r.logger.Error("list empresas", "error", err)
		record("empresa", "list", err)
		return nil, fmt.Errorf("list empresas: %w", err)
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			r.logger.Error("scan empresa", "error", err)
			record("empresa", "list", err)
			return nil, fmt.Errorf("scan empresa: %w", err)
		}
		out = append(out, c)
	}
	err = rows.Err()
	record("empresa", "list", err)
	return out, err
}

func (r *CompanyRepository) GetByID(ctx context.Context, id int) (*models.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT idEmpresa, nombreEmpresa, tipoEmpresa, logo, descripcion, sitio_web, activo
		 FROM empresa WHERE idEmpresa = $1`, id)
	c, err := scanCompany(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("empresa", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get empresa", "id", id, "error", err)
		record("empresa", "get", err)
		return nil, fmt.Errorf("get empresa %d: %w", id, err)
	}
	record("empresa", "get", nil)
	return &c, nil
}

func (r *CompanyRepository) Add(ctx context.Context, c *models.Company) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO empresa (nombreEmpresa, tipoEmpresa, logo, descripcion, sitio_web, activo)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING idEmpresa`,
		c.Name, c.Type, c.Logo, c.Description, c.Website, c.Active).Scan(&c.ID)
	if err != nil {
		r.logger.Error("add empresa", "error", err)
		record("empresa", "add", err)
		return fmt.Errorf("add empresa: %w", err)
	}
	record("empresa", "add", nil)
	return nil
}

func (r *CompanyRepository) Update(ctx context.Context, c *models.Company) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE empresa SET nombreEmpresa = $1, tipoEmpresa = $2, logo = $3, descripcion = $4, sitio_web = $5, activo = $6
		 WHERE idEmpresa = $7`,
		c.Name, c.Type, c.Logo, c.Description, c.Website, c.Active, c.ID)
	if err != nil {
		r.logger.Error("update empresa", "id", c.ID, "error", err)
		record("empresa", "update", err)
		return fmt.Errorf("update empresa %d: %w", c.ID, err)
	}
	record("empresa", "update", nil)
	return nil
}

func (r *CompanyRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM empresa WHERE idEmpresa = $1`, id)
	if err != nil {
		r.logger.Error("delete empresa", "id", id, "error", err)
		record("empresa", "delete", err)
		return fmt.Errorf("delete empresa %d: %w", id, err)
	}
	record("empresa", "delete", nil)
	return nil
}
