package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/models"
)

// FleetRepository owns CRUD access for empresa_equipo rows.
type FleetRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewFleetRepository(db *sql.DB, logger *slog.Logger) *FleetRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &FleetRepository{db: db, logger: logger}
}

func scanFleetUnit(s interface{ Scan(...any) error }) (models.FleetUnit, error) {
	var f models.FleetUnit
	err := s.Scan(&f.ID, &f.CompanyID, &f.Model, &f.Plate, &f.Capacity, &f.Active)
	return f, err
}

// List returns active units only; retired equipment stays in the table for
// historical viajes but is hidden from the assignment screens.
func (r *FleetRepository) List(ctx context.Context) ([]models.FleetUnit, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idEquipo, idEmpresa, modelo, matricula, capacidad, activo
		 FROM empresa_equipo WHERE activo`)
	if err != nil {
		r.logger.Error("list equipos", "error", err)
		record("empresa_equipo", "list", err)
		return nil, fmt.Errorf("list equipos: %w", err)
	}
	defer rows.Close()

	var out []models.FleetUnit
	for rows.Next() {
		f, err := scanFleetUnit(rows)
		if err != nil {
			r.logger.Error("scan equipo", "error", err)
			record("empresa_equipo", "list", err)
			return nil, fmt.Errorf("scan equipo: %w", err)
		}
		out = append(out, f)
	}
	err = rows.Err()
	record("empresa_equipo", "list", err)
	return out, err
}

func (r *FleetRepository) GetByID(ctx context.Context, id int) (*models.FleetUnit, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT idEquipo, idEmpresa, modelo, matricula, capacidad, activo
		 FROM empresa_equipo WHERE idEquipo = $1`, id)
	f, err := scanFleetUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("empresa_equipo", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get equipo", "id", id, "error", err)
		record("empresa_equipo", "get", err)
		return nil, fmt.Errorf("get equipo %d: %w", id, err)
	}
	record("empresa_equipo", "get", nil)
	return &f, nil
}

func (r *FleetRepository) Add(ctx context.Context, f *models.FleetUnit) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO empresa_equipo (idEmpresa, modelo, matricula, capacidad, activo)
		 VALUES ($1, $2, $3, $4, $5) RETURNING idEquipo`,
		f.CompanyID, f.Model, f.Plate, f.Capacity, f.Active).Scan(&f.ID)
	if err != nil {
		r.logger.Error("add equipo", "error", err)
		record("empresa_equipo", "add", err)
		return fmt.Errorf("add equipo: %w", err)
	}
	record("empresa_equipo", "add", nil)
	return nil
}

func (r *FleetRepository) Update(ctx context.Context, f *models.FleetUnit) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE empresa_equipo SET idEmpresa = $1, modelo = $2, matricula = $3, capacidad = $4, activo = $5
		 WHERE idEquipo = $6`,
		f.CompanyID, f.Model, f.Plate, f.Capacity, f.Active, f.ID)
	if err != nil {
		r.logger.Error("update equipo", "id", f.ID, "error", err)
		record("empresa_equipo", "update", err)
		return fmt.Errorf("update equipo %d: %w", f.ID, err)
	}
	record("empresa_equipo", "update", nil)
	return nil
}

func (r *FleetRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM empresa_equipo WHERE idEquipo = $1`, id)
	if err != nil {
		r.logger.Error("delete equipo", "id", id, "error", err)
		record("empresa_equipo", "delete", err)
		return fmt.Errorf("delete equipo %d: %w", id, err)
	}
	record("empresa_equipo", "delete", nil)
	return nil
}
