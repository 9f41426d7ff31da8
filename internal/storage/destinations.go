package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/models"
)

// DestinationRepository owns CRUD access for destino rows. destacado and
// activo are stored as opaque flags; no logic here derives from them.
type DestinationRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewDestinationRepository(db *sql.DB, logger *slog.Logger) *DestinationRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &DestinationRepository{db: db, logger: logger}
}

func scanDestination(s interface{ Scan(...any) error }) (models.Destination, error) {
	var d models.Destination
	err := s.Scan(&d.ID, &d.Name, &d.Price, &d.City, &d.Country, &d.Image,
		&d.Description, &d.Featured, &d.Active)
	return d, err
}

func (r *DestinationRepository) List(ctx context.Context) ([]models.Destination, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idDestino, nombre, precio, ciudad, pais, imagen, descripcion, destacado, activo
		 FROM destino`)
	if err != nil {
		r.logger.Error("list destinos", "error", err)
		record("destino", "list", err)
		return nil, fmt.Errorf("list destinos: %w", err)
	}
	defer rows.Close()

	var out []models.Destination
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			r.logger.Error("scan destino", "error", err)
			record("destino", "list", err)
			return nil, fmt.Errorf("scan destino: %w", err)
		}
		out = append(out, d)
	}
	err = rows.Err()
	record("destino", "list", err)
	return out, err
}

func (r *DestinationRepository) GetByID(ctx context.Context, id int) (*models.Destination, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT idDestino, nombre, precio, ciudad, pais, imagen, descripcion, destacado, activo
		 FROM destino WHERE idDestino = $1`, id)
	d, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("destino", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get destino", "id", id, "error", err)
		record("destino", "get", err)
		return nil, fmt.Errorf("get destino %d: %w", id, err)
	}
	record("destino", "get", nil)
	return &d, nil
}

func (r *DestinationRepository) Add(ctx context.Context, d *models.Destination) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO destino (nombre, precio, ciudad, pais, imagen, descripcion, destacado, activo)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING idDestino`,
		d.Name, d.Price, d.City, d.Country, d.Image, d.Description, d.Featured, d.Active).Scan(&d.ID)
	if err != nil {
		r.logger.Error("add destino", "error", err)
		record("destino", "add", err)
		return fmt.Errorf("add destino: %w", err)
	}
	record("destino", "add", nil)
	return nil
}

func (r *DestinationRepository) Update(ctx context.Context, d *models.Destination) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE destino SET nombre = $1, precio = $2, ciudad = $3, pais = $4, imagen = $5, descripcion = $6, destacado = $7, activo = $8
		 WHERE idDestino = $9`,
		d.Name, d.Price, d.City, d.Country, d.Image, d.Description, d.Featured, d.Active, d.ID)
	if err != nil {
		r.logger.Error("update destino", "id", d.ID, "error", err)
		record("destino", "update", err)
		return fmt.Errorf("update destino %d: %w", d.ID, err)
	}
	record("destino", "update", nil)
	return nil
}

// Delete fails when viajes still reference the destino; removing or
// reassigning those viajes first is the caller's job.
func (r *DestinationRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM destino WHERE idDestino = $1`, id)
	if err != nil {
		r.logger.Error("delete destino", "id", id, "error", err)
		record("destino", "delete", err)
		return fmt.Errorf("delete destino %d: %w", id, err)
	}
	record("destino", "delete", nil)
	return nil
}
