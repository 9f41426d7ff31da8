package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/models"
)

// RouteRepository owns CRUD access for ruta rows. Reads join terminal twice
// so callers get display-friendly origin/destination names without a second
// round trip; the names are never written back.
type RouteRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRouteRepository(db *sql.DB, logger *slog.Logger) *RouteRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &RouteRepository{db: db, logger: logger}
}

const routeSelect = `
	SELECT r.idRuta,
	       r.idTerminalOrigen,
	       r.idTerminalDestino,
	       t1.nombre AS origen,
	       t2.nombre AS destino,
	       r.distanciaKm,
	       r.duracionEstimadaMin,
	       r.activo
	FROM ruta r
	JOIN terminal t1 ON r.idTerminalOrigen = t1.idTerminal
	JOIN terminal t2 ON r.idTerminalDestino = t2.idTerminal`

func scanRoute(s interface{ Scan(...any) error }) (models.Route, error) {
	var rt models.Route
	err := s.Scan(&rt.ID, &rt.OriginTerminalID, &rt.DestTerminalID,
		&rt.OriginName, &rt.DestinationName,
		&rt.DistanceKm, &rt.EstimatedDuration, &rt.Active)
	return rt, err
}

func (r *RouteRepository) List(ctx context.Context) ([]models.Route, error) {
	rows, err := r.db.QueryContext(ctx, routeSelect)
	if err != nil {
		r.logger.Error("list rutas", "error", err)
		record("ruta", "list", err)
		return nil, fmt.Errorf("list rutas: %w", err)
	}
	defer rows.Close()

	var out []models.Route
	for rows.Next() {
		rt, err := scanRoute(rows)
		if err != nil {
			r.logger.Error("scan ruta", "error", err)
			record("ruta", "list", err)
			return nil, fmt.Errorf("scan ruta: %w", err)
		}
		out = append(out, rt)
	}
	err = rows.Err()
	record("ruta", "list", err)
	return out, err
}

func (r *RouteRepository) GetByID(ctx context.Context, id int) (*models.Route, error) {
	row := r.db.QueryRowContext(ctx, routeSelect+` WHERE r.idRuta = $1`, id)
	rt, err := scanRoute(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("ruta", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get ruta", "id", id, "error", err)
		record("ruta", "get", err)
		return nil, fmt.Errorf("get ruta %d: %w", id, err)
	}
	record("ruta", "get", nil)
	return &rt, nil
}

func (r *RouteRepository) Add(ctx context.Context, rt *models.Route) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO ruta (idTerminalOrigen, idTerminalDestino, distanciaKm, duracionEstimadaMin, activo)
		 VALUES ($1, $2, $3, $4, $5) RETURNING idRuta`,
		rt.OriginTerminalID, rt.DestTerminalID, rt.DistanceKm, rt.EstimatedDuration, rt.Active).Scan(&rt.ID)
	if err != nil {
		r.logger.Error("add ruta", "error", err)
		record("ruta", "add", err)
		return fmt.Errorf("add ruta: %w", err)
	}
	record("ruta", "add", nil)
	return nil
}

func (r *RouteRepository) Update(ctx context.Context, rt *models.Route) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE ruta SET idTerminalOrigen = $1, idTerminalDestino = $2, distanciaKm = $3, duracionEstimadaMin = $4, activo = $5
		 WHERE idRuta = $6`,
		rt.OriginTerminalID, rt.DestTerminalID, rt.DistanceKm, rt.EstimatedDuration, rt.Active, rt.ID)
	if err != nil {
		r.logger.Error("update ruta", "id", rt.ID, "error", err)
		record("ruta", "update", err)
		return fmt.Errorf("update ruta %d: %w", rt.ID, err)
	}
	record("ruta", "update", nil)
	return nil
}

// Delete fails when viajes still reference the ruta; the store's RESTRICT
// foreign key is the enforcement, surfaced to callers as a constraint error.
func (r *RouteRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM ruta WHERE idRuta = $1`, id)
	if err != nil {
		r.logger.Error("delete ruta", "id", id, "error", err)
		record("ruta", "delete", err)
		return fmt.Errorf("delete ruta %d: %w", id, err)
	}
	record("ruta", "delete", nil)
	return nil
}
