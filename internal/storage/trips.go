package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/airlink-admin/internal/models"
)

// TripRepository owns CRUD access for viaje rows. Departure/arrival ordering
// is deliberately not validated here.
type TripRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewTripRepository(db *sql.DB, logger *slog.Logger) *TripRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &TripRepository{db: db, logger: logger}
}

func scanTrip(s interface{ Scan(...any) error }) (models.Trip, error) {
	var t models.Trip
	err := s.Scan(&t.ID, &t.RouteID, &t.Departure, &t.Arrival, &t.FleetUnitID, &t.Status, &t.DestinationID)
	return t, err
}

func (r *TripRepository) collect(rows *sql.Rows, op string) ([]models.Trip, error) {
	defer rows.Close()
	var out []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			r.logger.Error("scan viaje", "error", err)
			record("viaje", op, err)
			return nil, fmt.Errorf("scan viaje: %w", err)
		}
		out = append(out, t)
	}
	err := rows.Err()
	record("viaje", op, err)
	return out, err
}

func (r *TripRepository) List(ctx context.Context) ([]models.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idViaje, idRuta, salida, llegada, idEquipo, estado, idDestino
		 FROM viaje ORDER BY salida`)
	if err != nil {
		r.logger.Error("list viajes", "error", err)
		record("viaje", "list", err)
		return nil, fmt.Errorf("list viajes: %w", err)
	}
	return r.collect(rows, "list")
}

// ListByDestination filters server-side; rows come back in the same
// departure-ascending order List uses.
func (r *TripRepository) ListByDestination(ctx context.Context, destinationID int) ([]models.Trip, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT idViaje, idRuta, salida, llegada, idEquipo, estado, idDestino
		 FROM viaje WHERE idDestino = $1 ORDER BY salida`, destinationID)
	if err != nil {
		r.logger.Error("list viajes by destino", "destino", destinationID, "error", err)
		record("viaje", "list_by_destino", err)
		return nil, fmt.Errorf("list viajes by destino %d: %w", destinationID, err)
	}
	return r.collect(rows, "list_by_destino")
}

func (r *TripRepository) GetByID(ctx context.Context, id int) (*models.Trip, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT idViaje, idRuta, salida, llegada, idEquipo, estado, idDestino
		 FROM viaje WHERE idViaje = $1`, id)
	t, err := scanTrip(row)
	if errors.Is(err, sql.ErrNoRows) {
		record("viaje", "get", ErrNotFound)
		return nil, ErrNotFound
	}
	if err != nil {
		r.logger.Error("get viaje", "id", id, "error", err)
		record("viaje", "get", err)
		return nil, fmt.Errorf("get viaje %d: %w", id, err)
	}
	record("viaje", "get", nil)
	return &t, nil
}

func (r *TripRepository) Add(ctx context.Context, t *models.Trip) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO viaje (idRuta, salida, llegada, idEquipo, estado, idDestino)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING idViaje`,
		t.RouteID, t.Departure, t.Arrival, t.FleetUnitID, t.Status, t.DestinationID).Scan(&t.ID)
	if err != nil {
		r.logger.Error("add viaje", "error", err)
		record("viaje", "add", err)
		return fmt.Errorf("add viaje: %w", err)
	}
	record("viaje", "add", nil)
	return nil
}

func (r *TripRepository) Update(ctx context.Context, t *models.Trip) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE viaje SET idRuta = $1, salida = $2, llegada = $3, idEquipo = $4, estado = $5, idDestino = $6
		 WHERE idViaje = $7`,
		t.RouteID, t.Departure, t.Arrival, t.FleetUnitID, t.Status, t.DestinationID, t.ID)
	if err != nil {
		r.logger.Error("update viaje", "id", t.ID, "error", err)
		record("viaje", "update", err)
		return fmt.Errorf("update viaje %d: %w", t.ID, err)
	}
	record("viaje", "update", nil)
	return nil
}

func (r *TripRepository) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM viaje WHERE idViaje = $1`, id)
	if err != nil {
		r.logger.Error("delete viaje", "id", id, "error", err)
		record("viaje", "delete", err)
		return fmt.Errorf("delete viaje %d: %w", id, err)
	}
	record("viaje", "delete", nil)
	return nil
}
