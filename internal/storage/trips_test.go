package storage

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/example/airlink-admin/internal/models"
)

var tripCols = []string{"idViaje", "idRuta", "salida", "llegada", "idEquipo", "estado", "idDestino"}

func TestTripListPreservesDepartureOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	early := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	late := time.Date(2025, 3, 1, 19, 30, 0, 0, time.UTC)
	rows := sqlmock.NewRows(tripCols).
		AddRow(1, 10, early, early.Add(2*time.Hour), 5, "programado", 3).
		AddRow(2, 11, late, late.Add(90*time.Minute), 6, "programado", 3)
	mock.ExpectQuery("FROM viaje ORDER BY salida").WillReturnRows(rows)

	repo := NewTripRepository(db, nil)
	trips, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(trips) != 2 || trips[0].ID != 1 || trips[1].ID != 2 {
		t.Fatalf("order not preserved: %+v", trips)
	}
	if !trips[0].Departure.Equal(early) || trips[0].Status != "programado" {
		t.Fatalf("row mapping wrong: %+v", trips[0])
	}
}

func TestTripListByDestinationFiltersServerSide(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	dep := time.Date(2025, 4, 2, 6, 15, 0, 0, time.UTC)
	rows := sqlmock.NewRows(tripCols).
		AddRow(8, 10, dep, dep.Add(time.Hour), 5, "programado", 42)
	mock.ExpectQuery("FROM viaje WHERE idDestino").
		WithArgs(42).
		WillReturnRows(rows)

	repo := NewTripRepository(db, nil)
	trips, err := repo.ListByDestination(context.Background(), 42)
	if err != nil {
		t.Fatalf("list by destino: %v", err)
	}
	if len(trips) != 1 || trips[0].DestinationID != 42 {
		t.Fatalf("unexpected result: %+v", trips)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestTripAddDoesNotValidateOrdering(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	// arrival before departure is accepted as-is
	dep := time.Date(2025, 5, 1, 23, 0, 0, 0, time.UTC)
	arr := dep.Add(-time.Hour)
	mock.ExpectQuery("INSERT INTO viaje").
		WithArgs(10, dep, arr, 5, "programado", 3).
		WillReturnRows(sqlmock.NewRows([]string{"idViaje"}).AddRow(12))

	repo := NewTripRepository(db, nil)
	trip := models.Trip{RouteID: 10, Departure: dep, Arrival: arr, FleetUnitID: 5, Status: "programado", DestinationID: 3}
	if err := repo.Add(context.Background(), &trip); err != nil {
		t.Fatalf("add: %v", err)
	}
	if trip.ID != 12 {
		t.Fatalf("generated id not captured: %d", trip.ID)
	}
}

func TestRouteDeleteBlockedByTrips(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM ruta").
		WithArgs(3).
		WillReturnError(&pq.Error{Code: "23503"})

	repo := NewRouteRepository(db, nil)
	err = repo.Delete(context.Background(), 3)
	if err == nil {
		t.Fatal("expected delete failure")
	}
	if !IsConstraintViolation(err) {
		t.Fatalf("constraint violation not recognized: %v", err)
	}
}

func TestDestinationDeleteUnblocked(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM destino").
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewDestinationRepository(db, nil)
	if err := repo.Delete(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestRouteListJoinsTerminalNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	cols := []string{"idRuta", "idTerminalOrigen", "idTerminalDestino", "origen", "destino", "distanciaKm", "duracionEstimadaMin", "activo"}
	rows := sqlmock.NewRows(cols).
		AddRow(1, 2, 3, "Santiago", "Calama", 1200.5, 110, true)
	mock.ExpectQuery("FROM ruta r").WillReturnRows(rows)

	repo := NewRouteRepository(db, nil)
	routes, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}
	rt := routes[0]
	if rt.OriginName != "Santiago" || rt.DestinationName != "Calama" || rt.DistanceKm != 1200.5 {
		t.Fatalf("join mapping wrong: %+v", rt)
	}
}
