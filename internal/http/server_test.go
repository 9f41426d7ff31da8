package httpapi

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/example/airlink-admin/internal/config"
)

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		BcryptCost:         bcrypt.MinCost,
		LoginRatePerMinute: 10,
		LoginRateBurst:     5,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewServer(cfg, logger, db), mock
}

func userRow(email, credential string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"idUsuario", "nombreUsuario", "email", "contrasena", "idRol"}).
		AddRow(4, "Ana", email, credential, 3)
}

func TestLoginSuccess(t *testing.T) {
	srv, mock := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	mock.ExpectQuery("FROM usuario WHERE email").
		WithArgs("ana@airlink.cl").
		WillReturnRows(userRow("ana@airlink.cl", string(hash)))

	req := httptest.NewRequest("POST", "/api/v1/login", strings.NewReader(`{"email":"ana@airlink.cl","password":"secret"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"email":"ana@airlink.cl"`) {
		t.Fatalf("user not returned: %s", body)
	}
	if strings.Contains(body, "$2") {
		t.Fatalf("credential leaked: %s", body)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery("FROM usuario WHERE email").
		WithArgs("ana@airlink.cl").
		WillReturnRows(userRow("ana@airlink.cl", "abc123"))

	req := httptest.NewRequest("POST", "/api/v1/login", strings.NewReader(`{"email":"ana@airlink.cl","password":"ABC123"}`))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != 401 {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestLoginRateLimited(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	cfg := config.Config{
		BcryptCost:         bcrypt.MinCost,
		LoginRatePerMinute: 1,
		LoginRateBurst:     2,
	}
	srv := NewServer(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), db)

	// the first two attempts consume the burst and reach the store
	mock.ExpectQuery("FROM usuario WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"idUsuario", "nombreUsuario", "email", "contrasena", "idRol"}))
	mock.ExpectQuery("FROM usuario WHERE email").
		WillReturnRows(sqlmock.NewRows([]string{"idUsuario", "nombreUsuario", "email", "contrasena", "idRol"}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/v1/login", strings.NewReader(`{"email":"x@y.cl","password":"p"}`))
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != 401 || codes[1] != 401 {
		t.Fatalf("burst attempts should reach auth: %v", codes)
	}
	if codes[2] != 429 {
		t.Fatalf("third attempt should be throttled: %v", codes)
	}
}

func TestDeleteRouteConflict(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectExec("DELETE FROM ruta").
		WithArgs(3).
		WillReturnError(&pq.Error{Code: "23503"})

	req := httptest.NewRequest("DELETE", "/api/v1/rutas/3", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != 409 {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetDestinationNotFound(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery("FROM destino WHERE idDestino").
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"idDestino", "nombre", "precio", "ciudad", "pais", "imagen", "descripcion", "destacado", "activo"}))

	req := httptest.NewRequest("GET", "/api/v1/destinos/99", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != 404 {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest("GET", "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListTripsEmptyRendersArray(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectQuery("FROM viaje ORDER BY salida").
		WillReturnRows(sqlmock.NewRows([]string{"idViaje", "idRuta", "salida", "llegada", "idEquipo", "estado", "idDestino"}))

	req := httptest.NewRequest("GET", "/api/v1/viajes", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list should render as []: %q", rec.Body.String())
	}
}
