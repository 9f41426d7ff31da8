package httpapi

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/airlink-admin/internal/auth"
	"github.com/example/airlink-admin/internal/config"
	"github.com/example/airlink-admin/internal/payments"
	"github.com/example/airlink-admin/internal/report"
	"github.com/example/airlink-admin/internal/storage"
)

// Server is the thin presentation surface over the data layer: it decodes
// requests, calls one repository or service operation, and renders the
// result. No business rules live here.
type Server struct {
	logger *slog.Logger

	users        *storage.UserRepository
	terminals    *storage.TerminalRepository
	routes       *storage.RouteRepository
	companies    *storage.CompanyRepository
	fleet        *storage.FleetRepository
	destinations *storage.DestinationRepository
	trips        *storage.TripRepository

	auth     *auth.Service
	reports  *report.Generator
	payments *payments.Client

	loginLimiter *ipRateLimiter
	mux          *mux.Router
}

func NewServer(cfg config.Config, logger *slog.Logger, db *sql.DB) *Server {
	users := storage.NewUserRepository(db, logger, cfg.BcryptCost)
	s := &Server{
		logger:       logger,
		users:        users,
		terminals:    storage.NewTerminalRepository(db, logger),
		routes:       storage.NewRouteRepository(db, logger),
		companies:    storage.NewCompanyRepository(db, logger),
		fleet:        storage.NewFleetRepository(db, logger),
		destinations: storage.NewDestinationRepository(db, logger),
		trips:        storage.NewTripRepository(db, logger),
		auth:         auth.NewService(users, logger),
		reports:      report.NewGenerator(db, logger),
		loginLimiter: newIPRateLimiter(cfg.LoginRatePerMinute, cfg.LoginRateBurst),
		mux:          mux.NewRouter(),
	}
	if cfg.StripeAPIKey != "" {
		s.payments = payments.NewClient(cfg.StripeAPIKey)
	}
	s.registerMiddleware()
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.mux.PathPrefix("/api/v1").Subrouter()

	api.Handle("/login", s.loginLimiter.limit(http.HandlerFunc(s.handleLogin))).Methods("POST")

	api.HandleFunc("/usuarios", s.handleListUsers).Methods("GET")
	api.HandleFunc("/usuarios", s.handleAddUser).Methods("POST")
	api.HandleFunc("/usuarios/{id:[0-9]+}", s.handleGetUser).Methods("GET")
	api.HandleFunc("/usuarios/{id:[0-9]+}", s.handleUpdateUser).Methods("PUT")
	api.HandleFunc("/usuarios/{id:[0-9]+}", s.handleDeleteUser).Methods("DELETE")

	api.HandleFunc("/terminales", s.handleListTerminals).Methods("GET")
	api.HandleFunc("/terminales", s.handleAddTerminal).Methods("POST")
	api.HandleFunc("/terminales/{id:[0-9]+}", s.handleGetTerminal).Methods("GET")
	api.HandleFunc("/terminales/{id:[0-9]+}", s.handleUpdateTerminal).Methods("PUT")
	api.HandleFunc("/terminales/{id:[0-9]+}", s.handleDeleteTerminal).Methods("DELETE")

	api.HandleFunc("/rutas", s.handleListRoutes).Methods("GET")
	api.HandleFunc("/rutas", s.handleAddRoute).Methods("POST")
	api.HandleFunc("/rutas/{id:[0-9]+}", s.handleGetRoute).Methods("GET")
	api.HandleFunc("/rutas/{id:[0-9]+}", s.handleUpdateRoute).Methods("PUT")
	api.HandleFunc("/rutas/{id:[0-9]+}", s.handleDeleteRoute).Methods("DELETE")

	api.HandleFunc("/empresas", s.handleListCompanies).Methods("GET")
	api.HandleFunc("/empresas", s.handleAddCompany).Methods("POST")
	api.HandleFunc("/empresas/{id:[0-9]+}", s.handleGetCompany).Methods("GET")
	api.HandleFunc("/empresas/{id:[0-9]+}", s.handleUpdateCompany).Methods("PUT")
	api.HandleFunc("/empresas/{id:[0-9]+}", s.handleDeleteCompany).Methods("DELETE")

	api.HandleFunc("/equipos", s.handleListFleet).Methods("GET")
	api.HandleFunc("/equipos", s.handleAddFleetUnit).Methods("POST")
	api.HandleFunc("/equipos/{id:[0-9]+}", s.handleGetFleetUnit).Methods("GET")
	api.HandleFunc("/equipos/{id:[0-9]+}", s.handleUpdateFleetUnit).Methods("PUT")
	api.HandleFunc("/equipos/{id:[0-9]+}", s.handleDeleteFleetUnit).Methods("DELETE")

	api.HandleFunc("/destinos", s.handleListDestinations).Methods("GET")
	api.HandleFunc("/destinos", s.handleAddDestination).Methods("POST")
	api.HandleFunc("/destinos/{id:[0-9]+}", s.handleGetDestination).Methods("GET")
	api.HandleFunc("/destinos/{id:[0-9]+}", s.handleUpdateDestination).Methods("PUT")
	api.HandleFunc("/destinos/{id:[0-9]+}", s.handleDeleteDestination).Methods("DELETE")
	api.HandleFunc("/destinos/{id:[0-9]+}/viajes", s.handleListTripsByDestination).Methods("GET")

	api.HandleFunc("/viajes", s.handleListTrips).Methods("GET")
	api.HandleFunc("/viajes", s.handleAddTrip).Methods("POST")
	api.HandleFunc("/viajes/{id:[0-9]+}", s.handleGetTrip).Methods("GET")
	api.HandleFunc("/viajes/{id:[0-9]+}", s.handleUpdateTrip).Methods("PUT")
	api.HandleFunc("/viajes/{id:[0-9]+}", s.handleDeleteTrip).Methods("DELETE")

	api.HandleFunc("/reportes/viajes", s.handleTripsReport).Methods("POST")

	api.HandleFunc("/pagos/hold", s.handlePaymentHold).Methods("POST")
	api.HandleFunc("/pagos/capture", s.handlePaymentCapture).Methods("POST")
	api.HandleFunc("/pagos/cancel", s.handlePaymentCancel).Methods("POST")

	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")
	s.mux.Handle("/metrics", promhttp.Handler())
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.mux.ServeHTTP(w, r) }
