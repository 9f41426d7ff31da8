package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/example/airlink-admin/internal/models"
)

// Every handler below is the same shape: decode, call one repository
// operation, render. Lists render as [] rather than null when empty.

func renderList[T any](w http.ResponseWriter, items []T, err error) {
	if err != nil {
		storeError(w, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	writeJSON(w, http.StatusOK, items)
}

// --- usuarios ---

type userRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     int    `json:"role"`
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	items, err := s.users.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.users.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleAddUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u := models.User{Name: req.Name, Email: req.Email, PasswordHash: req.Password, Role: models.Role(req.Role)}
	if err := s.users.Add(r.Context(), &u); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	u := models.User{ID: idVar(r), Name: req.Name, Email: req.Email, PasswordHash: req.Password, Role: models.Role(req.Role)}
	if err := s.users.Update(r.Context(), &u); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.users.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- terminales ---

func (s *Server) handleListTerminals(w http.ResponseWriter, r *http.Request) {
	items, err := s.terminals.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetTerminal(w http.ResponseWriter, r *http.Request) {
	t, err := s.terminals.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddTerminal(w http.ResponseWriter, r *http.Request) {
	var t models.Terminal
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.terminals.Add(r.Context(), &t); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTerminal(w http.ResponseWriter, r *http.Request) {
	var t models.Terminal
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t.ID = idVar(r)
	if err := s.terminals.Update(r.Context(), &t); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTerminal(w http.ResponseWriter, r *http.Request) {
	if err := s.terminals.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- rutas ---

func (s *Server) handleListRoutes(w http.ResponseWriter, r *http.Request) {
	items, err := s.routes.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetRoute(w http.ResponseWriter, r *http.Request) {
	rt, err := s.routes.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) handleAddRoute(w http.ResponseWriter, r *http.Request) {
	var rt models.Route
	if err := json.NewDecoder(r.Body).Decode(&rt); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.routes.Add(r.Context(), &rt); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rt)
}

func (s *Server) handleUpdateRoute(w http.ResponseWriter, r *http.Request) {
	var rt models.Route
	if err := json.NewDecoder(r.Body).Decode(&rt); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rt.ID = idVar(r)
	if err := s.routes.Update(r.Context(), &rt); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rt)
}

func (s *Server) handleDeleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := s.routes.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- empresas ---

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	items, err := s.companies.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	c, err := s.companies.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleAddCompany(w http.ResponseWriter, r *http.Request) {
	var c models.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.companies.Add(r.Context(), &c); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	var c models.Company
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c.ID = idVar(r)
	if err := s.companies.Update(r.Context(), &c); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	if err := s.companies.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- equipos ---

func (s *Server) handleListFleet(w http.ResponseWriter, r *http.Request) {
	items, err := s.fleet.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetFleetUnit(w http.ResponseWriter, r *http.Request) {
	f, err := s.fleet.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleAddFleetUnit(w http.ResponseWriter, r *http.Request) {
	var f models.FleetUnit
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.fleet.Add(r.Context(), &f); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

func (s *Server) handleUpdateFleetUnit(w http.ResponseWriter, r *http.Request) {
	var f models.FleetUnit
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.ID = idVar(r)
	if err := s.fleet.Update(r.Context(), &f); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (s *Server) handleDeleteFleetUnit(w http.ResponseWriter, r *http.Request) {
	if err := s.fleet.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- destinos ---

func (s *Server) handleListDestinations(w http.ResponseWriter, r *http.Request) {
	items, err := s.destinations.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetDestination(w http.ResponseWriter, r *http.Request) {
	d, err := s.destinations.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleAddDestination(w http.ResponseWriter, r *http.Request) {
	var d models.Destination
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.destinations.Add(r.Context(), &d); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) handleUpdateDestination(w http.ResponseWriter, r *http.Request) {
	var d models.Destination
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	d.ID = idVar(r)
	if err := s.destinations.Update(r.Context(), &d); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleDeleteDestination(w http.ResponseWriter, r *http.Request) {
	if err := s.destinations.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTripsByDestination(w http.ResponseWriter, r *http.Request) {
	items, err := s.trips.ListByDestination(r.Context(), idVar(r))
	renderList(w, items, err)
}

// --- viajes ---

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	items, err := s.trips.List(r.Context())
	renderList(w, items, err)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	t, err := s.trips.GetByID(r.Context(), idVar(r))
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddTrip(w http.ResponseWriter, r *http.Request) {
	var t models.Trip
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.trips.Add(r.Context(), &t); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	var t models.Trip
	if err := json.NewDecoder(r.Body).Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	t.ID = idVar(r)
	if err := s.trips.Update(r.Context(), &t); err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), idVar(r)); err != nil {
		storeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
