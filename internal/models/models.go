package models

import "time"

// Role is the closed set of user roles. The store keeps the role as a small
// integer (rol.idRol); repositories map it to and from this type.
type Role int

const (
	RoleCustomer      Role = 1
	RoleStaff         Role = 2
	RoleAdministrator Role = 3
)

func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "cliente"
	case RoleStaff:
		return "personal"
	case RoleAdministrator:
		return "administrador"
	default:
		return "desconocido"
	}
}

// User maps one usuario row. PasswordHash carries either a bcrypt digest or,
// for accounts created before hashing was introduced, the legacy plaintext
// value. Authentication results never include it.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Role         Role   `json:"role"`
}

type Terminal struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	City string `json:"city"`
}

// Route maps one ruta row. OriginName and DestinationName are read-side
// fields filled by the terminal join on list/get; they are never written.
type Route struct {
	ID                int     `json:"id"`
	OriginTerminalID  int     `json:"origin_terminal_id"`
	DestTerminalID    int     `json:"dest_terminal_id"`
	OriginName        string  `json:"origin_name,omitempty"`
	DestinationName   string  `json:"destination_name,omitempty"`
	DistanceKm        float64 `json:"distance_km"`
	EstimatedDuration int     `json:"estimated_duration_min"`
	Active            bool    `json:"active"`
}

type Company struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Logo        string `json:"logo"`
	Description string `json:"description"`
	Website     string `json:"website"`
	Active      bool   `json:"active"`
}

// FleetUnit maps one empresa_equipo row: a vehicle or aircraft operated by a
// company.
type FleetUnit struct {
	ID        int    `json:"id"`
	CompanyID int    `json:"company_id"`
	Model     string `json:"model"`
	Plate     string `json:"plate"`
	Capacity  int    `json:"capacity"`
	Active    bool   `json:"active"`
}

type Destination struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Featured    bool    `json:"featured"`
	Active      bool    `json:"active"`
}

// Trip maps one viaje row. Departure/Arrival ordering is not validated;
// overnight trips recorded in local time may legitimately cross midnight.
type Trip struct {
	ID            int       `json:"id"`
	RouteID       int       `json:"route_id"`
	Departure     time.Time `json:"departure"`
	Arrival       time.Time `json:"arrival"`
	FleetUnitID   int       `json:"fleet_unit_id"`
	Status        string    `json:"status"` // free text, e.g. "programado"
	DestinationID int       `json:"destination_id"`
}

// TripReportRow is one denormalized line of the trips report: trip fields
// plus names resolved through ruta, terminal and empresa. Joined fields are
// nullable because the report query uses LEFT JOINs.
type TripReportRow struct {
	TripID      int
	OriginName  *string
	DestName    *string
	Departure   time.Time
	Arrival     time.Time
	CompanyName *string
	Status      *string
}
