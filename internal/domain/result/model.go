package result

import (
	"fmt"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/validate"
)

// Partner holds the optional pareja columns. They are nullable as a group:
// when IDFed is present every other field must be present too.
type Partner struct {
	IDFed      string
	Nombre     string
	Apellido   string
	CodigoClub string
	NombreClub string
}

// Result is one player's row for one match of one tournament. Player and club
// names are denormalized snapshots taken at the time of play so the historical
// record survives later renames; the idfed/codigo_club columns stay live
// foreign keys. GB true means group A, false group B.
type Result struct {
	NCH             int64
	FechaCampeonato time.Time
	IDFedJugador    string

	CampeonatoNCH    string
	TipoCampeonatoID int64
	NombreCampeonato string

	NombreJugador     string
	ApellidoJugador   string
	CodigoClubJugador string
	NombreClubJugador string

	Pareja *Partner

	Partida int
	Mesa    int
	GB      bool
	PG      int
	Dif     int
	PV      int
	PT      int
	MG      int
	Pos     int

	// CodigoTipo is resolved from the tipo row on reads; never written.
	CodigoTipo string
}

func (r Result) Validate() error {
	if r.TipoCampeonatoID <= 0 {
		return fmt.Errorf("el tipo de campeonato es obligatorio")
	}
	if r.NombreCampeonato == "" {
		return fmt.Errorf("el nombre del campeonato es obligatorio")
	}
	if r.FechaCampeonato.IsZero() {
		return fmt.Errorf("la fecha del campeonato es obligatoria")
	}
	if _, err := validate.IDFed(r.IDFedJugador); err != nil {
		return err
	}
	if r.NombreJugador == "" || r.ApellidoJugador == "" {
		return fmt.Errorf("nombre y apellido del jugador son obligatorios")
	}
	if _, err := validate.ClubCode(r.CodigoClubJugador); err != nil {
		return err
	}
	if r.NombreClubJugador == "" {
		return fmt.Errorf("el nombre del club del jugador es obligatorio")
	}
	if r.Pareja != nil {
		if _, err := validate.IDFed(r.Pareja.IDFed); err != nil {
			return err
		}
		if r.Pareja.Nombre == "" || r.Pareja.Apellido == "" {
			return fmt.Errorf("nombre y apellido de la pareja son obligatorios")
		}
		if _, err := validate.ClubCode(r.Pareja.CodigoClub); err != nil {
			return err
		}
		if r.Pareja.NombreClub == "" {
			return fmt.Errorf("el nombre del club de la pareja es obligatorio")
		}
	}
	if r.Partida <= 0 {
		return fmt.Errorf("partida debe ser mayor que cero")
	}
	if r.Mesa <= 0 {
		return fmt.Errorf("mesa debe ser mayor que cero")
	}
	return nil
}

// Key is the composite primary identity of a result row.
type Key struct {
	NCH             int64
	FechaCampeonato time.Time
	IDFedJugador    string
}

// UpdateFields is the allow-listed partial update for a result. Identity and
// snapshot columns are deliberately absent.
type UpdateFields struct {
	TipoCampeonatoID *int64
	NombreCampeonato *string
	Partida          *int
	Mesa             *int
	GB               *bool
	PG               *int
	Dif              *int
	PV               *int
	PT               *int
	MG               *int
	Pos              *int
}

// ListFilter is the fixed query-parameter filter for result listings.
type ListFilter struct {
	TipoCampeonatoID *int64
	FechaDesde       *time.Time
	FechaHasta       *time.Time
	IDFedJugador     string
	Offset           int
	Limit            int
}

// Operator is a dynamic-filter comparison restricted to a fixed set.
type Operator string

const (
	OpEq       Operator = "eq"
	OpContains Operator = "contains"
	OpGt       Operator = "gt"
	OpLt       Operator = "lt"
	OpBetween  Operator = "between"
	OpAfter    Operator = "after"
	OpBefore   Operator = "before"
)

// FieldFilter is one predicate of the dynamic filter endpoint; predicates
// combine with logical AND. Value2 is only set for between.
type FieldFilter struct {
	Field    string
	Operator Operator
	Value    any
	Value2   any
}
