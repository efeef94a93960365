package tournament

import (
	"fmt"
	"time"
)

// Tournament is a campeonato. Its primary key NCH is generated server side:
// codigo_tipo(2) + codigo_club(6) + fecha_inicio YYYYMMDD(8) + incremental(4).
// GB marks the championship as group B (false means group A); GBP, only
// meaningful for group B, is the partida where that group starts.
type Tournament struct {
	NCH             string
	Nombre          string
	FechaInicio     time.Time
	Dias            int
	Partidas        int
	PM              int
	GB              bool
	GBP             *int
	TipoCampeonatoID int64
	CodigoClub      string

	// CodigoTipo is resolved from the tipo row on reads; never written.
	CodigoTipo string
}

func (t Tournament) Validate() error {
	if t.Nombre == "" {
		return fmt.Errorf("el nombre del campeonato es obligatorio")
	}
	if t.FechaInicio.IsZero() {
		return fmt.Errorf("la fecha de inicio es obligatoria")
	}
	if t.Dias <= 0 {
		return fmt.Errorf("dias debe ser mayor que cero")
	}
	if t.Partidas <= 0 {
		return fmt.Errorf("partidas debe ser mayor que cero")
	}
	if t.PM <= 0 {
		return fmt.Errorf("pm debe ser mayor que cero")
	}
	if t.GBP != nil && *t.GBP <= 0 {
		return fmt.Errorf("gbp debe ser mayor que cero")
	}
	if t.TipoCampeonatoID <= 0 {
		return fmt.Errorf("el tipo de campeonato es obligatorio")
	}
	if t.CodigoClub == "" {
		return fmt.Errorf("el club organizador es obligatorio")
	}
	return nil
}

type ListParams struct {
	Offset int
	Limit  int
	Sort   string
}
