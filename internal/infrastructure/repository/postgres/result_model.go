package postgres

import (
	"database/sql"
	"time"

	"github.com/dominofed/federation-backend/internal/domain/result"
)

type resultTableModel struct {
	NCH              int64          `db:"nch"`
	TipoCampeonatoID int64          `db:"tipo_campeonato_id"`
	CampeonatoNCH    sql.NullString `db:"campeonato_nch"`
	NombreCampeonato string         `db:"nombre_campeonato"`
	FechaCampeonato  time.Time      `db:"fecha_campeonato"`

	IDFedJugador      string `db:"idfed_jugador"`
	NombreJugador     string `db:"nombre_jugador"`
	ApellidoJugador   string `db:"apellido_jugador"`
	CodigoClubJugador string `db:"codigo_club_jugador"`
	NombreClubJugador string `db:"nombre_club_jugador"`

	IDFedPareja      sql.NullString `db:"idfed_pareja"`
	NombrePareja     sql.NullString `db:"nombre_pareja"`
	ApellidoPareja   sql.NullString `db:"apellido_pareja"`
	CodigoClubPareja sql.NullString `db:"codigo_club_pareja"`
	NombreClubPareja sql.NullString `db:"nombre_club_pareja"`

	Partida int  `db:"partida"`
	Mesa    int  `db:"mesa"`
	GB      bool `db:"gb"`
	PG      int  `db:"pg"`
	Dif     int  `db:"dif"`
	PV      int  `db:"pv"`
	PT      int  `db:"pt"`
	MG      int  `db:"mg"`
	Pos     int  `db:"pos"`

	CodigoTipo sql.NullString `db:"codigo_tipo"`
}

type resultInsertModel struct {
	TipoCampeonatoID int64     `db:"tipo_campeonato_id"`
	CampeonatoNCH    *string   `db:"campeonato_nch"`
	NombreCampeonato string    `db:"nombre_campeonato"`
	FechaCampeonato  time.Time `db:"fecha_campeonato"`

	IDFedJugador      string `db:"idfed_jugador"`
	NombreJugador     string `db:"nombre_jugador"`
	ApellidoJugador   string `db:"apellido_jugador"`
	CodigoClubJugador string `db:"codigo_club_jugador"`
	NombreClubJugador string `db:"nombre_club_jugador"`

	IDFedPareja      *string `db:"idfed_pareja"`
	NombrePareja     *string `db:"nombre_pareja"`
	ApellidoPareja   *string `db:"apellido_pareja"`
	CodigoClubPareja *string `db:"codigo_club_pareja"`
	NombreClubPareja *string `db:"nombre_club_pareja"`

	Partida int  `db:"partida"`
	Mesa    int  `db:"mesa"`
	GB      bool `db:"gb"`
	PG      int  `db:"pg"`
	Dif     int  `db:"dif"`
	PV      int  `db:"pv"`
	PT      int  `db:"pt"`
	MG      int  `db:"mg"`
	Pos     int  `db:"pos"`
}

func resultFromRow(row resultTableModel) result.Result {
	out := result.Result{
		NCH:              row.NCH,
		FechaCampeonato:  row.FechaCampeonato,
		IDFedJugador:     row.IDFedJugador,
		CampeonatoNCH:    nullStringToString(row.CampeonatoNCH),
		TipoCampeonatoID: row.TipoCampeonatoID,
		NombreCampeonato: row.NombreCampeonato,

		NombreJugador:     row.NombreJugador,
		ApellidoJugador:   row.ApellidoJugador,
		CodigoClubJugador: row.CodigoClubJugador,
		NombreClubJugador: row.NombreClubJugador,

		Partida: row.Partida,
		Mesa:    row.Mesa,
		GB:      row.GB,
		PG:      row.PG,
		Dif:     row.Dif,
		PV:      row.PV,
		PT:      row.PT,
		MG:      row.MG,
		Pos:     row.Pos,

		CodigoTipo: nullStringToString(row.CodigoTipo),
	}
	if row.IDFedPareja.Valid {
		out.Pareja = &result.Partner{
			IDFed:      row.IDFedPareja.String,
			Nombre:     nullStringToString(row.NombrePareja),
			Apellido:   nullStringToString(row.ApellidoPareja),
			CodigoClub: nullStringToString(row.CodigoClubPareja),
			NombreClub: nullStringToString(row.NombreClubPareja),
		}
	}
	return out
}

func resultInsertRow(r result.Result) resultInsertModel {
	row := resultInsertModel{
		TipoCampeonatoID: r.TipoCampeonatoID,
		CampeonatoNCH:    nullableString(r.CampeonatoNCH),
		NombreCampeonato: r.NombreCampeonato,
		FechaCampeonato:  r.FechaCampeonato,

		IDFedJugador:      r.IDFedJugador,
		NombreJugador:     r.NombreJugador,
		ApellidoJugador:   r.ApellidoJugador,
		CodigoClubJugador: r.CodigoClubJugador,
		NombreClubJugador: r.NombreClubJugador,

		Partida: r.Partida,
		Mesa:    r.Mesa,
		GB:      r.GB,
		PG:      r.PG,
		Dif:     r.Dif,
		PV:      r.PV,
		PT:      r.PT,
		MG:      r.MG,
		Pos:     r.Pos,
	}
	if r.Pareja != nil {
		row.IDFedPareja = nullableString(r.Pareja.IDFed)
		row.NombrePareja = nullableString(r.Pareja.Nombre)
		row.ApellidoPareja = nullableString(r.Pareja.Apellido)
		row.CodigoClubPareja = nullableString(r.Pareja.CodigoClub)
		row.NombreClubPareja = nullableString(r.Pareja.NombreClub)
	}
	return row
}
