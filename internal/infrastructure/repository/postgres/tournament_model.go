package postgres

import (
	"database/sql"
	"time"
)

type tournamentTableModel struct {
	NCH              string         `db:"nch"`
	Nombre           string         `db:"nombre"`
	FechaInicio      time.Time      `db:"fecha_inicio"`
	Dias             int            `db:"dias"`
	Partidas         int            `db:"partidas"`
	PM               int            `db:"pm"`
	GB               bool           `db:"gb"`
	GBP              sql.NullInt64  `db:"gbp"`
	TipoCampeonatoID int64          `db:"tipo_campeonato_id"`
	CodigoClub       string         `db:"codigo_club"`
	CodigoTipo       sql.NullString `db:"codigo_tipo"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

type tournamentInsertModel struct {
	NCH              string    `db:"nch"`
	Nombre           string    `db:"nombre"`
	FechaInicio      time.Time `db:"fecha_inicio"`
	Dias             int       `db:"dias"`
	Partidas         int       `db:"partidas"`
	PM               int       `db:"pm"`
	GB               bool      `db:"gb"`
	GBP              *int      `db:"gbp"`
	TipoCampeonatoID int64     `db:"tipo_campeonato_id"`
	CodigoClub       string    `db:"codigo_club"`
}
