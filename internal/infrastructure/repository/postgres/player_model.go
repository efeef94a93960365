package postgres

import (
	"database/sql"
	"time"
)

type playerTableModel struct {
	ID            int64          `db:"id"`
	CP            string         `db:"cp"`
	NumeroJugador string         `db:"numero_jugador"`
	IDFed         string         `db:"idfed"`
	Nombre        string         `db:"nombre"`
	Apellidos     string         `db:"apellidos"`
	DNI           sql.NullString `db:"dni"`
	Telefono      sql.NullString `db:"telefono"`
	Email         sql.NullString `db:"email"`
	CodigoClub    string         `db:"codigo_club"`
	NombreClub    sql.NullString `db:"nombre_club"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

type playerInsertModel struct {
	CP            string  `db:"cp"`
	NumeroJugador string  `db:"numero_jugador"`
	IDFed         string  `db:"idfed"`
	Nombre        string  `db:"nombre"`
	Apellidos     string  `db:"apellidos"`
	DNI           *string `db:"dni"`
	Telefono      *string `db:"telefono"`
	Email         *string `db:"email"`
	CodigoClub    string  `db:"codigo_club"`
}
