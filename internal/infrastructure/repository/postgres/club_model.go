package postgres

import "time"

type clubTableModel struct {
	ID         int64     `db:"id"`
	CP         string    `db:"cp"`
	NumeroClub string    `db:"numero_club"`
	CodigoClub string    `db:"codigo_club"`
	Nombre     string    `db:"nombre"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

type clubInsertModel struct {
	CP         string `db:"cp"`
	NumeroClub string `db:"numero_club"`
	CodigoClub string `db:"codigo_club"`
	Nombre     string `db:"nombre"`
}
