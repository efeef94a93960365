package postgres

import "database/sql"

type tourTypeTableModel struct {
	ID          int64          `db:"id"`
	Codigo      string         `db:"codigo"`
	Nombre      string         `db:"nombre"`
	Descripcion sql.NullString `db:"descripcion"`
}

type tourTypeInsertModel struct {
	Codigo      string  `db:"codigo"`
	Nombre      string  `db:"nombre"`
	Descripcion *string `db:"descripcion"`
}
