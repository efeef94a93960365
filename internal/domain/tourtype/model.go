package tourtype

import (
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/validate"
)

// Type is a tournament category (tipo de campeonato). The 2-letter code is the
// business key; the table is a small reference set seeded at startup.
type Type struct {
	ID          int64
	Codigo      string
	Nombre      string
	Descripcion string
}

func (t Type) Validate() error {
	if _, err := validate.TypeCode(t.Codigo); err != nil {
		return err
	}
	if t.Nombre == "" {
		return fmt.Errorf("el nombre del tipo de campeonato es obligatorio")
	}
	return nil
}

// SeedTypes is the reference set created once when the table is empty.
func SeedTypes() []Type {
	return []Type{
		{Codigo: "DP", Nombre: "Dominó Parejas", Descripcion: "Campeonato de dominó por parejas"},
		{Codigo: "DI", Nombre: "Dominó Individual", Descripcion: "Campeonato de dominó individual"},
		{Codigo: "RP", Nombre: "Rueda Parejas", Descripcion: "Campeonato de rueda por parejas"},
		{Codigo: "RI", Nombre: "Rueda Individual", Descripcion: "Campeonato de rueda individual"},
		{Codigo: "LI", Nombre: "Liga", Descripcion: "Campeonato de liga"},
	}
}
