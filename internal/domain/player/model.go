package player

import (
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/validate"
	"github.com/dominofed/federation-backend/internal/platform/identifier"
)

// Player is a federated player. The business key idfed is the postal prefix
// concatenated with the player number zero-padded to 5 digits, 7 digits total.
// DNI, Telefono and Email are optional; empty means absent.
type Player struct {
	ID            int64
	CP            string
	NumeroJugador string
	IDFed         string
	Nombre        string
	Apellidos     string
	DNI           string
	Telefono      string
	Email         string
	CodigoClub    string

	// NombreClub is resolved from the club row on reads; never written.
	NombreClub string
}

func (p Player) Validate() error {
	if _, err := validate.PostalCode(p.CP); err != nil {
		return err
	}
	if _, err := validate.PlayerNumber(p.NumeroJugador); err != nil {
		return err
	}
	if p.Nombre == "" {
		return fmt.Errorf("el nombre del jugador es obligatorio")
	}
	if p.Apellidos == "" {
		return fmt.Errorf("los apellidos del jugador son obligatorios")
	}
	if _, err := validate.ClubCode(p.CodigoClub); err != nil {
		return err
	}
	if _, err := validate.DNI(p.DNI); err != nil {
		return err
	}
	if _, err := validate.Phone(p.Telefono); err != nil {
		return err
	}
	if _, err := validate.Email(p.Email); err != nil {
		return err
	}
	idfed, err := identifier.FormatIDFed(p.CP, p.NumeroJugador)
	if err != nil {
		return err
	}
	if p.IDFed != idfed {
		return fmt.Errorf("el idfed debe ser CP + numero de jugador: esperado %s", idfed)
	}
	return nil
}

type ListParams struct {
	Offset int
	Limit  int
	Sort   string
}
