package club

import (
	"fmt"

	"github.com/dominofed/federation-backend/internal/domain/validate"
	"github.com/dominofed/federation-backend/internal/platform/identifier"
)

// Club is a federated domino club. Its business key codigo_club is the postal
// prefix concatenated with the club number zero-padded to 4 digits.
type Club struct {
	ID         int64
	CP         string
	NumeroClub string
	CodigoClub string
	Nombre     string
}

func (c Club) Validate() error {
	if _, err := validate.PostalCode(c.CP); err != nil {
		return err
	}
	if _, err := validate.ClubNumber(c.NumeroClub); err != nil {
		return err
	}
	if c.Nombre == "" {
		return fmt.Errorf("el nombre del club es obligatorio")
	}
	codigo, err := identifier.FormatClubCode(c.CP, c.NumeroClub)
	if err != nil {
		return err
	}
	if c.CodigoClub != codigo {
		return fmt.Errorf("el codigo del club debe ser CP + numero de club: esperado %s", codigo)
	}
	return nil
}

// ListParams bounds and orders a club listing. Sort accepts only columns from
// the repository allow-list; anything else falls back to the default order.
type ListParams struct {
	Offset int
	Limit  int
	Sort   string
}
