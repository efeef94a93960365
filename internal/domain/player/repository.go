package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, params ListParams) ([]Player, int, error)
	GetByIDFed(ctx context.Context, idfed string) (Player, bool, error)
	ListByClub(ctx context.Context, codigoClub string) ([]Player, error)
	Insert(ctx context.Context, p Player) (Player, error)
	Update(ctx context.Context, idfed string, p Player) (Player, error)
	Delete(ctx context.Context, idfed string) error
	CountDependents(ctx context.Context, idfed string) (int, error)
	ApplyBulk(ctx context.Context, creates, updates []Player) error
}
