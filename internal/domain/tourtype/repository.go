package tourtype

import "context"

// Repository describes tournament-type persistence needs from use cases.
type Repository interface {
	List(ctx context.Context) ([]Type, error)
	GetByID(ctx context.Context, id int64) (Type, bool, error)
	GetByCode(ctx context.Context, codigo string) (Type, bool, error)
	Insert(ctx context.Context, t Type) (Type, error)
	Update(ctx context.Context, id int64, t Type) (Type, error)
	Delete(ctx context.Context, id int64) error
	CountDependents(ctx context.Context, id int64) (int, error)
}
