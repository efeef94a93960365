package club

import "context"

// Repository describes club persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, params ListParams) ([]Club, int, error)
	GetByCode(ctx context.Context, codigoClub string) (Club, bool, error)
	Insert(ctx context.Context, c Club) (Club, error)
	Update(ctx context.Context, codigoClub string, c Club) (Club, error)
	Delete(ctx context.Context, codigoClub string) error
	CountDependents(ctx context.Context, codigoClub string) (int, error)
	ApplyBulk(ctx context.Context, creates, updates []Club) error
}
