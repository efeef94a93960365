package tournament

import (
	"context"
	"time"
)

// Repository describes campeonato persistence needs from use cases.
// Insert must surface a conflict-marked error on a duplicate NCH so the
// creation path can recompute the incremental and retry.
type Repository interface {
	List(ctx context.Context, params ListParams) ([]Tournament, int, error)
	GetByNCH(ctx context.Context, nch string) (Tournament, bool, error)
	// FindByAttributes locates a campeonato by its natural import key:
	// same tipo, organizing club, start date and name.
	FindByAttributes(ctx context.Context, tipoID int64, codigoClub string, fecha time.Time, nombre string) (Tournament, bool, error)
	LastNCHForPrefix(ctx context.Context, prefix string) (string, bool, error)
	Insert(ctx context.Context, t Tournament) error
	Update(ctx context.Context, nch string, t Tournament) (Tournament, error)
	Delete(ctx context.Context, nch string) error
	CountDependents(ctx context.Context, nch string) (int, error)
	ApplyBulk(ctx context.Context, creates, updates []Tournament) error
}
