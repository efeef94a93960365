package result

import (
	"context"
	"time"
)

// Repository describes result persistence needs from use cases.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Result, int, error)
	// Filter evaluates pre-validated dynamic predicates; the repository owns
	// the field-to-column mapping and rejects anything outside it.
	Filter(ctx context.Context, filters []FieldFilter, offset, limit int) ([]Result, int, error)
	GetByKey(ctx context.Context, key Key) (Result, bool, error)
	// GetByNaturalKey locates a row by the import de-duplication key, which is
	// distinct from the primary key.
	GetByNaturalKey(ctx context.Context, fecha time.Time, idfed string, partida, mesa int) (Result, bool, error)
	ListByPlayer(ctx context.Context, idfed string) ([]Result, error)
	ListByCampeonato(ctx context.Context, campeonatoNCH string) ([]Result, error)
	Insert(ctx context.Context, r Result) (Result, error)
	Update(ctx context.Context, key Key, fields UpdateFields) (Result, error)
	Delete(ctx context.Context, key Key) error
	ApplyBulk(ctx context.Context, creates, updates []Result) error
}
