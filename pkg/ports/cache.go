package ports

import (
	"context"

	"github.com/aretw0/ecoguia/pkg/domain"
)

// SearchCache memoizes reservation lookups by normalized query.
// A miss is reported as ok == false with a nil error.
type SearchCache interface {
	Get(ctx context.Context, key string) (records []domain.Record, ok bool, err error)
	Set(ctx context.Context, key string, records []domain.Record) error
}
