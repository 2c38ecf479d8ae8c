package counter

import (
	"context"

	"github.com/dvdk01/trove-counter/internal/schema"
)

// Counter returns the total number of records matching a query.
type Counter interface {
	Count(ctx context.Context, query schema.Query) (int64, error)
}
