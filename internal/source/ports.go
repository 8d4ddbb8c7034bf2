package source

import (
	"context"

	"finview/internal/core"
)

// Reader loads the full ordered ledger of operations from an external
// tabular source. Implementations must preserve source order; every
// report receives its own snapshot of the returned slice.
type Reader interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}
