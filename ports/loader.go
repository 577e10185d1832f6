package ports

import (
	"context"

	"datalens/domain/dataset"
)

// DatasetLoader fetches a named dataset split and converts it to the
// in-memory tabular structure. Implementations distinguish user-correctable
// failures (unknown dataset or split) from other load failures via the
// error codes in internal/errors.
type DatasetLoader interface {
	Load(ctx context.Context, name, split string) (*dataset.Dataset, error)
}

// CardFetcher retrieves a dataset's card (README markdown) for display.
// A failed fetch is non-fatal; callers treat the card as optional.
type CardFetcher interface {
	Card(ctx context.Context, name string) (string, error)
}
