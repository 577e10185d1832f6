package testkit

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"datalens/domain/dataset"
	"datalens/internal/errors"
)

// Kit generates deterministic synthetic datasets for tests and demos.
type Kit struct {
	rng *rand.Rand
}

// New creates a kit with a fixed seed so fixtures are reproducible.
func New() *Kit {
	return &Kit{rng: rand.New(rand.NewSource(42))}
}

var regions = []string{"north", "south", "east", "west", "central"}
var statuses = []string{"placed", "shipped", "delivered", "returned"}

// OrdersDataset builds a synthetic e-commerce dataset exercising every
// column class: numeric, textual, temporal, and an unsupported bool.
// Roughly 5% of amount and region values are null.
func (k *Kit) OrdersDataset(rows int) *dataset.Dataset {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	orderID := dataset.Column{Name: "order_id", Kind: dataset.KindInt,
		Floats: make([]float64, rows), Valid: make([]bool, rows)}
	amount := dataset.Column{Name: "amount", Kind: dataset.KindFloat,
		Floats: make([]float64, rows), Valid: make([]bool, rows)}
	region := dataset.Column{Name: "region", Kind: dataset.KindString,
		Strings: make([]string, rows), Valid: make([]bool, rows)}
	status := dataset.Column{Name: "status", Kind: dataset.KindString,
		Strings: make([]string, rows), Valid: make([]bool, rows)}
	createdAt := dataset.Column{Name: "created_at", Kind: dataset.KindTimestamp,
		Times: make([]time.Time, rows), Valid: make([]bool, rows)}
	flagged := dataset.Column{Name: "flagged", Kind: dataset.KindBool,
		Valid: make([]bool, rows)}

	for i := 0; i < rows; i++ {
		orderID.Floats[i] = float64(i + 1)
		orderID.Valid[i] = true

		if k.rng.Float64() >= 0.05 {
			amount.Floats[i] = 10 + k.rng.Float64()*490
			amount.Valid[i] = true
		}
		if k.rng.Float64() >= 0.05 {
			region.Strings[i] = regions[k.rng.Intn(len(regions))]
			region.Valid[i] = true
		}
		status.Strings[i] = statuses[k.rng.Intn(len(statuses))]
		status.Valid[i] = true

		createdAt.Times[i] = start.Add(time.Duration(k.rng.Intn(90*24)) * time.Hour)
		createdAt.Valid[i] = true

		flagged.Valid[i] = true
	}

	return &dataset.Dataset{
		Name:    "testkit/orders",
		Split:   "train",
		Rows:    rows,
		Columns: []dataset.Column{orderID, amount, region, status, createdAt, flagged},
	}
}

// NumericColumn builds a numeric column from values; NaN marks a null.
func NumericColumn(name string, values []float64, nulls []int) dataset.Column {
	col := dataset.Column{
		Name:   name,
		Kind:   dataset.KindFloat,
		Floats: make([]float64, len(values)),
		Valid:  make([]bool, len(values)),
	}
	copy(col.Floats, values)
	for i := range col.Valid {
		col.Valid[i] = true
	}
	for _, i := range nulls {
		col.Valid[i] = false
		col.Floats[i] = 0
	}
	return col
}

// StringColumn builds a textual column; empty positions in nulls are null.
func StringColumn(name string, values []string, nulls []int) dataset.Column {
	col := dataset.Column{
		Name:    name,
		Kind:    dataset.KindString,
		Strings: make([]string, len(values)),
		Valid:   make([]bool, len(values)),
	}
	copy(col.Strings, values)
	for i := range col.Valid {
		col.Valid[i] = true
	}
	for _, i := range nulls {
		col.Valid[i] = false
		col.Strings[i] = ""
	}
	return col
}

// Loader is an in-memory ports.DatasetLoader and ports.CardFetcher for
// handler tests: it serves a fixed dataset and records load calls.
type Loader struct {
	Dataset   *dataset.Dataset
	CardMD    string
	LoadCalls int
}

// Load returns the fixture dataset, or a validation error for names the
// fixture does not know.
func (l *Loader) Load(ctx context.Context, name, split string) (*dataset.Dataset, error) {
	l.LoadCalls++
	if l.Dataset == nil || name != l.Dataset.Name {
		return nil, errors.ValidationError(fmt.Sprintf("dataset %q not found", name))
	}
	return l.Dataset, nil
}

// Card returns the fixture card markdown.
func (l *Loader) Card(ctx context.Context, name string) (string, error) {
	if l.CardMD == "" {
		return "", errors.NotFound("dataset card")
	}
	return l.CardMD, nil
}
