// Package catalog holds the Pokedex: an immutable, id-keyed snapshot of every
// Pokemon the prediction service can battle, loaded from a pluggable Source.
package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/battlebrain/predict-api/internal/models"
)

// ErrNotFound is returned by Store.Get when an id is absent from the catalog
var ErrNotFound = errors.New("pokemon id not found in pokedex")

// Source reads every catalog record from a backing store
type Source interface {
	Name() string
	Load(ctx context.Context) ([]models.Pokemon, error)
}

// validateRecords rejects records that cannot be keyed
func validateRecords(records []models.Pokemon) error {
	if len(records) == 0 {
		return errors.New("catalog source returned no records")
	}
	seen := make(map[int]struct{}, len(records))
	for i, p := range records {
		if p.ID <= 0 {
			return fmt.Errorf("record %d: id must be positive, got %d", i, p.ID)
		}
		if _, dup := seen[p.ID]; dup {
			return fmt.Errorf("record %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
