package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/yeremiapane/smart-pos/engine"
	"github.com/yeremiapane/smart-pos/models"
	"github.com/yeremiapane/smart-pos/utils"
)

// Boot returns the snapshot a terminal starts from. A missing or corrupt
// stored snapshot falls back to the seed. Settings are always reset to the
// defaults. Only a failing store is reported as an error.
//
// A snapshot that decodes but breaks models.Snapshot.Validate counts as
// corrupt.
func Boot(ctx context.Context, store SnapshotStore) (models.Snapshot, error) {
	stored, err := store.Load(ctx)
	if err == nil && stored != nil {
		if verr := stored.Validate(); verr != nil {
			err = fmt.Errorf("%w: %v", ErrCorruptSnapshot, verr)
		}
	}
	switch {
	case errors.Is(err, ErrCorruptSnapshot):
		utils.ErrorLogger.Warnf("Discarding stored snapshot: %v", err)
		return engine.SeedSnapshot(), nil
	case err != nil:
		return models.Snapshot{}, err
	case stored == nil:
		utils.InfoLogger.Info("No stored snapshot, starting from seed data")
		return engine.SeedSnapshot(), nil
	}

	snap := *stored
	snap.Settings = engine.DefaultSettings()
	if snap.Cart == nil {
		snap.Cart = []models.OrderLine{}
	}
	if snap.Orders == nil {
		snap.Orders = []models.Order{}
	}
	utils.InfoLogger.Infof("Restored snapshot: %d products, %d orders", len(snap.Products), len(snap.Orders))
	return snap, nil
}
