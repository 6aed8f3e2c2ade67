package logic

import (
	"context"

	"github.com/battlebrain/predict-api/internal/models"
)

// CatalogReader resolves Pokemon ids; *catalog.Store satisfies it
type CatalogReader interface {
	Get(ctx context.Context, id int) (models.Pokemon, error)
}

// PredictionService predicts the outcome of a one-on-one battle
type PredictionService interface {
	PredictBattle(ctx context.Context, p1ID, p2ID int) (*models.BattleResult, error)
	ModelName() string
}
