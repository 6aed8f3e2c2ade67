package handlers

import (
	"context"

	"github.com/battlebrain/predict-api/internal/models"
)

// MockPredictionService
type MockPredictionService struct {
	PredictBattleFunc func(ctx context.Context, p1ID, p2ID int) (*models.BattleResult, error)
	calls             int
}

func (m *MockPredictionService) PredictBattle(ctx context.Context, p1ID, p2ID int) (*models.BattleResult, error) {
	m.calls++
	if m.PredictBattleFunc != nil {
		return m.PredictBattleFunc(ctx, p1ID, p2ID)
	}
	return &models.BattleResult{Winner: models.WinnerFirst, WinProbability: 0.5, P1Name: "A", P2Name: "B"}, nil
}

func (m *MockPredictionService) ModelName() string { return "mock" }

// MockCatalogStatus
type MockCatalogStatus struct {
	LoadedValue bool
	Entries     int
	VersionID   string
}

func (m *MockCatalogStatus) Loaded() bool    { return m.LoadedValue }
func (m *MockCatalogStatus) Len() int        { return m.Entries }
func (m *MockCatalogStatus) Version() string { return m.VersionID }
