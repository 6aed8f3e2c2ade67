package logic

import (
	"context"
	"fmt"
	"sync"

	"github.com/battlebrain/predict-api/internal/catalog"
	"github.com/battlebrain/predict-api/internal/models"
)

// MockCatalog serves a fixed set of records
type MockCatalog struct {
	Records map[int]models.Pokemon
	GetFunc func(ctx context.Context, id int) (models.Pokemon, error)
}

func (m *MockCatalog) Get(ctx context.Context, id int) (models.Pokemon, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	p, ok := m.Records[id]
	if !ok {
		return models.Pokemon{}, fmt.Errorf("%w: %d", catalog.ErrNotFound, id)
	}
	return p, nil
}

// MockClassifier records every vector it is asked to score
type MockClassifier struct {
	PredictProbaFunc func(ctx context.Context, x []float64) ([]float64, error)

	mu    sync.Mutex
	calls [][]float64
}

func (m *MockClassifier) Name() string { return "mock" }

func (m *MockClassifier) PredictProba(ctx context.Context, x []float64) ([]float64, error) {
	m.mu.Lock()
	m.calls = append(m.calls, append([]float64(nil), x...))
	m.mu.Unlock()
	if m.PredictProbaFunc != nil {
		return m.PredictProbaFunc(ctx, x)
	}
	return []float64{0.5, 0.5}, nil
}

func (m *MockClassifier) Calls() [][]float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func fixedProba(pFirst float64) func(ctx context.Context, x []float64) ([]float64, error) {
	return func(ctx context.Context, x []float64) ([]float64, error) {
		return []float64{1 - pFirst, pFirst}, nil
	}
}

func testCatalog() *MockCatalog {
	return &MockCatalog{Records: map[int]models.Pokemon{
		1: {ID: 1, Name: "Alpha", PrimaryType: "Water", Stats: models.Stats{HP: 60, Attack: 70, Defense: 80, SpAtk: 90, SpDef: 100, Speed: 100}},
		2: {ID: 2, Name: "Beta", PrimaryType: "Water", Stats: models.Stats{HP: 65, Attack: 60, Defense: 85, SpAtk: 70, SpDef: 75, Speed: 50}},
		3: {ID: 3, Name: "Charmander", PrimaryType: "Fire", Stats: models.Stats{HP: 39, Attack: 52, Defense: 43, SpAtk: 60, SpDef: 50, Speed: 65}},
		4: {ID: 4, Name: "Bulbasaur", PrimaryType: "Grass", SecondaryType: "Poison", Stats: models.Stats{HP: 45, Attack: 49, Defense: 49, SpAtk: 65, SpDef: 65, Speed: 45}},
		5: {ID: 5, Name: "Pikachu", PrimaryType: "Electric", Stats: models.Stats{HP: 35, Attack: 55, Defense: 40, SpAtk: 50, SpDef: 50, Speed: 90}},
		6: {ID: 6, Name: "Squirtle", PrimaryType: "Water", Stats: models.Stats{HP: 44, Attack: 48, Defense: 65, SpAtk: 50, SpDef: 64, Speed: 43}},
		7: {ID: 7, Name: "Mystery", Stats: models.Stats{HP: 50, Attack: 50, Defense: 50, SpAtk: 50, SpDef: 50, Speed: 50}},
	}}
}
