package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/battlebrain/predict-api/internal/models"
)

// Logistic is a logistic regression over the battle features:
// p(first) = 1 / (1 + exp(-(bias + sum(w_i * x_i))))
type Logistic struct {
	Bias    float64
	weights [models.FeatureCount]float64
}

// LoadLogistic reads {"bias": b, "weights": {"Speed_Diff": w, ...}}.
// Features without a weight contribute nothing; unknown names are rejected.
func LoadLogistic(path string) (*Logistic, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read logistic artifact: %w", err)
	}
	var raw struct {
		Bias    float64            `json:"bias"`
		Weights map[string]float64 `json:"weights"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode logistic artifact: %w", err)
	}
	return NewLogistic(raw.Bias, raw.Weights)
}

func NewLogistic(bias float64, weights map[string]float64) (*Logistic, error) {
	m := &Logistic{Bias: bias}
	position := make(map[string]int, models.FeatureCount)
	for i, name := range models.FeatureNames {
		position[name] = i
	}
	for name, w := range weights {
		i, ok := position[name]
		if !ok {
			return nil, fmt.Errorf("unknown feature %q in weights", name)
		}
		m.weights[i] = w
	}
	return m, nil
}

func (m *Logistic) Name() string { return "logistic" }

func (m *Logistic) PredictProba(_ context.Context, x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	z := m.Bias
	for i, v := range x {
		z += m.weights[i] * v
	}
	p := 1 / (1 + math.Exp(-z))
	return []float64{1 - p, p}, nil
}
