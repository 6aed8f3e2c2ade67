package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

const leaf = -1

// tree mirrors the parallel arrays of a fitted scikit-learn decision tree
type tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

// Forest is a random forest classifier exported from scikit-learn
type Forest struct {
	FeatureNames []string `json:"feature_names"`
	NClasses     int      `json:"n_classes"`
	Trees        []tree   `json:"trees"`
}

// LoadForest reads and validates a forest artifact.
func LoadForest(path string) (*Forest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forest artifact: %w", err)
	}
	var f Forest
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode forest artifact: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid forest artifact %s: %w", path, err)
	}
	return &f, nil
}

func (f *Forest) validate() error {
	if err := checkFeatureNames(f.FeatureNames); err != nil {
		return err
	}
	if f.NClasses == 0 {
		f.NClasses = 2
	}
	if f.NClasses != 2 {
		return fmt.Errorf("n_classes = %d, want 2", f.NClasses)
	}
	if len(f.Trees) == 0 {
		return fmt.Errorf("no trees")
	}
	for i, t := range f.Trees {
		if err := t.validate(len(f.FeatureNames), f.NClasses); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

func (t *tree) validate(nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("empty tree")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("node arrays have different lengths")
	}
	for node := 0; node < n; node++ {
		left, right := t.ChildrenLeft[node], t.ChildrenRight[node]
		if left == leaf {
			if len(t.Value[node]) != nClasses {
				return fmt.Errorf("leaf %d has %d class values", node, len(t.Value[node]))
			}
			var total float64
			for _, v := range t.Value[node] {
				if v < 0 {
					return fmt.Errorf("leaf %d has a negative class value", node)
				}
				total += v
			}
			if total == 0 {
				return fmt.Errorf("leaf %d has no samples", node)
			}
			continue
		}
		// Children always sit after their parent, which also rules out cycles
		if left <= node || left >= n || right <= node || right >= n {
			return fmt.Errorf("node %d has out of range children %d/%d", node, left, right)
		}
		if f := t.Feature[node]; f < 0 || f >= nFeatures {
			return fmt.Errorf("node %d splits on unknown feature %d", node, f)
		}
	}
	return nil
}

func (f *Forest) Name() string { return "random_forest" }

// PredictProba averages the normalised leaf distributions of every tree.
func (f *Forest) PredictProba(_ context.Context, x []float64) ([]float64, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	proba := make([]float64, f.NClasses)
	for i := range f.Trees {
		counts := f.Trees[i].leafValue(x)
		var total float64
		for _, c := range counts {
			total += c
		}
		for k, c := range counts {
			proba[k] += c / total
		}
	}
	for k := range proba {
		proba[k] /= float64(len(f.Trees))
	}
	return proba, nil
}

func (t *tree) leafValue(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leaf {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}
