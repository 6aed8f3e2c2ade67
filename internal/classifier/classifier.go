// Package classifier loads pre-trained battle models and scores feature
// vectors with them. Every model returns a two-class distribution
// [P(second wins), P(first wins)] and is safe for concurrent use.
package classifier

import (
	"context"
	"fmt"
	"time"

	"github.com/battlebrain/predict-api/internal/models"
)

// Classifier is the only capability the prediction pipeline needs from a model
type Classifier interface {
	Name() string
	PredictProba(ctx context.Context, x []float64) ([]float64, error)
}

// Supported artifact kinds
const (
	KindForest   = "forest"
	KindLogistic = "logistic"
	KindRemote   = "remote"
)

// Options selects and locates a model artifact
type Options struct {
	Kind     string
	Path     string
	Endpoint string
	Timeout  time.Duration
}

// Load builds the classifier described by opts.
func Load(opts Options) (Classifier, error) {
	var (
		c   Classifier
		err error
	)
	switch opts.Kind {
	case KindForest, "":
		c, err = LoadForest(opts.Path)
	case KindLogistic:
		c, err = LoadLogistic(opts.Path)
	case KindRemote:
		c, err = NewRemote(opts.Endpoint, opts.Timeout)
	default:
		return nil, fmt.Errorf("unknown model kind %q", opts.Kind)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func checkInput(x []float64) error {
	if len(x) != models.FeatureCount {
		return fmt.Errorf("expected %d features, got %d", models.FeatureCount, len(x))
	}
	return nil
}

// checkFeatureNames enforces the trained column order
func checkFeatureNames(names []string) error {
	if len(names) != models.FeatureCount {
		return fmt.Errorf("artifact declares %d features, want %d", len(names), models.FeatureCount)
	}
	for i, name := range names {
		if name != models.FeatureNames[i] {
			return fmt.Errorf("feature %d is %q, want %q", i, name, models.FeatureNames[i])
		}
	}
	return nil
}
