package logic

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/battlebrain/predict-api/internal/catalog"
	"github.com/battlebrain/predict-api/internal/classifier"
	"github.com/battlebrain/predict-api/internal/models"
)

// Prometheus metrics
var (
	predictionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "battlebrain_predictions_total",
		Help: "Battle predictions by outcome",
	}, []string{"outcome"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "battlebrain_prediction_duration_seconds",
		Help:    "Time spent resolving, featurising and scoring a battle",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

const probabilityDigits = 4

type predictionService struct {
	catalog CatalogReader
	model   classifier.Classifier
	chart   TypeChart
	logger  *zap.SugaredLogger
}

// NewPredictionService wires the pipeline. A nil chart means DefaultTypeChart.
func NewPredictionService(catalog CatalogReader, model classifier.Classifier, chart TypeChart, logger *zap.Logger) PredictionService {
	if chart == nil {
		chart = DefaultTypeChart()
	}
	return &predictionService{
		catalog: catalog,
		model:   model,
		chart:   chart,
		logger:  logger.Sugar(),
	}
}

func (s *predictionService) ModelName() string {
	return s.model.Name()
}

func (s *predictionService) PredictBattle(ctx context.Context, p1ID, p2ID int) (*models.BattleResult, error) {
	start := time.Now()
	defer func() { predictionDuration.Observe(time.Since(start).Seconds()) }()

	// Both ids must resolve before any feature is built
	first, err := s.lookup(ctx, p1ID)
	if err != nil {
		return nil, s.fail(err)
	}
	second, err := s.lookup(ctx, p2ID)
	if err != nil {
		return nil, s.fail(err)
	}

	features := BuildFeatures(first, second, s.chart)

	proba, err := s.model.PredictProba(ctx, features.Slice())
	if err != nil {
		return nil, s.fail(&Error{Kind: KindInference, Op: s.model.Name(), Err: err})
	}
	p, err := firstWinProbability(proba)
	if err != nil {
		return nil, s.fail(&Error{Kind: KindInference, Op: s.model.Name(), Err: err})
	}

	winner := models.WinnerSecond
	if p > 0.5 {
		winner = models.WinnerFirst
	}

	s.logger.Debugw("Battle predicted",
		"p1", p1ID,
		"p2", p2ID,
		"features", features,
		"p_first", p,
		"winner", winner.String(),
	)
	if winner == models.WinnerFirst {
		predictionsTotal.WithLabelValues("player_1").Inc()
	} else {
		predictionsTotal.WithLabelValues("player_2").Inc()
	}

	return &models.BattleResult{
		Winner:         winner,
		WinProbability: roundTo(p, probabilityDigits),
		P1Name:         first.Name,
		P2Name:         second.Name,
	}, nil
}

func (s *predictionService) lookup(ctx context.Context, id int) (models.Pokemon, error) {
	p, err := s.catalog.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if errors.Is(err, catalog.ErrNotFound) {
		return models.Pokemon{}, &Error{Kind: KindNotFound, Op: "lookup", Err: err}
	}
	// Catalog could not be loaded lazily
	return models.Pokemon{}, &Error{Kind: KindStartup, Op: "lookup", Err: err}
}

func (s *predictionService) fail(err error) error {
	if KindOf(err) == KindNotFound {
		predictionsTotal.WithLabelValues("not_found").Inc()
	} else {
		predictionsTotal.WithLabelValues("error").Inc()
	}
	return err
}

// firstWinProbability extracts P(first wins) from [P(second), P(first)]
func firstWinProbability(proba []float64) (float64, error) {
	if len(proba) != 2 {
		return 0, fmt.Errorf("expected 2 class probabilities, got %d", len(proba))
	}
	for _, v := range proba {
		if math.IsNaN(v) || v < 0 || v > 1 {
			return 0, fmt.Errorf("probability %v outside [0, 1]", v)
		}
	}
	return proba[1], nil
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
