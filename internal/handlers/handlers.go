package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/battlebrain/predict-api/internal/logic"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// CatalogStatus reports the state of the Pokedex for readiness checks
type CatalogStatus interface {
	Loaded() bool
	Len() int
	Version() string
}

type Config struct {
	Catalog    CatalogStatus
	Prediction logic.PredictionService
	Logger     *zap.Logger
}

type Handler struct {
	catalog    CatalogStatus
	prediction logic.PredictionService
	logger     *zap.SugaredLogger
	validator  *validator.Validate
}

func New(cfg Config) *Handler {
	return &Handler{
		catalog:    cfg.Catalog,
		prediction: cfg.Prediction,
		logger:     cfg.Logger.Sugar(),
		validator:  newValidator(),
	}
}

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
