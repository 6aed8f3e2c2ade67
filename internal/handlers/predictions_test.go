package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/battlebrain/predict-api/internal/catalog"
	"github.com/battlebrain/predict-api/internal/classifier"
	"github.com/battlebrain/predict-api/internal/logic"
	"github.com/battlebrain/predict-api/internal/models"
)

func newTestHandler(svc *MockPredictionService) *Handler {
	return New(Config{
		Catalog:    &MockCatalogStatus{LoadedValue: true, Entries: 2, VersionID: "v1"},
		Prediction: svc,
		Logger:     zap.NewNop(),
	})
}

func TestPredictBattle_TableDriven(t *testing.T) {
	notFound := func(ctx context.Context, p1, p2 int) (*models.BattleResult, error) {
		return nil, &logic.Error{Kind: logic.KindNotFound, Op: "lookup", Err: fmt.Errorf("%w: %d", catalog.ErrNotFound, p2)}
	}
	inferenceFailure := func(ctx context.Context, p1, p2 int) (*models.BattleResult, error) {
		return nil, &logic.Error{Kind: logic.KindInference, Op: "random_forest", Err: errors.New("expected 7 features, got 6")}
	}

	tests := []struct {
		name           string
		body           string
		mockPredict    func(ctx context.Context, p1, p2 int) (*models.BattleResult, error)
		expectedStatus int
		expectedDetail string
		expectCall     bool
	}{
		{
			name:           "Valid Request",
			body:           `{"pokemon_1_id": 1, "pokemon_2_id": 2}`,
			expectedStatus: http.StatusOK,
			expectCall:     true,
		},
		{
			name:           "Quoted IDs",
			body:           `{"pokemon_1_id": "1", "pokemon_2_id": "2"}`,
			expectedStatus: http.StatusOK,
			expectCall:     true,
		},
		{
			name:           "Unknown ID",
			body:           `{"pokemon_1_id": 1, "pokemon_2_id": 9999}`,
			mockPredict:    notFound,
			expectedStatus: http.StatusNotFound,
			expectedDetail: NotFoundDetail,
			expectCall:     true,
		},
		{
			name:           "Inference Failure",
			body:           `{"pokemon_1_id": 1, "pokemon_2_id": 2}`,
			mockPredict:    inferenceFailure,
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "random_forest: expected 7 features, got 6",
			expectCall:     true,
		},
		{
			name:           "Untyped Error",
			body:           `{"pokemon_1_id": 1, "pokemon_2_id": 2}`,
			mockPredict:    func(ctx context.Context, p1, p2 int) (*models.BattleResult, error) { return nil, errors.New("boom") },
			expectedStatus: http.StatusInternalServerError,
			expectedDetail: "boom",
			expectCall:     true,
		},
		{
			name:           "Invalid JSON",
			body:           `{"pokemon_1_id": 1,`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Missing Field",
			body:           `{"pokemon_1_id": 1}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "pokemon_2_id: field required",
		},
		{
			name:           "Null Field",
			body:           `{"pokemon_1_id": null, "pokemon_2_id": 2}`,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedDetail: "pokemon_1_id: field required",
		},
		{
			name:           "Negative ID",
			body:           `{"pokemon_1_id": -4, "pokemon_2_id": 2}`,
			mockPredict:    notFound,
			expectedStatus: http.StatusNotFound,
			expectedDetail: NotFoundDetail,
			expectCall:     true,
		},
		{
			name:           "Zero ID",
			body:           `{"pokemon_1_id": 1, "pokemon_2_id": 0}`,
			mockPredict:    notFound,
			expectedStatus: http.StatusNotFound,
			expectedDetail: NotFoundDetail,
			expectCall:     true,
		},
		{
			name:           "Non Integer ID",
			body:           `{"pokemon_1_id": "pikachu", "pokemon_2_id": 2}`,
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "Empty Body",
			body:           ``,
			expectedStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockPredictionService{PredictBattleFunc: tt.mockPredict}
			h := newTestHandler(svc)

			req := httptest.NewRequest("POST", "/predict", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.PredictBattle(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedDetail != "" {
				var body map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["detail"] != tt.expectedDetail {
					t.Errorf("detail = %q, want %q", body["detail"], tt.expectedDetail)
				}
			}
			if called := svc.calls > 0; called != tt.expectCall {
				t.Errorf("service called = %v, want %v", called, tt.expectCall)
			}
		})
	}
}

func TestPredictBattle_ResponseShape(t *testing.T) {
	svc := &MockPredictionService{
		PredictBattleFunc: func(ctx context.Context, p1, p2 int) (*models.BattleResult, error) {
			if p1 != 1 || p2 != 2 {
				return nil, errors.New("ids not forwarded")
			}
			return &models.BattleResult{Winner: models.WinnerSecond, WinProbability: 0.3125, P1Name: "Alpha", P2Name: "Beta"}, nil
		},
	}
	h := newTestHandler(svc)

	req := httptest.NewRequest("POST", "/predict", strings.NewReader(`{"pokemon_1_id": 1, "pokemon_2_id": 2}`))
	w := httptest.NewRecorder()
	h.PredictBattle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d (%s)", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]interface{}{
		"winner":          "Player 2",
		"win_probability": 0.3125,
		"p1_name":         "Alpha",
		"p2_name":         "Beta",
	}
	if len(body) != len(want) {
		t.Errorf("body has %d keys, want %d: %v", len(body), len(want), body)
	}
	for k, v := range want {
		if body[k] != v {
			t.Errorf("%s = %v, want %v", k, body[k], v)
		}
	}
}

func TestPredictBattle_BodyTooLarge(t *testing.T) {
	svc := &MockPredictionService{}
	h := newTestHandler(svc)

	body := `{"pokemon_1_id": 1, "pokemon_2_id": 2, "pad": "` + strings.Repeat("x", MaxBodySize) + `"}`
	req := httptest.NewRequest("POST", "/predict", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.PredictBattle(w, req)

	if w.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, want 413", w.Code)
	}
	if svc.calls != 0 {
		t.Error("service should not be called")
	}
}

func TestPredictBattle_CatalogPipeline(t *testing.T) {
	store := catalog.NewStore(catalog.NewCSVSource("../catalog/testdata/pokedex.csv"), zap.NewNop())
	model, err := classifier.NewLogistic(0, map[string]float64{"Speed_Diff": 0.1})
	if err != nil {
		t.Fatalf("NewLogistic: %v", err)
	}
	h := New(Config{
		Catalog:    store,
		Prediction: logic.NewPredictionService(store, model, nil, zap.NewNop()),
		Logger:     zap.NewNop(),
	})

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedDetail string
	}{
		{"Known IDs", `{"pokemon_1_id": 1, "pokemon_2_id": 2}`, http.StatusOK, ""},
		{"Unknown ID", `{"pokemon_1_id": 1, "pokemon_2_id": 9999}`, http.StatusNotFound, NotFoundDetail},
		{"Zero ID", `{"pokemon_1_id": 1, "pokemon_2_id": 0}`, http.StatusNotFound, NotFoundDetail},
		{"Negative ID", `{"pokemon_1_id": -4, "pokemon_2_id": 2}`, http.StatusNotFound, NotFoundDetail},
		{"Quoted Zero ID", `{"pokemon_1_id": "0", "pokemon_2_id": 2}`, http.StatusNotFound, NotFoundDetail},
		{"Missing ID", `{"pokemon_2_id": 2}`, http.StatusUnprocessableEntity, "pokemon_1_id: field required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/predict", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			h.PredictBattle(w, req)

			if w.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if tt.expectedDetail == "" {
				return
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if body["detail"] != tt.expectedDetail {
				t.Errorf("detail = %q, want %q", body["detail"], tt.expectedDetail)
			}
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	h := newTestHandler(&MockPredictionService{})

	type sample struct {
		Count int     `json:"count" validate:"required"`
		Ref   *string `json:"ref" validate:"required"`
	}

	err := h.validateStruct(&sample{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	want := "count: must not be 0; ref: field required"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}
