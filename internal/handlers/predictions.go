package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/battlebrain/predict-api/internal/logic"
	"github.com/battlebrain/predict-api/internal/models"
)

// NotFoundDetail is the 404 body for unknown Pokemon ids
const NotFoundDetail = "Pokemon ID not found in Pokedex."

// PredictBattle predicts the winner of a battle between two Pokemon
// @Summary Predict Battle
// @Tags Prediction
// @Accept json
// @Produce json
// @Param body body models.BattleRequest true "Pokemon ids"
// @Success 200 {object} models.BattleResult
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 422 {object} map[string]string "Invalid Body"
// @Failure 500 {object} map[string]string "Prediction Error"
// @Router /predict [post]
func (h *Handler) PredictBattle(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	defer r.Body.Close()

	var req models.BattleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return
		}
		h.errorResponse(w, http.StatusUnprocessableEntity, "Invalid request body: "+err.Error())
		return
	}
	if err := h.validateStruct(&req); err != nil {
		h.errorResponse(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	p1, p2 := req.Pokemon1ID.Int(), req.Pokemon2ID.Int()
	h.logger.Infow("Received battle request", "p1", p1, "p2", p2)

	result, err := h.prediction.PredictBattle(r.Context(), p1, p2)
	if err != nil {
		switch logic.KindOf(err) {
		case logic.KindNotFound:
			h.logger.Warnw("Pokemon ID not found", "p1", p1, "p2", p2, "error", err)
			h.errorResponse(w, http.StatusNotFound, NotFoundDetail)
		default:
			h.logger.Errorw("Prediction error", "p1", p1, "p2", p2, "kind", logic.KindOf(err).String(), "error", err)
			h.errorResponse(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.jsonResponse(w, http.StatusOK, result)
}
