package models

import (
	"encoding/json"
	"fmt"
)

// FeatureNames is the column order the battle classifier was trained on.
// Artifacts are rejected at load time unless they declare exactly this order.
var FeatureNames = [FeatureCount]string{
	"Speed_Diff",
	"Attack_Diff",
	"Defense_Diff",
	"Sp. Atk_Diff",
	"Sp. Def_Diff",
	"HP_Diff",
	"Type_Win_Score",
}

// FeatureCount is the width of a FeatureVector
const FeatureCount = 7

// Positions inside a FeatureVector
const (
	SpeedDiff = iota
	AttackDiff
	DefenseDiff
	SpAtkDiff
	SpDefDiff
	HPDiff
	TypeWinScore
)

// FeatureVector is the model input for a single battle
type FeatureVector [FeatureCount]float64

// Slice returns a copy of the vector as a slice.
func (v FeatureVector) Slice() []float64 {
	out := make([]float64, FeatureCount)
	copy(out, v[:])
	return out
}

// BattleRequest is the body of POST /predict. The ids are pointers so a
// missing or null field can be told apart from an explicit 0; any integer
// that is present goes to the catalog lookup.
type BattleRequest struct {
	Pokemon1ID *FlexInt `json:"pokemon_1_id" validate:"required"`
	Pokemon2ID *FlexInt `json:"pokemon_2_id" validate:"required"`
}

// Winner identifies which side of a battle is predicted to win
type Winner int

const (
	WinnerSecond Winner = iota
	WinnerFirst
)

func (w Winner) String() string {
	if w == WinnerFirst {
		return "Player 1"
	}
	return "Player 2"
}

func (w Winner) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.String())
}

func (w *Winner) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "Player 1":
		*w = WinnerFirst
	case "Player 2":
		*w = WinnerSecond
	default:
		return fmt.Errorf("unknown winner %q", s)
	}
	return nil
}

// BattleResult is the response of POST /predict
type BattleResult struct {
	Winner         Winner  `json:"winner"`
	WinProbability float64 `json:"win_probability"`
	P1Name         string  `json:"p1_name"`
	P2Name         string  `json:"p2_name"`
}
