package logic

import "github.com/battlebrain/predict-api/internal/models"

// BuildFeatures computes the classifier input for first vs second.
// Every differential is first minus second, so swapping the arguments negates
// the whole vector.
func BuildFeatures(first, second models.Pokemon, chart TypeChart) models.FeatureVector {
	var v models.FeatureVector
	v[models.SpeedDiff] = first.Stats.Speed - second.Stats.Speed
	v[models.AttackDiff] = first.Stats.Attack - second.Stats.Attack
	v[models.DefenseDiff] = first.Stats.Defense - second.Stats.Defense
	v[models.SpAtkDiff] = first.Stats.SpAtk - second.Stats.SpAtk
	v[models.SpDefDiff] = first.Stats.SpDef - second.Stats.SpDef
	v[models.HPDiff] = first.Stats.HP - second.Stats.HP

	// Only primary types take part in the advantage score
	v[models.TypeWinScore] = chart.Advantage(first.PrimaryType, second.PrimaryType) -
		chart.Advantage(second.PrimaryType, first.PrimaryType)
	return v
}
