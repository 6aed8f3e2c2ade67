package logic

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// TypeChart maps attacking type -> defending type -> damage multiplier.
// Pairs that are not listed are neutral (1.0).
type TypeChart map[string]map[string]float64

// DefaultTypeChart returns the built-in chart. It only covers the matchups the
// model was trained with and is deliberately partial; every other pair is
// neutral.
func DefaultTypeChart() TypeChart {
	return TypeChart{
		"Fire":     {"Grass": 2.0, "Water": 0.5, "Fire": 0.5},
		"Water":    {"Fire": 2.0, "Grass": 0.5, "Water": 0.5},
		"Grass":    {"Water": 2.0, "Fire": 0.5, "Grass": 0.5},
		"Electric": {"Water": 2.0, "Ground": 0.0},
		"Normal":   {"Ghost": 0.0},
	}
}

// Advantage returns the multiplier for attacker hitting defender.
func (c TypeChart) Advantage(attacker, defender string) float64 {
	if attacker == "" || defender == "" {
		return 1.0
	}
	if m, ok := c[attacker][defender]; ok {
		return m
	}
	return 1.0
}

// LoadTypeChart reads a replacement chart from YAML:
//
//	Fire:
//	  Grass: 2.0
//	  Water: 0.5
func LoadTypeChart(path string) (TypeChart, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read type chart: %w", err)
	}
	var chart TypeChart
	if err := yaml.Unmarshal(data, &chart); err != nil {
		return nil, fmt.Errorf("decode type chart: %w", err)
	}
	if len(chart) == 0 {
		return nil, fmt.Errorf("type chart %s is empty", path)
	}
	for attacker, row := range chart {
		if attacker == "" {
			return nil, fmt.Errorf("type chart has an empty attacking type")
		}
		for defender, m := range row {
			if defender == "" {
				return nil, fmt.Errorf("type chart row %q has an empty defending type", attacker)
			}
			if m < 0 {
				return nil, fmt.Errorf("type chart %s->%s: negative multiplier %v", attacker, defender, m)
			}
		}
	}
	return chart, nil
}
