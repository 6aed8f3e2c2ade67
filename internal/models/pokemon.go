package models

// Stats holds the six base stats of a Pokemon
type Stats struct {
	HP      float64 `json:"hp"`
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
	SpAtk   float64 `json:"sp_atk"`
	SpDef   float64 `json:"sp_def"`
	Speed   float64 `json:"speed"`
}

// Pokemon is one row of the Pokedex catalog
type Pokemon struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	PrimaryType   string `json:"type_1"`
	SecondaryType string `json:"type_2,omitempty"`
	Stats         Stats  `json:"stats"`
	Generation    int    `json:"generation"`
	Legendary     bool   `json:"legendary"`
}
