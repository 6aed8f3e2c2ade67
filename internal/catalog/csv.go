package catalog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/battlebrain/predict-api/internal/models"
)

// Pokedex CSV column headers
const (
	colID         = "#"
	colName       = "Name"
	colType1      = "Type 1"
	colType2      = "Type 2"
	colHP         = "HP"
	colAttack     = "Attack"
	colDefense    = "Defense"
	colSpAtk      = "Sp. Atk"
	colSpDef      = "Sp. Def"
	colSpeed      = "Speed"
	colGeneration = "Generation"
	colLegendary  = "Legendary"
)

var requiredColumns = []string{
	colID, colName, colType1, colType2,
	colHP, colAttack, colDefense, colSpAtk, colSpDef, colSpeed,
}

// CSVSource loads the catalog from a Pokedex CSV file
type CSVSource struct {
	Path string
}

func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

func (s *CSVSource) Name() string { return "csv" }

func (s *CSVSource) Load(ctx context.Context) ([]models.Pokemon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open pokedex: %w", err)
	}
	defer f.Close()

	records, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return records, nil
}

// ParseCSV decodes a Pokedex CSV. Columns are matched by header name, so
// column order and extra columns do not matter.
func ParseCSV(r io.Reader) ([]models.Pokemon, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var out []models.Pokemon
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		p, err := parseRow(row, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, p)
	}

	if err := validateRecords(out); err != nil {
		return nil, err
	}
	return out, nil
}

type rowParser struct {
	row   []string
	index map[string]int
	err   error
}

func (p *rowParser) str(col string) string {
	i, ok := p.index[col]
	if !ok || i >= len(p.row) {
		return ""
	}
	return strings.TrimSpace(p.row[i])
}

func (p *rowParser) parseInt(col string) int {
	if p.err != nil {
		return 0
	}
	s := p.str(col)
	if s == "" {
		return 0
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		p.err = fmt.Errorf("column %q: invalid int %q", col, s)
		return 0
	}
	return i
}

func (p *rowParser) parseFloat(col string) float64 {
	if p.err != nil {
		return 0
	}
	s := p.str(col)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		p.err = fmt.Errorf("column %q: invalid number %q", col, s)
		return 0
	}
	return f
}

func (p *rowParser) parseBool(col string) bool {
	if p.err != nil {
		return false
	}
	s := p.str(col)
	if s == "" {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		p.err = fmt.Errorf("column %q: invalid bool %q", col, s)
		return false
	}
	return b
}

func parseRow(row []string, index map[string]int) (models.Pokemon, error) {
	p := &rowParser{row: row, index: index}

	pokemon := models.Pokemon{
		ID:            p.parseInt(colID),
		Name:          p.str(colName),
		PrimaryType:   p.str(colType1),
		SecondaryType: p.str(colType2),
		Stats: models.Stats{
			HP:      p.parseFloat(colHP),
			Attack:  p.parseFloat(colAttack),
			Defense: p.parseFloat(colDefense),
			SpAtk:   p.parseFloat(colSpAtk),
			SpDef:   p.parseFloat(colSpDef),
			Speed:   p.parseFloat(colSpeed),
		},
		Generation: p.parseInt(colGeneration),
		Legendary:  p.parseBool(colLegendary),
	}
	if p.err != nil {
		return models.Pokemon{}, p.err
	}
	return pokemon, nil
}
