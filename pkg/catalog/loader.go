package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Columns recognised in a catalog sheet. Aliases are matched after normalisation.
var columnAliases = map[string][]string{
	"name":       {"name", "crop", "crop_name"},
	"ph_min":     {"ph_min", "idealph_min", "min_ph"},
	"ph_max":     {"ph_max", "idealph_max", "max_ph"},
	"temp_min":   {"temp_min", "temperature_min", "min_temp"},
	"temp_max":   {"temp_max", "temperature_max", "max_temp"},
	"rain_min":   {"rain_min", "rainfall_min", "min_rainfall"},
	"rain_max":   {"rain_max", "rainfall_max", "max_rainfall"},
	"nitrogen":   {"nitrogen", "n", "n_need"},
	"phosphorus": {"phosphorus", "p", "p_need"},
	"potassium":  {"potassium", "k", "k_need"},
	"cost":       {"cost_per_acre", "cost", "costperacre"},
	"yield":      {"yield_per_acre", "yield", "yieldperacre"},
	"price":      {"unit_price", "price", "unitprice"},
	"regions":    {"regions", "region"},
	"tips":       {"tips", "notes"},
}

var requiredColumns = []string{"name", "ph_min", "ph_max", "cost", "yield", "price"}

// Header is the canonical column order written by WriteXLSX and expected by templates.
var Header = []string{
	"name", "ph_min", "ph_max", "temp_min", "temp_max", "rain_min", "rain_max",
	"nitrogen", "phosphorus", "potassium", "cost_per_acre", "yield_per_acre", "unit_price",
	"regions", "tips",
}

// LoadFile reads a crop catalog from a .csv or .xlsx file.
func LoadFile(path string) ([]CropProfile, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return loadCSV(path)
	case ".xlsx":
		return loadXLSX(path)
	}
	return nil, fmt.Errorf("unsupported catalog format: %s", path)
}

func loadCSV(path string) ([]CropProfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	var rows [][]string
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return parseRows(rows)
}

func loadXLSX(path string) ([]CropProfile, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer x.Close()

	sheets := x.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := x.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return parseRows(rows)
}

func norm(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\uFEFF")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

func parseRows(rows [][]string) ([]CropProfile, error) {
	if len(rows) == 0 {
		return nil, errors.New("catalog is empty")
	}
	hmap := map[string]int{}
	for i, h := range rows[0] {
		hmap[norm(h)] = i
	}
	col := map[string]int{}
	for key, aliases := range columnAliases {
		col[key] = -1
		for _, a := range aliases {
			if idx, ok := hmap[norm(a)]; ok {
				col[key] = idx
				break
			}
		}
	}
	var missing []string
	for _, k := range requiredColumns {
		if col[k] == -1 {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("catalog missing columns %v (found %v)", missing, rows[0])
	}

	var out []CropProfile
	for i, rec := range rows[1:] {
		get := func(key string) string {
			idx := col[key]
			if idx < 0 || idx >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[idx])
		}
		num := func(key string) (float64, error) {
			v := get(key)
			if v == "" {
				return 0, nil
			}
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return 0, fmt.Errorf("row %d: %s: %w", i+2, key, err)
			}
			if math.IsNaN(f) || math.IsInf(f, 0) {
				return 0, fmt.Errorf("row %d: %s: %q is not a finite number", i+2, key, v)
			}
			return f, nil
		}
		// rng reads a min/max pair. An optional pair left blank is the zero
		// Range, which the scorer treats as unconstrained.
		rng := func(lo, hi string, required bool) (Range, error) {
			if get(lo) == "" && get(hi) == "" && !required {
				return Range{}, nil
			}
			if get(lo) == "" || get(hi) == "" {
				return Range{}, fmt.Errorf("row %d: %s and %s must both be set", i+2, lo, hi)
			}
			var r Range
			var err error
			if r.Min, err = num(lo); err != nil {
				return Range{}, err
			}
			if r.Max, err = num(hi); err != nil {
				return Range{}, err
			}
			if r.Min > r.Max {
				return Range{}, fmt.Errorf("row %d: %s %v is above %s %v", i+2, lo, r.Min, hi, r.Max)
			}
			return r, nil
		}

		name := get("name")
		if name == "" {
			continue
		}
		ph, err := rng("ph_min", "ph_max", true)
		if err != nil {
			return nil, err
		}
		temp, err := rng("temp_min", "temp_max", false)
		if err != nil {
			return nil, err
		}
		rain, err := rng("rain_min", "rain_max", false)
		if err != nil {
			return nil, err
		}
		var money [3]float64
		for j, key := range []string{"cost", "yield", "price"} {
			v, err := num(key)
			if err != nil {
				return nil, err
			}
			if v < 0 {
				return nil, fmt.Errorf("row %d: %s must not be negative", i+2, key)
			}
			money[j] = v
		}
		out = append(out, CropProfile{
			Name:             name,
			IdealPh:          ph,
			IdealTemperature: temp,
			IdealRainfall:    rain,
			NutrientNeeds: NutrientNeeds{
				Nitrogen:   ParseLevel(get("nitrogen")),
				Phosphorus: ParseLevel(get("phosphorus")),
				Potassium:  ParseLevel(get("potassium")),
			},
			CostPerAcre:  money[0],
			YieldPerAcre: money[1],
			UnitPrice:    money[2],
			Regions:      splitList(get("regions")),
			Tips:         splitList(get("tips")),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("catalog has no crop rows")
	}
	return out, nil
}

// listSep joins regions and tips inside one cell. Tips are prose and may
// contain commas or semicolons.
const listSep = "|"

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(s, listSep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Row renders a profile in Header column order.
func Row(c CropProfile) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return []string{
		c.Name, f(c.IdealPh.Min), f(c.IdealPh.Max),
		f(c.IdealTemperature.Min), f(c.IdealTemperature.Max),
		f(c.IdealRainfall.Min), f(c.IdealRainfall.Max),
		string(c.NutrientNeeds.Nitrogen), string(c.NutrientNeeds.Phosphorus), string(c.NutrientNeeds.Potassium),
		f(c.CostPerAcre), f(c.YieldPerAcre), f(c.UnitPrice),
		strings.Join(c.Regions, listSep), strings.Join(c.Tips, listSep),
	}
}

// WriteXLSX writes profiles as a single-sheet workbook that LoadFile can read back.
func WriteXLSX(path string, profiles []CropProfile) error {
	x := excelize.NewFile()
	defer x.Close()
	sheet := x.GetSheetName(0)
	if err := x.SetSheetRow(sheet, "A1", &Header); err != nil {
		return err
	}
	for i, p := range profiles {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := Row(p)
		if err := x.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return x.SaveAs(path)
}

// FromFile returns a Source for path, or the built-in table when path is empty.
func FromFile(path string) (Source, error) {
	if strings.TrimSpace(path) == "" {
		return Static(Builtin()), nil
	}
	ps, err := LoadFile(path)
	if err != nil {
		return Static(Builtin()), err
	}
	return Static(ps), nil
}
