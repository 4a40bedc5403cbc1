package incidence

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Table is a static cancer-incidence dataset loaded from CSV. Columns
// are discovered by header inspection so the source file's exact
// wording can drift between releases.
type Table struct {
	stateCol  int
	cancerCol int
	rateCol   int
	rows      [][]string
}

func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open incidence table: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read incidence table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("incidence table is empty")
	}

	header := records[0]
	t := &Table{
		stateCol:  findColumn(header, "state", "territory"),
		cancerCol: findColumn(header, "cancer group"),
		rateCol:   findColumn(header, "2024 australian population"),
		rows:      records[1:],
	}
	if t.stateCol < 0 || t.cancerCol < 0 || t.rateCol < 0 {
		return nil, fmt.Errorf("incidence table is missing required columns: %v", header)
	}
	return t, nil
}

// findColumn returns the first header index containing every needle,
// case-insensitive, or -1.
func findColumn(header []string, needles ...string) int {
	for i, col := range header {
		lower := strings.ToLower(col)
		ok := true
		for _, needle := range needles {
			if !strings.Contains(lower, needle) {
				ok = false
				break
			}
		}
		if ok {
			return i
		}
	}
	return -1
}

// MeanRate averages the rate column over rows whose region matches
// exactly (case-insensitive) and whose cancer group contains the given
// substring. Unparsable rates are skipped. ok is false when no row
// contributes.
func (t *Table) MeanRate(region, cancerContains string) (float64, bool) {
	return t.mean(func(row []string) bool {
		return strings.EqualFold(strings.TrimSpace(row[t.stateCol]), strings.TrimSpace(region))
	}, cancerContains)
}

// NationalMeanRate averages the rate column over every region.
func (t *Table) NationalMeanRate(cancerContains string) (float64, bool) {
	return t.mean(func([]string) bool { return true }, cancerContains)
}

func (t *Table) mean(regionMatch func([]string) bool, cancerContains string) (float64, bool) {
	needle := strings.ToLower(cancerContains)

	var sum float64
	count := 0
	for _, row := range t.rows {
		if len(row) <= t.stateCol || len(row) <= t.cancerCol || len(row) <= t.rateCol {
			continue
		}
		if !regionMatch(row) {
			continue
		}
		if !strings.Contains(strings.ToLower(row[t.cancerCol]), needle) {
			continue
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(row[t.rateCol]), 64)
		if err != nil {
			continue
		}
		sum += rate
		count++
	}

	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
