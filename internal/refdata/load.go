package refdata

import (
	"context"
	"encoding/csv"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/familytree/internal/platform/errors"
)

var tracer = otel.Tracer("github.com/louisbranch/familytree/internal/refdata")

// Files names the reference sources inside the loaded file system.
type Files struct {
	FirstNames        string
	LastNames         string
	RankProbabilities string
	LifeExpectancy    string
	Rates             string
}

// DefaultFiles returns the file names shipped in the data directory.
func DefaultFiles() Files {
	return Files{
		FirstNames:        "first_names.csv",
		LastNames:         "last_names.csv",
		RankProbabilities: "rank_to_probability.csv",
		LifeExpectancy:    "life_expectancy.csv",
		Rates:             "birth_and_marriage_rates.csv",
	}
}

// LoadDir loads the default files from dir.
func LoadDir(ctx context.Context, dir string) (*Tables, error) {
	return Load(ctx, os.DirFS(dir), DefaultFiles())
}

// Load reads every reference table from fsys. Any missing file, missing
// column, unparsable cell or empty table fails with errors.CodeLoadFailed.
func Load(ctx context.Context, fsys fs.FS, files Files) (_ *Tables, err error) {
	_, span := tracer.Start(ctx, "refdata.Load", trace.WithAttributes(
		attribute.String("refdata.first_names_file", files.FirstNames),
		attribute.String("refdata.rates_file", files.Rates),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "load reference tables")
		}
		span.End()
	}()

	t := &Tables{}
	if t.firstNames, err = loadFirstNames(fsys, files.FirstNames); err != nil {
		return nil, err
	}
	rankWeights, err := loadRankWeights(fsys, files.RankProbabilities)
	if err != nil {
		return nil, err
	}
	t.ranks = newWeighted(nil, rankWeights)
	if t.lastNames, err = loadLastNames(fsys, files.LastNames, len(rankWeights)); err != nil {
		return nil, err
	}
	if t.lifeExpectancy, err = loadLifeExpectancy(fsys, files.LifeExpectancy); err != nil {
		return nil, err
	}
	if t.rates, err = loadRates(fsys, files.Rates); err != nil {
		return nil, err
	}

	first, last := t.YearSpan()
	span.SetAttributes(
		attribute.Int("refdata.first_name_decades", len(t.firstNames)),
		attribute.Int("refdata.last_name_decades", len(t.lastNames)),
		attribute.Int("refdata.rate_decades", len(t.rates)),
		attribute.Int("refdata.first_year", first),
		attribute.Int("refdata.last_year", last),
	)
	return t, nil
}

func loadFirstNames(fsys fs.FS, name string) (map[int]weighted, error) {
	tbl, err := readTable(fsys, name, "decade", "name", "frequency")
	if err != nil {
		return nil, err
	}
	names := map[int][]string{}
	weights := map[int][]float64{}
	for i, row := range tbl.rows {
		decade, err := parseDecade(tbl.get(row, "decade"))
		if err != nil {
			return nil, rowError(name, i, err)
		}
		freq, err := parseWeight(tbl.get(row, "frequency"))
		if err != nil {
			return nil, rowError(name, i, err)
		}
		names[decade] = append(names[decade], tbl.get(row, "name"))
		weights[decade] = append(weights[decade], freq)
	}
	out := make(map[int]weighted, len(names))
	for decade, n := range names {
		out[decade] = newWeighted(n, weights[decade])
	}
	return out, nil
}

func loadLastNames(fsys fs.FS, name string, ranks int) (map[int][]string, error) {
	tbl, err := readTable(fsys, name, "Decade", "LastName")
	if err != nil {
		return nil, err
	}
	out := map[int][]string{}
	for i, row := range tbl.rows {
		decade, err := parseDecade(tbl.get(row, "Decade"))
		if err != nil {
			return nil, rowError(name, i, err)
		}
		out[decade] = append(out[decade], tbl.get(row, "LastName"))
	}
	// Rank weights align positionally with each decade's surname list.
	for decade, surnames := range out {
		if len(surnames) != ranks {
			return nil, loadError(name, apperrors.Newf(
				"decade %ds has %d surnames but the rank vector has %d weights", decade, len(surnames), ranks))
		}
	}
	return out, nil
}

func loadRankWeights(fsys fs.FS, name string) ([]float64, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, loadError(name, err)
	}
	defer f.Close()

	record, err := csv.NewReader(f).Read()
	if err == io.EOF {
		return nil, loadError(name, apperrors.Newf("empty rank vector"))
	}
	if err != nil {
		return nil, loadError(name, err)
	}
	weights := make([]float64, 0, len(record))
	for _, cell := range record {
		w, err := parseWeight(cell)
		if err != nil {
			return nil, loadError(name, err)
		}
		weights = append(weights, w)
	}
	return weights, nil
}

func loadLifeExpectancy(fsys fs.FS, name string) (map[int]float64, error) {
	tbl, err := readTable(fsys, name, "Year", "Period life expectancy at birth")
	if err != nil {
		return nil, err
	}
	out := make(map[int]float64, len(tbl.rows))
	for i, row := range tbl.rows {
		year, err := strconv.Atoi(tbl.get(row, "Year"))
		if err != nil {
			return nil, rowError(name, i, err)
		}
		v, err := strconv.ParseFloat(tbl.get(row, "Period life expectancy at birth"), 64)
		if err != nil {
			return nil, rowError(name, i, err)
		}
		out[year] = v
	}
	return out, nil
}

func loadRates(fsys fs.FS, name string) (map[int]Rates, error) {
	tbl, err := readTable(fsys, name, "decade", "marriage_rate", "birth_rate")
	if err != nil {
		return nil, err
	}
	out := make(map[int]Rates, len(tbl.rows))
	for i, row := range tbl.rows {
		decade, err := parseDecade(tbl.get(row, "decade"))
		if err != nil {
			return nil, rowError(name, i, err)
		}
		marriage, err := strconv.ParseFloat(tbl.get(row, "marriage_rate"), 64)
		if err != nil {
			return nil, rowError(name, i, err)
		}
		birth, err := strconv.ParseFloat(tbl.get(row, "birth_rate"), 64)
		if err != nil {
			return nil, rowError(name, i, err)
		}
		out[decade] = Rates{Marriage: marriage, Birth: birth}
	}
	return out, nil
}

// table is a header-keyed CSV body.
type table struct {
	columns map[string]int
	rows    [][]string
}

func (t table) get(row []string, column string) string {
	return strings.TrimSpace(row[t.columns[column]])
}

// readTable reads a CSV with a header row and checks that every required
// column is present. Rows shorter than the header are rejected.
func readTable(fsys fs.FS, name string, required ...string) (table, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return table{}, loadError(name, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err == io.EOF {
		return table{}, loadError(name, apperrors.Newf("missing header"))
	}
	if err != nil {
		return table{}, loadError(name, err)
	}

	tbl := table{columns: make(map[string]int, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		tbl.columns[h] = i
	}
	width := 0
	for _, col := range required {
		idx, ok := tbl.columns[col]
		if !ok {
			return table{}, loadError(name, apperrors.Newf("missing column %q", col))
		}
		width = max(width, idx+1)
	}

	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return table{}, loadError(name, err)
		}
		if len(row) < width {
			return table{}, rowError(name, len(tbl.rows), apperrors.Newf("expected at least %d fields, got %d", width, len(row)))
		}
		tbl.rows = append(tbl.rows, row)
	}
	if len(tbl.rows) == 0 {
		return table{}, loadError(name, apperrors.Newf("no rows"))
	}
	return tbl, nil
}

// parseDecade accepts "1950" or "1950s".
func parseDecade(s string) (int, error) {
	return strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(s), "s"))
}

func parseWeight(s string) (float64, error) {
	w, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if w < 0 {
		return 0, apperrors.Newf("negative weight %v", w)
	}
	return w, nil
}

func loadError(file string, cause error) error {
	return apperrors.WrapWithMetadata(apperrors.CodeLoadFailed, "load "+file, map[string]string{"file": file}, cause)
}

func rowError(file string, row int, cause error) error {
	// Row numbers are 1-based and count the header line.
	return loadError(file, apperrors.Wrapf(cause, "line %d", row+2))
}
