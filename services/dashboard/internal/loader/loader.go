package loader

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"go.uber.org/zap"
)

var tracer = telemetry.GetTracer("gigdash/dashboard/loader")

// Source produces the job posting table.
type Source interface {
	Load(ctx context.Context) (*models.Dataset, error)
	Name() string
}

// Fingerprinter is implemented by sources whose content can be identified
// without loading it. The fingerprint changes whenever the content may have.
type Fingerprinter interface {
	Fingerprint() (string, error)
}

// table converts header-plus-rows string data into postings. It is shared by
// every tabular file format.
type table struct {
	source string
	logger *zap.Logger
}

func (t table) build(header []string, rows [][]string) (*models.Dataset, error) {
	index, err := columnIndex(header)
	if err != nil {
		return nil, err
	}

	ds := &models.Dataset{
		Source:   t.source,
		Postings: make([]models.JobPosting, 0, len(rows)),
	}

	for i, row := range rows {
		rowNumber := i + 2 // header is row 1
		if isBlank(row) {
			continue
		}

		posting, missing := parseRow(row, index)
		if len(missing) > 0 {
			ds.MissingValues += len(missing)
			t.logger.Debug("row has missing numeric values",
				zap.String("source", t.source),
				zap.Int("row", rowNumber),
				zap.Strings("columns", missing))
		}

		posting.Row = rowNumber
		posting.ID = models.PostingID(t.source, rowNumber)
		ds.Postings = append(ds.Postings, posting)
	}

	if len(ds.Postings) == 0 {
		return nil, errors.DataUnavailable(fmt.Sprintf("no job postings found in %s", t.source), nil)
	}

	t.logger.Debug("parsed job postings",
		zap.String("source", t.source),
		zap.Int("rows", len(ds.Postings)),
		zap.Int("missing_values", ds.MissingValues))

	return ds, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range models.RequiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, errors.DataUnavailable(
			fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", ")), nil)
	}
	return index, nil
}

// parseRow never rejects a row. It returns the posting and the numeric
// columns whose cells were blank or unreadable.
func parseRow(row []string, index map[string]int) (models.JobPosting, []string) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	posting := models.JobPosting{
		ClientCountry: cell(models.ColumnClientCountry),
		SkillCategory: cell(models.ColumnSkillCategory),
		JobType:       cell(models.ColumnJobType),
	}

	var missing []string
	if price, err := parseNumber(cell(models.ColumnPrice)); err != nil {
		posting.PriceMissing = true
		missing = append(missing, models.ColumnPrice)
	} else {
		posting.Price = price
	}
	if friction, err := parseNumber(cell(models.ColumnFriction)); err != nil {
		posting.FrictionMissing = true
		missing = append(missing, models.ColumnFriction)
	} else {
		posting.FrictionIndex = friction
	}

	return posting, missing
}

// parseNumber accepts plain numbers as well as "$1,250.50" style values.
func parseNumber(s string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if cleaned == "" {
		return 0, fmt.Errorf("empty value")
	}
	return strconv.ParseFloat(cleaned, 64)
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
