package loader

import (
	"context"
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

// FileSource reads the job posting table from an .xlsx or .csv file.
type FileSource struct {
	Path   string
	Sheet  string // xlsx only; empty selects the first sheet
	logger *zap.Logger
}

func NewFileSource(path, sheet string, logger *zap.Logger) *FileSource {
	return &FileSource{
		Path:   path,
		Sheet:  sheet,
		logger: logger,
	}
}

func (s *FileSource) Name() string {
	return s.Path
}

func (s *FileSource) Fingerprint() (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(s.Path)
	if err != nil {
		abs = s.Path
	}
	return fmt.Sprintf("%s:%s:%d:%d", abs, s.Sheet, info.Size(), info.ModTime().UnixNano()), nil
}

func (s *FileSource) Load(ctx context.Context) (*models.Dataset, error) {
	_, span := tracer.Start(ctx, "FileSource.Load")
	defer span.End()
	span.SetAttributes(telemetry.String("data.path", s.Path))

	info, err := os.Stat(s.Path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "data file unavailable")
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.DataUnavailable(fmt.Sprintf("couldn't find '%s'", s.Path), err)
		}
		return nil, errors.DataUnavailable(fmt.Sprintf("couldn't read '%s'", s.Path), err)
	}
	if info.IsDir() {
		return nil, errors.DataUnavailable(fmt.Sprintf("'%s' is a directory", s.Path), nil)
	}

	var header []string
	var rows [][]string
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".csv":
		header, rows, err = s.readCSV()
	case ".xlsx", ".xlsm":
		header, rows, err = s.readXLSX()
	default:
		err = errors.DataUnavailable(fmt.Sprintf("unsupported file type '%s'", filepath.Ext(s.Path)), nil)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "read failed")
		return nil, err
	}

	ds, err := table{source: s.Path, logger: s.logger}.build(header, rows)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build failed")
		return nil, err
	}

	span.SetAttributes(
		telemetry.Int("data.rows", ds.Len()),
		telemetry.Int("data.missing_values", ds.MissingValues),
	)
	return ds, nil
}

func (s *FileSource) readXLSX() ([]string, [][]string, error) {
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, nil, errors.DataUnavailable(fmt.Sprintf("couldn't open workbook '%s'", s.Path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("failed to close workbook", zap.String("path", s.Path), zap.Error(cerr))
		}
	}()

	sheet := s.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.DataUnavailable(fmt.Sprintf("workbook '%s' has no sheets", s.Path), nil)
		}
		sheet = sheets[0]
	}

	all, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, errors.DataUnavailable(fmt.Sprintf("couldn't read sheet '%s' of '%s'", sheet, s.Path), err)
	}
	if len(all) == 0 {
		return nil, nil, errors.DataUnavailable(fmt.Sprintf("sheet '%s' of '%s' is empty", sheet, s.Path), nil)
	}

	return all[0], all[1:], nil
}

func (s *FileSource) readCSV() ([]string, [][]string, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, nil, errors.DataUnavailable(fmt.Sprintf("couldn't open '%s'", s.Path), err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.logger.Warn("failed to close file", zap.String("path", s.Path), zap.Error(cerr))
		}
	}()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errors.DataUnavailable(fmt.Sprintf("'%s' is empty", s.Path), nil)
	}
	if err != nil {
		return nil, nil, errors.DataUnavailable(fmt.Sprintf("couldn't read header of '%s'", s.Path), err)
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.DataUnavailable(fmt.Sprintf("couldn't parse '%s'", s.Path), err)
		}
		rows = append(rows, row)
	}

	return header, rows, nil
}
