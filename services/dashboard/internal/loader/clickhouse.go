package loader

import (
	"context"
	"fmt"
	"regexp"

	"gigdash/common/telemetry"
	"gigdash/services/dashboard/internal/errors"
	"gigdash/services/dashboard/internal/models"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ClickHouseSource reads the job posting table from the job_postings table
// created by migration 001.
type ClickHouseSource struct {
	conn   clickhouse.Conn
	table  string
	logger *zap.Logger
}

func NewClickHouseSource(conn clickhouse.Conn, table string, logger *zap.Logger) (*ClickHouseSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, errors.InvalidInput(fmt.Sprintf("invalid table name %q", table), nil)
	}
	return &ClickHouseSource{
		conn:   conn,
		table:  table,
		logger: logger,
	}, nil
}

func (s *ClickHouseSource) Name() string {
	return "clickhouse:" + s.table
}

func (s *ClickHouseSource) Load(ctx context.Context) (*models.Dataset, error) {
	ctx, span := tracer.Start(ctx, "ClickHouseSource.Load")
	defer span.End()
	span.SetAttributes(telemetry.String("db.table", s.table))

	query := fmt.Sprintf(`
		SELECT toString(id), row_number, price_usd, client_country,
			skill_category, friction_index, job_type
		FROM %s FINAL
		ORDER BY row_number
	`, s.table)

	rows, err := s.conn.Query(ctx, query)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "query failed")
		return nil, errors.DataUnavailable(fmt.Sprintf("couldn't query %s", s.table), err)
	}
	defer rows.Close()

	ds := &models.Dataset{Source: s.Name()}
	for rows.Next() {
		var (
			p               models.JobPosting
			row             uint32
			price, friction *float64
		)
		if err := rows.Scan(&p.ID, &row, &price, &p.ClientCountry, &p.SkillCategory, &friction, &p.JobType); err != nil {
			span.RecordError(err)
			return nil, errors.DataUnavailable(fmt.Sprintf("couldn't scan %s", s.table), err)
		}
		p.Row = int(row)
		if price != nil {
			p.Price = *price
		} else {
			p.PriceMissing = true
			ds.MissingValues++
		}
		if friction != nil {
			p.FrictionIndex = *friction
		} else {
			p.FrictionMissing = true
			ds.MissingValues++
		}
		ds.Postings = append(ds.Postings, p)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, errors.DataUnavailable(fmt.Sprintf("couldn't read %s", s.table), err)
	}

	if ds.Len() == 0 {
		return nil, errors.DataUnavailable(fmt.Sprintf("no job postings found in %s", s.table), nil)
	}

	span.SetAttributes(telemetry.Int("data.rows", ds.Len()))
	s.logger.Debug("loaded job postings from clickhouse",
		zap.String("table", s.table),
		zap.Int("rows", ds.Len()))

	return ds, nil
}
