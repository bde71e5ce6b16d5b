package migrations

import "gigdash/common/database/schema"

var CreateJobPostingsTable = schema.Migration{
	Version:     1,
	Description: "Create job_postings table",
	Up: `
		CREATE TABLE IF NOT EXISTS job_postings (
			id UUID,
			row_number UInt32,
			price_usd Nullable(Float64),
			client_country LowCardinality(String),
			skill_category LowCardinality(String),
			friction_index Nullable(Float64),
			job_type LowCardinality(String),
			loaded_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(loaded_at)
		ORDER BY (row_number, id)
		SETTINGS index_granularity = 8192
	`,
	Down: `DROP TABLE IF EXISTS job_postings`,
}

// All lists every migration in version order.
var All = []schema.Migration{
	CreateJobPostingsTable,
}
