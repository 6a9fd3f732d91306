package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// migrations holds the DDL for every table the reporting layer reads. The
// stat tables are owned by the collecting platform; creating them here
// keeps the service self-contained without an external migration step.
var migrations = []string{
	`
CREATE TABLE IF NOT EXISTS dbo_stats_counter
(
	dmy     String,
	nid     Int64,
	role    String,
	count   Int64
)
ENGINE = MergeTree
ORDER BY (dmy, nid, role);
`,
	`
CREATE TABLE IF NOT EXISTS dbo_stats_failed_searches
(
	dmy     String,
	role    String,
	success Int64,
	fail    Int64
)
ENGINE = MergeTree
ORDER BY (dmy, role);
`,
	`
CREATE TABLE IF NOT EXISTS dbo_stats_search_terms
(
	term    String,
	success Int64,
	fail    Int64
)
ENGINE = MergeTree
ORDER BY term;
`,
	`
CREATE TABLE IF NOT EXISTS dbo_stats_access_time
(
	uid  Int64,
	time Int64
)
ENGINE = MergeTree
ORDER BY (uid, time);
`,
	`
CREATE TABLE IF NOT EXISTS dbo_stats_field_notice_viewers
(
	nid    Int64,
	viewer String
)
ENGINE = MergeTree
ORDER BY (nid, viewer);
`,
	`
CREATE TABLE IF NOT EXISTS node_field_data
(
	nid     Int64,
	title   String,
	type    String,
	status  UInt8,
	created Int64,
	changed Int64,
	alias   String
)
ENGINE = MergeTree
ORDER BY nid;
`,
	`
CREATE TABLE IF NOT EXISTS users_field_data
(
	uid    Int64,
	name   String,
	mail   String,
	access Int64
)
ENGINE = MergeTree
ORDER BY uid;
`,
	`
CREATE TABLE IF NOT EXISTS user_roles
(
	machine_name String,
	name         String
)
ENGINE = MergeTree
ORDER BY machine_name;
`,
}

// RunMigrations ensures required tables exist.
func RunMigrations(ctx context.Context, conn clickhouse.Conn) error {
	for _, stmt := range migrations {
		if err := conn.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
	}
	return nil
}
