package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/lib/pq"

	"github.com/spektr-org/batstats/league"
	"github.com/spektr-org/batstats/schema"
)

// ============================================================================
// SQL HELPER — Batting table in SQLite or PostgreSQL
// ============================================================================
// The table holds one row per player with the same columns as the CSV:
// key and dimensions as text, measures as double precision. NULL measures
// read as 0, matching empty CSV cells.
// ============================================================================

// Supported database/sql driver names.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var tableName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// OpenSQL opens and pings a database for one of the supported drivers.
func OpenSQL(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if driver != DriverSQLite && driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}
	return db, nil
}

// LoadSQL reads every row of table into player records.
func LoadSQL(ctx context.Context, db *sql.DB, table string, sch schema.Config) ([]league.PlayerRecord, error) {
	if !tableName.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	stats, err := statColumns(sch)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("SELECT %s FROM %s", quoteList(sch.Columns()), quote(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var records []league.PlayerRecord
	for rows.Next() {
		var name, team, pos sql.NullString
		nums := make([]sql.NullFloat64, len(stats))

		dest := []any{&name, &team, &pos}
		for i := range nums {
			dest = append(dest, &nums[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s row %d: %w", table, len(records)+1, err)
		}

		rec := league.PlayerRecord{
			Name:     strings.TrimSpace(name.String),
			Team:     strings.TrimSpace(team.String),
			Position: strings.TrimSpace(pos.String),
		}
		for i, sc := range stats {
			rec.Stats[sc.stat] = nums[i].Float64
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", table, err)
	}
	return records, nil
}

// LoadSQLStore reads table and builds a Store from it.
func LoadSQLStore(ctx context.Context, db *sql.DB, table string, sch schema.Config) (*league.Store, error) {
	records, err := LoadSQL(ctx, db, table, sch)
	if err != nil {
		return nil, err
	}
	return league.NewStore(records)
}

// SaveSQL creates table if needed and inserts records in one transaction.
// Placeholders follow the driver: ? for SQLite, $n for PostgreSQL.
func SaveSQL(ctx context.Context, db *sql.DB, driver, table string, sch schema.Config, records []league.PlayerRecord) error {
	if !tableName.MatchString(table) {
		return fmt.Errorf("invalid table name %q", table)
	}
	stats, err := statColumns(sch)
	if err != nil {
		return err
	}

	cols := sch.Columns()
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		kind := "DOUBLE PRECISION"
		if i <= len(sch.Dimensions) {
			kind = "TEXT"
		}
		defs[i] = quote(c) + " " + kind
		if driver == DriverPostgres {
			marks[i] = fmt.Sprintf("$%d", i+1)
		} else {
			marks[i] = "?"
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	create := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", quote(table), strings.Join(defs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(table), quoteList(cols), strings.Join(marks, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		args := []any{rec.Name, rec.Team, rec.Position}
		for _, sc := range stats {
			args = append(args, rec.Stats[sc.stat])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert %s: %w", rec.Name, err)
		}
	}
	return tx.Commit()
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func quoteList(idents []string) string {
	quoted := make([]string, len(idents))
	for i, id := range idents {
		quoted[i] = quote(id)
	}
	return strings.Join(quoted, ", ")
}
