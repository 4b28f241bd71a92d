// internal/stats/collector.go
package stats

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"

	"github.com/kaspa-ng/status-api/internal/models"
)

// ErrCollection wraps any failure during a stats collection.
var ErrCollection = errors.New("unable to collect database metrics")

const (
	dbSizeSQL          = `SELECT COALESCE(pg_database_size(current_database()), 0)::bigint AS size_bytes`
	connectionCountSQL = `SELECT COUNT(*)::bigint AS count FROM pg_stat_activity WHERE datname = current_database()`
	tableCountSQL      = `SELECT COUNT(*)::bigint AS table_count FROM information_schema.tables WHERE table_schema = 'public'`
	uptimeSQL          = `SELECT COALESCE(EXTRACT(EPOCH FROM now() - pg_postmaster_start_time()), 0)::bigint AS uptime_seconds`

	tableStatsSQL = `
SELECT
    relname AS table_name,
    COALESCE(n_live_tup, 0)::bigint AS live_rows,
    COALESCE(n_dead_tup, 0)::bigint AS dead_rows,
    COALESCE(seq_scan, 0)::bigint AS seq_scan,
    COALESCE(idx_scan, 0)::bigint AS idx_scan,
    COALESCE(pg_total_relation_size(relid), 0)::bigint AS total_size_bytes
FROM pg_stat_user_tables
ORDER BY n_live_tup DESC
LIMIT 6`

	connectTimeout = 5 * time.Second
)

// Conn is the part of *pgx.Conn the collector uses.
type Conn interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close(ctx context.Context) error
}

// Dialer opens one connection per collection.
type Dialer func(ctx context.Context) (Conn, error)

// DBConfig holds database connection parameters.
type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// ConnString renders the parameters as a postgres URL.
func (c DBConfig) ConnString() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.Name,
		RawQuery: "connect_timeout=" + strconv.Itoa(int(connectTimeout.Seconds())),
	}
	return u.String()
}

// PgxDialer returns a Dialer that opens a fresh pgx connection.
func PgxDialer(cfg DBConfig) Dialer {
	return func(ctx context.Context) (Conn, error) {
		connCfg, err := pgx.ParseConfig(cfg.ConnString())
		if err != nil {
			return nil, fmt.Errorf("invalid database config: %w", err)
		}
		conn, err := pgx.ConnectConfig(ctx, connCfg)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
}

// Collector gathers database-level counters into one snapshot.
type Collector struct {
	dial Dialer
	now  func() time.Time
}

// NewCollector creates a collector using dial for every Collect call.
func NewCollector(dial Dialer) *Collector {
	return &Collector{dial: dial, now: time.Now}
}

// Collect runs the fixed query sequence on a connection scoped to the call.
// Any failure aborts the whole collection.
func (c *Collector) Collect(ctx context.Context) (*models.StatsSnapshot, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrCollection, err)
	}
	defer func() {
		if closeErr := conn.Close(context.WithoutCancel(ctx)); closeErr != nil {
			log.Warn("Failed to close database connection", "error", closeErr)
		}
	}()

	snap := &models.StatsSnapshot{}
	scalars := []struct {
		name string
		sql  string
		dest *int64
	}{
		{"database size", dbSizeSQL, &snap.DBSizeBytes},
		{"connection count", connectionCountSQL, &snap.ConnectedClients},
		{"table count", tableCountSQL, &snap.TableCount},
		{"uptime", uptimeSQL, &snap.UptimeSeconds},
	}
	for _, q := range scalars {
		if err := conn.QueryRow(ctx, q.sql).Scan(q.dest); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrCollection, q.name, err)
		}
	}

	tables, err := queryTableStats(ctx, conn)
	if err != nil {
		return nil, fmt.Errorf("%w: table stats: %w", ErrCollection, err)
	}

	snap.TableStats = tables
	snap.TableTotals = Totals(tables)
	snap.LargestTable = largestTable(tables)
	snap.Timestamp = c.now().UTC().Format(time.RFC3339Nano)
	return snap, nil
}

func queryTableStats(ctx context.Context, conn Conn) ([]models.TableStat, error) {
	rows, err := conn.Query(ctx, tableStatsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tables := make([]models.TableStat, 0, 6)
	for rows.Next() {
		var t models.TableStat
		if err := rows.Scan(&t.TableName, &t.LiveRows, &t.DeadRows, &t.SeqScan, &t.IdxScan, &t.TotalSizeBytes); err != nil {
			return nil, err
		}
		if t.TableName == "" {
			t.TableName = "unknown"
		}
		tables = append(tables, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tables, nil
}

// Totals sums live rows and sizes across sampled tables.
func Totals(tables []models.TableStat) models.TableTotals {
	var totals models.TableTotals
	for _, t := range tables {
		totals.LiveRows += t.LiveRows
		totals.TotalSizeBytes += t.TotalSizeBytes
	}
	return totals
}

// largestTable is the first sampled table; rows are ordered by live rows.
func largestTable(tables []models.TableStat) *string {
	if len(tables) == 0 {
		return nil
	}
	name := tables[0].TableName
	return &name
}
