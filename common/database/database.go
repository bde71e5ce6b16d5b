package database

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"go.uber.org/zap"
)

const (
	dialTimeout      = 30 * time.Second
	maxExecutionTime = 60
	defaultPort      = "9000"
)

type Options struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Username        string
	Password        string
	Database        string
}

type Database struct {
	conn     clickhouse.Conn
	database string
	logger   *zap.Logger
}

// New opens a native-protocol connection to every host in the DSN and
// verifies it with a ping. Auth and database come from Options.
func New(ctx context.Context, opts Options, logger *zap.Logger) (*Database, error) {
	addrs, err := Addrs(opts.DSN)
	if err != nil {
		return nil, err
	}

	conn, err := clickhouse.Open(&clickhouse.Options{
		Protocol: clickhouse.Native,
		Addr:     addrs,
		Settings: clickhouse.Settings{
			"max_execution_time": maxExecutionTime,
		},
		Auth: clickhouse.Auth{
			Database: opts.Database,
			Username: opts.Username,
			Password: opts.Password,
		},
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
		DialTimeout:      dialTimeout,
		MaxOpenConns:     opts.MaxOpenConns,
		MaxIdleConns:     opts.MaxIdleConns,
		ConnMaxLifetime:  opts.ConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clickhouse connection: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	logger.Info("connected to clickhouse",
		zap.Strings("addrs", addrs),
		zap.String("database", opts.Database))

	return &Database{
		conn:     conn,
		database: opts.Database,
		logger:   logger,
	}, nil
}

// Addrs extracts the host:port list from a DSN. Accepted forms are
// "host:port", "h1:9000,h2:9000" and "clickhouse://h1,h2:9440/db?x=y";
// the database path and query string are ignored and a missing port
// defaults to 9000.
func Addrs(dsn string) ([]string, error) {
	rest := strings.TrimSpace(dsn)
	if _, after, ok := strings.Cut(rest, "://"); ok {
		rest = after
	}
	if _, after, ok := strings.Cut(rest, "@"); ok {
		rest = after
	}
	rest, _, _ = strings.Cut(rest, "?")
	rest, _, _ = strings.Cut(rest, "/")

	var addrs []string
	for _, host := range strings.Split(rest, ",") {
		host = strings.TrimSpace(host)
		if host == "" {
			continue
		}
		if _, _, err := net.SplitHostPort(host); err != nil {
			host = net.JoinHostPort(host, defaultPort)
		}
		addrs = append(addrs, host)
	}
	if len(addrs) == 0 {
		return nil, fmt.Errorf("clickhouse DSN %q names no hosts", dsn)
	}
	return addrs, nil
}

// TableExists reports whether table is present. An unqualified name is
// looked up in the connection's database.
func (db *Database) TableExists(ctx context.Context, table string) (bool, error) {
	database, name, qualified := strings.Cut(table, ".")
	if !qualified {
		database, name = db.database, table
	}

	var n uint64
	if err := db.conn.QueryRow(ctx,
		"SELECT count() FROM system.tables WHERE database = ? AND name = ?",
		database, name,
	).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to look up table %s: %w", table, err)
	}
	return n > 0, nil
}

func (db *Database) Close() error {
	return db.conn.Close()
}

func (db *Database) Conn() clickhouse.Conn {
	return db.conn
}
